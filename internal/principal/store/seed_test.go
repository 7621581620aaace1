package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "principals.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- id: 6f1c1f0e-3f8a-4a43-9a55-0d7d1c0b9e11
  name: Asha Rao
  email: asha@example.org
  phone: "+910000000001"
  government_id: GOV-1
- name: Ravi Iyer
  email: ravi@example.org
  government_id: GOV-2
`), 0o600))

	store := NewInMemory()
	ctx := context.Background()

	n, err := SeedFromFile(ctx, store, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	p, err := store.FindByGovernmentID(ctx, "GOV-1")
	require.NoError(t, err)
	assert.Equal(t, "6f1c1f0e-3f8a-4a43-9a55-0d7d1c0b9e11", p.ID.String())

	n, err = SeedFromFile(ctx, store, path)
	require.NoError(t, err)
	assert.Zero(t, n, "existing principals are skipped")
}

func TestSeed_InvalidEntry(t *testing.T) {
	_, err := Seed(context.Background(), NewInMemory(), []SeedEntry{{Name: "x", Email: "bad", GovernmentID: "G"}})
	assert.Error(t, err)
}
