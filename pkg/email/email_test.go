package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "jane.doe@example.org", Normalize("  Jane.Doe@Example.ORG "))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("jane@example.org"))
	assert.False(t, IsValid("Jane <jane@example.org>"))
	assert.False(t, IsValid("not-an-email"))
	assert.False(t, IsValid(""))
}

func TestMask(t *testing.T) {
	assert.Equal(t, "j*******@example.org", Mask("jane.doe@example.org"))
	assert.Equal(t, "a@example.org", Mask("a@example.org"))
	assert.Equal(t, "***", Mask("nobody"))
}
