package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/principal/models"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/sentinel"
)

// SeedEntry is one principal in a seed file.
type SeedEntry struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Email        string `yaml:"email"`
	Phone        string `yaml:"phone"`
	GovernmentID string `yaml:"government_id"`
}

// Creator is the write side used by seeding.
type Creator interface {
	Create(ctx context.Context, p *models.Principal) error
}

// SeedFromFile loads principals from a YAML list. Entries that already exist
// are skipped so the seed can run on every start. Returns the number created.
func SeedFromFile(ctx context.Context, store Creator, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read principal seed: %w", err)
	}
	var entries []SeedEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return 0, fmt.Errorf("parse principal seed: %w", err)
	}
	return Seed(ctx, store, entries)
}

func Seed(ctx context.Context, store Creator, entries []SeedEntry) (int, error) {
	created := 0
	now := time.Now()
	for i, e := range entries {
		principalID := id.NewPrincipalID()
		if e.ID != "" {
			parsed, err := id.ParsePrincipalID(e.ID)
			if err != nil {
				return created, fmt.Errorf("seed entry %d: %w", i, err)
			}
			principalID = parsed
		}
		p, err := models.NewPrincipal(principalID, e.Name, e.Email, e.Phone, e.GovernmentID, now)
		if err != nil {
			return created, fmt.Errorf("seed entry %d: %w", i, err)
		}
		if err := store.Create(ctx, p); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				continue
			}
			return created, fmt.Errorf("seed entry %d: %w", i, err)
		}
		created++
	}
	return created, nil
}
