// Package store persists nominee records and their documents.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/nominee/models"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/sentinel"
)

// InMemory mirrors the Postgres partial unique indexes: rejected records never
// conflict on insert.
type InMemory struct {
	mu       sync.RWMutex
	nominees map[id.NomineeID]*models.Nominee
}

func NewInMemory() *InMemory {
	return &InMemory{nominees: make(map[id.NomineeID]*models.Nominee)}
}

func (s *InMemory) Create(_ context.Context, n *models.Nominee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nominees[n.ID]; ok {
		return sentinel.ErrConflict
	}
	for _, existing := range s.nominees {
		if existing.VerificationStatus == models.StatusRejected {
			continue
		}
		if existing.LinkedPrincipalID == n.LinkedPrincipalID {
			return sentinel.ErrConflict
		}
		if strings.EqualFold(existing.Email, n.Email) || existing.GovernmentID == n.GovernmentID {
			return sentinel.ErrAlreadyUsed
		}
	}
	s.nominees[n.ID] = n.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, nomineeID id.NomineeID) (*models.Nominee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nominees[nomineeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return n.Clone(), nil
}

// FindByPrincipal returns the most recent record linked to principalID.
func (s *InMemory) FindByPrincipal(_ context.Context, principalID id.PrincipalID, includeRejected bool) (*models.Nominee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *models.Nominee
	for _, n := range s.nominees {
		if n.LinkedPrincipalID != principalID {
			continue
		}
		if !includeRejected && n.VerificationStatus == models.StatusRejected {
			continue
		}
		if latest == nil || n.CreatedAt.After(latest.CreatedAt) {
			latest = n
		}
	}
	if latest == nil {
		return nil, sentinel.ErrNotFound
	}
	return latest.Clone(), nil
}

func (s *InMemory) ExistsByEmailOrGovernmentID(_ context.Context, address, governmentID string, includeRejected bool) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.nominees {
		if !includeRejected && n.VerificationStatus == models.StatusRejected {
			continue
		}
		if strings.EqualFold(n.Email, address) || n.GovernmentID == governmentID {
			return true, nil
		}
	}
	return false, nil
}

// ReplaceVerificationToken supersedes the stored token of a pending record.
func (s *InMemory) ReplaceVerificationToken(_ context.Context, nomineeID id.NomineeID, token string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nominees[nomineeID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if !n.IsPending() {
		return sentinel.ErrInvalidState
	}
	n.VerificationToken = &token
	n.UpdatedAt = now
	return nil
}

func (s *InMemory) UpdateNotification(_ context.Context, nomineeID id.NomineeID, channels []string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nominees[nomineeID]
	if !ok {
		return sentinel.ErrNotFound
	}
	n.RecordDelivery(append([]string{}, channels...), now)
	return nil
}

// ConsumeVerificationToken applies action only when token is still the stored
// token of a pending record. Anything else reports sentinel.ErrAlreadyUsed.
func (s *InMemory) ConsumeVerificationToken(_ context.Context, nomineeID id.NomineeID, token string, action models.Action, now time.Time) (*models.Nominee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nominees[nomineeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if n.VerificationToken == nil || *n.VerificationToken != token || !n.IsPending() {
		return nil, sentinel.ErrAlreadyUsed
	}
	if err := n.ApplyDecision(action, now); err != nil {
		return nil, err
	}
	return n.Clone(), nil
}

func (s *InMemory) AddDocument(_ context.Context, nomineeID id.NomineeID, doc models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nominees[nomineeID]
	if !ok {
		return sentinel.ErrNotFound
	}
	n.Documents = append(n.Documents, doc)
	sort.SliceStable(n.Documents, func(i, j int) bool {
		return n.Documents[i].UploadedAt.Before(n.Documents[j].UploadedAt)
	})
	n.UpdatedAt = doc.UploadedAt
	return nil
}

// RemoveDocument deletes the entry and returns it so the caller can remove
// the stored file.
func (s *InMemory) RemoveDocument(_ context.Context, nomineeID id.NomineeID, documentID id.DocumentID) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nominees[nomineeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	for i, d := range n.Documents {
		if d.ID == documentID {
			n.Documents = append(n.Documents[:i], n.Documents[i+1:]...)
			removed := d
			return &removed, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ReviewDocument(_ context.Context, nomineeID id.NomineeID, documentID id.DocumentID, status models.DocumentStatus, now time.Time) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nominees[nomineeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	doc := n.Document(documentID)
	if doc == nil {
		return nil, sentinel.ErrNotFound
	}
	if err := doc.Review(status, now); err != nil {
		return nil, sentinel.ErrInvalidState
	}
	reviewed := *doc
	return &reviewed, nil
}

// UpdateLinkedStatus changes only the snapshot status fields named in update.
func (s *InMemory) UpdateLinkedStatus(_ context.Context, nomineeID id.NomineeID, update models.LinkedStatusUpdate, now time.Time) (*models.Nominee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nominees[nomineeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	n.LinkedUserDetails.Apply(update)
	n.UpdatedAt = now
	return n.Clone(), nil
}
