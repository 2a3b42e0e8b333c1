package entries

import (
	"context"

	"github.com/google/uuid"
)

// ReportInvalidator is notified whenever a user's entries change, so
// cached aggregations over them can be recomputed.
type ReportInvalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID)
}

// Service wraps journal entry business rules: validation before
// persistence, ownership scoping, and report-cache invalidation.
type Service struct {
	repo    Repository
	reports ReportInvalidator
}

// NewService constructs a new Service. The invalidator may be nil when
// no report cache is wired (tests).
func NewService(repo Repository, reports ReportInvalidator) *Service {
	return &Service{repo: repo, reports: reports}
}

// Create validates the payload and persists a new entry for the user.
func (s *Service) Create(ctx context.Context, req CreateEntryRequest, userID uuid.UUID) (*Entry, error) {
	fields, err := req.Validate()
	if err != nil {
		return nil, err
	}
	entry, err := s.repo.Create(ctx, fields, userID)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return entry, nil
}

// List returns the user's entries, newest date first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]Entry, error) {
	return s.repo.List(ctx, userID)
}

// Get fetches one entry, ownership-filtered.
func (s *Service) Get(ctx context.Context, id, userID uuid.UUID) (*Entry, error) {
	return s.repo.Get(ctx, id, userID)
}

// Update validates the patch and applies it to the user's entry. An
// empty patch is a no-op read so updatedAt only moves on real changes.
func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, req UpdateEntryRequest) (*Entry, error) {
	patch, err := req.Validate()
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return s.repo.Get(ctx, id, userID)
	}
	entry, err := s.repo.Update(ctx, id, userID, patch)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return entry, nil
}

// Delete removes the user's entry and reports whether anything was
// removed. Deleting an already-deleted id is not an error.
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.invalidate(ctx, userID)
	}
	return deleted, nil
}

func (s *Service) invalidate(ctx context.Context, userID uuid.UUID) {
	if s.reports != nil {
		s.reports.Invalidate(ctx, userID)
	}
}
