package service

import (
	"context"

	"github.com/jswan/mercantile/internal/domain"
)

// ActivityService exposes the append-only activity log to staff.
type ActivityService struct {
	store Store
}

// NewActivityService creates a new activity service.
func NewActivityService(store Store) *ActivityService {
	return &ActivityService{store: store}
}

// ListRecent returns the newest activity entries, most recent first.
func (s *ActivityService) ListRecent(ctx context.Context, limit int32) ([]domain.ActivityEntry, error) {
	return s.store.ListActivity(ctx, limit)
}
