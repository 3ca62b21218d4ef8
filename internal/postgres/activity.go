package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/jswan/mercantile/internal/domain"
)

// AppendActivity inserts one row into the append-only activity log.
func (s *Store) AppendActivity(ctx context.Context, userID uuid.UUID, action, entity string, entityID uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO activity_log (user_id, action, entity, entity_id)
		 VALUES ($1, $2, $3, $4)`,
		userID, action, entity, entityID,
	)
	if err != nil {
		return domain.Internal(err, "activity.append", "failed to append activity")
	}
	return nil
}

// ListActivity returns the most recent activity entries.
func (s *Store) ListActivity(ctx context.Context, limit int32) ([]domain.ActivityEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, action, entity, entity_id, created_at
		 FROM activity_log ORDER BY id DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, domain.Internal(err, "activity.list", "failed to list activity")
	}
	defer rows.Close()

	var entries []domain.ActivityEntry
	for rows.Next() {
		var e domain.ActivityEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Entity, &e.EntityID, &e.CreatedAt); err != nil {
			return nil, domain.Internal(err, "activity.list", "failed to scan activity entry")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "activity.list", "failed to read activity")
	}
	return entries, nil
}
