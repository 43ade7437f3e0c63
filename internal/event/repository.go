// AngelaMos | 2026
// repository.go

package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/uni-events/internal/core"
)

type Repository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListCandidates(ctx context.Context, viewer Viewer) ([]Event, error)
	ExistsAtSlot(ctx context.Context, location string, at time.Time) (bool, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const eventSelect = `
		SELECT e.id, e.name, e.description, e.location, e.event_time,
		       e.category, e.contact_phone, e.contact_email, e.visibility,
		       e.admin_id, e.university_id, e.rso_id, r.name AS rso_name,
		       e.created_at
		FROM events e
		LEFT JOIN rsos r ON r.id = e.rso_id`

const slotConstraint = "events_location_time_key"

func (r *repository) Create(ctx context.Context, e *Event) error {
	query := `
		INSERT INTO events (id, name, description, location, event_time,
		                    category, contact_phone, contact_email, visibility,
		                    admin_id, university_id, rso_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &e.CreatedAt, query,
		e.ID,
		e.Name,
		e.Description,
		e.Location,
		e.EventTime,
		e.Category,
		e.ContactPhone,
		e.ContactEmail,
		e.Visibility,
		e.AdminID,
		e.UniversityID,
		e.RSOID,
	)
	if err != nil {
		if core.IsDuplicateKeyError(err) && core.ConstraintName(err) == slotConstraint {
			return fmt.Errorf("create event: %w", core.ErrConflict)
		}
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("create event: %w", core.ErrInvalidInput)
		}
		return fmt.Errorf("create event: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Event, error) {
	var e Event
	err := r.db.GetContext(ctx, &e, eventSelect+` WHERE e.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get event: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	return &e, nil
}

// ListCandidates narrows events in SQL to what viewer can plausibly
// see. The caller still applies FilterVisible.
func (r *repository) ListCandidates(ctx context.Context, viewer Viewer) ([]Event, error) {
	query := eventSelect + `
		LEFT JOIN rso_members m ON m.rso_id = e.rso_id AND m.user_id = $1
		WHERE e.visibility = 'public'
		   OR (e.visibility = 'private' AND e.university_id::text = $2)
		   OR (e.visibility = 'rso' AND m.user_id IS NOT NULL)
		ORDER BY e.event_time, e.id`

	events := []Event{}
	if err := r.db.SelectContext(ctx, &events, query, viewer.UserID, viewer.UniversityID); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return events, nil
}

func (r *repository) ExistsAtSlot(
	ctx context.Context,
	location string,
	at time.Time,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM events WHERE location = $1 AND event_time = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, location, at); err != nil {
		return false, fmt.Errorf("check event slot: %w", err)
	}

	return exists, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM events`); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}
