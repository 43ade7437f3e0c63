// AngelaMos | 2026
// repository.go

package rso

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/uni-events/internal/core"
)

type Repository interface {
	CreateWithMembers(ctx context.Context, rso *RSO, emails []string) error
	GetByID(ctx context.Context, id string) (*RSO, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Approve(ctx context.Context, id string) (bool, error)
	ListPending(ctx context.Context) ([]RSO, error)
	ListApprovedByUniversity(ctx context.Context, universityID string) ([]RSO, error)
	ApprovedIDByName(ctx context.Context, name string) (string, error)
	MemberRSOIDs(ctx context.Context, userID string) ([]string, error)
	LinkMember(ctx context.Context, email, userID string) (int64, error)
	Counts(ctx context.Context) (Counts, error)
}

type repository struct {
	db core.TxBeginner
}

func NewRepository(db core.TxBeginner) Repository {
	return &repository{db: db}
}

const rsoSelect = `
		SELECT r.id, r.name, r.description, r.admin_id, r.university_id,
		       r.status, r.created_at, r.approved_at,
		       (SELECT COUNT(*) FROM rso_members m WHERE m.rso_id = r.id) AS member_count
		FROM rsos r`

// CreateWithMembers inserts the RSO and its roster in one transaction.
// user_id is resolved per email from users, and stays NULL for people
// who have not registered yet.
func (r *repository) CreateWithMembers(
	ctx context.Context,
	rso *RSO,
	emails []string,
) error {
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		insertRSO := `
			INSERT INTO rsos (id, name, description, admin_id, university_id, status)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING created_at`

		if err := tx.GetContext(ctx, &rso.CreatedAt, insertRSO,
			rso.ID,
			rso.Name,
			rso.Description,
			rso.AdminID,
			rso.UniversityID,
			rso.Status,
		); err != nil {
			if core.IsDuplicateKeyError(err) {
				return fmt.Errorf("insert rso: %w", core.ErrDuplicateKey)
			}
			return fmt.Errorf("insert rso: %w", err)
		}

		insertMember := `
			INSERT INTO rso_members (rso_id, email, user_id)
			VALUES ($1, $2::text, (SELECT id FROM users WHERE email = $2::text))`

		for _, email := range emails {
			if _, err := tx.ExecContext(ctx, insertMember, rso.ID, email); err != nil {
				return fmt.Errorf("insert member %s: %w", email, err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("create rso: %w", err)
	}

	rso.MemberCount = len(emails)
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*RSO, error) {
	var rso RSO
	err := r.db.GetContext(ctx, &rso, rsoSelect+` WHERE r.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get rso: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get rso: %w", err)
	}

	return &rso, nil
}

func (r *repository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM rsos WHERE name = $1)`
	if err := r.db.GetContext(ctx, &exists, query, name); err != nil {
		return false, fmt.Errorf("check rso name: %w", err)
	}
	return exists, nil
}

// Approve moves a pending RSO to approved and reports whether this call
// made the transition.
func (r *repository) Approve(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE rsos
		SET status = 'approved', approved_at = NOW()
		WHERE id = $1 AND status = 'pending'`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("approve rso: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("approve rso: %w", err)
	}

	return rows == 1, nil
}

func (r *repository) ListPending(ctx context.Context) ([]RSO, error) {
	rsos := []RSO{}
	query := rsoSelect + ` WHERE r.status = 'pending' ORDER BY r.created_at`
	if err := r.db.SelectContext(ctx, &rsos, query); err != nil {
		return nil, fmt.Errorf("list pending rsos: %w", err)
	}
	return rsos, nil
}

func (r *repository) ListApprovedByUniversity(
	ctx context.Context,
	universityID string,
) ([]RSO, error) {
	rsos := []RSO{}
	query := rsoSelect + `
		WHERE r.status = 'approved' AND r.university_id = $1
		ORDER BY r.name`
	if err := r.db.SelectContext(ctx, &rsos, query, universityID); err != nil {
		return nil, fmt.Errorf("list approved rsos: %w", err)
	}
	return rsos, nil
}

func (r *repository) ApprovedIDByName(ctx context.Context, name string) (string, error) {
	var id string
	query := `SELECT id FROM rsos WHERE name = $1 AND status = 'approved'`

	err := r.db.GetContext(ctx, &id, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("find approved rso: %w", core.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("find approved rso: %w", err)
	}

	return id, nil
}

func (r *repository) MemberRSOIDs(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	query := `SELECT rso_id FROM rso_members WHERE user_id = $1`
	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("list member rsos: %w", err)
	}
	return ids, nil
}

func (r *repository) LinkMember(
	ctx context.Context,
	email, userID string,
) (int64, error) {
	query := `
		UPDATE rso_members
		SET user_id = $2
		WHERE email = $1 AND user_id IS NULL`

	result, err := r.db.ExecContext(ctx, query, email, userID)
	if err != nil {
		return 0, fmt.Errorf("link member: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("link member: %w", err)
	}

	return rows, nil
}

func (r *repository) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	query := `
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE status = 'pending') AS pending
		FROM rsos`
	if err := r.db.GetContext(ctx, &c, query); err != nil {
		return Counts{}, fmt.Errorf("count rsos: %w", err)
	}
	return c, nil
}
