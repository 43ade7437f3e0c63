// AngelaMos | 2026
// repository.go

package university

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/uni-events/internal/core"
)

type Repository interface {
	Create(ctx context.Context, u *University) error
	GetByName(ctx context.Context, name string) (*University, error)
	List(ctx context.Context) ([]University, error)
	Exists(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *University) error {
	query := `
		INSERT INTO universities (id, name, location)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	if err := r.db.GetContext(ctx, &u.CreatedAt, query, u.ID, u.Name, u.Location); err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create university: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create university: %w", err)
	}

	return nil
}

func (r *repository) GetByName(ctx context.Context, name string) (*University, error) {
	query := `
		SELECT id, name, location, created_at
		FROM universities
		WHERE LOWER(name) = LOWER($1)`

	var u University
	err := r.db.GetContext(ctx, &u, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get university: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get university: %w", err)
	}

	return &u, nil
}

func (r *repository) List(ctx context.Context) ([]University, error) {
	query := `
		SELECT id, name, location, created_at
		FROM universities
		ORDER BY name`

	universities := []University{}
	if err := r.db.SelectContext(ctx, &universities, query); err != nil {
		return nil, fmt.Errorf("list universities: %w", err)
	}

	return universities, nil
}

func (r *repository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM universities WHERE id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("check university exists: %w", err)
	}

	return exists, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM universities`); err != nil {
		return 0, fmt.Errorf("count universities: %w", err)
	}
	return n, nil
}
