// AngelaMos | 2026
// repository.go

package comment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/uni-events/internal/core"
)

type Repository interface {
	Create(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id string) (*Comment, error)
	ListByEvent(ctx context.Context, eventID string) ([]Comment, error)
	UpdateText(ctx context.Context, id, text string) (*Comment, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const commentSelect = `
		SELECT c.id, c.event_id, c.user_id, COALESCE(u.username, '') AS username,
		       c.comment_text, c.created_at, c.updated_at
		FROM comments c
		LEFT JOIN users u ON u.id = c.user_id`

func (r *repository) Create(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO comments (id, event_id, user_id, comment_text)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query, c.ID, c.EventID, c.UserID, c.CommentText)
	if err := row.Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("create comment: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Comment, error) {
	var c Comment
	err := r.db.GetContext(ctx, &c, commentSelect+` WHERE c.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get comment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}

	return &c, nil
}

func (r *repository) ListByEvent(ctx context.Context, eventID string) ([]Comment, error) {
	comments := []Comment{}
	query := commentSelect + `
		WHERE c.event_id = $1
		ORDER BY c.created_at DESC, c.id`
	if err := r.db.SelectContext(ctx, &comments, query, eventID); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (r *repository) UpdateText(ctx context.Context, id, text string) (*Comment, error) {
	query := `
		UPDATE comments
		SET comment_text = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, text)
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("update comment: %w", core.ErrNotFound)
	}

	return r.GetByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete comment: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM comments`); err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return n, nil
}
