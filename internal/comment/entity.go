// AngelaMos | 2026
// entity.go

package comment

import (
	"time"
)

type Comment struct {
	ID          string    `db:"id"`
	EventID     string    `db:"event_id"`
	UserID      string    `db:"user_id"`
	Username    string    `db:"username"`
	CommentText string    `db:"comment_text"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
