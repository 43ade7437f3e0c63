// AngelaMos | 2026
// dto.go

package comment

import (
	"strings"
	"time"
)

type CommentRequest struct {
	CommentText string `json:"comment_text" validate:"required,min=1,max=2000"`
}

func (r *CommentRequest) Normalize() {
	r.CommentText = strings.TrimSpace(r.CommentText)
}

type CommentResponse struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username,omitempty"`
	CommentText string    `json:"comment_text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func ToCommentResponse(c *Comment) CommentResponse {
	return CommentResponse{
		ID:          c.ID,
		EventID:     c.EventID,
		UserID:      c.UserID,
		Username:    c.Username,
		CommentText: c.CommentText,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func ToCommentResponseList(comments []Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, ToCommentResponse(&comments[i]))
	}
	return out
}
