// AngelaMos | 2026
// service.go

package comment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/uni-events/internal/core"
	"github.com/carterperez-dev/uni-events/internal/event"
)

var ErrNotOwner = errors.New("only the author may change this comment")

// EventAccess returns core.ErrNotFound for events the viewer may not see.
type EventAccess interface {
	Get(ctx context.Context, viewer event.Viewer, id string) (*event.Event, error)
}

type Service struct {
	repo   Repository
	events EventAccess
}

func NewService(repo Repository, events EventAccess) *Service {
	return &Service{repo: repo, events: events}
}

func (s *Service) List(
	ctx context.Context,
	viewer event.Viewer,
	eventID string,
) ([]Comment, error) {
	if _, err := s.events.Get(ctx, viewer, eventID); err != nil {
		return nil, err
	}

	return s.repo.ListByEvent(ctx, eventID)
}

func (s *Service) Create(
	ctx context.Context,
	viewer event.Viewer,
	eventID, text string,
) (*Comment, error) {
	if _, err := s.events.Get(ctx, viewer, eventID); err != nil {
		return nil, err
	}

	c := &Comment{
		ID:          uuid.New().String(),
		EventID:     eventID,
		UserID:      viewer.UserID,
		CommentText: text,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, c.ID)
}

func (s *Service) Update(
	ctx context.Context,
	userID, commentID, text string,
) (*Comment, error) {
	if err := s.authorize(ctx, userID, commentID); err != nil {
		return nil, err
	}

	return s.repo.UpdateText(ctx, commentID, text)
}

func (s *Service) Delete(ctx context.Context, userID, commentID string) error {
	if err := s.authorize(ctx, userID, commentID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, commentID)
}

// authorize re-reads the comment so ownership is checked against the
// stored author.
func (s *Service) authorize(ctx context.Context, userID, commentID string) error {
	if _, err := uuid.Parse(commentID); err != nil {
		return fmt.Errorf("get comment: %w", core.ErrNotFound)
	}

	c, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if c.UserID != userID {
		return ErrNotOwner
	}

	return nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
