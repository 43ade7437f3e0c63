// AngelaMos | 2026
// service.go

package university

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/uni-events/internal/auth"
	"github.com/carterperez-dev/uni-events/internal/core"
)

var ErrNameTaken = errors.New("university name already exists")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateUniversityRequest,
) (*University, error) {
	u := &University{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Location: req.Location,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("create university: %w", err)
	}

	return u, nil
}

// Ensure returns the university with the given name, creating it first
// when missing. The bool reports whether it was created.
func (s *Service) Ensure(
	ctx context.Context,
	name, location string,
) (*University, bool, error) {
	existing, err := s.repo.GetByName(ctx, name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, false, err
	}

	created, err := s.Create(ctx, CreateUniversityRequest{Name: name, Location: location})
	if errors.Is(err, ErrNameTaken) {
		existing, err = s.repo.GetByName(ctx, name)
		return existing, false, err
	}
	if err != nil {
		return nil, false, err
	}

	return created, true, nil
}

func (s *Service) List(ctx context.Context) ([]University, error) {
	return s.repo.List(ctx)
}

// Exists treats a malformed id as unknown rather than as a store error.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	return s.repo.Exists(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

var _ auth.UniversityChecker = (*Service)(nil)
