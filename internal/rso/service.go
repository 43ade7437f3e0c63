// AngelaMos | 2026
// service.go

package rso

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/uni-events/internal/auth"
	"github.com/carterperez-dev/uni-events/internal/core"
	"github.com/carterperez-dev/uni-events/internal/metrics"
)

var (
	ErrNameTaken     = errors.New("an RSO with this name already exists")
	ErrUnknownCaller = errors.New("caller account no longer exists")
)

// AdminLookup resolves the creating user so their email domain can be
// compared against the roster.
type AdminLookup interface {
	GetByID(ctx context.Context, id string) (*auth.UserInfo, error)
}

type Service struct {
	repo       Repository
	users      AdminLookup
	minMembers int
	metrics    *metrics.Registry
}

func NewService(
	repo Repository,
	users AdminLookup,
	minMembers int,
	reg *metrics.Registry,
) *Service {
	return &Service{
		repo:       repo,
		users:      users,
		minMembers: minMembers,
		metrics:    reg,
	}
}

// Create validates the roster and writes the RSO as pending. Nothing is
// written unless the whole roster passes.
func (s *Service) Create(
	ctx context.Context,
	callerID, universityID string,
	req CreateRSORequest,
) (created *RSO, err error) {
	ctx, span := core.StartSpan(ctx, "rso.Create",
		attribute.Int("rso.members", len(req.Members)))
	defer func() { core.EndSpan(span, err) }()

	if len(req.Members) == 0 {
		return nil, ErrNoMembers
	}

	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrUnknownCaller
		}
		return nil, fmt.Errorf("get caller: %w", err)
	}

	emails, err := ValidateMembership(caller.Email, req.Members, s.minMembers)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("create rso: %w", err)
	}
	if taken {
		return nil, ErrNameTaken
	}

	rso := &RSO{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Description:  req.Description,
		AdminID:      callerID,
		UniversityID: universityID,
		Status:       StatusPending,
	}

	if err := s.repo.CreateWithMembers(ctx, rso, emails); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrNameTaken
		}
		return nil, err
	}

	s.metrics.RSOCreated()
	return rso, nil
}

// Approve is idempotent: approving an approved RSO returns it unchanged.
func (s *Service) Approve(ctx context.Context, id string) (*RSO, error) {
	changed, err := s.repo.Approve(ctx, id)
	if err != nil {
		return nil, err
	}

	rso, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if changed {
		s.metrics.RSOApproved()
	}
	return rso, nil
}

func (s *Service) ListPending(ctx context.Context) ([]RSO, error) {
	return s.repo.ListPending(ctx)
}

func (s *Service) ListForUniversity(
	ctx context.Context,
	universityID string,
) ([]RSO, error) {
	return s.repo.ListApprovedByUniversity(ctx, universityID)
}

func (s *Service) ApprovedIDByName(ctx context.Context, name string) (string, error) {
	return s.repo.ApprovedIDByName(ctx, name)
}

func (s *Service) MemberRSOIDs(ctx context.Context, userID string) ([]string, error) {
	return s.repo.MemberRSOIDs(ctx, userID)
}

func (s *Service) LinkMemberships(ctx context.Context, email, userID string) error {
	_, err := s.repo.LinkMember(ctx, email, userID)
	return err
}

func (s *Service) Counts(ctx context.Context) (Counts, error) {
	return s.repo.Counts(ctx)
}

var _ auth.MembershipLinker = (*Service)(nil)
