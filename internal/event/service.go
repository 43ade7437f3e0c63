// AngelaMos | 2026
// service.go

package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/uni-events/internal/core"
	"github.com/carterperez-dev/uni-events/internal/metrics"
)

var (
	ErrRSONameRequired  = errors.New("rsoName is required for rso events")
	ErrRSONotApproved   = errors.New("RSO not found or not approved")
	ErrScheduleConflict = errors.New("an event already exists at this location and time")
	ErrInvalidDatetime  = errors.New("datetime must look like 2006-01-02T15:04")
)

// RSOResolver answers the RSO questions event creation and listing need.
type RSOResolver interface {
	ApprovedIDByName(ctx context.Context, name string) (string, error)
	MemberRSOIDs(ctx context.Context, userID string) ([]string, error)
}

type Service struct {
	repo    Repository
	rsos    RSOResolver
	metrics *metrics.Registry
}

func NewService(repo Repository, rsos RSOResolver, reg *metrics.Registry) *Service {
	return &Service{repo: repo, rsos: rsos, metrics: reg}
}

var datetimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseDatetime accepts minute, second or RFC 3339 precision and returns
// the instant in UTC. Events start on a whole minute, so any seconds are
// rejected instead of rounded away.
func ParseDatetime(s string) (time.Time, error) {
	for _, layout := range datetimeLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Second() != 0 || t.Nanosecond() != 0 {
			return time.Time{}, fmt.Errorf("%w: seconds must be zero", ErrInvalidDatetime)
		}
		return t.UTC(), nil
	}
	return time.Time{}, ErrInvalidDatetime
}

func (s *Service) Create(
	ctx context.Context,
	creator Viewer,
	req CreateEventRequest,
) (created *Event, err error) {
	ctx, span := core.StartSpan(ctx, "event.Create",
		attribute.String("event.visibility", req.Visibility))
	defer func() { core.EndSpan(span, err) }()

	visibility, ok := NormalizeVisibility(req.Visibility)
	if !ok {
		return nil, fmt.Errorf("visibility %q: %w", req.Visibility, core.ErrInvalidInput)
	}

	at, err := ParseDatetime(req.Datetime)
	if err != nil {
		return nil, err
	}

	var rsoID *string
	if visibility == VisibilityRSO {
		if req.RSOName == "" {
			return nil, ErrRSONameRequired
		}
		id, err := s.rsos.ApprovedIDByName(ctx, req.RSOName)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return nil, ErrRSONotApproved
			}
			return nil, fmt.Errorf("resolve rso: %w", err)
		}
		rsoID = &id
	}

	taken, err := s.repo.ExistsAtSlot(ctx, req.Location, at)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	if taken {
		return nil, ErrScheduleConflict
	}

	e := &Event{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Description:  req.Description,
		Location:     req.Location,
		EventTime:    at,
		Category:     req.Category,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		Visibility:   visibility,
		AdminID:      creator.UserID,
		UniversityID: creator.UniversityID,
		RSOID:        rsoID,
	}
	if rsoID != nil {
		e.RSOName = &req.RSOName
	}

	if err := s.repo.Create(ctx, e); err != nil {
		if errors.Is(err, core.ErrConflict) {
			return nil, ErrScheduleConflict
		}
		return nil, err
	}

	s.metrics.EventCreated(visibility)
	return e, nil
}

func (s *Service) List(ctx context.Context, viewer Viewer) ([]Event, error) {
	candidates, err := s.repo.ListCandidates(ctx, viewer)
	if err != nil {
		return nil, err
	}

	memberOf, err := s.rsos.MemberRSOIDs(ctx, viewer.UserID)
	if err != nil {
		return nil, fmt.Errorf("list member rsos: %w", err)
	}

	return FilterVisible(candidates, viewer, memberOf), nil
}

// Get returns ErrNotFound both for missing events and for events the
// viewer is not allowed to see.
func (s *Service) Get(ctx context.Context, viewer Viewer, id string) (*Event, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("get event: %w", core.ErrNotFound)
	}

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var memberOf []string
	if e.Visibility == VisibilityRSO {
		memberOf, err = s.rsos.MemberRSOIDs(ctx, viewer.UserID)
		if err != nil {
			return nil, fmt.Errorf("list member rsos: %w", err)
		}
	}

	if !CanView(e, viewer, memberSet(memberOf)) {
		return nil, fmt.Errorf("get event: %w", core.ErrNotFound)
	}

	return e, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
