// AngelaMos | 2026
// handler.go

package event

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/uni-events/internal/core"
	"github.com/carterperez-dev/uni-events/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/events", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/create", h.Create)
		r.Get("/get", h.List)
		r.Get("/{id}", h.Get)
	})
}

// ViewerFromRequest reads the authenticated identity set by the Guard.
func ViewerFromRequest(r *http.Request) (Viewer, bool) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		return Viewer{}, false
	}
	return Viewer{UserID: claims.UserID, UniversityID: claims.UniversityID}, true
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	viewer, ok := ViewerFromRequest(r)
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	var req CreateEventRequest
	if err := core.DecodeAndValidate(r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), viewer, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDatetime),
			errors.Is(err, ErrRSONameRequired),
			errors.Is(err, ErrRSONotApproved):
			core.BadRequest(w, err.Error())
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "invalid event")
		case errors.Is(err, ErrScheduleConflict):
			core.Conflict(w, ErrScheduleConflict.Error())
		default:
			core.InternalServerError(w, r, err)
		}
		return
	}

	core.Created(w, CreateEventResponse{EventID: created.ID})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	viewer, ok := ViewerFromRequest(r)
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	events, err := h.service.List(r.Context(), viewer)
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, ToEventResponseList(events))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	viewer, ok := ViewerFromRequest(r)
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	e, err := h.service.Get(r.Context(), viewer, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "event")
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, ToEventResponse(e))
}
