// AngelaMos | 2026
// handler.go

package rso

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
	r.Route("/rso", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/create", h.Create)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSuperAdmin)
			r.Post("/approve", h.Approve)
			r.Get("/pending", h.Pending)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		core.Unauthorized(w, "")
		return
	}

	var req CreateRSORequest
	if err := core.DecodeAndValidate(r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), claims.UserID, claims.UniversityID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoMembers),
			errors.Is(err, ErrDomainMismatch),
			errors.Is(err, ErrTooFewMembers):
			core.BadRequest(w, err.Error())
		case errors.Is(err, ErrNameTaken):
			core.Conflict(w, ErrNameTaken.Error())
		case errors.Is(err, ErrUnknownCaller):
			core.Unauthorized(w, ErrUnknownCaller.Error())
		default:
			core.InternalServerError(w, r, err)
		}
		return
	}

	core.Created(w, CreateRSOResponse{RSOID: created.ID})
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	var req ApproveRSORequest
	if err := core.DecodeAndValidate(r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	approved, err := h.service.Approve(r.Context(), req.RSOID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "rso")
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, ToRSOResponse(approved))
}

func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	rsos, err := h.service.ListPending(r.Context())
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, ToRSOResponseList(rsos))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rsos, err := h.service.ListForUniversity(r.Context(), middleware.GetUniversityID(r.Context()))
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, ToRSOResponseList(rsos))
}
