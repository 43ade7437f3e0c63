// AngelaMos | 2026
// handler.go

package university

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

// RegisterRoutes keeps the listing public; creation is limited to
// super admins.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/universities", func(r chi.Router) {
		r.Get("/", h.List)
		r.With(authenticator, middleware.RequireSuperAdmin).
			Post("/create", h.Create)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUniversityRequest
	if err := core.DecodeAndValidate(r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	u, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrNameTaken) {
			core.JSONError(w, core.DuplicateError("university name"))
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	core.Created(w, CreateUniversityResponse{UniversityID: u.ID})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	universities, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, ToUniversityResponseList(universities))
}
