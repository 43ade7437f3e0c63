// AngelaMos | 2026
// handler.go

package comment

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/uni-events/internal/core"
	"github.com/carterperez-dev/uni-events/internal/event"
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

// RegisterRoutes shares one path parameter: GET and POST read it as an
// event id, PUT and DELETE as a comment id.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/comments", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/{id}", h.List)
		r.Post("/{id}", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	viewer, ok := event.ViewerFromRequest(r)
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	comments, err := h.service.List(r.Context(), viewer, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "event")
		return
	}

	core.OK(w, ToCommentResponseList(comments))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	viewer, ok := event.ViewerFromRequest(r)
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	var req CommentRequest
	if err := core.DecodeAndValidate(r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	c, err := h.service.Create(r.Context(), viewer, chi.URLParam(r, "id"), req.CommentText)
	if err != nil {
		writeError(w, r, err, "event")
		return
	}

	core.Created(w, ToCommentResponse(c))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	var req CommentRequest
	if err := core.DecodeAndValidate(r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	c, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), req.CommentText)
	if err != nil {
		writeError(w, r, err, "comment")
		return
	}

	core.OK(w, ToCommentResponse(c))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err, "comment")
		return
	}

	core.OK(w, MessageResponse{Message: "comment deleted"})
}

func writeError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	switch {
	case errors.Is(err, ErrNotOwner):
		core.Forbidden(w, ErrNotOwner.Error())
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, resource)
	default:
		core.InternalServerError(w, r, err)
	}
}
