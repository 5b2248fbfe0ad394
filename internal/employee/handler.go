package employee

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	errors "github.com/frahmantamala/attendance-tracker/internal"
	coreuser "github.com/frahmantamala/attendance-tracker/internal/core/user"
	"github.com/frahmantamala/attendance-tracker/internal/transport"
	"github.com/frahmantamala/attendance-tracker/pkg/logger"
	"github.com/go-chi/chi"
)

var errInvalidBody = errors.NewValidationError("Invalid request body.", errors.ErrCodeValidationFailed)

type ServiceAPI interface {
	Create(ctx context.Context, dto CreateDTO) (*coreuser.User, error)
	List(ctx context.Context) ([]*coreuser.User, error)
	Update(ctx context.Context, id int64, dto UpdateDTO) (*coreuser.User, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// List handles GET /employees
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.List(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, NewListResponse(users))
}

// Create handles POST /employees
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleError(w, errInvalidBody)
		return
	}

	u, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, NewResponse(u))
}

// Update handles PUT /employees/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseEmployeeID(r)
	if !ok {
		h.HandleError(w, errors.ErrInvalidEmployeeID)
		return
	}

	var dto UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleError(w, errInvalidBody)
		return
	}

	u, err := h.Service.Update(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, NewResponse(u))
}

// Delete handles DELETE /employees/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseEmployeeID(r)
	if !ok {
		h.HandleError(w, errors.ErrInvalidEmployeeID)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Employee deleted."})
}

func parseEmployeeID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
