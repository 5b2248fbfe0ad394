package attendance

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	errors "github.com/frahmantamala/attendance-tracker/internal"
	"github.com/frahmantamala/attendance-tracker/internal/core/daybucket"
	"github.com/frahmantamala/attendance-tracker/internal/transport"
	"github.com/frahmantamala/attendance-tracker/pkg/logger"
	"github.com/go-chi/chi"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ServiceAPI interface {
	CheckIn(ctx context.Context, userID int64) (*Result, error)
	CheckOut(ctx context.Context, userID int64) (*Result, error)
	MyAttendance(ctx context.Context, userID int64, month string) (*Summary, error)
	EmployeeAttendance(ctx context.Context, employeeID int64, month string) (*Summary, error)
	DayAttendance(ctx context.Context, day time.Time) (*DayReport, error)
	ExportEmployeeAttendance(ctx context.Context, employeeID int64, month string) (*bytes.Buffer, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// CheckIn handles POST /attendance/check-in
func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	user, ok := errors.UserFromContext(r.Context())
	if !ok {
		h.HandleError(w, errors.ErrUnauthorized)
		return
	}

	result, err := h.Service.CheckIn(r.Context(), user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, NewLifecycleResponse(result))
}

// CheckOut handles POST /attendance/check-out
func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	user, ok := errors.UserFromContext(r.Context())
	if !ok {
		h.HandleError(w, errors.ErrUnauthorized)
		return
	}

	result, err := h.Service.CheckOut(r.Context(), user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, NewLifecycleResponse(result))
}

// MyAttendance handles GET /attendance/me?month=YYYY-MM
func (h *Handler) MyAttendance(w http.ResponseWriter, r *http.Request) {
	user, ok := errors.UserFromContext(r.Context())
	if !ok {
		h.HandleError(w, errors.ErrUnauthorized)
		return
	}

	summary, err := h.Service.MyAttendance(r.Context(), user.ID, r.URL.Query().Get("month"))
	if err != nil {
		h.Logger.Error("MyAttendance: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, NewHistoryResponse(summary))
}

// EmployeeAttendance handles GET /attendance/employee/{id}?month=YYYY-MM
func (h *Handler) EmployeeAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID, err := parseEmployeeID(r)
	if err != nil {
		h.HandleError(w, errors.ErrInvalidEmployeeID)
		return
	}

	summary, err := h.Service.EmployeeAttendance(r.Context(), employeeID, r.URL.Query().Get("month"))
	if err != nil {
		h.Logger.Error("EmployeeAttendance: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, NewHistoryResponse(summary))
}

// ExportEmployeeAttendance handles GET /attendance/employee/{id}/export?month=YYYY-MM
func (h *Handler) ExportEmployeeAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID, err := parseEmployeeID(r)
	if err != nil {
		h.HandleError(w, errors.ErrInvalidEmployeeID)
		return
	}

	month := r.URL.Query().Get("month")
	buf, err := h.Service.ExportEmployeeAttendance(r.Context(), employeeID, month)
	if err != nil {
		h.Logger.Error("ExportEmployeeAttendance: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFileName(employeeID, month)))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.Error("ExportEmployeeAttendance: failed to write workbook", "error", err)
	}
}

// DayAttendance handles GET /attendance/day?date=YYYY-MM-DD
func (h *Handler) DayAttendance(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if strings.TrimSpace(raw) == "" {
		h.HandleError(w, errors.ErrDateRequired)
		return
	}

	day, err := daybucket.ParseDay(raw)
	if err != nil {
		h.HandleError(w, errors.ErrInvalidDate)
		return
	}

	report, err := h.Service.DayAttendance(r.Context(), day)
	if err != nil {
		h.Logger.Error("DayAttendance: service error", "error", err, "date", raw)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, NewDayResponse(report))
}

func parseEmployeeID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("non-positive id %d", id)
	}
	return id, nil
}

func exportFileName(employeeID int64, month string) string {
	if r, ok := daybucket.MonthRange(month); ok {
		return fmt.Sprintf("attendance-%d-%s.xlsx", employeeID, r.Start.Format("2006-01"))
	}
	return fmt.Sprintf("attendance-%d.xlsx", employeeID)
}
