package attendance_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	apperrors "github.com/frahmantamala/attendance-tracker/internal"
	"github.com/frahmantamala/attendance-tracker/internal/attendance"
	"github.com/frahmantamala/attendance-tracker/internal/core/user"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

type stubService struct {
	result     *attendance.Result
	summary    *attendance.Summary
	report     *attendance.DayReport
	export     *bytes.Buffer
	err        error
	gotUserID  int64
	gotMonth   string
	gotDay     time.Time
	checkedOut bool
}

func (s *stubService) CheckIn(_ context.Context, userID int64) (*attendance.Result, error) {
	s.gotUserID = userID
	return s.result, s.err
}

func (s *stubService) CheckOut(_ context.Context, userID int64) (*attendance.Result, error) {
	s.gotUserID = userID
	s.checkedOut = true
	return s.result, s.err
}

func (s *stubService) MyAttendance(_ context.Context, userID int64, month string) (*attendance.Summary, error) {
	s.gotUserID, s.gotMonth = userID, month
	return s.summary, s.err
}

func (s *stubService) EmployeeAttendance(_ context.Context, employeeID int64, month string) (*attendance.Summary, error) {
	s.gotUserID, s.gotMonth = employeeID, month
	return s.summary, s.err
}

func (s *stubService) DayAttendance(_ context.Context, day time.Time) (*attendance.DayReport, error) {
	s.gotDay = day
	return s.report, s.err
}

func (s *stubService) ExportEmployeeAttendance(_ context.Context, employeeID int64, month string) (*bytes.Buffer, error) {
	s.gotUserID, s.gotMonth = employeeID, month
	return s.export, s.err
}

var _ = Describe("Attendance Handler", func() {
	var (
		svc     *stubService
		handler *attendance.Handler
		router  *chi.Mux
		caller  *apperrors.Principal
	)

	BeforeEach(func() {
		svc = &stubService{}
		handler = attendance.NewHandler(svc)
		caller = &apperrors.Principal{ID: 5, Name: "Ana", Role: user.RoleEmployee, IsActive: true}

		router = chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(apperrors.ContextWithUser(r.Context(), caller)))
			})
		})
		router.Post("/attendance/check-in", handler.CheckIn)
		router.Post("/attendance/check-out", handler.CheckOut)
		router.Get("/attendance/me", handler.MyAttendance)
		router.Get("/attendance/day", handler.DayAttendance)
		router.Get("/attendance/employee/{id}", handler.EmployeeAttendance)
		router.Get("/attendance/employee/{id}/export", handler.ExportEmployeeAttendance)
	})

	serve := func(method, target string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
		return w
	}

	decode := func(w *httptest.ResponseRecorder) map[string]interface{} {
		var body map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		return body
	}

	Context("POST /attendance/check-in", func() {
		It("returns the attendance and time log of the caller", func() {
			checkIn := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
			svc.result = &attendance.Result{
				Attendance: &attendance.Record{ID: 1, UserID: 5, Date: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), Status: attendance.StatusPresent, TotalHours: decimal.Zero},
				TimeLog:    &attendance.TimeLog{ID: 2, AttendanceID: 1, CheckIn: checkIn},
			}

			w := serve(http.MethodPost, "/attendance/check-in")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(svc.gotUserID).To(Equal(int64(5)))
			body := decode(w)
			Expect(body["attendance"]).To(HaveKeyWithValue("userId", BeNumerically("==", 5)))
			Expect(body["attendance"]).To(HaveKeyWithValue("totalHours", BeNumerically("==", 0)))
			Expect(body["timeLog"]).To(HaveKeyWithValue("checkIn", "2024-03-15T09:00:00Z"))
			Expect(body["timeLog"]).To(HaveKeyWithValue("checkOut", BeNil()))
			Expect(body["attendance"]).NotTo(HaveKey("timeLog"))
		})

		It("maps already checked in to 400", func() {
			svc.err = apperrors.ErrAlreadyCheckedIn

			w := serve(http.MethodPost, "/attendance/check-in")

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)).To(HaveKeyWithValue("message", "Already checked in for today."))
		})
	})

	Context("POST /attendance/check-out", func() {
		It("maps a missing check-in to 400", func() {
			svc.err = apperrors.ErrNoCheckInFound

			w := serve(http.MethodPost, "/attendance/check-out")

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)).To(HaveKeyWithValue("message", "No check-in found for today."))
		})

		It("hides unexpected errors behind a 500", func() {
			svc.err = errors.New("pq: connection refused")

			w := serve(http.MethodPost, "/attendance/check-out")

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(decode(w)).To(HaveKeyWithValue("message", "Server error"))
		})
	})

	Context("GET /attendance/me", func() {
		It("passes the month through and returns the total as a number", func() {
			svc.summary = attendance.Summarize([]*attendance.Record{
				{ID: 1, UserID: 5, Status: attendance.StatusPresent, TotalHours: decimal.RequireFromString("8.5")},
				{ID: 2, UserID: 5, Status: attendance.StatusPresent, TotalHours: decimal.RequireFromString("7.25")},
			})

			w := serve(http.MethodGet, "/attendance/me?month=2024-02")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(svc.gotMonth).To(Equal("2024-02"))
			body := decode(w)
			Expect(body["attendance"]).To(HaveLen(2))
			Expect(body["totalHours"]).To(BeNumerically("==", 15.75))
		})

		It("sends a null time log for a record without one", func() {
			checkIn := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
			svc.summary = attendance.Summarize([]*attendance.Record{
				{ID: 1, UserID: 5, Status: attendance.StatusAbsent, TotalHours: decimal.Zero},
				{ID: 2, UserID: 5, Status: attendance.StatusPresent, TotalHours: decimal.Zero,
					TimeLog: &attendance.TimeLog{ID: 7, AttendanceID: 2, CheckIn: checkIn}},
			})

			w := serve(http.MethodGet, "/attendance/me")

			Expect(w.Code).To(Equal(http.StatusOK))
			list, ok := decode(w)["attendance"].([]interface{})
			Expect(ok).To(BeTrue())
			Expect(list).To(HaveLen(2))
			Expect(list[0]).To(HaveKeyWithValue("timeLog", BeNil()))
			Expect(list[1]).To(HaveKeyWithValue("timeLog", HaveKeyWithValue("id", BeNumerically("==", 7))))
		})
	})

	Context("GET /attendance/employee/{id}", func() {
		It("rejects a non-numeric id", func() {
			w := serve(http.MethodGet, "/attendance/employee/abc")

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)).To(HaveKeyWithValue("message", "Invalid employee id."))
		})

		It("rejects a zero id", func() {
			w := serve(http.MethodGet, "/attendance/employee/0")

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("queries the requested employee", func() {
			svc.summary = attendance.Summarize(nil)

			w := serve(http.MethodGet, "/attendance/employee/12?month=2024-01")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(svc.gotUserID).To(Equal(int64(12)))
			Expect(decode(w)).To(HaveKeyWithValue("attendance", BeEmpty()))
		})
	})

	Context("GET /attendance/employee/{id}/export", func() {
		It("streams the workbook as an attachment", func() {
			svc.export = bytes.NewBufferString("xlsx-bytes")

			w := serve(http.MethodGet, "/attendance/employee/12/export?month=2024-02")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("spreadsheetml"))
			Expect(w.Header().Get("Content-Disposition")).To(ContainSubstring("attendance-12-2024-02.xlsx"))
			Expect(w.Body.String()).To(Equal("xlsx-bytes"))
		})
	})

	Context("GET /attendance/day", func() {
		It("requires a date", func() {
			w := serve(http.MethodGet, "/attendance/day")

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)).To(HaveKeyWithValue("message", "Date is required (YYYY-MM-DD)."))
		})

		It("rejects an unparseable date", func() {
			w := serve(http.MethodGet, "/attendance/day?date=15-03-2024")

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)).To(HaveKeyWithValue("message", "Invalid date."))
		})

		It("returns the merged list for the day", func() {
			day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
			svc.report = &attendance.DayReport{
				Date: day,
				Entries: []attendance.DayEntry{
					{UserID: 1, Name: "Ana", Email: "ana@local.test", Status: attendance.StatusAbsent, TotalHours: decimal.Zero},
				},
			}

			w := serve(http.MethodGet, "/attendance/day?date=2024-03-15")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(svc.gotDay).To(BeTemporally("==", day))
			body := decode(w)
			Expect(body["date"]).To(Equal("2024-03-15T00:00:00Z"))
			list := body["list"].([]interface{})
			Expect(list).To(HaveLen(1))
			Expect(list[0]).To(HaveKeyWithValue("status", "ABSENT"))
			Expect(list[0]).To(HaveKeyWithValue("timeLog", BeNil()))
		})
	})
})
