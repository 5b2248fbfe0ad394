package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	apperrors "github.com/frahmantamala/attendance-tracker/internal"
	coreuser "github.com/frahmantamala/attendance-tracker/internal/core/user"
	"github.com/frahmantamala/attendance-tracker/internal/employee"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

type stubService struct {
	user      *coreuser.User
	users     []*coreuser.User
	err       error
	gotID     int64
	gotCreate employee.CreateDTO
	gotUpdate employee.UpdateDTO
}

func (s *stubService) Create(_ context.Context, dto employee.CreateDTO) (*coreuser.User, error) {
	s.gotCreate = dto
	return s.user, s.err
}

func (s *stubService) List(_ context.Context) ([]*coreuser.User, error) {
	return s.users, s.err
}

func (s *stubService) Update(_ context.Context, id int64, dto employee.UpdateDTO) (*coreuser.User, error) {
	s.gotID = id
	s.gotUpdate = dto
	return s.user, s.err
}

func (s *stubService) Delete(_ context.Context, id int64) error {
	s.gotID = id
	return s.err
}

var _ = Describe("Employee Handler", func() {
	var (
		svc    *stubService
		router chi.Router
		sample *coreuser.User
	)

	BeforeEach(func() {
		svc = &stubService{}
		h := employee.NewHandler(svc)
		router = chi.NewRouter()
		router.Get("/employees", h.List)
		router.Post("/employees", h.Create)
		router.Put("/employees/{id}", h.Update)
		router.Delete("/employees/{id}", h.Delete)

		sample = &coreuser.User{
			ID:           7,
			Name:         "Rina",
			Email:        "rina@example.com",
			PasswordHash: "$2a$04$hash",
			Role:         coreuser.RoleEmployee,
			Salary:       decimal.RequireFromString("2500.50"),
			JoinDate:     time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			IsActive:     true,
		}
	})

	serve := func(method, target, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decode := func(w *httptest.ResponseRecorder) map[string]interface{} {
		var body map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		return body
	}

	It("lists employees without password hashes", func() {
		svc.users = []*coreuser.User{sample}

		w := serve(http.MethodGet, "/employees", "")

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).NotTo(ContainSubstring("hash"))
		var list []map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&list)).To(Succeed())
		Expect(list).To(HaveLen(1))
		Expect(list[0]["salary"]).To(Equal(2500.5))
		Expect(list[0]["isActive"]).To(Equal(true))
		Expect(list[0]["role"]).To(Equal("EMPLOYEE"))
	})

	It("returns an empty array when there are no employees", func() {
		w := serve(http.MethodGet, "/employees", "")

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(strings.TrimSpace(w.Body.String())).To(Equal("[]"))
	})

	It("creates an employee with 201", func() {
		svc.user = sample

		w := serve(http.MethodPost, "/employees", `{"name":"Rina","email":"rina@example.com","password":"x","salary":2500.5}`)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(svc.gotCreate.Email).To(Equal("rina@example.com"))
		Expect(string(svc.gotCreate.Salary)).To(Equal("2500.5"))
		Expect(decode(w)["id"]).To(Equal(float64(7)))
	})

	It("maps service validation errors to 400", func() {
		svc.err = apperrors.ErrEmailExists

		w := serve(http.MethodPost, "/employees", `{"name":"Rina"}`)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decode(w)["message"]).To(Equal("Email already exists."))
	})

	It("rejects a malformed body", func() {
		w := serve(http.MethodPost, "/employees", `{`)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decode(w)["message"]).To(Equal("Invalid request body."))
	})

	It("rejects a non-numeric id on update", func() {
		w := serve(http.MethodPut, "/employees/abc", `{}`)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decode(w)["message"]).To(Equal("Invalid employee id."))
	})

	It("passes the id and body to update", func() {
		svc.user = sample

		w := serve(http.MethodPut, "/employees/7", `{"name":"Rina P"}`)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(svc.gotID).To(Equal(int64(7)))
		Expect(*svc.gotUpdate.Name).To(Equal("Rina P"))
	})

	It("returns 404 when updating a missing employee", func() {
		svc.err = apperrors.ErrEmployeeNotFound

		w := serve(http.MethodPut, "/employees/9", `{}`)

		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(decode(w)["message"]).To(Equal("Employee not found."))
	})

	It("deletes an employee", func() {
		w := serve(http.MethodDelete, "/employees/7", "")

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["message"]).To(Equal("Employee deleted."))
		Expect(svc.gotID).To(Equal(int64(7)))
	})

	It("returns 500 for unexpected failures", func() {
		svc.err = context.DeadlineExceeded

		w := serve(http.MethodDelete, "/employees/7", "")

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(decode(w)["message"]).To(Equal("Server error"))
	})
})
