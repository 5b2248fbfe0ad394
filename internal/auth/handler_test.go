package auth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	apperrors "github.com/frahmantamala/attendance-tracker/internal"
	coreuser "github.com/frahmantamala/attendance-tracker/internal/core/user"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

type stubAuthService struct {
	principal *apperrors.Principal
	result    *LoginResult
	err       error
	logoutErr error
	gotToken  string
}

func (s *stubAuthService) Authenticate(_ context.Context, dto LoginDTO) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	return s.result, s.err
}

func (s *stubAuthService) Authorize(_ context.Context, token string) (*apperrors.Principal, error) {
	s.gotToken = token
	return s.principal, s.err
}

func (s *stubAuthService) Logout(_ context.Context, token string) error {
	s.gotToken = token
	return s.logoutErr
}

func messageOf(w *httptest.ResponseRecorder) string {
	var body map[string]interface{}
	gomega.Expect(json.NewDecoder(w.Body).Decode(&body)).To(gomega.Succeed())
	msg, _ := body["message"].(string)
	return msg
}

var _ = ginkgo.Describe("Auth Handler", func() {
	var (
		svc     *stubAuthService
		handler *Handler
		gates   *RoleAuthorization
		reached bool
		final   http.Handler
	)

	ginkgo.BeforeEach(func() {
		svc = &stubAuthService{}
		handler = NewHandler(svc)
		gates = NewRoleAuthorization(slog.New(slog.NewTextHandler(io.Discard, nil)))
		reached = false
		final = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			w.WriteHeader(http.StatusOK)
		})
	})

	withToken := func(method, target string) *http.Request {
		req := httptest.NewRequest(method, target, nil)
		req.Header.Set("Authorization", "Bearer abc.def.ghi")
		return req
	}

	ginkgo.Describe("Login", func() {
		ginkgo.It("returns the token and the public user fields", func() {
			svc.result = &LoginResult{
				Token: "signed-token",
				User:  &coreuser.User{ID: 1, Name: "Default Admin", Email: "admin@local.test", Role: coreuser.RoleAdmin, PasswordHash: "secret-hash"},
			}
			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"admin@local.test","password":"Admin@123"}`))
			w := httptest.NewRecorder()

			handler.Login(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(w.Body.String()).NotTo(gomega.ContainSubstring("secret-hash"))
			var body LoginResponse
			gomega.Expect(json.NewDecoder(w.Body).Decode(&body)).To(gomega.Succeed())
			gomega.Expect(body.Token).To(gomega.Equal("signed-token"))
			gomega.Expect(body.User.Role).To(gomega.Equal("ADMIN"))
		})

		ginkgo.It("rejects a body without a password", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"admin@local.test"}`))
			w := httptest.NewRecorder()

			handler.Login(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusBadRequest))
			gomega.Expect(messageOf(w)).To(gomega.Equal("Email and password are required."))
		})

		ginkgo.It("maps bad credentials to 401", func() {
			svc.err = apperrors.ErrInvalidCredentials
			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@b.c","password":"x"}`))
			w := httptest.NewRecorder()

			handler.Login(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(messageOf(w)).To(gomega.Equal("Invalid credentials"))
		})
	})

	ginkgo.Describe("Logout", func() {
		ginkgo.It("revokes the bearer token", func() {
			w := httptest.NewRecorder()

			handler.Logout(w, withToken(http.MethodPost, "/auth/logout"))

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusNoContent))
			gomega.Expect(svc.gotToken).To(gomega.Equal("abc.def.ghi"))
		})
	})

	ginkgo.Describe("AuthMiddleware", func() {
		ginkgo.It("rejects a request without a bearer token", func() {
			w := httptest.NewRecorder()

			handler.AuthMiddleware(final).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance/me", nil))

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(messageOf(w)).To(gomega.Equal("Unauthorized"))
			gomega.Expect(reached).To(gomega.BeFalse())
		})

		ginkgo.It("rejects an invalid token", func() {
			svc.err = apperrors.ErrInvalidToken
			w := httptest.NewRecorder()

			handler.AuthMiddleware(final).ServeHTTP(w, withToken(http.MethodGet, "/attendance/me"))

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(messageOf(w)).To(gomega.Equal("Invalid token"))
		})

		ginkgo.It("attaches the caller to the context", func() {
			svc.principal = &apperrors.Principal{ID: 2, Role: coreuser.RoleEmployee, IsActive: true}
			var seen *apperrors.Principal
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = apperrors.UserFromContext(r.Context())
			})

			handler.AuthMiddleware(next).ServeHTTP(httptest.NewRecorder(), withToken(http.MethodGet, "/attendance/me"))

			gomega.Expect(seen).NotTo(gomega.BeNil())
			gomega.Expect(seen.ID).To(gomega.Equal(int64(2)))
		})
	})

	ginkgo.Describe("role and active gates", func() {
		serve := func(p *apperrors.Principal, mw func(http.Handler) http.Handler) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, "/employees", nil)
			if p != nil {
				req = req.WithContext(apperrors.ContextWithUser(req.Context(), p))
			}
			w := httptest.NewRecorder()
			mw(final).ServeHTTP(w, req)
			return w
		}

		ginkgo.It("lets an admin through the admin gate", func() {
			w := serve(&apperrors.Principal{ID: 1, Role: coreuser.RoleAdmin, IsActive: true}, gates.RequireAdmin())

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(reached).To(gomega.BeTrue())
		})

		ginkgo.It("forbids an employee on an admin route", func() {
			w := serve(&apperrors.Principal{ID: 2, Role: coreuser.RoleEmployee, IsActive: true}, gates.RequireAdmin())

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(messageOf(w)).To(gomega.Equal("Forbidden"))
			gomega.Expect(reached).To(gomega.BeFalse())
		})

		ginkgo.It("forbids an inactive user", func() {
			w := serve(&apperrors.Principal{ID: 2, Role: coreuser.RoleEmployee, IsActive: false}, gates.RequireActiveUser())

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(messageOf(w)).To(gomega.Equal("User is inactive"))
		})

		ginkgo.It("requires authentication first", func() {
			w := serve(nil, gates.RequireActiveUser())

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("never matches an unknown role", func() {
			gomega.Expect(HasRole(&apperrors.Principal{Role: coreuser.RoleAdmin}, coreuser.Role("SUPERUSER"))).To(gomega.BeFalse())
		})
	})
})
