package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/attendance-tracker/internal/transport/rest"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type pingerFunc func(context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

var _ = Describe("HealthHandler", func() {
	var db *sqlx.DB

	BeforeEach(func() {
		gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := gdb.DB()
		Expect(err).NotTo(HaveOccurred())
		db = sqlx.NewDb(sqlDB, "sqlite3")
	})

	decode := func(w *httptest.ResponseRecorder) rest.HealthResponse {
		var resp rest.HealthResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		return resp
	}

	It("answers ping", func() {
		w := httptest.NewRecorder()
		rest.NewHealthHandler(db, nil).Ping(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"OK"`))
	})

	It("is healthy when every component answers", func() {
		w := httptest.NewRecorder()
		h := rest.NewHealthHandler(db, pingerFunc(func(context.Context) error { return nil }))
		h.Health(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		resp := decode(w)
		Expect(resp.Status).To(Equal(rest.HealthHealthy))
		Expect(resp.Components).To(HaveKey("postgres"))
		Expect(resp.Components).To(HaveKey("redis"))
	})

	It("omits redis when it is not configured", func() {
		w := httptest.NewRecorder()
		rest.NewHealthHandler(db, nil).Health(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

		Expect(decode(w).Components).NotTo(HaveKey("redis"))
	})

	It("reports 503 when redis is down", func() {
		w := httptest.NewRecorder()
		h := rest.NewHealthHandler(db, pingerFunc(func(context.Context) error { return errors.New("connection refused") }))
		h.Health(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		resp := decode(w)
		Expect(resp.Status).To(Equal(rest.HealthUnhealthy))
		Expect(resp.Components["redis"].Message).To(Equal("connection refused"))
		Expect(resp.Components["postgres"].Status).To(Equal(rest.HealthHealthy))
	})
})
