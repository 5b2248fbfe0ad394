package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/attendance-tracker/internal"
	"github.com/frahmantamala/attendance-tracker/internal/attendance"
	attendancePostgres "github.com/frahmantamala/attendance-tracker/internal/attendance/postgres"
	"github.com/frahmantamala/attendance-tracker/internal/auth"
	authPostgres "github.com/frahmantamala/attendance-tracker/internal/auth/postgres"
	"github.com/frahmantamala/attendance-tracker/internal/cache"
	"github.com/frahmantamala/attendance-tracker/internal/employee"
	employeePostgres "github.com/frahmantamala/attendance-tracker/internal/employee/postgres"
	"github.com/frahmantamala/attendance-tracker/internal/transport/rest"
	"github.com/frahmantamala/attendance-tracker/internal/transport/swagger"
	"github.com/frahmantamala/attendance-tracker/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Gorm   *gorm.DB
	Cache  *cache.Client
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			deps.close()
			os.Exit(1)
		}
	}

	deps.close()
	deps.Logger.Info("Server stopped")
}

func (d *Dependencies) close() {
	if err := d.Cache.Close(); err != nil {
		d.Logger.Error("Redis close error", "error", err)
	}
	if err := d.DB.Close(); err != nil {
		d.Logger.Error("Database close error", "error", err)
	}
}

func setupRoutes(deps *Dependencies) error {
	cfg := deps.Config

	doc, err := swagger.Load(context.Background())
	if err != nil {
		return err
	}

	var tokenStore auth.TokenStore
	var redisPinger rest.Pinger
	if deps.Cache != nil {
		tokenStore = auth.NewRedisTokenStore(deps.Cache)
		redisPinger = deps.Cache
	}

	authService := auth.NewService(
		authPostgres.NewRepository(deps.Gorm),
		auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.AccessTokenDuration),
		tokenStore,
		deps.Logger,
	)

	attendanceService := attendance.NewService(
		attendancePostgres.NewAttendanceRepository(deps.Gorm),
		attendancePostgres.NewRosterRepository(deps.Gorm),
		deps.Logger,
	)

	employeeService := employee.NewService(
		employeePostgres.NewEmployeeRepository(deps.Gorm),
		cfg.Security.BCryptCost,
		deps.Logger,
	)

	rest.RegisterAllRoutes(deps.Router, rest.Routes{
		Health:     rest.NewHealthHandler(deps.DB, redisPinger),
		Auth:       auth.NewHandler(authService),
		Roles:      authService.RoleAuthorization(),
		Attendance: attendance.NewHandler(attendanceService),
		Employee:   employee.NewHandler(employeeService),
		OpenAPI:    doc,
		Origins:    cfg.Server.Origins(),
		Logger:     deps.Logger,
	})
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	redisClient := cache.New(config.Redis.Addr, config.Redis.Password, config.Redis.DB)
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(ctx); err != nil {
			// the client fails safe, so the server still starts without revocation
			lg.Warn("redis unavailable at startup", "addr", config.Redis.Addr, "error", err)
		}
		cancel()
	} else {
		lg.Warn("redis not configured; logout will not revoke tokens")
	}

	return &Dependencies{
		Config: config,
		DB:     db,
		Gorm:   gormDB,
		Cache:  redisClient,
		Router: chi.NewRouter(),
		Logger: lg,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm shares the sqlx pool with gorm so both see the same limits.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Warn),
		TranslateError: true,
	})
}
