package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/access-management/internal"
	"github.com/frahmantamala/access-management/internal/auth"
	authPostgres "github.com/frahmantamala/access-management/internal/auth/postgres"
	"github.com/frahmantamala/access-management/internal/core/events"
	"github.com/frahmantamala/access-management/internal/organization"
	orgPostgres "github.com/frahmantamala/access-management/internal/organization/postgres"
	"github.com/frahmantamala/access-management/internal/permission"
	permissionPostgres "github.com/frahmantamala/access-management/internal/permission/postgres"
	"github.com/frahmantamala/access-management/internal/rbac"
	rbacPostgres "github.com/frahmantamala/access-management/internal/rbac/postgres"
	"github.com/frahmantamala/access-management/internal/role"
	rolePostgres "github.com/frahmantamala/access-management/internal/role/postgres"
	"github.com/frahmantamala/access-management/internal/transport/rest"
	"github.com/frahmantamala/access-management/internal/user"
	userPostgres "github.com/frahmantamala/access-management/internal/user/postgres"
	"github.com/frahmantamala/access-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
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
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
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
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := internal.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	appLogger := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// GORM rides on the same pgx pool so the health check and the
	// repositories share one set of connections.
	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	eventBus := events.NewEventBus(appLogger)

	// Audit trail for organization switches. The actor travels on the
	// context's plain user-id key, not on the event payload.
	eventBus.Subscribe(events.EventTypeOrganizationSwitched, func(ctx context.Context, event events.Event) error {
		appLogger.Info("audit: organization switched",
			"actor_id", internal.UserIDFromContext(ctx),
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	})

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(gormDB), tokenGen, config.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)

	rbacService := rbac.NewService(rbacPostgres.NewRepository(gormDB), eventBus, appLogger)
	rbacHandler := rbac.NewHandler(rbacService)
	authorizer := rbac.NewAuthorizer(rbacService, appLogger)

	userService := user.NewService(userPostgres.NewRepository(gormDB), appLogger)
	userHandler := user.NewHandler(userService)

	orgService := organization.NewService(orgPostgres.NewRepository(gormDB), appLogger)
	orgHandler := organization.NewHandler(orgService)

	roleService := role.NewService(rolePostgres.NewRepository(gormDB), eventBus, appLogger)
	roleHandler := role.NewHandler(roleService)

	permissionService := permission.NewService(permissionPostgres.NewRepository(gormDB), appLogger)
	permissionHandler := permission.NewHandler(permissionService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, authHandler, authorizer, rbacHandler, userHandler, orgHandler, roleHandler, permissionHandler, appLogger)

	return &Dependencies{
		Config: config,
		Logger: appLogger,
		DB:     db,
		Router: router,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
