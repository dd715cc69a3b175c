package main

import (
	"context"
	crypto_rand "crypto/rand"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medcare/frontdesk/internal/config"
	"github.com/medcare/frontdesk/internal/domain/dashboard"
	"github.com/medcare/frontdesk/internal/domain/identity"
	"github.com/medcare/frontdesk/internal/domain/roster"
	"github.com/medcare/frontdesk/internal/domain/scheduling"
	"github.com/medcare/frontdesk/internal/domain/treatment"
	"github.com/medcare/frontdesk/internal/platform/auth"
	"github.com/medcare/frontdesk/internal/platform/db"
	"github.com/medcare/frontdesk/internal/platform/events"
	"github.com/medcare/frontdesk/internal/platform/middleware"
	"github.com/medcare/frontdesk/internal/platform/seed"
	"github.com/medcare/frontdesk/internal/platform/session"
	"github.com/medcare/frontdesk/internal/platform/view"
	"github.com/medcare/frontdesk/migrations"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
	bodyLimit       = "1M"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "frontdesk",
		Short: "Hospital front desk server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the front desk server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	// migrate up
	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBSchema, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			fmt.Printf("Running migrations on schema: %s\n", cfg.DBSchema)
			count, err := db.NewMigrator(pool, migrations.FS, cfg.DBSchema).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	cmd.AddCommand(upCmd)

	// migrate status
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBSchema, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, migrations.FS, cfg.DBSchema).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("Migration status for schema: %s\n", cfg.DBSchema)
			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status, appliedAt := "pending", ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format(time.RFC3339)
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the reference departments and doctors",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Env)

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBSchema, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			res, err := newSeedLoader(pool, logger).Load(ctx)
			if err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}
			fmt.Printf("Added %d department(s) and %d doctor(s).\n", res.Departments, res.Doctors)
			return nil
		},
	}
}

func newLogger(env string) zerolog.Logger {
	if env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func newSeedLoader(pool *pgxpool.Pool, logger zerolog.Logger) *seed.Loader {
	return seed.NewLoader(roster.NewDepartmentRepo(pool), roster.NewDoctorRepo(pool), db.NewTransactor(pool), logger)
}

func runServer() error {
	// Logger
	logger := newLogger(os.Getenv("ENV"))

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	sessionKey, random, err := resolveSessionKey(cfg.SessionSecret)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to resolve session key")
	}
	if random {
		logger.Warn().Msg("SESSION_SECRET not set; using a random key, sessions end on restart")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBSchema, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Str("schema", cfg.DBSchema).Msg("connected to database")

	applied, err := db.NewMigrator(pool, migrations.FS, cfg.DBSchema).Up(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}
	logger.Info().Int("applied", applied).Msg("migrations up to date")

	if cfg.SeedOnStart {
		if _, err := newSeedLoader(pool, logger).Load(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed reference data")
		}
	}

	renderer, err := newRenderer(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load views")
	}

	publisher := newPublisher(cfg, logger)
	defer publisher.Close()

	e, err := buildServer(cfg, pool, logger, renderer, publisher, sessionKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build server")
	}

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("view_mode", cfg.ViewMode).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

// buildServer wires the repositories, services and handlers onto a new
// echo instance.
func buildServer(cfg *config.Config, pool *pgxpool.Pool, logger zerolog.Logger, renderer echo.Renderer, publisher events.Publisher, sessionKey []byte) (*echo.Echo, error) {
	creds, err := auth.NewChecker(cfg.CredentialScheme, auth.Credentials{
		AdminUsername:  cfg.AdminUsername,
		AdminPassword:  cfg.AdminPassword,
		DoctorPassword: cfg.DoctorPassword,
	})
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	if len(cfg.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost},
			AllowHeaders:     []string{"Content-Type", middleware.RequestIDHeader},
			AllowCredentials: true,
		}))
	}
	e.Use(echomw.BodyLimit(bodyLimit))
	e.Use(middleware.RequestTimeout(requestTimeout))
	e.Use(session.Middleware(session.NewCookieStore(cfg.SessionCookie, sessionKey, cfg.IsProduction()), logger))
	e.Use(middleware.Audit(logger))

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/db", db.HealthHandler(pool, cfg.DBSchema))

	// Repositories
	tx := db.NewTransactor(pool)
	patientRepo := roster.NewPatientRepo(pool)
	doctorRepo := roster.NewDoctorRepo(pool)
	deptRepo := roster.NewDepartmentRepo(pool)
	appointmentRepo := scheduling.NewRepo(pool)
	treatmentRepo := treatment.NewRepo(pool)

	// Services
	publisher = events.BestEffort(publisher, logger)

	rosterSvc := roster.NewService(patientRepo, doctorRepo, deptRepo, tx, creds)
	rosterSvc.SetIDAttempts(cfg.IDAllocAttempts)

	schedulingSvc := scheduling.NewService(appointmentRepo, publisher)
	schedulingSvc.SetIDAttempts(cfg.IDAllocAttempts)

	treatmentSvc := treatment.NewService(treatmentRepo, schedulingSvc, rosterSvc, publisher)
	identitySvc := identity.NewService(rosterSvc, creds)
	dashboardSvc := dashboard.NewService(rosterSvc, schedulingSvc)

	// Routes
	g := e.Group("")
	identity.NewHandler(identitySvc).RegisterRoutes(g)
	dashboard.NewHandler(dashboardSvc).RegisterRoutes(g)
	roster.NewHandler(rosterSvc).RegisterRoutes(g)
	scheduling.NewHandler(schedulingSvc, rosterSvc).RegisterRoutes(g)
	treatment.NewHandler(treatmentSvc).RegisterRoutes(g)

	return e, nil
}

func newRenderer(cfg *config.Config) (echo.Renderer, error) {
	if cfg.ViewMode != "html" {
		return view.JSONRenderer{}, nil
	}
	r, err := view.LoadTemplates(cfg.TemplatesDir)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func newPublisher(cfg *config.Config, logger zerolog.Logger) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return events.NewLogPublisher(logger)
	}
	logger.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("publishing events to kafka")
	return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
}

// resolveSessionKey returns SESSION_SECRET as the cookie signing key, or a
// random 32-byte key when it is empty. The second return value is true
// when a random key was generated.
func resolveSessionKey(secret string) ([]byte, bool, error) {
	if secret != "" {
		return []byte(secret), false, nil
	}
	key := make([]byte, 32)
	if _, err := crypto_rand.Read(key); err != nil {
		return nil, false, fmt.Errorf("failed to generate random session key: %w", err)
	}
	return key, true, nil
}
