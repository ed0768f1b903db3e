package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clinicd/clinicd/internal/chat"
	"github.com/clinicd/clinicd/internal/config"
	"github.com/clinicd/clinicd/internal/domain/account"
	"github.com/clinicd/clinicd/internal/domain/appointment"
	"github.com/clinicd/clinicd/internal/domain/attendance"
	"github.com/clinicd/clinicd/internal/domain/notice"
	"github.com/clinicd/clinicd/internal/domain/profile"
	"github.com/clinicd/clinicd/internal/domain/wellness"
	"github.com/clinicd/clinicd/internal/ops"
	"github.com/clinicd/clinicd/internal/platform/db"
	"github.com/clinicd/clinicd/internal/protocol"
	"github.com/clinicd/clinicd/internal/server"
	"github.com/clinicd/clinicd/internal/storage"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinicd",
		Short: "Clinic management backend",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the clinic backend",
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
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	// migrate status
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

// counters adapts the protocol server and chat hub to the ops stats endpoint.
type counters struct {
	srv *server.Server
	hub *chat.Hub
}

func (c counters) SessionCount() int { return c.srv.SessionCount() }
func (c counters) ChatCount() int    { return c.hub.Count() }

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	gw := storage.NewPG(pool, logger)

	// Protocol server and command registry
	registry := server.NewRegistry()
	srv := server.New(server.Config{
		Addr:            cfg.ListenAddr,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		MaxMessageBytes: cfg.MaxMessageBytes,
	}, registry, logger)

	// Chat
	hub := chat.NewHub(logger)
	chat.NewHandler(hub).Register(registry)
	srv.OnDisconnect(func(sess server.Session) { hub.Leave(sess.ID()) })

	// Accounts and profiles
	profileRepo := profile.NewRepo(gw)
	profileSvc := profile.NewService(profileRepo)
	profile.NewHandler(profileSvc, logger).Register(registry)

	accountRepo := account.NewRepo(gw)
	accountSvc := account.NewService(accountRepo, profileRepo)
	account.NewHandler(accountSvc, logger).Register(registry)

	// Appointments, cases, advice
	apptRepo := appointment.NewRepo(gw)
	apptSvc := appointment.NewService(apptRepo)
	appointment.NewHandler(apptSvc, logger).Register(registry)

	// Notices
	noticeRepo := notice.NewRepo(gw)
	notice.NewHandler(noticeRepo, logger).Register(registry)

	// Attendance
	attRepo := attendance.NewRepo(gw)
	attSvc := attendance.NewService(attRepo)
	attendance.NewHandler(attSvc, logger).Register(registry)

	// Wellness questionnaires
	wellRepo := wellness.NewRepo(gw)
	wellSvc := wellness.NewService(wellRepo)
	wellness.NewHandler(wellSvc, logger).Register(registry)

	// Echo returns the request envelope untouched, for client connectivity
	// checks.
	registry.Handle("echo", func(ctx context.Context, sess server.Session, req *protocol.Request) {
		_ = sess.Send(protocol.Message(req.Envelope))
	})

	// Ops HTTP server
	opsSrv := ops.NewServer(cfg.OpsAddr, pool, counters{srv: srv, hub: hub}, logger)
	opsErr := make(chan error, 1)
	go func() { opsErr <- opsSrv.Start(ctx) }()

	logger.Info().
		Str("addr", cfg.ListenAddr).
		Str("ops_addr", cfg.OpsAddr).
		Strs("commands", registry.Commands()).
		Msg("starting")

	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error().Err(err).Msg("protocol server stopped")
		return err
	}
	if err := <-opsErr; err != nil {
		logger.Error().Err(err).Msg("ops server stopped")
		return err
	}
	logger.Info().Msg("shutdown complete")
	return nil
}
