package main

import (
	"fmt"
	"os"

	"kraken/internal/config"
	"kraken/internal/logger"
	"kraken/internal/migrations"
	"kraken/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title           Kraken API
// @version         1.0
// @description     Multi-tenant project management: projects, milestones, tasks with QA steps, sprints.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "server",
		Short:         "Kraken project management API",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return migrate(cmd, migrations.Up, "migrations applied")
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back all migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return migrate(cmd, migrations.Down, "migrations rolled back")
			},
		},
	)
	return cmd
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	s, err := server.Init(cfg, log)
	if err != nil {
		log.Error("server initialization failed", zap.Error(err))
		return err
	}

	s.Run()
	return nil
}

func migrate(cmd *cobra.Command, run func(string) error, done string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := run(cfg.DB.URL()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), done)
	return nil
}
