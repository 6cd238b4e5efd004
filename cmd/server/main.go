package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"expense-management/internal/adapters/http/routes"
	"expense-management/internal/adapters/persistence/repositories"
	"expense-management/internal/config"
	"expense-management/internal/core/services"
	"expense-management/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "expense-management/docs" // Swagger docs
)

// @title Expense Management API
// @version 1.0
// @description Expense submission, approval and chat assistant API.

// @BasePath /

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "expense-server",
		Short: "Expense management web server",
		Long: `Serves the expense management REST API, the server-rendered pages
and the chat assistant. Runs on sample data when no expense store is
configured or reachable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("expense-server version %s\n", routes.Version)
		},
	})

	return cmd
}

func run(configPath string) error {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.OpenAI.ManagedIdentityClientID != "" {
		log.Warn("managed identity credentials are not supported, using OPENAI_API_KEY",
			zap.String("client_id", cfg.OpenAI.ManagedIdentityClientID),
		)
	}

	// Choose the expense store, falling back to sample data
	gateway, db := repositories.SelectGateway(cfg.Database.ConnectionString, func() (*gorm.DB, error) {
		return config.ConnectDatabase(cfg)
	}, log)
	if db != nil {
		defer func() {
			if err := config.CloseDatabase(db); err != nil {
				log.Error("failed to close database", zap.Error(err))
			}
		}()
	}

	expenseService := services.NewExpenseService(gateway, cfg.Database.Timeout, log)

	// Daily digest of expenses awaiting approval
	reminder := services.NewReminderService(expenseService, cfg.Reminder.Schedule, log)
	if err := reminder.Start(); err != nil {
		return fmt.Errorf("start reminder: %w", err)
	}
	defer reminder.Stop()

	app := routes.NewApp(cfg)
	routes.Setup(app, cfg, expenseService, log)

	// Graceful shutdown
	go gracefulShutdown(app, log)

	log.Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("mode", cfg.AppMode),
		zap.String("store", gateway.Mode()),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	return nil
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, log *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
