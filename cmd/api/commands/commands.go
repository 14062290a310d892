package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/siesta-zumi/teamtask/internal/adapters/repository"
	"github.com/siesta-zumi/teamtask/internal/infrastructure/config"
	"github.com/siesta-zumi/teamtask/internal/infrastructure/database"
	"github.com/siesta-zumi/teamtask/internal/infrastructure/logger"
	"github.com/siesta-zumi/teamtask/internal/infrastructure/server"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the TeamTask API server",
		Long:  "Start the TeamTask API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage database migrations (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("up")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("down")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		Run: func(cmd *cobra.Command, args []string) {
			showMigrationVersion()
		},
	})

	return migrateCmd
}

// NewSeedCommand creates the seed command
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo dataset into the database",
		Long:  "Insert the demo members, tasks, subtasks and assignments used by the connectivity fallback into Postgres",
		Run: func(cmd *cobra.Command, args []string) {
			seedDatabase()
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print TeamTask version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("TeamTask v1.0.0")
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	var (
		db    *database.DB
		repos repository.Set
	)

	if cfg.Database.Fallback {
		appLogger.Warn("Fallback store enabled by configuration, serving placeholder data")
		repos = repository.NewFallbackSet(repository.SeedDataset())
	} else {
		db, err = database.New(cfg.Database)
		if err != nil {
			appLogger.Warnw("Database unreachable, serving placeholder data", "error", err)
			repos = repository.NewFallbackSet(repository.SeedDataset())
		} else {
			defer db.Close()
			repos = repository.NewPostgresSet(db.DB)
		}
	}

	srv, err := server.New(cfg, db, repos, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize server", "error", err)
	}

	appLogger.Infow("Starting TeamTask API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
	)

	go func() {
		if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
			appLogger.Infow("Server stopped", "reason", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Errorw("Graceful shutdown failed", "error", err)
	}
}

func runMigration(direction string) {
	m := newMigrator()

	var err error
	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	}

	if err != nil && err != migrate.ErrNoChange {
		log.Fatalf("Migration failed: %v", err)
	}

	if err == migrate.ErrNoChange {
		fmt.Println("No migrations to run")
	} else {
		fmt.Printf("Migration %s completed successfully\n", direction)
	}
}

func showMigrationVersion() {
	m := newMigrator()

	version, dirty, err := m.Version()
	if err != nil {
		log.Fatalf("Failed to get migration version: %v", err)
	}

	fmt.Printf("Current migration version: %d\n", version)
	fmt.Printf("Dirty: %t\n", dirty)
}

func newMigrator() *migrate.Migrate {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	driver, err := postgres.WithInstance(db.DB.DB, &postgres.Config{})
	if err != nil {
		log.Fatalf("Failed to create migration driver: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		log.Fatalf("Failed to create migration instance: %v", err)
	}

	return m
}

func seedDatabase() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repos := repository.NewPostgresSet(db.DB)
	data := repository.SeedDataset()
	ctx := context.Background()

	for _, member := range data.Members {
		if err := repos.Members.Create(ctx, member); err != nil {
			log.Fatalf("Failed to seed member %q: %v", member.Name, err)
		}
	}

	for _, task := range data.Tasks {
		if err := repos.Tasks.Create(ctx, task); err != nil {
			log.Fatalf("Failed to seed task %q: %v", task.Title, err)
		}
		for i := range task.Subtasks {
			if err := repos.Subtasks.Create(ctx, &task.Subtasks[i]); err != nil {
				log.Fatalf("Failed to seed subtask %q: %v", task.Subtasks[i].Text, err)
			}
		}
		for i := range task.Assignments {
			if err := repos.Assignments.Set(ctx, &task.Assignments[i]); err != nil {
				log.Fatalf("Failed to seed assignment for task %q: %v", task.Title, err)
			}
		}
	}

	fmt.Printf("Seeded %d members and %d tasks\n", len(data.Members), len(data.Tasks))
}
