package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/healthtech/etl/internal/config"
	"github.com/healthtech/etl/internal/extract"
	"github.com/healthtech/etl/internal/load"
	"github.com/healthtech/etl/internal/persist"
	"github.com/healthtech/etl/internal/pipeline"
	"github.com/healthtech/etl/internal/platform/db"
	"github.com/healthtech/etl/internal/transform"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "etl",
		Short: "HealthTech batch ETL pipeline",
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full extract-clean-load pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			useDuckDB, _ := cmd.Flags().GetBool("duckdb")
			return runPipeline(useDuckDB)
		},
	}
	cmd.Flags().Bool("duckdb", false, "Use DuckDB instead of PostgreSQL")
	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL warehouse schema",
	}

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
			pool, err := db.NewPool(ctx, cfg.DSN(), cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir, cfg.PGSchema)
			fmt.Printf("Running migrations on schema: %s\n", cfg.PGSchema)

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
			pool, err := db.NewPool(ctx, cfg.DSN(), cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir, cfg.PGSchema)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("Migration status for schema: %s\n", cfg.PGSchema)
			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
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

// newLogger builds the per-run logger: console output (pretty in
// development), teed into logs/etl.log, with a run_id on every line.
func newLogger(cfg *config.Config) (zerolog.Logger, error) {
	if err := os.MkdirAll(cfg.LogsDir, 0o755); err != nil {
		return zerolog.Logger{}, fmt.Errorf("create logs directory: %w", err)
	}
	logFile, err := os.OpenFile(filepath.Join(cfg.LogsDir, "etl.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("open log file: %w", err)
	}

	var console io.Writer = os.Stderr
	if cfg.IsDev() {
		console = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	w := zerolog.MultiLevelWriter(console, logFile)
	logger := zerolog.New(w).With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()
	return logger, nil
}

func runPipeline(useDuckDB bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	var loader load.Loader
	if useDuckDB {
		logger.Info().Msg("backend selected: DuckDB")
		loader = load.NewDuckDB(cfg.DuckDBPath, cfg.PGSchema, logger)
	} else {
		logger.Info().Msg("backend selected: PostgreSQL")
		pool, err := db.NewPool(ctx, cfg.DSN(), cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Error().Err(err).Msg("failed to connect to database")
			return err
		}
		defer pool.Close()
		loader = load.NewPostgres(pool, cfg.PGSchema, logger)
	}

	reader := extract.NewReader(
		extract.Source{Path: cfg.DoctorsXLSX, Sheet: cfg.DoctorsSheet},
		extract.Source{Path: cfg.ApptsXLSX, Sheet: cfg.ApptsSheet},
		logger,
	)
	cleaner := transform.NewCleaner(logger)
	writer := persist.NewWriter(cfg.ProcessedDir, logger)

	p := pipeline.New(reader, cleaner, writer, loader, logger)
	if err := p.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("ETL run failed")
		return err
	}
	return nil
}
