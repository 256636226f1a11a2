package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bitfantasy/toolcat/internal/catalog/repository"
	"github.com/bitfantasy/toolcat/internal/config"
	"github.com/bitfantasy/toolcat/internal/shared/cache"
	"github.com/bitfantasy/toolcat/internal/shared/logging"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

// app holds what every command needs once the root command has run.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	cache  cache.Cache

	metricsFile string
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{}
	err := a.rootCmd().ExecuteContext(ctx)
	a.close()
	if err != nil {
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "toolcat",
		Short:         "Cutting tool catalog: load normative tables and query tool schemas",
		Version:       fmt.Sprintf("%s (built %s)", Version, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.init()
		},
	}
	root.PersistentFlags().StringVar(&a.metricsFile, "metrics-textfile", "",
		"write Prometheus metrics to this file on exit")

	root.AddCommand(
		a.migrateCmd(),
		a.loadCmd(),
		a.findCmd(),
		a.valuesCmd(),
		a.exportCmd(),
		a.clearCmd(),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	a.logger, err = logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	zap.ReplaceGlobals(a.logger)
	a.logger.Debug("starting toolcat",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	a.db, err = initDatabase(cfg.Database)
	if err != nil {
		return err
	}
	repository.InitSessions(a.db, a.logger)

	a.cache, err = cache.New(cfg.Cache)
	if err != nil {
		return err
	}
	return nil
}

func (a *app) close() {
	if a.logger == nil {
		return
	}
	if a.metricsFile != "" {
		if err := prometheus.WriteToTextfile(a.metricsFile, prometheus.DefaultGatherer); err != nil {
			a.logger.Warn("failed to write metrics", zap.String("file", a.metricsFile), zap.Error(err))
		}
	}
	if a.db != nil {
		if err := repository.Sessions().CloseAll(); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
	}
	a.logger.Sync()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(logging.GormLevel(cfg.LogLevel)),
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}
