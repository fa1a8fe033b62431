package app

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/github-release-tracker/internal/config"
	"github.com/Kamar-Folarin/github-release-tracker/internal/db"
	apperrors "github.com/Kamar-Folarin/github-release-tracker/internal/errors"
	"github.com/Kamar-Folarin/github-release-tracker/internal/github"
)

// App bundles the store and services shared by the server and the CLI
type App struct {
	Config  *config.Config
	Store   db.Store
	Service *github.Service
	Logger  *logrus.Logger
}

// NewLogger builds the JSON logger used by every entry point
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	logger.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		logger.WithField("level", level).Warn("Unknown log level, using info")
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	return logger
}

// New opens the configured store and wires the services on top of it
func New(cfg *config.Config, logger *logrus.Logger) (*App, error) {
	store, err := db.Open(cfg.Database)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to open database", err)
	}

	client, err := github.NewClient(cfg.GitHub, logger)
	if err != nil {
		store.Close()
		return nil, apperrors.NewInternalError("failed to create GitHub client", err)
	}

	return &App{
		Config:  cfg,
		Store:   store,
		Service: github.NewService(client, store, &cfg.Sync, logger),
		Logger:  logger,
	}, nil
}

// Migrate brings the schema up to date, retrying while the database comes up
func (a *App) Migrate(ctx context.Context, attempts int, delay time.Duration) error {
	return retry(attempts, delay, func() error {
		err := a.Store.Migrate(ctx)
		if err != nil {
			a.Logger.WithError(err).Warn("Migration attempt failed")
		}
		return err
	})
}

func (a *App) Close() error {
	return a.Store.Close()
}

// retry retries a function up to a certain number of attempts with a delay between attempts
func retry(attempts int, sleep time.Duration, fn func() error) error {
	if err := fn(); err != nil {
		if attempts--; attempts > 0 {
			time.Sleep(sleep)
			return retry(attempts, sleep, fn)
		}
		return err
	}
	return nil
}
