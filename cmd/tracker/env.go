package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/github-release-tracker/internal/app"
	"github.com/Kamar-Folarin/github-release-tracker/internal/config"
)

// env lazily opens the application so --help and --version need no database
type env struct {
	out  io.Writer
	load func() (*app.App, error)
	app  *app.App
}

func newEnv(out io.Writer, load func() (*app.App, error)) *env {
	return &env{out: out, load: load}
}

func loadApp() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := app.NewLogger(cfg.LogLevel)
	logger.SetOutput(os.Stderr)
	return openApp(cfg, logger)
}

// openApp builds the application. A SQLite file is local to this machine,
// so its schema is created on first use instead of requiring `tracker migrate`.
func openApp(cfg *config.Config, logger *logrus.Logger) (*app.App, error) {
	a, err := app.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	if cfg.Database.Driver == config.DriverSQLite {
		if err := a.Migrate(context.Background(), 1, 0); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

func (e *env) application() (*app.App, error) {
	if e.app != nil {
		return e.app, nil
	}
	a, err := e.load()
	if err != nil {
		return nil, err
	}
	e.app = a
	return a, nil
}

func (e *env) close() error {
	if e.app == nil {
		return nil
	}
	err := e.app.Close()
	e.app = nil
	return err
}

func (e *env) print(v interface{}) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
