// Package app wires configuration into the stores, styles, row templates and
// HTTP component used by the cards command.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-cards/components/cards"
	"github.com/goliatone/go-cards/internal/config"
	"github.com/goliatone/go-cards/pkg/fake"
	"github.com/goliatone/go-cards/pkg/model"
	"github.com/goliatone/go-cards/pkg/outlet"
	"github.com/goliatone/go-cards/pkg/store"
	"github.com/goliatone/go-cards/pkg/styles"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	Config    config.Config
	Logger    *slog.Logger
	Teachers  *store.TeacherStore
	Students  *store.StudentStore
	Component *cards.Component
}

// New builds the application. Logs go to logOut (stderr when nil).
func New(cfg config.Config, logOut io.Writer) (*App, error) {
	if logOut == nil {
		logOut = os.Stderr
	}
	logger := NewLogger(cfg.Log, logOut)

	var genOpts []fake.Option
	if cfg.Seed != 0 {
		genOpts = append(genOpts, fake.WithSeed(cfg.Seed))
	}
	gen := fake.New(genOpts...)

	teachers := store.NewTeacherStore(cfg.Teachers...)
	students := store.NewStudentStore(cfg.Students...)
	gen.Reserve(teachers.MaxID())
	gen.Reserve(students.MaxID())
	for _, s := range cfg.Students {
		gen.Reserve(s.MainTeacher.ID)
	}
	teachers.AddAll(gen.Teachers(cfg.SeedTeachers)...)
	students.AddAll(gen.Students(cfg.SeedStudents)...)

	teachers.Subscribe(func(items []model.Teacher) {
		logger.Debug("teachers changed", "count", len(items))
	})
	students.Subscribe(func(items []model.Student) {
		logger.Debug("students changed", "count", len(items))
	})

	st, err := newStyles(cfg.Theme)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	fns := []cards.OptionFn{
		cards.WithRoutePath(cfg.RoutePath),
		cards.WithTitle(cfg.Title),
		cards.WithLogger(logger),
		cards.WithTeacherStore(teachers),
		cards.WithStudentStore(students),
		cards.WithGenerator(gen),
		cards.WithStyles(st),
	}
	rowFns, err := rowOptions(cfg.Rows)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	fns = append(fns, rowFns...)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Teachers:  teachers,
		Students:  students,
		Component: cards.New(fns...),
	}, nil
}

// newStyles registers the configured manifest next to the built-in theme and
// selects from the registry. Without a name the custom manifest wins.
func newStyles(cfg config.ThemeConfig) (*styles.Styles, error) {
	custom, err := cfg.LoadManifest()
	if err != nil {
		return nil, err
	}
	registry, err := styles.NewRegistry(custom)
	if err != nil {
		return nil, err
	}
	name := cfg.Name
	if name == "" && custom != nil {
		name = custom.Name
	}
	return styles.Select(registry, name, cfg.Variant)
}

func rowOptions(cfg config.RowsConfig) ([]cards.OptionFn, error) {
	if cfg.Teacher == "" && cfg.Student == "" {
		return nil, nil
	}

	var opts []outlet.Option
	if cfg.Dir != "" {
		opts = append(opts, outlet.WithFS(os.DirFS(cfg.Dir)))
	}
	if cfg.Extension != "" {
		opts = append(opts, outlet.WithExtension(cfg.Extension))
	}
	if len(cfg.Inline) > 0 {
		opts = append(opts, outlet.WithTemplates(cfg.Inline))
	}
	registry, err := outlet.New(opts...)
	if err != nil {
		return nil, err
	}

	var fns []cards.OptionFn
	if cfg.Teacher != "" {
		row, err := outlet.Row[model.Teacher](registry, cfg.Teacher)
		if err != nil {
			return nil, err
		}
		fns = append(fns, cards.WithTeacherRow(row))
	}
	if cfg.Student != "" {
		row, err := outlet.Row[model.Student](registry, cfg.Student)
		if err != nil {
			return nil, err
		}
		fns = append(fns, cards.WithStudentRow(row))
	}
	return fns, nil
}

// NewLogger builds a slog logger from the log section.
func NewLogger(cfg config.LogConfig, out io.Writer) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(out, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(out, handlerOpts))
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Handler returns the root handler: the board under its mount path and a
// redirect from / to it.
func (a *App) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	pattern, err := a.Component.RegisterRoutes(mux, a.Config.BasePath)
	if err != nil {
		return nil, err
	}
	if pattern != "" {
		mux.Handle("/{$}", http.RedirectHandler(pattern, http.StatusFound))
	}
	return mux, nil
}

// Board returns a board sharing the application's stores.
func (a *App) Board() *cards.Board {
	return a.Component.Board()
}

// Serve listens on the configured address until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	handler, err := a.Handler()
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("listening", "addr", a.Config.Addr, "path", cards.MountPath(a.Config.BasePath, cards.WithRoutePath(a.Config.RoutePath)))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("app: listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	a.Logger.Info("server stopped")
	return nil
}
