package cards

import (
	"log/slog"
	"net/http"

	"github.com/goliatone/go-cards/pkg/card"
	"github.com/goliatone/go-cards/pkg/fake"
	"github.com/goliatone/go-cards/pkg/model"
	"github.com/goliatone/go-cards/pkg/store"
	"github.com/goliatone/go-cards/pkg/styles"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath string
	Title     string
	Guard     GuardFunc
	Logger    *slog.Logger

	Teachers  *store.TeacherStore
	Students  *store.StudentStore
	Generator *fake.Generator
	Styles    *styles.Styles

	TeacherRow card.RowTemplate[model.Teacher]
	StudentRow card.RowTemplate[model.Student]
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath: "/cards",
		Title:     "Content projection",
	}
}

// NewOptions applies fns over the defaults and fills every collaborator that
// was left empty.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/cards"
	}
	if opts.Title == "" {
		opts.Title = "Content projection"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Teachers == nil {
		opts.Teachers = store.NewTeacherStore()
	}
	if opts.Students == nil {
		opts.Students = store.NewStudentStore()
	}
	if opts.Generator == nil {
		opts.Generator = fake.New()
	}
	if opts.Styles == nil {
		opts.Styles = styles.Default()
	}
	if opts.TeacherRow == nil {
		opts.TeacherRow = card.ListItemRow[model.Teacher]()
	}
	if opts.StudentRow == nil {
		opts.StudentRow = card.ListItemRow[model.Student]()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithTitle(title string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Title = title
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithTeacherStore(s *store.TeacherStore) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Teachers = s
	}
}

func WithStudentStore(s *store.StudentStore) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Students = s
	}
}

func WithGenerator(g *fake.Generator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Generator = g
	}
}

func WithStyles(s *styles.Styles) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Styles = s
	}
}

func WithTeacherRow(row card.RowTemplate[model.Teacher]) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.TeacherRow = row
	}
}

func WithStudentRow(row card.RowTemplate[model.Student]) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.StudentRow = row
	}
}
