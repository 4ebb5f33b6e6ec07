package outlet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"
	"sync"
	"testing/fstest"

	"github.com/flosch/pongo2/v6"
)

// ErrTemplateNotFound is returned when a named template is neither
// registered nor loadable from the configured filesystem.
var ErrTemplateNotFound = errors.New("outlet: template not found")

// Option configures a Registry.
type Option func(*config)

type config struct {
	files     fs.FS
	extension string
	templates map[string]string
}

// WithFS lets the registry load templates by name from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithExtension overrides the extension appended to names loaded from the
// filesystem. Defaults to ".tpl".
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithTemplates registers inline templates keyed by name.
func WithTemplates(templates map[string]string) Option {
	return func(cfg *config) {
		if len(templates) == 0 {
			return
		}
		if cfg.templates == nil {
			cfg.templates = make(map[string]string, len(templates))
		}
		for name, source := range templates {
			cfg.templates[name] = source
		}
	}
}

// Registry holds compiled templates by name.
type Registry struct {
	mu sync.RWMutex

	set       *pongo2.TemplateSet
	hasFS     bool
	extension string
	templates map[string]*pongo2.Template
}

// New constructs a Registry.
func New(options ...Option) (*Registry, error) {
	cfg := &config{extension: ".tpl"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	// pongo2 sets need at least one loader. Inline templates are always
	// loadable so includes can reference them by file name.
	loaders := []pongo2.TemplateLoader{pongo2.NewFSLoader(inlineFS(cfg.templates, cfg.extension))}
	if cfg.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.files))
	}

	r := &Registry{
		set:       pongo2.NewSet("outlet", loaders...),
		hasFS:     cfg.files != nil,
		extension: cfg.extension,
		templates: make(map[string]*pongo2.Template),
	}
	registerDefaultFilters()

	names := make([]string, 0, len(cfg.templates))
	for name := range cfg.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := r.Register(name, cfg.templates[name]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register compiles source and stores it under name. Duplicate names return
// an error.
func (r *Registry) Register(name, source string) error {
	name = normalize(name)
	if name == "" {
		return fmt.Errorf("outlet: template name is required")
	}
	if strings.TrimSpace(source) == "" {
		return fmt.Errorf("outlet: template %q is empty", name)
	}

	tmpl, err := r.set.FromString(source)
	if err != nil {
		return fmt.Errorf("outlet: parse template %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.templates[name]; exists {
		return fmt.Errorf("outlet: template %q already registered", name)
	}
	r.templates[name] = tmpl
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(name, source string) {
	if err := r.Register(name, source); err != nil {
		panic(err)
	}
}

// Has reports whether name resolves to a template, loading it from the
// filesystem when needed.
func (r *Registry) Has(name string) bool {
	_, err := r.lookup(name)
	return err == nil
}

// Names returns the sorted names of resolved templates.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute renders the named template with data into w.
func (r *Registry) Execute(name string, data map[string]any, w io.Writer) error {
	tmpl, err := r.lookup(name)
	if err != nil {
		return err
	}

	ctx, err := convertToContext(data)
	if err != nil {
		return fmt.Errorf("outlet: convert data for %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return fmt.Errorf("outlet: execute template %q: %w", name, err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

func (r *Registry) lookup(name string) (*pongo2.Template, error) {
	name = normalize(name)

	r.mu.RLock()
	tmpl, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return tmpl, nil
	}
	if !r.hasFS || name == "" {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.templates[name]; ok {
		return tmpl, nil
	}

	path := name
	if !strings.HasSuffix(path, r.extension) {
		path += r.extension
	}
	loaded, err := r.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrTemplateNotFound, name, err)
	}
	r.templates[name] = loaded
	return loaded, nil
}

func inlineFS(templates map[string]string, ext string) fstest.MapFS {
	files := make(fstest.MapFS, len(templates))
	for name, source := range templates {
		name = normalize(name)
		if name == "" {
			continue
		}
		if !strings.HasSuffix(name, ext) {
			name += ext
		}
		files[name] = &fstest.MapFile{Data: []byte(source)}
	}
	return files
}

func normalize(name string) string {
	return strings.TrimSpace(name)
}

// pongo2 resolves struct fields by Go name, so records go through JSON to
// expose their tagged names (item.id, item.firstName).
func convertToContext(data map[string]any) (pongo2.Context, error) {
	out := make(pongo2.Context, len(data))
	for key, value := range data {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		converted, err := convertValue(value)
		if err != nil {
			return nil, err
		}
		out[key] = converted
	}
	return out, nil
}

func convertValue(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string, bool, int, int64, float64:
		return v, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	// UseNumber keeps ids printing as integers rather than floats.
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}
