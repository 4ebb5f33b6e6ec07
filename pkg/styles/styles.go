// Package styles resolves per card type presentation (container class and
// header image) from a go-theme manifest. Variant tokens override base tokens.
package styles

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cards/pkg/model"
)

const (
	// DefaultTheme is the name of the built-in manifest.
	DefaultTheme = "classroom"
	// DefaultVariant is the variant selected when none is configured.
	DefaultVariant = "light"
	// DefaultAssetPrefix is where the built-in header images are served.
	DefaultAssetPrefix = "/assets/img"
)

// ClassToken returns the token key holding the container class for t.
func ClassToken(t model.CardType) string {
	return "card." + t.String() + ".class"
}

// HeaderToken returns the asset key holding the header image for t.
func HeaderToken(t model.CardType) string {
	return "card." + t.String() + ".header"
}

// DefaultManifest returns the built-in classroom theme.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultTheme,
		Version: "1.0.0",
		Tokens: map[string]string{
			ClassToken(model.CardTypeTeacher): "bg-light-red",
			ClassToken(model.CardTypeStudent): "bg-light-green",
		},
		Assets: theme.Assets{
			Prefix: DefaultAssetPrefix,
			Files: map[string]string{
				HeaderToken(model.CardTypeTeacher): "teacher.png",
				HeaderToken(model.CardTypeStudent): "student.webp",
			},
		},
		Variants: map[string]theme.Variant{
			"light": {},
			"dark": {
				Tokens: map[string]string{
					ClassToken(model.CardTypeTeacher): "bg-dark-red text-white",
					ClassToken(model.CardTypeStudent): "bg-dark-green text-white",
				},
			},
		},
	}
}

// NewRegistry returns a theme registry holding the built-in manifest plus
// any extra manifests. Nil entries are skipped.
func NewRegistry(manifests ...*theme.Manifest) (*theme.MemoryRegistry, error) {
	registry := theme.NewRegistry()
	for _, manifest := range append([]*theme.Manifest{DefaultManifest()}, manifests...) {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("styles: register theme %q: %w", manifest.Name, err)
		}
	}
	return registry, nil
}

// Styles answers presentation lookups for one theme variant.
type Styles struct {
	selection *theme.Selection
	tokens    map[string]string
}

// New registers manifest alongside the built-in theme and selects variant
// from it. A nil manifest selects the built-in theme.
func New(manifest *theme.Manifest, variant string) (*Styles, error) {
	registry, err := NewRegistry(manifest)
	if err != nil {
		return nil, err
	}
	name := DefaultTheme
	if manifest != nil {
		name = manifest.Name
	}
	return Select(registry, name, variant)
}

// Select resolves name and variant from provider. An empty name selects the
// built-in theme. An empty variant selects DefaultVariant when the theme
// defines it and the base tokens otherwise. Unknown themes and variants are
// errors.
func Select(provider theme.ThemeProvider, name, variant string) (*Styles, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTheme
	}
	if provider == nil {
		return nil, fmt.Errorf("styles: theme provider is required")
	}
	// Selector falls back to its default theme silently; a configured name
	// that does not exist must not.
	if _, err := provider.Theme(name); err != nil {
		return nil, fmt.Errorf("styles: theme %q: %w", name, err)
	}

	variant = strings.TrimSpace(variant)
	explicit := variant != ""
	selector := theme.Selector{
		Registry:       provider,
		DefaultTheme:   DefaultTheme,
		DefaultVariant: DefaultVariant,
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("styles: %w", err)
	}
	if selection.Variant != "" {
		if _, ok := selection.Manifest.Variants[selection.Variant]; !ok {
			if explicit {
				return nil, fmt.Errorf("styles: theme %q has no variant %q", name, selection.Variant)
			}
			selection.Variant = ""
		}
	}
	return &Styles{selection: selection, tokens: selection.Tokens()}, nil
}

// Default returns styles for the built-in manifest.
func Default() *Styles {
	s, err := New(nil, DefaultVariant)
	if err != nil {
		panic(err)
	}
	return s
}

// Theme returns the selected theme name.
func (s *Styles) Theme() string {
	return s.selection.Theme
}

// Variant returns the selected variant.
func (s *Styles) Variant() string {
	return s.selection.Variant
}

// Token resolves key from the variant first, then the base manifest.
func (s *Styles) Token(key string) string {
	if s == nil {
		return ""
	}
	return s.tokens[key]
}

// AssetURL resolves an asset key to a path under the asset prefix.
func (s *Styles) AssetURL(key string) string {
	if s == nil || s.selection == nil {
		return ""
	}
	url, _ := s.selection.Asset(key)
	return url
}

// ClassFor returns the container class for t.
func (s *Styles) ClassFor(t model.CardType) string {
	return s.Token(ClassToken(t))
}

// HeaderFor returns the header image URL for t.
func (s *Styles) HeaderFor(t model.CardType) string {
	return s.AssetURL(HeaderToken(t))
}
