// Package theme stores named color palettes and notifies subscribers when
// the active palette changes. A Store satisfies gridcanvas.Palette.
package theme

import (
	"errors"
	"fmt"
	"image/color"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/mazznoer/csscolorparser"
	"gopkg.in/yaml.v3"
)

// Built-in theme names.
const (
	Dark  = "dark"
	Light = "light"
)

// Property names used by the grid and the tables example.
const (
	GridColor         = "gridColor"
	BackgroundColor   = "backgroundColor"
	TableHeaderColor  = "tableHeaderColor"
	LeftBarBackground = "leftBarBackground"
)

var (
	// ErrUnknownTheme is returned when selecting a theme that is not defined.
	ErrUnknownTheme = errors.New("theme: unknown theme")
	// ErrUnknownColor is returned by Lookup for a property the active theme
	// does not define.
	ErrUnknownColor = errors.New("theme: unknown color")
)

// Palette maps property names to colors.
type Palette map[string]color.NRGBA

// builtin holds the CSS source of the default palettes.
var builtin = map[string]map[string]string{
	Dark: {
		GridColor:         "rgba(255, 255, 255, 0.1)",
		BackgroundColor:   "rgba(40, 44, 52, 1)",
		TableHeaderColor:  "rgba(97, 218, 251, 0.7)",
		LeftBarBackground: "rgba(40, 44, 52, 1)",
	},
	Light: {
		GridColor:         "rgba(97, 218, 251, 0.6)",
		BackgroundColor:   "rgba(255, 250, 250, 1)",
		TableHeaderColor:  "rgba(97, 218, 251, 1)",
		LeftBarBackground: "rgba(255, 250, 250, 1)",
	},
}

// Store holds the defined palettes and the active theme name. It is safe
// for concurrent use; subscribers run on the goroutine that changed the
// theme.
type Store struct {
	mu       sync.RWMutex
	palettes map[string]Palette
	active   string

	subs   map[int]func(name string)
	nextID int
}

// NewStore returns a store holding the built-in dark and light palettes
// with dark active.
func NewStore() *Store {
	s := &Store{
		palettes: make(map[string]Palette, len(builtin)),
		active:   Dark,
		subs:     make(map[int]func(string)),
	}
	for name, props := range builtin {
		p, err := ParsePalette(props)
		if err != nil {
			panic(fmt.Sprintf("theme: builtin %s: %v", name, err))
		}
		s.palettes[name] = p
	}
	return s
}

// Theme returns the active theme name.
func (s *Store) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Themes returns the defined theme names, sorted.
func (s *Store) Themes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.palettes))
}

// SetTheme activates a defined theme and notifies subscribers if it
// changed.
func (s *Store) SetTheme(name string) error {
	s.mu.Lock()
	if _, ok := s.palettes[name]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	changed := s.active != name
	s.active = name
	s.mu.Unlock()
	if changed {
		s.notify(name)
	}
	return nil
}

// Toggle switches between dark and light.
func (s *Store) Toggle() {
	next := Dark
	if s.Theme() == Dark {
		next = Light
	}
	_ = s.SetTheme(next)
}

// Lookup returns a color of the active theme.
func (s *Store) Lookup(name string) (color.NRGBA, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.palettes[s.active][name]
	if !ok {
		return color.NRGBA{}, fmt.Errorf("%w: %q in theme %q", ErrUnknownColor, name, s.active)
	}
	return c, nil
}

// Color returns a color of the active theme, or transparent when it is
// undefined.
func (s *Store) Color(name string) color.Color {
	c, err := s.Lookup(name)
	if err != nil {
		return color.Transparent
	}
	return c
}

// Subscribe registers fn to be called with the new theme name after every
// change. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(name string)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(name string) {
	s.mu.RLock()
	ids := slices.Sorted(maps.Keys(s.subs))
	fns := make([]func(string), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(name)
	}
}

// File is the YAML layout of a theme file. Themes listed here override or
// extend the built-in palettes property by property.
type File struct {
	Default string                       `yaml:"default"`
	Themes  map[string]map[string]string `yaml:"themes"`
}

// Parse decodes a theme file.
func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse theme file: %w", err)
	}
	return f, nil
}

// ParsePalette parses CSS color strings into a palette.
func ParsePalette(props map[string]string) (Palette, error) {
	p := make(Palette, len(props))
	for name, css := range props {
		c, err := ParseColor(css)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		p[name] = c
	}
	return p, nil
}

// ParseColor parses any CSS color: hex, rgb(), rgba(), hsl(), or a name.
func ParseColor(css string) (color.NRGBA, error) {
	c, err := csscolorparser.Parse(css)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: %w", css, err)
	}
	r, g, b, a := c.RGBA255()
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// Apply merges f into the store. Every color is parsed before anything is
// changed, so an invalid file leaves the store untouched. If f names a
// default theme it becomes active.
func (s *Store) Apply(f File) error {
	parsed := make(map[string]Palette, len(f.Themes))
	for name, props := range f.Themes {
		p, err := ParsePalette(props)
		if err != nil {
			return fmt.Errorf("theme %q: %w", name, err)
		}
		parsed[name] = p
	}

	s.mu.Lock()
	if f.Default != "" {
		if _, ok := s.palettes[f.Default]; !ok {
			if _, ok := parsed[f.Default]; !ok {
				s.mu.Unlock()
				return fmt.Errorf("default: %w: %q", ErrUnknownTheme, f.Default)
			}
		}
	}
	for name, p := range parsed {
		merged := maps.Clone(s.palettes[name])
		if merged == nil {
			merged = make(Palette, len(p))
		}
		maps.Copy(merged, p)
		s.palettes[name] = merged
	}
	_, touched := parsed[s.active]
	changed := touched
	if f.Default != "" && f.Default != s.active {
		s.active = f.Default
		changed = true
	}
	active := s.active
	s.mu.Unlock()

	if changed {
		s.notify(active)
	}
	return nil
}

// LoadFile reads a YAML theme file and applies it.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load theme: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return fmt.Errorf("load theme %s: %w", path, err)
	}
	if err := s.Apply(f); err != nil {
		return fmt.Errorf("load theme %s: %w", path, err)
	}
	return nil
}
