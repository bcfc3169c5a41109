// Package scenario loads YAML descriptions of a document, its injected
// text and its layout options.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/lineproj/linebreaks"
	"github.com/iw2rmb/lineproj/projection"
	"github.com/iw2rmb/lineproj/render"
	"github.com/iw2rmb/lineproj/viewmodel"
)

type Wrap struct {
	Mode    string `yaml:"mode"`
	Column  int    `yaml:"column"`
	TabSize int    `yaml:"tab_size"`
	Indent  string `yaml:"indent"`

	BreakBefore *string `yaml:"break_before"`
	BreakAfter  *string `yaml:"break_after"`
}

type Render struct {
	Whitespace string `yaml:"whitespace"`
}

type Injection struct {
	Row         int    `yaml:"row"`
	Offset      int    `yaml:"offset"`
	Content     string `yaml:"content"`
	CursorStops string `yaml:"cursor_stops"`
	StyleKey    string `yaml:"style_key"`
}

type Scenario struct {
	Name       string      `yaml:"name"`
	Text       string      `yaml:"text"`
	Wrap       Wrap        `yaml:"wrap"`
	Render     Render      `yaml:"render"`
	Injections []Injection `yaml:"injections"`
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scenario and checks its option names.
func Parse(raw []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if _, err := s.WrapOptions(); err != nil {
		return nil, err
	}
	if _, err := s.RenderOptions(); err != nil {
		return nil, err
	}
	for i, in := range s.Injections {
		if _, err := parseCursorStops(in.CursorStops); err != nil {
			return nil, fmt.Errorf("injection %d: %w", i, err)
		}
	}
	return &s, nil
}

// WrapOptions converts the wrap section. Missing fields take
// linebreaks.DefaultOptions values.
func (s *Scenario) WrapOptions() (linebreaks.Options, error) {
	opts := linebreaks.DefaultOptions()
	if s.Wrap.Mode != "" {
		mode, err := linebreaks.ParseWrapMode(s.Wrap.Mode)
		if err != nil {
			return opts, err
		}
		opts.Mode = mode
	}
	if s.Wrap.Indent != "" {
		indent, err := linebreaks.ParseWrapIndent(s.Wrap.Indent)
		if err != nil {
			return opts, err
		}
		opts.Indent = indent
	}
	if s.Wrap.Column != 0 {
		opts.Column = s.Wrap.Column
	}
	if s.Wrap.TabSize != 0 {
		opts.TabSize = s.Wrap.TabSize
	}
	if s.Wrap.BreakBefore != nil {
		opts.BreakBefore = *s.Wrap.BreakBefore
	}
	if s.Wrap.BreakAfter != nil {
		opts.BreakAfter = *s.Wrap.BreakAfter
	}
	return opts, nil
}

// RenderOptions converts the render section.
func (s *Scenario) RenderOptions() (render.Options, error) {
	opts := render.Options{TabSize: s.Wrap.TabSize}
	if s.Render.Whitespace != "" {
		ws, err := render.ParseWhitespaceMode(s.Render.Whitespace)
		if err != nil {
			return opts, err
		}
		opts.Whitespace = ws
	}
	return opts, nil
}

// InjectionProvider serves the scenario's injected text by row.
func (s *Scenario) InjectionProvider() viewmodel.InjectionProvider {
	byRow := make(map[int][]projection.InjectedText)
	for _, in := range s.Injections {
		stops, _ := parseCursorStops(in.CursorStops)
		byRow[in.Row] = append(byRow[in.Row], projection.InjectedText{
			Offset:      in.Offset,
			Content:     in.Content,
			CursorStops: stops,
			StyleKey:    in.StyleKey,
		})
	}
	return func(row int, _ string) []projection.InjectedText {
		return byRow[row]
	}
}

// Config assembles the view model configuration, applying override to the
// wrap options when it is non-nil.
func (s *Scenario) Config(override func(*linebreaks.Options)) (viewmodel.Config, error) {
	wrap, err := s.WrapOptions()
	if err != nil {
		return viewmodel.Config{}, err
	}
	if override != nil {
		override(&wrap)
	}
	ro, err := s.RenderOptions()
	if err != nil {
		return viewmodel.Config{}, err
	}
	ro.TabSize = wrap.TabSize
	return viewmodel.Config{
		Wrap:       wrap,
		Injections: s.InjectionProvider(),
		Render:     ro,
	}, nil
}

// Lines builds the projected document.
func (s *Scenario) Lines(override func(*linebreaks.Options)) (*viewmodel.Lines, error) {
	cfg, err := s.Config(override)
	if err != nil {
		return nil, err
	}
	return viewmodel.New(s.Text, cfg)
}

func parseCursorStops(s string) (projection.CursorStops, error) {
	if s == "" {
		return projection.CursorStopsNone, nil
	}
	for c := projection.CursorStopsNone; c <= projection.CursorStopsBoth; c++ {
		if c.String() == s {
			return c, nil
		}
	}
	return projection.CursorStopsNone, fmt.Errorf("unknown cursor stops %q", s)
}
