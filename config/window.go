package config

import (
	"github.com/gogpu/whisp"
	"github.com/gogpu/whisp/backend"
)

// WindowSpec is a fully resolved window description.
type WindowSpec struct {
	Backend       backend.Kind
	Title         string
	Width         int
	Height        int
	Clear         backend.Color
	TitleTemplate string
}

// Resolve fills in defaults and picks each window's backend: the window's
// own setting, then override (normally the command line flag), then the
// file-level backend. Unknown names fall back to DX12 with a warning.
func (c *Config) Resolve(override string) []WindowSpec {
	specs := make([]WindowSpec, 0, len(c.Windows))
	for _, w := range c.Windows {
		name := w.Backend
		if name == "" {
			name = override
		}
		if name == "" {
			name = c.Backend
		}
		kind, ok := backend.ParseKind(name)
		if !ok && name != "" {
			whisp.Logger().Warn("config: unknown backend, using dx12", "backend", name, "window", w.Title)
		}

		spec := WindowSpec{
			Backend:       kind,
			Title:         w.Title,
			Width:         w.Width,
			Height:        w.Height,
			Clear:         clearColor(w.ClearColor),
			TitleTemplate: w.TitleTemplate,
		}
		if spec.Title == "" {
			spec.Title = DefaultTitle
		}
		if spec.Width <= 0 {
			spec.Width = DefaultWidth
		}
		if spec.Height <= 0 {
			spec.Height = DefaultHeight
		}
		if spec.TitleTemplate == "" {
			spec.TitleTemplate = DefaultTitleTemplate
		}
		specs = append(specs, spec)
	}
	return specs
}

// clearColor applies the given channels over DefaultClearColor, so a short
// list keeps the defaults for the channels it omits.
func clearColor(ch []float32) backend.Color {
	c := DefaultClearColor
	dst := []*float32{&c.R, &c.G, &c.B, &c.A}
	for i := 0; i < len(ch) && i < len(dst); i++ {
		*dst[i] = ch[i]
	}
	return c
}
