// internal/widget/auto.go
//
// Auto widgets: heavy widgets that bring their own filter logic.
//
// An auto widget owns a query.Source and defaults its DataView to the one
// shared central endpoint, so the integrator mounts a single route for the
// whole site and every auto widget on every page disambiguates itself via
// its registry key.  The price is that the source configuration must be
// serialisable; the registry spec carries it to the Ajax view.

package widget

import (
	"context"
	"html/template"

	"github.com/yanizio/select2/internal/query"
	"github.com/yanizio/select2/internal/registry"
	"github.com/yanizio/select2/internal/routing"
)

// AutoConfig wires an auto widget.  Source is mandatory; DataView defaults
// to the central endpoint.
type AutoConfig struct {
	Base     Base
	Source   *query.Source
	Registry *registry.Registry
	Routes   *routing.Table
	// DataView overrides the central endpoint for widgets that want their
	// own route while keeping the auto filter semantics.
	DataView string
	// MinimumInputLength overrides the heavy default of 2 when > 0.
	MinimumInputLength int
}

// Auto composes the heavy Ajax capability with a SQL data source.
type Auto struct {
	Heavy
	Source *query.Source
}

// NewAuto builds a single-select auto widget.
func NewAuto(cfg AutoConfig) (*Auto, error) {
	return newAuto(cfg, "widget.Auto", false, false)
}

// NewAutoMulti builds the multi-select variant.
func NewAutoMulti(cfg AutoConfig) (*Auto, error) {
	return newAuto(cfg, "widget.AutoMulti", true, false)
}

// NewAutoTag builds the tagging variant (free text, min input length 1).
func NewAutoTag(cfg AutoConfig) (*Auto, error) {
	return newAuto(cfg, "widget.AutoTag", true, true)
}

func newAuto(cfg AutoConfig, kind string, multiple, tags bool) (*Auto, error) {
	if cfg.Source == nil {
		return nil, &query.ConfigError{Owner: kind, Reason: "requires a query source"}
	}

	dataView := cfg.DataView
	if dataView == "" {
		dataView = routing.CentralJSONRoute
	}

	h, err := newHeavy(HeavyConfig{
		Base:               cfg.Base,
		DataView:           dataView,
		Registry:           cfg.Registry,
		Routes:             cfg.Routes,
		MinimumInputLength: cfg.MinimumInputLength,
	}, kind, multiple)
	if err != nil {
		return nil, err
	}
	if tags {
		h.applyTagDefaults()
	}

	src := *cfg.Source
	src.Owner = kind
	return &Auto{Heavy: *h, Source: &src}, nil
}

// spec carries the full source configuration so the central view can
// rebuild the filter.
func (a *Auto) spec() registry.Spec {
	spec := a.Source.Spec()
	spec.Widget = a.kind
	spec.DataView = a.Ajax.DataView
	return spec
}

// BuildAttrs registers the source-carrying spec and returns the attribute
// set.  See Heavy.BuildAttrs.
func (a *Auto) BuildAttrs(ctx context.Context, extra Attrs) (Attrs, error) {
	return a.buildAttrs(ctx, extra, a.spec())
}

// Render emits the <select> with the selected choices inline.  Values in
// SelectedValues are resolved to labels through the source first; a value
// the source no longer contains is rendered with the value as its label
// rather than dropped, so the form round-trips.
func (a *Auto) Render(ctx context.Context, selectedValues []string) (template.HTML, error) {
	a.Selected = a.Selected[:0]
	for _, v := range selectedValues {
		label, ok, err := a.Source.Label(ctx, v)
		if err != nil {
			return "", err
		}
		if !ok {
			label = v
		}
		a.Selected = append(a.Selected, Choice{Value: v, Label: label})
	}
	return a.render(ctx, a.spec())
}

// FilterQueryset runs the source filter for term.  Exposed so custom views
// can reuse an auto widget's query logic directly.
func (a *Auto) FilterQueryset(ctx context.Context, term string, offset int) (query.Page, error) {
	return a.Source.Filter(ctx, term, offset)
}
