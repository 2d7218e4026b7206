// internal/widget/heavy.go
//
// Heavy widgets: only the selected choices render inline; the full option
// list is fetched on demand from an Ajax endpoint.
//
// Context
// -------
// On every render a heavy widget writes its spec into the registry and
// embeds the signed key as data-field_id, so the later Ajax request can
// find "the widget that rendered this element".  The endpoint URL is
// resolved lazily from a route name because routes are mounted after the
// widgets are constructed.  Registry and route table arrive by injection;
// there is no hidden global to get registration order wrong.

package widget

import (
	"bytes"
	"context"
	"html/template"

	"github.com/yanizio/select2/internal/query"
	"github.com/yanizio/select2/internal/registry"
	"github.com/yanizio/select2/internal/routing"
)

// Ajax is the capability block heavy variants add on top of Base.
type Ajax struct {
	// DataView names the route serving this widget's Ajax requests.
	DataView string
	// MinimumInputLength gates how many characters trigger a search.
	MinimumInputLength int
	// Tags enables free-text entry with TokenSeparators.
	Tags bool
	// TokenSeparators splits free-text input into tags.
	TokenSeparators []string
}

// HeavyConfig wires a Heavy widget.  DataView, Registry, and Routes are
// mandatory.
type HeavyConfig struct {
	Base     Base
	DataView string
	Registry *registry.Registry
	Routes   *routing.Table
	// MinimumInputLength overrides the heavy default of 2 when > 0.
	MinimumInputLength int
}

// Heavy renders selected choices inline and defers the rest to Ajax.
type Heavy struct {
	Base
	Ajax Ajax

	// Selected carries resolved (value, label) pairs.  Labels must be
	// resolved by the caller (or the auto layer) before render; raw values
	// alone cannot label the inline options.
	Selected []Choice

	kind     string
	registry *registry.Registry
	routes   *routing.Table
}

// NewHeavy builds a single-select heavy widget.  Construction fails when
// DataView is absent: with no endpoint to query the widget can never
// populate, so this is an integrator error surfaced as early as possible.
func NewHeavy(cfg HeavyConfig) (*Heavy, error) {
	return newHeavy(cfg, "widget.Heavy", false)
}

// NewHeavyMulti builds the multi-select variant.
func NewHeavyMulti(cfg HeavyConfig) (*Heavy, error) {
	return newHeavy(cfg, "widget.HeavyMulti", true)
}

func newHeavy(cfg HeavyConfig, kind string, multiple bool) (*Heavy, error) {
	if cfg.DataView == "" {
		return nil, &query.ConfigError{Owner: kind, Reason: `requires a "data_view" route name`}
	}
	if cfg.Registry == nil {
		return nil, &query.ConfigError{Owner: kind, Reason: "requires a registry"}
	}
	if cfg.Routes == nil {
		return nil, &query.ConfigError{Owner: kind, Reason: "requires a route table"}
	}

	b := cfg.Base
	b.Multiple = multiple
	minLen := 2
	if cfg.MinimumInputLength > 0 {
		minLen = cfg.MinimumInputLength
	}

	return &Heavy{
		Base: b,
		Ajax: Ajax{
			DataView:           cfg.DataView,
			MinimumInputLength: minLen,
		},
		kind:     kind,
		registry: cfg.Registry,
		routes:   cfg.Routes,
	}, nil
}

// spec is the registry payload.  Plain heavy widgets carry no data source;
// auto.go overrides this with a populated one.
func (h *Heavy) spec() registry.Spec {
	return registry.Spec{Widget: h.kind, DataView: h.Ajax.DataView}
}

// BuildAttrs resolves the endpoint URL, registers the widget, and returns
// the attribute set including the Ajax data attributes.  Each call mints a
// fresh registry entry, which is what keeps long-lived pages working after
// earlier entries expire.
func (h *Heavy) BuildAttrs(ctx context.Context, extra Attrs) (Attrs, error) {
	return h.buildAttrs(ctx, extra, h.spec())
}

func (h *Heavy) buildAttrs(ctx context.Context, extra Attrs, spec registry.Spec) (Attrs, error) {
	url, err := h.routes.Reverse(h.Ajax.DataView)
	if err != nil {
		return nil, err
	}

	key, err := h.registry.Register(ctx, spec)
	if err != nil {
		return nil, err
	}

	attrs := h.Base.BuildAttrs(extra)
	attrs["data-field_id"] = key
	attrs.setdefault("data-ajax--url", url)
	attrs.setdefault("data-ajax--cache", "true")
	attrs.setdefault("data-ajax--type", "GET")
	attrs.setdefault("data-minimumInputLength", optionValue(h.Ajax.MinimumInputLength))
	if h.Ajax.Tags {
		attrs["data-tags"] = "true"
		attrs["data-tokenSeparators"] = optionValue(h.Ajax.TokenSeparators)
		attrs["data-minimumInputLength"] = optionValue(h.Ajax.MinimumInputLength)
	}
	return attrs, nil
}

// Render emits the <select> with only the selected choices inline.
func (h *Heavy) Render(ctx context.Context) (template.HTML, error) {
	return h.render(ctx, h.spec())
}

func (h *Heavy) render(ctx context.Context, spec registry.Spec) (template.HTML, error) {
	attrs, err := h.buildAttrs(ctx, nil, spec)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	openSelect(&buf, attrs)
	for _, c := range h.Selected {
		writeOption(&buf, c, true)
	}
	buf.WriteString("</select>")
	return template.HTML(buf.String()), nil
}

// NewTag builds a tagging widget: multi-select, free-text entry, comma and
// space as separators, and a minimum input length of 1 regardless of any
// heavier default.
func NewTag(cfg HeavyConfig) (*Heavy, error) {
	h, err := newHeavy(cfg, "widget.Tag", true)
	if err != nil {
		return nil, err
	}
	h.applyTagDefaults()
	return h, nil
}

func (h *Heavy) applyTagDefaults() {
	h.Ajax.Tags = true
	h.Ajax.MinimumInputLength = 1
	h.Ajax.TokenSeparators = []string{",", " "}
}
