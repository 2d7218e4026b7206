// internal/widget/select.go
//
// Light widgets: the full option list is rendered inline and the JS does
// purely client-side filtering.  No registration, no server round-trip.
//
// The widget model is composition, not a class chain: Base carries the
// pieces every variant shares (name, required flag, caller attrs, JS
// options), Select adds inline choices, and heavy.go builds on Base with
// an Ajax capability instead.

package widget

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
)

// Choice is one (value, label) pair of a <select>.
type Choice struct {
	Value string
	Label string
}

// Base holds the configuration every Select2 widget shares.
type Base struct {
	// Name is the form submission key.  Required.
	Name string
	// ID is the element id; defaults to "id_<Name>".
	ID string
	// Required mirrors the form field's required flag.
	Required bool
	// Multiple renders a multi-select control.
	Multiple bool
	// Attrs are caller-supplied HTML attributes, never overwritten.
	Attrs Attrs
	// Options are Select2 JS option overrides merged over the defaults.
	Options Options
}

func (b Base) elementID() string {
	if b.ID != "" {
		return b.ID
	}
	return "id_" + b.Name
}

// BuildAttrs computes the final attribute set: caller attrs plus extra,
// the allow-clear flag derived from Required, the marker class, and every
// JS option as a data-* entry.  Caller-supplied values always survive.
func (b Base) BuildAttrs(extra Attrs) Attrs {
	attrs := b.Attrs.clone()
	for k, v := range extra {
		attrs.setdefault(k, v)
	}

	attrs.setdefault("id", b.elementID())
	attrs.setdefault("name", b.Name)
	if b.Required {
		attrs.setdefault("required", "")
	}
	if b.Multiple {
		attrs.setdefault("multiple", "")
	}

	attrs.setdefault("data-allowClear", boolAttr(b.Required))
	attrs.addClass(MarkerClass)

	for k, v := range b.Options.merged() {
		if k == "multiple" {
			// The multiple flag is a real attribute, not a JS option.
			continue
		}
		attrs.setdefault("data-"+k, optionValue(v))
	}
	return attrs
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// Select is the light widget: all options inline.
type Select struct {
	Base
	Choices []Choice
	// Selected holds the raw selected values.
	Selected []string
}

// NewSelect returns a light single-select widget.
func NewSelect(b Base, choices []Choice) *Select {
	b.Multiple = false
	return &Select{Base: b, Choices: choices}
}

// NewMultiSelect returns a light multi-select widget.
func NewMultiSelect(b Base, choices []Choice) *Select {
	b.Multiple = true
	return &Select{Base: b, Choices: choices}
}

// Render emits the complete <select> element with every choice inline.
func (s *Select) Render() (template.HTML, error) {
	if s.Name == "" {
		return "", fmt.Errorf("widget: Select is missing a Name")
	}

	selected := make(map[string]bool, len(s.Selected))
	for _, v := range s.Selected {
		selected[v] = true
	}

	var buf bytes.Buffer
	openSelect(&buf, s.BuildAttrs(nil))
	for _, c := range s.Choices {
		writeOption(&buf, c, selected[c.Value])
	}
	buf.WriteString("</select>")
	return template.HTML(buf.String()), nil
}

// openSelect writes the opening tag with attributes in stable order.
func openSelect(buf *bytes.Buffer, attrs Attrs) {
	buf.WriteString("<select")
	for _, k := range attrs.sortedKeys() {
		v := attrs[k]
		if v == "" && (k == "required" || k == "multiple") {
			buf.WriteString(" " + k)
			continue
		}
		buf.WriteString(fmt.Sprintf(` %s="%s"`, k, html.EscapeString(v)))
	}
	buf.WriteString(">\n")
}

func writeOption(buf *bytes.Buffer, c Choice, selected bool) {
	buf.WriteString(`<option value="` + html.EscapeString(c.Value) + `"`)
	if selected {
		buf.WriteString(" selected")
	}
	buf.WriteString(">" + html.EscapeString(c.Label) + "</option>\n")
}
