// internal/widget/options.go
//
// Select2 JS options and HTML attribute handling.
//
// Context
// -------
// The browser-side Select2 library is configured through data-* attributes
// on the <select> element.  Options holds the JS options a widget wants;
// BuildAttrs folds them into the attribute set as "data-<optionName>"
// entries.  Caller-supplied attributes always win: merging uses setdefault
// semantics, and the marker class is appended to (never replaces) an
// existing class list.

package widget

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// MarkerClass is appended to every rendered <select> so the glue JS can
// find the elements to enhance.
const MarkerClass = "go-select2"

// Options is the Select2 JS option set, keyed by the option's JS name.
// Values may be bool, int, string, or a slice (serialised as JSON).
type Options map[string]any

// defaults returns the semantic defaults every light widget starts from.
// Sub-variants override or drop entries as needed.
func defaults() Options {
	return Options{
		"minimumResultsForSearch": 6,
		"placeholder":             "",
		"allowClear":              true,
		"multiple":                false,
		"closeOnSelect":           false,
	}
}

// merged overlays o on top of the defaults without mutating either.
func (o Options) merged() Options {
	out := defaults()
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Attrs is an HTML attribute map.  An empty value renders as a bare
// boolean attribute (e.g. multiple, required).
type Attrs map[string]string

// clone returns a shallow copy so BuildAttrs never mutates caller state.
func (a Attrs) clone() Attrs {
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// setdefault stores val under key only when the key is absent.
func (a Attrs) setdefault(key, val string) {
	if _, ok := a[key]; !ok {
		a[key] = val
	}
}

// addClass appends class to the existing class list, preserving whatever
// the caller supplied.
func (a Attrs) addClass(class string) {
	if cur, ok := a["class"]; ok && cur != "" {
		a["class"] = cur + " " + class
		return
	}
	a["class"] = class
}

// sortedKeys returns attribute names in stable order for deterministic
// markup.
func (a Attrs) sortedKeys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// optionValue encodes one JS option value for embedding in a data-*
// attribute.  Slices become JSON so the client parses them back into
// arrays (tokenSeparators et al.).
func optionValue(v any) string {
	switch t := v.(type) {
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case string:
		return t
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	}
}
