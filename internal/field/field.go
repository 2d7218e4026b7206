// internal/field/field.go
//
// Form fields pairing a widget with server-side validation.
//
// Context
// -------
// Widgets only render; on submission the server must still decide whether
// the posted values are acceptable.  ChoiceField validates against a
// static choice list, ModelChoiceField against the widget's SQL source,
// and TagField accepts free text (it exists for tagging widgets where any
// non-empty token is a legal value).

package field

import (
	"context"
	"fmt"
	"strings"

	"github.com/yanizio/select2/internal/query"
)

// ValidationError reports a rejected submission value.  Name identifies
// the field so form-level error rendering can place the message.
type ValidationError struct {
	Name   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Name, e.Reason)
}

// ChoiceField validates against a fixed choice list.
type ChoiceField struct {
	Name     string
	Required bool
	Choices  []query.Result
}

// Clean validates raw submitted values and returns them unchanged on
// success.  An empty submission passes only when the field is optional.
func (f *ChoiceField) Clean(values []string) ([]string, error) {
	values = compact(values)
	if len(values) == 0 {
		if f.Required {
			return nil, &ValidationError{Name: f.Name, Reason: "this field is required"}
		}
		return nil, nil
	}

	valid := make(map[string]bool, len(f.Choices))
	for _, c := range f.Choices {
		valid[c.ID] = true
	}
	for _, v := range values {
		if !valid[v] {
			return nil, &ValidationError{Name: f.Name, Reason: fmt.Sprintf("%q is not a valid choice", v)}
		}
	}
	return values, nil
}

// ModelChoiceField validates against the rows of a query source, the same
// source its auto widget filters.
type ModelChoiceField struct {
	Name     string
	Required bool
	Source   *query.Source
}

// Clean checks each value exists in the source.
func (f *ModelChoiceField) Clean(ctx context.Context, values []string) ([]string, error) {
	values = compact(values)
	if len(values) == 0 {
		if f.Required {
			return nil, &ValidationError{Name: f.Name, Reason: "this field is required"}
		}
		return nil, nil
	}

	for _, v := range values {
		_, ok, err := f.Source.Label(ctx, v)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &ValidationError{Name: f.Name, Reason: fmt.Sprintf("%q is not a valid choice", v)}
		}
	}
	return values, nil
}

// TagField accepts any non-empty token, de-duplicated and trimmed.
type TagField struct {
	Name     string
	Required bool
}

// Clean normalises free-text tag input.
func (f *TagField) Clean(values []string) ([]string, error) {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	if len(out) == 0 {
		if f.Required {
			return nil, &ValidationError{Name: f.Name, Reason: "this field is required"}
		}
		return nil, nil
	}
	return out, nil
}

// compact drops empty strings, which browsers submit for cleared selects.
func compact(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
