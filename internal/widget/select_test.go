// internal/widget/select_test.go
//
// Unit-tests for light widget attribute building and rendering.
//
// Context
// -------
// BuildAttrs must be an idempotent merge: the marker class is appended to
// caller classes, caller attributes always win over computed ones, and
// every JS option lands as a data-* entry.

package widget

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildAttrs_MarkerClassAppended(t *testing.T) {
	b := Base{Name: "color", Attrs: Attrs{"class": "wide custom"}}

	attrs := b.BuildAttrs(nil)

	if got := attrs["class"]; got != "wide custom "+MarkerClass {
		t.Fatalf("class = %q, want caller classes preserved plus marker", got)
	}
}

func TestBuildAttrs_CallerAttrsWin(t *testing.T) {
	b := Base{
		Name:     "color",
		Required: true,
		Attrs: Attrs{
			"data-allowClear":  "false",
			"data-placeholder": "Pick one",
			"id":               "custom-id",
		},
	}

	attrs := b.BuildAttrs(Attrs{"data-extra": "1"})

	want := Attrs{
		"id":                           "custom-id",
		"name":                         "color",
		"required":                     "",
		"class":                        MarkerClass,
		"data-allowClear":              "false",
		"data-placeholder":             "Pick one",
		"data-extra":                   "1",
		"data-minimumResultsForSearch": "6",
		"data-closeOnSelect":           "false",
	}
	if diff := cmp.Diff(want, attrs); diff != "" {
		t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildAttrs_AllowClearFollowsRequired(t *testing.T) {
	opt := Base{Name: "a"}.BuildAttrs(nil)
	if opt["data-allowClear"] != "false" {
		t.Fatalf("optional field: data-allowClear = %q, want false", opt["data-allowClear"])
	}

	req := Base{Name: "a", Required: true}.BuildAttrs(nil)
	if req["data-allowClear"] != "true" {
		t.Fatalf("required field: data-allowClear = %q, want true", req["data-allowClear"])
	}
}

func TestBuildAttrs_DefaultOptions(t *testing.T) {
	attrs := Base{Name: "a"}.BuildAttrs(nil)

	for k, want := range map[string]string{
		"data-minimumResultsForSearch": "6",
		"data-placeholder":             "",
		"data-closeOnSelect":           "false",
	} {
		if got := attrs[k]; got != want {
			t.Fatalf("%s = %q, want %q", k, got, want)
		}
	}
	// The multiple flag renders as a real attribute, never a data option
	// on a single select.
	if _, ok := attrs["multiple"]; ok {
		t.Fatal("single select got a multiple attribute")
	}
}

func TestSelect_RenderInlinesAllChoices(t *testing.T) {
	s := NewSelect(Base{Name: "color"}, []Choice{
		{Value: "r", Label: "Red"},
		{Value: "g", Label: "Gr<een"},
	})
	s.Selected = []string{"g"}

	html, err := s.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := string(html)

	if !strings.Contains(out, `<option value="r">Red</option>`) {
		t.Fatalf("unselected choice missing: %s", out)
	}
	if !strings.Contains(out, `<option value="g" selected>Gr&lt;een</option>`) {
		t.Fatalf("selected choice missing or unescaped: %s", out)
	}
	if !strings.Contains(out, MarkerClass) {
		t.Fatalf("marker class missing: %s", out)
	}
}

func TestMultiSelect_RendersMultipleAttr(t *testing.T) {
	s := NewMultiSelect(Base{Name: "colors"}, nil)

	html, err := s.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(html), " multiple") {
		t.Fatalf("multiple attribute missing: %s", html)
	}
}
