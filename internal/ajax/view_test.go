// internal/ajax/view_test.go
//
// End-to-end tests for the central Ajax view.
//
// Context
// -------
// The full loop under test: construct an auto widget, render it, capture
// the emitted data-field_id, fire a GET at the central view with that key
// and a search term, and assert the JSON page.  sqlmock stands in for the
// source DB; the registry and route table are real.
//
// Workflow
// --------
//   1. Build memstore registry + signer + route table.
//   2. Build the auto widget and BuildAttrs to obtain the signed key.
//   3. httptest GET ?term=jo&field_id=<key> against View.Routes().
//   4. Assert body {err:"nil", results:[…], more:false}.

package ajax

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/select2/internal/query"
	"github.com/yanizio/select2/internal/registry"
	"github.com/yanizio/select2/internal/routing"
	"github.com/yanizio/select2/internal/widget"
)

type fixture struct {
	view   *View
	reg    *registry.Registry
	routes *routing.Table
	db     *sqlx.DB
	mock   sqlmock.Sqlmock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	db := sqlx.NewDb(mockDB, "sqlmock")

	signer, err := registry.NewSigner([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	reg := registry.New(registry.NewMemStore(64), signer, "select2_", time.Minute, nil)

	routes := routing.NewTable()
	routes.Register(routing.CentralJSONRoute, "/select2/json")

	return &fixture{
		view:   NewView(reg, db, nil),
		reg:    reg,
		routes: routes,
		db:     db,
		mock:   mock,
	}
}

// renderWidget builds an auto widget and returns its emitted field id.
func (f *fixture) renderWidget(t *testing.T) string {
	t.Helper()

	auto, err := widget.NewAuto(widget.AutoConfig{
		Base: widget.Base{Name: "owner"},
		Source: &query.Source{
			DB:           f.db,
			Table:        "person",
			LabelColumn:  "name",
			SearchFields: []string{"name", "email"},
			MaxResults:   2,
		},
		Registry: f.reg,
		Routes:   f.routes,
	})
	if err != nil {
		t.Fatalf("NewAuto: %v", err)
	}

	attrs, err := auto.BuildAttrs(context.Background(), nil)
	if err != nil {
		t.Fatalf("BuildAttrs: %v", err)
	}
	if attrs["data-field_id"] == "" {
		t.Fatal("data-field_id missing from rendered attrs")
	}
	return attrs["data-field_id"]
}

func (f *fixture) get(t *testing.T, params url.Values) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/?"+params.Encode(), nil)
	rr := httptest.NewRecorder()
	f.view.Routes().ServeHTTP(rr, req)

	var body Response
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad JSON body %q: %v", rr.Body.String(), err)
	}
	return rr, body
}

func TestCentralView_EndToEnd(t *testing.T) {
	f := newFixture(t)
	key := f.renderWidget(t)

	f.mock.ExpectQuery(
		"SELECT DISTINCT id AS id, name AS text FROM person "+
			"WHERE (name LIKE ? OR email LIKE ?) ORDER BY name LIMIT ? OFFSET ?",
	).
		WithArgs("%jo%", "%jo%", 3, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "text"}).
			AddRow("1", "Joe").
			AddRow("2", "Jon"))

	rr, body := f.get(t, url.Values{"term": {"jo"}, "field_id": {key}})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if body.Err != NoErr {
		t.Fatalf("err = %q, want %q", body.Err, NoErr)
	}
	if len(body.Results) != 2 || body.Results[0].Text != "Joe" {
		t.Fatalf("results = %+v", body.Results)
	}
	if body.More {
		t.Fatal("more = true with result count ≤ max_results")
	}
}

func TestCentralView_PaginationOffset(t *testing.T) {
	f := newFixture(t)
	key := f.renderWidget(t)

	// page=2 with max_results=2 → OFFSET 2.
	f.mock.ExpectQuery(
		"SELECT DISTINCT id AS id, name AS text FROM person "+
			"WHERE (name LIKE ? OR email LIKE ?) ORDER BY name LIMIT ? OFFSET ?",
	).
		WithArgs("%jo%", "%jo%", 3, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "text"}).AddRow("9", "Jos"))

	rr, body := f.get(t, url.Values{"term": {"jo"}, "field_id": {key}, "page": {"2"}})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if len(body.Results) != 1 || body.Results[0].ID != "9" {
		t.Fatalf("results = %+v", body.Results)
	}
}

func TestCentralView_UnknownKeyIs404(t *testing.T) {
	f := newFixture(t)

	rr, body := f.get(t, url.Values{"term": {"jo"}, "field_id": {"forged-key"}})

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if body.Err == NoErr {
		t.Fatal("miss did not set an error sentinel")
	}
	if len(body.Results) != 0 {
		t.Fatalf("miss returned results: %+v", body.Results)
	}
}

func TestCentralView_MissingFieldIDIs400(t *testing.T) {
	f := newFixture(t)

	rr, _ := f.get(t, url.Values{"term": {"jo"}})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}
