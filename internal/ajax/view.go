// internal/ajax/view.go
//
// Central Ajax endpoint serving every auto widget.
//
// Context
// -------
// One route answers the whole site: the request's field_id selects which
// widget's configuration to apply.  The view resolves the signed key via
// the registry, rebuilds the SQL source from the stored spec with its own
// DB handle, filters by the search term, and serialises one page of
// (id, text) pairs plus the has-more flag.
//
// Wire contract (client JS checks it literally):
//
//	GET ?term=<search>&field_id=<signed key>&page=<1-based>
//	200 {"err":"nil","results":[{"id":"1","text":"Joe"}],"more":false}
//	404 {"err":"not found","results":[],"more":false}      – key miss
//
// A key miss is not an exception: expired, unknown, and tampered keys all
// answer identically so the response leaks nothing about which it was.

package ajax

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yanizio/select2/internal/metrics"
	"github.com/yanizio/select2/internal/query"
	"github.com/yanizio/select2/internal/registry"
)

// NoErr is the wire-level "no error" sentinel.
const NoErr = "nil"

// Response is the JSON body of every central-view answer.
type Response struct {
	Err     string         `json:"err"`
	Results []query.Result `json:"results"`
	More    bool           `json:"more"`
}

// View resolves registry keys and runs widget filters.
type View struct {
	reg *registry.Registry
	db  *sqlx.DB
	log *zap.SugaredLogger
}

// NewView wires the central view.  The DB handle is the view's own; specs
// deliberately do not carry one.
func NewView(reg *registry.Registry, db *sqlx.DB, log *zap.SugaredLogger) *View {
	if log == nil {
		log = zap.S()
	}
	return &View{reg: reg, db: db, log: log}
}

// Routes mounts the JSON endpoint at "/".
func (v *View) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", v.handleJSON)
	return r
}

func (v *View) handleJSON(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	token := q.Get("field_id")
	if token == "" {
		metrics.AjaxRequests.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, Response{Err: "missing field_id", Results: []query.Result{}})
		return
	}

	spec, ok, err := v.reg.Resolve(r.Context(), token)
	if err != nil {
		v.log.Errorw("registry resolve failed", "err", err)
		metrics.AjaxRequests.WithLabelValues("error").Inc()
		writeJSON(w, http.StatusInternalServerError, Response{Err: "internal error", Results: []query.Result{}})
		return
	}
	if !ok {
		metrics.AjaxRequests.WithLabelValues("miss").Inc()
		writeJSON(w, http.StatusNotFound, Response{Err: "not found", Results: []query.Result{}})
		return
	}

	term := q.Get("term")
	page := 1
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 1 {
		page = p
	}

	src := query.FromSpec(v.db, spec)
	offset := (page - 1) * src.Spec().MaxResults

	result, err := src.Filter(r.Context(), term, offset)
	if err != nil {
		// Config errors here mean a widget registered a bad spec; that is
		// an integrator bug, logged loudly, but the client still gets a
		// well-formed body.
		v.log.Errorw("widget filter failed", "widget", spec.Widget, "err", err)
		metrics.AjaxRequests.WithLabelValues("error").Inc()
		writeJSON(w, http.StatusInternalServerError, Response{Err: "internal error", Results: []query.Result{}})
		return
	}

	metrics.AjaxRequests.WithLabelValues("ok").Inc()
	items := result.Items
	if items == nil {
		items = []query.Result{}
	}
	writeJSON(w, http.StatusOK, Response{Err: NoErr, Results: items, More: result.More})
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
