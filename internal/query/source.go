// internal/query/source.go
//
// SQL data source behind auto widgets.
//
// Context
// -------
// An auto widget answers "which rows match this search term" without a
// hand-written view.  Source carries the configuration — table, optional
// base restriction, the value/label columns, and the ordered search
// fields — and turns a term into one SELECT: a logical OR of
// "field LIKE %term%" conditions with DISTINCT for de-duplication.  One
// extra row beyond MaxResults is fetched to detect whether more pages
// exist, then trimmed before serialisation.
//
// Identifier fields (Table, columns, SearchFields) come from integrator
// code, never from the request; only the term and offset travel as
// placeholders.

package query

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/select2/internal/registry"
)

// DefaultMaxResults bounds a result page when the widget does not say
// otherwise.
const DefaultMaxResults = 25

// ConfigError reports an integrator mistake: a widget wired without the
// pieces it needs.  It always names the owning widget so the failing form
// is findable from the log line alone.
type ConfigError struct {
	Owner  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("select2: %s %s", e.Owner, e.Reason)
}

// Result is one (value, label) pair in wire form.
type Result struct {
	ID   string `db:"id" json:"id"`
	Text string `db:"text" json:"text"`
}

// Page is one bounded slice of matches plus the has-more flag.
type Page struct {
	Items []Result
	More  bool
}

// Source describes the queryset an auto widget filters.  Exactly one base
// relation (Table) must be set; Where optionally narrows it, standing in
// for an explicit queryset.
type Source struct {
	DB *sqlx.DB

	// Owner is the widget type name used in configuration errors.
	Owner string

	Table        string
	Where        string
	ValueColumn  string // defaults to "id"
	LabelColumn  string // defaults to "name"
	SearchFields []string
	MaxResults   int // defaults to DefaultMaxResults
}

// FromSpec rebuilds a Source from a registry spec with the caller's DB
// handle.  Used by the central Ajax view.
func FromSpec(db *sqlx.DB, spec registry.Spec) *Source {
	return &Source{
		DB:           db,
		Owner:        spec.Widget,
		Table:        spec.Table,
		Where:        spec.Where,
		ValueColumn:  spec.ValueColumn,
		LabelColumn:  spec.LabelColumn,
		SearchFields: spec.SearchFields,
		MaxResults:   spec.MaxResults,
	}
}

// Spec returns the serialisable form of this source for registration.
func (s *Source) Spec() registry.Spec {
	return registry.Spec{
		Widget:       s.Owner,
		Table:        s.Table,
		Where:        s.Where,
		ValueColumn:  s.valueColumn(),
		LabelColumn:  s.labelColumn(),
		SearchFields: s.SearchFields,
		MaxResults:   s.maxResults(),
	}
}

// Filter returns the page of rows whose search fields contain term,
// starting at offset.  Term matching is case-insensitive per the usual
// collation; an empty term matches everything, which Select2 uses to show
// the initial dropdown.
func (s *Source) Filter(ctx context.Context, term string, offset int) (Page, error) {
	if err := s.check(); err != nil {
		return Page{}, err
	}
	if len(s.SearchFields) == 0 {
		return Page{}, &ConfigError{Owner: s.owner(), Reason: `must define "search_fields"`}
	}

	max := s.maxResults()
	if offset < 0 {
		offset = 0
	}

	var (
		conds = make([]string, 0, len(s.SearchFields))
		args  = make([]any, 0, len(s.SearchFields)+2)
	)
	pattern := "%" + escapeLike(term) + "%"
	for _, f := range s.SearchFields {
		conds = append(conds, fmt.Sprintf("%s LIKE ?", f))
		args = append(args, pattern)
	}

	where := "(" + strings.Join(conds, " OR ") + ")"
	if s.Where != "" {
		where = "(" + s.Where + ") AND " + where
	}

	// One row past the page bound detects the More flag.
	q := fmt.Sprintf(
		"SELECT DISTINCT %s AS id, %s AS text FROM %s WHERE %s ORDER BY %s LIMIT ? OFFSET ?",
		s.valueColumn(), s.labelColumn(), s.Table, where, s.labelColumn(),
	)
	args = append(args, max+1, offset)

	var rows []Result
	if err := s.DB.SelectContext(ctx, &rows, q, args...); err != nil {
		return Page{}, fmt.Errorf("query: filter %s: %w", s.Table, err)
	}

	page := Page{Items: rows}
	if len(rows) > max {
		page.Items = rows[:max]
		page.More = true
	}
	return page, nil
}

// Label resolves a single value to its display text.  ok is false when the
// value does not exist in the source, which field validation treats as an
// invalid choice.
func (s *Source) Label(ctx context.Context, value string) (string, bool, error) {
	if err := s.check(); err != nil {
		return "", false, err
	}

	where := fmt.Sprintf("%s = ?", s.valueColumn())
	args := []any{value}
	if s.Where != "" {
		where = "(" + s.Where + ") AND " + where
	}

	q := fmt.Sprintf("SELECT %s AS text FROM %s WHERE %s LIMIT 1",
		s.labelColumn(), s.Table, where)

	var text string
	err := s.DB.GetContext(ctx, &text, q, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("query: label lookup in %s: %w", s.Table, err)
	}
	return text, true, nil
}

// check enforces the one-base-relation invariant.
func (s *Source) check() error {
	if s.Table == "" {
		return &ConfigError{
			Owner:  s.owner(),
			Reason: "is missing a data source: set Table (model) or Table+Where (queryset)",
		}
	}
	return nil
}

func (s *Source) owner() string {
	if s.Owner != "" {
		return s.Owner
	}
	return "query.Source"
}

func (s *Source) valueColumn() string {
	if s.ValueColumn != "" {
		return s.ValueColumn
	}
	return "id"
}

func (s *Source) labelColumn() string {
	if s.LabelColumn != "" {
		return s.LabelColumn
	}
	return "name"
}

func (s *Source) maxResults() int {
	if s.MaxResults > 0 {
		return s.MaxResults
	}
	return DefaultMaxResults
}

// escapeLike neutralises LIKE metacharacters in user input so a literal
// "%" in the term cannot widen the match.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}
