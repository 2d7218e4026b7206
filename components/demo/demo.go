// components/demo/demo.go
//
// Demo component – one page exercising a light widget and an auto widget
// end to end against the central Ajax view.
package demo

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yanizio/select2/internal/query"
	"github.com/yanizio/select2/internal/registry"
	"github.com/yanizio/select2/internal/routing"
	"github.com/yanizio/select2/internal/widget"
)

// Comp renders the demo form.  Dependencies arrive at construction; the
// component holds no global state.
type Comp struct {
	DB       *sqlx.DB
	Registry *registry.Registry
	Routes   *routing.Table
	Assets   widget.AssetConfig
	Log      *zap.SugaredLogger
}

var pageTpl = template.Must(template.New("demo").Parse(`<!doctype html>
<html>
<head>
  <title>Select2 demo</title>
  <script src="//cdnjs.cloudflare.com/ajax/libs/jquery/3.7.1/jquery.min.js"></script>
  {{.Statics}}
</head>
<body>
  <h1>Select2 widgets</h1>
  <form method="post">
    <label for="id_color">Color (light)</label>
    {{.Light}}
    <label for="id_owner">Owner (auto heavy)</label>
    {{.Auto}}
  </form>
</body>
</html>`))

// Router mounts the demo page.
func (c *Comp) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/", c.getDemo)
	return r
}

func (c *Comp) getDemo(w http.ResponseWriter, r *http.Request) {
	light := widget.NewSelect(widget.Base{Name: "color"}, []widget.Choice{
		{Value: "r", Label: "Red"},
		{Value: "g", Label: "Green"},
		{Value: "b", Label: "Blue"},
	})
	lightHTML, err := light.Render()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	auto, err := widget.NewAuto(widget.AutoConfig{
		Base: widget.Base{Name: "owner", Required: true},
		Source: &query.Source{
			DB:           c.DB,
			Table:        "person",
			LabelColumn:  "name",
			SearchFields: []string{"name", "email"},
		},
		Registry: c.Registry,
		Routes:   c.Routes,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	autoHTML, err := auto.Render(r.Context(), nil)
	if err != nil {
		c.Log.Errorw("demo render failed", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"Statics": widget.StaticTags(c.Assets),
		"Light":   lightHTML,
		"Auto":    autoHTML,
	}
	if err := pageTpl.Execute(w, data); err != nil {
		c.Log.Errorw("demo template failed", "err", err)
	}
}
