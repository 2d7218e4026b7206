// internal/widget/assets.go
//
// Static asset tags and the embedded glue script.
//
// The Select2 library itself loads from a CDN; only the small glue script
// that initialises marked elements ships with this module, embedded so a
// deployment is a single binary.  Tag emission honours the auto-render
// toggle: integrators who manage their own bundles disable it and include
// the assets themselves.

package widget

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

const (
	cdnJS        = "//cdnjs.cloudflare.com/ajax/libs/select2/4.0.0/js/select2.min.js"
	cdnCSS       = "//cdnjs.cloudflare.com/ajax/libs/select2/4.0.0/css/select2.min.css"
	bootstrapCSS = "//cdnjs.cloudflare.com/ajax/libs/select2-bootstrap-css/1.4.6/select2-bootstrap.min.css"

	// GluePath is where cmd/web mounts StaticHandler.
	GluePath = "/static/select2/"
)

// AssetConfig mirrors the statics portion of the process configuration.
type AssetConfig struct {
	// AutoRender gates tag emission entirely.
	AutoRender bool
	// Bootstrap additionally links the bootstrap theme stylesheet.
	Bootstrap bool
}

// StaticTags returns the script and stylesheet tags a page needs, or ""
// when auto-render is off.
func StaticTags(cfg AssetConfig) template.HTML {
	if !cfg.AutoRender {
		return ""
	}

	out := `<link rel="stylesheet" href="` + cdnCSS + `">` + "\n"
	if cfg.Bootstrap {
		out += `<link rel="stylesheet" href="` + bootstrapCSS + `">` + "\n"
	}
	out += `<script src="` + cdnJS + `"></script>` + "\n"
	out += `<script src="` + GluePath + `select2glue.js"></script>` + "\n"
	return template.HTML(out)
}

// StaticHandler serves the embedded glue assets.  Mount at GluePath.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The subtree is compiled in; absence is a build defect.
		panic("widget: embedded static tree missing: " + err.Error())
	}
	return http.StripPrefix(GluePath, http.FileServer(http.FS(sub)))
}
