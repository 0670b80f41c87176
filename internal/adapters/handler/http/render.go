package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"pluralize": func(n int64) string {
		if n == 1 {
			return ""
		}
		return "s"
	},
	"published": func(t time.Time) string {
		return "published " + humanize.Time(t)
	},
	"comma": humanize.Comma,
}

// Renderer executes the embedded poll pages.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template)
	for _, page := range []string{"index.html", "detail.html", "results.html"} {
		tmpl, err := template.New(page).Funcs(templateFuncs).ParseFS(templateFS, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		pages[page] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// HTML renders into a buffer first so a template error still yields a 500.
func (rn *Renderer) HTML(w http.ResponseWriter, status int, page string, data interface{}) {
	tmpl, ok := rn.pages[page]
	if !ok {
		log.WithField("page", page).Error("unknown template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		log.WithError(err).WithField("page", page).Error("failed to render template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
