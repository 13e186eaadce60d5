package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/dmitrijs2005/myhealth/internal/client/editsession"
	"github.com/dmitrijs2005/myhealth/internal/client/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home", "food_list", "weight_list", "edit"}

// page is the data every template receives.
type page struct {
	Title string
	// Notice is a dismissible warning about an unreachable backend.
	Notice string
	Info   string
	Error  string
	Body   any
}

type foodListBody struct {
	Filter string
	Items  []models.Food
}

type weightListBody struct {
	Days  int
	Items []models.Weight
}

type editBody struct {
	Action    string
	View      editsession.View
	Saved     string
	BackURL   string
	BackLabel string
}

// renderer holds one template set per page, each combined with the layout.
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	funcs := template.FuncMap{"number": models.FormatNumber}

	r := &renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// render executes into a buffer first so a template failure never leaves a
// half-written page.
func (r *renderer) render(w http.ResponseWriter, status int, name string, p page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
