package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/abhisek/mathdrills/internal/logging"
	"github.com/abhisek/mathdrills/internal/present"
)

//go:embed templates/*.html
var templateFS embed.FS

// boundBlock carries the activity id down to nested blocks so action
// buttons can build their URLs.
type boundBlock struct {
	ID    string
	Block present.Block
}

func loadTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"kind": blockKind,
		"bind": func(id string, blocks []present.Block) []boundBlock {
			out := make([]boundBlock, len(blocks))
			for i, b := range blocks {
				out[i] = boundBlock{ID: id, Block: b}
			}
			return out
		},
		"actionPath": func(id, action string) string {
			if action == present.ActionSubmit {
				action = "answer"
			}
			return "/a/" + id + "/" + action
		},
		"barPct": func(c present.Chart, v int) int {
			top := 0
			for _, b := range c.Bars {
				top = max(top, b.Value)
			}
			if top == 0 {
				return 0
			}
			return v * 100 / top
		},
		"add": func(a, b int) int { return a + b },
	}
	return template.New("base").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

func blockKind(b present.Block) string {
	switch b.(type) {
	case present.Heading:
		return "heading"
	case present.Text:
		return "text"
	case present.Notice:
		return "notice"
	case present.Chart:
		return "chart"
	case present.Grid:
		return "grid"
	case present.Table:
		return "table"
	case present.Figure:
		return "figure"
	case present.Input:
		return "input"
	case present.Buttons:
		return "buttons"
	case present.Picker:
		return "picker"
	case present.Columns:
		return "columns"
	case present.Expander:
		return "expander"
	case present.Actions:
		return "actions"
	}
	return ""
}

// render executes a page into a buffer first so a template error never
// leaves a half-written response.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		logging.FromContext(r.Context()).Error("template render failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

type errorPage struct {
	Status  int
	Title   string
	Message string
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.render(w, r, status, "error.html", errorPage{Status: status, Title: http.StatusText(status), Message: msg})
}
