package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/zhouzirui/todos/internal/model/todo"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names.
const (
	Lists    = "lists"
	NewList  = "new_list"
	List     = "list"
	EditList = "edit_list"
)

// Page is the data context handed to every template.
type Page struct {
	Title   string
	Error   string
	Success string

	Lists []todo.Indexed[todo.List]
	List  *todo.List
	Todos []todo.Indexed[todo.Todo]

	// Form values echoed back on re-render.
	ListName string
	TodoName string
}

var funcs = template.FuncMap{
	"listClass": func(l todo.List) string {
		if l.IsComplete() {
			return "complete"
		}
		return ""
	},
	"todoClass": func(t todo.Todo) string {
		if t.Completed {
			return "complete"
		}
		return ""
	},
}

// Renderer executes the page templates inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page template.
func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{Lists, NewList, List, EditList} {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the named page with the given status. Nothing is written if execution fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
