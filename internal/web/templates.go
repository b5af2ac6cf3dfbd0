package web

import (
	"database/sql"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lacosdev-code/peminjaman/internal/backend"
	"github.com/lacosdev-code/peminjaman/internal/imagehost"
	"github.com/lacosdev-code/peminjaman/internal/model"
	webembed "github.com/lacosdev-code/peminjaman/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"availabilityLabel": model.AvailabilityLabel,
		"availabilityClass": func(available int) string {
			switch model.AvailabilityLabel(available) {
			case model.AvailabilityHabis:
				return "status-habis"
			case model.AvailabilityTerbatas:
				return "status-terbatas"
			default:
				return "status-tersedia"
			}
		},
		"categoryIcon": model.CategoryIcon,
		"typeClass": func(handoverType string) string {
			if handoverType == model.TypeKembali {
				return "type-kembali"
			}
			return "type-pinjam"
		},
		"conditionClass": func(condition string) string {
			switch condition {
			case model.ConditionBaik, "Bagus":
				return "cond-good"
			default:
				return "cond-bad"
			}
		},
		"clock": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Local().Format("15:04")
		},
		"dateTime": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Local().Format("02 Jan 2006 15:04")
		},
		"firstName": func(name string) string {
			fields := strings.Fields(name)
			if len(fields) == 0 {
				return name
			}
			return fields[0]
		},
		"initial": func(name string) string {
			name = strings.TrimSpace(name)
			if name == "" {
				return "?"
			}
			return strings.ToUpper(name[:1])
		},
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"login.html",
		"dashboard.html",
		"assets.html",
		"personal_assets.html",
		"handover.html",
		"logs.html",
		"scan.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title      string
	Technician *model.Technician
	Error      string
	Success    string
}

// Server holds all dependencies for page handlers.
type Server struct {
	DB             *sql.DB
	Backend        *backend.Client
	Images         *imagehost.Client
	Watcher        *backend.Watcher
	Templates      *Templates
	SessionSecret  string
	SessionTimeout time.Duration
}
