package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/welcomehome/internal/auth"
	"github.com/erazemk/welcomehome/internal/db"
	"github.com/erazemk/welcomehome/internal/model"
	"github.com/erazemk/welcomehome/internal/service"
	webembed "github.com/erazemk/welcomehome/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"roleName": func(role model.Role) string { return role.DisplayName() },
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return db.FormatDate(t)
		},
		"location": func(room, shelf int) string {
			if room == model.HoldingRoom && shelf == model.HoldingShelf {
				return "Holding (ready for delivery)"
			}
			return fmt.Sprintf("Room %d, shelf %d", room, shelf)
		},
		"inc": func(i int) int { return i + 1 },
		"yesNo": func(b bool) string {
			if b {
				return "Yes"
			}
			return "No"
		},
	}
}

var pages = []string{
	"login.html",
	"register.html",
	"dashboard.html",
	"find_item.html",
	"find_order.html",
	"accept_donation.html",
	"start_order.html",
	"add_to_order.html",
	"prepare_order.html",
	"user_tasks.html",
	"rank_categories.html",
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
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
	Title   string
	User    *auth.Claims
	Flashes []Flash
}

func (p *PageData) base() *PageData { return p }

type page interface {
	base() *PageData
}

// Server holds all dependencies for page handlers.
type Server struct {
	Services  *service.Services
	DB        *db.DB
	Templates *Templates
	Issuer    *auth.Issuer
}

// render shows a page, prepending any flashes carried over from a redirect.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data page) {
	p := data.base()
	if p.User == nil {
		p.User = GetWebClaims(r.Context())
	}
	if carried := popFlashes(w, r); len(carried) > 0 {
		p.Flashes = append(carried, p.Flashes...)
	}
	s.Templates.Render(w, name, data)
}

// redirect sends the browser to path, carrying flashes in a cookie.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, path string, flashes ...Flash) {
	if len(flashes) > 0 {
		setFlashes(w, flashes)
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// actor returns the service caller for the session in r.
func actor(r *http.Request) service.Actor {
	claims := GetWebClaims(r.Context())
	if claims == nil {
		return service.Actor{}
	}
	return service.Actor{Username: claims.Username, Role: claims.Role}
}
