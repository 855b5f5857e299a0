package web

import (
	"net/http"

	"github.com/erazemk/welcomehome/internal/api"
	"github.com/erazemk/welcomehome/internal/auth"
	"github.com/erazemk/welcomehome/internal/db"
	"github.com/erazemk/welcomehome/internal/service"
	webembed "github.com/erazemk/welcomehome/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(services *service.Services, conn *db.DB, issuer *auth.Issuer) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Services:  services,
		DB:        conn,
		Templates: templates,
		Issuer:    issuer,
	}

	mux := http.NewServeMux()
	session := RequireSession(issuer, conn)
	catalog := &api.CatalogHandler{Catalog: services.Catalog}

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /{$}", s.Root)
	mux.HandleFunc("GET /register", s.RegisterPage)
	mux.HandleFunc("POST /register", s.RegisterSubmit)
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("GET /logout", s.Logout)

	// Session routes. Role checks happen in the handlers.
	mux.Handle("GET /dashboard", session(http.HandlerFunc(s.Dashboard)))

	mux.Handle("GET /find_item", session(http.HandlerFunc(s.FindItemPage)))
	mux.Handle("POST /find_item", session(http.HandlerFunc(s.FindItemSubmit)))
	mux.Handle("GET /items/{id}/photo", session(http.HandlerFunc(s.ItemPhoto)))
	mux.Handle("GET /accept_donation", session(http.HandlerFunc(s.AcceptDonationPage)))
	mux.Handle("POST /accept_donation", session(http.HandlerFunc(s.AcceptDonationSubmit)))
	mux.Handle("GET /get_subcategories", session(http.HandlerFunc(catalog.Subcategories)))

	mux.Handle("GET /find_order", session(http.HandlerFunc(s.FindOrderPage)))
	mux.Handle("POST /find_order", session(http.HandlerFunc(s.FindOrderSubmit)))
	mux.Handle("GET /start_order", session(http.HandlerFunc(s.StartOrderPage)))
	mux.Handle("POST /start_order", session(http.HandlerFunc(s.StartOrderSubmit)))
	mux.Handle("GET /add_to_order", session(http.HandlerFunc(s.AddToOrderPage)))
	mux.Handle("POST /add_to_order", session(http.HandlerFunc(s.AddToOrderSubmit)))
	mux.Handle("GET /prepare_order", session(http.HandlerFunc(s.PrepareOrderPage)))
	mux.Handle("POST /prepare_order", session(http.HandlerFunc(s.PrepareOrderSubmit)))

	mux.Handle("GET /user_tasks", session(http.HandlerFunc(s.UserTasks)))
	mux.Handle("GET /rank_categories", session(http.HandlerFunc(s.RankCategoriesPage)))
	mux.Handle("POST /rank_categories", session(http.HandlerFunc(s.RankCategoriesSubmit)))
	mux.Handle("GET /rank_categories/export", session(http.HandlerFunc(s.RankCategoriesExport)))

	return mux, nil
}
