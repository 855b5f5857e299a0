package api

import (
	"net/http"

	"github.com/erazemk/welcomehome/internal/auth"
	"github.com/erazemk/welcomehome/internal/db"
	"github.com/erazemk/welcomehome/internal/service"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(services *service.Services, conn *db.DB, issuer *auth.Issuer) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{Identity: services.Identity, Issuer: issuer, DB: conn}
	catalogHandler := &CatalogHandler{Catalog: services.Catalog}
	itemsHandler := &ItemsHandler{Inventory: services.Inventory}
	ordersHandler := &OrdersHandler{Orders: services.Orders}
	tasksHandler := &TasksHandler{Tasks: services.Tasks}
	reportsHandler := &ReportsHandler{Reports: services.Reports}

	authMW := AuthMiddleware(issuer, conn)

	// Public: login.
	mux.HandleFunc("POST /api/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("POST /api/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/categories", authMW(http.HandlerFunc(catalogHandler.MainCategories)))
	mux.Handle("GET /api/subcategories", authMW(http.HandlerFunc(catalogHandler.Subcategories)))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("GET /api/orders/{id}", authMW(http.HandlerFunc(ordersHandler.Get)))
	mux.Handle("GET /api/tasks", authMW(http.HandlerFunc(tasksHandler.List)))
	mux.Handle("GET /api/rankings", authMW(http.HandlerFunc(reportsHandler.Rankings)))

	return mux
}
