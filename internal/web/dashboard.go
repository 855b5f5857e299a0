package web

import (
	"net/http"

	"github.com/erazemk/welcomehome/internal/model"
)

type dashboardPage struct {
	PageData
	IsStaff bool
}

// Dashboard handles GET /dashboard.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	s.render(w, r, "dashboard.html", &dashboardPage{
		PageData: PageData{Title: "Dashboard", User: claims},
		IsStaff:  claims.Role == model.RoleStaff,
	})
}
