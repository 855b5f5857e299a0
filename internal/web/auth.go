package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/welcomehome/internal/auth"
	"github.com/erazemk/welcomehome/internal/model"
	"github.com/erazemk/welcomehome/internal/service"
	"github.com/erazemk/welcomehome/internal/store"
)

type registerPage struct {
	PageData
	Roles []model.Role
	Form  service.RegisterInput
}

// RegisterPage handles GET /register.
func (s *Server) RegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "register.html", &registerPage{
		PageData: PageData{Title: "Register"},
		Roles:    model.Roles,
	})
}

// RegisterSubmit handles POST /register.
func (s *Server) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	in := service.RegisterInput{
		Username:  r.FormValue("username"),
		Password:  r.FormValue("password"),
		FirstName: r.FormValue("fname"),
		LastName:  r.FormValue("lname"),
		Email:     r.FormValue("email"),
		Role:      r.FormValue("role"),
	}

	err := s.Services.Identity.Register(r.Context(), in)
	if err == nil {
		slog.Info("user registered", "user", in.Username, "role", in.Role)
		s.redirect(w, r, "/login", success("Registration successful! You can now log in."))
		return
	}

	var flash Flash
	switch {
	case errors.Is(err, model.ErrDuplicateUsername):
		flash = danger("Error: Username already exists. Please choose another.")
	case errors.Is(err, model.ErrValidation):
		flash = danger("Error: %s", reason(err))
	default:
		flash = unexpected("register user", err)
	}

	in.Password = ""
	s.render(w, r, "register.html", &registerPage{
		PageData: PageData{Title: "Register", Flashes: []Flash{flash}},
		Roles:    model.Roles,
		Form:     in,
	})
}

type loginPage struct {
	PageData
	Username string
}

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login.html", &loginPage{PageData: PageData{Title: "Login"}})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	fail := func(f Flash) {
		s.render(w, r, "login.html", &loginPage{
			PageData: PageData{Title: "Login", Flashes: []Flash{f}},
			Username: username,
		})
	}

	p, err := s.Services.Identity.Login(r.Context(), username, password)
	switch {
	case errors.Is(err, model.ErrInvalidUsername):
		fail(danger("Invalid username."))
		return
	case errors.Is(err, model.ErrInvalidPassword):
		slog.Warn("login failed", "username", username, "remote", r.RemoteAddr)
		fail(danger("Invalid password."))
		return
	case err != nil:
		slog.Error("failed to log in", "username", username, "error", err)
		fail(danger("An unexpected error occurred during login. Please try again."))
		return
	}

	if _, err := setSessionCookie(w, s.Issuer, auth.Session{Username: p.Username, Role: p.Role}); err != nil {
		slog.Error("failed to issue session", "username", p.Username, "error", err)
		fail(danger("An unexpected error occurred during login. Please try again."))
		return
	}

	slog.Info("user logged in", "user", p.Username, "role", p.Role)
	s.redirect(w, r, "/dashboard", success("Login successful!"))
}

// Logout handles GET /logout. It succeeds with or without a session.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if claims := sessionClaims(r, s.Issuer, s.DB); claims != nil {
		if err := store.RevokeToken(r.Context(), s.DB, claims.ID, claims.Expiry()); err != nil {
			slog.Error("failed to revoke token", "user", claims.Username, "error", err)
		} else {
			slog.Info("user logged out", "user", claims.Username)
		}
	}

	clearSessionCookie(w)
	s.redirect(w, r, "/login", info("You have been logged out."))
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, r *http.Request) {
	if sessionClaims(r, s.Issuer, s.DB) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
