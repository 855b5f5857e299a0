package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/erazemk/welcomehome/internal/auth"
	"github.com/erazemk/welcomehome/internal/db"
	"github.com/erazemk/welcomehome/internal/store"
)

type webContextKey string

const webClaimsKey webContextKey = "webclaims"

const sessionCookie = "session"

const loginRequired = "You must be logged in to access this page."

// sessionClaims returns the verified, unrevoked claims of the session
// cookie, or nil when there is no usable session.
func sessionClaims(r *http.Request, issuer *auth.Issuer, conn *db.DB) *auth.Claims {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims, err := issuer.Verify(cookie.Value)
	if err != nil {
		return nil
	}

	revoked, err := store.IsTokenRevoked(r.Context(), conn, claims.ID)
	if err != nil {
		slog.Error("failed to check token revocation", "error", err)
		return nil
	}
	if revoked {
		return nil
	}
	return claims
}

// RequireSession validates the session cookie, checks token revocation,
// and adds claims to context. Requests without a session are sent to the
// login page.
func RequireSession(issuer *auth.Issuer, conn *db.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := sessionClaims(r, issuer, conn)
			if claims == nil {
				clearSessionCookie(w)
				setFlashes(w, []Flash{warning(loginRequired)})
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), webClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// setSessionCookie issues a token for sess and stores it in the session
// cookie.
func setSessionCookie(w http.ResponseWriter, issuer *auth.Issuer, sess auth.Session) (*auth.Claims, error) {
	token, claims, err := issuer.Issue(sess)
	if err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(issuer.TTL().Seconds()),
	})
	return claims, nil
}

// clearSessionCookie clears the session cookie with consistent attributes.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetWebClaims retrieves the session claims from web context.
func GetWebClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(webClaimsKey).(*auth.Claims)
	return claims
}
