package web

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

const flashCookie = "flash"

// Flash levels, matching the alert styles of the layout.
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelDanger  = "danger"
)

// Flash is a one-time notice shown on the next rendered page.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func success(format string, args ...any) Flash {
	return Flash{Level: LevelSuccess, Message: fmt.Sprintf(format, args...)}
}

func info(format string, args ...any) Flash {
	return Flash{Level: LevelInfo, Message: fmt.Sprintf(format, args...)}
}

func warning(format string, args ...any) Flash {
	return Flash{Level: LevelWarning, Message: fmt.Sprintf(format, args...)}
}

func danger(format string, args ...any) Flash {
	return Flash{Level: LevelDanger, Message: fmt.Sprintf(format, args...)}
}

func setFlashes(w http.ResponseWriter, flashes []Flash) {
	data, err := json.Marshal(flashes)
	if err != nil {
		slog.Error("failed to encode flashes", "error", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.URLEncoding.EncodeToString(data),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlashes reads and clears the flash cookie. A malformed cookie is
// dropped silently.
func popFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	data, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil
	}
	return flashes
}
