package web

import (
	"errors"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/erazemk/welcomehome/internal/model"
)

// unexpected logs err and returns the generic notice shown in its place.
func unexpected(op string, err error) Flash {
	slog.Error("failed to "+op, "error", err)
	return danger("An unexpected error occurred. Please try again.")
}

// reason turns a validation error into a sentence for a notice.
func reason(err error) string {
	msg := err.Error()
	// Most specific first: ErrInvalidInput itself wraps ErrValidation.
	for _, kind := range []error{model.ErrInvalidInput, model.ErrValidation, model.ErrConflict, model.ErrNotFound} {
		if errors.Is(err, kind) && strings.HasPrefix(msg, kind.Error()+": ") {
			msg = strings.TrimPrefix(msg, kind.Error()+": ")
			break
		}
	}
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:] + "."
}
