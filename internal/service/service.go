// Package service implements the application operations on top of the
// store, enforcing role checks and mapping failures onto the model error
// taxonomy.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/erazemk/welcomehome/internal/db"
	"github.com/erazemk/welcomehome/internal/events"
	"github.com/erazemk/welcomehome/internal/model"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	Username string
	Role     model.Role
}

// Cache stores JSON-encodable reference data.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) error
	SetJSON(ctx context.Context, key string, v any) error
	Invalidate(ctx context.Context, keys ...string) error
}

// Deps are the collaborators shared by all services. Cache and Events
// are optional.
type Deps struct {
	DB     *db.DB
	Cache  Cache
	Events events.Publisher
	Now    func() time.Time
}

// Services groups the operation sets.
type Services struct {
	Identity  *Identity
	Inventory *Inventory
	Orders    *Orders
	Reports   *Reports
	Tasks     *Tasks
	Catalog   *Catalog
}

type base struct {
	db       *db.DB
	cache    Cache
	events   events.Publisher
	now      func() time.Time
	validate *validator.Validate
}

// New wires the services.
func New(d Deps) *Services {
	b := &base{
		db:       d.DB,
		cache:    d.Cache,
		events:   d.Events,
		now:      d.Now,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	if b.events == nil {
		b.events = events.Discard{}
	}
	if b.now == nil {
		b.now = time.Now
	}

	catalog := &Catalog{b}
	return &Services{
		Identity:  &Identity{b},
		Inventory: &Inventory{b, catalog},
		Orders:    &Orders{b, catalog},
		Reports:   &Reports{b},
		Tasks:     &Tasks{b},
		Catalog:   catalog,
	}
}

// publish sends an event. Failures are logged and never surface.
func (b *base) publish(ctx context.Context, e events.Event) {
	e.At = b.now()
	if err := b.events.Publish(ctx, e); err != nil {
		slog.Warn("failed to publish event", "event", e.Type, "error", err)
	}
}

// check validates v and maps failures to model.ErrInvalidInput.
func (b *base) check(v any) error {
	err := b.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating input: %w", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fmt.Errorf("%w: %s", model.ErrInvalidInput, strings.Join(fields, ", "))
}

// ParseID parses a form identifier. Only plain decimal digits are accepted.
func ParseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, model.ErrInvalidInput
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, model.ErrInvalidInput
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, model.ErrInvalidInput
	}
	return id, nil
}

func requireStaff(a Actor, action string) error {
	if a.Role != model.RoleStaff {
		return fmt.Errorf("%w: only staff members can %s", model.ErrAccessDenied, action)
	}
	return nil
}
