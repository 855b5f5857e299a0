package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/erazemk/welcomehome/internal/auth"
	"github.com/erazemk/welcomehome/internal/model"
	"github.com/erazemk/welcomehome/internal/store"
)

// Identity registers and authenticates people.
type Identity struct{ *base }

// RegisterInput is the registration form.
type RegisterInput struct {
	Username  string `validate:"required,max=64"`
	Password  string `validate:"required"`
	FirstName string `validate:"max=100"`
	LastName  string `validate:"max=100"`
	Email     string `validate:"omitempty,email"`
	Role      string `validate:"required,oneof=staff volunteer client donor"`
}

// Register creates a person with one role.
func (s *Identity) Register(ctx context.Context, in RegisterInput) error {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	// A taken username is reported before any other problem with the form.
	if in.Username != "" {
		existing, err := store.GetPerson(ctx, s.db, in.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return model.ErrDuplicateUsername
		}
	}

	if err := s.check(in); err != nil {
		return err
	}
	if err := model.ValidatePassword(in.Password); err != nil {
		return err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return err
	}

	p := model.Person{
		Username:     in.Username,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        in.Email,
	}
	// The unique constraint still catches a concurrent registration.
	return store.CreatePerson(ctx, s.db, p, model.Role(in.Role))
}

// Login verifies credentials and returns the person with their role.
func (s *Identity) Login(ctx context.Context, username, password string) (*model.Person, error) {
	p, err := store.GetPerson(ctx, s.db, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, model.ErrInvalidUsername
	}

	ok, err := auth.CheckPassword(password, p.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verifying password for %s: %w", p.Username, err)
	}
	if !ok {
		return nil, model.ErrInvalidPassword
	}
	return p, nil
}
