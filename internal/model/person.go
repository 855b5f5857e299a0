package model

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Person is a registered user of the system.
type Person struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
}

// Role is the single role a person acts in.
type Role string

// Roles.
const (
	RoleNone      Role = ""
	RoleStaff     Role = "staff"
	RoleVolunteer Role = "volunteer"
	RoleClient    Role = "client"
	RoleDonor     Role = "donor"
)

// Roles lists the assignable roles in display order.
var Roles = []Role{RoleStaff, RoleVolunteer, RoleClient, RoleDonor}

var lower = cases.Lower(language.Und)

// ParseRole normalizes a role ID or description. Unknown values map to RoleNone.
func ParseRole(s string) Role {
	switch r := Role(lower.String(strings.TrimSpace(s))); r {
	case RoleStaff, RoleVolunteer, RoleClient, RoleDonor:
		return r
	default:
		return RoleNone
	}
}

// Valid reports whether r is one of the assignable roles.
func (r Role) Valid() bool {
	return r != RoleNone && ParseRole(string(r)) == r
}

func (r Role) String() string {
	if r == RoleNone {
		return "no role"
	}
	return string(r)
}

// DisplayName returns the role title-cased for presentation.
func (r Role) DisplayName() string {
	if r == RoleNone {
		return "No role"
	}
	return cases.Title(language.English).String(string(r))
}

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// ValidatePassword checks the password policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}
	return nil
}
