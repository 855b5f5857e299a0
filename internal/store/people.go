package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/erazemk/welcomehome/internal/db"
	"github.com/erazemk/welcomehome/internal/model"
)

// CreatePerson inserts a person and binds them to role in one transaction.
// A taken username yields model.ErrDuplicateUsername.
func CreatePerson(ctx context.Context, conn *db.DB, p model.Person, role model.Role) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO person (username, password_hash, first_name, last_name, email)
		 VALUES (?, ?, ?, ?, ?)`,
		p.Username, p.PasswordHash, p.FirstName, p.LastName, p.Email,
	)
	if db.IsUniqueViolation(err) {
		return model.ErrDuplicateUsername
	}
	if err != nil {
		return fmt.Errorf("creating person: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO act (username, role_id) VALUES (?, ?)`,
		p.Username, string(role),
	)
	if db.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: unknown role %q", model.ErrInvalidInput, role)
	}
	if err != nil {
		return fmt.Errorf("assigning role: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing person: %w", err)
	}
	return nil
}

// GetPerson returns a person with the role read from its description.
func GetPerson(ctx context.Context, q db.Querier, username string) (*model.Person, error) {
	p := &model.Person{}
	var description sql.NullString
	err := q.QueryRowContext(ctx,
		`SELECT p.username, p.password_hash, p.first_name, p.last_name, p.email, r.description
		 FROM person p
		 LEFT JOIN act a ON a.username = p.username
		 LEFT JOIN role r ON r.role_id = a.role_id
		 WHERE p.username = ?
		 ORDER BY a.role_id
		 LIMIT 1`, username,
	).Scan(&p.Username, &p.PasswordHash, &p.FirstName, &p.LastName, &p.Email, &description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting person: %w", err)
	}
	p.Role = model.ParseRole(description.String)
	return p, nil
}

// HasRole reports whether username acts in role.
func HasRole(ctx context.Context, q db.Querier, username string, role model.Role) (bool, error) {
	var count int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM act WHERE username = ? AND role_id = ?`,
		username, string(role),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking role: %w", err)
	}
	return count > 0, nil
}

// ListRoles returns the role reference table.
func ListRoles(ctx context.Context, q db.Querier) ([]model.Role, error) {
	rows, err := q.QueryContext(ctx, `SELECT role_id FROM role ORDER BY role_id`)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}
	defer rows.Close()

	var roles []model.Role
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning role: %w", err)
		}
		if r := model.ParseRole(id); r != model.RoleNone {
			roles = append(roles, r)
		}
	}
	return roles, rows.Err()
}
