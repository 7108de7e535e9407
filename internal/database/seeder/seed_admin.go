package seeder

import (
	"context"
	"errors"
	"strings"

	"jobboard/internal/database"
	"jobboard/internal/usecase/auth"
)

var ErrAdminPasswordTooShort = errors.New("admin password must be at least 8 characters")

// AdminSeeder creates the administrator account, or promotes an existing
// account with the same email. An existing password is left untouched.
type AdminSeeder struct {
	Email    string
	Password string
}

func (AdminSeeder) Name() string { return "admin" }

func (s AdminSeeder) Run(ctx context.Context, db database.DB) error {
	email := strings.ToLower(strings.TrimSpace(s.Email))
	if email == "" {
		return nil
	}
	if len(s.Password) < 8 {
		return ErrAdminPasswordTooShort
	}

	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "name", "password_hash", "is_admin", "is_employer"); err != nil {
		return err
	}

	hash, err := auth.HashPassword(s.Password)
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx,
		`INSERT INTO users (id, email, name, password_hash, is_admin, is_employer)
		 VALUES (gen_random_uuid(), $1, 'Administrator', $2, TRUE, FALSE)
		 ON CONFLICT (email) DO UPDATE SET is_admin = TRUE, updated_at = now()`,
		email, hash,
	)
	return err
}
