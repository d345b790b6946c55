package db

import (
	"context"
	"fmt"

	"github.com/glum-catalog/backend/internal/model"
)

func (db *Postgres) EnsureUserSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL,
			phone_number TEXT NOT NULL DEFAULT '',
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'APP_USER',
			status SMALLINT NOT NULL DEFAULT 1,
			email_verified BOOLEAN NOT NULL DEFAULT FALSE,
			user_type SMALLINT NOT NULL DEFAULT 8,
			login_attempts SMALLINT NOT NULL DEFAULT 0,
			must_change_password BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS users_email_idx ON users(email)`,
		`CREATE INDEX IF NOT EXISTS users_phone_number_idx ON users(phone_number) WHERE phone_number != ''`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

const userColumns = `id, username, email, phone_number, first_name, last_name,
	password_hash, role, status, email_verified, user_type, login_attempts,
	must_change_password, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PhoneNumber,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.Role,
		&user.Status,
		&user.EmailVerified,
		&user.UserType,
		&user.LoginAttempts,
		&user.MustChangePassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO users (username, email, phone_number, first_name, last_name,
			password_hash, role, status, email_verified, user_type, login_attempts,
			must_change_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING %s
	`, userColumns)

	return scanUser(db.Pool.QueryRow(ctx, query,
		u.Username, u.Email, u.PhoneNumber, u.FirstName, u.LastName,
		u.PasswordHash, u.Role, u.Status, u.EmailVerified, u.UserType,
		u.LoginAttempts, u.MustChangePassword,
	))
}

func (db *Postgres) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1`, userColumns)
	return scanUser(db.Pool.QueryRow(ctx, query, username))
}

func (db *Postgres) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return scanUser(db.Pool.QueryRow(ctx, query, id))
}

func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return scanUser(db.Pool.QueryRow(ctx, query, email))
}

func (db *Postgres) GetUserByPhone(ctx context.Context, phone string) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE phone_number = $1`, userColumns)
	return scanUser(db.Pool.QueryRow(ctx, query, phone))
}

func (db *Postgres) ListUsers(ctx context.Context, offset, limit int) ([]model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY id OFFSET $1 LIMIT $2`, userColumns)

	rows, err := db.Pool.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (db *Postgres) UpdateUser(ctx context.Context, u *model.User) (*model.User, error) {
	query := fmt.Sprintf(`
		UPDATE users
		SET first_name = $2, last_name = $3, password_hash = $4, status = $5,
			email_verified = $6, login_attempts = $7, must_change_password = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, userColumns)

	return scanUser(db.Pool.QueryRow(ctx, query,
		u.ID, u.FirstName, u.LastName, u.PasswordHash, u.Status,
		u.EmailVerified, u.LoginAttempts, u.MustChangePassword,
	))
}

func (db *Postgres) RecordLoginFailure(ctx context.Context, userID int64) error {
	query := `
		UPDATE users
		SET login_attempts = login_attempts + 1, updated_at = NOW()
		WHERE id = $1
	`
	_, err := db.Pool.Exec(ctx, query, userID)
	return err
}

func (db *Postgres) ResetLoginFailures(ctx context.Context, userID int64) error {
	query := `
		UPDATE users
		SET login_attempts = 0, updated_at = NOW()
		WHERE id = $1
	`
	_, err := db.Pool.Exec(ctx, query, userID)
	return err
}

// MarkEmailVerified flips the verification flag for the account owning
// the address. Returns model.ErrNotFound when no account matches.
func (db *Postgres) MarkEmailVerified(ctx context.Context, email string) error {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE users
		SET email_verified = TRUE, updated_at = NOW()
		WHERE email = $1
	`, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
