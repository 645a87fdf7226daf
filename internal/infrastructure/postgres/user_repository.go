package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jcastro/stockflow-api/internal/domain"
	"github.com/jcastro/stockflow-api/internal/domain/entity"
	"github.com/jcastro/stockflow-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, email, full_name, password_hash, email_verified,
	email_verification_token, email_verification_expires,
	password_reset_token, password_reset_expires, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.EmailVerified,
		&u.EmailVerificationToken, &u.EmailVerificationExpires,
		&u.PasswordResetToken, &u.PasswordResetExpires, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(u *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.Email, u.FullName, u.PasswordHash, u.EmailVerified,
		u.EmailVerificationToken, u.EmailVerificationExpires,
		u.PasswordResetToken, u.PasswordResetExpires, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	u, err := scanUser(r.q.QueryRow(context.Background(), query, email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepo) Update(u *entity.User) error {
	query := `
		UPDATE users
		SET email = $2, full_name = $3, password_hash = $4, email_verified = $5,
		    email_verification_token = $6, email_verification_expires = $7,
		    password_reset_token = $8, password_reset_expires = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		u.ID, u.Email, u.FullName, u.PasswordHash, u.EmailVerified,
		u.EmailVerificationToken, u.EmailVerificationExpires,
		u.PasswordResetToken, u.PasswordResetExpires, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", u.ID, domain.ErrUserNotFound)
	}
	return nil
}

// GetByPasswordResetToken busca por token hasheado, solo si aún no expiró.
func (r *UserRepo) GetByPasswordResetToken(hashedToken string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + ` FROM users
		WHERE password_reset_token = $1 AND password_reset_expires >= now()`
	u, err := scanUser(r.q.QueryRow(context.Background(), query, hashedToken))
	if err != nil {
		return nil, fmt.Errorf("get user by reset token: %w", err)
	}
	return u, nil
}

// GetByEmailVerificationToken busca por token hasheado, solo si aún no expiró.
func (r *UserRepo) GetByEmailVerificationToken(hashedToken string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + ` FROM users
		WHERE email_verification_token = $1 AND email_verification_expires >= now()`
	u, err := scanUser(r.q.QueryRow(context.Background(), query, hashedToken))
	if err != nil {
		return nil, fmt.Errorf("get user by verification token: %w", err)
	}
	return u, nil
}

func (r *UserRepo) ExistsFullName(fullName, excludeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE lower(full_name) = lower($1) AND id <> $2)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, fullName, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check full name: %w", err)
	}
	return exists, nil
}
