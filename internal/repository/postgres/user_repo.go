package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"seminarbooking/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

// NewUserRepository creates a UserRepository over the front_end_users table.
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{
		DB: db,
	}
}

func (r *userRepository) Create(ctx context.Context, u *domain.FrontEndUser) error {
	query := `
		INSERT INTO front_end_users (username, name, email, password, salt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING uid
	`
	err := r.DB.QueryRowContext(ctx, query,
		u.Username, u.Name, strings.ToLower(u.Email), u.Password, u.Salt,
		u.CreatedAt, u.UpdatedAt,
	).Scan(&u.UID)
	if err != nil {
		var pqErr *pq.Error
		// 23505 is unique_violation.
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByUID(ctx context.Context, uid int64) (*domain.FrontEndUser, error) {
	query := `
		SELECT uid, username, name, email, password, salt, created_at, updated_at
		FROM front_end_users
		WHERE uid = $1
	`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, uid))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.FrontEndUser, error) {
	query := `
		SELECT uid, username, name, email, password, salt, created_at, updated_at
		FROM front_end_users
		WHERE email = $1
	`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email))))
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.FrontEndUser, error) {
	u := &domain.FrontEndUser{}
	err := row.Scan(&u.UID, &u.Username, &u.Name, &u.Email, &u.Password, &u.Salt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}
