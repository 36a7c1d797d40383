package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"seminarbooking/internal/domain"
)

type organizerRepository struct {
	DB *sql.DB
}

// NewOrganizerRepository creates an OrganizerRepository over the organizers
// table.
func NewOrganizerRepository(db *sql.DB) domain.OrganizerRepository {
	return &organizerRepository{
		DB: db,
	}
}

func (r *organizerRepository) GetByUID(ctx context.Context, uid int64) (*domain.Organizer, error) {
	query := `
		SELECT uid, name, email, homepage, created_at, updated_at
		FROM organizers
		WHERE uid = $1
	`
	o := &domain.Organizer{}
	err := r.DB.QueryRowContext(ctx, query, uid).Scan(
		&o.UID, &o.Name, &o.Email, &o.Homepage, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *organizerRepository) ListByUIDs(ctx context.Context, uids []int64) ([]*domain.Organizer, error) {
	if len(uids) == 0 {
		return []*domain.Organizer{}, nil
	}
	query := `
		SELECT uid, name, email, homepage, created_at, updated_at
		FROM organizers
		WHERE uid = ANY($1)
		ORDER BY uid ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(uids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var organizers []*domain.Organizer
	for rows.Next() {
		o := &domain.Organizer{}
		if err := rows.Scan(&o.UID, &o.Name, &o.Email, &o.Homepage, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		organizers = append(organizers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return organizers, nil
}
