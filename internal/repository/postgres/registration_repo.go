package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"seminarbooking/internal/domain"
)

// Column list of the registrations table. The registration_queue name is
// part of the stored data contract. "user" needs quoting, it is a reserved
// word in postgres.
const registrationColumns = `
	uid, seminar, "user", title, seats, registration_queue,
	price, total_price, method_of_payment,
	registered_themselves, attendees_names, interests, expectations, notes,
	lodgings, foods, checkboxes,
	created_at, updated_at`

type registrationRepository struct {
	DB *sql.DB
}

// NewRegistrationRepository creates a RegistrationRepository over the
// registrations table.
func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (
			seminar, "user", title, seats, registration_queue,
			price, total_price, method_of_payment,
			registered_themselves, attendees_names, interests, expectations,
			notes, lodgings, foods, checkboxes,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18)
		RETURNING uid
	`
	return r.DB.QueryRowContext(ctx, query,
		reg.EventRef, nullRef(reg.UserRef), reg.Title, reg.Seats, reg.Queue,
		reg.PriceLabel, reg.TotalPrice, nullRef(reg.PaymentMethodRef),
		reg.RegisteredThemselves, reg.AttendeesNames, reg.Interests,
		reg.Expectations, reg.Notes,
		pq.Array(reg.LodgingRefs), pq.Array(reg.FoodRefs), pq.Array(reg.CheckboxRefs),
		reg.CreatedAt, reg.UpdatedAt,
	).Scan(&reg.UID)
}

func (r *registrationRepository) GetByUID(ctx context.Context, uid int64) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE uid = $1`
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query, uid))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) ListByEvent(ctx context.Context, eventUID int64) ([]*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + `
		FROM registrations
		WHERE seminar = $1
		ORDER BY uid ASC`
	return r.list(ctx, query, eventUID)
}

func (r *registrationRepository) ListByUser(ctx context.Context, userUID int64) ([]*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + `
		FROM registrations
		WHERE "user" = $1
		ORDER BY uid ASC`
	return r.list(ctx, query, userUID)
}

func (r *registrationRepository) list(ctx context.Context, query string, arg any) ([]*domain.Registration, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []*domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return regs, nil
}

func scanRegistration(row rowScanner) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var userRef, paymentRef sql.NullInt64
	var lodgings, foods, checkboxes pq.Int64Array

	err := row.Scan(
		&reg.UID, &reg.EventRef, &userRef, &reg.Title, &reg.Seats, &reg.Queue,
		&reg.PriceLabel, &reg.TotalPrice, &paymentRef,
		&reg.RegisteredThemselves, &reg.AttendeesNames, &reg.Interests,
		&reg.Expectations, &reg.Notes,
		&lodgings, &foods, &checkboxes,
		&reg.CreatedAt, &reg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if userRef.Valid {
		reg.UserRef = userRef.Int64
	}
	if paymentRef.Valid {
		reg.PaymentMethodRef = paymentRef.Int64
	}
	reg.LodgingRefs = lodgings
	reg.FoodRefs = foods
	reg.CheckboxRefs = checkboxes
	return reg, nil
}
