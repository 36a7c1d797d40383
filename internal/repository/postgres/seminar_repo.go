package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"seminarbooking/internal/domain"
)

// Column list of the seminars table. The names object_type, topic,
// deadline_early_bird, attendees_max, and registration_queue are a contract
// with existing stored data and must not change.
const seminarColumns = `
	uid, object_type, topic, title, subtitle, description,
	additional_information, event_type, credit_points,
	begin_date, end_date, deadline_registration, deadline_early_bird,
	deadline_unregistration,
	attendees_min, attendees_max, offline_attendees, registration_queue,
	needs_registration, allows_multiple_registrations, skip_collision_check,
	cancelled, price_on_request,
	price_regular, price_regular_early, price_regular_board,
	price_special, price_special_early, price_special_board,
	payment_methods, categories, target_groups, checkboxes,
	organizers, lodgings, foods, uses_terms_2,
	created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository creates an EventRepository over the seminars table.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO seminars (
			object_type, topic, title, subtitle, description,
			additional_information, event_type, credit_points,
			begin_date, end_date, deadline_registration, deadline_early_bird,
			deadline_unregistration,
			attendees_min, attendees_max, offline_attendees, registration_queue,
			needs_registration, allows_multiple_registrations, skip_collision_check,
			cancelled, price_on_request,
			price_regular, price_regular_early, price_regular_board,
			price_special, price_special_early, price_special_board,
			payment_methods, categories, target_groups, checkboxes,
			organizers, lodgings, foods, uses_terms_2,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27,
			$28, $29, $30, $31, $32, $33, $34, $35, $36, $37, $38)
		RETURNING uid
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Kind, nullRef(e.TopicRef), e.Title, e.Subtitle, e.Description,
		e.AdditionalInformation, nullRef(e.EventTypeRef), e.CreditPoints,
		nullTime(e.Begin), nullTime(e.End), nullTime(e.RegistrationDeadline),
		nullTime(e.EarlyBirdDeadline), nullTime(e.UnregistrationDeadline),
		e.AttendeesMin, e.AttendeesMax, e.OfflineAttendees, e.QueueEnabled,
		e.NeedsRegistration, e.AllowsMultipleRegistrations, e.SkipCollisionCheck,
		e.Status, e.PriceOnRequest,
		e.PriceRegular, e.PriceRegularEarly, e.PriceRegularBoard,
		e.PriceSpecial, e.PriceSpecialEarly, e.PriceSpecialBoard,
		pq.Array(e.PaymentMethodRefs), pq.Array(e.CategoryRefs),
		pq.Array(e.TargetGroupRefs), pq.Array(e.CheckboxRefs),
		pq.Array(e.OrganizerRefs), pq.Array(e.LodgingRefs), pq.Array(e.FoodRefs),
		e.UsesTerms2,
		e.CreatedAt, e.UpdatedAt,
	).Scan(&e.UID)
}

func (r *eventRepository) GetByUID(ctx context.Context, uid int64) (*domain.Event, error) {
	query := `SELECT ` + seminarColumns + ` FROM seminars WHERE uid = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, uid))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListUpcoming(ctx context.Context, from time.Time, p domain.PaginationParams) ([]*domain.Event, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(*) FROM seminars
		WHERE object_type <> 1 AND begin_date >= $1
	`
	if err := r.DB.QueryRowContext(ctx, countQuery, from).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + seminarColumns + `
		FROM seminars
		WHERE object_type <> 1 AND begin_date >= $1
		ORDER BY begin_date ASC
		LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, from, p.Limit(), p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) ListTimeSlots(ctx context.Context, eventUID int64) ([]*domain.TimeSlot, error) {
	query := `
		SELECT uid, seminar, begin_date, end_date, room, created_at, updated_at
		FROM time_slots
		WHERE seminar = $1
		ORDER BY begin_date ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []*domain.TimeSlot
	for rows.Next() {
		s := &domain.TimeSlot{}
		var end sql.NullTime
		if err := rows.Scan(&s.UID, &s.EventRef, &s.Begin, &end, &s.Room, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if end.Valid {
			s.End = end.Time
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var topicRef, eventTypeRef sql.NullInt64
	var begin, end, deadlineReg, deadlineEarly, deadlineUnreg sql.NullTime
	var paymentMethods, categories, targetGroups, checkboxes, organizers, lodgings, foods pq.Int64Array

	err := row.Scan(
		&e.UID, &e.Kind, &topicRef, &e.Title, &e.Subtitle, &e.Description,
		&e.AdditionalInformation, &eventTypeRef, &e.CreditPoints,
		&begin, &end, &deadlineReg, &deadlineEarly, &deadlineUnreg,
		&e.AttendeesMin, &e.AttendeesMax, &e.OfflineAttendees, &e.QueueEnabled,
		&e.NeedsRegistration, &e.AllowsMultipleRegistrations, &e.SkipCollisionCheck,
		&e.Status, &e.PriceOnRequest,
		&e.PriceRegular, &e.PriceRegularEarly, &e.PriceRegularBoard,
		&e.PriceSpecial, &e.PriceSpecialEarly, &e.PriceSpecialBoard,
		&paymentMethods, &categories, &targetGroups, &checkboxes,
		&organizers, &lodgings, &foods, &e.UsesTerms2,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if topicRef.Valid {
		e.TopicRef = topicRef.Int64
	}
	if eventTypeRef.Valid {
		e.EventTypeRef = eventTypeRef.Int64
	}
	if begin.Valid {
		e.Begin = begin.Time
	}
	if end.Valid {
		e.End = end.Time
	}
	if deadlineReg.Valid {
		e.RegistrationDeadline = deadlineReg.Time
	}
	if deadlineEarly.Valid {
		e.EarlyBirdDeadline = deadlineEarly.Time
	}
	if deadlineUnreg.Valid {
		e.UnregistrationDeadline = deadlineUnreg.Time
	}
	e.PaymentMethodRefs = paymentMethods
	e.CategoryRefs = categories
	e.TargetGroupRefs = targetGroups
	e.CheckboxRefs = checkboxes
	e.OrganizerRefs = organizers
	e.LodgingRefs = lodgings
	e.FoodRefs = foods
	return e, nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func nullRef(uid int64) sql.NullInt64 {
	return sql.NullInt64{Int64: uid, Valid: uid != 0}
}
