package domain

import (
	"context"
	"time"
)

// RecordType distinguishes self-contained events, topic templates, and
// scheduled dates. The numeric values are stored in the object_type column
// and must stay 0/1/2.
type RecordType int16

const (
	RecordTypeSingle RecordType = 0
	RecordTypeTopic  RecordType = 1
	RecordTypeDate   RecordType = 2
)

// EventStatus is the confirmation state of an event. The numeric values are
// stored in the cancelled column.
type EventStatus int16

const (
	StatusPlanned   EventStatus = 0
	StatusCanceled  EventStatus = 1
	StatusConfirmed EventStatus = 2
)

// Event represents one row of the seminars table: a single event, a topic
// template, or a scheduled date of a topic.
//
// For date records the descriptive, pricing, and relational attributes
// (title, description, prices, payment methods, categories, target groups)
// are read through the resolved topic; scheduling, capacity, organizers,
// and attachments always belong to the date record itself.
type Event struct {
	UID      int64      `json:"uid"`
	Kind     RecordType `json:"object_type"`
	TopicRef int64      `json:"topic,omitempty"`

	Title                 string `json:"title"`
	Subtitle              string `json:"subtitle,omitempty"`
	Description           string `json:"description,omitempty"`
	AdditionalInformation string `json:"additional_information,omitempty"`
	EventTypeRef          int64  `json:"event_type,omitempty"`
	CreditPoints          int    `json:"credit_points,omitempty"`

	// Scheduling. Zero time means not set; topic records never carry these.
	Begin                  time.Time `json:"-"`
	End                    time.Time `json:"-"`
	RegistrationDeadline   time.Time `json:"-"`
	EarlyBirdDeadline      time.Time `json:"-"`
	UnregistrationDeadline time.Time `json:"-"`

	// Capacity. AttendeesMax == 0 with NeedsRegistration means unlimited.
	AttendeesMin     int  `json:"attendees_min"`
	AttendeesMax     int  `json:"attendees_max"`
	OfflineAttendees int  `json:"offline_attendees"`
	QueueEnabled     bool `json:"registration_queue"`

	NeedsRegistration           bool        `json:"needs_registration"`
	AllowsMultipleRegistrations bool        `json:"allows_multiple_registrations"`
	SkipCollisionCheck          bool        `json:"skip_collision_check"`
	Status                      EventStatus `json:"status"`

	PriceOnRequest    bool   `json:"price_on_request"`
	PriceRegular      Amount `json:"price_regular,omitempty"`
	PriceRegularEarly Amount `json:"price_regular_early,omitempty"`
	PriceRegularBoard Amount `json:"price_regular_board,omitempty"`
	PriceSpecial      Amount `json:"price_special,omitempty"`
	PriceSpecialEarly Amount `json:"price_special_early,omitempty"`
	PriceSpecialBoard Amount `json:"price_special_board,omitempty"`

	// Reference lists to related records. Payment methods, categories,
	// target groups, and checkboxes are topic-delegated; organizers and the
	// lodging/food options belong to the date record.
	PaymentMethodRefs []int64 `json:"payment_methods,omitempty"`
	CategoryRefs      []int64 `json:"categories,omitempty"`
	TargetGroupRefs   []int64 `json:"target_groups,omitempty"`
	CheckboxRefs      []int64 `json:"checkboxes,omitempty"`
	OrganizerRefs     []int64 `json:"organizers,omitempty"`
	LodgingRefs       []int64 `json:"lodgings,omitempty"`
	FoodRefs          []int64 `json:"foods,omitempty"`

	UsesTerms2 bool `json:"uses_terms_2"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasDate reports whether the event has a schedule at all.
func (e *Event) HasDate() bool { return !e.Begin.IsZero() }

// Span returns the event's own begin/end pair. Never topic-delegated.
func (e *Event) Span() TimeSpan { return TimeSpan{Begin: e.Begin, End: e.End} }

// IsTopicRecord reports whether the event is a topic template, which is
// never directly bookable.
func (e *Event) IsTopicRecord() bool { return e.Kind == RecordTypeTopic }

// WithTopicAttributes returns a copy of the event whose descriptive,
// pricing, and relational attributes come from the given topic record.
// Scheduling, capacity, deadlines, organizers, and the lodging/food options
// keep the event's own values. A nil topic returns the event unchanged.
func (e *Event) WithTopicAttributes(topic *Event) *Event {
	if topic == nil {
		return e
	}
	merged := *e
	merged.Title = topic.Title
	merged.Subtitle = topic.Subtitle
	merged.Description = topic.Description
	merged.AdditionalInformation = topic.AdditionalInformation
	merged.EventTypeRef = topic.EventTypeRef
	merged.CreditPoints = topic.CreditPoints
	merged.AllowsMultipleRegistrations = topic.AllowsMultipleRegistrations
	merged.PriceOnRequest = topic.PriceOnRequest
	merged.PriceRegular = topic.PriceRegular
	merged.PriceRegularEarly = topic.PriceRegularEarly
	merged.PriceRegularBoard = topic.PriceRegularBoard
	merged.PriceSpecial = topic.PriceSpecial
	merged.PriceSpecialEarly = topic.PriceSpecialEarly
	merged.PriceSpecialBoard = topic.PriceSpecialBoard
	merged.PaymentMethodRefs = topic.PaymentMethodRefs
	merged.CategoryRefs = topic.CategoryRefs
	merged.TargetGroupRefs = topic.TargetGroupRefs
	merged.CheckboxRefs = topic.CheckboxRefs
	merged.UsesTerms2 = topic.UsesTerms2
	return &merged
}

// UnlimitedVacancies reports whether the event takes registrations without
// a seat limit.
func (e *Event) UnlimitedVacancies() bool {
	return e.NeedsRegistration && e.AttendeesMax == 0
}

// CapacityStats are the derived attendance numbers of one event. Vacancies
// is 0 for unlimited events; check Unlimited instead of relying on a large
// number.
// swagger:model CapacityStats
type CapacityStats struct {
	Attendees       int  `json:"attendees"`
	Waiting         int  `json:"waiting"`
	Vacancies       int  `json:"vacancies"`
	Unlimited       bool `json:"unlimited"`
	Full            bool `json:"full"`
	EnoughAttendees bool `json:"enough_attendees"`
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByUID(ctx context.Context, uid int64) (*Event, error)
	// ListUpcoming returns non-topic events beginning at or after from,
	// ordered by begin date, plus the total count for pagination.
	ListUpcoming(ctx context.Context, from time.Time, p PaginationParams) ([]*Event, int, error)
	ListTimeSlots(ctx context.Context, eventUID int64) ([]*TimeSlot, error)
}

// EventDetails bundles an event with its derived pricing and capacity data
// for display.
type EventDetails struct {
	Event    *Event         `json:"event"`
	Prices   []Price        `json:"prices"`
	Capacity *CapacityStats `json:"capacity"`
	Slots    []*TimeSlot    `json:"slots,omitempty"`
}

// DisplaySpan returns the span shown for the event: its own begin/end when
// a begin is set, otherwise the envelope of its time slots.
func (d *EventDetails) DisplaySpan() TimeSpan {
	span := d.Event.Span()
	if span.HasBegin() || len(d.Slots) == 0 {
		return span
	}
	span = d.Slots[0].Span()
	for _, slot := range d.Slots[1:] {
		if slot.Begin.Before(span.Begin) {
			span.Begin = slot.Begin
		}
		if slot.End.After(span.End) {
			span.End = slot.End
		}
	}
	return span
}

// EventService defines read operations over events for the delivery layer.
type EventService interface {
	GetEventDetails(ctx context.Context, uid int64) (*EventDetails, error)
	ListUpcoming(ctx context.Context, p PaginationParams) ([]*Event, int, error)
}
