package domain

import "time"

// TimeSlot is one scheduled block of a multi-slot event, owning its own
// begin/end pair and room. Slots always belong to the date or single record,
// never to a topic.
type TimeSlot struct {
	UID      int64     `json:"uid"`
	EventRef int64     `json:"seminar"`
	Begin    time.Time `json:"begin"`
	End      time.Time `json:"end"`
	Room     string    `json:"room,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Span returns the slot's begin/end pair.
func (t *TimeSlot) Span() TimeSpan { return TimeSpan{Begin: t.Begin, End: t.End} }
