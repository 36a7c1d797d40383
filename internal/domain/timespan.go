package domain

import "time"

// Layouts used for human-readable event dates and times.
const (
	dateLayout = "02.01.2006"
	timeLayout = "15:04"
)

// openEndedWindow is the synthetic length of an event whose end is unknown.
// Open-ended events block the 24 hours following their begin.
const openEndedWindow = 24 * time.Hour

// TimeSpan is a begin/end instant pair. A zero time means the bound is not
// set: topic records carry no span at all, and date/single events may be
// open-ended with only a begin.
type TimeSpan struct {
	Begin time.Time `json:"begin"`
	End   time.Time `json:"end"`
}

// HasBegin reports whether the span has a begin instant.
func (s TimeSpan) HasBegin() bool { return !s.Begin.IsZero() }

// HasEnd reports whether the span has an end instant.
func (s TimeSpan) HasEnd() bool { return !s.End.IsZero() }

// OpenEnded reports whether the span has a begin but no end.
func (s TimeSpan) OpenEnded() bool { return s.HasBegin() && !s.HasEnd() }

// EffectiveEnd returns the end instant, substituting a synthetic 24-hour
// window after the begin for open-ended spans. Returns the zero time when
// there is no begin.
func (s TimeSpan) EffectiveEnd() time.Time {
	if !s.HasBegin() {
		return time.Time{}
	}
	if s.HasEnd() {
		return s.End
	}
	return s.Begin.Add(openEndedWindow)
}

// Overlaps reports whether two spans intersect. Spans are treated as
// half-open intervals [begin, end): back-to-back spans do not overlap, and a
// zero-length span only collides when its instant lies strictly inside the
// other span. Spans without a begin never overlap anything.
func (s TimeSpan) Overlaps(other TimeSpan) bool {
	if !s.HasBegin() || !other.HasBegin() {
		return false
	}
	return s.Begin.Before(other.EffectiveEnd()) && other.Begin.Before(s.EffectiveEnd())
}

// SameDay reports whether begin and end fall on the same calendar day.
func (s TimeSpan) SameDay() bool {
	if !s.HasBegin() || !s.HasEnd() {
		return true
	}
	by, bm, bd := s.Begin.Date()
	ey, em, ed := s.End.Date()
	return by == ey && bm == em && bd == ed
}

// DateRange renders the span's dates, e.g. "01.03.2026" for a one-day or
// open-ended event and "01.03.2026–03.03.2026" for a multi-day one.
// Returns "" when no begin is set.
func (s TimeSpan) DateRange() string {
	if !s.HasBegin() {
		return ""
	}
	if !s.HasEnd() || s.SameDay() {
		return s.Begin.Format(dateLayout)
	}
	return s.Begin.Format(dateLayout) + "–" + s.End.Format(dateLayout)
}

// TimeRange renders the span's times, e.g. "10:00–12:00", or just the
// begin time for open-ended spans. Returns "" when no begin is set.
func (s TimeSpan) TimeRange() string {
	if !s.HasBegin() {
		return ""
	}
	if !s.HasEnd() {
		return s.Begin.Format(timeLayout)
	}
	return s.Begin.Format(timeLayout) + "–" + s.End.Format(timeLayout)
}
