package services

import (
	"context"
	"sync"
	"time"

	"seminarbooking/internal/domain"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byUID   map[int64]*domain.Event
	slots   map[int64][]*domain.TimeSlot
	nextUID int64
	err     error // if set, every call returns this error

	mu    sync.Mutex
	loads int // number of GetByUID calls, for cache assertions
}

func newFakeEventRepo(events ...*domain.Event) *fakeEventRepo {
	f := &fakeEventRepo{
		byUID:   make(map[int64]*domain.Event),
		slots:   make(map[int64][]*domain.TimeSlot),
		nextUID: 1,
	}
	for _, e := range events {
		f.byUID[e.UID] = e
		if e.UID >= f.nextUID {
			f.nextUID = e.UID + 1
		}
	}
	return f
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.UID = f.nextUID
	f.nextUID++
	f.byUID[e.UID] = e
	return nil
}

func (f *fakeEventRepo) GetByUID(ctx context.Context, uid int64) (*domain.Event, error) {
	f.mu.Lock()
	f.loads++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byUID[uid]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListUpcoming(ctx context.Context, from time.Time, p domain.PaginationParams) ([]*domain.Event, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	var out []*domain.Event
	for _, e := range f.byUID {
		if e.Kind != domain.RecordTypeTopic && !e.Begin.Before(from) {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func (f *fakeEventRepo) ListTimeSlots(ctx context.Context, eventUID int64) ([]*domain.TimeSlot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slots[eventUID], nil
}

// fakeRegistrationRepo is an in-memory RegistrationRepository for tests.
type fakeRegistrationRepo struct {
	byUID   map[int64]*domain.Registration
	nextUID int64
	err     error
}

func newFakeRegistrationRepo(regs ...*domain.Registration) *fakeRegistrationRepo {
	f := &fakeRegistrationRepo{
		byUID:   make(map[int64]*domain.Registration),
		nextUID: 1,
	}
	for _, r := range regs {
		f.byUID[r.UID] = r
		if r.UID >= f.nextUID {
			f.nextUID = r.UID + 1
		}
	}
	return f
}

func (f *fakeRegistrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	if f.err != nil {
		return f.err
	}
	reg.UID = f.nextUID
	f.nextUID++
	f.byUID[reg.UID] = reg
	return nil
}

func (f *fakeRegistrationRepo) GetByUID(ctx context.Context, uid int64) (*domain.Registration, error) {
	if r, ok := f.byUID[uid]; ok {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRegistrationRepo) ListByEvent(ctx context.Context, eventUID int64) ([]*domain.Registration, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Registration
	for _, r := range f.byUID {
		if r.EventRef == eventUID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRegistrationRepo) ListByUser(ctx context.Context, userUID int64) ([]*domain.Registration, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Registration
	for _, r := range f.byUID {
		if r.UserRef == userUID {
			out = append(out, r)
		}
	}
	return out, nil
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byUID   map[int64]*domain.FrontEndUser
	nextUID int64
}

func newFakeUserRepo(users ...*domain.FrontEndUser) *fakeUserRepo {
	f := &fakeUserRepo{byUID: make(map[int64]*domain.FrontEndUser), nextUID: 1}
	for _, u := range users {
		f.byUID[u.UID] = u
		if u.UID >= f.nextUID {
			f.nextUID = u.UID + 1
		}
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.FrontEndUser) error {
	for _, u := range f.byUID {
		if u.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	user.UID = f.nextUID
	f.nextUID++
	f.byUID[user.UID] = user
	return nil
}

func (f *fakeUserRepo) GetByUID(ctx context.Context, uid int64) (*domain.FrontEndUser, error) {
	if u, ok := f.byUID[uid]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.FrontEndUser, error) {
	for _, u := range f.byUID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeOrganizerRepo is an in-memory OrganizerRepository for tests.
type fakeOrganizerRepo struct {
	byUID map[int64]*domain.Organizer
}

func newFakeOrganizerRepo(orgs ...*domain.Organizer) *fakeOrganizerRepo {
	f := &fakeOrganizerRepo{byUID: make(map[int64]*domain.Organizer)}
	for _, o := range orgs {
		f.byUID[o.UID] = o
	}
	return f
}

func (f *fakeOrganizerRepo) GetByUID(ctx context.Context, uid int64) (*domain.Organizer, error) {
	if o, ok := f.byUID[uid]; ok {
		return o, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeOrganizerRepo) ListByUIDs(ctx context.Context, uids []int64) ([]*domain.Organizer, error) {
	var out []*domain.Organizer
	for _, uid := range uids {
		if o, ok := f.byUID[uid]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

// fixedClock returns a constant time.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// keyTranslator returns the key itself, so tests assert on keys.
type keyTranslator struct{}

func (keyTranslator) Translate(key string) string { return key }

// plainFormatter formats amounts as "<amount> <code>".
type plainFormatter struct{}

func (plainFormatter) Format(a domain.Amount, code string) string {
	return a.String() + " " + code
}

// recordingEmailService captures sent mails instead of sending them.
type recordingEmailService struct {
	confirmations []*domain.RegistrationEmailData
	waitlist      []*domain.RegistrationEmailData
	err           error
}

func (m *recordingEmailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.confirmations = append(m.confirmations, data)
	return nil
}

func (m *recordingEmailService) SendWaitlistNotification(ctx context.Context, data *domain.RegistrationEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.waitlist = append(m.waitlist, data)
	return nil
}
