package wizard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcompany-dev/consult-booking-bot/internal/domain"
	bookingRepo "github.com/mcompany-dev/consult-booking-bot/internal/infra/storage/booking"
	"github.com/mcompany-dev/consult-booking-bot/internal/infra/storage/users"
	"github.com/mcompany-dev/consult-booking-bot/internal/service/notify"
	"github.com/mcompany-dev/consult-booking-bot/internal/service/slots"
)

type fakeSender struct {
	mu       sync.Mutex
	messages []notify.Message
}

func (f *fakeSender) ToRequester(_ int64, m notify.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, m)
}

func (f *fakeSender) ToOperator(m notify.Message) error {
	return nil
}

func (f *fakeSender) last(t *testing.T) notify.Message {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.messages)
	return f.messages[len(f.messages)-1]
}

type fakeApprovals struct {
	submitted []*domain.Booking
}

func (f *fakeApprovals) Submit(_ context.Context, b *domain.Booking) {
	f.submitted = append(f.submitted, b)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	svc       *Service
	ledger    *bookingRepo.Repository
	sender    *fakeSender
	approvals *fakeApprovals
	profiles  *users.Memory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ledger := bookingRepo.NewRepository()
	sender := &fakeSender{}
	approvals := &fakeApprovals{}
	profiles := users.NewMemory()

	err := profiles.Upsert(context.Background(), &users.User{
		UserID:   42,
		Username: "jdoe",
		Name:     "John Doe",
		Phone:    "+998901234567",
	})
	require.NoError(t, err)

	svc := NewService(
		ledger,
		slots.NewIndex(ledger),
		profiles,
		approvals,
		sender,
		nil,
		nopLogger{},
	).WithClock(fixedClock{t: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)})

	return &fixture{svc: svc, ledger: ledger, sender: sender, approvals: approvals, profiles: profiles}
}

// runToReview drives a fresh draft through the happy path up to review
func (f *fixture) runToReview(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	f.svc.Start(ctx, 42, "en")
	require.True(t, f.svc.HandleText(ctx, 42, "Acme Tools"))
	require.True(t, f.svc.HandleText(ctx, 42, "hardware retail"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:rev:mid"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:mo:7"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:day:15"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:time:14:00"))

	d, ok := f.svc.Draft(42)
	require.True(t, ok)
	require.Equal(t, domain.StateReview, d.State)
}

func TestFullFlow_CommitsPendingBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.runToReview(t)

	review := f.sender.last(t)
	assert.Contains(t, review.Text, "Acme Tools")
	assert.Contains(t, review.Text, "hardware retail")
	assert.Contains(t, review.Text, "$5k – $20k")
	assert.Contains(t, review.Text, "2025-07-15 14:00")

	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:confirm"))

	require.Len(t, f.approvals.submitted, 1)
	b := f.approvals.submitted[0]
	assert.Equal(t, int64(domain.BookingSeqStart), b.ID)
	assert.Equal(t, int64(42), b.RequesterID)
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, 2025, b.Year)
	assert.Equal(t, 7, b.Month)
	assert.Equal(t, 15, b.Day)
	assert.Equal(t, "14:00", b.Time)
	assert.Equal(t, "John Doe", b.Profile.Name)
	assert.Equal(t, "jdoe", b.Profile.Username)
	assert.Equal(t, "+998901234567", b.Profile.Phone)

	stored, err := f.ledger.GetByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)

	assert.False(t, f.svc.Active(42), "draft should be discarded after commit")
}

func TestRestart_DiscardsPreviousDraft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.svc.Start(ctx, 42, "en")
	require.True(t, f.svc.HandleText(ctx, 42, "Old Name"))

	f.svc.Start(ctx, 42, "en")
	d, ok := f.svc.Draft(42)
	require.True(t, ok)
	assert.Equal(t, domain.StateBizName, d.State)
	assert.Empty(t, d.BizName)
}

func TestEdit_SingleFieldReturnsToReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.runToReview(t)

	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:edit"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:edit:desc"))

	d, _ := f.svc.Draft(42)
	assert.Equal(t, domain.StateBizDesc, d.State)
	assert.True(t, d.Editing)

	require.True(t, f.svc.HandleText(ctx, 42, "wholesale distribution"))

	d, _ = f.svc.Draft(42)
	assert.Equal(t, domain.StateReview, d.State)
	assert.Equal(t, "wholesale distribution", d.BizDesc)
	assert.Equal(t, "Acme Tools", d.BizName)
	assert.Equal(t, domain.RevenueMid, d.Revenue)
	assert.Equal(t, "14:00", d.Time)
}

func TestEdit_DateTimeReplaysTail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.runToReview(t)

	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:edit"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:edit:dt"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:mo:8"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:day:3"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:time:09:00"))

	d, _ := f.svc.Draft(42)
	assert.Equal(t, domain.StateReview, d.State)
	assert.Equal(t, 8, d.Month)
	assert.Equal(t, 3, d.Day)
	assert.Equal(t, "09:00", d.Time)
	assert.Equal(t, "Acme Tools", d.BizName, "edit must not touch other fields")
}

func TestCancel_DiscardsDraft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.runToReview(t)
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:cancel"))

	assert.False(t, f.svc.Active(42))
	assert.Empty(t, f.approvals.submitted)
}

func TestManualTime_RejectsBadFormatAndStaysOnStep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.svc.Start(ctx, 42, "en")
	require.True(t, f.svc.HandleText(ctx, 42, "Acme"))
	require.True(t, f.svc.HandleText(ctx, 42, "retail"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:rev:low"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:mo:7"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:day:10"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:time:manual"))

	require.True(t, f.svc.HandleText(ctx, 42, "25:00"))
	assert.Contains(t, f.sender.last(t).Text, "doesn't look like a time")

	d, _ := f.svc.Draft(42)
	assert.Equal(t, domain.StateTimeManual, d.State)

	require.True(t, f.svc.HandleText(ctx, 42, "14:00"))
	d, _ = f.svc.Draft(42)
	assert.Equal(t, domain.StateReview, d.State)
	assert.Equal(t, "14:00", d.Time)
}

func TestManualTime_RejectsOutOfHours(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.svc.Start(ctx, 42, "en")
	require.True(t, f.svc.HandleText(ctx, 42, "Acme"))
	require.True(t, f.svc.HandleText(ctx, 42, "retail"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:rev:low"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:mo:7"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:day:10"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:time:manual"))

	require.True(t, f.svc.HandleText(ctx, 42, "20:00"))
	assert.Contains(t, f.sender.last(t).Text, "08:00 – 19:00")

	d, _ := f.svc.Draft(42)
	assert.Equal(t, domain.StateTimeManual, d.State, "out-of-hours keeps the manual step")
}

func TestManualTime_AcceptsHalfHourWithinWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.svc.Start(ctx, 42, "en")
	require.True(t, f.svc.HandleText(ctx, 42, "Acme"))
	require.True(t, f.svc.HandleText(ctx, 42, "retail"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:rev:low"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:mo:7"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:day:10"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:time:manual"))

	require.True(t, f.svc.HandleText(ctx, 42, "9 30"))

	d, _ := f.svc.Draft(42)
	assert.Equal(t, domain.StateReview, d.State)
	assert.Equal(t, "09:30", d.Time)
}

func TestTimeGrid_MarksApprovedSlotsBusy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	approved := &domain.Booking{
		ID: f.ledger.NextID(), RequesterID: 7,
		Year: 2025, Month: 7, Day: 10, Time: "10:00",
		Status: domain.StatusApproved,
	}
	require.NoError(t, f.ledger.Insert(approved))

	f.svc.Start(ctx, 42, "en")
	require.True(t, f.svc.HandleText(ctx, 42, "Acme"))
	require.True(t, f.svc.HandleText(ctx, 42, "retail"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:rev:low"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:mo:7"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:day:10"))

	grid := f.sender.last(t)
	var busy, free bool
	for _, row := range grid.Keyboard {
		for _, b := range row {
			if b.Label == "🔒 10:00" && b.Data == "aud:noop" {
				busy = true
			}
			if b.Label == "11:00" && b.Data == "aud:time:11:00" {
				free = true
			}
		}
	}
	assert.True(t, busy, "approved slot should be marked busy")
	assert.True(t, free, "free slots stay selectable")
}

func TestTimeSelection_RevalidatesStaleKeyboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.svc.Start(ctx, 42, "en")
	require.True(t, f.svc.HandleText(ctx, 42, "Acme"))
	require.True(t, f.svc.HandleText(ctx, 42, "retail"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:rev:low"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:mo:7"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:day:10"))

	// Slot becomes approved after the keyboard was rendered.
	taken := &domain.Booking{
		ID: f.ledger.NextID(), RequesterID: 7,
		Year: 2025, Month: 7, Day: 10, Time: "10:00",
		Status: domain.StatusApproved,
	}
	require.NoError(t, f.ledger.Insert(taken))

	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:time:10:00"))

	d, _ := f.svc.Draft(42)
	assert.Equal(t, domain.StateTime, d.State, "stale pick re-offers the grid")
	assert.Empty(t, d.Time)
}

func TestCallbacks_IgnoredOutOfStep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.svc.Start(ctx, 42, "en")

	// Still collecting the business name: stale buttons are consumed silently.
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:confirm"))
	require.True(t, f.svc.HandleCallback(ctx, 42, "aud:time:14:00"))

	d, _ := f.svc.Draft(42)
	assert.Equal(t, domain.StateBizName, d.State)
	assert.Empty(t, f.approvals.submitted)
}

func TestHandleText_NoDraftNotConsumed(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.svc.HandleText(context.Background(), 99, "hello"))
	assert.False(t, f.svc.HandleCallback(context.Background(), 99, "aud:confirm"))
}

func TestCommit_MissingProfileDegrades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.svc.Start(ctx, 77, "en")
	require.True(t, f.svc.HandleText(ctx, 77, "NoProfile LLC"))
	require.True(t, f.svc.HandleText(ctx, 77, "stealth"))
	require.True(t, f.svc.HandleCallback(ctx, 77, "aud:rev:high"))
	require.True(t, f.svc.HandleCallback(ctx, 77, "aud:mo:7"))
	require.True(t, f.svc.HandleCallback(ctx, 77, "aud:day:10"))
	require.True(t, f.svc.HandleCallback(ctx, 77, "aud:time:12:00"))
	require.True(t, f.svc.HandleCallback(ctx, 77, "aud:confirm"))

	require.Len(t, f.approvals.submitted, 1)
	assert.Equal(t, domain.RequesterProfile{}, f.approvals.submitted[0].Profile)
}
