package approval

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcompany-dev/consult-booking-bot/internal/domain"
	bookingRepo "github.com/mcompany-dev/consult-booking-bot/internal/infra/storage/booking"
	"github.com/mcompany-dev/consult-booking-bot/internal/service/notify"
	"github.com/mcompany-dev/consult-booking-bot/internal/service/slots"
)

type fakeSender struct {
	mu          sync.Mutex
	toRequester map[int64][]notify.Message
	toOperator  []notify.Message
	operatorErr error
}

func newFakeSender() *fakeSender {
	return &fakeSender{toRequester: make(map[int64][]notify.Message)}
}

func (f *fakeSender) ToRequester(requesterID int64, m notify.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toRequester[requesterID] = append(f.toRequester[requesterID], m)
}

func (f *fakeSender) ToOperator(m notify.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.operatorErr != nil {
		return f.operatorErr
	}
	f.toOperator = append(f.toOperator, m)
	return nil
}

func (f *fakeSender) lastTo(t *testing.T, requesterID int64) notify.Message {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	msgs := f.toRequester[requesterID]
	require.NotEmpty(t, msgs)
	return msgs[len(msgs)-1]
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newBooking(ledger *bookingRepo.Repository, requesterID int64, day int, hhmm string) *domain.Booking {
	b := &domain.Booking{
		ID:          ledger.NextID(),
		RequesterID: requesterID,
		BizName:     "Acme Tools",
		BizDesc:     "hardware retail",
		Revenue:     domain.RevenueMid,
		Year:        2025,
		Month:       7,
		Day:         day,
		Time:        hhmm,
		Lang:        "en",
		Status:      domain.StatusPending,
	}
	if err := ledger.Insert(b); err != nil {
		panic(err)
	}
	return b
}

func newService(sender *fakeSender) (*Service, *bookingRepo.Repository) {
	ledger := bookingRepo.NewRepository()
	svc := NewService(ledger, slots.NewIndex(ledger), sender, nil, nopLogger{})
	return svc, ledger
}

func TestSubmit_DeliversOperatorCard(t *testing.T) {
	sender := newFakeSender()
	svc, ledger := newService(sender)

	b := newBooking(ledger, 42, 15, "14:00")
	b.Profile = domain.RequesterProfile{Name: "John Doe", Username: "jdoe", Phone: "+998901234567"}

	svc.Submit(context.Background(), b)

	require.Len(t, sender.toOperator, 1)
	card := sender.toOperator[0]
	assert.Contains(t, card.Text, fmt.Sprintf("#%d", b.ID))
	assert.Contains(t, card.Text, "Acme Tools")
	assert.Contains(t, card.Text, "2025-07-15 14:00")
	assert.Contains(t, card.Text, "@jdoe")
	assert.Contains(t, card.Text, "+998901234567")

	var actions []string
	for _, row := range card.Keyboard {
		for _, btn := range row {
			actions = append(actions, btn.Data)
		}
	}
	assert.Contains(t, actions, fmt.Sprintf("audadmin:ok:%d", b.ID))
	assert.Contains(t, actions, fmt.Sprintf("audadmin:re:%d", b.ID))
	assert.Contains(t, actions, fmt.Sprintf("audadmin:no:%d", b.ID))
}

func TestSubmit_MissingProfileRendersPlaceholders(t *testing.T) {
	sender := newFakeSender()
	svc, ledger := newService(sender)

	b := newBooking(ledger, 42, 15, "14:00")
	svc.Submit(context.Background(), b)

	require.Len(t, sender.toOperator, 1)
	assert.Contains(t, sender.toOperator[0].Text, "👤 -")
	assert.Contains(t, sender.toOperator[0].Text, "🔗 -")
	assert.Contains(t, sender.toOperator[0].Text, "📞 -")
}

func TestSubmit_OperatorChannelUnset(t *testing.T) {
	sender := newFakeSender()
	sender.operatorErr = notify.ErrOperatorChannelUnset
	svc, ledger := newService(sender)

	b := newBooking(ledger, 42, 15, "14:00")
	svc.Submit(context.Background(), b)

	// The record stays pending and the requester gets a soft warning.
	stored, err := ledger.GetByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Contains(t, sender.lastTo(t, 42).Text, "saved but couldn't be routed")
}

func TestApprove_HappyPath(t *testing.T) {
	sender := newFakeSender()
	svc, ledger := newService(sender)
	b := newBooking(ledger, 42, 15, "14:00")

	res, consumed := svc.OnOperatorAction(context.Background(), fmt.Sprintf("audadmin:ok:%d", b.ID))
	require.True(t, consumed)
	assert.Equal(t, ResultOK, res)

	stored, err := ledger.GetByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, stored.Status)
	assert.Contains(t, sender.lastTo(t, 42).Text, "approved")
}

func TestApprove_SlotConflictKeepsPending(t *testing.T) {
	sender := newFakeSender()
	svc, ledger := newService(sender)

	first := newBooking(ledger, 42, 15, "14:00")
	second := newBooking(ledger, 77, 15, "14:00")

	res, consumed := svc.OnOperatorAction(context.Background(), fmt.Sprintf("audadmin:ok:%d", first.ID))
	require.True(t, consumed)
	require.Equal(t, ResultOK, res)

	res, consumed = svc.OnOperatorAction(context.Background(), fmt.Sprintf("audadmin:ok:%d", second.ID))
	require.True(t, consumed)
	assert.Equal(t, ResultSlotTaken, res)

	stored, err := ledger.GetByID(second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status, "losing booking must stay pending")
	assert.Empty(t, sender.toRequester[77], "loser is not notified until the operator decides")
}

func TestApprove_UnknownBooking(t *testing.T) {
	sender := newFakeSender()
	svc, _ := newService(sender)

	res, consumed := svc.OnOperatorAction(context.Background(), "audadmin:ok:9999")
	require.True(t, consumed)
	assert.Equal(t, ResultNotFound, res)
}

func TestOnOperatorAction_ForeignCallbackNotConsumed(t *testing.T) {
	sender := newFakeSender()
	svc, _ := newService(sender)

	_, consumed := svc.OnOperatorAction(context.Background(), "aud:confirm")
	assert.False(t, consumed)

	_, consumed = svc.OnOperatorAction(context.Background(), "audadmin:ok:abc")
	assert.False(t, consumed)
}

func TestCancel_NotifiesRequester(t *testing.T) {
	sender := newFakeSender()
	svc, ledger := newService(sender)
	b := newBooking(ledger, 42, 15, "14:00")

	res, consumed := svc.OnOperatorAction(context.Background(), fmt.Sprintf("audadmin:no:%d", b.ID))
	require.True(t, consumed)
	assert.Equal(t, ResultOK, res)

	stored, err := ledger.GetByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCanceled, stored.Status)
	assert.Contains(t, sender.lastTo(t, 42).Text, "canceled")
}

func TestRetime_FullCycle(t *testing.T) {
	sender := newFakeSender()
	svc, ledger := newService(sender)
	b := newBooking(ledger, 42, 15, "14:00")
	ctx := context.Background()

	res, consumed := svc.OnOperatorAction(ctx, fmt.Sprintf("audadmin:re:%d", b.ID))
	require.True(t, consumed)
	require.Equal(t, ResultOK, res)
	assert.True(t, svc.AwaitingRetime(42))

	stored, _ := ledger.GetByID(b.ID)
	assert.Equal(t, domain.StatusRetimeRequested, stored.Status)

	require.True(t, svc.HandleRetimeReply(ctx, 42, "16:00"))
	assert.False(t, svc.AwaitingRetime(42))

	stored, _ = ledger.GetByID(b.ID)
	assert.Equal(t, domain.StatusPending, stored.Status, "retimed booking goes back to pending")
	assert.Equal(t, "16:00", stored.Time)
	assert.Contains(t, sender.lastTo(t, 42).Text, "New time accepted")

	// A fresh card with controls goes back to the operator.
	require.Len(t, sender.toOperator, 1)
	assert.Contains(t, sender.toOperator[0].Text, "16:00")
}

func TestRetime_InvalidRepliesKeepWaiting(t *testing.T) {
	sender := newFakeSender()
	svc, ledger := newService(sender)
	b := newBooking(ledger, 42, 15, "14:00")
	ctx := context.Background()

	_, _ = svc.OnOperatorAction(ctx, fmt.Sprintf("audadmin:re:%d", b.ID))

	require.True(t, svc.HandleRetimeReply(ctx, 42, "25:00"))
	assert.True(t, svc.AwaitingRetime(42), "format error keeps the wait")

	require.True(t, svc.HandleRetimeReply(ctx, 42, "20:00"))
	assert.True(t, svc.AwaitingRetime(42), "out-of-hours keeps the wait")

	stored, _ := ledger.GetByID(b.ID)
	assert.Equal(t, "14:00", stored.Time)
	assert.Equal(t, domain.StatusRetimeRequested, stored.Status)
}

func TestRetime_TakenSlotKeepsWaiting(t *testing.T) {
	sender := newFakeSender()
	svc, ledger := newService(sender)
	ctx := context.Background()

	blocker := newBooking(ledger, 7, 15, "16:00")
	require.NoError(t, ledger.Approve(blocker.ID))

	b := newBooking(ledger, 42, 15, "14:00")
	_, _ = svc.OnOperatorAction(ctx, fmt.Sprintf("audadmin:re:%d", b.ID))

	require.True(t, svc.HandleRetimeReply(ctx, 42, "16:00"))
	assert.True(t, svc.AwaitingRetime(42))
	assert.Contains(t, sender.lastTo(t, 42).Text, "already taken")
}

func TestRetime_SecondRequestOverwritesFirst(t *testing.T) {
	sender := newFakeSender()
	svc, ledger := newService(sender)
	ctx := context.Background()

	first := newBooking(ledger, 42, 15, "14:00")
	second := newBooking(ledger, 42, 16, "10:00")

	_, _ = svc.OnOperatorAction(ctx, fmt.Sprintf("audadmin:re:%d", first.ID))
	_, _ = svc.OnOperatorAction(ctx, fmt.Sprintf("audadmin:re:%d", second.ID))

	require.True(t, svc.HandleRetimeReply(ctx, 42, "11:00"))

	stored, _ := ledger.GetByID(second.ID)
	assert.Equal(t, "11:00", stored.Time, "reply targets the latest retime request")

	stored, _ = ledger.GetByID(first.ID)
	assert.Equal(t, "14:00", stored.Time)
	assert.Equal(t, domain.StatusRetimeRequested, stored.Status)
}

func TestHandleRetimeReply_NotWaiting(t *testing.T) {
	sender := newFakeSender()
	svc, _ := newService(sender)
	assert.False(t, svc.HandleRetimeReply(context.Background(), 42, "16:00"))
}
