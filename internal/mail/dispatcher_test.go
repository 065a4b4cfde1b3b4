package mail

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu       sync.Mutex
	messages []*Message
	attempts atomic.Int32
	fail     map[string]error
	barrier  *sync.WaitGroup
}

func (f *fakeSender) Send(_ context.Context, msg *Message) error {
	f.attempts.Add(1)
	if f.barrier != nil {
		f.barrier.Done()
		f.barrier.Wait()
	}

	f.mu.Lock()
	f.messages = append(f.messages, msg)
	f.mu.Unlock()

	return f.fail[msg.To]
}

func (f *fakeSender) recipients() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.messages))
	for _, m := range f.messages {
		out = append(out, m.To)
	}
	return out
}

func testInvitation() Invitation {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return Invitation{
		Summary:  "Standup",
		Start:    start,
		End:      start.Add(time.Hour),
		MeetLink: "https://meet.google.com/abc",
	}
}

func TestDispatcher_Notify_AllSucceed(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(WithFrom("sender@example.com"))

	err := d.Notify(context.Background(), sender, testInvitation(), []string{"a@x.com", "b@x.com"})
	require.NoError(t, err)

	assert.Equal(t, int32(2), sender.attempts.Load())
	assert.ElementsMatch(t, []string{"a@x.com", "b@x.com"}, sender.recipients())
	for _, m := range sender.messages {
		assert.Equal(t, "sender@example.com", m.From)
		assert.Equal(t, "Invitation: Standup", m.Subject)
		assert.Contains(t, m.HTMLBody, "https://meet.google.com/abc")
	}
}

func TestDispatcher_Notify_OneFailureStillAttemptsAll(t *testing.T) {
	sendErr := errors.New("mailbox unavailable")
	sender := &fakeSender{fail: map[string]error{"b@x.com": sendErr}}
	d := NewDispatcher()

	attendees := []string{"a@x.com", "b@x.com", "c@x.com"}
	err := d.Notify(context.Background(), sender, testInvitation(), attendees)

	require.Error(t, err)
	assert.ErrorIs(t, err, sendErr)
	assert.Equal(t, int32(3), sender.attempts.Load())
	assert.ElementsMatch(t, attendees, sender.recipients())
}

func TestDispatcher_Notify_JoinsAllFailures(t *testing.T) {
	errA := errors.New("a failed")
	errC := errors.New("c failed")
	sender := &fakeSender{fail: map[string]error{"a@x.com": errA, "c@x.com": errC}}

	err := NewDispatcher().Notify(context.Background(), sender, testInvitation(), []string{"a@x.com", "b@x.com", "c@x.com"})

	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errC)
}

func TestDispatcher_Notify_DuplicatesSentTwice(t *testing.T) {
	sender := &fakeSender{}

	err := NewDispatcher().Notify(context.Background(), sender, testInvitation(), []string{"a@x.com", "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), sender.attempts.Load())
}

func TestDispatcher_Notify_NoAttendees(t *testing.T) {
	sender := &fakeSender{}

	err := NewDispatcher().Notify(context.Background(), sender, testInvitation(), nil)
	require.NoError(t, err)
	assert.Equal(t, int32(0), sender.attempts.Load())
}

func TestDispatcher_Notify_SendsConcurrently(t *testing.T) {
	attendees := []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com"}

	// Every send blocks until all of them have started.
	var barrier sync.WaitGroup
	barrier.Add(len(attendees))
	sender := &fakeSender{barrier: &barrier}

	done := make(chan error, 1)
	go func() {
		done <- NewDispatcher().Notify(context.Background(), sender, testInvitation(), attendees)
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("sends did not run concurrently")
	}
}

func TestDispatcher_Notify_ConcurrencyLimit(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	sender := senderFunc(func(context.Context, *Message) error {
		n := inFlight.Add(1)
		for {
			m := maxInFlight.Load()
			if n <= m || maxInFlight.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)
		return nil
	})

	d := NewDispatcher(WithConcurrencyLimit(2))
	err := d.Notify(context.Background(), sender, testInvitation(), []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com", "e@x.com"})
	require.NoError(t, err)
	assert.LessOrEqual(t, maxInFlight.Load(), int32(2))
}

type senderFunc func(context.Context, *Message) error

func (f senderFunc) Send(ctx context.Context, msg *Message) error { return f(ctx, msg) }

func TestStatic(t *testing.T) {
	sender := &fakeSender{}
	got, err := Static(sender)(context.Background(), nil)
	require.NoError(t, err)
	assert.Same(t, sender, got)
}
