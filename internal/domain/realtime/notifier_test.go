package realtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWaiter struct {
	calls   chan Topic
	payload []byte
	err     error
	sleep   time.Duration
}

func (s *stubWaiter) WaitForMessage(ctx context.Context, topic Topic) ([]byte, error) {
	select {
	case s.calls <- topic:
	default:
	}

	if s.sleep > 0 {
		timer := time.NewTimer(s.sleep)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if s.err != nil {
		return nil, s.err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return s.payload, nil
}

func TestNewNotifierRequiresWaiter(t *testing.T) {
	notifier, err := NewNotifier(NotifierOptions{})
	require.ErrorIs(t, err, ErrWaiterRequired)
	assert.Nil(t, notifier)
}

func TestNotifier_SubscribeReceivesPayload(t *testing.T) {
	waiter := &stubWaiter{
		calls:   make(chan Topic, 4),
		payload: []byte(`{"kind":"alert_created"}`),
	}
	notifier, err := NewNotifier(NotifierOptions{Waiter: waiter})
	require.NoError(t, err)

	unsub, ch := notifier.Subscribe(TopicAlerts)
	defer unsub()

	select {
	case topic := <-waiter.calls:
		assert.Equal(t, TopicAlerts, topic)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected waiter to be invoked")
	}

	select {
	case payload := <-ch:
		assert.Equal(t, waiter.payload, payload)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected payload to be delivered")
	}
}

func TestNotifier_UnsubscribeClosesChannel(t *testing.T) {
	waiter := &stubWaiter{
		calls: make(chan Topic, 1),
		sleep: 50 * time.Millisecond,
	}
	notifier, err := NewNotifier(NotifierOptions{Waiter: waiter})
	require.NoError(t, err)

	unsub, ch := notifier.Subscribe(TopicChat)

	select {
	case <-waiter.calls:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected waiter to be invoked")
	}

	unsub()

	deadline := time.After(200 * time.Millisecond)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("expected channel to close after unsubscribe")
		}
	}
}

func TestNotifier_StopAllClosesChannels(t *testing.T) {
	waiter := &stubWaiter{
		calls: make(chan Topic, 2),
		err:   errors.New("boom"),
	}
	notifier, err := NewNotifier(NotifierOptions{Waiter: waiter})
	require.NoError(t, err)

	_, chComplaints := notifier.Subscribe(TopicComplaints)
	_, chAlerts := notifier.Subscribe(TopicAlerts)

	select {
	case <-waiter.calls:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected waiter to be invoked")
	}

	notifier.StopAll()

	for _, ch := range []<-chan []byte{chComplaints, chAlerts} {
		deadline := time.After(200 * time.Millisecond)
	drain:
		for {
			select {
			case _, ok := <-ch:
				if !ok {
					break drain
				}
			case <-deadline:
				t.Fatal("expected channel to close after StopAll")
			}
		}
	}
}

func TestTopic_Valid(t *testing.T) {
	assert.True(t, TopicComplaints.Valid())
	assert.True(t, TopicAlerts.Valid())
	assert.True(t, TopicChat.Valid())
	assert.False(t, Topic("jobs").Valid())
}
