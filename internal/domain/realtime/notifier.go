package realtime

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrWaiterRequired indicates a notifier cannot be constructed without a waiter.
var ErrWaiterRequired = errors.New("notifier waiter is required")

// Topic identifies a realtime event stream.
type Topic string

const (
	TopicComplaints Topic = "complaints"
	TopicAlerts     Topic = "alerts"
	TopicChat       Topic = "chat"
)

// Valid reports whether the topic is a known stream.
func (t Topic) Valid() bool {
	switch t {
	case TopicComplaints, TopicAlerts, TopicChat:
		return true
	default:
		return false
	}
}

// Waiter blocks until the next message arrives on a topic and returns its payload.
type Waiter interface {
	WaitForMessage(ctx context.Context, topic Topic) ([]byte, error)
}

// Notifier fans messages on a topic out to in-process subscribers.
type Notifier interface {
	Subscribe(topic Topic) (func(), <-chan []byte)
	StopAll()
}

// NotifierOptions configure the behaviour of the default notifier implementation.
type NotifierOptions struct {
	Waiter     Waiter
	WaitWindow time.Duration
	Backoff    time.Duration
}

// DefaultNotifier is the default implementation of Notifier. One listener
// goroutine per topic pulls from the waiter and broadcasts to subscribers;
// slow subscribers drop messages rather than block the loop.
type DefaultNotifier struct {
	waiter     Waiter
	waitWindow time.Duration
	backoff    time.Duration

	mu        sync.Mutex
	subs      map[Topic]map[chan []byte]struct{}
	listeners map[Topic]context.CancelFunc
}

// NewNotifier constructs the default notifier implementation.
func NewNotifier(opts NotifierOptions) (*DefaultNotifier, error) {
	if opts.Waiter == nil {
		return nil, ErrWaiterRequired
	}

	waitWindow := opts.WaitWindow
	if waitWindow <= 0 {
		waitWindow = time.Minute
	}

	backoff := opts.Backoff
	if backoff <= 0 {
		backoff = 250 * time.Millisecond
	}

	notifier := &DefaultNotifier{
		waiter:     opts.Waiter,
		waitWindow: waitWindow,
		backoff:    backoff,
		subs:       make(map[Topic]map[chan []byte]struct{}),
		listeners:  make(map[Topic]context.CancelFunc),
	}
	return notifier, nil
}

func (n *DefaultNotifier) Subscribe(topic Topic) (func(), <-chan []byte) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.listeners[topic]; !ok {
		ctx, cancel := context.WithCancel(context.Background())
		n.listeners[topic] = cancel
		go n.listenLoop(ctx, topic)
	}

	ch := make(chan []byte, 8)
	if n.subs[topic] == nil {
		n.subs[topic] = make(map[chan []byte]struct{})
	}
	n.subs[topic][ch] = struct{}{}

	unsub := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		subscribers := n.subs[topic]
		if subscribers == nil {
			return
		}

		if _, ok := subscribers[ch]; !ok {
			return
		}
		delete(subscribers, ch)
		drainAndClose(ch)
		if len(subscribers) == 0 {
			n.stopListener(topic)
			delete(n.subs, topic)
		}
	}

	return unsub, ch
}

func (n *DefaultNotifier) StopAll() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for topic, cancel := range n.listeners {
		cancel()
		delete(n.listeners, topic)
	}
	for topic, subscribers := range n.subs {
		for ch := range subscribers {
			drainAndClose(ch)
		}
		delete(n.subs, topic)
	}
}

func (n *DefaultNotifier) stopListener(topic Topic) {
	cancel, ok := n.listeners[topic]
	if !ok {
		return
	}
	cancel()
	delete(n.listeners, topic)
}

func (n *DefaultNotifier) listenLoop(ctx context.Context, topic Topic) {
	for ctx.Err() == nil {
		waitCtx, cancel := context.WithTimeout(ctx, n.waitWindow)
		payload, err := n.waiter.WaitForMessage(waitCtx, topic)
		cancel()

		if err == nil && len(payload) > 0 {
			n.broadcast(topic, payload)
		}

		if err != nil && ctx.Err() == nil {
			timer := time.NewTimer(n.backoff)
			select {
			case <-ctx.Done():
				if !timer.Stop() {
					<-timer.C
				}
				return
			case <-timer.C:
			}
		}
	}
}

func (n *DefaultNotifier) broadcast(topic Topic, payload []byte) {
	n.mu.Lock()
	defer n.mu.Unlock()

	subscribers := n.subs[topic]
	for ch := range subscribers {
		select {
		case ch <- payload:
		default:
		}
	}
}

// drainAndClose removes any buffered payloads before closing the channel so
// receivers observe a closed channel immediately.
func drainAndClose(ch chan []byte) {
	for {
		select {
		case <-ch:
		default:
			close(ch)
			return
		}
	}
}

var _ Notifier = (*DefaultNotifier)(nil)
