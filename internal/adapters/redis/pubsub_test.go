package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janasethu/civic-api/internal/domain/realtime"
	"github.com/janasethu/civic-api/internal/testutil"
)

func TestPubSub_PublishAndWait(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	ps := NewPubSub(client)
	defer ps.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Prime the subscription before publishing.
	received := make(chan []byte, 1)
	errCh := make(chan error, 1)
	go func() {
		payload, err := ps.WaitForMessage(ctx, realtime.TopicAlerts)
		if err != nil {
			errCh <- err
			return
		}
		received <- payload
	}()

	// Give the subscriber a moment to register.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, ps.Publish(ctx, string(realtime.TopicAlerts), []byte(`{"kind":"alert_created"}`)))

	select {
	case payload := <-received:
		assert.JSONEq(t, `{"kind":"alert_created"}`, string(payload))
	case err := <-errCh:
		t.Fatalf("wait failed: %v", err)
	case <-ctx.Done():
		t.Fatal("timed out waiting for message")
	}
}

func TestPubSub_WaitTimesOutWithoutMessage(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	ps := NewPubSub(client)
	defer ps.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := ps.WaitForMessage(ctx, realtime.TopicChat)
	assert.Error(t, err)
}
