package email

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedSenderDelivers(t *testing.T) {
	// successRate 1.0 always delivers regardless of the random draw.
	sender := NewSimulatedSender(1.0, 0,
		WithSimulatedRand(rand.New(rand.NewSource(1))),
	)

	err := sender.Send(context.Background(), &Message{
		To:      "maria@example.com",
		Subject: "test",
		HTML:    "<p>hi</p>",
	})
	assert.NoError(t, err)
}

func TestSimulatedSenderFails(t *testing.T) {
	// successRate 0 always fails: every draw is >= 0.
	sender := NewSimulatedSender(0, 0,
		WithSimulatedRand(rand.New(rand.NewSource(1))),
	)

	err := sender.Send(context.Background(), &Message{To: "maria@example.com"})
	assert.ErrorIs(t, err, ErrDeliveryFailed)
}

func TestSimulatedSenderHonorsContextDuringDelay(t *testing.T) {
	clock := clockwork.NewFakeClock()
	sender := NewSimulatedSender(1.0, time.Second,
		WithSimulatedClock(clock),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- sender.Send(ctx, &Message{To: "maria@example.com"})
	}()

	// Cancel while the sender is parked on the simulated latency.
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Send did not return after cancellation")
	}
}

func TestSimulatedSenderWaitsConfiguredDelay(t *testing.T) {
	clock := clockwork.NewFakeClock()
	sender := NewSimulatedSender(1.0, 2*time.Second,
		WithSimulatedClock(clock),
	)

	ctx := context.Background()
	done := make(chan error, 1)
	go func() {
		done <- sender.Send(ctx, &Message{To: "maria@example.com"})
	}()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	select {
	case <-done:
		t.Fatal("Send returned before the delay elapsed")
	case <-time.After(50 * time.Millisecond):
	}

	clock.Advance(2 * time.Second)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Send did not return after the delay elapsed")
	}
}
