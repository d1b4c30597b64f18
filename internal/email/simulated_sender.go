package email

import (
	"context"
	"math/rand"
	"time"

	"floodguard_backend/internal/logger"

	"github.com/jonboulle/clockwork"
)

// SimulatedSender stands in for a real transactional-email provider:
// it logs the outgoing message, waits a configurable delay to model
// network latency, and succeeds with a fixed probability.
type SimulatedSender struct {
	successRate float64
	delay       time.Duration
	rand        *rand.Rand
	clock       clockwork.Clock
}

type SimulatedOption func(*SimulatedSender)

// WithSimulatedRand injects a deterministic random source (tests).
func WithSimulatedRand(r *rand.Rand) SimulatedOption {
	return func(s *SimulatedSender) { s.rand = r }
}

// WithSimulatedClock injects a fake clock (tests).
func WithSimulatedClock(c clockwork.Clock) SimulatedOption {
	return func(s *SimulatedSender) { s.clock = c }
}

func NewSimulatedSender(successRate float64, delay time.Duration, opts ...SimulatedOption) *SimulatedSender {
	s := &SimulatedSender{
		successRate: successRate,
		delay:       delay,
		rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
		clock:       clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send logs and simulates delivery. An expected delivery failure is
// returned as ErrDeliveryFailed; the only other error source is context
// cancellation during the simulated latency.
func (s *SimulatedSender) Send(ctx context.Context, msg *Message) error {
	logger.Info("sending email",
		"to", msg.To,
		"subject", msg.Subject,
		"body_preview", truncate(msg.HTML, 100),
	)

	if s.delay > 0 {
		timer := s.clock.After(s.delay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer:
		}
	}

	if s.rand.Float64() >= s.successRate {
		logger.Warn("email delivery failed", "to", msg.To, "subject", msg.Subject)
		return ErrDeliveryFailed
	}

	logger.Info("email delivered", "to", msg.To)
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
