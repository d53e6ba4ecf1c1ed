// Package hint is the boundary to the advice service that explains a pending card.
package hint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/moneyadventure/adventure-server-go/internal/game/tables"
)

// Fallback is shown whenever the provider cannot answer.
const Fallback = "Think about whether this choice grows your passive income."

// ErrNoHint is returned by providers that have nothing to say.
var ErrNoHint = errors.New("no hint available")

// Request describes the decision a hint is asked for.
type Request struct {
	PlayerName      string
	Cash            int
	Salary          int
	PassiveIncome   int
	MonthlyExpenses int
	HasEscaped      bool
	Card            tables.Card
}

// Provider produces advice for a pending card.
type Provider interface {
	Hint(ctx context.Context, req Request) (string, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, req Request) (string, error)

// Hint implements Provider.
func (f ProviderFunc) Hint(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Safe wraps a Provider so that errors, panics, empty answers and timeouts
// all turn into the fallback text.
type Safe struct {
	provider Provider
	timeout  time.Duration
	fallback string
	logger   *zap.Logger
}

// NewSafe wraps provider. A non-positive timeout disables the deadline.
func NewSafe(provider Provider, timeout time.Duration, logger *zap.Logger) *Safe {
	return &Safe{
		provider: provider,
		timeout:  timeout,
		fallback: Fallback,
		logger:   logger,
	}
}

type result struct {
	text string
	err  error
}

// Hint returns the provider's answer or the fallback. It never blocks past the timeout.
func (s *Safe) Hint(ctx context.Context, req Request) string {
	if s == nil || s.provider == nil {
		return Fallback
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("hint provider panicked: %v", r)}
			}
		}()
		text, err := s.provider.Hint(ctx, req)
		done <- result{text: text, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil || res.text == "" {
			if s.logger != nil {
				s.logger.Warn("hint provider failed", zap.String("card_id", req.Card.ID), zap.Error(res.err))
			}
			return s.fallback
		}
		return res.text
	case <-ctx.Done():
		if s.logger != nil {
			s.logger.Warn("hint provider timed out", zap.String("card_id", req.Card.ID), zap.Error(ctx.Err()))
		}
		return s.fallback
	}
}
