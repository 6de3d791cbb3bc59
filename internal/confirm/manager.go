package confirm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"

	"keyward/internal/deploy"
	"keyward/internal/domain"
	"keyward/internal/ledger"
)

// DefaultPollInterval is the fixed delay between confirmation polls.
const DefaultPollInterval = 2 * time.Second

var errStillPending = errors.New("not executed yet")

// Manager submits deploys and polls them to an outcome.
type Manager struct {
	client   ledger.Client
	interval time.Duration
	log      zerolog.Logger
}

// New returns a manager polling at the given interval; zero means
// DefaultPollInterval.
func New(client ledger.Client, interval time.Duration, log zerolog.Logger) *Manager {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Manager{client: client, interval: interval, log: log}
}

// Submit sends a signed deploy once. Rejection wraps ErrSubmissionFailure
// and is fatal to the operation; nothing is retried.
func (m *Manager) Submit(ctx context.Context, d *deploy.Deploy) (string, error) {
	txID, err := m.client.PutDeploy(ctx, d)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSubmissionFailure, err)
	}
	m.log.Debug().Str("tx", txID).Msg("deploy submitted")
	return txID, nil
}

// Status is the one-shot, non-blocking probe of a transaction's outcome.
func (m *Manager) Status(ctx context.Context, txID string) (domain.Outcome, error) {
	info, err := m.client.GetDeploy(ctx, txID)
	if err != nil {
		return domain.Outcome{}, err
	}
	switch {
	case !info.Executed:
		return domain.Outcome{Status: domain.StatusPending}, nil
	case info.Result.Success:
		return domain.Outcome{Status: domain.StatusSuccess}, nil
	default:
		return domain.Outcome{Status: domain.StatusFailure, Reason: info.Result.Reason}, nil
	}
}

// Await polls until the transaction executes or the timeout elapses.
// Transport errors and not-yet-indexed responses are swallowed and retried;
// only a found-and-failed execution yields StatusFailure. A run-out deadline
// yields a pending outcome carrying ErrTimeout's message. Cancelling ctx
// stops the watch only; it cannot retract a submitted transaction.
func (m *Manager) Await(ctx context.Context, txID string, timeout time.Duration) domain.Outcome {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	poll := func() (domain.Outcome, error) {
		out, err := m.Status(ctx, txID)
		if err != nil {
			m.log.Debug().Str("tx", txID).Err(err).Msg("confirmation poll")
			return domain.Outcome{}, err
		}
		if out.Status == domain.StatusPending {
			return domain.Outcome{}, errStillPending
		}
		return out, nil
	}

	out, err := backoff.Retry(ctx, poll,
		backoff.WithBackOff(backoff.NewConstantBackOff(m.interval)))
	if err != nil {
		m.log.Debug().Str("tx", txID).Dur("timeout", timeout).Msg("confirmation timed out")
		return domain.Outcome{Status: domain.StatusPending, Reason: domain.ErrTimeout.Error()}
	}
	return out
}
