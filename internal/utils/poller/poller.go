package poller

import (
	"context"
	"time"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/observability/tracing"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

type Poller struct {
	name       string
	interval   time.Duration
	clock      clockwork.Clock
	quit       chan struct{}
	pollMethod func(ctx context.Context) error
}

func NewPoller(name string, interval time.Duration, pollMethod func(ctx context.Context) error) *Poller {
	return NewPollerWithClock(name, interval, clockwork.NewRealClock(), pollMethod)
}

func NewPollerWithClock(
	name string, interval time.Duration, clock clockwork.Clock, pollMethod func(ctx context.Context) error,
) *Poller {
	return &Poller{
		name:       name,
		interval:   interval,
		clock:      clock,
		quit:       make(chan struct{}),
		pollMethod: pollMethod,
	}
}

// Start blocks until ctx is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	log.Info().Str("poller", p.name).Msgf("Starting poller with interval %s", p.interval)

	for {
		select {
		case <-ticker.Chan():
			pollCtx := tracing.InjectTraceID(ctx)
			log.Ctx(pollCtx).Debug().Str("poller", p.name).Msg("Executing poll method")
			if err := p.pollMethod(pollCtx); err != nil {
				log.Ctx(pollCtx).Error().Str("poller", p.name).Err(err).Msg("Error polling")
			} else {
				log.Ctx(pollCtx).Debug().Str("poller", p.name).Msg("Poll method executed successfully")
			}
		case <-ctx.Done():
			log.Info().Str("poller", p.name).Msg("Poller stopped due to context cancellation")
			return
		case <-p.quit:
			log.Info().Str("poller", p.name).Msg("Poller stopped")
			return
		}
	}
}

func (p *Poller) Stop() {
	close(p.quit)
}
