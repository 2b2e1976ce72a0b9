package pat

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"rfpcred/internal/pkg/metrics"
)

const touchTimeout = 5 * time.Second

type usage struct {
	tokenID string
	at      time.Time
}

// usageRecorder applies last_used_at updates off the request path. Sends
// never block: when the queue is full the update is dropped.
type usageRecorder struct {
	tokens  TokenRepository
	log     zerolog.Logger
	metrics *metrics.Metrics

	queue     chan usage
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func newUsageRecorder(tokens TokenRepository, log zerolog.Logger, m *metrics.Metrics, buffer int) *usageRecorder {
	if buffer <= 0 {
		buffer = 1
	}
	r := &usageRecorder{
		tokens:  tokens,
		log:     log,
		metrics: m,
		queue:   make(chan usage, buffer),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *usageRecorder) record(tokenID string, at time.Time) {
	select {
	case <-r.stop:
		return
	default:
	}

	select {
	case r.queue <- usage{tokenID: tokenID, at: at}:
	default:
		r.metrics.UsageDropped()
		r.log.Warn().Str("token_id", tokenID).Msg("last_used_at update dropped, recorder queue full")
	}
}

func (r *usageRecorder) run() {
	defer close(r.done)
	for {
		select {
		case u := <-r.queue:
			r.apply(u)
		case <-r.stop:
			for {
				select {
				case u := <-r.queue:
					r.apply(u)
				default:
					return
				}
			}
		}
	}
}

func (r *usageRecorder) apply(u usage) {
	ctx, cancel := context.WithTimeout(context.Background(), touchTimeout)
	defer cancel()

	if err := r.tokens.TouchLastUsed(ctx, u.tokenID, u.at); err != nil {
		r.log.Warn().Err(err).Str("token_id", u.tokenID).Msg("last_used_at update failed")
	}
}

// close drains queued updates and stops the worker.
func (r *usageRecorder) close() {
	r.closeOnce.Do(func() { close(r.stop) })
	<-r.done
}
