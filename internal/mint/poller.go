package mint

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/Mohsinsiddi/mintpad/internal/config"
)

// DefaultFailureThreshold is how many consecutive failed ticks mark the
// displayed supply as stale.
const DefaultFailureThreshold = 3

// SupplyReader reads the collection's supply counters.
type SupplyReader interface {
	TotalSupply(ctx context.Context) (uint64, error)
	MaximumTokens(ctx context.Context) (uint64, error)
}

// SupplyUpdate is one poll result. Nil fields were not read successfully and
// must not overwrite what the screen already shows.
type SupplyUpdate struct {
	Total *uint64
	Max   *uint64
	Stale bool
}

// Poller re-reads totalSupply on a fixed interval for as long as its context
// lives. maximumTokens is read once on start and retried on later ticks only
// until it succeeds.
type Poller struct {
	Reader           SupplyReader
	Interval         time.Duration
	FailureThreshold int
}

// Run blocks until ctx is done, handing each result to sink. sink is called
// from Run's goroutine only.
func (p *Poller) Run(ctx context.Context, sink func(SupplyUpdate)) {
	interval := p.Interval
	if interval <= 0 {
		interval = config.DefaultPollInterval
	}
	threshold := p.FailureThreshold
	if threshold <= 0 {
		threshold = DefaultFailureThreshold
	}

	var (
		haveMax  bool
		failures int
		stale    bool
	)
	tick := func() {
		var u SupplyUpdate
		if !haveMax {
			if v, err := p.readMax(ctx); err == nil {
				u.Max = &v
				haveMax = true
			}
		}
		total, err := p.readTotal(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			failures++
			if failures >= threshold {
				stale = true
			}
		} else {
			u.Total = &total
			failures = 0
			stale = false
		}
		u.Stale = stale
		if u.Total == nil && u.Max == nil && !u.Stale {
			return
		}
		sink(u)
	}

	tick()
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			tick()
		}
	}
}

// Start runs the poller in its own goroutine. The returned stop func cancels
// it and waits for Run to return; calling it more than once is safe.
func (p *Poller) Start(ctx context.Context, sink func(SupplyUpdate)) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.Run(ctx, sink)
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			wg.Wait()
		})
	}
}

func (p *Poller) readTotal(ctx context.Context) (uint64, error) {
	rctx, cancel := context.WithTimeout(ctx, config.ReadTimeout)
	defer cancel()
	v, err := p.Reader.TotalSupply(rctx)
	if err != nil && ctx.Err() == nil {
		log.Warn("Supply read failed", "method", "totalSupply", "err", err)
	}
	return v, err
}

func (p *Poller) readMax(ctx context.Context) (uint64, error) {
	rctx, cancel := context.WithTimeout(ctx, config.ReadTimeout)
	defer cancel()
	v, err := p.Reader.MaximumTokens(rctx)
	if err != nil && ctx.Err() == nil {
		log.Warn("Supply read failed", "method", "maximumTokens", "err", err)
	}
	return v, err
}
