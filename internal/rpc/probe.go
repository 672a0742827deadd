package rpc

import (
	"context"
	"fmt"
	"time"

	"github.com/Mohsinsiddi/mintpad/internal/chain"
	"golang.org/x/sync/errgroup"
)

// probeTimeout bounds a single endpoint probe.
const probeTimeout = 5 * time.Second

// ErrWrongChain marks an endpoint serving a different chain than configured.
type ErrWrongChain struct {
	Want, Got int64
}

func (e *ErrWrongChain) Error() string {
	return fmt.Sprintf("endpoint serves chain %d, want %d", e.Got, e.Want)
}

// Probe pings every URL in parallel. Results keep the input order.
func Probe(ctx context.Context, urls []string, wantChainID int64) []Endpoint {
	results := make([]Endpoint, len(urls))
	g, gctx := errgroup.WithContext(ctx)

	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			results[i] = probeOne(gctx, url, wantChainID)
			return nil // failures are recorded per endpoint
		})
	}
	g.Wait() //nolint:errcheck

	return results
}

func probeOne(ctx context.Context, url string, wantChainID int64) Endpoint {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	c := chain.NewEVMClient(url)
	ep := Endpoint{URL: url}

	ep.Latency, ep.BlockNumber, ep.Err = c.Ping(ctx)
	if ep.Err != nil || wantChainID <= 0 {
		return ep
	}

	id, err := c.ChainID(ctx)
	if err != nil {
		ep.Err = err
		return ep
	}
	ep.ChainID = id
	if id != wantChainID {
		ep.Err = &ErrWrongChain{Want: wantChainID, Got: id}
	}
	return ep
}
