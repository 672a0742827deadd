package rpc

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNoHealthyRPC is returned when no healthy RPC endpoint is available.
var ErrNoHealthyRPC = errors.New("no healthy RPC endpoint available")

// Algorithm defines how an RPC endpoint is selected.
type Algorithm string

const (
	AlgorithmFastest  Algorithm = "fastest"
	AlgorithmFailover Algorithm = "failover"

	// Discard nodes more than this many blocks behind the best.
	staleBlockThreshold = 3
)

// ParseAlgorithm maps a config string to an Algorithm. Empty means fastest.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case "", AlgorithmFastest:
		return AlgorithmFastest, nil
	case AlgorithmFailover:
		return AlgorithmFailover, nil
	}
	return "", fmt.Errorf("unknown rpc algorithm %q (want fastest or failover)", s)
}

// Endpoint is one probed RPC URL.
type Endpoint struct {
	URL         string
	Latency     time.Duration
	BlockNumber uint64
	ChainID     int64
	Err         error
}

// Healthy reports whether the probe succeeded.
func (e Endpoint) Healthy() bool { return e.Err == nil }

// Pick chooses an endpoint from probe results.
//
// fastest: lowest latency among healthy nodes within staleBlockThreshold of
// the best block. failover: first healthy node in configured order.
func Pick(endpoints []Endpoint, algo Algorithm) (Endpoint, error) {
	if algo == AlgorithmFailover {
		for _, e := range endpoints {
			if e.Healthy() {
				return e, nil
			}
		}
		return Endpoint{}, ErrNoHealthyRPC
	}

	var best uint64
	for _, e := range endpoints {
		if e.Healthy() && e.BlockNumber > best {
			best = e.BlockNumber
		}
	}

	var winner *Endpoint
	for i := range endpoints {
		e := &endpoints[i]
		if !e.Healthy() || best-e.BlockNumber > staleBlockThreshold {
			continue
		}
		if winner == nil || e.Latency < winner.Latency {
			winner = e
		}
	}
	if winner == nil {
		return Endpoint{}, ErrNoHealthyRPC
	}
	return *winner, nil
}

// SelectBest probes urls and returns the one to use. A single URL is returned
// without probing. wantChainID > 0 marks endpoints on another chain unhealthy.
func SelectBest(ctx context.Context, urls []string, algo Algorithm, wantChainID int64) (string, error) {
	switch len(urls) {
	case 0:
		return "", ErrNoHealthyRPC
	case 1:
		return urls[0], nil
	}

	winner, err := Pick(Probe(ctx, urls, wantChainID), algo)
	if err != nil {
		return "", err
	}
	return winner.URL, nil
}
