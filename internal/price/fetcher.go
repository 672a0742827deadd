// Package price converts mint costs to a fiat estimate using CoinGecko.
package price

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"
)

// ErrNoPrice is returned for chains whose native coin has no market price
// (testnets, local nodes).
var ErrNoPrice = errors.New("no market price for chain")

const defaultBaseURL = "https://api.coingecko.com/api/v3"

// coinIDs maps mainnet chain ids to CoinGecko coin ids.
var coinIDs = map[int64]string{
	1:    "ethereum",
	8453: "ethereum",
	137:  "matic-network",
}

// Fetcher retrieves native coin prices.
type Fetcher struct {
	client   *http.Client
	baseURL  string
	currency string
}

// NewFetcher returns a fetcher quoting in currency (default "usd").
func NewFetcher(currency string) *Fetcher {
	if currency == "" {
		currency = "usd"
	}
	return &Fetcher{
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  defaultBaseURL,
		currency: strings.ToLower(currency),
	}
}

// Currency is the quote currency code.
func (f *Fetcher) Currency() string { return f.currency }

// NativePrice returns the price of one native coin on chainID.
func (f *Fetcher) NativePrice(ctx context.Context, chainID int64) (float64, error) {
	id, ok := coinIDs[chainID]
	if !ok {
		return 0, fmt.Errorf("%w %d", ErrNoPrice, chainID)
	}

	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=%s", f.baseURL, id, f.currency)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetching price: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetching price: HTTP %d", resp.StatusCode)
	}

	// {"ethereum":{"usd":1234.56}}
	var raw map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return 0, fmt.Errorf("parsing price response: %w", err)
	}
	p, ok := raw[id][f.currency]
	if !ok {
		return 0, fmt.Errorf("%w: %s missing from response", ErrNoPrice, id)
	}
	return p, nil
}

var weiPerCoin = new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

// Convert values wei at rate per coin.
func Convert(wei *big.Int, rate float64) float64 {
	if wei == nil {
		return 0
	}
	coins := new(big.Float).Quo(new(big.Float).SetInt(wei), weiPerCoin)
	v, _ := coins.Mul(coins, big.NewFloat(rate)).Float64()
	return v
}

// Format renders an estimate like "~$12.34" (or "~12.34 EUR" for other
// currencies).
func Format(amount float64, currency string) string {
	if strings.EqualFold(currency, "usd") {
		return fmt.Sprintf("~$%.2f", amount)
	}
	return fmt.Sprintf("~%.2f %s", amount, strings.ToUpper(currency))
}
