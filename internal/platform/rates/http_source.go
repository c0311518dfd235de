// Package rates provides the live exchange-rate source consumed by the
// rate service. The fetched table is EUR-pivot: units of each currency
// per one EUR.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finledger/ledgerd/internal/core/domain"
	portssvc "github.com/finledger/ledgerd/internal/core/ports/services"
)

const defaultTimeout = 10 * time.Second

// HTTPSource fetches a rate table from a frankfurter-style endpoint:
// {"base":"EUR","date":"2026-08-31","rates":{"USD":1.0842,...}}.
type HTTPSource struct {
	client *http.Client
	url    string
}

// NewHTTPSource creates a source fetching from the given URL.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		client: &http.Client{Timeout: defaultTimeout},
		url:    url,
	}
}

var _ portssvc.RateSource = (*HTTPSource)(nil)

type ratesPayload struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// FetchLatest retrieves the current rate table.
func (s *HTTPSource) FetchLatest(ctx context.Context) (domain.RateTable, time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to build rates request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, time.Time{}, fmt.Errorf("rates endpoint returned status %d", resp.StatusCode)
	}

	var payload ratesPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode rates payload: %w", err)
	}
	if payload.Base != domain.PivotCurrency {
		return nil, time.Time{}, fmt.Errorf("rates endpoint base is %q, expected %q", payload.Base, domain.PivotCurrency)
	}

	table := make(domain.RateTable, len(payload.Rates)+1)
	for code, rate := range payload.Rates {
		table[code] = rate
	}
	// The pivot itself is usually omitted from the payload.
	table[domain.PivotCurrency] = decimal.NewFromInt(1)

	return table, time.Now().UTC(), nil
}
