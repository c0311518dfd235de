package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/finledger/ledgerd/internal/core/domain"
	"github.com/finledger/ledgerd/internal/models"
)

// ToModelRateSnapshot converts a domain RateSnapshot to its storage form,
// serializing the rate table to JSON.
func ToModelRateSnapshot(d domain.RateSnapshot) (models.RateSnapshot, error) {
	raw, err := json.Marshal(d.Rates)
	if err != nil {
		return models.RateSnapshot{}, fmt.Errorf("failed to marshal rate table: %w", err)
	}
	return models.RateSnapshot{
		SnapshotID: d.SnapshotID,
		Rates:      raw,
		FetchedAt:  d.FetchedAt,
	}, nil
}

// ToDomainRateSnapshot converts a stored RateSnapshot back to its domain form.
func ToDomainRateSnapshot(m models.RateSnapshot) (domain.RateSnapshot, error) {
	var rates domain.RateTable
	if err := json.Unmarshal(m.Rates, &rates); err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("failed to unmarshal rate table: %w", err)
	}
	return domain.RateSnapshot{
		SnapshotID: m.SnapshotID,
		Rates:      rates,
		FetchedAt:  m.FetchedAt,
	}, nil
}
