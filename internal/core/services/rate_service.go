package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finledger/ledgerd/internal/core/domain"
	portsrepo "github.com/finledger/ledgerd/internal/core/ports/repositories"
	portssvc "github.com/finledger/ledgerd/internal/core/ports/services"
	"github.com/finledger/ledgerd/internal/middleware"
)

// rateService resolves the EUR-pivot rate table the conversion paths
// consume. It refreshes from the live source at most once per interval
// and keeps a last-known-good snapshot, both in memory and persisted,
// for when the source is unreachable.
type rateService struct {
	source          portssvc.RateSource
	snapshotRepo    portsrepo.RateSnapshotRepository
	refreshInterval time.Duration

	mu     sync.Mutex
	cached *domain.RateSnapshot
}

// NewRateService creates a new rate service.
func NewRateService(source portssvc.RateSource, snapshotRepo portsrepo.RateSnapshotRepository, refreshInterval time.Duration) portssvc.RateSvcFacade {
	if refreshInterval <= 0 {
		refreshInterval = 24 * time.Hour
	}
	return &rateService{
		source:          source,
		snapshotRepo:    snapshotRepo,
		refreshInterval: refreshInterval,
	}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// GetRates returns the current rate table. Freshness order: in-memory
// cache within the refresh interval, then a live fetch (persisted as the
// new last-known-good), then the stale cache, then the persisted
// snapshot.
func (s *rateService) GetRates(ctx context.Context) (*domain.RateSnapshot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && time.Since(s.cached.FetchedAt) < s.refreshInterval {
		return s.cached, nil
	}

	rates, fetchedAt, err := s.source.FetchLatest(ctx)
	if err == nil {
		snapshot := &domain.RateSnapshot{
			SnapshotID: uuid.NewString(),
			Rates:      rates,
			FetchedAt:  fetchedAt,
		}
		if saveErr := s.snapshotRepo.SaveRateSnapshot(ctx, *snapshot); saveErr != nil {
			// A failed persist only hurts the next cold start.
			logger.Warn("Failed to persist rate snapshot", slog.String("error", saveErr.Error()))
		}
		s.cached = snapshot
		logger.Info("Rate table refreshed", slog.Int("currencies", len(rates)), slog.Time("fetched_at", fetchedAt))
		return snapshot, nil
	}

	logger.Warn("Live rate source unreachable, falling back", slog.String("error", err.Error()))

	if s.cached != nil {
		return s.cached, nil
	}

	snapshot, repoErr := s.snapshotRepo.FindLatestRateSnapshot(ctx)
	if repoErr != nil {
		return nil, fmt.Errorf("rate source unreachable and no stored snapshot available: %w", err)
	}
	s.cached = snapshot
	return snapshot, nil
}
