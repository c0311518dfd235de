package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finledger/ledgerd/internal/core/domain"
	portssvc "github.com/finledger/ledgerd/internal/core/ports/services"
	"github.com/finledger/ledgerd/internal/core/services"
)

type RateServiceTestSuite struct {
	suite.Suite
	mockSource *MockRateSource
	mockRepo   *MockRateSnapshotRepository
	service    portssvc.RateSvcFacade
	rates      domain.RateTable
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.mockSource = new(MockRateSource)
	suite.mockRepo = new(MockRateSnapshotRepository)
	suite.service = services.NewRateService(suite.mockSource, suite.mockRepo, time.Hour)
	suite.rates = domain.RateTable{
		"EUR": decimal.NewFromInt(1),
		"USD": decimal.RequireFromString("1.0842"),
	}
}

func (suite *RateServiceTestSuite) TestGetRates_FetchesAndPersists() {
	ctx := context.Background()
	fetchedAt := time.Now().UTC()

	suite.mockSource.On("FetchLatest", ctx).Return(suite.rates, fetchedAt, nil).Once()
	suite.mockRepo.On("SaveRateSnapshot", ctx, mock.AnythingOfType("domain.RateSnapshot")).Return(nil).Once()

	snapshot, err := suite.service.GetRates(ctx)

	suite.Require().NoError(err)
	suite.Require().NotNil(snapshot)
	suite.True(snapshot.Rates["USD"].Equal(suite.rates["USD"]))
	suite.mockSource.AssertExpectations(suite.T())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestGetRates_ServesCacheWithinInterval() {
	ctx := context.Background()
	fetchedAt := time.Now().UTC()

	suite.mockSource.On("FetchLatest", ctx).Return(suite.rates, fetchedAt, nil).Once()
	suite.mockRepo.On("SaveRateSnapshot", ctx, mock.AnythingOfType("domain.RateSnapshot")).Return(nil).Once()

	first, err := suite.service.GetRates(ctx)
	suite.Require().NoError(err)

	// The second call must not reach the source again.
	second, err := suite.service.GetRates(ctx)
	suite.Require().NoError(err)
	suite.Equal(first.SnapshotID, second.SnapshotID)
	suite.mockSource.AssertNumberOfCalls(suite.T(), "FetchLatest", 1)
}

func (suite *RateServiceTestSuite) TestGetRates_FallsBackToStaleCache() {
	ctx := context.Background()
	// Fetched far in the past so the cache is already stale.
	fetchedAt := time.Now().UTC().Add(-2 * time.Hour)

	suite.mockSource.On("FetchLatest", ctx).Return(suite.rates, fetchedAt, nil).Once()
	suite.mockRepo.On("SaveRateSnapshot", ctx, mock.AnythingOfType("domain.RateSnapshot")).Return(nil).Once()

	first, err := suite.service.GetRates(ctx)
	suite.Require().NoError(err)

	// Next refresh attempt fails; the stale cache is still served.
	suite.mockSource.On("FetchLatest", ctx).Return(nil, time.Time{}, errors.New("connection refused")).Once()

	second, err := suite.service.GetRates(ctx)
	suite.Require().NoError(err)
	suite.Equal(first.SnapshotID, second.SnapshotID)
}

func (suite *RateServiceTestSuite) TestGetRates_FallsBackToPersistedSnapshot() {
	ctx := context.Background()
	stored := &domain.RateSnapshot{
		SnapshotID: "stored",
		Rates:      suite.rates,
		FetchedAt:  time.Now().UTC().Add(-48 * time.Hour),
	}

	suite.mockSource.On("FetchLatest", ctx).Return(nil, time.Time{}, errors.New("connection refused")).Once()
	suite.mockRepo.On("FindLatestRateSnapshot", ctx).Return(stored, nil).Once()

	snapshot, err := suite.service.GetRates(ctx)

	suite.Require().NoError(err)
	suite.Equal("stored", snapshot.SnapshotID)
}

func (suite *RateServiceTestSuite) TestGetRates_FailsWhenNothingAvailable() {
	ctx := context.Background()

	suite.mockSource.On("FetchLatest", ctx).Return(nil, time.Time{}, errors.New("connection refused")).Once()
	suite.mockRepo.On("FindLatestRateSnapshot", ctx).Return(nil, errors.New("no rows")).Once()

	snapshot, err := suite.service.GetRates(ctx)

	suite.Require().Error(err)
	suite.Nil(snapshot)
}

func TestRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
