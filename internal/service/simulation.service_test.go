package service

import (
	"context"
	"drawdowncycles/internal/domain"
	mock_repository "drawdowncycles/internal/repository/mocks"
	"drawdowncycles/internal/util"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_simulationServiceHandler_Simulate(t *testing.T) {
	d1 := util.NewDate(2021, 3, 1)
	end := d1.AddDate(0, 0, 3)

	t.Run("loads both series and records spans", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		priceRepository := mock_repository.NewMockHistoricalPriceRepository(ctrl)
		handler := NewSimulationService(priceRepository)

		priceRepository.EXPECT().ListSeriesBetween(gomock.Any(), "SPY", d1, end).Return(seriesFrom(d1, 100, 80, 90, 110), nil)
		priceRepository.EXPECT().ListSeriesBetween(gomock.Any(), "TQQQ", d1, end).Return(seriesFrom(d1, 50, 40, 60, 60), nil)

		profile, _ := domain.NewProfile()
		ctx := domain.NewCtxWithProfile(context.Background(), profile)

		result, err := handler.Simulate(ctx, SimulateInput{
			BaseSymbol:        "spy",
			SecondarySymbol:   "tqqq",
			InitialInvestment: decimal.NewFromInt(1000),
			MonthlyInvestment: decimal.Zero,
			StartDate:         d1,
			EndDate:           end,
			ThresholdPct:      15,
		})
		require.NoError(t, err)

		require.Equal(t, "SPY → TQQQ @ 15%", result.StrategyLabel)
		require.Equal(t, 2, result.StrategySwitchCount)
		require.Len(t, result.Strategies, 3)
		require.Len(t, profile.Spans, 2)
		require.Equal(t, "load price series", profile.Spans[0].Name)
	})

	t.Run("empty secondary range", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		priceRepository := mock_repository.NewMockHistoricalPriceRepository(ctrl)
		handler := NewSimulationService(priceRepository)

		priceRepository.EXPECT().ListSeriesBetween(gomock.Any(), "SPY", d1, end).Return(seriesFrom(d1, 100, 101), nil)
		priceRepository.EXPECT().ListSeriesBetween(gomock.Any(), "BND", d1, end).Return([]domain.PricePoint{}, nil)

		_, err := handler.Simulate(context.Background(), SimulateInput{
			BaseSymbol:        "SPY",
			SecondarySymbol:   "BND",
			InitialInvestment: decimal.NewFromInt(1000),
			StartDate:         d1,
			EndDate:           end,
			ThresholdPct:      10,
		})
		require.True(t, errors.Is(err, domain.ErrInsufficientData))
		require.ErrorContains(t, err, "BND")
	})

	t.Run("repository failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		priceRepository := mock_repository.NewMockHistoricalPriceRepository(ctrl)
		handler := NewSimulationService(priceRepository)

		priceRepository.EXPECT().ListSeriesBetween(gomock.Any(), "SPY", d1, end).Return(nil, errors.New("db down")).AnyTimes()
		priceRepository.EXPECT().ListSeriesBetween(gomock.Any(), "BND", d1, end).Return(seriesFrom(d1, 1), nil).AnyTimes()

		_, err := handler.Simulate(context.Background(), SimulateInput{
			BaseSymbol:        "SPY",
			SecondarySymbol:   "BND",
			InitialInvestment: decimal.NewFromInt(1000),
			StartDate:         d1,
			EndDate:           end,
			ThresholdPct:      10,
		})
		require.ErrorContains(t, err, "db down")
		require.False(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("threshold outside the accepted range", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := NewSimulationService(mock_repository.NewMockHistoricalPriceRepository(ctrl))

		_, err := handler.Simulate(context.Background(), SimulateInput{
			BaseSymbol:        "SPY",
			SecondarySymbol:   "BND",
			InitialInvestment: decimal.NewFromInt(1000),
			StartDate:         d1,
			EndDate:           end,
			ThresholdPct:      0.05,
		})
		require.True(t, errors.Is(err, domain.ErrInvalidInput))
	})
}
