package fxrates

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vendalytics/store-analytics-api/infrastructure/integrator/fxrates/fxratesclient"
	"github.com/vendalytics/store-analytics-api/internal/config"
	"github.com/vendalytics/store-analytics-api/internal/domain"
	"github.com/vendalytics/store-analytics-api/internal/usecases/converting"
)

// FxRatesService adapta o cliente do provedor externo à interface de provedor
// de taxas consumida pelo conversor
type FxRatesService struct {
	cfg    *config.Config
	Client fxratesclient.Client
}

func New(cfg *config.Config, client fxratesclient.Client) converting.RateProvider {
	return &FxRatesService{
		cfg:    cfg,
		Client: client,
	}
}

func (s *FxRatesService) FetchRate(
	ctx context.Context,
	from, to domain.CurrencyCode,
	date string,
) (decimal.Decimal, error) {
	snapshot, err := s.Client.GetRates(ctx, from, date)
	if err != nil {
		if errors.Is(err, fxratesclient.ErrRatesNotFound) {
			return decimal.Zero, fmt.Errorf("%w: %s", converting.ErrNoRateForDate, date)
		}

		return decimal.Zero, err
	}

	rate, ok := snapshot.Rates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: sem taxa de %s para %s", converting.ErrNoRateForDate, from, to)
	}

	return rate, nil
}
