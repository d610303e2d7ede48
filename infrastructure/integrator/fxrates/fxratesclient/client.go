package fxratesclient

import (
	"context"
	"net/http"

	"github.com/vendalytics/store-analytics-api/internal/config"
	"github.com/vendalytics/store-analytics-api/internal/domain"
)

type Client interface {
	GetRates(ctx context.Context, base domain.CurrencyCode, date string) (*CurrencyRates, error)
}

type FxRatesClient struct {
	httpClient *http.Client
	config     *config.FxRates
}

// NewClient cria o cliente HTTP do provedor de taxas de câmbio
func NewClient(cfg *config.FxRates) Client {
	return &FxRatesClient{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		config: cfg,
	}
}
