package converting

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendalytics/store-analytics-api/internal/domain"
)

// LatestRate é o marcador de data aceito pelos provedores para "última taxa conhecida"
const LatestRate = "latest"

// Converter normaliza um valor monetário de uma moeda para outra usando a taxa
// do dia informado. Implementações nunca devolvem silenciosamente o valor sem
// conversão: em caso de falha o chamador decide a política de fallback.
type Converter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to domain.CurrencyCode, at time.Time) (decimal.Decimal, error)
}

// RateProvider busca a taxa multiplicativa de uma moeda para outra em uma data
// específica (formato YYYY-MM-DD) ou em LatestRate. Deve retornar
// ErrNoRateForDate quando não houver dados para a data solicitada.
type RateProvider interface {
	FetchRate(ctx context.Context, from, to domain.CurrencyCode, date string) (decimal.Decimal, error)
}
