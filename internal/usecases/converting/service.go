package converting

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendalytics/store-analytics-api/internal/domain"
	"github.com/vendalytics/store-analytics-api/pkg/log"
	"golang.org/x/sync/singleflight"
)

// rateKey identifica uma taxa por (data com granularidade de dia, moeda de
// origem, moeda de destino). Chave tipada para evitar colisões de string.
type rateKey struct {
	Date string
	From domain.CurrencyCode
	To   domain.CurrencyCode
}

// flightKey serializa a chave para o grupo de deduplicação. Os campos têm
// formato fixo e o separador não aparece em códigos de moeda.
func (k rateKey) flightKey() string {
	return fmt.Sprintf("%s|%s|%s", k.Date, k.From, k.To)
}

// Service implementa Converter com cache de taxas em dois níveis: cache
// persistente pelo tempo de vida do processo e deduplicação de buscas em
// andamento. Chamadores concorrentes da mesma chave observam exatamente uma
// busca no provedor e recebem a mesma taxa resolvida.
type Service struct {
	provider RateProvider

	mu    sync.RWMutex
	rates map[rateKey]decimal.Decimal

	inflight singleflight.Group

	// injetável em testes para controlar o "hoje" do clamp de datas futuras
	now func() time.Time
}

// NewService cria o conversor com o provedor de taxas informado
func NewService(provider RateProvider) *Service {
	return &Service{
		provider: provider,
		rates:    make(map[rateKey]decimal.Decimal),
		now:      time.Now,
	}
}

// Convert converte amount da moeda from para a moeda to usando a taxa do dia
// de at. Datas futuras são limitadas a hoje (nunca pedimos taxa prospectiva).
// Mesma moeda retorna o valor inalterado sem consultar provedor nem cache.
func (s *Service) Convert(
	ctx context.Context,
	amount decimal.Decimal,
	from, to domain.CurrencyCode,
	at time.Time,
) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	key := rateKey{
		Date: s.effectiveDate(at),
		From: from,
		To:   to,
	}

	s.mu.RLock()
	rate, ok := s.rates[key]
	s.mu.RUnlock()

	if ok {
		return amount.Mul(rate), nil
	}

	resolved, err, _ := s.inflight.Do(key.flightKey(), func() (interface{}, error) {
		// Revalida o cache dentro do voo: outro chamador pode ter populado
		// entre o RUnlock e o Do
		s.mu.RLock()
		cached, hit := s.rates[key]
		s.mu.RUnlock()
		if hit {
			return cached, nil
		}

		fetched, err := s.fetchWithFallback(ctx, from, to, key.Date)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.rates[key] = fetched
		s.mu.Unlock()

		return fetched, nil
	})
	if err != nil {
		log.ForContext(ctx).WithError(err).WithFields(log.Fields{
			"from": from,
			"to":   to,
			"date": key.Date,
		}).Warn("conversão de moeda falhou")

		return decimal.Zero, newConversionError(ErrConversionUnavailable, from, to, key.Date)
	}

	return amount.Mul(resolved.(decimal.Decimal)), nil
}

// fetchWithFallback busca a taxa do dia; se o provedor indicar ausência de
// dados para aquela data, tenta uma única vez a última taxa conhecida.
func (s *Service) fetchWithFallback(
	ctx context.Context,
	from, to domain.CurrencyCode,
	date string,
) (decimal.Decimal, error) {
	rate, err := s.provider.FetchRate(ctx, from, to, date)
	if errors.Is(err, ErrNoRateForDate) {
		log.ForContext(ctx).WithFields(log.Fields{
			"from": from,
			"to":   to,
			"date": date,
		}).Info("sem taxa para a data, usando última taxa conhecida")

		rate, err = s.provider.FetchRate(ctx, from, to, LatestRate)
	}
	if err != nil {
		return decimal.Zero, err
	}

	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidRate
	}

	return rate, nil
}

// effectiveDate reduz o instante à granularidade de dia (UTC) e limita datas
// futuras a hoje
func (s *Service) effectiveDate(at time.Time) string {
	today := s.now().UTC().Format(time.DateOnly)
	requested := at.UTC().Format(time.DateOnly)
	if requested > today {
		return today
	}
	return requested
}
