package analyzing

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/vendalytics/store-analytics-api/internal/domain"
	"github.com/vendalytics/store-analytics-api/pkg/log"
)

// normalizeOrders anexa a cada pedido os valores convertidos para a moeda-alvo.
// A conversão é aditiva e tolerante a falhas parciais: um campo que não pôde
// ser convertido fica nulo, os demais são preenchidos e os valores originais
// permanecem intactos.
func (s *service) normalizeOrders(
	ctx context.Context,
	orders []*domain.OrderRecord,
	target domain.CurrencyCode,
) ([]*domain.OrderRecord, []string) {
	if target.IsOriginal() || len(orders) == 0 {
		return orders, nil
	}

	out := make([]*domain.OrderRecord, len(orders))
	failures := make([]int, len(orders))

	var wg sync.WaitGroup
	for i, order := range orders {
		wg.Add(1)

		go func(i int, order *domain.OrderRecord) {
			defer wg.Done()
			out[i], failures[i] = s.convertOrder(ctx, order, target)
		}(i, order)
	}
	wg.Wait()

	totalFailures := 0
	for _, n := range failures {
		totalFailures += n
	}

	if totalFailures == 0 {
		return out, nil
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"currency": target,
		"failures": totalFailures,
	}).Warn("conversão parcial na listagem de pedidos")

	warning := fmt.Sprintf("falha ao converter %d valor(es) da listagem de pedidos para %s; os campos afetados ficaram nulos", totalFailures, target)
	return out, []string{warning}
}

// convertOrder devolve uma cópia do pedido com o bloco de valores convertidos
// anexado, junto com o número de campos cuja conversão falhou
func (s *service) convertOrder(
	ctx context.Context,
	order *domain.OrderRecord,
	target domain.CurrencyCode,
) (*domain.OrderRecord, int) {
	copied := *order

	// Sem moeda registrada não há o que converter
	if order.Currency == nil {
		return &copied, 0
	}

	converted := &domain.ConvertedAmounts{Currency: target}
	failures := 0

	convert := func(value *decimal.Decimal, from domain.CurrencyCode) *decimal.Decimal {
		if value == nil {
			return nil
		}

		result, err := s.converter.Convert(ctx, *value, from, target, order.CreatedAt)
		if err != nil {
			failures++
			return nil
		}

		rounded := result.Round(2)
		return &rounded
	}

	converted.Subtotal = convert(order.Subtotal, *order.Currency)
	converted.TaxTotal = convert(order.TaxTotal, *order.Currency)
	converted.Total = convert(order.Total, *order.Currency)

	// A taxa do gateway pode estar em moeda própria, distinta da do pedido
	feeCurrency := *order.Currency
	if order.GatewayFeeCurrency != nil {
		feeCurrency = *order.GatewayFeeCurrency
	}
	converted.GatewayFee = convert(order.GatewayFee, feeCurrency)

	copied.Converted = converted

	return &copied, failures
}
