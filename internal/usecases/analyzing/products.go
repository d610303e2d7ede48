package analyzing

import (
	"context"
	"fmt"
	"sync"

	"github.com/vendalytics/store-analytics-api/internal/domain"
)

// ProductsAnalytics resolve o período e busca o ranking de variantes e a
// contagem total em paralelo. As quantidades independem de moeda, então
// nenhuma normalização se aplica aqui.
func (s *service) ProductsAnalytics(
	ctx context.Context,
	query *ProductsAnalyticsQuery,
) (*domain.ProductsAnalyticsResponse, error) {
	dateRange, err := domain.ResolveRange(query.Preset, query.From, query.To, s.now())
	if err != nil {
		return nil, err
	}

	var (
		wg sync.WaitGroup

		variants    []*domain.TopVariant
		variantsErr error

		total    int
		totalErr error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		variants, variantsErr = s.products.GetTopVariants(ctx, dateRange, query.Limit)
	}()

	go func() {
		defer wg.Done()
		total, totalErr = s.products.CountDistinctVariants(ctx, dateRange)
	}()

	wg.Wait()

	if variantsErr != nil {
		return nil, fmt.Errorf("erro ao consultar o ranking de variantes: %w", variantsErr)
	}

	if totalErr != nil {
		return nil, fmt.Errorf("erro ao contar variantes do período: %w", totalErr)
	}

	return &domain.ProductsAnalyticsResponse{
		Range:         *dateRange,
		TopVariants:   variants,
		TotalVariants: total,
	}, nil
}
