package analyzing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vendalytics/store-analytics-api/internal/domain"
)

// CustomersAnalytics resolve o período e dispara as três consultas de
// aquisição em paralelo. TotalCount ignora o período de propósito: o KPI
// compara a entrada de clientes contra a base inteira.
func (s *service) CustomersAnalytics(
	ctx context.Context,
	query *CustomersAnalyticsQuery,
) (*domain.CustomersAnalyticsResponse, error) {
	dateRange, err := domain.ResolveRange(query.Preset, query.From, query.To, s.now())
	if err != nil {
		return nil, err
	}

	var (
		wg sync.WaitGroup

		newCount    int
		newCountErr error

		totalCount    int
		totalCountErr error

		seriesRows []*domain.DailyCountRow
		seriesErr  error
	)

	wg.Add(3)

	go func() {
		defer wg.Done()
		newCount, newCountErr = s.customers.CountNewCustomers(ctx, dateRange)
	}()

	go func() {
		defer wg.Done()
		totalCount, totalCountErr = s.customers.CountActiveCustomers(ctx)
	}()

	go func() {
		defer wg.Done()
		seriesRows, seriesErr = s.customers.GetFirstOrderSeries(ctx, dateRange)
	}()

	wg.Wait()

	if newCountErr != nil {
		return nil, fmt.Errorf("erro ao contar novos clientes: %w", newCountErr)
	}

	if totalCountErr != nil {
		return nil, fmt.Errorf("erro ao contar a base de clientes: %w", totalCountErr)
	}

	if seriesErr != nil {
		return nil, fmt.Errorf("erro ao consultar a série de novos clientes: %w", seriesErr)
	}

	series := make([]domain.CountPoint, 0, len(seriesRows))
	for _, row := range seriesRows {
		series = append(series, domain.CountPoint{
			Date:  row.Day.Format(time.DateOnly),
			Count: row.Count,
		})
	}

	return &domain.CustomersAnalyticsResponse{
		Range: *dateRange,
		Kpis: domain.CustomersKpis{
			NewCount:   newCount,
			TotalCount: totalCount,
		},
		Series: series,
	}, nil
}
