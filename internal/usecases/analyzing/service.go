package analyzing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vendalytics/store-analytics-api/infrastructure/repository"
	"github.com/vendalytics/store-analytics-api/internal/domain"
	"github.com/vendalytics/store-analytics-api/internal/usecases/converting"
	"github.com/vendalytics/store-analytics-api/pkg/log"
)

const warnConverterUnavailable = "conversor de moedas não configurado; valores exibidos nas moedas originais"

// defaultStatuses são os estados de pedido considerados quando a requisição não
// informa um filtro explícito
var defaultStatuses = []domain.OrderStatus{
	domain.OrderStatusCompleted,
	domain.OrderStatusPending,
}

type service struct {
	repository repository.OrderAnalyticsRepository
	customers  repository.CustomerAnalyticsRepository
	products   repository.ProductAnalyticsRepository
	converter  converting.Converter

	now func() time.Time
}

// NewService cria o analisador da loja. O conversor pode ser nulo: nesse
// caso pedidos de conversão são ignorados com um aviso na resposta.
func NewService(
	repository repository.OrderAnalyticsRepository,
	customers repository.CustomerAnalyticsRepository,
	products repository.ProductAnalyticsRepository,
	converter converting.Converter,
) Analyzer {
	return &service{
		repository: repository,
		customers:  customers,
		products:   products,
		converter:  converter,
		now:        time.Now,
	}
}

func (s *service) OrdersAnalytics(
	ctx context.Context,
	query *OrdersAnalyticsQuery,
) (*domain.OrdersAnalyticsResponse, error) {
	dateRange, err := domain.ResolveRange(query.Preset, query.From, query.To, s.now())
	if err != nil {
		return nil, err
	}

	statuses := query.Statuses
	if len(statuses) == 0 {
		statuses = defaultStatuses
	}

	warnings := make([]string, 0)

	// Sem conversor configurado a requisição segue, mas sem normalização
	target := query.Currency
	if !target.IsOriginal() && s.converter == nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"currency": target,
		}).Warn("conversão solicitada sem conversor configurado")

		warnings = append(warnings, warnConverterUnavailable)
		target = domain.CurrencyOriginal
	}

	var (
		wg sync.WaitGroup

		dailyRows []*domain.DailyCurrencyRow
		dailyErr  error

		page    *domain.OrdersPage
		pageErr error

		countryRows []*domain.CountryCurrencyRow
		countryErr  error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		dailyRows, dailyErr = s.repository.GetDailyCurrencyRows(ctx, dateRange, statuses)
	}()

	go func() {
		defer wg.Done()
		page, pageErr = s.repository.GetOrdersPage(ctx, dateRange, statuses, query.Limit, query.Offset)
	}()

	if query.CountrySummary {
		wg.Add(1)

		go func() {
			defer wg.Done()
			countryRows, countryErr = s.repository.GetCountryCurrencyRows(ctx, dateRange, statuses)
		}()
	}

	wg.Wait()

	if dailyErr != nil {
		return nil, fmt.Errorf("erro ao consultar as linhas diárias: %w", dailyErr)
	}

	if pageErr != nil {
		return nil, fmt.Errorf("erro ao consultar a página de pedidos: %w", pageErr)
	}

	if countryErr != nil {
		return nil, fmt.Errorf("erro ao consultar as linhas por país: %w", countryErr)
	}

	kpis, series, kpiWarnings := s.aggregateKpis(ctx, dailyRows, target)
	warnings = append(warnings, kpiWarnings...)

	orders, orderWarnings := s.normalizeOrders(ctx, page.Data, target)
	warnings = append(warnings, orderWarnings...)

	response := &domain.OrdersAnalyticsResponse{
		Range:    *dateRange,
		Currency: query.Currency,
		Kpis:     kpis,
		Series:   series,
		Orders: domain.OrdersPageResponse{
			Count:  page.Count,
			Limit:  query.Limit,
			Offset: query.Offset,
			Data:   orders,
		},
		Warnings: warnings,
	}

	if query.CountrySummary {
		countryTotals, countryWarnings := s.aggregateCountryTotals(ctx, countryRows, target, dateRange.Midpoint())
		response.CountryTotals = countryTotals
		response.Warnings = append(response.Warnings, countryWarnings...)
	}

	return response, nil
}
