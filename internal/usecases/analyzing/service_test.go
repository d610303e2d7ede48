package analyzing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	repomocks "github.com/vendalytics/store-analytics-api/infrastructure/repository/mocks"
	"github.com/vendalytics/store-analytics-api/internal/domain"
	"github.com/vendalytics/store-analytics-api/internal/usecases/converting"
	convmocks "github.com/vendalytics/store-analytics-api/internal/usecases/converting/mocks"
	"github.com/vendalytics/store-analytics-api/pkg/log"
	"github.com/vendalytics/store-analytics-api/pkg/utils"
)

var (
	testDay1 = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	testDay2 = time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)
)

func newTestService(repo *repomocks.MockOrderAnalyticsRepository, conv converting.Converter) *service {
	log.SetupTestLogger()

	return &service{
		repository: repo,
		converter:  conv,
		now: func() time.Time {
			return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
		},
	}
}

func customQuery(currency domain.CurrencyCode) *OrdersAnalyticsQuery {
	return &OrdersAnalyticsQuery{
		Preset:   domain.PresetCustom,
		From:     "2024-03-01",
		To:       "2024-03-31",
		Currency: currency,
		Limit:    200,
	}
}

func emptyPage() *domain.OrdersPage {
	return &domain.OrdersPage{Data: make([]*domain.OrderRecord, 0)}
}

func currencyPtr(c domain.CurrencyCode) *domain.CurrencyCode {
	return &c
}

func strPtr(s string) *string {
	return &s
}

func TestOrdersAnalyticsMoedasMistasSemAlvo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockOrderAnalyticsRepository(ctrl)
	repo.EXPECT().GetDailyCurrencyRows(gomock.Any(), gomock.Any(), gomock.Any()).Return(
		[]*domain.DailyCurrencyRow{
			{Day: testDay1, Currency: domain.CurrencyGBP, OrderCount: 3, SalesAmount: decimal.NewFromInt(100)},
			{Day: testDay1, Currency: domain.CurrencyAED, OrderCount: 2, SalesAmount: decimal.NewFromInt(200)},
		}, nil,
	)
	repo.EXPECT().GetOrdersPage(gomock.Any(), gomock.Any(), gomock.Any(), 200, 0).Return(emptyPage(), nil)

	svc := newTestService(repo, nil)

	response, err := svc.OrdersAnalytics(context.Background(), customQuery(domain.CurrencyOriginal))
	require.NoError(t, err)

	assert.Equal(t, 5, response.Kpis.TotalOrders)
	assert.True(t, response.Kpis.TotalSales.IsZero())
	assert.Empty(t, response.Series.Sales)
	assert.Contains(t, response.Warnings, warnMixedCurrencies)

	// A série de pedidos não depende de moeda e continua disponível
	require.Len(t, response.Series.Orders, 1)
	assert.Equal(t, "2024-03-01", response.Series.Orders[0].Date)
	assert.True(t, response.Series.Orders[0].Value.Equal(decimal.NewFromInt(5)))
}

func TestOrdersAnalyticsConversaoParaUSD(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockOrderAnalyticsRepository(ctrl)
	repo.EXPECT().GetDailyCurrencyRows(gomock.Any(), gomock.Any(), gomock.Any()).Return(
		[]*domain.DailyCurrencyRow{
			{Day: testDay1, Currency: domain.CurrencyGBP, OrderCount: 1, SalesAmount: decimal.NewFromInt(100)},
			{Day: testDay2, Currency: domain.CurrencyAED, OrderCount: 2, SalesAmount: decimal.NewFromInt(200)},
		}, nil,
	)
	repo.EXPECT().GetOrdersPage(gomock.Any(), gomock.Any(), gomock.Any(), 200, 0).Return(emptyPage(), nil)

	conv := convmocks.NewMockConverter(ctrl)
	conv.EXPECT().Convert(gomock.Any(), gomock.Any(), gomock.Any(), domain.CurrencyUSD, gomock.Any()).
		DoAndReturn(func(_ context.Context, amount decimal.Decimal, _, _ domain.CurrencyCode, _ time.Time) (decimal.Decimal, error) {
			return amount.Mul(decimal.NewFromFloat(1.1)), nil
		}).Times(2)

	svc := newTestService(repo, conv)

	response, err := svc.OrdersAnalytics(context.Background(), customQuery(domain.CurrencyUSD))
	require.NoError(t, err)

	assert.Empty(t, response.Warnings)
	assert.Equal(t, domain.CurrencyUSD, response.Currency)
	assert.True(t, response.Kpis.TotalSales.Equal(decimal.NewFromInt(330)),
		"esperava 330, obteve %s", response.Kpis.TotalSales)

	require.Len(t, response.Series.Sales, 2)
	assert.True(t, response.Series.Sales[0].Value.Equal(decimal.NewFromInt(110)))
	assert.True(t, response.Series.Sales[1].Value.Equal(decimal.NewFromInt(220)))
}

func TestOrdersAnalyticsDetalhamentoPorPais(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockOrderAnalyticsRepository(ctrl)
	repo.EXPECT().GetDailyCurrencyRows(gomock.Any(), gomock.Any(), gomock.Any()).Return(
		[]*domain.DailyCurrencyRow{
			{Day: testDay1, Currency: domain.CurrencyAED, OrderCount: 4, SalesAmount: decimal.NewFromInt(1000)},
		}, nil,
	)
	repo.EXPECT().GetOrdersPage(gomock.Any(), gomock.Any(), gomock.Any(), 200, 0).Return(emptyPage(), nil)
	repo.EXPECT().GetCountryCurrencyRows(gomock.Any(), gomock.Any(), gomock.Any()).Return(
		[]*domain.CountryCurrencyRow{
			{
				CountryCode: strPtr("AE"),
				Currency:    currencyPtr(domain.CurrencyAED),
				Amount:      decimal.NewFromInt(1000),
				Fees:        decimal.NewFromInt(40),
			},
		}, nil,
	)

	svc := newTestService(repo, nil)

	query := customQuery(domain.CurrencyOriginal)
	query.CountrySummary = true

	response, err := svc.OrdersAnalytics(context.Background(), query)
	require.NoError(t, err)
	require.NotNil(t, response.CountryTotals)

	totals := response.CountryTotals
	assert.True(t, totals.Normalized)
	assert.Empty(t, totals.PerCurrencyTotals)

	require.Len(t, totals.Rows, 1)
	row := totals.Rows[0]
	assert.Equal(t, "AE", *row.CountryCode)
	assert.True(t, row.Net.Equal(decimal.NewFromInt(960)), "esperava 960, obteve %s", row.Net)
	assert.True(t, row.Net.Equal(row.Amount.Sub(row.Fees)))

	assert.True(t, totals.Totals.Amount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, totals.Totals.Fees.Equal(decimal.NewFromInt(40)))
	assert.True(t, totals.Totals.Net.Equal(decimal.NewFromInt(960)))
}

func TestOrdersAnalyticsPaisesComMoedasMistas(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockOrderAnalyticsRepository(ctrl)
	repo.EXPECT().GetDailyCurrencyRows(gomock.Any(), gomock.Any(), gomock.Any()).Return(
		[]*domain.DailyCurrencyRow{
			{Day: testDay1, Currency: domain.CurrencyGBP, OrderCount: 1, SalesAmount: decimal.NewFromInt(300)},
			{Day: testDay1, Currency: domain.CurrencyKWD, OrderCount: 1, SalesAmount: decimal.NewFromInt(500)},
		}, nil,
	)
	repo.EXPECT().GetOrdersPage(gomock.Any(), gomock.Any(), gomock.Any(), 200, 0).Return(emptyPage(), nil)
	repo.EXPECT().GetCountryCurrencyRows(gomock.Any(), gomock.Any(), gomock.Any()).Return(
		[]*domain.CountryCurrencyRow{
			{
				CountryCode: strPtr("GB"),
				Currency:    currencyPtr(domain.CurrencyGBP),
				Amount:      decimal.NewFromInt(300),
				Fees:        decimal.NewFromInt(10),
			},
			{
				CountryCode: strPtr("KW"),
				Currency:    currencyPtr(domain.CurrencyKWD),
				Amount:      decimal.NewFromInt(500),
				Fees:        decimal.NewFromInt(20),
			},
		}, nil,
	)

	svc := newTestService(repo, nil)

	query := customQuery(domain.CurrencyOriginal)
	query.CountrySummary = true

	response, err := svc.OrdersAnalytics(context.Background(), query)
	require.NoError(t, err)
	require.NotNil(t, response.CountryTotals)

	totals := response.CountryTotals
	assert.False(t, totals.Normalized)
	assert.True(t, totals.Totals.Amount.IsZero())
	assert.True(t, totals.Totals.Net.IsZero())
	assert.Contains(t, response.Warnings, warnCountryMixedCurrencies)

	// Linhas ordenadas por montante decrescente
	require.Len(t, totals.Rows, 2)
	assert.Equal(t, "KW", *totals.Rows[0].CountryCode)
	assert.Equal(t, "GB", *totals.Rows[1].CountryCode)

	require.Len(t, totals.PerCurrencyTotals, 2)
	assert.Equal(t, domain.CurrencyGBP, totals.PerCurrencyTotals[0].Currency)
	assert.True(t, totals.PerCurrencyTotals[0].Net.Equal(decimal.NewFromInt(290)))
	assert.Equal(t, domain.CurrencyKWD, totals.PerCurrencyTotals[1].Currency)
	assert.True(t, totals.PerCurrencyTotals[1].Net.Equal(decimal.NewFromInt(480)))
}

func TestOrdersAnalyticsCambioIndisponivel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockOrderAnalyticsRepository(ctrl)
	repo.EXPECT().GetDailyCurrencyRows(gomock.Any(), gomock.Any(), gomock.Any()).Return(
		[]*domain.DailyCurrencyRow{
			{Day: testDay1, Currency: domain.CurrencyGBP, OrderCount: 2, SalesAmount: decimal.NewFromInt(100)},
		}, nil,
	)
	repo.EXPECT().GetOrdersPage(gomock.Any(), gomock.Any(), gomock.Any(), 200, 0).Return(emptyPage(), nil)
	repo.EXPECT().GetCountryCurrencyRows(gomock.Any(), gomock.Any(), gomock.Any()).Return(
		[]*domain.CountryCurrencyRow{
			{
				CountryCode: strPtr("GB"),
				Currency:    currencyPtr(domain.CurrencyGBP),
				Amount:      decimal.NewFromInt(100),
				Fees:        decimal.NewFromInt(5),
			},
		}, nil,
	)

	conv := convmocks.NewMockConverter(ctrl)
	conv.EXPECT().Convert(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(decimal.Zero, converting.ErrConversionUnavailable).AnyTimes()

	svc := newTestService(repo, conv)

	query := customQuery(domain.CurrencyUSD)
	query.CountrySummary = true

	response, err := svc.OrdersAnalytics(context.Background(), query)
	require.NoError(t, err)

	// KPI zera o total; o detalhamento recua para as moedas originais
	assert.True(t, response.Kpis.TotalSales.IsZero())
	assert.Equal(t, 2, response.Kpis.TotalOrders)
	assert.Empty(t, response.Series.Sales)

	require.NotNil(t, response.CountryTotals)
	require.Len(t, response.CountryTotals.Rows, 1)
	assert.Equal(t, domain.CurrencyGBP, *response.CountryTotals.Rows[0].Currency)
	assert.True(t, response.CountryTotals.Normalized, "moeda única continua normalizada mesmo sem conversão")

	require.NotEmpty(t, response.Warnings)
	assert.GreaterOrEqual(t, len(response.Warnings), 2)
}

func TestOrdersAnalyticsConversaoParcialDePedidos(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	order := &domain.OrderRecord{
		ID:        "order_01",
		CreatedAt: testDay1,
		Currency:  currencyPtr(domain.CurrencyGBP),
		Subtotal:  utils.DecimalPtr(decimal.NewFromInt(100)),
		TaxTotal:  utils.DecimalPtr(decimal.NewFromInt(5)),
		Total:     utils.DecimalPtr(decimal.NewFromInt(105)),
	}

	repo := repomocks.NewMockOrderAnalyticsRepository(ctrl)
	repo.EXPECT().GetDailyCurrencyRows(gomock.Any(), gomock.Any(), gomock.Any()).Return(
		[]*domain.DailyCurrencyRow{}, nil,
	)
	repo.EXPECT().GetOrdersPage(gomock.Any(), gomock.Any(), gomock.Any(), 200, 0).Return(
		&domain.OrdersPage{Data: []*domain.OrderRecord{order}, Count: 1}, nil,
	)

	conv := convmocks.NewMockConverter(ctrl)
	conv.EXPECT().Convert(gomock.Any(), gomock.Any(), domain.CurrencyGBP, domain.CurrencyUSD, testDay1).
		DoAndReturn(func(_ context.Context, amount decimal.Decimal, _, _ domain.CurrencyCode, _ time.Time) (decimal.Decimal, error) {
			// Simula falha apenas na conversão do imposto
			if amount.Equal(decimal.NewFromInt(5)) {
				return decimal.Zero, converting.ErrConversionUnavailable
			}
			return amount.Mul(decimal.NewFromFloat(1.25)), nil
		}).Times(3)

	svc := newTestService(repo, conv)

	response, err := svc.OrdersAnalytics(context.Background(), customQuery(domain.CurrencyUSD))
	require.NoError(t, err)

	require.Len(t, response.Orders.Data, 1)
	got := response.Orders.Data[0]

	require.NotNil(t, got.Converted)
	assert.Equal(t, domain.CurrencyUSD, got.Converted.Currency)
	assert.Nil(t, got.Converted.TaxTotal)
	require.NotNil(t, got.Converted.Subtotal)
	assert.True(t, got.Converted.Subtotal.Equal(decimal.NewFromInt(125)))
	require.NotNil(t, got.Converted.Total)
	assert.True(t, got.Converted.Total.Equal(decimal.NewFromFloat(131.25)))

	// Os valores originais nunca são sobrescritos
	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, got.Total.Equal(decimal.NewFromInt(105)))
	assert.Nil(t, order.Converted)

	require.Len(t, response.Warnings, 1)
	assert.Contains(t, response.Warnings[0], "1 valor")
}

func TestOrdersAnalyticsSemConversorConfigurado(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockOrderAnalyticsRepository(ctrl)
	repo.EXPECT().GetDailyCurrencyRows(gomock.Any(), gomock.Any(), gomock.Any()).Return(
		[]*domain.DailyCurrencyRow{
			{Day: testDay1, Currency: domain.CurrencyGBP, OrderCount: 1, SalesAmount: decimal.NewFromInt(100)},
		}, nil,
	)
	repo.EXPECT().GetOrdersPage(gomock.Any(), gomock.Any(), gomock.Any(), 200, 0).Return(emptyPage(), nil)

	svc := newTestService(repo, nil)

	response, err := svc.OrdersAnalytics(context.Background(), customQuery(domain.CurrencyUSD))
	require.NoError(t, err)

	assert.Contains(t, response.Warnings, warnConverterUnavailable)
	assert.Equal(t, domain.CurrencyUSD, response.Currency)

	// Sem conversor os valores seguem na moeda original
	assert.True(t, response.Kpis.TotalSales.Equal(decimal.NewFromInt(100)))
}

func TestOrdersAnalyticsPeriodoInvalido(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockOrderAnalyticsRepository(ctrl)
	svc := newTestService(repo, nil)

	tests := []struct {
		name  string
		query *OrdersAnalyticsQuery
		want  error
	}{
		{
			name:  "preset desconhecido",
			query: &OrdersAnalyticsQuery{Preset: "this-year", Currency: domain.CurrencyOriginal},
			want:  domain.ErrInvalidRangePreset,
		},
		{
			name:  "custom sem limites",
			query: &OrdersAnalyticsQuery{Preset: domain.PresetCustom, Currency: domain.CurrencyOriginal},
			want:  domain.ErrMissingCustomBound,
		},
		{
			name: "data malformada",
			query: &OrdersAnalyticsQuery{
				Preset:   domain.PresetCustom,
				From:     "01/03/2024",
				To:       "2024-03-31",
				Currency: domain.CurrencyOriginal,
			},
			want: domain.ErrMalformedDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.OrdersAnalytics(context.Background(), tt.query)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOrdersAnalyticsLinhasSemMoedaNaNormalizacao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockOrderAnalyticsRepository(ctrl)
	repo.EXPECT().GetDailyCurrencyRows(gomock.Any(), gomock.Any(), gomock.Any()).Return(
		[]*domain.DailyCurrencyRow{
			{Day: testDay1, Currency: domain.CurrencyAED, OrderCount: 2, SalesAmount: decimal.NewFromInt(200)},
			{Day: testDay2, Currency: "", OrderCount: 1, SalesAmount: decimal.NewFromInt(50)},
		}, nil,
	)
	repo.EXPECT().GetOrdersPage(gomock.Any(), gomock.Any(), gomock.Any(), 200, 0).Return(emptyPage(), nil)

	// Apenas a linha com moeda registrada chega ao conversor
	conv := convmocks.NewMockConverter(ctrl)
	conv.EXPECT().Convert(gomock.Any(), gomock.Any(), domain.CurrencyAED, domain.CurrencyUSD, gomock.Any()).
		DoAndReturn(func(_ context.Context, amount decimal.Decimal, _, _ domain.CurrencyCode, _ time.Time) (decimal.Decimal, error) {
			return amount.Mul(decimal.NewFromFloat(1.1)), nil
		}).Times(1)

	svc := newTestService(repo, conv)

	response, err := svc.OrdersAnalytics(context.Background(), customQuery(domain.CurrencyUSD))
	require.NoError(t, err)

	// A linha sem moeda contribui zero, sem derrubar o total das demais
	assert.True(t, response.Kpis.TotalSales.Equal(decimal.NewFromInt(220)),
		"esperava 220, obteve %s", response.Kpis.TotalSales)
	assert.Equal(t, 3, response.Kpis.TotalOrders)
	assert.Contains(t, response.Warnings, warnRowsWithoutCurrency)
}
