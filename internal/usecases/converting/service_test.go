package converting

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendalytics/store-analytics-api/internal/domain"
	"github.com/vendalytics/store-analytics-api/internal/usecases/converting/mocks"
	"go.uber.org/mock/gomock"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
}

func newTestService(provider RateProvider) *Service {
	service := NewService(provider)
	service.now = fixedNow
	return service
}

func TestService_Convert_MesmaMoeda(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma chamada ao provedor é esperada
	mockProvider := mocks.NewMockRateProvider(ctrl)
	service := newTestService(mockProvider)

	amount := decimal.NewFromFloat(123.45)
	got, err := service.Convert(context.Background(), amount, domain.CurrencyUSD, domain.CurrencyUSD, fixedNow())

	require.NoError(t, err)
	assert.True(t, got.Equal(amount), "valor deve retornar inalterado, obtido %s", got)
}

func TestService_Convert_CacheDeTaxas(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := mocks.NewMockRateProvider(ctrl)
	service := newTestService(mockProvider)

	at := time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC)

	// Exatamente uma busca no provedor para duas conversões da mesma chave
	mockProvider.EXPECT().
		FetchRate(gomock.Any(), domain.CurrencyUSD, domain.CurrencyGBP, "2024-03-10").
		Return(decimal.NewFromFloat(0.8), nil).
		Times(1)

	first, err := service.Convert(context.Background(), decimal.NewFromInt(100), domain.CurrencyUSD, domain.CurrencyGBP, at)
	require.NoError(t, err)
	assert.True(t, first.Equal(decimal.NewFromInt(80)))

	second, err := service.Convert(context.Background(), decimal.NewFromInt(50), domain.CurrencyUSD, domain.CurrencyGBP, at)
	require.NoError(t, err)
	assert.True(t, second.Equal(decimal.NewFromInt(40)))
}

func TestService_Convert_DeduplicacaoConcorrente(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := mocks.NewMockRateProvider(ctrl)
	service := newTestService(mockProvider)

	at := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	rate := decimal.NewFromFloat(1.1)

	// Lei da deduplicação: chamadores concorrentes da mesma chave observam
	// exatamente uma busca no provedor
	mockProvider.EXPECT().
		FetchRate(gomock.Any(), domain.CurrencyAED, domain.CurrencyUSD, "2024-03-10").
		DoAndReturn(func(context.Context, domain.CurrencyCode, domain.CurrencyCode, string) (decimal.Decimal, error) {
			time.Sleep(20 * time.Millisecond)
			return rate, nil
		}).
		Times(1)

	const callers = 16
	results := make([]decimal.Decimal, callers)
	errs := make([]error, callers)

	wg := sync.WaitGroup{}
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = service.Convert(
				context.Background(),
				decimal.NewFromInt(200),
				domain.CurrencyAED,
				domain.CurrencyUSD,
				at,
			)
		}(i)
	}
	wg.Wait()

	expected := decimal.NewFromInt(200).Mul(rate)
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.True(t, results[i].Equal(expected), "chamador %d recebeu %s", i, results[i])
	}
}

func TestService_Convert_FallbackUltimaTaxa(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := mocks.NewMockRateProvider(ctrl)
	service := newTestService(mockProvider)

	at := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	gomock.InOrder(
		mockProvider.EXPECT().
			FetchRate(gomock.Any(), domain.CurrencyKWD, domain.CurrencyUSD, "2024-03-09").
			Return(decimal.Zero, ErrNoRateForDate),
		mockProvider.EXPECT().
			FetchRate(gomock.Any(), domain.CurrencyKWD, domain.CurrencyUSD, LatestRate).
			Return(decimal.NewFromFloat(3.25), nil),
	)

	got, err := service.Convert(context.Background(), decimal.NewFromInt(10), domain.CurrencyKWD, domain.CurrencyUSD, at)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromFloat(32.5)))
}

func TestService_Convert_ProvedorIndisponivel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := mocks.NewMockRateProvider(ctrl)
	service := newTestService(mockProvider)

	at := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)

	mockProvider.EXPECT().
		FetchRate(gomock.Any(), domain.CurrencyGBP, domain.CurrencyUSD, "2024-03-08").
		Return(decimal.Zero, errors.New("timeout"))

	got, err := service.Convert(context.Background(), decimal.NewFromInt(10), domain.CurrencyGBP, domain.CurrencyUSD, at)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConversionUnavailable)
	assert.True(t, got.IsZero())

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, domain.CurrencyGBP, convErr.From)
	assert.Equal(t, domain.CurrencyUSD, convErr.To)
}

func TestService_Convert_TaxaInvalida(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := mocks.NewMockRateProvider(ctrl)
	service := newTestService(mockProvider)

	at := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)

	mockProvider.EXPECT().
		FetchRate(gomock.Any(), domain.CurrencyGBP, domain.CurrencyUSD, "2024-03-08").
		Return(decimal.Zero, nil)

	_, err := service.Convert(context.Background(), decimal.NewFromInt(10), domain.CurrencyGBP, domain.CurrencyUSD, at)
	assert.ErrorIs(t, err, ErrConversionUnavailable)
}

func TestService_Convert_DataFuturaLimitadaAHoje(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := mocks.NewMockRateProvider(ctrl)
	service := newTestService(mockProvider)

	// Um ano à frente do "hoje" fixado em 2024-03-15
	future := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	mockProvider.EXPECT().
		FetchRate(gomock.Any(), domain.CurrencyUSD, domain.CurrencyAED, "2024-03-15").
		Return(decimal.NewFromFloat(3.67), nil)

	_, err := service.Convert(context.Background(), decimal.NewFromInt(1), domain.CurrencyUSD, domain.CurrencyAED, future)
	require.NoError(t, err)
}

func TestService_Convert_IdaEVolta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := mocks.NewMockRateProvider(ctrl)
	service := newTestService(mockProvider)

	at := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	rate := decimal.NewFromFloat(1.25)

	mockProvider.EXPECT().
		FetchRate(gomock.Any(), domain.CurrencyGBP, domain.CurrencyUSD, "2024-03-12").
		Return(rate, nil)
	mockProvider.EXPECT().
		FetchRate(gomock.Any(), domain.CurrencyUSD, domain.CurrencyGBP, "2024-03-12").
		Return(decimal.NewFromInt(1).Div(rate), nil)

	original := decimal.NewFromFloat(100)

	converted, err := service.Convert(context.Background(), original, domain.CurrencyGBP, domain.CurrencyUSD, at)
	require.NoError(t, err)

	back, err := service.Convert(context.Background(), converted, domain.CurrencyUSD, domain.CurrencyGBP, at)
	require.NoError(t, err)

	diff := back.Sub(original).Abs()
	tolerance := decimal.NewFromFloat(0.0001)
	assert.True(t, diff.LessThanOrEqual(tolerance), "ida e volta divergiu em %s", diff)
}
