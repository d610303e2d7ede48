package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vendalytics/store-analytics-api/internal/config"
	convmocks "github.com/vendalytics/store-analytics-api/internal/usecases/converting/mocks"
)

func newWarmupConfig(lookbackDays int) *config.Config {
	return &config.Config{
		RatesWarmup: config.RatesWarmup{
			CronSchedule: "0 2 * * *",
			LookbackDays: lookbackDays,
			Enabled:      true,
		},
	}
}

func TestCurrencyPairs(t *testing.T) {
	pairs := currencyPairs()

	// 4 moedas suportadas geram 4x3 pares ordenados
	assert.Len(t, pairs, 12)

	for _, pair := range pairs {
		assert.False(t, pair[0].IsOriginal())
		assert.False(t, pair[1].IsOriginal())
		assert.NotEqual(t, pair[0], pair[1])
	}
}

func TestWarmupAllRates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conv := convmocks.NewMockConverter(ctrl)
	conv.EXPECT().
		Convert(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(decimal.NewFromFloat(1.1), nil).
		Times(24) // 12 pares x 2 dias

	service := NewRatesWarmupService(conv, newWarmupConfig(2))
	service.warmupAllRates(context.Background())

	status := service.GetStatus()
	startedAt, ok := status["last_warmup_started_at"].(time.Time)
	require.True(t, ok)
	assert.False(t, startedAt.IsZero())

	completedAt, ok := status["last_warmup_completed_at"].(time.Time)
	require.True(t, ok)
	assert.False(t, completedAt.IsZero())
}

func TestWarmupToleraFalhasDoProvedor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conv := convmocks.NewMockConverter(ctrl)
	conv.EXPECT().
		Convert(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(decimal.Zero, assert.AnError).
		Times(12)

	service := NewRatesWarmupService(conv, newWarmupConfig(1))

	// Falhas individuais não interrompem o aquecimento
	service.warmupAllRates(context.Background())

	status := service.GetStatus()
	completedAt, ok := status["last_warmup_completed_at"].(time.Time)
	require.True(t, ok)
	assert.False(t, completedAt.IsZero())
}

func TestGetStatusDuranteAquecimento(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conv := convmocks.NewMockConverter(ctrl)
	conv.EXPECT().
		Convert(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(decimal.NewFromFloat(1.1), nil).
		Times(12)

	service := NewRatesWarmupService(conv, newWarmupConfig(1))

	// Consultas de status concorrentes com a goroutine de aquecimento não
	// podem disputar os carimbos de tempo
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			service.GetStatus()
		}
	}()

	service.warmupAllRates(context.Background())
	<-done

	status := service.GetStatus()
	completedAt, ok := status["last_warmup_completed_at"].(time.Time)
	require.True(t, ok)
	assert.False(t, completedAt.IsZero())
}
