package analyzing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	repomocks "github.com/vendalytics/store-analytics-api/infrastructure/repository/mocks"
	"github.com/vendalytics/store-analytics-api/internal/domain"
	"github.com/vendalytics/store-analytics-api/pkg/log"
)

func newProductsTestService(repo *repomocks.MockProductAnalyticsRepository) *service {
	log.SetupTestLogger()

	return &service{
		products: repo,
		now: func() time.Time {
			return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
		},
	}
}

func TestProductsAnalyticsRankingDeVariantes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	variants := []*domain.TopVariant{
		{ProductTitle: "Camiseta Básica", ProductHandle: strPtr("camiseta-basica"), VariantTitle: strPtr("M / Preta"), Quantity: 7},
		{ProductTitle: "Fone Bluetooth", ProductHandle: strPtr("fone-bluetooth"), VariantTitle: strPtr("Branco"), Quantity: 4},
	}

	repo := repomocks.NewMockProductAnalyticsRepository(ctrl)
	repo.EXPECT().GetTopVariants(gomock.Any(), gomock.Any(), 10).Return(variants, nil)
	repo.EXPECT().CountDistinctVariants(gomock.Any(), gomock.Any()).Return(5, nil)

	svc := newProductsTestService(repo)

	response, err := svc.ProductsAnalytics(context.Background(), &ProductsAnalyticsQuery{
		Preset: domain.PresetCustom,
		From:   "2024-03-01",
		To:     "2024-03-31",
		Limit:  10,
	})
	require.NoError(t, err)

	// A ordem do repositório (quantidade decrescente) é preservada
	require.Len(t, response.TopVariants, 2)
	assert.Equal(t, "Camiseta Básica", response.TopVariants[0].ProductTitle)
	assert.Equal(t, 7, response.TopVariants[0].Quantity)
	assert.Equal(t, 5, response.TotalVariants)
}

func TestProductsAnalyticsErroDeConsulta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockProductAnalyticsRepository(ctrl)
	repo.EXPECT().GetTopVariants(gomock.Any(), gomock.Any(), 10).Return(nil, assert.AnError)
	repo.EXPECT().CountDistinctVariants(gomock.Any(), gomock.Any()).Return(0, nil)

	svc := newProductsTestService(repo)

	_, err := svc.ProductsAnalytics(context.Background(), &ProductsAnalyticsQuery{
		Preset: domain.PresetCustom,
		From:   "2024-03-01",
		To:     "2024-03-31",
		Limit:  10,
	})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestProductsAnalyticsPeriodoInvalido(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newProductsTestService(repomocks.NewMockProductAnalyticsRepository(ctrl))

	_, err := svc.ProductsAnalytics(context.Background(), &ProductsAnalyticsQuery{
		Preset: domain.RangePreset("quinzena"),
		Limit:  10,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRangePreset)
}
