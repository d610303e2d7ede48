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

func newCustomersTestService(repo *repomocks.MockCustomerAnalyticsRepository) *service {
	log.SetupTestLogger()

	return &service{
		customers: repo,
		now: func() time.Time {
			return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
		},
	}
}

func customersQuery() *CustomersAnalyticsQuery {
	return &CustomersAnalyticsQuery{
		Preset: domain.PresetCustom,
		From:   "2024-03-01",
		To:     "2024-03-31",
	}
}

func TestCustomersAnalyticsKpisESerie(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockCustomerAnalyticsRepository(ctrl)
	repo.EXPECT().CountNewCustomers(gomock.Any(), gomock.Any()).Return(3, nil)
	repo.EXPECT().CountActiveCustomers(gomock.Any()).Return(42, nil)
	repo.EXPECT().GetFirstOrderSeries(gomock.Any(), gomock.Any()).Return(
		[]*domain.DailyCountRow{
			{Day: testDay1, Count: 2},
			{Day: testDay2, Count: 1},
		}, nil,
	)

	svc := newCustomersTestService(repo)

	response, err := svc.CustomersAnalytics(context.Background(), customersQuery())
	require.NoError(t, err)

	assert.Equal(t, 3, response.Kpis.NewCount)
	assert.Equal(t, 42, response.Kpis.TotalCount)

	require.Len(t, response.Series, 2)
	assert.Equal(t, domain.CountPoint{Date: "2024-03-01", Count: 2}, response.Series[0])
	assert.Equal(t, domain.CountPoint{Date: "2024-03-02", Count: 1}, response.Series[1])
}

func TestCustomersAnalyticsSemPrimeirosPedidos(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockCustomerAnalyticsRepository(ctrl)
	repo.EXPECT().CountNewCustomers(gomock.Any(), gomock.Any()).Return(0, nil)
	repo.EXPECT().CountActiveCustomers(gomock.Any()).Return(42, nil)
	repo.EXPECT().GetFirstOrderSeries(gomock.Any(), gomock.Any()).Return(
		[]*domain.DailyCountRow{}, nil,
	)

	svc := newCustomersTestService(repo)

	response, err := svc.CustomersAnalytics(context.Background(), customersQuery())
	require.NoError(t, err)

	// Base de clientes continua visível mesmo sem aquisição no período
	assert.Equal(t, 0, response.Kpis.NewCount)
	assert.Equal(t, 42, response.Kpis.TotalCount)
	assert.Empty(t, response.Series)
}

func TestCustomersAnalyticsErroDeConsulta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockCustomerAnalyticsRepository(ctrl)
	repo.EXPECT().CountNewCustomers(gomock.Any(), gomock.Any()).Return(0, assert.AnError)
	repo.EXPECT().CountActiveCustomers(gomock.Any()).Return(42, nil)
	repo.EXPECT().GetFirstOrderSeries(gomock.Any(), gomock.Any()).Return(nil, nil)

	svc := newCustomersTestService(repo)

	_, err := svc.CustomersAnalytics(context.Background(), customersQuery())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestCustomersAnalyticsPeriodoInvalido(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newCustomersTestService(repomocks.NewMockCustomerAnalyticsRepository(ctrl))

	_, err := svc.CustomersAnalytics(context.Background(), &CustomersAnalyticsQuery{
		Preset: domain.RangePreset("quinzena"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRangePreset)
}
