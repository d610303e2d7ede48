package analyzing

import (
	"context"

	"github.com/vendalytics/store-analytics-api/internal/domain"
)

// Analyzer monta os painéis de analytics da loja: pedidos (KPIs, séries,
// listagem paginada e detalhamento por país), aquisição de clientes e
// desempenho de produtos.
type Analyzer interface {
	// OrdersAnalytics resolve o período, dispara as agregações em paralelo e
	// monta o envelope completo da resposta
	OrdersAnalytics(ctx context.Context, query *OrdersAnalyticsQuery) (*domain.OrdersAnalyticsResponse, error)

	// CustomersAnalytics retorna os KPIs de clientes e a série de novos
	// clientes por dia de primeiro pedido
	CustomersAnalytics(ctx context.Context, query *CustomersAnalyticsQuery) (*domain.CustomersAnalyticsResponse, error)

	// ProductsAnalytics retorna as variantes mais vendidas do período
	ProductsAnalytics(ctx context.Context, query *ProductsAnalyticsQuery) (*domain.ProductsAnalyticsResponse, error)
}

// OrdersAnalyticsQuery são os parâmetros já validados da requisição de analytics.
// From e To só são considerados quando o preset é "custom".
type OrdersAnalyticsQuery struct {
	Preset         domain.RangePreset
	From           string
	To             string
	Currency       domain.CurrencyCode
	Limit          int
	Offset         int
	CountrySummary bool
	Statuses       []domain.OrderStatus
}

// CustomersAnalyticsQuery são os parâmetros da requisição de analytics de clientes
type CustomersAnalyticsQuery struct {
	Preset domain.RangePreset
	From   string
	To     string
}

// ProductsAnalyticsQuery são os parâmetros da requisição de analytics de produtos
type ProductsAnalyticsQuery struct {
	Preset domain.RangePreset
	From   string
	To     string
	Limit  int
}
