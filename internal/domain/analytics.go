package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus é o estado de ciclo de vida de um pedido considerado nas agregações
type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusPending   OrderStatus = "pending"
)

// DailyCurrencyRow é uma linha bruta de agregação: uma por par (dia, moeda)
// observado no período. Nunca é mutada após a leitura do repositório.
type DailyCurrencyRow struct {
	Day         time.Time       `json:"day"`
	Currency    CurrencyCode    `json:"currency"`
	OrderCount  int             `json:"order_count"`
	SalesAmount decimal.Decimal `json:"sales_amount"`
}

// CountryCurrencyRow é uma linha bruta de receita/taxas agrupada por país e moeda.
// País e moeda podem ser nulos quando o pedido não tem endereço ou moeda registrada.
type CountryCurrencyRow struct {
	CountryCode *string         `json:"country_code"`
	Currency    *CurrencyCode   `json:"currency_code"`
	Amount      decimal.Decimal `json:"amount"`
	Fees        decimal.Decimal `json:"fees"`
}

// SeriesPoint é um ponto de série temporal do dashboard (um por dia com pedidos)
type SeriesPoint struct {
	Date  string          `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// Kpis são os indicadores principais do período
type Kpis struct {
	TotalOrders int             `json:"total_orders"`
	TotalSales  decimal.Decimal `json:"total_sales"`
}

// Series agrupa as séries temporais de pedidos e vendas
type Series struct {
	Orders []SeriesPoint `json:"orders"`
	Sales  []SeriesPoint `json:"sales"`
}

// CountryTotalsRow é uma linha do detalhamento por país já com o líquido derivado.
// Invariante: Net == Amount - Fees, sempre recalculado, nunca confiado da origem.
type CountryTotalsRow struct {
	CountryCode *string         `json:"country_code"`
	Currency    *CurrencyCode   `json:"currency_code"`
	Amount      decimal.Decimal `json:"amount"`
	Fees        decimal.Decimal `json:"fees"`
	Net         decimal.Decimal `json:"net"`
}

// MoneyTotals é um subtotal de valores monetários (montante, taxas e líquido)
type MoneyTotals struct {
	Amount decimal.Decimal `json:"amount"`
	Fees   decimal.Decimal `json:"fees"`
	Net    decimal.Decimal `json:"net"`
}

// CurrencyTotalsRow é um subtotal por moeda original, usado quando a resposta
// não está normalizada em uma única moeda
type CurrencyTotalsRow struct {
	Currency CurrencyCode    `json:"currency_code"`
	Amount   decimal.Decimal `json:"amount"`
	Fees     decimal.Decimal `json:"fees"`
	Net      decimal.Decimal `json:"net"`
}

// CountryTotals é o detalhamento por país. Totals só é preenchido quando
// Normalized é verdadeiro; caso contrário PerCurrencyTotals traz os subtotais
// por moeda original e Totals fica zerado.
type CountryTotals struct {
	Rows              []*CountryTotalsRow  `json:"rows"`
	Totals            MoneyTotals          `json:"totals"`
	PerCurrencyTotals []*CurrencyTotalsRow `json:"per_currency_totals,omitempty"`
	Normalized        bool                 `json:"normalized"`
}

// OrdersPage é uma página de pedidos retornada pelo repositório
type OrdersPage struct {
	Data  []*OrderRecord
	Count int
}

// OrdersPageResponse é a página de pedidos no envelope de resposta
type OrdersPageResponse struct {
	Count  int            `json:"count"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
	Data   []*OrderRecord `json:"data"`
}

// OrdersAnalyticsResponse é o envelope completo retornado pelo endpoint de
// analytics de pedidos. Construído a cada requisição, nunca persistido.
// Warnings está sempre presente (possivelmente vazio) para que a UI consiga
// distinguir "zero" de "indisponível".
type OrdersAnalyticsResponse struct {
	Range         DateRange          `json:"range"`
	Currency      CurrencyCode       `json:"currency"`
	Kpis          Kpis               `json:"kpis"`
	Series        Series             `json:"series"`
	Orders        OrdersPageResponse `json:"orders"`
	CountryTotals *CountryTotals     `json:"country_totals,omitempty"`
	Warnings      []string           `json:"warnings"`
}
