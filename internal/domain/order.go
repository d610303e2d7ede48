package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRecord é um item da listagem paginada de pedidos. Os campos monetários
// originais nunca são sobrescritos: a conversão é aditiva, via Converted.
type OrderRecord struct {
	ID                 string            `json:"id"`
	DisplayID          *int64            `json:"display_id"`
	CreatedAt          time.Time         `json:"created_at"`
	CountryCode        *string           `json:"country_code"`
	Currency           *CurrencyCode     `json:"currency_code"`
	Subtotal           *decimal.Decimal  `json:"subtotal"`
	TaxTotal           *decimal.Decimal  `json:"tax_total"`
	Total              *decimal.Decimal  `json:"total"`
	GatewayFee         *decimal.Decimal  `json:"gateway_fee"`
	GatewayFeeCurrency *CurrencyCode     `json:"gateway_fee_currency"`
	Converted          *ConvertedAmounts `json:"converted,omitempty"`
}

// ConvertedAmounts carrega os mesmos campos monetários do pedido expressos na
// moeda-alvo. Um campo nulo indica que a conversão daquele valor específico
// falhou (política de falha parcial, não tudo-ou-nada).
type ConvertedAmounts struct {
	Currency   CurrencyCode     `json:"currency"`
	Subtotal   *decimal.Decimal `json:"subtotal"`
	TaxTotal   *decimal.Decimal `json:"tax_total"`
	Total      *decimal.Decimal `json:"total"`
	GatewayFee *decimal.Decimal `json:"gateway_fee"`
}
