package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/vendalytics/store-analytics-api/infrastructure/database/postgres"
	"github.com/vendalytics/store-analytics-api/internal/domain"
)

const (
	ordersTable         = "orders o"
	orderAddressesTable = "order_addresses"
)

// OrderAnalyticsRepository emite as consultas agrupadas contra a base de pedidos.
// As linhas retornadas são brutas: a normalização de moeda e as políticas de
// agregação pertencem aos casos de uso, nunca ao repositório.
type OrderAnalyticsRepository interface {
	// GetDailyCurrencyRows retorna uma linha por par (dia, moeda) observado no período
	GetDailyCurrencyRows(ctx context.Context, dateRange *domain.DateRange, statuses []domain.OrderStatus) ([]*domain.DailyCurrencyRow, error)

	// GetCountryCurrencyRows retorna receita e taxas agrupadas por país e moeda
	GetCountryCurrencyRows(ctx context.Context, dateRange *domain.DateRange, statuses []domain.OrderStatus) ([]*domain.CountryCurrencyRow, error)

	// GetOrdersPage retorna uma página de pedidos do período, mais recentes primeiro
	GetOrdersPage(ctx context.Context, dateRange *domain.DateRange, statuses []domain.OrderStatus, limit, offset int) (*domain.OrdersPage, error)
}

type orderAnalyticsRepository struct {
	conn *postgres.Connection
}

func NewOrderAnalyticsRepository(conn *postgres.Connection) OrderAnalyticsRepository {
	return &orderAnalyticsRepository{
		conn: conn,
	}
}

func (r *orderAnalyticsRepository) GetDailyCurrencyRows(
	ctx context.Context,
	dateRange *domain.DateRange,
	statuses []domain.OrderStatus,
) ([]*domain.DailyCurrencyRow, error) {
	query, args, err := squirrel.
		Select(
			// Truncar já em UTC: date_trunc sobre timestamptz usaria o fuso
			// da sessão e desalinharia os baldes diários dos limites do período
			"date_trunc('day', o.created_at AT TIME ZONE 'UTC') AS day",
			"UPPER(o.currency_code) AS currency",
			"COUNT(o.id) AS order_count",
			"SUM(COALESCE(o.total, 0)) AS sales_amount",
		).
		From(ordersTable).
		Where(squirrel.Eq{"o.status": statusStrings(statuses)}).
		Where(squirrel.GtOrEq{"o.created_at": dateRange.From}).
		Where(squirrel.LtOrEq{"o.created_at": dateRange.To}).
		GroupBy("day", "currency").
		OrderBy("day ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	result := make([]*domain.DailyCurrencyRow, 0)
	for rows.Next() {
		row := &domain.DailyCurrencyRow{}
		var day time.Time
		var currency sql.NullString
		var sales decimal.NullDecimal

		if err := rows.Scan(&day, &currency, &row.OrderCount, &sales); err != nil {
			return nil, fmt.Errorf("erro ao escanear linha diária: %w", err)
		}

		row.Day = day.UTC()
		if currency.Valid {
			row.Currency = domain.CurrencyCode(currency.String)
		}
		if sales.Valid {
			row.SalesAmount = sales.Decimal
		} else {
			row.SalesAmount = decimal.Zero
		}

		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return result, nil
}

func (r *orderAnalyticsRepository) GetCountryCurrencyRows(
	ctx context.Context,
	dateRange *domain.DateRange,
	statuses []domain.OrderStatus,
) ([]*domain.CountryCurrencyRow, error) {
	// O país vem do endereço de entrega, com fallback para o de cobrança
	query, args, err := squirrel.
		Select(
			"COALESCE(sa.country_code, ba.country_code) AS country_code",
			"UPPER(o.currency_code) AS currency",
			"SUM(COALESCE(o.total, 0)) AS amount",
			"SUM(COALESCE((o.metadata ->> 'gateway_fees')::numeric, 0)) AS fees",
		).
		From(ordersTable).
		LeftJoin(orderAddressesTable+" sa ON sa.id = o.shipping_address_id").
		LeftJoin(orderAddressesTable+" ba ON ba.id = o.billing_address_id").
		Where(squirrel.Eq{"o.status": statusStrings(statuses)}).
		Where(squirrel.GtOrEq{"o.created_at": dateRange.From}).
		Where(squirrel.LtOrEq{"o.created_at": dateRange.To}).
		GroupBy("COALESCE(sa.country_code, ba.country_code)", "currency").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	result := make([]*domain.CountryCurrencyRow, 0)
	for rows.Next() {
		row := &domain.CountryCurrencyRow{}
		var country, currency sql.NullString
		var amount, fees decimal.NullDecimal

		if err := rows.Scan(&country, &currency, &amount, &fees); err != nil {
			return nil, fmt.Errorf("erro ao escanear linha por país: %w", err)
		}

		if country.Valid {
			row.CountryCode = &country.String
		}
		if currency.Valid {
			code := domain.CurrencyCode(currency.String)
			row.Currency = &code
		}
		row.Amount = nullDecimalOrZero(amount)
		row.Fees = nullDecimalOrZero(fees)

		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return result, nil
}

func (r *orderAnalyticsRepository) GetOrdersPage(
	ctx context.Context,
	dateRange *domain.DateRange,
	statuses []domain.OrderStatus,
	limit, offset int,
) (*domain.OrdersPage, error) {
	page := &domain.OrdersPage{Data: make([]*domain.OrderRecord, 0)}

	countQuery, countArgs, err := squirrel.
		Select("COUNT(o.id)").
		From(ordersTable).
		Where(squirrel.Eq{"o.status": statusStrings(statuses)}).
		Where(squirrel.GtOrEq{"o.created_at": dateRange.From}).
		Where(squirrel.LtOrEq{"o.created_at": dateRange.To}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query de contagem: %w", err)
	}

	if err := r.conn.QueryRowContext(ctx, countQuery, countArgs...).Scan(&page.Count); err != nil {
		return nil, fmt.Errorf("erro ao contar pedidos: %w", err)
	}

	query, args, err := squirrel.
		Select(
			"o.id",
			"o.display_id",
			"o.created_at",
			"COALESCE(sa.country_code, ba.country_code) AS country_code",
			"UPPER(o.currency_code) AS currency",
			"o.subtotal",
			"o.tax_total",
			"o.total",
			"(o.metadata ->> 'gateway_fees')::numeric AS gateway_fee",
			"UPPER(o.metadata ->> 'gateway_fees_currency') AS gateway_fee_currency",
		).
		From(ordersTable).
		LeftJoin(orderAddressesTable + " sa ON sa.id = o.shipping_address_id").
		LeftJoin(orderAddressesTable + " ba ON ba.id = o.billing_address_id").
		Where(squirrel.Eq{"o.status": statusStrings(statuses)}).
		Where(squirrel.GtOrEq{"o.created_at": dateRange.From}).
		Where(squirrel.LtOrEq{"o.created_at": dateRange.To}).
		OrderBy("o.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		order, err := scanOrderRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear pedido: %w", err)
		}
		page.Data = append(page.Data, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return page, nil
}

func scanOrderRecord(rows *sql.Rows) (*domain.OrderRecord, error) {
	order := &domain.OrderRecord{}
	var displayID sql.NullInt64
	var createdAt time.Time
	var country, currency, feeCurrency sql.NullString
	var subtotal, taxTotal, total, gatewayFee decimal.NullDecimal

	err := rows.Scan(
		&order.ID,
		&displayID,
		&createdAt,
		&country,
		&currency,
		&subtotal,
		&taxTotal,
		&total,
		&gatewayFee,
		&feeCurrency,
	)
	if err != nil {
		return nil, err
	}

	order.CreatedAt = createdAt.UTC()
	if displayID.Valid {
		order.DisplayID = &displayID.Int64
	}
	if country.Valid {
		order.CountryCode = &country.String
	}
	if currency.Valid {
		code := domain.CurrencyCode(currency.String)
		order.Currency = &code
	}
	if feeCurrency.Valid {
		code := domain.CurrencyCode(feeCurrency.String)
		order.GatewayFeeCurrency = &code
	}
	order.Subtotal = nullDecimalPtr(subtotal)
	order.TaxTotal = nullDecimalPtr(taxTotal)
	order.Total = nullDecimalPtr(total)
	order.GatewayFee = nullDecimalPtr(gatewayFee)

	return order, nil
}

func statusStrings(statuses []domain.OrderStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, status := range statuses {
		out = append(out, string(status))
	}
	return out
}

func nullDecimalOrZero(d decimal.NullDecimal) decimal.Decimal {
	if d.Valid {
		return d.Decimal
	}
	return decimal.Zero
}

func nullDecimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	value := d.Decimal
	return &value
}
