package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vendalytics/store-analytics-api/infrastructure/database/postgres"
	"github.com/vendalytics/store-analytics-api/internal/domain"
)

const customersTable = "customers"

// CustomerAnalyticsRepository emite as consultas de aquisição de clientes.
// "Novo cliente" é definido pelo primeiro pedido registrado, não pela data
// de cadastro: clientes sem pedido nunca entram na série.
type CustomerAnalyticsRepository interface {
	// CountNewCustomers conta clientes cujo primeiro pedido cai no período
	CountNewCustomers(ctx context.Context, dateRange *domain.DateRange) (int, error)

	// CountActiveCustomers conta a base inteira de clientes não removidos
	CountActiveCustomers(ctx context.Context) (int, error)

	// GetFirstOrderSeries retorna uma linha por dia com a contagem de primeiros pedidos
	GetFirstOrderSeries(ctx context.Context, dateRange *domain.DateRange) ([]*domain.DailyCountRow, error)
}

type customerAnalyticsRepository struct {
	conn *postgres.Connection
}

func NewCustomerAnalyticsRepository(conn *postgres.Connection) CustomerAnalyticsRepository {
	return &customerAnalyticsRepository{
		conn: conn,
	}
}

// firstOrdersSelect monta a subconsulta (cliente, data do primeiro pedido).
// Pedidos sem cliente associado (guest checkout) ficam de fora.
func firstOrdersSelect() squirrel.SelectBuilder {
	return squirrel.
		Select(
			"customer_id",
			"MIN(created_at) AS first_order_at",
		).
		From("orders").
		Where("customer_id IS NOT NULL").
		GroupBy("customer_id")
}

func (r *customerAnalyticsRepository) CountNewCustomers(
	ctx context.Context,
	dateRange *domain.DateRange,
) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(customer_id)").
		FromSelect(firstOrdersSelect(), "first_orders").
		Where(squirrel.GtOrEq{"first_order_at": dateRange.From}).
		Where(squirrel.LtOrEq{"first_order_at": dateRange.To}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar novos clientes: %w", err)
	}

	return count, nil
}

func (r *customerAnalyticsRepository) CountActiveCustomers(ctx context.Context) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(id)").
		From(customersTable).
		Where("deleted_at IS NULL").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar a base de clientes: %w", err)
	}

	return count, nil
}

func (r *customerAnalyticsRepository) GetFirstOrderSeries(
	ctx context.Context,
	dateRange *domain.DateRange,
) ([]*domain.DailyCountRow, error) {
	// O truncamento acontece já em UTC para alinhar os baldes diários com
	// os limites do período resolvido
	query, args, err := squirrel.
		Select(
			"date_trunc('day', first_order_at AT TIME ZONE 'UTC') AS day",
			"COUNT(customer_id) AS new_customers",
		).
		FromSelect(firstOrdersSelect(), "first_orders").
		Where(squirrel.GtOrEq{"first_order_at": dateRange.From}).
		Where(squirrel.LtOrEq{"first_order_at": dateRange.To}).
		GroupBy("day").
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

	result := make([]*domain.DailyCountRow, 0)
	for rows.Next() {
		row := &domain.DailyCountRow{}
		var day time.Time

		if err := rows.Scan(&day, &row.Count); err != nil {
			return nil, fmt.Errorf("erro ao escanear linha de novos clientes: %w", err)
		}

		row.Day = day.UTC()
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return result, nil
}
