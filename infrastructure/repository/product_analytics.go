package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vendalytics/store-analytics-api/infrastructure/database/postgres"
	"github.com/vendalytics/store-analytics-api/internal/domain"
)

const orderItemsTable = "order_items i"

// variantGroupColumns identifica uma variante pelos campos descritivos
// congelados no item do pedido
var variantGroupColumns = []string{
	"i.product_title",
	"i.product_handle",
	"i.variant_title",
	"i.thumbnail",
}

// ProductAnalyticsRepository emite as consultas de desempenho de produtos
// sobre os itens de pedido do período.
type ProductAnalyticsRepository interface {
	// GetTopVariants retorna as variantes mais vendidas do período, por quantidade
	GetTopVariants(ctx context.Context, dateRange *domain.DateRange, limit int) ([]*domain.TopVariant, error)

	// CountDistinctVariants conta as variantes distintas vendidas no período
	CountDistinctVariants(ctx context.Context, dateRange *domain.DateRange) (int, error)
}

type productAnalyticsRepository struct {
	conn *postgres.Connection
}

func NewProductAnalyticsRepository(conn *postgres.Connection) ProductAnalyticsRepository {
	return &productAnalyticsRepository{
		conn: conn,
	}
}

func (r *productAnalyticsRepository) GetTopVariants(
	ctx context.Context,
	dateRange *domain.DateRange,
	limit int,
) ([]*domain.TopVariant, error) {
	query, args, err := squirrel.
		Select(
			"i.product_title",
			"i.product_handle",
			"i.variant_title",
			"i.thumbnail",
			"SUM(i.quantity)::integer AS quantity",
		).
		From(orderItemsTable).
		Where(squirrel.GtOrEq{"i.created_at": dateRange.From}).
		Where(squirrel.LtOrEq{"i.created_at": dateRange.To}).
		GroupBy(variantGroupColumns...).
		OrderBy("quantity DESC").
		Limit(uint64(limit)).
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

	result := make([]*domain.TopVariant, 0)
	for rows.Next() {
		variant := &domain.TopVariant{}
		var handle, title, thumbnail sql.NullString

		if err := rows.Scan(&variant.ProductTitle, &handle, &title, &thumbnail, &variant.Quantity); err != nil {
			return nil, fmt.Errorf("erro ao escanear variante: %w", err)
		}

		if handle.Valid {
			variant.ProductHandle = &handle.String
		}
		if title.Valid {
			variant.VariantTitle = &title.String
		}
		if thumbnail.Valid {
			variant.Thumbnail = &thumbnail.String
		}

		result = append(result, variant)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return result, nil
}

func (r *productAnalyticsRepository) CountDistinctVariants(
	ctx context.Context,
	dateRange *domain.DateRange,
) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(DISTINCT (i.product_title, i.product_handle, i.variant_title))").
		From(orderItemsTable).
		Where(squirrel.GtOrEq{"i.created_at": dateRange.From}).
		Where(squirrel.LtOrEq{"i.created_at": dateRange.To}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar variantes: %w", err)
	}

	return count, nil
}
