package analyzing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendalytics/store-analytics-api/internal/domain"
	"github.com/vendalytics/store-analytics-api/pkg/log"
	"github.com/vendalytics/store-analytics-api/pkg/utils"
)

const (
	warnMixedCurrencies     = "pedidos em múltiplas moedas no período; informe 'currency' para normalizar os totais"
	warnRowsWithoutCurrency = "pedidos sem moeda registrada não entram no total de vendas normalizado"
)

// convertedDailyRow é o resultado imutável da conversão de uma linha diária.
// Cada goroutine escreve apenas na sua posição do slice; a consolidação é
// sequencial, sem acumulador compartilhado.
type convertedDailyRow struct {
	day   time.Time
	sales decimal.Decimal
	err   error
}

// aggregateKpis consolida as linhas diárias em KPIs e séries temporais.
// A série de pedidos é sempre construída, por ser independente de moeda.
// A série de vendas e o total só aparecem quando todas as linhas podem ser
// expressas em uma única moeda.
func (s *service) aggregateKpis(
	ctx context.Context,
	rows []*domain.DailyCurrencyRow,
	target domain.CurrencyCode,
) (domain.Kpis, domain.Series, []string) {
	kpis := domain.Kpis{TotalSales: decimal.Zero}
	series := domain.Series{
		Orders: make([]domain.SeriesPoint, 0),
		Sales:  make([]domain.SeriesPoint, 0),
	}
	warnings := make([]string, 0)

	currencies := make(map[domain.CurrencyCode]struct{})

	// As linhas chegam ordenadas por dia; linhas do mesmo dia em moedas
	// diferentes são adjacentes e colapsam no mesmo ponto da série
	for _, row := range rows {
		kpis.TotalOrders += row.OrderCount

		if row.Currency != "" {
			currencies[row.Currency] = struct{}{}
		}

		date := row.Day.Format(time.DateOnly)
		if n := len(series.Orders); n > 0 && series.Orders[n-1].Date == date {
			series.Orders[n-1].Value = series.Orders[n-1].Value.Add(decimal.NewFromInt(int64(row.OrderCount)))
		} else {
			series.Orders = append(series.Orders, domain.SeriesPoint{
				Date:  date,
				Value: decimal.NewFromInt(int64(row.OrderCount)),
			})
		}
	}

	if len(rows) == 0 {
		return kpis, series, warnings
	}

	if target.IsOriginal() {
		// Somar moedas distintas produziria um número sem significado:
		// o total é omitido e um aviso explica a ausência
		if len(currencies) > 1 {
			log.ForContext(ctx).WithFields(log.Fields{
				"currencies": len(currencies),
			}).Warn("período com múltiplas moedas e sem moeda-alvo; total de vendas omitido")

			return kpis, series, append(warnings, warnMixedCurrencies)
		}

		total := decimal.Zero
		for _, row := range rows {
			total = total.Add(row.SalesAmount)
			series.Sales = appendSalesPoint(series.Sales, row.Day, row.SalesAmount)
		}
		kpis.TotalSales = utils.RoundMoney(total)
		roundSalesSeries(series.Sales)

		return kpis, series, warnings
	}

	// Conversões independentes em paralelo, consolidação sequencial.
	// Linhas sem moeda registrada não têm conversão possível: contribuem
	// zero, sem derrubar o total das demais.
	converted := make([]convertedDailyRow, len(rows))
	skipped := 0

	var wg sync.WaitGroup
	for i, row := range rows {
		if row.Currency == "" {
			converted[i] = convertedDailyRow{day: row.Day, sales: decimal.Zero}
			skipped++
			continue
		}

		wg.Add(1)

		go func(i int, row *domain.DailyCurrencyRow) {
			defer wg.Done()

			sales, err := s.converter.Convert(ctx, row.SalesAmount, row.Currency, target, row.Day)
			converted[i] = convertedDailyRow{day: row.Day, sales: sales, err: err}
		}(i, row)
	}
	wg.Wait()

	if skipped > 0 {
		log.ForContext(ctx).WithFields(log.Fields{
			"rows": skipped,
		}).Warn("linhas diárias sem moeda ignoradas na normalização")

		warnings = append(warnings, warnRowsWithoutCurrency)
	}

	total := decimal.Zero
	for _, row := range converted {
		if row.err != nil {
			log.ForContext(ctx).WithError(row.err).WithFields(log.Fields{
				"currency": target,
			}).Warn("falha ao converter vendas diárias; total de vendas omitido")

			series.Sales = series.Sales[:0]

			warning := fmt.Sprintf("serviço de câmbio indisponível para %s; total de vendas omitido", target)
			return kpis, series, append(warnings, warning)
		}

		total = total.Add(row.sales)
		series.Sales = appendSalesPoint(series.Sales, row.day, row.sales)
	}
	kpis.TotalSales = utils.RoundMoney(total)
	roundSalesSeries(series.Sales)

	return kpis, series, warnings
}

func appendSalesPoint(points []domain.SeriesPoint, day time.Time, amount decimal.Decimal) []domain.SeriesPoint {
	date := day.Format(time.DateOnly)
	if n := len(points); n > 0 && points[n-1].Date == date {
		points[n-1].Value = points[n-1].Value.Add(amount)
		return points
	}

	return append(points, domain.SeriesPoint{Date: date, Value: amount})
}

func roundSalesSeries(points []domain.SeriesPoint) {
	for i := range points {
		points[i].Value = utils.RoundMoney(points[i].Value)
	}
}
