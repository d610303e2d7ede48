package analyzing

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendalytics/store-analytics-api/internal/domain"
	"github.com/vendalytics/store-analytics-api/pkg/log"
	"github.com/vendalytics/store-analytics-api/pkg/utils"
)

const warnCountryMixedCurrencies = "pedidos em múltiplas moedas no período; totais por país exibidos por moeda original"

// currencyUnknown agrupa linhas sem moeda registrada nos subtotais por moeda
const currencyUnknown domain.CurrencyCode = "UNKNOWN"

// convertedCountryRow é o resultado imutável da conversão de uma linha por país
type convertedCountryRow struct {
	amount decimal.Decimal
	fees   decimal.Decimal
	err    error
}

// aggregateCountryTotals monta o detalhamento por país. Quando há moeda-alvo,
// montante e taxas de cada linha são convertidos pela taxa do ponto central do
// período; se alguma conversão falhar o detalhamento inteiro recua para as
// moedas originais, com aviso.
func (s *service) aggregateCountryTotals(
	ctx context.Context,
	rows []*domain.CountryCurrencyRow,
	target domain.CurrencyCode,
	midpoint time.Time,
) (*domain.CountryTotals, []string) {
	warnings := make([]string, 0)

	currencies := make(map[domain.CurrencyCode]struct{})
	for _, row := range rows {
		if row.Currency != nil {
			currencies[*row.Currency] = struct{}{}
		}
	}

	converting := !target.IsOriginal()

	var converted []convertedCountryRow
	if converting && len(rows) > 0 {
		converted = s.convertCountryRows(ctx, rows, target, midpoint)

		for _, c := range converted {
			if c.err != nil {
				log.ForContext(ctx).WithError(c.err).WithFields(log.Fields{
					"currency": target,
				}).Warn("falha ao converter totais por país; exibindo moedas originais")

				warning := fmt.Sprintf("serviço de câmbio indisponível para %s; totais por país exibidos nas moedas originais", target)
				warnings = append(warnings, warning)

				converting = false
				converted = nil
				break
			}
		}
	}

	outRows := make([]*domain.CountryTotalsRow, 0, len(rows))
	for i, row := range rows {
		amount, fees := row.Amount, row.Fees
		currency := row.Currency
		if converting {
			amount, fees = converted[i].amount, converted[i].fees
			currency = &target
		}

		amount = utils.RoundMoney(amount)
		fees = utils.RoundMoney(fees)

		// O líquido é sempre derivado dos valores exibidos, nunca lido da origem
		outRows = append(outRows, &domain.CountryTotalsRow{
			CountryCode: row.CountryCode,
			Currency:    currency,
			Amount:      amount,
			Fees:        fees,
			Net:         amount.Sub(fees),
		})
	}

	sort.SliceStable(outRows, func(i, j int) bool {
		return outRows[i].Amount.GreaterThan(outRows[j].Amount)
	})

	totals := &domain.CountryTotals{
		Rows:       outRows,
		Normalized: converting || len(currencies) <= 1,
	}

	if totals.Normalized {
		for _, row := range outRows {
			totals.Totals.Amount = totals.Totals.Amount.Add(row.Amount)
			totals.Totals.Fees = totals.Totals.Fees.Add(row.Fees)
		}
		totals.Totals.Net = totals.Totals.Amount.Sub(totals.Totals.Fees)

		return totals, warnings
	}

	totals.PerCurrencyTotals = perCurrencyTotals(outRows)
	warnings = append(warnings, warnCountryMixedCurrencies)

	return totals, warnings
}

func (s *service) convertCountryRows(
	ctx context.Context,
	rows []*domain.CountryCurrencyRow,
	target domain.CurrencyCode,
	midpoint time.Time,
) []convertedCountryRow {
	converted := make([]convertedCountryRow, len(rows))

	var wg sync.WaitGroup
	for i, row := range rows {
		wg.Add(1)

		go func(i int, row *domain.CountryCurrencyRow) {
			defer wg.Done()

			if row.Currency == nil {
				converted[i] = convertedCountryRow{
					err: fmt.Errorf("linha por país sem moeda registrada"),
				}
				return
			}

			amount, err := s.converter.Convert(ctx, row.Amount, *row.Currency, target, midpoint)
			if err != nil {
				converted[i] = convertedCountryRow{err: err}
				return
			}

			fees, err := s.converter.Convert(ctx, row.Fees, *row.Currency, target, midpoint)
			converted[i] = convertedCountryRow{amount: amount, fees: fees, err: err}
		}(i, row)
	}
	wg.Wait()

	return converted
}

func perCurrencyTotals(rows []*domain.CountryTotalsRow) []*domain.CurrencyTotalsRow {
	grouped := make(map[domain.CurrencyCode]*domain.CurrencyTotalsRow)
	for _, row := range rows {
		currency := currencyUnknown
		if row.Currency != nil {
			currency = *row.Currency
		}

		entry, ok := grouped[currency]
		if !ok {
			entry = &domain.CurrencyTotalsRow{Currency: currency}
			grouped[currency] = entry
		}

		entry.Amount = entry.Amount.Add(row.Amount)
		entry.Fees = entry.Fees.Add(row.Fees)
		entry.Net = entry.Amount.Sub(entry.Fees)
	}

	out := make([]*domain.CurrencyTotalsRow, 0, len(grouped))
	for _, entry := range grouped {
		out = append(out, entry)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Currency < out[j].Currency
	})

	return out
}
