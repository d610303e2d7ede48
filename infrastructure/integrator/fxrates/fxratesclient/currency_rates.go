package fxratesclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vendalytics/store-analytics-api/internal/domain"
)

// ErrRatesNotFound indica que o provedor não publicou snapshot para a data solicitada
var ErrRatesNotFound = errors.New("snapshot de taxas não encontrado para a data")

// CurrencyRates é o snapshot de taxas de uma moeda-base em uma data:
// Rates[to] é o fator multiplicativo de base para to.
type CurrencyRates struct {
	Date  string
	Base  domain.CurrencyCode
	Rates map[domain.CurrencyCode]decimal.Decimal
}

func (c *FxRatesClient) GetRates(
	ctx context.Context,
	base domain.CurrencyCode,
	date string,
) (*CurrencyRates, error) {
	baseKey := strings.ToLower(string(base))

	// O snapshot é versionado pela data na própria URL do pacote:
	// <url>@<data>/v1/currencies/<moeda>.json
	endpoint := fmt.Sprintf("%s@%s/v1/currencies/%s.json", c.config.URL, date, baseKey)
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL do provedor: %w", err)
	}

	// Criar a requisição HTTP.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	// Executar a requisição.
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	// O provedor responde 404 para datas sem snapshot publicado
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrRatesNotFound, date)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requisição falhou com status: %s", resp.Status)
	}

	// O bloco de taxas vem sob uma chave dinâmica com o código da moeda-base
	var payload map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	rates := &CurrencyRates{
		Base:  base,
		Rates: make(map[domain.CurrencyCode]decimal.Decimal),
	}

	if raw, ok := payload["date"]; ok {
		if err := json.Unmarshal(raw, &rates.Date); err != nil {
			return nil, fmt.Errorf("erro ao decodificar a data do snapshot: %w", err)
		}
	}

	raw, ok := payload[baseKey]
	if !ok {
		return nil, fmt.Errorf("resposta sem o bloco de taxas da moeda %s", base)
	}

	var table map[string]decimal.Decimal
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("erro ao decodificar as taxas: %w", err)
	}

	for code, rate := range table {
		rates.Rates[domain.CurrencyCode(strings.ToUpper(code))] = rate
	}

	return rates, nil
}
