package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCurrency indica que a moeda informada não está na lista de moedas suportadas
var ErrInvalidCurrency = errors.New("moeda não suportada")

// CurrencyCode é um código de moeda no padrão ISO-4217 (sempre em maiúsculas),
// ou o sentinela CurrencyOriginal indicando "manter a moeda nativa de cada registro"
type CurrencyCode string

const (
	// CurrencyOriginal indica que nenhuma conversão deve ser aplicada
	CurrencyOriginal CurrencyCode = "original"

	CurrencyUSD CurrencyCode = "USD"
	CurrencyAED CurrencyCode = "AED"
	CurrencyKWD CurrencyCode = "KWD"
	CurrencyGBP CurrencyCode = "GBP"
)

// AllowedCurrencies é a lista fechada de moedas-alvo aceitas pela API
var AllowedCurrencies = []CurrencyCode{
	CurrencyOriginal,
	CurrencyUSD,
	CurrencyAED,
	CurrencyKWD,
	CurrencyGBP,
}

// ParseCurrency valida e normaliza o parâmetro de moeda recebido na requisição.
// Valor vazio assume "original" (sem conversão).
func ParseCurrency(raw string) (CurrencyCode, error) {
	if raw == "" {
		return CurrencyOriginal, nil
	}

	if strings.EqualFold(raw, string(CurrencyOriginal)) {
		return CurrencyOriginal, nil
	}

	candidate := CurrencyCode(strings.ToUpper(strings.TrimSpace(raw)))
	for _, allowed := range AllowedCurrencies {
		if candidate == allowed {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, raw)
}

// IsOriginal retorna verdadeiro quando a moeda indica "sem conversão"
func (c CurrencyCode) IsOriginal() bool {
	return c == CurrencyOriginal
}
