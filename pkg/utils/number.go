package utils

import "github.com/shopspring/decimal"

// RoundMoney arredonda um valor monetário para duas casas decimais.
// Usado apenas na borda de apresentação: a aritmética interna preserva
// a precisão completa.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// DecimalPtr retorna um ponteiro para o valor, útil para campos monetários opcionais
func DecimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
