package converting

import (
	"errors"
	"fmt"

	"github.com/vendalytics/store-analytics-api/internal/domain"
)

// Erros específicos para o contexto de conversão de moedas
var (
	// ErrNoRateForDate indica que o provedor não tem dados para a data solicitada
	// (dispara a tentativa única contra a última taxa conhecida)
	ErrNoRateForDate = errors.New("sem taxa de câmbio para a data solicitada")

	// ErrConversionUnavailable indica que nenhuma taxa pôde ser resolvida
	// (provedor fora do ar ou sem dados mesmo no fallback)
	ErrConversionUnavailable = errors.New("conversão de moeda indisponível")

	// ErrInvalidRate indica que o provedor devolveu uma taxa inválida (zero ou negativa)
	ErrInvalidRate = errors.New("taxa de câmbio inválida recebida do provedor")
)

// ConversionError carrega o par de moedas e a data efetiva que falharam
type ConversionError struct {
	Err  error
	From domain.CurrencyCode
	To   domain.CurrencyCode
	Date string
}

// Error implementa a interface error
func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: %s->%s em %s", e.Err.Error(), e.From, e.To, e.Date)
}

// Unwrap retorna o erro subjacente
func (e *ConversionError) Unwrap() error {
	return e.Err
}

func newConversionError(err error, from, to domain.CurrencyCode, date string) *ConversionError {
	return &ConversionError{Err: err, From: from, To: to, Date: date}
}
