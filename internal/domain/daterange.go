package domain

import (
	"errors"
	"fmt"
	"time"
)

// Erros de resolução de período
var (
	ErrInvalidRangePreset = errors.New("preset de período não reconhecido")
	ErrMissingCustomBound = errors.New("preset 'custom' exige as datas 'from' e 'to'")
	ErrMalformedDate      = errors.New("data em formato inválido, use YYYY-MM-DD")
)

// RangePreset é um atalho nomeado para um período de datas calculado pelo servidor
type RangePreset string

const (
	PresetThisMonth   RangePreset = "this-month"
	PresetLastMonth   RangePreset = "last-month"
	PresetLast3Months RangePreset = "last-3-months"
	PresetCustom      RangePreset = "custom"
)

// DateRange é o período canônico já resolvido: limites alinhados ao início
// (00:00:00.000) e ao fim (23:59:59.999) do dia, sempre em UTC.
// Imutável após a resolução.
type DateRange struct {
	Preset RangePreset `json:"preset"`
	From   time.Time   `json:"from"`
	To     time.Time   `json:"to"`
}

// ResolveRange transforma um preset (e limites explícitos, no caso de custom)
// no período canônico. Toda a aritmética de meses usa exclusivamente UTC para
// evitar fronteiras de mês dependentes de fuso horário.
func ResolveRange(preset RangePreset, fromStr, toStr string, now time.Time) (*DateRange, error) {
	today := now.UTC()

	switch preset {
	case PresetThisMonth:
		from, to := monthRangeUTC(today, 0)
		return &DateRange{Preset: preset, From: from, To: to}, nil

	case PresetLastMonth:
		from, to := monthRangeUTC(today, -1)
		return &DateRange{Preset: preset, From: from, To: to}, nil

	case PresetLast3Months:
		from, _ := monthRangeUTC(today, -2)
		_, to := monthRangeUTC(today, 0)
		return &DateRange{Preset: preset, From: from, To: to}, nil

	case PresetCustom:
		if fromStr == "" || toStr == "" {
			return nil, ErrMissingCustomBound
		}

		from, err := parseDayUTC(fromStr)
		if err != nil {
			return nil, err
		}

		to, err := parseDayUTC(toStr)
		if err != nil {
			return nil, err
		}

		if from.After(to) {
			return nil, fmt.Errorf("%w: 'from' posterior a 'to'", ErrMalformedDate)
		}

		return &DateRange{
			Preset: preset,
			From:   StartOfDayUTC(from),
			To:     EndOfDayUTC(to),
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidRangePreset, preset)
	}
}

// Midpoint retorna o instante central do período, usado como data representativa
// para conversões agregadas por país
func (r *DateRange) Midpoint() time.Time {
	return r.From.Add(r.To.Sub(r.From) / 2)
}

// StartOfDayUTC alinha o instante ao início do dia (00:00:00.000) em UTC
func StartOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDayUTC alinha o instante ao fim do dia (23:59:59.999) em UTC
func EndOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 23, 59, 59, int(999*time.Millisecond), time.UTC)
}

// monthRangeUTC calcula o primeiro e o último dia do mês com o deslocamento
// informado. O dia zero do mês seguinte é normalizado pelo pacote time para o
// último dia do mês corrente.
func monthRangeUTC(today time.Time, offset int) (time.Time, time.Time) {
	first := time.Date(today.Year(), today.Month()+time.Month(offset), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(today.Year(), today.Month()+time.Month(offset)+1, 0, 0, 0, 0, 0, time.UTC)
	return StartOfDayUTC(first), EndOfDayUTC(last)
}

func parseDayUTC(s string) (time.Time, error) {
	day, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return day, nil
}
