package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRangePresets(t *testing.T) {
	// Meio de março num fuso adiantado: a aritmética deve ignorar o fuso local
	now := time.Date(2024, time.March, 15, 23, 30, 0, 0, time.FixedZone("UTC+4", 4*3600))

	tests := []struct {
		name     string
		preset   RangePreset
		wantFrom time.Time
		wantTo   time.Time
	}{
		{
			name:     "mês atual",
			preset:   PresetThisMonth,
			wantFrom: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2024, time.March, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC),
		},
		{
			name:     "mês anterior",
			preset:   PresetLastMonth,
			wantFrom: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2024, time.February, 29, 23, 59, 59, int(999*time.Millisecond), time.UTC),
		},
		{
			name:     "últimos três meses",
			preset:   PresetLast3Months,
			wantFrom: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2024, time.March, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveRange(tt.preset, "", "", now)
			require.NoError(t, err)

			assert.Equal(t, tt.preset, got.Preset)
			assert.True(t, got.From.Equal(tt.wantFrom), "from: esperado %s, obtido %s", tt.wantFrom, got.From)
			assert.True(t, got.To.Equal(tt.wantTo), "to: esperado %s, obtido %s", tt.wantTo, got.To)
		})
	}
}

func TestResolveRangeViradaDeAno(t *testing.T) {
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

	got, err := ResolveRange(PresetLast3Months, "", "", now)
	require.NoError(t, err)

	assert.True(t, got.From.Equal(time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2024, got.To.Year())
	assert.Equal(t, time.January, got.To.Month())
}

func TestResolveRangeCustom(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	got, err := ResolveRange(PresetCustom, "2024-02-10", "2024-02-20", now)
	require.NoError(t, err)

	assert.True(t, got.From.Equal(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, got.To.Equal(time.Date(2024, time.February, 20, 23, 59, 59, int(999*time.Millisecond), time.UTC)))
}

func TestResolveRangeErros(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		preset  RangePreset
		from    string
		to      string
		wantErr error
	}{
		{
			name:    "preset desconhecido",
			preset:  RangePreset("fortnight"),
			wantErr: ErrInvalidRangePreset,
		},
		{
			name:    "custom sem limites",
			preset:  PresetCustom,
			wantErr: ErrMissingCustomBound,
		},
		{
			name:    "custom sem o limite final",
			preset:  PresetCustom,
			from:    "2024-02-10",
			wantErr: ErrMissingCustomBound,
		},
		{
			name:    "data malformada",
			preset:  PresetCustom,
			from:    "10/02/2024",
			to:      "2024-02-20",
			wantErr: ErrMalformedDate,
		},
		{
			name:    "início posterior ao fim",
			preset:  PresetCustom,
			from:    "2024-02-20",
			to:      "2024-02-10",
			wantErr: ErrMalformedDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveRange(tt.preset, tt.from, tt.to, now)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestMidpoint(t *testing.T) {
	dateRange := &DateRange{
		From: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, time.March, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC),
	}

	mid := dateRange.Midpoint()

	assert.True(t, mid.After(dateRange.From))
	assert.True(t, mid.Before(dateRange.To))
	assert.Equal(t, 16, mid.Day())
}
