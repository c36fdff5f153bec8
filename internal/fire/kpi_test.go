package fire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatArea(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		totalHa float64
		want    string
	}{
		{"millions", 2_000_000, ">2.0M ha"},
		{"just above a million", 1_500_000, ">1.5M ha"},
		{"thousands", 500_000, ">500.0K ha"},
		{"small total", 1234, ">1.2K ha"},
		{"zero", 0, ">0.0K ha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatArea(tt.totalHa))
		})
	}
}

func TestTrendAcrossYears(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		counts []MonthlyCount
		want   string
	}{
		{
			name: "rising year over year",
			counts: []MonthlyCount{
				{Year: 2022, Month: 6, Count: 10},
				{Year: 2022, Month: 7, Count: 10},
				{Year: 2023, Month: 6, Count: 15},
				{Year: 2023, Month: 7, Count: 15},
			},
			want: TrendRising,
		},
		{
			name: "falling year over year",
			counts: []MonthlyCount{
				{Year: 2022, Month: 6, Count: 20},
				{Year: 2023, Month: 6, Count: 10},
			},
			want: TrendFalling,
		},
		{
			name: "stable within threshold",
			counts: []MonthlyCount{
				{Year: 2022, Month: 6, Count: 100},
				{Year: 2023, Month: 6, Count: 103},
			},
			want: TrendStable,
		},
		{
			name:   "no data",
			counts: nil,
			want:   TrendNoData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Trend(tt.counts))
		})
	}
}

func TestTrendSingleYearComparesMonths(t *testing.T) {
	t.Parallel()

	// Last six months double the previous six: rising.
	var counts []MonthlyCount
	for m := 1; m <= 6; m++ {
		counts = append(counts, MonthlyCount{Year: 2023, Month: m, Count: 5})
	}
	for m := 7; m <= 12; m++ {
		counts = append(counts, MonthlyCount{Year: 2023, Month: m, Count: 10})
	}
	assert.Equal(t, TrendRising, Trend(counts))
}

func TestTrendUnsortedInput(t *testing.T) {
	t.Parallel()

	// Trend must sort before comparing windows.
	counts := []MonthlyCount{
		{Year: 2023, Month: 6, Count: 10},
		{Year: 2022, Month: 6, Count: 20},
	}
	assert.Equal(t, TrendFalling, Trend(counts))
}
