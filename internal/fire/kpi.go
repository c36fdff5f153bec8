package fire

import (
	"fmt"
	"sort"
)

// Thresholds for burned-area formatting.
const (
	areaMillion  = 1_000_000
	areaThousand = 1_000
)

// Trend labels returned by Trend.
const (
	TrendRising  = "Ascendente"
	TrendFalling = "Descendente"
	TrendStable  = "Estable"
	TrendNoData  = "Sin datos previos"
)

const (
	trendChangeThreshold  = 0.05
	trendComparisonMonths = 6
)

// MonthlyCount is the number of fires in one calendar month.
type MonthlyCount struct {
	Year  int
	Month int
	Count int
}

// FormatArea renders a total burned area as a compact KPI string,
// e.g. ">1.5M ha" or ">234.5K ha".
func FormatArea(totalHa float64) string {
	if totalHa >= areaMillion {
		return fmt.Sprintf(">%.1fM ha", totalHa/areaMillion)
	}
	return fmt.Sprintf(">%.1fK ha", totalHa/areaThousand)
}

// Trend classifies the evolution of fire counts. With two or more years of
// data the last year is compared against the previous one; with a single
// year the last six months are compared against the six before them.
// A change beyond ±5% is reported as rising or falling.
func Trend(counts []MonthlyCount) string {
	if len(counts) == 0 {
		return TrendNoData
	}

	sorted := make([]MonthlyCount, len(counts))
	copy(sorted, counts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Year != sorted[j].Year {
			return sorted[i].Year < sorted[j].Year
		}
		return sorted[i].Month < sorted[j].Month
	})

	years := uniqueYears(sorted)

	var current, previous int
	if len(years) >= 2 {
		current, previous = compareLastYears(sorted, years)
	} else {
		current, previous = compareLastMonths(sorted, trendComparisonMonths)
	}

	return classifyTrend(current, previous)
}

func uniqueYears(sorted []MonthlyCount) []int {
	var years []int
	for _, c := range sorted {
		if len(years) == 0 || years[len(years)-1] != c.Year {
			years = append(years, c.Year)
		}
	}
	return years
}

func compareLastYears(sorted []MonthlyCount, years []int) (current, previous int) {
	lastYear := years[len(years)-1]
	prevYear := years[len(years)-2]
	for _, c := range sorted {
		switch c.Year {
		case lastYear:
			current += c.Count
		case prevYear:
			previous += c.Count
		}
	}
	return current, previous
}

func compareLastMonths(sorted []MonthlyCount, months int) (current, previous int) {
	recent := sorted
	if len(recent) > months*2 {
		recent = recent[len(recent)-months*2:]
	}
	split := 0
	if len(recent) > months {
		split = len(recent) - months
	}
	for i, c := range recent {
		if i < split {
			previous += c.Count
		} else {
			current += c.Count
		}
	}
	return current, previous
}

func classifyTrend(current, previous int) string {
	if previous == 0 {
		return TrendNoData
	}
	change := float64(current-previous) / float64(previous)
	switch {
	case change > trendChangeThreshold:
		return TrendRising
	case change < -trendChangeThreshold:
		return TrendFalling
	default:
		return TrendStable
	}
}
