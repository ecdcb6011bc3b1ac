// Package cuota converts a course date span into billing installments
// ("cuotas") using a fixed 30-day accounting month.
package cuota

import (
	"fmt"
	"time"
)

// Business logic constants
const (
	DaysPerMonth        = 30
	ExtraCuotaThreshold = 15

	millisPerDay = int64(24 * time.Hour / time.Millisecond)
)

// Info bundles every figure derived from a date span.
type Info struct {
	Cuotas              int    `json:"cuotas"`
	DiasTotales         int    `json:"diasTotales"`
	MesesCompletos      int    `json:"mesesCompletos"`
	DiasRestantes       int    `json:"diasRestantes"`
	TieneCuotaAdicional bool   `json:"tieneCuotaAdicional"`
	DuracionTexto       string `json:"duracionTexto"`
}

// TotalDays returns the inclusive day count between start and end.
// Formula: ceil((end - start) / 1 day) + 1, in whole milliseconds so that
// spans longer than a time.Duration still count correctly.
func TotalDays(start, end time.Time) int {
	elapsed := end.UnixMilli() - start.UnixMilli()
	days := elapsed / millisPerDay
	// integer division truncates toward zero, which is already the ceiling for negatives
	if elapsed%millisPerDay > 0 {
		days++
	}
	return int(days) + 1
}

// Calculate returns the number of cuotas owed for the span. A nil bound or a
// non-positive span yields 0; any other span bills at least one cuota.
func Calculate(start, end *time.Time) int {
	if start == nil || end == nil {
		return 0
	}

	totalDays := TotalDays(*start, *end)
	if totalDays <= 0 {
		return 0
	}

	return cuotasFor(totalDays)
}

// DurationText renders the span as Spanish text, e.g. "1 mes y 5 días".
// Non-positive spans render as an empty string.
func DurationText(start, end time.Time) string {
	totalDays := TotalDays(start, end)
	if totalDays <= 0 {
		return ""
	}
	return durationText(totalDays)
}

// HasExtraCuota reports whether the days left after full months exceed the threshold.
func HasExtraCuota(start, end time.Time) bool {
	totalDays := TotalDays(start, end)
	if totalDays <= 0 {
		return false
	}
	return totalDays%DaysPerMonth > ExtraCuotaThreshold
}

// GetInfo computes every figure at once. A nil bound returns the zero Info.
// For a non-positive span only DiasTotales is filled in.
func GetInfo(start, end *time.Time) Info {
	if start == nil || end == nil {
		return Info{}
	}

	totalDays := TotalDays(*start, *end)
	if totalDays <= 0 {
		return Info{DiasTotales: totalDays}
	}

	remaining := totalDays % DaysPerMonth
	return Info{
		Cuotas:              cuotasFor(totalDays),
		DiasTotales:         totalDays,
		MesesCompletos:      totalDays / DaysPerMonth,
		DiasRestantes:       remaining,
		TieneCuotaAdicional: remaining > ExtraCuotaThreshold,
		DuracionTexto:       durationText(totalDays),
	}
}

// GetInfoFromStrings parses both bounds with ParseOptionalDate and calls GetInfo.
func GetInfoFromStrings(start, end string) (Info, error) {
	from, err := ParseOptionalDate(start)
	if err != nil {
		return Info{}, err
	}
	to, err := ParseOptionalDate(end)
	if err != nil {
		return Info{}, err
	}
	return GetInfo(from, to), nil
}

func cuotasFor(totalDays int) int {
	total := totalDays / DaysPerMonth
	if totalDays%DaysPerMonth > ExtraCuotaThreshold {
		total++
	}
	if total < 1 {
		return 1
	}
	return total
}

func durationText(totalDays int) string {
	months := totalDays / DaysPerMonth
	days := totalDays % DaysPerMonth

	switch {
	case months == 0:
		return pluralize(totalDays, "día", "días")
	case days == 0:
		return pluralize(months, "mes", "meses")
	default:
		return pluralize(months, "mes", "meses") + " y " + pluralize(days, "día", "días")
	}
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
