package main

import (
	"math"
	"strconv"
)

// formatScore renders a metric cell. An absent term shows as N/A and an
// undefined similarity as NaN.
func formatScore(v float64) string {
	switch {
	case math.IsInf(v, -1):
		return "N/A"
	case math.IsNaN(v):
		return "NaN"
	default:
		return strconv.FormatFloat(v, 'f', 4, 64)
	}
}
