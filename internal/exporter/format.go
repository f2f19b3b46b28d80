package exporter

import (
	"math"
	"strconv"
	"strings"
)

// formatFloat renders the shortest text that parses back to f. Decimal
// notation is used for exponents in [-4, 16) and integral values keep a
// trailing ".0", so 25 prints as "25.0" and 1e16 as "1e+16".
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if f != 0 {
		e := strconv.FormatFloat(f, 'e', -1, 64)
		exp, err := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
		if err == nil && (exp < -4 || exp >= 16) {
			return e
		}
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
