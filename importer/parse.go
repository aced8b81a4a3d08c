package importer

import (
	"math"
	"strconv"
	"strings"
)

// Decimal is a parsed measurement cell. Valid is false for empty, unparsable
// or non-finite input; the reconcile engine turns that into a per-row error
// citing the specific field, never a silent zero.
type Decimal struct {
	Value float64
	Valid bool
}

func parseDecimal(raw string) Decimal {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return Decimal{}
	}
	if strings.Contains(cleaned, ",") {
		if strings.Contains(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return Decimal{}
	}
	return Decimal{Value: value, Valid: true}
}

// parseBoolWord maps the small accepted vocabulary to a boolean. Anything
// else resolves to nil ("absent"): creates default to active, updates keep
// the stored value.
func parseBoolWord(raw string) *bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "si", "sí", "activo":
		value := true
		return &value
	case "false", "0", "no", "inactivo":
		value := false
		return &value
	default:
		return nil
	}
}
