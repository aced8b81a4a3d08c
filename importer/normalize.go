package importer

import (
	"fmt"
	"strings"
)

// Row is one typed import row. It lives only for the duration of one import
// request: it is either rejected (Invalid carries the user-facing message)
// or folded into a create/update by the reconcile engine.
type Row struct {
	Number      int
	Code        string
	Name        string
	Type        string
	LegalStatus string
	ShapeType   string
	TotalArea   Decimal
	Area        Decimal
	IsActive    *bool

	// Invalid is the validation rejection message, empty for usable rows.
	// Rejections are values, not errors: the engine records them per row and
	// keeps going.
	Invalid string
}

// NormalizeRow converts one raw record into a typed Row. The second return
// value is false for blank rows (code and name both empty), which are
// dropped before they count toward any outcome.
func NormalizeRow(rec Record, fields FieldMap, spec LevelSpec, strictEnums bool) (Row, bool) {
	get := func(name string) string {
		key, ok := fields[name]
		if !ok {
			return ""
		}
		return strings.TrimSpace(rec.Values[key])
	}

	code := get(fieldCode)
	name := get(fieldName)
	if code == "" && name == "" {
		return Row{}, false
	}

	row := Row{Number: rec.RowNumber, Code: code, Name: name}
	if code == "" || name == "" {
		row.Invalid = "código y nombre son obligatorios"
		return row, true
	}

	row.Type = resolveEnum(get(fieldType), "tipo", spec.TypeEnum, strictEnums, &row.Invalid)

	if spec.HasLegalStatus {
		raw := get(fieldLegal)
		if value, ok := spec.LegalEnum.Match(raw); ok {
			row.LegalStatus = value
		} else if strictEnums && raw != "" && row.Invalid == "" {
			row.Invalid = fmt.Sprintf("estado legal no reconocido: %q", raw)
		}
		// Unrecognized legal status resolves to absent, not to a fallback.
	}

	if spec.HasShape {
		row.ShapeType = resolveEnum(get(fieldShape), "forma", spec.ShapeEnum, strictEnums, &row.Invalid)
		row.Area = parseDecimal(get(fieldArea))
	} else {
		row.TotalArea = parseDecimal(get(fieldTotalArea))
	}

	row.IsActive = parseBoolWord(get(fieldActive))

	return row, true
}

func resolveEnum(raw, label string, enum EnumSpec, strict bool, invalid *string) string {
	if value, ok := enum.Match(raw); ok {
		return value
	}
	if strict && strings.TrimSpace(raw) != "" && *invalid == "" {
		*invalid = fmt.Sprintf("%s no reconocido: %q", label, raw)
	}
	return enum.Fallback
}
