package importer

import (
	"strings"

	"silvo/patrimony"
)

// Canonical field keys shared by the field specs and the normalizer.
const (
	fieldCode      = "code"
	fieldName      = "name"
	fieldType      = "type"
	fieldTotalArea = "totalarea"
	fieldArea      = "area"
	fieldShape     = "shapetype"
	fieldLegal     = "legalstatus"
	fieldActive    = "isactive"
)

// FieldSpec declares one canonical column: the spellings an uploaded header
// may use for it and whether its absence aborts the import.
type FieldSpec struct {
	Name      string
	Label     string
	Spellings []string
	Required  bool
}

// EnumSpec is a closed vocabulary with the per-level fallback substituted for
// unrecognized values (unless strict-enum mode rejects the row instead).
type EnumSpec struct {
	Values   []string
	Fallback string
}

func (e EnumSpec) Match(raw string) (string, bool) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	for _, candidate := range e.Values {
		if candidate == value {
			return value, true
		}
	}
	return "", false
}

// LevelSpec is the full import descriptor for one hierarchy level. The four
// levels share one normalization code path parameterized by this value.
type LevelSpec struct {
	Level          patrimony.Level
	Fields         []FieldSpec
	TypeEnum       EnumSpec
	ShapeEnum      EnumSpec
	LegalEnum      EnumSpec
	HasLegalStatus bool
	HasShape       bool
}

var (
	codeField = FieldSpec{
		Name:      fieldCode,
		Label:     "código",
		Spellings: []string{"code", "codigo", "código"},
		Required:  true,
	}
	nameField = FieldSpec{
		Name:      fieldName,
		Label:     "nombre",
		Spellings: []string{"name", "nombre"},
		Required:  true,
	}
	typeField = FieldSpec{
		Name:      fieldType,
		Label:     "tipo",
		Spellings: []string{"type", "tipo"},
		Required:  true,
	}
	totalAreaField = FieldSpec{
		Name:      fieldTotalArea,
		Label:     "superficie total",
		Spellings: []string{"total area", "total area ha", "superficie total", "superficie", "superficie ha"},
		Required:  true,
	}
	areaField = FieldSpec{
		Name:      fieldArea,
		Label:     "superficie m2",
		Spellings: []string{"area", "área", "area m2", "área m2", "superficie m2"},
		Required:  true,
	}
	shapeField = FieldSpec{
		Name:      fieldShape,
		Label:     "forma",
		Spellings: []string{"shape type", "shape", "forma", "tipo forma"},
		Required:  true,
	}
	legalField = FieldSpec{
		Name:      fieldLegal,
		Label:     "estado legal",
		Spellings: []string{"legal status", "estado legal", "situacion legal", "situación legal"},
	}
	activeField = FieldSpec{
		Name:      fieldActive,
		Label:     "activo",
		Spellings: []string{"is active", "active", "activo", "vigente"},
	}
)

// SpecForLevel returns the import descriptor for one hierarchy level.
func SpecForLevel(level patrimony.Level) LevelSpec {
	switch level {
	case patrimony.LevelPredio:
		return LevelSpec{
			Level:          level,
			Fields:         []FieldSpec{codeField, nameField, typeField, totalAreaField, legalField, activeField},
			TypeEnum:       EnumSpec{Values: []string{"FUNDO", "HIJUELA", "COMUNITARIO"}, Fallback: "FUNDO"},
			LegalEnum:      EnumSpec{Values: []string{"INSCRITO", "EN_TRAMITE", "IRREGULAR"}},
			HasLegalStatus: true,
		}
	case patrimony.LevelSector:
		return LevelSpec{
			Level:    level,
			Fields:   []FieldSpec{codeField, nameField, typeField, totalAreaField, activeField},
			TypeEnum: EnumSpec{Values: []string{"PRODUCCION", "PROTECCION", "ORDENACION"}, Fallback: "PRODUCCION"},
		}
	case patrimony.LevelRodal:
		return LevelSpec{
			Level:    level,
			Fields:   []FieldSpec{codeField, nameField, typeField, totalAreaField, activeField},
			TypeEnum: EnumSpec{Values: []string{"RODAL", "BOSQUETE", "MATORRAL"}, Fallback: "RODAL"},
		}
	case patrimony.LevelParcela:
		return LevelSpec{
			Level:    level,
			Fields:   []FieldSpec{codeField, nameField, typeField, shapeField, areaField, activeField},
			TypeEnum: EnumSpec{Values: []string{"PERMANENTE", "TEMPORAL", "TESTIGO"}, Fallback: "PERMANENTE"},
			ShapeEnum: EnumSpec{
				Values:   []string{"CIRCULAR", "RECTANGULAR", "CUADRADA"},
				Fallback: "CIRCULAR",
			},
			HasShape: true,
		}
	default:
		return LevelSpec{Level: level}
	}
}
