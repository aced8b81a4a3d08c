// Package patrimony holds the land-patrimony domain model: a four-level
// hierarchy of forestry units (predio → sector → rodal → parcela) identified
// by a natural key (scope + code) across repeated imports and edits.
package patrimony

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Level int

const (
	LevelPredio Level = iota + 1
	LevelSector
	LevelRodal
	LevelParcela
)

var ErrUnitNotFound = errors.New("unit not found")

func (l Level) String() string {
	switch l {
	case LevelPredio:
		return "predio"
	case LevelSector:
		return "sector"
	case LevelRodal:
		return "rodal"
	case LevelParcela:
		return "parcela"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// IsRoot reports whether the level sits at the top of the hierarchy and is
// therefore scoped by tenant rather than by parent unit.
func (l Level) IsRoot() bool {
	return l == LevelPredio
}

func (l Level) Parent() Level {
	return l - 1
}

func ParseLevel(value string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "predio":
		return LevelPredio, nil
	case "sector":
		return LevelSector, nil
	case "rodal":
		return LevelRodal, nil
	case "parcela":
		return LevelParcela, nil
	default:
		return 0, fmt.Errorf("unknown hierarchy level %q (supported: predio|sector|rodal|parcela)", value)
	}
}

// Unit is one record of the hierarchy, generic over all four levels. Fields
// that do not apply to a level stay at their zero value: LegalStatus is
// predio-only, ShapeType and Area are parcela-only, TotalArea covers the
// other three levels.
type Unit struct {
	ID          int64   `json:"id"`
	TenantID    string  `json:"tenantId"`
	ParentID    int64   `json:"parentId,omitempty"`
	Level       Level   `json:"level"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	LegalStatus string  `json:"legalStatus,omitempty"`
	ShapeType   string  `json:"shapeType,omitempty"`
	TotalArea   float64 `json:"totalArea,omitempty"`
	Area        float64 `json:"area,omitempty"`
	IsActive    bool    `json:"isActive"`
}

// Scope is the caller's authorization scope. A privileged caller bypasses
// tenant filtering; parent scoping always applies.
type Scope struct {
	TenantID   string
	Privileged bool
}

// Repository is the persistence collaborator of the import engine. The engine
// issues no queries of its own; these three operations are the full contract.
type Repository interface {
	// FindByNaturalKey resolves (parent, code) — or (tenant, code) for the
	// root level — to an existing unit. Returns ErrUnitNotFound when no unit
	// matches within the scope.
	FindByNaturalKey(ctx context.Context, scope Scope, level Level, parentID int64, code string) (*Unit, error)
	Create(ctx context.Context, unit *Unit) (*Unit, error)
	Update(ctx context.Context, id int64, unit *Unit) (*Unit, error)
}
