// Package reconcile applies normalized import rows against the persisted
// hierarchy: each row either updates the unit matching its natural key or
// creates a new one, and no single bad row aborts the batch.
package reconcile

import (
	"context"
	"errors"
	"fmt"

	"silvo/importer"
	"silvo/patrimony"
)

// Run processes rows strictly in file order. Row N+1 is never started before
// row N's outcome is known, so two rows declaring the same code within one
// file resolve to one create followed by one update instead of a duplicate.
//
// parent must be the already-resolved parent unit for non-root levels and
// nil for predio imports. Run returns an error only for batch-fatal
// conditions; per-row failures land in the Outcome.
func Run(
	ctx context.Context,
	repo patrimony.Repository,
	scope patrimony.Scope,
	level patrimony.Level,
	parent *patrimony.Unit,
	rows []importer.Row,
) (*Outcome, error) {
	tenantID := scope.TenantID
	parentID := int64(0)
	if level.IsRoot() {
		if parent != nil {
			return nil, fmt.Errorf("%s is a root level and takes no parent", level)
		}
		if tenantID == "" {
			return nil, fmt.Errorf("a tenant is required to import %ss", level)
		}
	} else {
		if parent == nil {
			return nil, fmt.Errorf("a parent %s is required to import %ss", level.Parent(), level)
		}
		if parent.Level != level.Parent() {
			return nil, fmt.Errorf("parent of a %s must be a %s, got %s", level, level.Parent(), parent.Level)
		}
		parentID = parent.ID
		// Children always belong to the parent's owner, also for privileged
		// cross-tenant imports.
		tenantID = parent.TenantID
	}

	outcome := newOutcome()
	for _, row := range rows {
		if row.Invalid != "" {
			outcome.skip(row.Number, row.Code, row.Invalid)
			continue
		}
		if message := validateMeasurement(level, row); message != "" {
			outcome.skip(row.Number, row.Code, message)
			continue
		}

		existing, err := repo.FindByNaturalKey(ctx, scope, level, parentID, row.Code)
		switch {
		case err == nil:
			if err := updateUnit(ctx, repo, existing, row); err != nil {
				outcome.skip(row.Number, row.Code, persistenceMessage(err))
				continue
			}
			outcome.Updated++
		case errors.Is(err, patrimony.ErrUnitNotFound):
			if err := createUnit(ctx, repo, tenantID, parentID, level, row); err != nil {
				outcome.skip(row.Number, row.Code, persistenceMessage(err))
				continue
			}
			outcome.Created++
		default:
			outcome.skip(row.Number, row.Code, persistenceMessage(err))
		}
	}

	return outcome, nil
}

// validateMeasurement enforces the level-appropriate area rules right before
// persistence so the error can cite the specific field.
func validateMeasurement(level patrimony.Level, row importer.Row) string {
	if level == patrimony.LevelParcela {
		if !row.Area.Valid {
			return "superficie (m²) inválida"
		}
		if row.Area.Value <= 0 {
			return "superficie (m²) debe ser mayor que cero"
		}
		return ""
	}

	if !row.TotalArea.Valid {
		return "superficie total inválida"
	}
	if row.TotalArea.Value < 0 {
		return "superficie total no puede ser negativa"
	}
	return ""
}

func createUnit(
	ctx context.Context,
	repo patrimony.Repository,
	tenantID string,
	parentID int64,
	level patrimony.Level,
	row importer.Row,
) error {
	unit := &patrimony.Unit{
		TenantID:    tenantID,
		ParentID:    parentID,
		Level:       level,
		Code:        row.Code,
		Name:        row.Name,
		Type:        row.Type,
		LegalStatus: row.LegalStatus,
		ShapeType:   row.ShapeType,
		TotalArea:   row.TotalArea.Value,
		Area:        row.Area.Value,
		IsActive:    true,
	}
	if row.IsActive != nil {
		unit.IsActive = *row.IsActive
	}

	_, err := repo.Create(ctx, unit)
	return err
}

func updateUnit(ctx context.Context, repo patrimony.Repository, existing *patrimony.Unit, row importer.Row) error {
	updated := *existing
	updated.Name = row.Name
	updated.Type = row.Type
	updated.ShapeType = row.ShapeType
	updated.TotalArea = row.TotalArea.Value
	updated.Area = row.Area.Value
	if row.LegalStatus != "" {
		updated.LegalStatus = row.LegalStatus
	}
	if row.IsActive != nil {
		updated.IsActive = *row.IsActive
	}

	_, err := repo.Update(ctx, existing.ID, &updated)
	return err
}

func persistenceMessage(err error) string {
	return fmt.Sprintf("error de persistencia: %v", err)
}
