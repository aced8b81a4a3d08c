package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"silvo/patrimony"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists hierarchy units and implements patrimony.Repository.
// The UNIQUE constraint on (tenant_id, level, parent_id, code) is the final
// backstop for natural-key uniqueness even if two imports race.
type SQLiteStore struct {
	db *sql.DB
}

var _ patrimony.Repository = (*SQLiteStore)(nil)

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS units (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	tenant_id TEXT NOT NULL,
	parent_id INTEGER NOT NULL DEFAULT 0,
	level INTEGER NOT NULL,
	code TEXT NOT NULL,
	name TEXT NOT NULL,
	type TEXT NOT NULL,
	legal_status TEXT NOT NULL DEFAULT '',
	shape_type TEXT NOT NULL DEFAULT '',
	total_area REAL NOT NULL DEFAULT 0,
	area REAL NOT NULL DEFAULT 0,
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(tenant_id, level, parent_id, code)
);
CREATE INDEX IF NOT EXISTS idx_units_parent ON units(level, parent_id);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	return nil
}

const unitColumns = `
	id,
	tenant_id,
	parent_id,
	level,
	code,
	name,
	type,
	legal_status,
	shape_type,
	total_area,
	area,
	is_active`

// FindByNaturalKey looks a unit up by (parent, code), tenant-filtered unless
// the scope is privileged. Root units carry parent_id 0, so the same query
// covers the (tenant, code) key of predios.
func (s *SQLiteStore) FindByNaturalKey(
	ctx context.Context,
	scope patrimony.Scope,
	level patrimony.Level,
	parentID int64,
	code string,
) (*patrimony.Unit, error) {
	query := `SELECT` + unitColumns + `
FROM units
WHERE level = ? AND parent_id = ? AND code = ?`
	args := []any{int(level), parentID, code}
	if !scope.Privileged {
		query += ` AND tenant_id = ?`
		args = append(args, scope.TenantID)
	}
	query += ` LIMIT 1;`

	unit, err := scanUnit(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, patrimony.ErrUnitNotFound
		}
		return nil, fmt.Errorf("query unit %s/%s: %w", level, code, err)
	}
	return unit, nil
}

func (s *SQLiteStore) Create(ctx context.Context, unit *patrimony.Unit) (*patrimony.Unit, error) {
	const insertStmt = `
INSERT INTO units (
	tenant_id,
	parent_id,
	level,
	code,
	name,
	type,
	legal_status,
	shape_type,
	total_area,
	area,
	is_active
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	res, err := s.db.ExecContext(
		ctx,
		insertStmt,
		unit.TenantID,
		unit.ParentID,
		int(unit.Level),
		unit.Code,
		unit.Name,
		unit.Type,
		unit.LegalStatus,
		unit.ShapeType,
		unit.TotalArea,
		unit.Area,
		boolToInt(unit.IsActive),
	)
	if err != nil {
		return nil, fmt.Errorf("insert unit %s: %w", unit.Code, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("read inserted unit id: %w", err)
	}

	created := *unit
	created.ID = id
	return &created, nil
}

func (s *SQLiteStore) Update(ctx context.Context, id int64, unit *patrimony.Unit) (*patrimony.Unit, error) {
	if id <= 0 {
		return nil, fmt.Errorf("unit id must be > 0")
	}

	const updateStmt = `
UPDATE units
SET name = ?,
	type = ?,
	legal_status = ?,
	shape_type = ?,
	total_area = ?,
	area = ?,
	is_active = ?
WHERE id = ?;`

	res, err := s.db.ExecContext(
		ctx,
		updateStmt,
		unit.Name,
		unit.Type,
		unit.LegalStatus,
		unit.ShapeType,
		unit.TotalArea,
		unit.Area,
		boolToInt(unit.IsActive),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("update unit %d: %w", id, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("read updated row count: %w", err)
	}
	if rowsAffected == 0 {
		return nil, patrimony.ErrUnitNotFound
	}

	updated := *unit
	updated.ID = id
	return &updated, nil
}

// GetByID resolves a unit within the caller's scope. The web and CLI layers
// use it to resolve the declared parent before an import starts.
func (s *SQLiteStore) GetByID(ctx context.Context, scope patrimony.Scope, id int64) (*patrimony.Unit, error) {
	if id <= 0 {
		return nil, fmt.Errorf("unit id must be > 0")
	}

	query := `SELECT` + unitColumns + `
FROM units
WHERE id = ?`
	args := []any{id}
	if !scope.Privileged {
		query += ` AND tenant_id = ?`
		args = append(args, scope.TenantID)
	}
	query += `;`

	unit, err := scanUnit(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, patrimony.ErrUnitNotFound
		}
		return nil, fmt.Errorf("query unit %d: %w", id, err)
	}
	return unit, nil
}

// ListUnits returns one level of the hierarchy ordered by code. parentID is
// ignored for the root level, which is tenant-scoped instead.
func (s *SQLiteStore) ListUnits(
	ctx context.Context,
	scope patrimony.Scope,
	level patrimony.Level,
	parentID int64,
) ([]patrimony.Unit, error) {
	query := `SELECT` + unitColumns + `
FROM units
WHERE level = ?`
	args := []any{int(level)}
	if !level.IsRoot() {
		query += ` AND parent_id = ?`
		args = append(args, parentID)
	}
	if !scope.Privileged {
		query += ` AND tenant_id = ?`
		args = append(args, scope.TenantID)
	}
	query += ` ORDER BY code, id;`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query units: %w", err)
	}
	defer rows.Close()

	units := make([]patrimony.Unit, 0, 64)
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		units = append(units, *unit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate units: %w", err)
	}

	return units, nil
}

// DeleteUnit removes one unit by ID within scope. The import engine never
// deletes; this backs the console's manual catalog maintenance only.
func (s *SQLiteStore) DeleteUnit(ctx context.Context, scope patrimony.Scope, id int64) (bool, error) {
	if id <= 0 {
		return false, fmt.Errorf("unit id must be > 0")
	}

	query := `DELETE FROM units WHERE id = ?`
	args := []any{id}
	if !scope.Privileged {
		query += ` AND tenant_id = ?`
		args = append(args, scope.TenantID)
	}
	query += `;`

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete unit %d: %w", id, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read deleted row count: %w", err)
	}
	return rowsAffected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUnit(scanner rowScanner) (*patrimony.Unit, error) {
	var (
		unit     patrimony.Unit
		level    int
		isActive int
	)
	if err := scanner.Scan(
		&unit.ID,
		&unit.TenantID,
		&unit.ParentID,
		&level,
		&unit.Code,
		&unit.Name,
		&unit.Type,
		&unit.LegalStatus,
		&unit.ShapeType,
		&unit.TotalArea,
		&unit.Area,
		&isActive,
	); err != nil {
		return nil, err
	}

	unit.Level = patrimony.Level(level)
	unit.IsActive = isActive != 0
	return &unit, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
