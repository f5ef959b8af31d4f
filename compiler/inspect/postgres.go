package inspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/syssam/schemagen/schema"
)

// postgresInspector reads PostgreSQL catalogs. The catalog splits a type
// across data_type and its length columns, so the raw token is rebuilt
// from the pieces; serial columns appear as integer with a nextval
// default and are flagged as auto-increment.
type postgresInspector struct {
	db *sql.DB
}

const postgresTablesQuery = `
SELECT table_name
FROM information_schema.tables
WHERE table_schema = $1
AND table_type = 'BASE TABLE'
ORDER BY table_name`

const postgresColumnsQuery = `
SELECT
	c.column_name,
	c.data_type,
	c.character_maximum_length,
	c.numeric_precision,
	c.numeric_scale,
	c.is_nullable,
	c.column_default,
	c.ordinal_position,
	EXISTS (
		SELECT 1
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON kcu.constraint_name = tc.constraint_name
			AND kcu.table_schema = tc.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY'
		AND tc.table_schema = c.table_schema
		AND tc.table_name = c.table_name
		AND kcu.column_name = c.column_name
	) AS is_primary
FROM information_schema.columns c
WHERE c.table_schema = $1
AND c.table_name = $2
ORDER BY c.ordinal_position`

func (p *postgresInspector) TableNames(ctx context.Context, schemaName string) ([]string, error) {
	if schemaName == "" {
		schemaName = "public"
	}
	rows, err := p.db.QueryContext(ctx, postgresTablesQuery, schemaName)
	if err != nil {
		return nil, newInspectError("postgres", "", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, newInspectError("postgres", "", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, newInspectError("postgres", "", err)
	}
	return names, nil
}

func (p *postgresInspector) Table(ctx context.Context, schemaName, tableName string) (schema.Table, error) {
	if schemaName == "" {
		schemaName = "public"
	}
	t := schema.Table{Name: tableName}
	rows, err := p.db.QueryContext(ctx, postgresColumnsQuery, schemaName, tableName)
	if err != nil {
		return t, newInspectError("postgres", tableName, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			col        schema.Column
			dataType   string
			charLen    sql.NullInt64
			precision  sql.NullInt64
			scale      sql.NullInt64
			nullable   string
			defaultVal sql.NullString
			primary    bool
		)
		if err := rows.Scan(&col.Name, &dataType, &charLen, &precision, &scale, &nullable, &defaultVal, &col.Position, &primary); err != nil {
			return t, newInspectError("postgres", tableName, err)
		}
		col.RawType = postgresRawType(dataType, charLen, precision, scale)
		col.Nullable = nullable == "YES"
		col.PrimaryKey = primary
		if defaultVal.Valid {
			if strings.HasPrefix(defaultVal.String, "nextval(") {
				col.Extra = "auto_increment"
			} else {
				col.HasDefault = true
				col.Default = defaultVal.String
			}
		}
		t.Columns = append(t.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return t, newInspectError("postgres", tableName, err)
	}
	return t, nil
}

// postgresRawType rebuilds the parenthesized type token from the catalog's
// split representation.
func postgresRawType(dataType string, charLen, precision, scale sql.NullInt64) string {
	switch {
	case charLen.Valid:
		return fmt.Sprintf("%s(%d)", dataType, charLen.Int64)
	case scale.Valid && scale.Int64 > 0:
		return fmt.Sprintf("%s(%d,%d)", dataType, precision.Int64, scale.Int64)
	case precision.Valid && (dataType == "numeric" || dataType == "decimal"):
		return fmt.Sprintf("%s(%d)", dataType, precision.Int64)
	}
	return dataType
}
