package inspect

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/syssam/schemagen/schema"
)

// sqlserverInspector reads SQL Server catalogs. Identity columns surface
// through COLUMNPROPERTY and are flagged as auto-increment.
type sqlserverInspector struct {
	db *sql.DB
}

const sqlserverTablesQuery = `
SELECT table_name
FROM INFORMATION_SCHEMA.TABLES
WHERE table_schema = @p1
AND table_type = 'BASE TABLE'
ORDER BY table_name`

const sqlserverColumnsQuery = `
SELECT
	c.COLUMN_NAME,
	c.DATA_TYPE,
	c.CHARACTER_MAXIMUM_LENGTH,
	c.NUMERIC_PRECISION,
	c.NUMERIC_SCALE,
	c.IS_NULLABLE,
	c.COLUMN_DEFAULT,
	c.ORDINAL_POSITION,
	COLUMNPROPERTY(OBJECT_ID(c.TABLE_SCHEMA + '.' + c.TABLE_NAME), c.COLUMN_NAME, 'IsIdentity') AS is_identity,
	CASE WHEN kcu.COLUMN_NAME IS NULL THEN 0 ELSE 1 END AS is_primary
FROM INFORMATION_SCHEMA.COLUMNS c
LEFT JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
	ON kcu.TABLE_SCHEMA = c.TABLE_SCHEMA
	AND kcu.TABLE_NAME = c.TABLE_NAME
	AND kcu.COLUMN_NAME = c.COLUMN_NAME
	AND OBJECTPROPERTY(OBJECT_ID(kcu.CONSTRAINT_SCHEMA + '.' + kcu.CONSTRAINT_NAME), 'IsPrimaryKey') = 1
WHERE c.TABLE_SCHEMA = @p1
AND c.TABLE_NAME = @p2
ORDER BY c.ORDINAL_POSITION`

func (s *sqlserverInspector) TableNames(ctx context.Context, schemaName string) ([]string, error) {
	if schemaName == "" {
		schemaName = "dbo"
	}
	rows, err := s.db.QueryContext(ctx, sqlserverTablesQuery, schemaName)
	if err != nil {
		return nil, newInspectError("sqlserver", "", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, newInspectError("sqlserver", "", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, newInspectError("sqlserver", "", err)
	}
	return names, nil
}

func (s *sqlserverInspector) Table(ctx context.Context, schemaName, tableName string) (schema.Table, error) {
	if schemaName == "" {
		schemaName = "dbo"
	}
	t := schema.Table{Name: tableName}
	rows, err := s.db.QueryContext(ctx, sqlserverColumnsQuery, schemaName, tableName)
	if err != nil {
		return t, newInspectError("sqlserver", tableName, err)
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
			identity   sql.NullInt64
			primary    int
		)
		if err := rows.Scan(&col.Name, &dataType, &charLen, &precision, &scale, &nullable, &defaultVal, &col.Position, &identity, &primary); err != nil {
			return t, newInspectError("sqlserver", tableName, err)
		}
		col.RawType = sqlserverRawType(dataType, charLen, precision, scale)
		col.Nullable = nullable == "YES"
		col.PrimaryKey = primary == 1
		col.HasDefault = defaultVal.Valid
		col.Default = defaultVal.String
		if identity.Valid && identity.Int64 == 1 {
			col.Extra = "auto_increment"
		}
		t.Columns = append(t.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return t, newInspectError("sqlserver", tableName, err)
	}
	return t, nil
}

// sqlserverRawType rebuilds the parenthesized type token. A -1 character
// length means MAX.
func sqlserverRawType(dataType string, charLen, precision, scale sql.NullInt64) string {
	switch {
	case charLen.Valid && charLen.Int64 == -1:
		return dataType + "(max)"
	case charLen.Valid:
		return fmt.Sprintf("%s(%d)", dataType, charLen.Int64)
	case scale.Valid && scale.Int64 > 0 && (dataType == "decimal" || dataType == "numeric"):
		return fmt.Sprintf("%s(%d,%d)", dataType, precision.Int64, scale.Int64)
	}
	return dataType
}
