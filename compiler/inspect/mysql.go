package inspect

import (
	"context"
	"database/sql"
	"strings"

	"github.com/syssam/schemagen/schema"
)

// mysqlInspector reads MySQL and MariaDB catalogs. column_type carries the
// full parenthesized type token, so it maps straight onto RawType.
type mysqlInspector struct {
	db *sql.DB
}

const mysqlTablesQuery = `
SELECT table_name
FROM information_schema.tables
WHERE table_schema = ?
AND table_type = 'BASE TABLE'
ORDER BY table_name`

const mysqlColumnsQuery = `
SELECT
	column_name,
	column_type,
	is_nullable,
	column_key,
	column_default,
	extra,
	column_comment,
	ordinal_position
FROM information_schema.columns
WHERE table_schema = ?
AND table_name = ?
ORDER BY ordinal_position`

func (m *mysqlInspector) TableNames(ctx context.Context, schemaName string) ([]string, error) {
	rows, err := m.db.QueryContext(ctx, mysqlTablesQuery, schemaName)
	if err != nil {
		return nil, newInspectError("mysql", "", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, newInspectError("mysql", "", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, newInspectError("mysql", "", err)
	}
	return names, nil
}

func (m *mysqlInspector) Table(ctx context.Context, schemaName, tableName string) (schema.Table, error) {
	t := schema.Table{Name: tableName}
	rows, err := m.db.QueryContext(ctx, mysqlColumnsQuery, schemaName, tableName)
	if err != nil {
		return t, newInspectError("mysql", tableName, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			col        schema.Column
			nullable   string
			key        string
			defaultVal sql.NullString
			extra      sql.NullString
			comment    sql.NullString
		)
		if err := rows.Scan(&col.Name, &col.RawType, &nullable, &key, &defaultVal, &extra, &comment, &col.Position); err != nil {
			return t, newInspectError("mysql", tableName, err)
		}
		col.Nullable = nullable == "YES"
		col.PrimaryKey = key == "PRI"
		col.HasDefault = defaultVal.Valid
		col.Default = defaultVal.String
		col.Extra = strings.ToLower(extra.String)
		col.Comment = comment.String
		t.Columns = append(t.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return t, newInspectError("mysql", tableName, err)
	}
	return t, nil
}
