package inspect

import (
	"context"
	"database/sql"
	"strings"

	"github.com/syssam/schemagen/schema"
)

// sqliteInspector reads SQLite metadata. SQLite has no schema namespaces
// in the catalog sense, so the schema name is ignored; an INTEGER primary
// key aliases the rowid and behaves as auto-increment.
type sqliteInspector struct {
	db *sql.DB
}

const sqliteTablesQuery = `
SELECT name
FROM sqlite_master
WHERE type = 'table'
AND name NOT LIKE 'sqlite_%'
ORDER BY name`

const sqliteColumnsQuery = `
SELECT cid, name, type, "notnull", dflt_value, pk
FROM pragma_table_info(?)
ORDER BY cid`

func (s *sqliteInspector) TableNames(ctx context.Context, _ string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, sqliteTablesQuery)
	if err != nil {
		return nil, newInspectError("sqlite", "", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, newInspectError("sqlite", "", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, newInspectError("sqlite", "", err)
	}
	return names, nil
}

func (s *sqliteInspector) Table(ctx context.Context, _, tableName string) (schema.Table, error) {
	t := schema.Table{Name: tableName}
	rows, err := s.db.QueryContext(ctx, sqliteColumnsQuery, tableName)
	if err != nil {
		return t, newInspectError("sqlite", tableName, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			col        schema.Column
			cid        int
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &col.Name, &col.RawType, &notNull, &defaultVal, &pk); err != nil {
			return t, newInspectError("sqlite", tableName, err)
		}
		col.Position = cid + 1
		col.Nullable = notNull == 0 && pk == 0
		col.PrimaryKey = pk > 0
		col.HasDefault = defaultVal.Valid
		col.Default = defaultVal.String
		if col.PrimaryKey && strings.EqualFold(col.RawType, "integer") {
			col.Extra = "auto_increment"
		}
		t.Columns = append(t.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return t, newInspectError("sqlite", tableName, err)
	}
	return t, nil
}
