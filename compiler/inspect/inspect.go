// Package inspect reads live database metadata into schema values.
//
// An Inspector adapts one SQL dialect's catalog views to the neutral
// column shape consumed by the generation pipeline. Inspectors hold no
// state beyond their database handle and are safe for concurrent use.
package inspect

import (
	"context"
	"database/sql"

	"github.com/syssam/schemagen"
	"github.com/syssam/schemagen/dialect"
	"github.com/syssam/schemagen/schema"
)

// Inspector reads table metadata from a database.
type Inspector interface {
	// TableNames lists the base table names of the given schema, sorted.
	// Views are excluded.
	TableNames(ctx context.Context, schemaName string) ([]string, error)
	// Table reads one table's column metadata in ordinal position order.
	Table(ctx context.Context, schemaName, tableName string) (schema.Table, error)
}

// New returns the Inspector for the given dialect.
func New(db *sql.DB, d dialect.Dialect) (Inspector, error) {
	switch d {
	case dialect.MySQL:
		return &mysqlInspector{db: db}, nil
	case dialect.Postgres:
		return &postgresInspector{db: db}, nil
	case dialect.SQLite:
		return &sqliteInspector{db: db}, nil
	case dialect.SQLServer:
		return &sqlserverInspector{db: db}, nil
	}
	return nil, schemagen.NewUnsupportedDialectError(d.String())
}

// Tables reads every base table of a schema through the inspector.
func Tables(ctx context.Context, ins Inspector, schemaName string) ([]schema.Table, error) {
	names, err := ins.TableNames(ctx, schemaName)
	if err != nil {
		return nil, err
	}
	tables := make([]schema.Table, 0, len(names))
	for _, name := range names {
		t, err := ins.Table(ctx, schemaName, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}
