// Package dialect defines the database dialects known to schemagen.
//
// A dialect identifies a database product's column-type syntax. It selects
// both the metadata adapter used to read a schema (compiler/inspect) and the
// conversion table used to render column types for a target database
// (schema/typemap).
//
// # Supported Dialects
//
//   - MySQL: MySQL/MariaDB
//   - Postgres: PostgreSQL
//   - SQLite: SQLite
//   - SQLServer: Microsoft SQL Server
package dialect

import "strings"

// Dialect is a database dialect name.
type Dialect string

const (
	// MySQL covers both MySQL and MariaDB.
	MySQL Dialect = "mysql"
	// Postgres is the PostgreSQL dialect.
	Postgres Dialect = "postgres"
	// SQLite is the SQLite dialect.
	SQLite Dialect = "sqlite"
	// SQLServer is the Microsoft SQL Server dialect.
	SQLServer Dialect = "sqlserver"
)

// All lists every supported dialect, in a stable order.
var All = []Dialect{MySQL, Postgres, SQLite, SQLServer}

// String returns the dialect name.
func (d Dialect) String() string { return string(d) }

// Valid reports whether d is a supported dialect.
func (d Dialect) Valid() bool {
	switch d {
	case MySQL, Postgres, SQLite, SQLServer:
		return true
	}
	return false
}

// FromString parses a dialect name leniently. Common aliases and driver
// names are accepted (mariadb, postgresql, pgx, sqlite3, mssql). It returns
// false for unknown names so callers can degrade to an empty result instead
// of failing.
func FromString(s string) (Dialect, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mysql", "mariadb":
		return MySQL, true
	case "postgres", "postgresql", "pgsql", "pgx":
		return Postgres, true
	case "sqlite", "sqlite3":
		return SQLite, true
	case "sqlserver", "mssql":
		return SQLServer, true
	}
	return "", false
}
