package typemap

import (
	"ariga.io/atlas/sql/postgres"
)

// The built-in tables below are ordered most-specific-first. A handful of
// entries are retained duplicates carried over from the source tables
// ("text", "date", "time" each appear twice); the ordered-list model makes
// the first occurrence win deterministically, so the shadowed entries are
// harmless and kept explicit rather than silently dropped.

// CanonicalTable classifies raw dialect types into the canonical vocabulary.
var CanonicalTable = Table{
	{"tinyint(1)", string(Bool)},
	{"boolean", string(Bool)},
	{"bool", string(Bool)},
	{"bigserial", string(Int)},
	{"smallserial", string(Int)},
	{"serial", string(Int)},
	{"bigint", string(Int)},
	{"smallint", string(Int)},
	{"mediumint", string(Int)},
	{"tinyint", string(Int)},
	{"integer", string(Int)},
	{"int", string(Int)},
	{"year", string(Int)},
	{"bit", string(Int)},
	{"double", string(Float)},
	{"float", string(Float)},
	{"real", string(Float)},
	{"decimal", string(Float)},
	{"numeric", string(Float)},
	{"money", string(Float)},
	{"json", string(Array)},
	{"longblob", string(Resource)},
	{"mediumblob", string(Resource)},
	{"tinyblob", string(Resource)},
	{"blob", string(Resource)},
	{"bytea", string(Resource)},
	{"varbinary", string(Resource)},
	{"binary", string(Resource)},
	{"character varying", string(String)},
	{"character", string(String)},
	{"nvarchar", string(String)},
	{"varchar", string(String)},
	{"nchar", string(String)},
	{"char", string(String)},
	{"longtext", string(String)},
	{"mediumtext", string(String)},
	{"tinytext", string(String)},
	{"text", string(String)},
	{"enum", string(String)},
	{"set", string(String)},
	{"uuid", string(String)},
	{"datetime", string(String)},
	{"timestamp", string(String)},
	{"date", string(String)},
	{"time", string(String)},
	// Shadowed duplicates carried over from the source tables.
	{"text", string(String)},
	{"date", string(String)},
	{"time", string(String)},
}

// ColumnMap normalizes raw dialect types into the column tokens used by
// generated @Column annotations. It is the "generic code" table: entity,
// DTO and validator generation all resolve types through it, keeping the
// three flavors consistent for the same column.
var ColumnMap = Table{
	{"tinyint(1)", "bool"},
	{"boolean", "bool"},
	{"bool", "bool"},
	{"bigserial", "bigint"},
	{"smallserial", "smallint"},
	{"serial", "int"},
	{"bigint", "bigint"},
	{"smallint", "smallint"},
	{"mediumint", "int"},
	{"tinyint", "int"},
	{"integer", "int"},
	{"int", "int"},
	{"year", "year"},
	{"bit", "int"},
	{"double precision", "double"},
	{"double", "double"},
	{"float", "float"},
	{"real", "float"},
	{"decimal", "decimal"},
	{"numeric", "decimal"},
	{"datetime", "datetime"},
	{"timestamptz", "timestamp"},
	{"timestamp with time zone", "timestamp"},
	{"timestamp", "timestamp"},
	{"date", "date"},
	{"time", "time"},
	{"jsonb", "json"},
	{"json", "json"},
	{"uuid", "uuid"},
	{"longblob", "blob"},
	{"mediumblob", "blob"},
	{"tinyblob", "blob"},
	{"blob", "blob"},
	{"bytea", "blob"},
	{"varbinary", "blob"},
	{"binary", "blob"},
	{"character varying", "varchar"},
	{"character", "char"},
	{"nvarchar", "varchar"},
	{"varchar", "varchar"},
	{"nchar", "char"},
	{"char", "char"},
	{"longtext", "text"},
	{"mediumtext", "text"},
	{"tinytext", "text"},
	{"text", "text"},
	{"enum", "enum"},
	{"set", "set"},
}

// MySQL renders type tokens in MySQL/MariaDB syntax.
var MySQL = Table{
	{"tinyint(1)", "tinyint(1)"},
	{"boolean", "tinyint(1)"},
	{"bool", "tinyint(1)"},
	{"bigserial", "bigint"},
	{"smallserial", "smallint"},
	{"serial", "int"},
	{"bigint", "bigint"},
	{"smallint", "smallint"},
	{"mediumint", "mediumint"},
	{"tinyint", "tinyint"},
	{"integer", "int"},
	{"int", "int"},
	{"year", "year"},
	{"bit", "bit"},
	{"double precision", "double"},
	{"double", "double"},
	{"float", "float"},
	{"real", "double"},
	{"decimal", "decimal"},
	{"numeric", "decimal"},
	{"datetime", "datetime"},
	{"timestamptz", "timestamp"},
	{"timestamp with time zone", "timestamp"},
	{"timestamp", "timestamp"},
	{"date", "date"},
	{"time", "time"},
	{"jsonb", "json"},
	{"json", "json"},
	{"uuid", "varchar(36)"},
	{"longblob", "longblob"},
	{"mediumblob", "mediumblob"},
	{"tinyblob", "tinyblob"},
	{"blob", "blob"},
	{"bytea", "blob"},
	{"varbinary", "varbinary"},
	{"binary", "binary"},
	{"character varying", "varchar"},
	{"character", "char"},
	{"nvarchar", "varchar"},
	{"varchar", "varchar"},
	{"nchar", "char"},
	{"char", "char"},
	{"longtext", "longtext"},
	{"mediumtext", "mediumtext"},
	{"tinytext", "tinytext"},
	{"text", "text"},
	{"enum", "enum"},
	{"set", "set"},
}

// Postgres renders type tokens in PostgreSQL syntax.
var Postgres = Table{
	{"tinyint(1)", "boolean"},
	{"boolean", "boolean"},
	{"bool", "boolean"},
	{"bigserial", postgres.TypeBigSerial},
	{"smallserial", postgres.TypeSmallSerial},
	{"serial", postgres.TypeSerial},
	{"bigint", "bigint"},
	{"smallint", "smallint"},
	{"mediumint", "integer"},
	{"tinyint", "smallint"},
	{"integer", "integer"},
	{"int", "integer"},
	{"year", "integer"},
	{"bit", "bit"},
	{"double precision", "double precision"},
	{"double", "double precision"},
	{"float", "real"},
	{"real", "real"},
	{"decimal", "numeric"},
	{"numeric", "numeric"},
	{"datetime", "timestamp"},
	{"timestamptz", "timestamp with time zone"},
	{"timestamp with time zone", "timestamp with time zone"},
	{"timestamp", "timestamp"},
	{"date", "date"},
	{"time", "time"},
	{"jsonb", "jsonb"},
	{"json", "json"},
	{"uuid", "uuid"},
	{"longblob", "bytea"},
	{"mediumblob", "bytea"},
	{"tinyblob", "bytea"},
	{"blob", "bytea"},
	{"bytea", "bytea"},
	{"varbinary", "bytea"},
	{"binary", "bytea"},
	{"character varying", "character varying"},
	{"character", "character"},
	{"nvarchar", "character varying"},
	{"varchar", "character varying"},
	{"nchar", "character"},
	{"char", "character"},
	{"longtext", "text"},
	{"mediumtext", "text"},
	{"tinytext", "text"},
	{"text", "text"},
	{"enum", "text"},
	{"set", "text"},
}

// SQLite renders type tokens in SQLite syntax. SQLite's type affinity is
// forgiving, so the table collapses the numeric families and keeps temporal
// tokens as-is.
var SQLite = Table{
	{"tinyint(1)", "boolean"},
	{"boolean", "boolean"},
	{"bool", "boolean"},
	{"bigserial", "integer"},
	{"smallserial", "integer"},
	{"serial", "integer"},
	{"bigint", "integer"},
	{"smallint", "integer"},
	{"mediumint", "integer"},
	{"tinyint", "integer"},
	{"integer", "integer"},
	{"int", "integer"},
	{"year", "integer"},
	{"bit", "integer"},
	{"double", "real"},
	{"float", "real"},
	{"real", "real"},
	{"decimal", "real"},
	{"numeric", "real"},
	{"datetime", "datetime"},
	{"timestamptz", "timestamp"},
	{"timestamp with time zone", "timestamp"},
	{"timestamp", "timestamp"},
	{"date", "date"},
	{"time", "time"},
	{"longblob", "blob"},
	{"mediumblob", "blob"},
	{"tinyblob", "blob"},
	{"blob", "blob"},
	{"bytea", "blob"},
	{"varbinary", "blob"},
	{"binary", "blob"},
	{"character varying", "varchar"},
	{"character", "char"},
	{"nvarchar", "varchar"},
	{"varchar", "varchar"},
	{"nchar", "char"},
	{"char", "char"},
	{"longtext", "text"},
	{"mediumtext", "text"},
	{"tinytext", "text"},
	{"text", "text"},
	{"enum", "text"},
	{"set", "text"},
	{"uuid", "text"},
	{"json", "text"},
}

// Dialects maps each SQL dialect to its conversion table. The column map is
// intentionally absent: it is not a dialect, it is the normalization step
// shared by all of them.
var Dialects = map[string]Table{
	"mysql":    MySQL,
	"postgres": Postgres,
	"sqlite":   SQLite,
}
