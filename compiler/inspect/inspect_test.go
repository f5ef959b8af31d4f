package inspect

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/schemagen"
	"github.com/syssam/schemagen/dialect"
	"github.com/syssam/schemagen/schema"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestNewInspector(t *testing.T) {
	t.Parallel()

	db, _ := newMock(t)
	for _, d := range dialect.All {
		ins, err := New(db, d)
		require.NoError(t, err)
		require.NotNil(t, ins)
	}

	_, err := New(db, dialect.Dialect("oracle"))
	require.Error(t, err)
	assert.True(t, schemagen.IsUnsupportedDialect(err))
}

func TestMySQLInspector(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	mock.ExpectQuery(mysqlTablesQuery).
		WithArgs("app").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).
			AddRow("order").
			AddRow("user"))
	mock.ExpectQuery(mysqlColumnsQuery).
		WithArgs("app", "user").
		WillReturnRows(sqlmock.NewRows([]string{
			"column_name", "column_type", "is_nullable", "column_key",
			"column_default", "extra", "column_comment", "ordinal_position",
		}).
			AddRow("user_id", "int(11)", "NO", "PRI", nil, "auto_increment", "", 1).
			AddRow("name", "varchar(100)", "NO", "", nil, "", "display name", 2).
			AddRow("is_active", "tinyint(1)", "YES", "", "1", "", "", 3))

	ins, err := New(db, dialect.MySQL)
	require.NoError(t, err)

	names, err := ins.TableNames(context.Background(), "app")
	require.NoError(t, err)
	assert.Equal(t, []string{"order", "user"}, names)

	table, err := ins.Table(context.Background(), "app", "user")
	require.NoError(t, err)
	require.Len(t, table.Columns, 3)

	id := table.Columns[0]
	assert.Equal(t, "int(11)", id.RawType)
	assert.True(t, id.PrimaryKey)
	assert.True(t, id.AutoIncrement())
	assert.False(t, id.Nullable)
	assert.Equal(t, 1, id.Position)

	active := table.Columns[2]
	assert.True(t, active.Nullable)
	assert.True(t, active.HasDefault)
	assert.Equal(t, "1", active.Default)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresInspector(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	mock.ExpectQuery(postgresColumnsQuery).
		WithArgs("public", "event").
		WillReturnRows(sqlmock.NewRows([]string{
			"column_name", "data_type", "character_maximum_length",
			"numeric_precision", "numeric_scale", "is_nullable",
			"column_default", "ordinal_position", "is_primary",
		}).
			AddRow("id", "bigint", nil, 64, 0, "NO", "nextval('event_id_seq'::regclass)", 1, true).
			AddRow("title", "character varying", 120, nil, nil, "NO", nil, 2, false).
			AddRow("amount", "numeric", nil, 10, 2, "YES", "0", 3, false))

	ins, err := New(db, dialect.Postgres)
	require.NoError(t, err)

	// An empty schema name defaults to public.
	table, err := ins.Table(context.Background(), "", "event")
	require.NoError(t, err)
	require.Len(t, table.Columns, 3)

	id := table.Columns[0]
	assert.Equal(t, "bigint", id.RawType)
	assert.True(t, id.PrimaryKey)
	assert.True(t, id.AutoIncrement())
	assert.False(t, id.HasDefault, "a sequence default is auto-increment, not a value default")

	assert.Equal(t, "character varying(120)", table.Columns[1].RawType)

	amount := table.Columns[2]
	assert.Equal(t, "numeric(10,2)", amount.RawType)
	assert.True(t, amount.HasDefault)
	assert.Equal(t, "0", amount.Default)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteInspector(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	mock.ExpectQuery(sqliteColumnsQuery).
		WithArgs("note").
		WillReturnRows(sqlmock.NewRows([]string{"cid", "name", "type", "notnull", "dflt_value", "pk"}).
			AddRow(0, "id", "INTEGER", 0, nil, 1).
			AddRow(1, "body", "TEXT", 1, nil, 0))

	ins, err := New(db, dialect.SQLite)
	require.NoError(t, err)

	table, err := ins.Table(context.Background(), "", "note")
	require.NoError(t, err)
	require.Len(t, table.Columns, 2)

	id := table.Columns[0]
	assert.True(t, id.PrimaryKey)
	assert.True(t, id.AutoIncrement(), "INTEGER primary key aliases the rowid")
	assert.False(t, id.Nullable)
	assert.Equal(t, 1, id.Position)

	body := table.Columns[1]
	assert.False(t, body.Nullable)
	assert.Equal(t, 2, body.Position)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLServerRawType(t *testing.T) {
	t.Parallel()

	maxLen := sql.NullInt64{Int64: -1, Valid: true}
	charLen := sql.NullInt64{Int64: 50, Valid: true}
	precision := sql.NullInt64{Int64: 10, Valid: true}
	scale := sql.NullInt64{Int64: 2, Valid: true}
	none := sql.NullInt64{}

	assert.Equal(t, "nvarchar(max)", sqlserverRawType("nvarchar", maxLen, none, none))
	assert.Equal(t, "nvarchar(50)", sqlserverRawType("nvarchar", charLen, none, none))
	assert.Equal(t, "decimal(10,2)", sqlserverRawType("decimal", none, precision, scale))
	assert.Equal(t, "int", sqlserverRawType("int", none, precision, sql.NullInt64{Int64: 0, Valid: true}))
}

func TestInspectQueryFailure(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	mock.ExpectQuery(mysqlTablesQuery).WithArgs("app").WillReturnError(sql.ErrConnDone)

	ins, err := New(db, dialect.MySQL)
	require.NoError(t, err)

	_, err = ins.TableNames(context.Background(), "app")
	require.Error(t, err)
	assert.True(t, IsInspectError(err))
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	tables := []schema.Table{{
		Name: "user",
		Columns: []schema.Column{
			{Name: "user_id", RawType: "int(11)", PrimaryKey: true, Extra: "auto_increment", Position: 1},
			{Name: "name", RawType: "varchar(100)", Position: 2},
		},
	}}
	snap := &Snapshot{
		Dialect:   "mysql",
		Schema:    "app",
		Tables:    tables,
		CreatedAt: time.Now().UTC(),
	}

	path := filepath.Join(t.TempDir(), "cache", "schema.snap")
	require.NoError(t, WriteSnapshot(path, snap))

	got, err := ReadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, snap.Dialect, got.Dialect)
	assert.Equal(t, snap.Schema, got.Schema)
	assert.Equal(t, tables, got.Tables)
}

func TestSnapshotChanged(t *testing.T) {
	t.Parallel()

	tables := []schema.Table{{
		Name: "user",
		Columns: []schema.Column{
			{Name: "user_id", RawType: "int(11)", Position: 1},
		},
	}}
	snap := &Snapshot{Tables: tables}

	assert.False(t, snap.Changed([]schema.Table{{
		Name: "user",
		Columns: []schema.Column{
			{Name: "user_id", RawType: "int(11)", Position: 1},
		},
	}}))
	assert.True(t, snap.Changed(nil))
	assert.True(t, snap.Changed([]schema.Table{{
		Name: "user",
		Columns: []schema.Column{
			{Name: "user_id", RawType: "bigint", Position: 1},
		},
	}}))
}

func TestReadSnapshotMissing(t *testing.T) {
	t.Parallel()

	_, err := ReadSnapshot(filepath.Join(t.TempDir(), "absent.snap"))
	require.Error(t, err)
	assert.True(t, IsInspectError(err))
}
