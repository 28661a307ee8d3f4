package sink

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/tabload/pkg/tabload"
)

func TestDialectForUnknown(t *testing.T) {
	_, err := dialectFor("db2")
	require.Error(t, err)
	assert.ErrorIs(t, err, tabload.ErrInvalidConfig)
}

func TestCreateTableSQL(t *testing.T) {
	columns := []tabload.Column{
		{Name: "name", Type: tabload.TypeText},
		{Name: "age", Type: tabload.TypeInteger},
		{Name: "joined", Type: tabload.TypeDate},
	}

	tests := []struct {
		dialect tabload.Dialect
		want    string
	}{
		{tabload.DialectPostgres, `CREATE TABLE "people" ("name" TEXT, "age" BIGINT, "joined" TIMESTAMP)`},
		{tabload.DialectMySQL, "CREATE TABLE `people` (`name` TEXT, `age` BIGINT, `joined` DATETIME)"},
		{tabload.DialectSQLite, `CREATE TABLE "people" ("name" TEXT, "age" INTEGER, "joined" TEXT)`},
		{tabload.DialectSQLServer, "CREATE TABLE [people] ([name] NVARCHAR(MAX), [age] BIGINT, [joined] DATETIME2)"},
		{tabload.DialectOracle, `CREATE TABLE "people" ("name" VARCHAR2(4000), "age" NUMBER(19), "joined" TIMESTAMP)`},
	}
	for _, tt := range tests {
		t.Run(string(tt.dialect), func(t *testing.T) {
			dl, err := dialectFor(tt.dialect)
			require.NoError(t, err)
			assert.Equal(t, tt.want, dl.createTableSQL("people", columns))
		})
	}
}

func TestInsertSQLPlaceholderNumbering(t *testing.T) {
	columns := []tabload.Column{
		{Name: "a", Type: tabload.TypeText},
		{Name: "b", Type: tabload.TypeInteger},
	}

	tests := []struct {
		dialect tabload.Dialect
		rows    int
		want    string
	}{
		{tabload.DialectPostgres, 2, `INSERT INTO "t" ("a", "b") VALUES ($1, $2), ($3, $4)`},
		{tabload.DialectMySQL, 2, "INSERT INTO `t` (`a`, `b`) VALUES (?, ?), (?, ?)"},
		{tabload.DialectSQLite, 1, `INSERT INTO "t" ("a", "b") VALUES (?, ?)`},
		{tabload.DialectSQLServer, 2, "INSERT INTO [t] ([a], [b]) VALUES (@p1, @p2), (@p3, @p4)"},
		{tabload.DialectOracle, 1, `INSERT INTO "t" ("a", "b") VALUES (:1, :2)`},
	}
	for _, tt := range tests {
		t.Run(string(tt.dialect), func(t *testing.T) {
			dl, err := dialectFor(tt.dialect)
			require.NoError(t, err)
			assert.Equal(t, tt.want, dl.insertSQL("t", columns, tt.rows))
		})
	}
}

func TestRowsPerStatement(t *testing.T) {
	postgres, _ := dialectFor(tabload.DialectPostgres)
	sqlserver, _ := dialectFor(tabload.DialectSQLServer)
	oracle, _ := dialectFor(tabload.DialectOracle)

	// Unlimited dialects take the whole batch in one statement.
	assert.Equal(t, 10000, postgres.rowsPerStatement(10000, 5))

	// SQL Server: at most 1000 rows and 2100 parameters per statement.
	assert.Equal(t, 1000, sqlserver.rowsPerStatement(10000, 2))
	assert.Equal(t, 700, sqlserver.rowsPerStatement(10000, 3), "2100 params / 3 columns")
	assert.Equal(t, 1, sqlserver.rowsPerStatement(10000, 3000), "wider than the param cap still sends one row")

	// Oracle has no multi-row VALUES.
	assert.Equal(t, 1, oracle.rowsPerStatement(10000, 5))
}

func TestIdentifierQuotingEscapes(t *testing.T) {
	assert.Equal(t, `"a""b"`, doubleQuote(`a"b`))
	assert.Equal(t, "`a``b`", backtickQuote("a`b"))
	assert.Equal(t, "[a]]b]", bracketQuote("a]b"))
}

func TestSQLiteTruncateIsDelete(t *testing.T) {
	dl, _ := dialectFor(tabload.DialectSQLite)
	assert.Equal(t, `DELETE FROM "t"`, dl.truncateStmt(`"t"`))

	pg, _ := dialectFor(tabload.DialectPostgres)
	assert.Equal(t, `TRUNCATE TABLE "t"`, pg.truncateStmt(`"t"`))
}

func TestBindValue(t *testing.T) {
	sqlite, _ := dialectFor(tabload.DialectSQLite)
	oracle, _ := dialectFor(tabload.DialectOracle)
	postgres, _ := dialectFor(tabload.DialectPostgres)

	ts := time.Date(2020, 1, 2, 10, 30, 0, 0, time.UTC)

	assert.Nil(t, sqlite.bindValue(nil, tabload.DialectSQLite))
	assert.Equal(t, int64(1), sqlite.bindValue(true, tabload.DialectSQLite))
	assert.Equal(t, int64(0), sqlite.bindValue(false, tabload.DialectSQLite))
	assert.Equal(t, "2020-01-02 10:30:00", sqlite.bindValue(ts, tabload.DialectSQLite))

	assert.Equal(t, int64(1), oracle.bindValue(true, tabload.DialectOracle))

	// Drivers with native types pass values through untouched.
	assert.Equal(t, true, postgres.bindValue(true, tabload.DialectPostgres))
	assert.Equal(t, ts, postgres.bindValue(ts, tabload.DialectPostgres))
}
