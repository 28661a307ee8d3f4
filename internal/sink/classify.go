package sink

import (
	"errors"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

// MySQL server error numbers for constraint violations.
// See: https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	myNumDupEntry        = 1062
	myNumBadNullColumn   = 1048
	myNumNoReferencedRow = 1452
	myNumRowIsReferenced = 1451
	myNumCheckViolated   = 3819
)

// isIntegrityViolation reports whether err is a constraint violation
// (duplicate key, not-null, foreign key, check) on any supported dialect.
//
// Postgres and MySQL expose structured error codes through their drivers;
// the remaining drivers are matched on the diagnostic text their engines
// emit for constraint failures.
func isIntegrityViolation(err error) bool {
	if err == nil {
		return false
	}

	// Class 23 - Integrity Constraint Violation
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case myNumDupEntry, myNumBadNullColumn, myNumNoReferencedRow, myNumRowIsReferenced, myNumCheckViolated:
			return true
		}
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"constraint failed",            // SQLite: "NOT NULL constraint failed", "UNIQUE constraint failed"
		"constraint violation",         //
		"violation of primary key",     // SQL Server
		"violation of unique key",      // SQL Server
		"cannot insert the value null", // SQL Server
		"unique constraint",            // Oracle ORA-00001
		"cannot insert null",           // Oracle ORA-01400
		"integrity constraint",         // Oracle ORA-02291
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// isConnectionFailure reports whether err is a failure to reach or
// authenticate with the server rather than a statement-level failure.
func isConnectionFailure(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Class 08 - Connection Exception; Class 28 - Invalid Authorization
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "28")
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"connection refused",
		"connection reset",
		"no such host",
		"i/o timeout",
		"bad connection",
		"failed to connect",
		"access denied for user", // MySQL auth
		"login failed",           // SQL Server auth
		"ora-01017",              // Oracle invalid username/password
		"ora-12541",              // Oracle no listener
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// isMissingTable reports whether err means the referenced table does not
// exist. Used by the existence probe, so text matching per engine is enough.
func isMissingTable(err error) bool {
	if err == nil {
		return false
	}

	// 42P01 - undefined_table
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P01"
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1146 // ER_NO_SUCH_TABLE
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"no such table",         // SQLite
		"invalid object name",   // SQL Server
		"table or view does not exist", // Oracle ORA-00942
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
