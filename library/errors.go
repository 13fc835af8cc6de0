package library

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

var (
	// ErrConnectionUnavailable means no connection could be opened; nothing ran.
	ErrConnectionUnavailable = errors.New("database connection unavailable")
	// ErrExecutionFailed means the statement reached the database and failed.
	// Writes are rolled back before it is returned.
	ErrExecutionFailed = errors.New("statement execution failed")
	// ErrConstraintViolation is joined with ErrExecutionFailed when the failure
	// was a key, uniqueness, null or check constraint.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrNotFound is returned by single-row reads that match nothing.
	ErrNotFound = errors.New("record not found")
	// ErrUnknownField rejects filter fields outside a table's column list.
	ErrUnknownField = errors.New("unknown field")
)

// mysql error numbers that signal a constraint rather than a broken statement.
var mysqlConstraintErrors = map[uint16]struct{}{
	1048: {}, // column cannot be null
	1062: {}, // duplicate entry
	1216: {}, // child row: foreign key fails
	1217: {}, // parent row: foreign key fails
	1451: {}, // cannot delete or update a parent row
	1452: {}, // cannot add or update a child row
	3819: {}, // check constraint violated
}

// classify wraps a driver error with the execution kinds callers test with errors.Is.
func classify(err error) error {
	if isConstraintViolation(err) {
		return errors.Join(ErrExecutionFailed, ErrConstraintViolation, err)
	}
	return errors.Join(ErrExecutionFailed, err)
}

func isConstraintViolation(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		_, ok := mysqlConstraintErrors[myErr.Number]
		return ok
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
