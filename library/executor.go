package library

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Mode selects what Execute does with a statement.
type Mode int

const (
	ReadAll Mode = iota
	ReadOne
	Write
)

func (m Mode) String() string {
	switch m {
	case ReadAll:
		return "read-all"
	case ReadOne:
		return "read-one"
	case Write:
		return "write"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Row is one result row keyed by column name.
type Row map[string]any

// ResultSet keeps rows in result-set order and columns in select order.
type ResultSet struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rows)
}

// Result is what Execute returns for any mode; only the field matching the
// mode is set.
type Result struct {
	Set      *ResultSet
	Row      Row
	Affected int64 // new id for inserts, rows affected otherwise
}

// Executor is the only way the rest of the package reaches the database.
type Executor interface {
	// Query runs a read and returns every row.
	Query(ctx context.Context, query string, args ...any) (*ResultSet, error)
	// QueryRow returns the first row, or ErrNotFound.
	QueryRow(ctx context.Context, query string, args ...any) (Row, error)
	// Exec runs a write in its own transaction. Inserts return the generated
	// key, everything else the affected row count.
	Exec(ctx context.Context, query string, args ...any) (int64, error)
}

// SQLExecutor runs each call on its own connection from a Provider and
// always releases that connection before returning.
type SQLExecutor struct {
	provider Provider
	log      *zap.Logger
}

// NewExecutor binds an executor to a connection provider.
func NewExecutor(provider Provider, log *zap.Logger) *SQLExecutor {
	return &SQLExecutor{provider: provider, log: log}
}

// Execute is the mode-switched entry point; Query, QueryRow and Exec are the
// typed shortcuts.
func (e *SQLExecutor) Execute(ctx context.Context, query string, params []any, mode Mode) (Result, error) {
	switch mode {
	case ReadAll:
		set, err := e.Query(ctx, query, params...)
		return Result{Set: set}, err
	case ReadOne:
		row, err := e.QueryRow(ctx, query, params...)
		return Result{Row: row}, err
	case Write:
		n, err := e.Exec(ctx, query, params...)
		return Result{Affected: n}, err
	default:
		return Result{}, fmt.Errorf("execute: unknown %s", mode)
	}
}

func (e *SQLExecutor) Query(ctx context.Context, query string, args ...any) (*ResultSet, error) {
	conn, release, err := e.provider.Connect(ctx)
	if err != nil {
		return &ResultSet{}, err
	}
	defer release()

	set, err := collect(ctx, conn, query, utcTimes(args), 0)
	if err != nil {
		e.failed(query, ReadAll, err)
		return &ResultSet{}, classify(err)
	}
	return set, nil
}

func (e *SQLExecutor) QueryRow(ctx context.Context, query string, args ...any) (Row, error) {
	conn, release, err := e.provider.Connect(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	set, err := collect(ctx, conn, query, utcTimes(args), 1)
	if err != nil {
		e.failed(query, ReadOne, err)
		return nil, classify(err)
	}
	if len(set.Rows) == 0 {
		return nil, ErrNotFound
	}
	return set.Rows[0], nil
}

func (e *SQLExecutor) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	conn, release, err := e.provider.Connect(ctx)
	if err != nil {
		return 0, err
	}
	defer release()

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		e.failed(query, Write, err)
		return 0, classify(err)
	}

	res, err := tx.ExecContext(ctx, query, utcTimes(args)...)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		e.failed(query, Write, err)
		return 0, classify(err)
	}
	if err := tx.Commit(); err != nil {
		e.failed(query, Write, err)
		return 0, classify(err)
	}

	var n int64
	if isInsert(query) {
		n, err = res.LastInsertId()
	} else {
		n, err = res.RowsAffected()
	}
	if err != nil {
		e.failed(query, Write, err)
		return 0, classify(err)
	}
	return n, nil
}

func (e *SQLExecutor) failed(query string, mode Mode, err error) {
	e.log.Error("database statement failed",
		zap.Stringer("mode", mode),
		zap.String("query", compact(query)),
		zap.Error(err))
}

// collect reads up to limit rows (0 means all) into a ResultSet.
func collect(ctx context.Context, conn *sqlx.Conn, query string, args []any, limit int) (*ResultSet, error) {
	rows, err := conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	set := &ResultSet{Columns: cols, Rows: []Row{}}
	for rows.Next() {
		m := make(map[string]any, len(cols))
		if err := rows.MapScan(m); err != nil {
			return nil, err
		}
		for k, v := range m {
			if b, ok := v.([]byte); ok {
				m[k] = string(b)
			}
		}
		set.Rows = append(set.Rows, Row(m))
		if limit > 0 && len(set.Rows) == limit {
			break
		}
	}
	return set, rows.Err()
}

// utcTimes rewrites time arguments to UTC. sqlite keeps the offset it is
// given in the stored text, and NOW() and CURRENT_TIMESTAMP compare against
// it as UTC strings. The mysql driver converts to its own Loc either way.
func utcTimes(args []any) []any {
	var out []any
	for i, a := range args {
		var t time.Time
		switch v := a.(type) {
		case time.Time:
			t = v
		case *time.Time:
			if v == nil {
				continue
			}
			t = *v
		default:
			continue
		}
		if out == nil {
			out = append([]any(nil), args...)
		}
		out[i] = t.UTC()
	}
	if out == nil {
		return args
	}
	return out
}

func isInsert(query string) bool {
	return strings.Contains(strings.ToUpper(query), "INSERT")
}

// compact folds a multi-line statement onto one line for log output.
func compact(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
