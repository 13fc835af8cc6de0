package library

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/mattn/go-sqlite3"
)

// sqliteDriverName is go-sqlite3 plus the MySQL date helpers the report
// statements call (YEAR, MONTH, NOW), so the same SQL runs on both engines.
const sqliteDriverName = "sqlite3_circulares"

// sqliteTimeLayout matches CURRENT_TIMESTAMP and compares lexically with the
// values go-sqlite3 writes for the UTC time.Time parameters the executor binds.
const sqliteTimeLayout = "2006-01-02 15:04:05"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			if err := conn.RegisterFunc("YEAR", sqliteYear, true); err != nil {
				return err
			}
			if err := conn.RegisterFunc("MONTH", sqliteMonth, true); err != nil {
				return err
			}
			return conn.RegisterFunc("NOW", sqliteNow, false)
		},
	})
}

func sqliteYear(v any) any  { return datePart(v, 0, 4) }
func sqliteMonth(v any) any { return datePart(v, 5, 7) }

func sqliteNow() string { return time.Now().UTC().Format(sqliteTimeLayout) }

// datePart slices a "YYYY-MM-DD..." value. NULL and unparsable input yield NULL,
// like MySQL does.
func datePart(v any, from, to int) any {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case []byte:
		s = string(t)
	case time.Time:
		s = t.UTC().Format(sqliteTimeLayout)
	default:
		return nil
	}
	if len(s) < to {
		return nil
	}
	n, err := strconv.ParseInt(s[from:to], 10, 64)
	if err != nil {
		return nil
	}
	return n
}
