package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"libros-circulares/library"
)

const (
	formatTable = "table"
	formatJSON  = "json"

	maxCellWidth = 30
	nullCell     = "NULL"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type renderer struct {
	out    io.Writer
	format string
}

// render prints rs under title in the configured format.
func (r *renderer) render(title string, rs *library.ResultSet) error {
	if r.format == formatJSON {
		return r.writeJSON(title, rs)
	}
	r.writeTable(title, rs)
	return nil
}

// writeTable pads every column to its widest cell plus two, with cells clipped to
// maxCellWidth.
func (r *renderer) writeTable(title string, rs *library.ResultSet) {
	if rs.Len() == 0 {
		fmt.Fprintf(r.out, "No records found for %s.\n", title)
		return
	}

	cells := lo.Map(rs.Rows, func(row library.Row, _ int) []string {
		return lo.Map(rs.Columns, func(col string, _ int) string {
			return clip(formatCell(row[col]), maxCellWidth)
		})
	})
	widths := lo.Map(rs.Columns, func(col string, i int) int {
		w := utf8.RuneCountInString(col)
		for _, row := range cells {
			w = max(w, utf8.RuneCountInString(row[i]))
		}
		return w + 2
	})

	header := joinPadded(rs.Columns, widths)
	rule := strings.Repeat("-", utf8.RuneCountInString(header))

	fmt.Fprintf(r.out, "\n--- Results: %s (%d records) ---\n", title, rs.Len())
	fmt.Fprintln(r.out, header)
	fmt.Fprintln(r.out, rule)
	for _, row := range cells {
		fmt.Fprintln(r.out, joinPadded(row, widths))
	}
	fmt.Fprintln(r.out, rule)
}

type jsonResult struct {
	Title   string        `json:"title"`
	Count   int           `json:"count"`
	Columns []string      `json:"columns"`
	Rows    []library.Row `json:"rows"`
}

func (r *renderer) writeJSON(title string, rs *library.ResultSet) error {
	res := jsonResult{Title: title, Columns: []string{}, Rows: []library.Row{}}
	if rs != nil {
		res.Count = rs.Len()
		if rs.Columns != nil {
			res.Columns = rs.Columns
		}
		if rs.Rows != nil {
			res.Rows = rs.Rows
		}
	}
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", title, err)
	}
	_, err = fmt.Fprintln(r.out, string(b))
	return err
}

func joinPadded(cells []string, widths []int) string {
	padded := lo.Map(cells, func(c string, i int) string {
		return c + strings.Repeat(" ", widths[i]-utf8.RuneCountInString(c))
	})
	return strings.Join(padded, " | ")
}

func formatCell(v any) string {
	switch v := v.(type) {
	case nil:
		return nullCell
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 {
			return v.Format(dateLayout)
		}
		return v.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(v)
	}
}

// clip shortens s to at most n runes, marking the cut with "...".
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
