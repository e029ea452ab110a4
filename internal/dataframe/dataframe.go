// Package dataframe implements the single CSV-backed dataframe a Raoul
// program may load via read_csv() (spec invariant I5: at most one per
// program). Rows are staged into an in-process modernc.org/sqlite
// database rather than held as Go slices, so get_rows/get_columns/average
// and friends are plain SQL against a real relational engine instead of a
// hand-rolled aggregation loop — the teacher's own go.mod already depends
// on modernc.org/sqlite for exactly this kind of embedded-storage need.
package dataframe

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

// Frame is one loaded CSV file, backed by a private in-memory SQLite table.
type Frame struct {
	db      *sql.DB
	table   string
	columns []string
	numeric map[string]bool
}

const tableName = "raoul_dataframe"

// Load reads path as CSV, infers a REAL/TEXT type per column from its
// values, and bulk-loads every row into a fresh in-memory table.
func Load(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataframe: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("dataframe: reading header: %w", err)
	}
	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataframe: %w", err)
		}
		rows = append(rows, rec)
	}

	numeric := make(map[string]bool, len(header))
	for col := range header {
		isNumeric := true
		for _, row := range rows {
			if col >= len(row) || row[col] == "" {
				continue
			}
			if _, err := strconv.ParseFloat(row[col], 64); err != nil {
				isNumeric = false
				break
			}
		}
		numeric[header[col]] = isNumeric
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("dataframe: %w", err)
	}

	var cols []string
	for _, name := range header {
		sqlType := "TEXT"
		if numeric[name] {
			sqlType = "REAL"
		}
		cols = append(cols, fmt.Sprintf("%q %s", name, sqlType))
	}
	createStmt := fmt.Sprintf("CREATE TABLE %s (%s)", tableName, strings.Join(cols, ", "))
	if _, err := db.Exec(createStmt); err != nil {
		db.Close()
		return nil, fmt.Errorf("dataframe: %w", err)
	}

	placeholders := strings.Repeat("?, ", len(header))
	placeholders = strings.TrimSuffix(placeholders, ", ")
	insertStmt := fmt.Sprintf("INSERT INTO %s VALUES (%s)", tableName, placeholders)

	tx, err := db.Begin()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("dataframe: %w", err)
	}
	stmt, err := tx.Prepare(insertStmt)
	if err != nil {
		tx.Rollback()
		db.Close()
		return nil, fmt.Errorf("dataframe: %w", err)
	}
	for _, row := range rows {
		args := make([]any, len(header))
		for i := range header {
			switch {
			case i >= len(row), row[i] == "" && numeric[header[i]]:
				args[i] = nil
			default:
				args[i] = row[i]
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			stmt.Close()
			tx.Rollback()
			db.Close()
			return nil, fmt.Errorf("dataframe: %w", err)
		}
	}
	stmt.Close()
	if err := tx.Commit(); err != nil {
		db.Close()
		return nil, fmt.Errorf("dataframe: %w", err)
	}

	return &Frame{db: db, table: tableName, columns: header, numeric: numeric}, nil
}

// Close releases the backing database.
func (f *Frame) Close() error {
	return f.db.Close()
}

// RowCount is the number of data rows loaded.
func (f *Frame) RowCount() (int, error) {
	var n int
	err := f.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", f.table)).Scan(&n)
	return n, err
}

// ColumnCount is the number of columns the CSV header declared.
func (f *Frame) ColumnCount() int {
	return len(f.columns)
}

// hasColumn reports whether name is a column of this dataframe.
func (f *Frame) hasColumn(name string) bool {
	for _, c := range f.columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column fetches one numeric column's values as a float64 slice, in row
// order, skipping NULL/empty cells.
func (f *Frame) Column(name string) ([]float64, error) {
	if !f.hasColumn(name) {
		return nil, fmt.Errorf("dataframe: unknown column %q", name)
	}
	rows, err := f.db.Query(fmt.Sprintf("SELECT %q FROM %s", name, f.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []float64
	for rows.Next() {
		var v sql.NullFloat64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		if v.Valid {
			values = append(values, v.Float64)
		}
	}
	return values, rows.Err()
}

// Average, Std, Median, Variance, Min, Max and Range are computed in Go
// over a fetched column rather than via SQLite aggregate functions: SQLite
// ships AVG/MIN/MAX but no portable STDDEV/VARIANCE/MEDIAN, so every
// statistic here is computed the same way for consistency.
func (f *Frame) Average(col string) (float64, error) {
	vs, err := f.Column(col)
	if err != nil {
		return 0, err
	}
	return mean(vs), nil
}

func (f *Frame) Std(col string) (float64, error) {
	vs, err := f.Column(col)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(variance(vs)), nil
}

func (f *Frame) Variance(col string) (float64, error) {
	vs, err := f.Column(col)
	if err != nil {
		return 0, err
	}
	return variance(vs), nil
}

func (f *Frame) Median(col string) (float64, error) {
	vs, err := f.Column(col)
	if err != nil {
		return 0, err
	}
	return median(vs), nil
}

func (f *Frame) Min(col string) (float64, error) {
	vs, err := f.Column(col)
	if err != nil {
		return 0, err
	}
	if len(vs) == 0 {
		return 0, fmt.Errorf("dataframe: column %q has no values", col)
	}
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m, nil
}

func (f *Frame) Max(col string) (float64, error) {
	vs, err := f.Column(col)
	if err != nil {
		return 0, err
	}
	if len(vs) == 0 {
		return 0, fmt.Errorf("dataframe: column %q has no values", col)
	}
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m, nil
}

func (f *Frame) Range(col string) (float64, error) {
	lo, err := f.Min(col)
	if err != nil {
		return 0, err
	}
	hi, err := f.Max(col)
	if err != nil {
		return 0, err
	}
	return hi - lo, nil
}

// Correlation computes the Pearson correlation coefficient between two
// columns, NaN if either is constant.
func (f *Frame) Correlation(colA, colB string) (float64, error) {
	xs, err := f.Column(colA)
	if err != nil {
		return 0, err
	}
	ys, err := f.Column(colB)
	if err != nil {
		return 0, err
	}
	if len(xs) != len(ys) || len(xs) == 0 {
		return 0, fmt.Errorf("dataframe: correlation requires two equal-length, non-empty columns")
	}
	mx, my := mean(xs), mean(ys)
	var sxy, sxx, syy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return math.NaN(), nil
	}
	return sxy / math.Sqrt(sxx*syy), nil
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

func variance(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	m := mean(vs)
	var sum float64
	for _, v := range vs {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(vs))
}

func median(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), vs...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
