// Package sink loads parsed records into a MySQL table.
package sink

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"parsefile/internal/record"
)

var ErrLocked = errors.New("another load holds the table lock")

// maxPlaceholders is MySQL's limit on bound parameters per statement.
const maxPlaceholders = 65535

type MySQL struct {
	DB    *sql.DB
	Table string

	// Chunk is the number of rows per INSERT; <= 0 means 2000.
	Chunk int

	// Create issues CREATE TABLE IF NOT EXISTS with one TEXT column per title.
	Create bool

	LockTimeout int // seconds
}

// Load inserts recs under titles and returns the number of rows written.
// Missing values are stored as NULL. Repeated titles map to one column.
func (s *MySQL) Load(ctx context.Context, titles []string, recs []record.Record) (int64, error) {
	cols, err := columns(titles)
	if err != nil {
		return 0, fmt.Errorf("sink %s: %w", s.Table, err)
	}

	// Connection-scoped lock: pin one connection for lock, inserts and release.
	conn, err := s.DB.Conn(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	key := "parsefile_" + s.Table
	got, err := getLock(ctx, conn, key, s.LockTimeout)
	if err != nil {
		return 0, fmt.Errorf("GET_LOCK: %w", err)
	}
	if !got {
		return 0, fmt.Errorf("sink %s: %w", s.Table, ErrLocked)
	}
	defer func() { _ = releaseLock(context.Background(), conn, key) }()

	if s.Create {
		if _, err := conn.ExecContext(ctx, createQuery(s.Table, cols)); err != nil {
			return 0, fmt.Errorf("create %s: %w", s.Table, err)
		}
	}

	rows := make([][]any, len(recs))
	for i, r := range recs {
		rows[i] = rowArgs(r, cols)
	}
	return chunkedExec(ctx, conn, s.Table, cols, rows, s.Chunk)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func chunkedExec(ctx context.Context, db execer, table string, cols []string, rows [][]any, chunk int) (int64, error) {
	if chunk <= 0 {
		chunk = 2000
	}
	chunk = rowsPerInsert(chunk, len(cols))
	var n int64
	for _, c := range chunks(len(rows), chunk) {
		part := rows[c[0]:c[1]]
		if _, err := db.ExecContext(ctx, insertQuery(table, cols, len(part)), flatten(part)...); err != nil {
			return n, fmt.Errorf("insert rows %d..%d: %w", c[0]+1, c[1], err)
		}
		n += int64(len(part))
	}
	return n, nil
}

// rowsPerInsert caps chunk so one INSERT stays within maxPlaceholders.
func rowsPerInsert(chunk, ncols int) int {
	if ncols <= 0 {
		return chunk
	}
	return max(1, min(chunk, maxPlaceholders/ncols))
}

// chunks splits [0,n) into [start,end) windows of at most size.
func chunks(n, size int) [][2]int {
	var out [][2]int
	for i := 0; i < n; i += size {
		out = append(out, [2]int{i, min(i+size, n)})
	}
	return out
}

func insertQuery(table string, cols []string, nrows int) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
	}
	pl := "(" + strings.TrimRight(strings.Repeat("?,", len(cols)), ",") + ")"
	valPlace := strings.TrimRight(strings.Repeat(pl+",", nrows), ",")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", quoteIdent(table), strings.Join(quoted, ","), valPlace)
}

func createQuery(table string, cols []string) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = quoteIdent(c) + " TEXT NULL"
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s) DEFAULT CHARSET=utf8mb4", quoteIdent(table), strings.Join(defs, ", "))
}

func quoteIdent(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// columns dedupes titles in order; MySQL has no empty column names.
func columns(titles []string) ([]string, error) {
	if len(titles) == 0 {
		return nil, errors.New("no titles")
	}
	seen := make(map[string]struct{}, len(titles))
	out := make([]string, 0, len(titles))
	for i, t := range titles {
		if t == "" {
			return nil, fmt.Errorf("empty title in column %d", i+1)
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}

func rowArgs(r record.Record, cols []string) []any {
	args := make([]any, len(cols))
	for i, c := range cols {
		if v, ok := r.Get(c); ok {
			args[i] = v
		}
	}
	return args
}

func flatten(rows [][]any) []any {
	if len(rows) == 0 {
		return nil
	}
	args := make([]any, 0, len(rows)*len(rows[0]))
	for _, r := range rows {
		args = append(args, r...)
	}
	return args
}
