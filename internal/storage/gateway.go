// Package storage is the only layer that touches the database. It exposes
// tabular reads (ordered rows of text fields, first row the column-name
// header) and full-row upserts with overwrite-every-column semantics.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/clinicd/clinicd/internal/record"
)

// Rows is a query result. Rows[0] holds the column names; a result of
// length <= 1 means no data rows matched.
type Rows [][]string

// Gateway is the storage contract used by every repository. A non-nil
// error always means the storage layer itself failed; "zero rows" and
// "missing field" are not errors.
type Gateway interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Upsert(ctx context.Context, t record.Table, frag record.Fragment) (string, error)
}

// PG is the pgx-backed Gateway. Connections are checked out of the pool
// per operation, so concurrent sessions never share a handle.
type PG struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

func NewPG(pool *pgxpool.Pool, log zerolog.Logger) *PG {
	return &PG{pool: pool, log: log.With().Str("component", "storage").Logger()}
}

// Query runs a SELECT and returns the header row followed by the data rows,
// every field rendered as text. SQL NULL becomes the literal "NULL".
func (g *PG) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rows, err := g.pool.Query(ctx, sql, args...)
	if err != nil {
		g.log.Error().Err(err).Str("sql", sql).Msg("query failed")
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.Name
	}
	out := Rows{header}

	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		row := make([]string, len(vals))
		for i, v := range vals {
			row[i] = textValue(v)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		g.log.Error().Err(err).Str("sql", sql).Msg("query failed")
		return nil, fmt.Errorf("query: %w", err)
	}

	g.log.Debug().Str("sql", sql).Int("rows", len(out)-1).Msg("query")
	return out, nil
}

// Upsert writes a complete row. A missing field short-circuits with the
// "no [<field>]" failure string and performs no write; on success it
// returns "successful". Keyed tables overwrite every column of an existing
// row with the same key; keyless tables simply append.
func (g *PG) Upsert(ctx context.Context, t record.Table, frag record.Fragment) (string, error) {
	vals, missing := t.Row(frag)
	if missing != "" {
		return missing, nil
	}

	sql := UpsertSQL(t)
	args := make([]any, len(vals))
	for i, v := range vals {
		args[i] = v
	}

	if _, err := g.pool.Exec(ctx, sql, args...); err != nil {
		g.log.Error().Err(err).Str("table", t.Name).Msg("upsert failed")
		return "", fmt.Errorf("upsert %s: %w", t.Name, err)
	}
	g.log.Debug().Str("table", t.Name).Msg("upsert")
	return "successful", nil
}

// UpsertSQL builds the insert-or-overwrite statement for a table. Exported
// for tests.
func UpsertSQL(t record.Table) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(t.Name)
	b.WriteString(" (")
	b.WriteString(t.SelectList())
	b.WriteString(") VALUES (")
	for i := range t.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "$%d", i+1)
	}
	b.WriteString(")")

	if len(t.Key) == 0 {
		return b.String()
	}

	b.WriteString(" ON CONFLICT (")
	b.WriteString(strings.Join(t.Key, ", "))
	b.WriteString(") DO UPDATE SET ")
	key := make(map[string]bool, len(t.Key))
	for _, k := range t.Key {
		key[k] = true
	}
	first := true
	for _, c := range t.Columns {
		if key[c.DB] {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(c.DB)
		b.WriteString(" = EXCLUDED.")
		b.WriteString(c.DB)
	}
	return b.String()
}

func textValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}
