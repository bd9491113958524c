package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/ppiankov/wikibio/internal/model"
)

// PostgresSink bulk-loads records with COPY
type PostgresSink struct {
	db     *sql.DB
	table  string
	schema model.Schema
}

// OpenPostgres connects and creates the target table if it does not exist
func OpenPostgres(ctx context.Context, dsn, table string, schema model.Schema) (*PostgresSink, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.ExecContext(ctx, CreateTableSQL(table, schema)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create table %s: %w", table, err)
	}

	return &PostgresSink{db: db, table: table, schema: schema}, nil
}

// Name returns "postgres"
func (s *PostgresSink) Name() string {
	return "postgres"
}

// CreateTableSQL returns the DDL for a table holding one text column per schema column
func CreateTableSQL(table string, schema model.Schema) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(pq.QuoteIdentifier(table))
	b.WriteString(" (id SERIAL PRIMARY KEY")
	for _, col := range schema.Columns() {
		b.WriteString(", ")
		b.WriteString(pq.QuoteIdentifier(col))
		b.WriteString(" TEXT")
	}
	b.WriteString(")")
	return b.String()
}

// RowArgs returns the COPY arguments for a record; missing values are NULL
func RowArgs(schema model.Schema, rec model.Record) []any {
	cols := schema.Columns()
	args := make([]any, len(cols))
	for i, col := range cols {
		if v, ok := rec.Get(col); ok {
			args[i] = v
		}
	}
	return args
}

// Insert copies one batch inside a transaction
func (s *PostgresSink) Insert(ctx context.Context, records []model.Record) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(s.table, s.schema.Columns()...))
	if err != nil {
		return fmt.Errorf("prepare copy: %w", err)
	}

	for _, rec := range records {
		if _, err = stmt.ExecContext(ctx, RowArgs(s.schema, rec)...); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("copy row: %w", err)
		}
	}

	if _, err = stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		return fmt.Errorf("flush copy: %w", err)
	}
	if err = stmt.Close(); err != nil {
		return fmt.Errorf("close copy: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (s *PostgresSink) Close() error {
	return s.db.Close()
}
