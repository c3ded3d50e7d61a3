// Package db applies the schema through database/sql so it can run with the
// lib/pq driver before the pgx pool is needed.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"wfm/internal/sqlinline"
)

const createVersionTable = `create table if not exists schema_versions (
    marker     text primary key,
    applied_at timestamptz not null default now()
)`

// Migrate applies the schema once per marker inside one transaction. It
// reports whether anything was applied.
func Migrate(ctx context.Context, conn *sql.DB, logger zerolog.Logger) (bool, error) {
	marker, body, err := splitMarker(sqlinline.Schema)
	if err != nil {
		return false, err
	}
	if _, err := conn.ExecContext(ctx, createVersionTable); err != nil {
		return false, fmt.Errorf("create schema_versions: %w", err)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var seen string
	err = tx.QueryRowContext(ctx, `select marker from schema_versions where marker = $1`, marker).Scan(&seen)
	switch {
	case err == nil:
		logger.Info().Str("marker", marker).Msg("schema already applied")
		return false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return false, fmt.Errorf("read schema_versions: %w", err)
	}

	if _, err := tx.ExecContext(ctx, body); err != nil {
		return false, fmt.Errorf("apply schema %s: %w", marker, err)
	}
	if _, err := tx.ExecContext(ctx, `insert into schema_versions (marker) values ($1)`, marker); err != nil {
		return false, fmt.Errorf("record schema %s: %w", marker, err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	logger.Info().Str("marker", marker).Msg("schema applied")
	return true, nil
}

// splitMarker separates the leading "--sql <uuid>" line from the statement.
func splitMarker(query string) (string, string, error) {
	trimmed := strings.TrimSpace(query)
	first, rest, _ := strings.Cut(trimmed, "\n")
	first = strings.TrimSpace(first)
	if !strings.HasPrefix(first, "--sql ") {
		return "", "", errors.New("sql marker missing")
	}
	marker := strings.TrimSpace(strings.TrimPrefix(first, "--sql "))
	if marker == "" || strings.TrimSpace(rest) == "" {
		return "", "", errors.New("empty schema")
	}
	return marker, rest, nil
}
