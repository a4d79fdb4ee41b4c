package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed migrations/schema.sql
var schemaSQL string

// Migrate ensures the users and books tables exist. It returns the number of
// statements applied so the caller can report what ran.
func (db *Database) Migrate(ctx context.Context) (int, error) {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	applied := 0
	for _, stmt := range splitStatements(schemaSQL) {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return applied, fmt.Errorf("applying schema statement %d: %w", applied+1, err)
		}
		applied++
	}
	return applied, nil
}

// splitStatements breaks the embedded schema into individual statements,
// dropping empty fragments. The schema contains no string literals with
// semicolons, so a plain split is sufficient.
func splitStatements(schema string) []string {
	var statements []string
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		statements = append(statements, stmt)
	}
	return statements
}
