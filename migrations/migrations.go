// Package migrations holds the SQL schema and applies it to a database.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed *.sql
var files embed.FS

// Apply executes every embedded *.sql file in name order. The scripts are idempotent.
func Apply(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		sqlFile, err := files.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(sqlFile)); err != nil {
			return nil, fmt.Errorf("migration %s failed: %w", name, err)
		}
	}
	return names, nil
}
