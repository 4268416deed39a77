package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"medquiz/internal/logger"

	"go.uber.org/zap"
)

// Execer is the part of *sql.DB and *sqlx.DB that migrations need.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// RunMigrations executes every *.up.sql file in dir in name order. Each file
// may hold several statements separated by ";" at the end of a line, since
// the Oracle driver accepts one statement per call.
func RunMigrations(ctx context.Context, db Execer, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("could not list migrations in %s: %w", dir, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no migrations found in %s", dir)
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", filepath.Base(file), err)
		}
		for i, stmt := range SplitStatements(string(content)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("could not execute migration %s (statement %d): %w", filepath.Base(file), i+1, err)
			}
		}
		logger.Get().Info("Executed migration", zap.String("file", filepath.Base(file)))
	}

	logger.Get().Info("Migrations completed successfully", zap.Int("files", len(files)))
	return nil
}

// SplitStatements splits a migration script on lines ending with ";". The
// terminator is dropped and blank statements are skipped.
func SplitStatements(script string) []string {
	var stmts []string
	var current strings.Builder
	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			stmts = append(stmts, s)
		}
		current.Reset()
	}
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimRight(line, " \t\r")
		if strings.HasPrefix(strings.TrimSpace(trimmed), "--") {
			continue
		}
		if strings.HasSuffix(trimmed, ";") {
			current.WriteString(strings.TrimSuffix(trimmed, ";"))
			flush()
			continue
		}
		current.WriteString(trimmed)
		current.WriteString("\n")
	}
	flush()
	return stmts
}
