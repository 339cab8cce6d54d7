// Package migrations applies the SQL files shipped in the migrations
// directory, ordered by their numeric prefix, keeping a name ledger in
// schema_migrations so each file runs once.
package migrations

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

type migration struct {
	Name string
	Path string
}

func Apply(db *sqlx.DB, dir string) error {
	if err := ensureTable(db); err != nil {
		return err
	}
	migs, err := listMigrations(dir)
	if err != nil {
		return err
	}
	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}
	for _, mig := range migs {
		if applied[mig.Name] {
			continue
		}
		if err := applyMigration(db, mig); err != nil {
			return err
		}
	}
	return nil
}

func ensureTable(db *sqlx.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  name TEXT PRIMARY KEY,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	return err
}

func listMigrations(dir string) ([]migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	migs := make([]migration, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		migs = append(migs, migration{Name: entry.Name(), Path: filepath.Join(dir, entry.Name())})
	}
	sort.Slice(migs, func(i, j int) bool {
		iVersion, iOk := versionNumber(migs[i].Name)
		jVersion, jOk := versionNumber(migs[j].Name)
		switch {
		case iOk && jOk && iVersion != jVersion:
			return iVersion < jVersion
		case iOk != jOk:
			return iOk
		default:
			return migs[i].Name < migs[j].Name
		}
	})
	return migs, nil
}

func appliedMigrations(db *sqlx.DB) (map[string]bool, error) {
	names := []string{}
	if err := db.Select(&names, `SELECT name FROM schema_migrations`); err != nil {
		return nil, err
	}
	applied := make(map[string]bool, len(names))
	for _, name := range names {
		applied[name] = true
	}
	return applied, nil
}

func applyMigration(db *sqlx.DB, mig migration) error {
	content, err := os.ReadFile(mig.Path)
	if err != nil {
		return err
	}
	if _, err := db.Exec(string(content)); err != nil {
		return fmt.Errorf("apply %s: %w", mig.Name, err)
	}
	_, err = db.Exec(`INSERT INTO schema_migrations (name) VALUES ($1)`, mig.Name)
	return err
}

// versionNumber parses the N of "VN__description.sql".
func versionNumber(name string) (int, bool) {
	if !strings.HasPrefix(name, "V") {
		return 0, false
	}
	parts := strings.SplitN(name[1:], "__", 2)
	value, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	return value, true
}
