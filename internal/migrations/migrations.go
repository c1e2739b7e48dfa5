package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed sql
var files embed.FS

type migration struct {
	Name    string
	Version string
	Path    string
	seq     int
}

// Apply runs every V<n>__name.sql migration for the connection's dialect that
// has not been recorded in schema_migrations yet, in version order. It
// returns the names of the migrations it applied.
func Apply(db *sqlx.DB) ([]string, error) {
	dir, err := dialectDir(db.DriverName())
	if err != nil {
		return nil, err
	}
	if err := ensureTable(db); err != nil {
		return nil, fmt.Errorf("schema_migrations -> %w", err)
	}
	migs, err := listMigrations(files, dir)
	if err != nil {
		return nil, err
	}
	applied, err := appliedVersions(db)
	if err != nil {
		return nil, err
	}
	ran := []string{}
	for _, mig := range migs {
		if applied[mig.Version] {
			continue
		}
		if err := applyMigration(db, mig); err != nil {
			return ran, err
		}
		ran = append(ran, mig.Name)
	}
	return ran, nil
}

func dialectDir(driver string) (string, error) {
	switch driver {
	case "pgx", "postgres":
		return "sql/postgres", nil
	case "sqlite":
		return "sql/sqlite", nil
	}
	return "", fmt.Errorf("no migrations for driver %q", driver)
}

func ensureTable(db *sqlx.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`)
	return err
}

func listMigrations(fsys fs.FS, dir string) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	migs := []migration{}
	seen := map[int]string{}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		seq, err := sequence(entry.Name())
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[seq]; dup {
			return nil, fmt.Errorf("migrations %s and %s share version %d", prev, entry.Name(), seq)
		}
		seen[seq] = entry.Name()
		migs = append(migs, migration{
			Name:    entry.Name(),
			Version: strconv.Itoa(seq),
			Path:    path.Join(dir, entry.Name()),
			seq:     seq,
		})
	}
	sort.Slice(migs, func(i, j int) bool { return migs[i].seq < migs[j].seq })
	return migs, nil
}

func appliedVersions(db *sqlx.DB) (map[string]bool, error) {
	rows := []string{}
	if err := db.Select(&rows, `SELECT version FROM schema_migrations`); err != nil {
		return nil, err
	}
	versions := make(map[string]bool, len(rows))
	for _, version := range rows {
		versions[version] = true
	}
	return versions, nil
}

func applyMigration(db *sqlx.DB, mig migration) error {
	content, err := fs.ReadFile(files, mig.Path)
	if err != nil {
		return err
	}
	if _, err := db.Exec(string(content)); err != nil {
		return fmt.Errorf("apply %s: %w", mig.Name, err)
	}
	_, err = db.Exec(db.Rebind(`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`), mig.Version, mig.Name)
	return err
}

// sequence extracts n from V<n>__description.sql.
func sequence(name string) (int, error) {
	prefix, _, ok := strings.Cut(strings.TrimPrefix(name, "V"), "__")
	if !strings.HasPrefix(name, "V") || !ok {
		return 0, fmt.Errorf("migration %s: name must look like V<n>__description.sql", name)
	}
	seq, err := strconv.Atoi(prefix)
	if err != nil || seq <= 0 {
		return 0, fmt.Errorf("migration %s: version %q is not a positive number", name, prefix)
	}
	return seq, nil
}
