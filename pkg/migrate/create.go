package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const versionTimeLayout = "20060102150405"

const migrationTemplate = `-- +goose Up
-- +goose StatementBegin
-- forward catalog schema change: %[1]s
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
-- revert: %[1]s
-- +goose StatementEnd
`

// CreateSQLMigration writes an empty goose SQL migration named
// <dir>/<YYYYMMDDHHMMSS>_<name>.sql and returns its path. An empty dir falls
// back to the catalog migrations directory.
func CreateSQLMigration(dir string, name string) (string, error) {
	if dir == "" {
		dir = DefaultDir
	}

	slug := slugify(name)
	if slug == "" {
		return "", fmt.Errorf("migration name %q has no usable characters", name)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %q: %w", dir, err)
	}

	version := time.Now().UTC().Format(versionTimeLayout)
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.sql", version, slug))

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("migration already exists: %s", path)
	}

	if err := os.WriteFile(path, []byte(fmt.Sprintf(migrationTemplate, slug)), 0o644); err != nil {
		return "", fmt.Errorf("write migration %q: %w", path, err)
	}

	return path, nil
}

// slugify lowercases the name and folds every run of other characters into a
// single underscore, so "Add  Price Index!" becomes "add_price_index".
func slugify(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		isWord := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		switch {
		case isWord:
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	return b.String()
}
