package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var migrationFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

// every migration the runner accepts carries all four markers
var requiredMarkers = []string{
	"-- +goose Up",
	"-- +goose StatementBegin",
	"-- +goose StatementEnd",
	"-- +goose Down",
}

// ValidateDir checks that every SQL migration in dir is versioned, uniquely
// numbered and carries the goose markers. An empty dir falls back to the
// catalog migrations directory.
func ValidateDir(dir string) error {
	if dir == "" {
		dir = DefaultDir
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %q: %w", dir, err)
	}

	versions := map[string]string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		if err := checkMigrationFile(dir, entry.Name(), versions); err != nil {
			return err
		}
	}
	return nil
}

func checkMigrationFile(dir, name string, versions map[string]string) error {
	m := migrationFileRe.FindStringSubmatch(name)
	if m == nil {
		return fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
	}

	version := m[1]
	if prev, ok := versions[version]; ok {
		return fmt.Errorf("duplicate migration version %s in %q and %q", version, prev, name)
	}
	versions[version] = name

	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file %q: %w", path, err)
	}

	content := string(data)
	for _, marker := range requiredMarkers {
		if !strings.Contains(content, marker) {
			return fmt.Errorf("migration %q missing %q", name, marker)
		}
	}
	return nil
}
