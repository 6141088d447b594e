package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/multierr"
)

// Lint checks every SQL migration in dir: filenames must be
// YYYYMMDDHHMMSS_name.sql with a real timestamp, versions must be unique,
// and each file must carry goose Up and Down markers. All problems are
// reported at once.
func Lint(dir string) error {
	if dir == "" {
		dir = DefaultDir
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %q: %w", dir, err)
	}

	var problems error
	seen := map[string]string{}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		version, rest, ok := strings.Cut(name, "_")
		if !ok || rest == "" {
			problems = multierr.Append(problems, fmt.Errorf("%s: expected YYYYMMDDHHMMSS_name.sql", name))
			continue
		}
		if _, err := time.Parse("20060102150405", version); err != nil {
			problems = multierr.Append(problems, fmt.Errorf("%s: version %q is not a timestamp", name, version))
			continue
		}
		if prev, dup := seen[version]; dup {
			problems = multierr.Append(problems, fmt.Errorf("version %s used by both %s and %s", version, prev, name))
			continue
		}
		seen[version] = name

		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			problems = multierr.Append(problems, fmt.Errorf("%s: %w", name, err))
			continue
		}
		body := string(raw)
		for _, marker := range []string{"-- +goose Up", "-- +goose Down"} {
			if !strings.Contains(body, marker) {
				problems = multierr.Append(problems, fmt.Errorf("%s: missing %q", name, marker))
			}
		}
	}
	return problems
}
