package migration

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

const (
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"
)

// ListMigrations returns the migration base names in the directory, sorted.
// Every up file must have a matching down file.
func ListMigrations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	ups := make(map[string]bool)
	downs := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, upSuffix):
			ups[strings.TrimSuffix(name, upSuffix)] = true
		case strings.HasSuffix(name, downSuffix):
			downs[strings.TrimSuffix(name, downSuffix)] = true
		}
	}

	names := make([]string, 0, len(ups))
	for base := range ups {
		if !downs[base] {
			return nil, fmt.Errorf("migration %s has no down file", base)
		}
		names = append(names, base)
	}
	for base := range downs {
		if !ups[base] {
			return nil, fmt.Errorf("migration %s has no up file", base)
		}
	}
	sort.Strings(names)
	return names, nil
}
