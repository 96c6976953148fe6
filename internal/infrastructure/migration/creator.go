package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Pair is a freshly created up/down migration file pair
type Pair struct {
	Version  string
	UpPath   string
	DownPath string
}

// CreateMigration writes an empty up/down SQL pair into dir. The version
// prefix is the creation timestamp so files sort in creation order, the
// format golang-migrate expects.
func CreateMigration(dir, name, description string) (*Pair, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}

	now := time.Now()
	base := now.Format("20060102150405") + "_" + sanitizeName(name)
	pair := &Pair{
		Version:  now.Format("20060102150405"),
		UpPath:   filepath.Join(dir, base+".up.sql"),
		DownPath: filepath.Join(dir, base+".down.sql"),
	}

	created := now.Format(time.RFC3339)
	up := fmt.Sprintf(
		"-- Migration: %s\n-- Created: %s\n-- Description: %s\n\n-- Write your UP migration SQL here\n\n",
		name, created, description)
	down := fmt.Sprintf(
		"-- Migration: %s (Rollback)\n-- Created: %s\n-- Description: Rollback for %s\n\n-- Write your DOWN migration SQL here\n\n",
		name, created, description)

	if err := os.WriteFile(pair.UpPath, []byte(up), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", pair.UpPath, err)
	}
	if err := os.WriteFile(pair.DownPath, []byte(down), 0o644); err != nil {
		// do not leave a half pair behind
		_ = os.Remove(pair.UpPath)
		return nil, fmt.Errorf("write %s: %w", pair.DownPath, err)
	}

	return pair, nil
}

// sanitizeName lowercases the migration name and collapses separator runs
// so it is safe inside a file name
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
				b.WriteByte('_')
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// ListMigrations returns the base names of the migration pairs in dir,
// one entry per pair. A missing directory lists as empty.
func ListMigrations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	names := make([]string, 0, len(entries)/2)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".up.sql"))
	}
	return names, nil
}
