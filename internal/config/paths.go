package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// EnsureDirectories creates the data, logs and export directories.
func (p PathsConfig) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.LogsDir, p.ExportDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		slog.Debug("ensured directory exists", slog.String("directory", dir))
	}
	return nil
}

// ExportPath returns the path of an export file.
func (p PathsConfig) ExportPath(filename string) string {
	return filepath.Join(p.ExportDir, filename)
}

// MirrorDir is where fetched season tables are mirrored for offline runs.
func (p PathsConfig) MirrorDir() string {
	return filepath.Join(p.DataDir, "feature-store")
}
