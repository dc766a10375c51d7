package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputPath derives the processed-file location for an input:
// a sibling folder next to the input holding "<stem><suffix>".
func OutputPath(inputPath, outputFolder, outputSuffix string) string {
	dir := filepath.Join(filepath.Dir(inputPath), outputFolder)
	return filepath.Join(dir, Stem(inputPath)+outputSuffix)
}

// EnsureDir creates dir if absent. Idempotent.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
