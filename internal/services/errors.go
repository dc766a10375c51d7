// Package services carries the error taxonomy shared across the pipeline.
package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrProbe marks audio inspection failures; callers degrade to defaults.
	ErrProbe = errors.New("probe error")
	// ErrSpawn marks failures to start the external tool at all.
	ErrSpawn = errors.New("spawn error")
	// ErrExternalTool marks a tool that ran but exited with an error.
	ErrExternalTool = errors.New("external tool error")
	// ErrIO marks filesystem and persistence failures.
	ErrIO = errors.New("io error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
