package validate

import (
	"fmt"
	"strings"

	"github.com/kwatts/networth/internal/models"
)

// ValidationError carries every violated constraint found in one record or
// batch, not just the first. It is returned, never panicked, and handlers
// surface the full field list to the caller.
type ValidationError struct {
	Fields []models.FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Path, f.Reason))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(path, reason string) {
	e.Fields = append(e.Fields, models.FieldError{Path: path, Reason: reason})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
