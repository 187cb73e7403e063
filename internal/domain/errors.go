package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a unique-constraint violation, e.g. two writers
	// racing to create the same cart row.
	ErrConflict = errors.New("conflict")
	// ErrProductNotFound indicates a referenced product id is absent from the
	// catalog at mutation or checkout time.
	ErrProductNotFound = errors.New("product not found")
)

// ValidationError carries per-field messages for customer info that fails
// the checkout schema.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}
