package errors

import (
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound       = fmt.Errorf("not found")
	ErrInvalidInput   = fmt.Errorf("invalid input")
	ErrValidation     = fmt.Errorf("validation failed")
	ErrStore          = fmt.Errorf("store failure")
	ErrStaleReference = fmt.Errorf("stale reference")
	ErrInvalidPlan    = fmt.Errorf("invalid plan")
	ErrInvalidState   = fmt.Errorf("invalid state")
)

// ValidationError reports user-correctable problems with a draft, keyed by field.
type ValidationError struct {
	Fields map[string]string
}

func (v *ValidationError) Error() string {
	if len(v.Fields) == 0 {
		return ErrValidation.Error()
	}
	names := make([]string, 0, len(v.Fields))
	for name := range v.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	msgs := make([]string, 0, len(names))
	for _, name := range names {
		msgs = append(msgs, v.Fields[name])
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(msgs, "; "))
}

func (v *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
