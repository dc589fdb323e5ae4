package traversal

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound: unknown token/fingerprint, or the survey is gone.
	ErrNotFound = errors.New("not found")
	// ErrBadRequest: the submission is structurally wrong (shape, unknown option/row/column).
	ErrBadRequest = errors.New("bad request")
	// ErrUnprocessableAnswer: the submission names an item that is not part of the current step.
	ErrUnprocessableAnswer = errors.New("answer references an item outside the current step")
	// ErrMalformedRule: a flow or display rule cannot be evaluated.
	ErrMalformedRule = errors.New("malformed rule configuration")
	// ErrVersionConflict is returned by SessionStore.Save when the stored version moved.
	ErrVersionConflict = errors.New("response session version conflict")
	// ErrConcurrentUpdate: the session kept changing under us.
	ErrConcurrentUpdate = errors.New("response session is being updated concurrently")
)

// ValidationError aggregates answer validation messages keyed by item id.
// Grid items map to a nested map keyed by row id.
type ValidationError struct {
	Errors map[string]any
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("validation failed for %d item(s): %s", len(keys), strings.Join(keys, ", "))
}

func (e *ValidationError) add(itemID string, msg string) {
	if e.Errors == nil {
		e.Errors = map[string]any{}
	}
	if _, ok := e.Errors[itemID]; !ok {
		e.Errors[itemID] = msg
	}
}

func (e *ValidationError) addRow(itemID, rowID, msg string) {
	if e.Errors == nil {
		e.Errors = map[string]any{}
	}
	rows, ok := e.Errors[itemID].(map[string]string)
	if !ok {
		rows = map[string]string{}
		e.Errors[itemID] = rows
	}
	rows[rowID] = msg
}

func (e *ValidationError) empty() bool {
	return len(e.Errors) == 0
}

func badRequest(itemID string, format string, args ...any) error {
	return fmt.Errorf("%w: item %s: %s", ErrBadRequest, itemID, fmt.Sprintf(format, args...))
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedRule, fmt.Sprintf(format, args...))
}
