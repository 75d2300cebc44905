package framework

import (
	"strings"
)

// ErrorList collects errors from multiple runners.
type ErrorList []error

// Error implements error.
func (e ErrorList) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Append adds errors to the list. nil entries are skipped.
func (e ErrorList) Append(errs ...error) ErrorList {
	for _, err := range errs {
		if err != nil {
			e = append(e, err)
		}
	}
	return e
}

// Err returns the list as an error, or nil when empty.
func (e ErrorList) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
