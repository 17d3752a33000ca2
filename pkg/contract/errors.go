// This file defines the error types produced by contract validation.
//
// # Error Taxonomy
//
//   - ValidationError: a contract definition problem (the rules themselves
//     are malformed). Carries a suggestion for fixing the contract.
//   - CheckFailure: a single violated expectation against a loaded document.
//     Carries the check name, the subject (step, field, or ordering pair),
//     and the expected vs. actual values.
//
// Setup failures (missing or unparsable input files) are ordinary wrapped
// errors from the workflow and manifest loaders; they abort the battery
// before any check runs.
package contract

import (
	"errors"
	"fmt"

	"github.com/actionvet/actionvet/pkg/logger"
)

var errorsLog = logger.New("contract:errors")

// ValidationError reports a malformed contract definition.
type ValidationError struct {
	Field      string
	Value      string
	Message    string
	Suggestion string
}

// NewValidationError creates a ValidationError with a fix suggestion.
func NewValidationError(field, value, message, suggestion string) *ValidationError {
	return &ValidationError{
		Field:      field,
		Value:      value,
		Message:    message,
		Suggestion: suggestion,
	}
}

func (e *ValidationError) Error() string {
	if e.Suggestion == "" {
		return fmt.Sprintf("invalid contract field '%s' (value: %s): %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid contract field '%s' (value: %s): %s. %s", e.Field, e.Value, e.Message, e.Suggestion)
}

// CheckFailure reports one violated expectation.
type CheckFailure struct {
	// Check is the check identifier, e.g. "step-order".
	Check string
	// Subject names what was checked: a step, a field path, or an ordering pair.
	Subject string
	// Expected describes the expectation that was violated.
	Expected string
	// Actual describes what the document contains instead.
	Actual string
}

func (e *CheckFailure) Error() string {
	return fmt.Sprintf("%s check failed for %s: expected %s, actual %s", e.Check, e.Subject, e.Expected, e.Actual)
}

// failure is a shorthand constructor used throughout the check functions.
func failure(check, subject, expected, actual string) *CheckFailure {
	return &CheckFailure{Check: check, Subject: subject, Expected: expected, Actual: actual}
}

// ErrorCollector accumulates check failures so a validation run reports
// every violated expectation at once instead of one at a time.
// With failFast enabled, Add returns the error immediately instead of
// collecting it.
type ErrorCollector struct {
	errors   []error
	failFast bool
}

// NewErrorCollector creates an error collector.
func NewErrorCollector(failFast bool) *ErrorCollector {
	return &ErrorCollector{failFast: failFast}
}

// Add records an error. In fail-fast mode the error is returned to the
// caller, which should stop and propagate it.
func (c *ErrorCollector) Add(err error) error {
	if err == nil {
		return nil
	}
	errorsLog.Printf("Collected error: %v", err)
	if c.failFast {
		return err
	}
	c.errors = append(c.errors, err)
	return nil
}

// HasErrors returns true if any errors have been collected.
func (c *ErrorCollector) HasErrors() bool {
	return len(c.errors) > 0
}

// Count returns the number of errors collected.
func (c *ErrorCollector) Count() int {
	return len(c.errors)
}

// Error returns all collected errors joined, or nil when none were collected.
func (c *ErrorCollector) Error() error {
	return errors.Join(c.errors...)
}
