// This file provides error aggregation for corpus loading.
//
// # Error Aggregation
//
// Loading a corpus touches several documents. Instead of stopping at the first
// unreadable one, the loader collects every failure so a single run lists all
// documents that need fixing.
//
// # Fail-Fast Mode
//
// When failFast is true, the collector returns immediately on the first error.
// When false, it collects all errors and returns them joined with errors.Join.

package corpus

import (
	"errors"

	"github.com/hacheck/hacheck/pkg/logger"
)

var errorAggregationLog = logger.New("corpus:error_aggregation")

// ErrorCollector collects document errors
type ErrorCollector struct {
	errors   []error
	failFast bool
}

// NewErrorCollector creates a new error collector
// If failFast is true, the collector will stop at the first error
func NewErrorCollector(failFast bool) *ErrorCollector {
	errorAggregationLog.Printf("Creating error collector: fail_fast=%v", failFast)
	return &ErrorCollector{
		errors:   make([]error, 0),
		failFast: failFast,
	}
}

// Add records err. In fail-fast mode err is also returned so the caller can
// stop; otherwise Add returns nil.
func (c *ErrorCollector) Add(err error) error {
	if err == nil {
		return nil
	}

	errorAggregationLog.Printf("Adding error to collector: %v", err)
	c.errors = append(c.errors, err)

	if c.failFast {
		errorAggregationLog.Print("Fail-fast enabled, returning error immediately")
		return err
	}
	return nil
}

// HasErrors returns true if any errors have been collected
func (c *ErrorCollector) HasErrors() bool {
	return len(c.errors) > 0
}

// Count returns the number of errors collected
func (c *ErrorCollector) Count() int {
	return len(c.errors)
}

// Error returns the aggregated error using errors.Join
// Returns nil if no errors were collected
func (c *ErrorCollector) Error() error {
	if len(c.errors) == 0 {
		return nil
	}

	errorAggregationLog.Printf("Aggregating %d errors", len(c.errors))

	if len(c.errors) == 1 {
		return c.errors[0]
	}

	return errors.Join(c.errors...)
}
