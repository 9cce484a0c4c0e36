// Package parallel provides small helpers for fan-out goroutine batches.
package parallel

import "sync"

// ErrorCollector records the first non-nil error reported by a group of
// goroutines. Subsequent errors are discarded; the first failure is the one
// surfaced to the caller. The zero value is ready to use.
type ErrorCollector struct {
	mu  sync.Mutex
	err error
}

// SetError records err if it is non-nil and no error has been recorded yet.
// Safe for concurrent use.
func (ec *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	ec.mu.Lock()
	defer ec.mu.Unlock()
	if ec.err == nil {
		ec.err = err
	}
}

// Err returns the first recorded error, or nil if none occurred.
func (ec *ErrorCollector) Err() error {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return ec.err
}
