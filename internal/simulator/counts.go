// Package simulator implements the execution-engine side of the algorithm's
// boundary: it accepts a circuit description and a shot count and returns
// measurement-outcome frequency counts. The package also defines the Counts
// type shared with the interpreter and the engine contract it must honor.
package simulator

import (
	"strings"

	apperrors "github.com/agbru/djsim/internal/errors"
)

// Counts maps measured bit-strings to their occurrence counts over a run.
// Keys are ordered left-to-right by classical slot index: key[i] is the bit
// measured into slot i. The sum of all values equals the shot count of the
// run that produced them.
type Counts map[string]uint64

// Total returns the sum of all occurrence counts.
func (c Counts) Total() uint64 {
	var total uint64
	for _, n := range c {
		total += n
	}
	return total
}

// Dominant returns the bit-string with the highest occurrence count and its
// count. Ties are broken lexicographically so that repeated calls on the
// same counts are deterministic. The boolean is false for empty counts.
func (c Counts) Dominant() (string, uint64, bool) {
	var best string
	var bestCount uint64
	found := false
	for key, n := range c {
		if !found || n > bestCount || (n == bestCount && key < best) {
			best, bestCount, found = key, n, true
		}
	}
	return best, bestCount, found
}

// Validate checks the counts against the engine contract for a run of the
// given classical-register width and shot count: the map is non-empty, every
// key has exactly width bits over the binary alphabet, and the totals sum to
// shots. Violations are fatal CountsError values, never tolerated silently.
//
// Parameters:
//   - width: The expected bit-string length.
//   - shots: The requested shot count of the run.
//
// Returns:
//   - error: A CountsError describing the first violation found, or nil.
func (c Counts) Validate(width int, shots uint64) error {
	if len(c) == 0 {
		return apperrors.NewCountsError("engine returned no measurement outcomes")
	}
	for key := range c {
		if len(key) != width {
			return apperrors.NewCountsError("outcome %q has length %d, expected %d", key, len(key), width)
		}
		if strings.Trim(key, "01") != "" {
			return apperrors.NewCountsError("outcome %q contains non-binary characters", key)
		}
	}
	if total := c.Total(); total != shots {
		return apperrors.NewCountsError("outcome counts sum to %d, expected %d shots", total, shots)
	}
	return nil
}

// Merge adds the counts of other into c.
func (c Counts) Merge(other Counts) {
	for key, n := range other {
		c[key] += n
	}
}
