package deutschjozsa

import (
	"fmt"
	"strings"

	"github.com/agbru/djsim/internal/simulator"
)

// Classification is the verdict on the hidden function f.
type Classification int

const (
	// Constant means f has the same output for every input.
	Constant Classification = iota
	// Balanced means f maps exactly half of all inputs to each output.
	Balanced
)

// String returns the canonical name of the classification.
func (c Classification) String() string {
	switch c {
	case Constant:
		return "CONSTANT"
	case Balanced:
		return "BALANCED"
	default:
		return fmt.Sprintf("Classification(%d)", int(c))
	}
}

// Outcome is the interpreted result of one algorithm run.
type Outcome struct {
	// Classification is the constant/balanced verdict on f.
	Classification Classification
	// Dominant is the bit-string with the highest occurrence count.
	Dominant string
	// DominantCount is the occurrence count of the dominant bit-string.
	DominantCount uint64
}

// Classify interprets the measurement-outcome counts of one run.
//
// The counts are first validated against the engine contract for the given
// input width and shot count; a violation means the engine misbehaved and is
// surfaced as a fatal CountsError. The dominant bit-string then decides the
// verdict: the all-zero string classifies f as constant, anything else as
// balanced. In the ideal noiseless case the dominant outcome carries all the
// count mass, so ties cannot occur.
//
// Parameters:
//   - counts: The outcome counts returned by the engine.
//   - m: The input width of the run (expected bit-string length).
//   - shots: The shot count requested from the engine.
//
// Returns:
//   - Outcome: The classification and dominant outcome.
//   - error: A CountsError on an engine contract violation.
func Classify(counts simulator.Counts, m int, shots uint64) (Outcome, error) {
	if err := counts.Validate(m, shots); err != nil {
		return Outcome{}, err
	}

	dominant, count, _ := counts.Dominant()
	classification := Balanced
	if dominant == strings.Repeat("0", m) {
		classification = Constant
	}
	return Outcome{
		Classification: classification,
		Dominant:       dominant,
		DominantCount:  count,
	}, nil
}
