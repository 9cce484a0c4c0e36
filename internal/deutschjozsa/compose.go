// Package deutschjozsa implements the Deutsch–Jozsa algorithm: given oracle
// access to a function f mapping m-bit strings to a single bit, it decides
// with one oracle query whether f is constant or balanced.
//
// The package covers the two algorithm-side stages of the pipeline: the
// composer, which assembles the full circuit around an oracle sub-circuit,
// and the interpreter, which classifies f from the measurement-outcome
// counts returned by an execution engine.
package deutschjozsa

import (
	"errors"
	"fmt"

	"github.com/agbru/djsim/internal/circuit"
)

var (
	// ErrInvalidInputWidth is returned when the algorithm is composed for
	// fewer than one input qubit.
	ErrInvalidInputWidth = errors.New("input width must be at least one qubit")
	// ErrOracleWidthMismatch is returned when the oracle circuit does not
	// act on exactly m+1 qubits.
	ErrOracleWidthMismatch = errors.New("oracle width must be m+1 qubits")
	// ErrOracleMeasures is returned when the oracle circuit contains
	// measurement operations and is therefore not reversible.
	ErrOracleMeasures = errors.New("oracle must not contain measurements")
)

// Compose assembles the complete Deutsch–Jozsa circuit for m input qubits
// around the given oracle sub-circuit.
//
// The circuit allocates m+1 qubits and m classical slots, then applies the
// fixed three-phase structure that realizes the phase-kickback interference
// trick: the ancilla qubit m is flipped to |1⟩ and all m+1 qubits pass
// through a Hadamard layer; the oracle is inserted as a single composite
// unit; a second Hadamard layer acts on the first m qubits only. Finally
// qubit i is measured into classical slot i for i in 0..m-1; the ancilla is
// never measured.
//
// Parameters:
//   - m: The number of input qubits (must be >= 1).
//   - oracleCircuit: The reversible oracle over m+1 qubits.
//
// Returns:
//   - *circuit.Circuit: The executable circuit, ready for an engine.
//   - error: A validation error if m or the oracle violates the contract.
func Compose(m int, oracleCircuit *circuit.Circuit) (*circuit.Circuit, error) {
	if m < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidInputWidth, m)
	}
	if oracleCircuit.NumQubits() != m+1 {
		return nil, fmt.Errorf("%w: got %d qubits for m=%d", ErrOracleWidthMismatch, oracleCircuit.NumQubits(), m)
	}
	if oracleCircuit.Count(circuit.KindMeasure) > 0 {
		return nil, ErrOracleMeasures
	}

	c, err := circuit.New(m+1, m)
	if err != nil {
		return nil, err
	}

	// |0...0⟩|1⟩ preparation: only the ancilla is flipped.
	if err := c.X(m); err != nil {
		return nil, err
	}

	// First Hadamard layer: uniform superposition over the input register,
	// |−⟩ on the ancilla.
	for q := 0; q <= m; q++ {
		if err := c.H(q); err != nil {
			return nil, err
		}
	}

	if err := c.Append(oracleCircuit); err != nil {
		return nil, err
	}

	// Second Hadamard layer on the input register only.
	for q := 0; q < m; q++ {
		if err := c.H(q); err != nil {
			return nil, err
		}
	}

	for q := 0; q < m; q++ {
		if err := c.Measure(q, q); err != nil {
			return nil, err
		}
	}

	return c, nil
}
