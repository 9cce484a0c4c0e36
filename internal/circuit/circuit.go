// Package circuit defines the gate-level data model for quantum circuits.
// A circuit is an ordered sequence of gate operations over a fixed-width
// qubit register and a classical register for measurement results; gate
// order defines the unitary composition order (left-to-right in time).
package circuit

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies a gate operation from the canonical gate set.
type Kind string

const (
	// KindX is the single-qubit bit-flip (Pauli-X, NOT) gate.
	KindX Kind = "X"
	// KindH is the single-qubit Hadamard gate.
	KindH Kind = "H"
	// KindCX is the controlled bit-flip (CNOT) gate.
	KindCX Kind = "CX"
	// KindMeasure reads a qubit into a classical slot.
	KindMeasure Kind = "MEASURE"
)

// NoIndex marks an unused qubit or classical index on a Gate.
const NoIndex = -1

var (
	// ErrInvalidWidth is returned when a circuit is requested with fewer
	// than one qubit.
	ErrInvalidWidth = errors.New("circuit width must be at least one qubit")
	// ErrIndexOutOfRange is returned when a gate references a qubit or
	// classical slot outside the circuit's registers.
	ErrIndexOutOfRange = errors.New("register index out of range")
	// ErrSelfControlled is returned when a controlled gate uses the same
	// qubit as control and target.
	ErrSelfControlled = errors.New("control and target qubits must differ")
	// ErrSubcircuitMeasures is returned when an appended sub-circuit
	// contains measurement operations.
	ErrSubcircuitMeasures = errors.New("sub-circuit must not contain measurements")
	// ErrSubcircuitTooWide is returned when an appended sub-circuit is
	// wider than the target circuit.
	ErrSubcircuitTooWide = errors.New("sub-circuit is wider than the target circuit")
)

// Gate is a single operation in a circuit. Unused index fields hold NoIndex.
type Gate struct {
	// Kind is the gate type.
	Kind Kind
	// Target is the qubit the gate acts on.
	Target int
	// Control is the controlling qubit for two-qubit gates.
	Control int
	// Classical is the classical slot receiving a measurement result.
	Classical int
}

// String renders the gate in a compact OpenQASM-like form, e.g. "h q[2]" or
// "cx q[0], q[4]".
func (g Gate) String() string {
	switch g.Kind {
	case KindCX:
		return fmt.Sprintf("cx q[%d], q[%d]", g.Control, g.Target)
	case KindMeasure:
		return fmt.Sprintf("measure q[%d] -> c[%d]", g.Target, g.Classical)
	default:
		return fmt.Sprintf("%s q[%d]", strings.ToLower(string(g.Kind)), g.Target)
	}
}

// Circuit is an ordered gate sequence over a fixed qubit register and a
// classical register. A circuit is append-only during construction and is
// treated as immutable once handed to an execution engine.
type Circuit struct {
	qubits int
	clbits int
	gates  []Gate
}

// New creates an empty circuit with the given register widths.
//
// Parameters:
//   - qubits: The number of qubits (must be >= 1).
//   - clbits: The number of classical result slots (may be 0).
//
// Returns:
//   - *Circuit: The empty circuit.
//   - error: ErrInvalidWidth if qubits < 1, ErrIndexOutOfRange if clbits < 0.
func New(qubits, clbits int) (*Circuit, error) {
	if qubits < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWidth, qubits)
	}
	if clbits < 0 {
		return nil, fmt.Errorf("%w: negative classical register size %d", ErrIndexOutOfRange, clbits)
	}
	return &Circuit{qubits: qubits, clbits: clbits}, nil
}

// NumQubits returns the width of the qubit register.
func (c *Circuit) NumQubits() int { return c.qubits }

// NumClbits returns the width of the classical register.
func (c *Circuit) NumClbits() int { return c.clbits }

// Len returns the number of gates in the circuit.
func (c *Circuit) Len() int { return len(c.gates) }

// Gates returns a copy of the gate sequence in application order.
func (c *Circuit) Gates() []Gate {
	out := make([]Gate, len(c.gates))
	copy(out, c.gates)
	return out
}

// Count returns the number of gates of the given kind.
func (c *Circuit) Count(kind Kind) int {
	n := 0
	for _, g := range c.gates {
		if g.Kind == kind {
			n++
		}
	}
	return n
}

// checkQubit validates a qubit index against the register width.
func (c *Circuit) checkQubit(q int) error {
	if q < 0 || q >= c.qubits {
		return fmt.Errorf("%w: qubit %d, register width %d", ErrIndexOutOfRange, q, c.qubits)
	}
	return nil
}

// X appends a bit-flip gate on qubit q.
func (c *Circuit) X(q int) error {
	if err := c.checkQubit(q); err != nil {
		return err
	}
	c.gates = append(c.gates, Gate{Kind: KindX, Target: q, Control: NoIndex, Classical: NoIndex})
	return nil
}

// H appends a Hadamard gate on qubit q.
func (c *Circuit) H(q int) error {
	if err := c.checkQubit(q); err != nil {
		return err
	}
	c.gates = append(c.gates, Gate{Kind: KindH, Target: q, Control: NoIndex, Classical: NoIndex})
	return nil
}

// CX appends a controlled bit-flip gate with the given control and target
// qubits.
func (c *Circuit) CX(control, target int) error {
	if err := c.checkQubit(control); err != nil {
		return err
	}
	if err := c.checkQubit(target); err != nil {
		return err
	}
	if control == target {
		return fmt.Errorf("%w: qubit %d", ErrSelfControlled, control)
	}
	c.gates = append(c.gates, Gate{Kind: KindCX, Target: target, Control: control, Classical: NoIndex})
	return nil
}

// Measure appends a measurement of qubit q into classical slot cl.
func (c *Circuit) Measure(q, cl int) error {
	if err := c.checkQubit(q); err != nil {
		return err
	}
	if cl < 0 || cl >= c.clbits {
		return fmt.Errorf("%w: classical slot %d, register width %d", ErrIndexOutOfRange, cl, c.clbits)
	}
	c.gates = append(c.gates, Gate{Kind: KindMeasure, Target: q, Control: NoIndex, Classical: cl})
	return nil
}

// Append embeds the gates of sub into c as a single composite unit, in
// order. The sub-circuit must not be wider than c and must not contain
// measurement operations; this keeps embedded units (such as oracles)
// reversible.
func (c *Circuit) Append(sub *Circuit) error {
	if sub.qubits > c.qubits {
		return fmt.Errorf("%w: %d > %d", ErrSubcircuitTooWide, sub.qubits, c.qubits)
	}
	if sub.Count(KindMeasure) > 0 {
		return ErrSubcircuitMeasures
	}
	c.gates = append(c.gates, sub.gates...)
	return nil
}

// Clone returns a deep copy of the circuit.
func (c *Circuit) Clone() *Circuit {
	gates := make([]Gate, len(c.gates))
	copy(gates, c.gates)
	return &Circuit{qubits: c.qubits, clbits: c.clbits, gates: gates}
}

// Equal reports whether two circuits have identical register widths and
// structurally identical gate sequences.
func (c *Circuit) Equal(other *Circuit) bool {
	if other == nil || c.qubits != other.qubits || c.clbits != other.clbits || len(c.gates) != len(other.gates) {
		return false
	}
	for i, g := range c.gates {
		if g != other.gates[i] {
			return false
		}
	}
	return true
}

// String renders the circuit as one gate per line, in application order.
func (c *Circuit) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "qreg q[%d]; creg c[%d];\n", c.qubits, c.clbits)
	for _, g := range c.gates {
		b.WriteString(g.String())
		b.WriteByte('\n')
	}
	return b.String()
}
