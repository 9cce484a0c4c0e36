// Package oracle builds reversible sub-circuits embodying the hidden
// function f queried by the Deutsch–Jozsa algorithm. Every variant
// implements the map |x⟩|y⟩ → |x⟩|f(x)⊕y⟩ over m input qubits and one
// ancilla qubit, and is either constant or exactly balanced over all 2^m
// inputs.
package oracle

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/agbru/djsim/internal/circuit"
	apperrors "github.com/agbru/djsim/internal/errors"
)

var (
	// ErrInvalidInputWidth is returned when an oracle is requested for
	// fewer than one input qubit.
	ErrInvalidInputWidth = errors.New("oracle input width must be at least one qubit")
	// ErrEmptyMask is returned when a subset-parity oracle is created with
	// no selected input bits; f would be constant, not balanced.
	ErrEmptyMask = errors.New("subset mask must select at least one input bit")
	// ErrMaskOutOfRange is returned when a subset mask selects bits beyond
	// the input register.
	ErrMaskOutOfRange = errors.New("subset mask selects bits outside the input register")
)

// Variant constructs the reversible circuit for one concrete choice of f.
//
// Implementations must be pure: Build performs no side effects, and calling
// it twice with the same m yields structurally identical circuits. The
// produced circuit has exactly m+1 qubits (qubit m is the ancilla), no
// classical register, and no measurement operations.
type Variant interface {
	// Name returns the registry identifier of the variant.
	Name() string
	// Build constructs the oracle circuit for m input qubits.
	Build(m int) (*circuit.Circuit, error)
}

// checkWidth validates the input register width shared by all variants.
// Violations are configuration errors: they surface as apperrors.ConfigError
// while remaining matchable against ErrInvalidInputWidth.
func checkWidth(m int) error {
	if m < 1 {
		return apperrors.WrapConfigError(ErrInvalidInputWidth,
			"%s: got %d", ErrInvalidInputWidth, m)
	}
	return nil
}

// Constant0 is the oracle for f(x) = 0: the identity circuit.
type Constant0 struct{}

// Name returns the registry identifier of the variant.
func (Constant0) Name() string { return "constant0" }

// Build constructs an empty circuit of m+1 qubits; f(x)⊕y = y, so no gates
// are needed.
func (Constant0) Build(m int) (*circuit.Circuit, error) {
	if err := checkWidth(m); err != nil {
		return nil, err
	}
	return circuit.New(m+1, 0)
}

// Constant1 is the oracle for f(x) = 1: a single bit-flip on the ancilla.
type Constant1 struct{}

// Name returns the registry identifier of the variant.
func (Constant1) Name() string { return "constant1" }

// Build constructs a circuit of m+1 qubits applying X to the ancilla qubit m.
func (Constant1) Build(m int) (*circuit.Circuit, error) {
	if err := checkWidth(m); err != nil {
		return nil, err
	}
	c, err := circuit.New(m+1, 0)
	if err != nil {
		return nil, err
	}
	if err := c.X(m); err != nil {
		return nil, err
	}
	return c, nil
}

// Parity is the canonical balanced oracle: f(x) is the XOR of all input
// bits. Exactly half of all m-bit inputs map to 0 and half to 1.
type Parity struct{}

// Name returns the registry identifier of the variant.
func (Parity) Name() string { return "balanced" }

// Build constructs a circuit of m+1 qubits applying CX(i→m) for each input
// qubit i, accumulating the parity of x into the ancilla.
func (Parity) Build(m int) (*circuit.Circuit, error) {
	if err := checkWidth(m); err != nil {
		return nil, err
	}
	c, err := circuit.New(m+1, 0)
	if err != nil {
		return nil, err
	}
	for i := 0; i < m; i++ {
		if err := c.CX(i, m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// SubsetParity is a balanced oracle over an arbitrary non-empty subset of
// input bits: f(x) is the XOR of the input bits selected by Mask. Any
// non-empty subset yields a true 50/50 output balance over all 2^m inputs,
// so the variant preserves the algorithm's correctness guarantees while
// keeping the oracle-selection interface open beyond plain parity.
type SubsetParity struct {
	// Mask selects the input bits entering the XOR; bit i of Mask selects
	// input qubit i.
	Mask uint64
}

// Name returns the registry identifier of the variant, including the mask.
func (s SubsetParity) Name() string { return fmt.Sprintf("balanced-subset-%x", s.Mask) }

// Build constructs a circuit of m+1 qubits applying CX(i→m) for each input
// qubit i selected by Mask.
func (s SubsetParity) Build(m int) (*circuit.Circuit, error) {
	if err := checkWidth(m); err != nil {
		return nil, err
	}
	if s.Mask == 0 {
		return nil, apperrors.WrapConfigError(ErrEmptyMask, "%s", ErrEmptyMask)
	}
	if m < 64 && s.Mask>>uint(m) != 0 {
		return nil, apperrors.WrapConfigError(ErrMaskOutOfRange,
			"%s: mask %#x, width %d", ErrMaskOutOfRange, s.Mask, m)
	}
	c, err := circuit.New(m+1, 0)
	if err != nil {
		return nil, err
	}
	for mask := s.Mask; mask != 0; mask &= mask - 1 {
		i := bits.TrailingZeros64(mask)
		if err := c.CX(i, m); err != nil {
			return nil, err
		}
	}
	return c, nil
}
