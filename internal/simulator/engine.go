package simulator

import (
	"context"
	"errors"

	"github.com/agbru/djsim/internal/circuit"
)

// Engine is the external-collaborator contract of the algorithm core: a
// single opaque, blocking call that executes a circuit for a number of
// repeated trials and returns measurement-outcome frequency counts. The
// core performs exactly one query by design and never retries.
type Engine interface {
	// Run executes the circuit shots times and returns the outcome counts.
	// The returned counts satisfy Counts.Validate for the circuit's
	// classical-register width and the requested shot count.
	Run(ctx context.Context, c *circuit.Circuit, shots uint64) (Counts, error)
}

var (
	// ErrInvalidShots is returned when a run is requested with zero shots.
	ErrInvalidShots = errors.New("shot count must be at least one")
	// ErrCircuitTooWide is returned when the dense statevector for a
	// circuit would exceed the engine's memory bound.
	ErrCircuitTooWide = errors.New("circuit exceeds the engine's qubit limit")
	// ErrMeasuredQubit is returned when a unitary gate acts on a qubit
	// that has already been measured; the engine does not implement
	// deferred measurement.
	ErrMeasuredQubit = errors.New("unitary gate applied to an already measured qubit")
	// ErrSlotReused is returned when two measurements write the same
	// classical slot.
	ErrSlotReused = errors.New("classical slot measured more than once")
	// ErrUnmeasuredSlot is returned when a circuit leaves classical slots
	// without a measurement; the outcome bit-string would be ill-defined.
	ErrUnmeasuredSlot = errors.New("classical slot has no measurement")
	// ErrUnknownGate is returned for gate kinds outside the supported set.
	ErrUnknownGate = errors.New("unsupported gate kind")
)

// ProgressUpdate carries the sampling progress of one run, identified by the
// index the orchestrator assigned to it.
type ProgressUpdate struct {
	// RunIndex identifies the run within a batch of concurrent runs.
	RunIndex int
	// Value is the normalized progress (0.0 to 1.0).
	Value float64
}

// ProgressObserver receives progress updates from a running engine.
type ProgressObserver interface {
	// Update reports the normalized progress of the identified run.
	Update(runIndex int, progress float64)
}
