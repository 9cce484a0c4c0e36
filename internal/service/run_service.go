// Package service provides the business logic layer for Deutsch-Jozsa runs.
// It decouples the transport layers (HTTP handlers, CLI) from the circuit
// construction and simulation details, enabling better testability and
// separation of concerns.
package service

import (
	"context"
	"errors"

	"github.com/agbru/djsim/internal/config"
	"github.com/agbru/djsim/internal/deutschjozsa"
	"github.com/agbru/djsim/internal/oracle"
	"github.com/agbru/djsim/internal/simulator"
)

// ErrMaxWidthExceeded is returned when the requested input width would push
// the circuit past the configured qubit limit. The limit prevents resource
// exhaustion from oversized statevector allocations.
var ErrMaxWidthExceeded = errors.New("maximum input width exceeded")

// RunOutcome carries the complete result of one run for the caller to format.
type RunOutcome struct {
	// Oracle is the name of the variant that was queried.
	Oracle string
	// M is the input-register width in qubits.
	M int
	// Shots is the number of repeated circuit executions.
	Shots uint64
	// Classification is the constant/balanced verdict on f.
	Classification deutschjozsa.Classification
	// Dominant is the measured bit-string carrying the most count mass.
	Dominant string
	// Counts maps measured bit-strings to occurrence counts.
	Counts simulator.Counts
}

// Service defines the interface for running the Deutsch-Jozsa algorithm
// against a named oracle variant.
type Service interface {
	// Run queries the named oracle once with the algorithm and classifies
	// the hidden function from the measurement counts.
	Run(ctx context.Context, oracleName string, m int, shots uint64) (RunOutcome, error)
}

// RunService implements Service using the oracle factory and the
// statevector simulation engine.
type RunService struct {
	factory oracle.Factory
	cfg     config.AppConfig
	maxM    int
}

// NewRunService creates a new run service.
//
// Parameters:
//   - factory: The oracle factory to retrieve variants from.
//   - cfg: The application configuration (seed, workers).
//   - maxM: The maximum allowed input width (0 means the engine limit).
//
// Returns:
//   - *RunService: A new service instance.
func NewRunService(factory oracle.Factory, cfg config.AppConfig, maxM int) *RunService {
	if maxM <= 0 || maxM > simulator.MaxQubits-1 {
		// One qubit is reserved for the ancilla.
		maxM = simulator.MaxQubits - 1
	}
	return &RunService{
		factory: factory,
		cfg:     cfg,
		maxM:    maxM,
	}
}

// Run executes the Deutsch-Jozsa algorithm against the named oracle variant.
//
// It builds the oracle circuit, composes the full algorithm circuit around
// it, executes the circuit on the statevector engine, and classifies the
// hidden function from the resulting counts.
//
// Parameters:
//   - ctx: The context for cancellation and timeouts.
//   - oracleName: The registered name of the oracle variant.
//   - m: The input-register width in qubits.
//   - shots: The number of repeated circuit executions.
//
// Returns:
//   - RunOutcome: The classification and counts on success.
//   - error: ErrMaxWidthExceeded, an unknown-oracle error, or a run error.
func (s *RunService) Run(ctx context.Context, oracleName string, m int, shots uint64) (RunOutcome, error) {
	if m > s.maxM {
		return RunOutcome{}, ErrMaxWidthExceeded
	}

	variant, err := s.factory.Get(oracleName)
	if err != nil {
		return RunOutcome{}, err
	}

	return s.RunVariant(ctx, variant, m, shots)
}

// RunVariant is like Run but takes an already resolved variant. The CLI
// orchestrator uses it to avoid a second factory lookup.
func (s *RunService) RunVariant(ctx context.Context, variant oracle.Variant, m int, shots uint64) (RunOutcome, error) {
	if m > s.maxM {
		return RunOutcome{}, ErrMaxWidthExceeded
	}

	oracleCircuit, err := variant.Build(m)
	if err != nil {
		return RunOutcome{}, err
	}

	full, err := deutschjozsa.Compose(m, oracleCircuit)
	if err != nil {
		return RunOutcome{}, err
	}

	engine := simulator.NewStateVector(
		simulator.WithSeed(s.cfg.Seed),
		simulator.WithWorkers(s.cfg.Workers),
	)
	counts, err := engine.Run(ctx, full, shots)
	if err != nil {
		return RunOutcome{}, err
	}

	interpreted, err := deutschjozsa.Classify(counts, m, shots)
	if err != nil {
		return RunOutcome{}, err
	}

	return RunOutcome{
		Oracle:         variant.Name(),
		M:              m,
		Shots:          shots,
		Classification: interpreted.Classification,
		Dominant:       interpreted.Dominant,
		Counts:         counts,
	}, nil
}
