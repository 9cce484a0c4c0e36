package simulator

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/agbru/djsim/internal/circuit"
	"github.com/agbru/djsim/internal/parallel"
)

const (
	// MaxQubits bounds the dense statevector to 2^MaxQubits amplitudes
	// (16 bytes each), keeping a single run under a gigabyte of state.
	MaxQubits = 26

	// probEpsilon is the threshold below which an outcome probability is
	// treated as floating-point noise and discarded. Noiseless circuits
	// must produce exactly their analytic distribution; mass on an
	// unexpected outcome above this threshold indicates a defect in the
	// gate arithmetic, not an acceptable approximation.
	probEpsilon = 1e-9

	// progressBatch is the number of shots sampled between progress
	// reports and context checks.
	progressBatch = 4096
)

// StateVector is a dense, noiseless statevector engine for the supported
// gate set (X, H, CX, end-of-circuit measurement). It computes the exact
// outcome distribution of the measured qubits and draws shots from it with
// a seedable RNG, so point-mass distributions reproduce deterministically
// regardless of the seed.
type StateVector struct {
	seed     int64
	workers  int
	runIndex int
	observer ProgressObserver
}

// StateVectorOption is a functional option for configuring a StateVector.
type StateVectorOption func(*StateVector)

// WithSeed fixes the sampling RNG seed for reproducible counts. A zero seed
// (the default) derives the seed from the wall clock.
func WithSeed(seed int64) StateVectorOption {
	return func(s *StateVector) { s.seed = seed }
}

// WithWorkers sets the number of goroutines used for shot sampling.
// Values below one fall back to the number of logical CPUs.
func WithWorkers(n int) StateVectorOption {
	return func(s *StateVector) { s.workers = n }
}

// WithProgress attaches a progress observer; updates carry runIndex so that
// concurrent runs can share one observer.
func WithProgress(runIndex int, obs ProgressObserver) StateVectorOption {
	return func(s *StateVector) {
		s.runIndex = runIndex
		s.observer = obs
	}
}

// NewStateVector creates a statevector engine with the given options.
func NewStateVector(opts ...StateVectorOption) *StateVector {
	s := &StateVector{}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = runtime.NumCPU()
	}
	return s
}

// measurement records one measure operation encountered in gate order.
type measurement struct {
	qubit int
	slot  int
}

// Run executes the circuit shots times and returns the outcome counts.
// The unitary part of the circuit is evolved once; the exact joint
// distribution of the measured qubits is then obtained by marginalizing
// squared amplitudes, and shots are drawn from it by cumulative-probability
// sampling.
func (s *StateVector) Run(ctx context.Context, c *circuit.Circuit, shots uint64) (Counts, error) {
	start := time.Now()
	counts, err := s.run(ctx, c, shots)
	observeSimulation(time.Since(start), shots, err)
	return counts, err
}

func (s *StateVector) run(ctx context.Context, c *circuit.Circuit, shots uint64) (Counts, error) {
	if shots == 0 {
		return nil, ErrInvalidShots
	}
	if c.NumQubits() > MaxQubits {
		return nil, fmt.Errorf("%w: %d qubits, limit %d", ErrCircuitTooWide, c.NumQubits(), MaxQubits)
	}

	dist, err := s.evolve(ctx, c)
	if err != nil {
		return nil, err
	}
	return s.sample(ctx, dist, shots)
}

// outcome pairs a classical bit-string with its exact probability.
type outcome struct {
	key  string
	prob float64
}

// evolve applies the circuit's gates to the |0...0⟩ state and returns the
// exact outcome distribution over the classical register.
func (s *StateVector) evolve(ctx context.Context, c *circuit.Circuit) ([]outcome, error) {
	n := c.NumQubits()
	amps := make([]complex128, 1<<uint(n))
	amps[0] = 1

	var measured uint64 // qubits already read out
	var slotsUsed uint64
	measurements := make([]measurement, 0, c.NumClbits())

	for _, g := range c.Gates() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch g.Kind {
		case circuit.KindX:
			if measured&(1<<uint(g.Target)) != 0 {
				return nil, fmt.Errorf("%w: qubit %d", ErrMeasuredQubit, g.Target)
			}
			applyX(amps, g.Target)
		case circuit.KindH:
			if measured&(1<<uint(g.Target)) != 0 {
				return nil, fmt.Errorf("%w: qubit %d", ErrMeasuredQubit, g.Target)
			}
			applyH(amps, g.Target)
		case circuit.KindCX:
			if measured&(1<<uint(g.Target)|1<<uint(g.Control)) != 0 {
				return nil, fmt.Errorf("%w: cx q[%d], q[%d]", ErrMeasuredQubit, g.Control, g.Target)
			}
			applyCX(amps, g.Control, g.Target)
		case circuit.KindMeasure:
			if slotsUsed&(1<<uint(g.Classical)) != 0 {
				return nil, fmt.Errorf("%w: slot %d", ErrSlotReused, g.Classical)
			}
			slotsUsed |= 1 << uint(g.Classical)
			measured |= 1 << uint(g.Target)
			measurements = append(measurements, measurement{qubit: g.Target, slot: g.Classical})
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownGate, g.Kind)
		}
	}

	for slot := 0; slot < c.NumClbits(); slot++ {
		if slotsUsed&(1<<uint(slot)) == 0 {
			return nil, fmt.Errorf("%w: slot %d", ErrUnmeasuredSlot, slot)
		}
	}

	return marginalize(amps, measurements, c.NumClbits()), nil
}

// marginalize folds squared amplitudes into the joint distribution of the
// measured qubits, keyed by classical bit-string. Numerical dust below
// probEpsilon is dropped and the remaining mass renormalized, so noiseless
// circuits yield their analytic distribution exactly.
func marginalize(amps []complex128, measurements []measurement, clbits int) []outcome {
	probs := make(map[string]float64)
	key := make([]byte, clbits)
	for i, amp := range amps {
		p := real(amp)*real(amp) + imag(amp)*imag(amp)
		if p == 0 {
			continue
		}
		for j := range key {
			key[j] = '0'
		}
		for _, meas := range measurements {
			if i&(1<<uint(meas.qubit)) != 0 {
				key[meas.slot] = '1'
			}
		}
		probs[string(key)] += p
	}

	outcomes := make([]outcome, 0, len(probs))
	var mass float64
	for k, p := range probs {
		if p < probEpsilon {
			continue
		}
		outcomes = append(outcomes, outcome{key: k, prob: p})
		mass += p
	}
	// Sorted keys keep the cumulative distribution, and therefore seeded
	// sampling, reproducible across runs.
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].key < outcomes[j].key })
	for i := range outcomes {
		outcomes[i].prob /= mass
	}
	return outcomes
}

// sample draws shots from the outcome distribution, fanning the work out
// over the configured number of workers. Each worker owns a derived RNG and
// a private count map; maps are merged once all workers finish.
func (s *StateVector) sample(ctx context.Context, dist []outcome, shots uint64) (Counts, error) {
	// Cumulative distribution for inverse-transform sampling.
	cumulative := make([]float64, len(dist))
	acc := 0.0
	for i, o := range dist {
		acc += o.prob
		cumulative[i] = acc
	}
	cumulative[len(cumulative)-1] = 1.0

	seed := s.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	workers := s.workers
	if uint64(workers) > shots {
		workers = int(shots)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ec      parallel.ErrorCollector
		sampled uint64
		total   = Counts{}
	)

	base := shots / uint64(workers)
	extra := shots % uint64(workers)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		quota := base
		if uint64(w) < extra {
			quota++
		}
		go func(worker int, quota uint64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed + int64(worker)))
			local := Counts{}
			var done uint64
			for done < quota {
				batch := uint64(progressBatch)
				if quota-done < batch {
					batch = quota - done
				}
				if err := ctx.Err(); err != nil {
					ec.SetError(err)
					return
				}
				for i := uint64(0); i < batch; i++ {
					local[dist[pick(cumulative, rng.Float64())].key]++
				}
				done += batch

				mu.Lock()
				sampled += batch
				frac := float64(sampled) / float64(shots)
				mu.Unlock()
				if s.observer != nil {
					s.observer.Update(s.runIndex, frac)
				}
			}
			mu.Lock()
			total.Merge(local)
			mu.Unlock()
		}(w, quota)
	}
	wg.Wait()

	if err := ec.Err(); err != nil {
		return nil, err
	}
	return total, nil
}

// pick returns the index of the first cumulative bound >= r.
func pick(cumulative []float64, r float64) int {
	i := sort.SearchFloat64s(cumulative, r)
	if i == len(cumulative) {
		i = len(cumulative) - 1
	}
	return i
}

// applyX swaps the amplitude pairs that differ only in bit q.
func applyX(amps []complex128, q int) {
	bit := 1 << uint(q)
	for i := range amps {
		if i&bit == 0 {
			j := i | bit
			amps[i], amps[j] = amps[j], amps[i]
		}
	}
}

// applyH applies the Hadamard transform on bit q.
//
//	H = 1/√2 * [1  1]
//	           [1 -1]
func applyH(amps []complex128, q int) {
	factor := complex(1/math.Sqrt2, 0)
	bit := 1 << uint(q)
	for i := range amps {
		if i&bit == 0 {
			j := i | bit
			a, b := amps[i], amps[j]
			amps[i] = factor * (a + b)
			amps[j] = factor * (a - b)
		}
	}
}

// applyCX flips bit target on the basis states where bit control is set.
func applyCX(amps []complex128, control, target int) {
	cBit := 1 << uint(control)
	tBit := 1 << uint(target)
	for i := range amps {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			amps[i], amps[j] = amps[j], amps[i]
		}
	}
}
