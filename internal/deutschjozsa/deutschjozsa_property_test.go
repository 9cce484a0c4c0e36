package deutschjozsa

import (
	"context"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/djsim/internal/oracle"
	"github.com/agbru/djsim/internal/simulator"
)

// TestClassification_PropertyBased verifies the algorithm's central promise
// over random input widths and oracle choices: constant oracles always
// classify as CONSTANT with the all-zero dominant outcome, and balanced
// oracles always classify as BALANCED, each from a single query.
func TestClassification_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60
	properties := gopter.NewProperties(parameters)

	run := func(variant oracle.Variant, m int) (Outcome, bool) {
		oracleCircuit, err := variant.Build(m)
		if err != nil {
			return Outcome{}, false
		}
		full, err := Compose(m, oracleCircuit)
		if err != nil {
			return Outcome{}, false
		}
		engine := simulator.NewStateVector(simulator.WithSeed(11), simulator.WithWorkers(2))
		counts, err := engine.Run(context.Background(), full, 256)
		if err != nil {
			return Outcome{}, false
		}
		out, err := Classify(counts, m, 256)
		if err != nil {
			return Outcome{}, false
		}
		return out, true
	}

	properties.Property("constant oracles yield CONSTANT and all zeros", prop.ForAll(
		func(m int, flip bool) bool {
			var variant oracle.Variant = oracle.Constant0{}
			if flip {
				variant = oracle.Constant1{}
			}
			out, ok := run(variant, m)
			return ok && out.Classification == Constant && out.Dominant == strings.Repeat("0", m)
		},
		gen.IntRange(1, 7),
		gen.Bool(),
	))

	properties.Property("subset-parity oracles yield BALANCED with the mask as outcome", prop.ForAll(
		func(m int, maskSeed uint64) bool {
			mask := maskSeed % (1 << uint(m))
			if mask == 0 {
				mask = 1
			}
			out, ok := run(oracle.SubsetParity{Mask: mask}, m)
			if !ok || out.Classification != Balanced {
				return false
			}
			// Phase kickback maps f(x) = mask·x onto the mask itself.
			expected := make([]byte, m)
			for i := 0; i < m; i++ {
				expected[i] = '0'
				if mask&(1<<uint(i)) != 0 {
					expected[i] = '1'
				}
			}
			return out.Dominant == string(expected)
		},
		gen.IntRange(1, 7),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}
