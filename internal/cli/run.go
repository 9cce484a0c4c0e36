package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/djsim/internal/config"
	"github.com/agbru/djsim/internal/oracle"
)

// GetOraclesToRun determines which oracle variants should be queried based
// on the configuration. Returns variants in alphabetically sorted order for
// consistent, reproducible behavior.
//
// Parameters:
//   - cfg: The application configuration containing the oracle selection.
//   - factory: The oracle factory to retrieve variants from.
//
// Returns:
//   - []oracle.Variant: A slice of variants to query.
func GetOraclesToRun(cfg config.AppConfig, factory oracle.Factory) []oracle.Variant {
	if cfg.Oracle == "all" {
		return factory.GetAll()
	}
	if v, err := factory.Get(cfg.Oracle); err == nil {
		return []oracle.Variant{v}
	}
	return nil
}

// PrintExecutionConfig displays the current execution configuration to the
// user: input width, shot count, timeout, and environment details.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Querying oracles over %sm=%d%s input qubits (%s%d%s qubits total) with %s%d%s shots.\n",
		ColorMagenta(), cfg.M, ColorReset(),
		ColorCyan(), cfg.M+1, ColorReset(),
		ColorCyan(), cfg.Shots, ColorReset())
	fmt.Fprintf(out, "Timeout: %s%s%s. Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ColorYellow(), cfg.Timeout, ColorReset(),
		ColorCyan(), runtime.NumCPU(), ColorReset(),
		ColorCyan(), runtime.Version(), ColorReset())
	if cfg.Seed != 0 {
		fmt.Fprintf(out, "Sampling seed: %s%d%s (reproducible counts).\n", ColorCyan(), cfg.Seed, ColorReset())
	}
}

// PrintExecutionMode displays the execution mode (single oracle vs
// comparison of all variants).
//
// Parameters:
//   - oracles: The slice of variants that will be queried.
//   - out: The writer for standard output.
func PrintExecutionMode(oracles []oracle.Variant, out io.Writer) {
	var modeDesc string
	if len(oracles) > 1 {
		modeDesc = "Parallel comparison of all oracle variants"
	} else {
		modeDesc = fmt.Sprintf("Single query against the %s%s%s oracle",
			ColorGreen(), oracles[0].Name(), ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
