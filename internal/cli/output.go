// Package cli provides output utilities for exporting run results.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/agbru/djsim/pkg/models"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode suppresses verbose output.
	Quiet bool
	// Verbose shows the full outcome counts table.
	Verbose bool
}

// WriteResultToFile writes an experiment result to a file, with a metadata
// header followed by the full counts table.
//
// Parameters:
//   - result: The experiment result to export.
//   - config: Output configuration (the file path in particular).
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(result models.ExperimentResult, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Deutsch-Jozsa Run Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Oracle: %s\n", result.Oracle)
	fmt.Fprintf(file, "# M: %d\n", result.M)
	fmt.Fprintf(file, "# Shots: %d\n", result.Shots)
	fmt.Fprintf(file, "# Duration: %s\n", result.Duration)
	fmt.Fprintf(file, "\n")
	fmt.Fprintf(file, "classification = %s\n", result.Classification)
	fmt.Fprintf(file, "dominant = %s\n", result.Dominant)
	fmt.Fprintf(file, "\n")

	keys := make([]string, 0, len(result.Counts))
	for key := range result.Counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(file, "%s %d\n", key, result.Counts[key])
	}

	return nil
}

// FormatQuietResult formats a result for quiet mode output: a single line
// suitable for scripting, "CLASSIFICATION dominant-bit-string".
//
// Parameters:
//   - result: The experiment result.
//
// Returns:
//   - string: The formatted result string.
func FormatQuietResult(result models.ExperimentResult) string {
	return fmt.Sprintf("%s %s", result.Classification, result.Dominant)
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
//
// Parameters:
//   - out: The output writer.
//   - result: The experiment result.
func DisplayQuietResult(out io.Writer, result models.ExperimentResult) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// DisplayVerdict prints the classification verdict for a single run in the
// standard (non-quiet) format.
//
// Parameters:
//   - out: The output writer.
//   - result: The experiment result.
func DisplayVerdict(out io.Writer, result models.ExperimentResult) {
	fmt.Fprintf(out, "\n%s--- Verdict ---%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(out, "Oracle %s%s%s is %s%s%s (dominant outcome %s%q%s over %d shots).\n",
		ColorCyan(), result.Oracle, ColorReset(),
		ColorGreen(), result.Classification, ColorReset(),
		ColorMagenta(), result.Dominant, ColorReset(),
		result.Shots)
}
