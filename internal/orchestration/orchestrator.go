// Package orchestration coordinates the concurrent execution of one or more
// Deutsch-Jozsa runs and the analysis of their results.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/djsim/internal/cli"
	"github.com/agbru/djsim/internal/config"
	"github.com/agbru/djsim/internal/deutschjozsa"
	apperrors "github.com/agbru/djsim/internal/errors"
	"github.com/agbru/djsim/internal/oracle"
	"github.com/agbru/djsim/internal/simulator"
	"github.com/agbru/djsim/internal/ui"
)

// RunResult encapsulates the outcome of a single Deutsch-Jozsa run against
// one oracle variant. It serves as a standardized container for results from
// different variants, facilitating comparison and reporting.
type RunResult struct {
	// Name is the identifier of the oracle variant (e.g., "balanced").
	Name string
	// Classification is the verdict on f. Only meaningful when Err is nil.
	Classification deutschjozsa.Classification
	// Dominant is the bit-string with the highest occurrence count.
	Dominant string
	// Counts holds the full measurement-outcome counts of the run.
	Counts simulator.Counts
	// Duration is the time taken to complete the run.
	Duration time.Duration
	// Err contains any error that occurred during the run.
	Err error
}

// ProgressBufferMultiplier defines the buffer size multiplier for the
// progress channel. A larger buffer reduces the likelihood of blocking
// sampling goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// verboseLogThreshold is the minimum progress delta between structured
// progress log lines in verbose mode.
const verboseLogThreshold = 0.25

// progressLogOutput receives the verbose progress log. A variable so tests
// can capture the stream.
var progressLogOutput io.Writer = os.Stderr

// ExecuteRuns orchestrates the concurrent execution of the algorithm against
// one or more oracle variants.
//
// Each variant gets its own circuit and its own engine instance, all sharing
// one progress channel that a display goroutine aggregates into a single
// progress bar. This function is the core of the application's concurrency
// model.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - oracles: The oracle variants to query.
//   - cfg: The application configuration (m, shots, seed, workers).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []RunResult: A slice containing the result of each run.
func ExecuteRuns(ctx context.Context, oracles []oracle.Variant, cfg config.AppConfig, out io.Writer) []RunResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]RunResult, len(oracles))
	progressChan := make(chan simulator.ProgressUpdate, len(oracles)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, progressChan, len(oracles), out)

	var observer simulator.ProgressObserver = simulator.NewChannelObserver(progressChan)
	if cfg.Verbose {
		// Verbose runs also stream structured progress lines.
		logObs := simulator.NewLoggingObserver(
			zerolog.New(progressLogOutput).With().Timestamp().Logger(),
			verboseLogThreshold,
		)
		observer = simulator.NewMultiObserver(observer, logObs)
	}
	for i, v := range oracles {
		idx, variant := i, v
		g.Go(func() error {
			startTime := time.Now()
			outcome, err := runSingle(ctx, variant, cfg, idx, observer)
			results[idx] = RunResult{
				Name:           variant.Name(),
				Classification: outcome.Classification,
				Dominant:       outcome.Dominant,
				Counts:         outcome.Counts,
				Duration:       time.Since(startTime),
				Err:            err,
			}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// singleOutcome carries the interpreted result of one run between runSingle
// and its caller.
type singleOutcome struct {
	Classification deutschjozsa.Classification
	Dominant       string
	Counts         simulator.Counts
}

// runSingle builds, simulates, and interprets one run against one variant.
func runSingle(ctx context.Context, variant oracle.Variant, cfg config.AppConfig, runIndex int, observer simulator.ProgressObserver) (singleOutcome, error) {
	oracleCircuit, err := variant.Build(cfg.M)
	if err != nil {
		return singleOutcome{}, err
	}
	full, err := deutschjozsa.Compose(cfg.M, oracleCircuit)
	if err != nil {
		return singleOutcome{}, err
	}

	engine := simulator.NewStateVector(
		simulator.WithSeed(cfg.Seed),
		simulator.WithWorkers(cfg.Workers),
		simulator.WithProgress(runIndex, observer),
	)
	counts, err := engine.Run(ctx, full, cfg.Shots)
	if err != nil {
		return singleOutcome{}, err
	}

	interpreted, err := deutschjozsa.Classify(counts, cfg.M, cfg.Shots)
	if err != nil {
		return singleOutcome{}, err
	}
	return singleOutcome{
		Classification: interpreted.Classification,
		Dominant:       interpreted.Dominant,
		Counts:         counts,
	}, nil
}

// AnalyzeComparisonResults processes the results from multiple oracle runs
// and generates a summary report.
//
// It sorts the results by execution time, displays a comparative table with
// each variant's verdict, and determines the global exit code from the
// individual outcomes.
//
// Parameters:
//   - results: The slice of run results to analyze.
//   - cfg: The application configuration.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []RunResult, cfg config.AppConfig, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstError error
	var firstErrorDuration time.Duration
	successCount := 0

	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sOracle%s\t%sVerdict%s\t%sDominant%s\t%sDuration%s\t%sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status, verdict, dominant string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
			verdict = "-"
			dominant = "-"
			if firstError == nil {
				firstError = res.Err
				firstErrorDuration = res.Duration
			}
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
			verdict = res.Classification.String()
			dominant = res.Dominant
			successCount++
		}
		duration := cli.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%s%s%s\t%s%s%s\t%s%s%s\t%s%s%s\t%s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(),
			ui.ColorGreen(), verdict, ui.ColorReset(),
			ui.ColorCyan(), dominant, ui.ColorReset(),
			ui.ColorYellow(), duration, ui.ColorReset(),
			status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No run could complete.\n")
		return apperrors.HandleRunError(firstError, firstErrorDuration, out, cli.CLIColorProvider{})
	}

	if firstError != nil {
		fmt.Fprintf(out, "\nGlobal Status: Partial failure. Some runs did not complete.\n")
		return apperrors.HandleRunError(firstError, firstErrorDuration, out, cli.CLIColorProvider{})
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. Each oracle was classified from a single query.\n")
	return apperrors.ExitSuccess
}
