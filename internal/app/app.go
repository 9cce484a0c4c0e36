package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/agbru/djsim/internal/cli"
	"github.com/agbru/djsim/internal/config"
	apperrors "github.com/agbru/djsim/internal/errors"
	"github.com/agbru/djsim/internal/oracle"
	"github.com/agbru/djsim/internal/orchestration"
	"github.com/agbru/djsim/internal/server"
	"github.com/agbru/djsim/internal/ui"
	"github.com/agbru/djsim/pkg/models"
)

// Application represents the djsim application instance.
// It encapsulates the configuration and provides methods to run
// the application in various modes (CLI, server).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Factory provides access to the registered oracle variants.
	// Uses the interface type for better testability and dependency injection.
	Factory oracle.Factory
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	factory := oracle.GlobalFactory()
	availableOracles := factory.List()

	// args[0] is program name, args[1:] are the actual arguments
	programName := "djsim"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableOracles)
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Factory:   factory,
		ErrWriter: errWriter,
	}, nil
}

// Run executes the application based on the configured mode.
// It dispatches to the appropriate handler (server or CLI).
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	// Initialize CLI theme (respects --no-color flag and NO_COLOR env var)
	ui.InitTheme(a.Config.NoColor)

	// Server mode
	if a.Config.ServerMode {
		return a.runServer()
	}

	// Standard CLI mode
	return a.runExperiment(ctx, out)
}

// runServer starts the HTTP server mode with the default rate limiter.
func (a *Application) runServer() int {
	srv := server.NewServer(a.Factory, a.Config,
		server.WithRateLimiter(server.NewRateLimiter(server.DefaultRateLimiterConfig())))
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runExperiment orchestrates the execution of the CLI command.
func (a *Application) runExperiment(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancelFuncs := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancelFuncs.Cleanup()

	// Resolve the oracle variants to query
	oraclesToRun := cli.GetOraclesToRun(a.Config, a.Factory)

	// Skip verbose output in quiet mode
	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(oraclesToRun, out)
	}

	// In quiet mode, use a discard writer for progress display
	progressOut := out
	if a.Config.Quiet || a.Config.JSONOutput {
		progressOut = io.Discard
	}

	// Execute the runs
	results := orchestration.ExecuteRuns(ctx, oraclesToRun, a.Config, progressOut)

	// Handle JSON output
	if a.Config.JSONOutput {
		return printJSONResults(results, a.Config, out)
	}

	// Build output config for the CLI options
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}

	return a.analyzeResultsWithOutput(results, outputCfg, out)
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.RunResult, outputCfg cli.OutputConfig, out io.Writer) int {
	firstResult := findFirstSuccess(results)

	// Handle quiet mode for single result
	if outputCfg.Quiet && firstResult != nil && len(results) == 1 {
		cli.DisplayQuietResult(out, a.toExperimentResult(*firstResult))

		// Save to file if requested
		if err := a.saveResultIfNeeded(firstResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}

		return apperrors.ExitSuccess
	}

	// Single-run mode gets the verdict and histogram instead of the table
	if len(results) == 1 {
		return a.analyzeSingleResult(results[0], outputCfg, out)
	}

	// Use the comparison analysis for multi-run mode
	exitCode := orchestration.AnalyzeComparisonResults(results, a.Config, out)

	if firstResult != nil && exitCode == apperrors.ExitSuccess {
		if outputCfg.Verbose {
			fmt.Fprintln(out)
			cli.RenderHistogram(firstResult.Counts, out)
		}
		if err := a.saveResultIfNeeded(firstResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		if outputCfg.OutputFile != "" {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				cli.ColorGreen(), cli.ColorCyan(), outputCfg.OutputFile, cli.ColorReset())
		}
	}

	return exitCode
}

// analyzeSingleResult reports the outcome of a single-oracle run.
func (a *Application) analyzeSingleResult(res orchestration.RunResult, outputCfg cli.OutputConfig, out io.Writer) int {
	if res.Err != nil {
		return apperrors.HandleRunError(res.Err, res.Duration, out, cli.CLIColorProvider{})
	}

	cli.DisplayVerdict(out, a.toExperimentResult(res))
	fmt.Fprintf(out, "Run completed in %s%s%s.\n",
		cli.ColorYellow(), cli.FormatExecutionDuration(res.Duration), cli.ColorReset())

	if outputCfg.Verbose {
		fmt.Fprintln(out)
		cli.RenderHistogram(res.Counts, out)
	}

	if err := a.saveResultIfNeeded(&res, outputCfg); err != nil {
		return apperrors.ExitErrorGeneric
	}
	if outputCfg.OutputFile != "" {
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			cli.ColorGreen(), cli.ColorCyan(), outputCfg.OutputFile, cli.ColorReset())
	}

	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
// This is useful for determining if the application should exit with success
// after displaying help text.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: True if the error indicates help was requested.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

func findFirstSuccess(results []orchestration.RunResult) *orchestration.RunResult {
	for i := range results {
		if results[i].Err == nil {
			return &results[i]
		}
	}
	return nil
}

// toExperimentResult converts an orchestration result into the shared wire
// model used by the JSON output and the file export.
func (a *Application) toExperimentResult(res orchestration.RunResult) models.ExperimentResult {
	er := models.ExperimentResult{
		Oracle:   res.Name,
		M:        a.Config.M,
		Shots:    a.Config.Shots,
		Duration: res.Duration.String(),
	}
	if res.Err != nil {
		er.Error = res.Err.Error()
	} else {
		er.Classification = res.Classification.String()
		er.Dominant = res.Dominant
		er.Counts = res.Counts
	}
	return er
}

func (a *Application) saveResultIfNeeded(res *orchestration.RunResult, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(a.toExperimentResult(*res), cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving result: %v\n", err)
		return err
	}
	return nil
}

// printJSONResults formats the run results as a JSON array and writes them to
// the output. This is useful for programmatic consumption of the results.
func printJSONResults(results []orchestration.RunResult, cfg config.AppConfig, out io.Writer) int {
	output := make([]models.ExperimentResult, len(results))
	for i, res := range results {
		er := models.ExperimentResult{
			Oracle:   res.Name,
			M:        cfg.M,
			Shots:    cfg.Shots,
			Duration: res.Duration.String(),
		}
		if res.Err != nil {
			er.Error = res.Err.Error()
		} else {
			er.Classification = res.Classification.String()
			er.Dominant = res.Dominant
			er.Counts = res.Counts
		}
		output[i] = er
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
