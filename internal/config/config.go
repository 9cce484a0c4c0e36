// Package config provides the configuration management for the djsim
// application. It defines the data structure for the configuration, handles
// the parsing of command-line arguments, and performs validation on the
// configuration values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/djsim/internal/errors"
)

const (
	// EnvPrefix is the prefix for all environment variables used by djsim.
	// Environment variables provide an alternative to CLI flags for
	// configuration, following the 12-Factor App methodology.
	EnvPrefix = "DJSIM_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultM is the default input-register width in qubits.
	DefaultM = 4
	// DefaultShots is the default number of repeated circuit executions.
	DefaultShots uint64 = 100_000
	// DefaultTimeout is the default run timeout.
	DefaultTimeout = 30 * time.Second
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultOracle is the default oracle selection.
	DefaultOracle = "all"
)

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags. It encapsulates all settings that control the
// execution, from the input width and oracle variant to presentation modes.
type AppConfig struct {
	// M is the number of input qubits; the circuit uses M+1 qubits total.
	M int
	// Oracle selects the oracle variant to run ("all" runs every
	// registered variant concurrently).
	Oracle string
	// Shots is the number of repeated circuit executions used to estimate
	// the outcome distribution.
	Shots uint64
	// Seed fixes the engine's sampling RNG for reproducible counts.
	// Zero derives the seed from the wall clock.
	Seed int64
	// Workers sets the number of sampling goroutines (0 = one per CPU).
	Workers int
	// Timeout sets the maximum duration for the run.
	Timeout time.Duration
	// Verbose, if true, prints the full outcome counts table.
	Verbose bool
	// JSONOutput, if true, outputs the result in JSON format.
	JSONOutput bool
	// Quiet mode - minimal output for scripting purposes.
	// Suppresses progress bars, histograms, and informational messages.
	Quiet bool
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
	// OutputFile, if specified, saves the result to this file path.
	OutputFile string
}

// Validate checks the semantic consistency of the configuration parameters.
// It ensures that numerical values are within valid ranges and that the
// chosen oracle variant is registered.
//
// Parameters:
//   - availableOracles: A slice of strings listing the valid oracle names.
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate(availableOracles []string) error {
	if c.M < 1 {
		return apperrors.NewConfigError("input width m must be at least 1, got %d", c.M)
	}
	if c.Shots < 1 {
		return apperrors.NewConfigError("shot count must be at least 1")
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("worker count cannot be negative: %d", c.Workers)
	}
	isOracleAvailable := false
	for _, name := range availableOracles {
		if name == c.Oracle {
			isOracleAvailable = true
			break
		}
	}
	if c.Oracle != "all" && !isOracleAvailable {
		return apperrors.NewConfigError("unrecognized oracle variant: '%s'. Valid variants are: 'all' or [%s]",
			c.Oracle, strings.Join(availableOracles, ", "))
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. It defines all the command-line flags, sets their default values,
// and handles the parsing process. After parsing, it performs validation on
// the resulting configuration.
//
// The function is designed to be testable by allowing the input arguments
// and output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments
//     (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//   - availableOracles: A slice of valid oracle names for validation.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableOracles []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	oracleHelp := fmt.Sprintf("Oracle variant to query: 'all' (default) or one of [%s].", strings.Join(availableOracles, ", "))

	config := AppConfig{}
	fs.IntVar(&config.M, "m", DefaultM, "Number of input qubits (the circuit uses m+1 qubits).")
	fs.StringVar(&config.Oracle, "oracle", DefaultOracle, oracleHelp)
	fs.Uint64Var(&config.Shots, "shots", DefaultShots, "Number of repeated circuit executions.")
	fs.Int64Var(&config.Seed, "seed", 0, "Sampling RNG seed (0 = time-based).")
	fs.IntVar(&config.Workers, "workers", 0, "Number of sampling goroutines (0 = one per CPU).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the run.")
	fs.BoolVar(&config.Verbose, "v", false, "Display the full outcome counts table.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Alias for -v.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the result.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	// Apply environment variable overrides for flags not explicitly set
	applyEnvOverrides(&config, fs)

	config.Oracle = strings.ToLower(config.Oracle)
	if err := config.Validate(availableOracles); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}

// setCustomUsage installs a usage message with grouped flags and examples.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: %s [options]\n\n", fs.Name())
		fmt.Fprintf(out, "Decide whether a hidden boolean function is constant or balanced\n")
		fmt.Fprintf(out, "with a single oracle query (Deutsch-Jozsa).\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  %s -m 4 -oracle balanced -shots 100000\n", fs.Name())
		fmt.Fprintf(out, "  %s -m 1 -oracle constant1 -json\n", fs.Name())
		fmt.Fprintf(out, "  %s -server -port 8080\n", fs.Name())
		fmt.Fprintf(out, "\nEnvironment variables (override unset flags): %sM, %sORACLE, %sSHOTS, ...\n",
			EnvPrefix, EnvPrefix, EnvPrefix)
	}
}
