// Package models defines the shared, JSON-serializable data structures for
// experiment results. They are used by the CLI JSON output, the file export,
// and the HTTP API, providing one stable wire format for all three surfaces.
package models

// ExperimentResult is the outcome of one Deutsch-Jozsa run against a single
// oracle variant.
type ExperimentResult struct {
	// Oracle is the name of the oracle variant that was queried.
	Oracle string `json:"oracle"`
	// M is the input-register width in qubits.
	M int `json:"m"`
	// Shots is the number of repeated circuit executions.
	Shots uint64 `json:"shots"`
	// Classification is the verdict on f: "CONSTANT" or "BALANCED".
	Classification string `json:"classification,omitempty"`
	// Dominant is the measured bit-string carrying the most count mass.
	Dominant string `json:"dominant,omitempty"`
	// Counts maps measured bit-strings to occurrence counts.
	Counts map[string]uint64 `json:"counts,omitempty"`
	// Duration is the wall-clock duration of the run.
	Duration string `json:"duration"`
	// Error holds the failure message if the run did not complete.
	Error string `json:"error,omitempty"`
}
