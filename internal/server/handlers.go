package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/agbru/djsim/internal/errors"
	"github.com/agbru/djsim/internal/service"
	"github.com/agbru/djsim/pkg/models"
)

// handleHealth responds to health check requests.
// It returns a 200 OK status with a JSON payload indicating the service is healthy.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleOracles returns the list of available oracle variants.
// It queries the internal registry and returns the names as a JSON array.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleOracles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	oracles := s.factory.List()

	response := map[string]any{
		"oracles": oracles,
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleRun processes requests to execute the Deutsch-Jozsa algorithm.
// It parses the query parameters 'm' (input width), 'oracle' (the variant),
// and 'shots', executes the run, and returns the result in JSON format.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	// Parse and validate parameters using helper
	params, err := s.parseRunParams(r)
	if err != nil {
		var parseErr RunParseError
		if errors.As(err, &parseErr) {
			s.writeErrorResponse(w, parseErr.StatusCode, parseErr.Message)
		} else {
			s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	// Create a context with timeout for the run
	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	// Perform the run
	start := time.Now()
	outcome, err := s.service.Run(ctx, params.Oracle, params.M, params.Shots)
	duration := time.Since(start)

	// Handle max width exceeded error
	if errors.Is(err, service.ErrMaxWidthExceeded) {
		s.writeErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("Value of 'm' exceeds maximum allowed (%d). This limit prevents resource exhaustion.", s.maxM))
		return
	}

	// Oracle construction failures (unknown variant, invalid width) are
	// configuration errors on the caller's side, reported as 400s.
	var cfgErr apperrors.ConfigError
	if errors.As(err, &cfgErr) {
		s.writeErrorResponse(w, http.StatusBadRequest, cfgErr.Error())
		return
	}

	// Build and send response using helper
	resp := buildRunResponse(params, outcome, duration, err)
	s.writeJSONResponse(w, http.StatusOK, resp)
}

// runParams holds the parsed parameters of a /run request.
type runParams struct {
	M      int
	Oracle string
	Shots  uint64
}

// parseRunParams extracts and validates the run parameters from the request.
// Missing parameters fall back to the server's configured defaults.
//
// Parameters:
//   - r: The HTTP request containing query parameters.
//
// Returns:
//   - runParams: The parsed parameters.
//   - err: A RunParseError if validation fails, nil otherwise.
func (s *Server) parseRunParams(r *http.Request) (runParams, error) {
	params := runParams{
		M:      s.cfg.M,
		Oracle: s.cfg.Oracle,
		Shots:  s.cfg.Shots,
	}
	if params.Oracle == "" || params.Oracle == "all" {
		params.Oracle = "balanced" // "all" is a CLI concept; the API runs one variant
	}

	if mStr := r.URL.Query().Get("m"); mStr != "" {
		m, parseErr := strconv.Atoi(mStr)
		if parseErr != nil || m < 1 {
			return runParams{}, RunParseError{
				Message:    "Invalid 'm' parameter: must be a positive integer",
				StatusCode: http.StatusBadRequest,
			}
		}
		params.M = m
	}

	if oracle := r.URL.Query().Get("oracle"); oracle != "" {
		params.Oracle = oracle
	}

	if shotsStr := r.URL.Query().Get("shots"); shotsStr != "" {
		shots, parseErr := strconv.ParseUint(shotsStr, 10, 64)
		if parseErr != nil || shots == 0 {
			return runParams{}, RunParseError{
				Message:    "Invalid 'shots' parameter: must be a positive integer",
				StatusCode: http.StatusBadRequest,
			}
		}
		params.Shots = shots
	}

	return params, nil
}

// buildRunResponse constructs the response struct for a run.
//
// Parameters:
//   - params: The parameters the run was executed with.
//   - outcome: The run outcome (zero value if an error occurred).
//   - duration: The time taken for the run.
//   - err: Any error that occurred during the run.
//
// Returns:
//   - models.ExperimentResult: The constructed response struct.
func buildRunResponse(params runParams, outcome service.RunOutcome, duration time.Duration, err error) models.ExperimentResult {
	resp := models.ExperimentResult{
		Oracle:   params.Oracle,
		M:        params.M,
		Shots:    params.Shots,
		Duration: duration.String(),
	}

	if err != nil {
		resp.Error = err.Error()
	} else {
		resp.Classification = outcome.Classification.String()
		resp.Dominant = outcome.Dominant
		resp.Counts = outcome.Counts
	}

	return resp
}

// writeJSONResponse helper function to write a JSON response with the correct content type.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - data: The data to be encoded as JSON.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("Error encoding JSON response: %v", err)
	}
}

// writeErrorResponse helper function to write a standardized error response.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - message: The error message to be included in the response body.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errResp := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}
