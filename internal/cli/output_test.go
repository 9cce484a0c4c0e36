package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agbru/djsim/pkg/models"
)

func sampleResult() models.ExperimentResult {
	return models.ExperimentResult{
		Oracle:         "balanced",
		M:              4,
		Shots:          1000,
		Classification: "BALANCED",
		Dominant:       "1111",
		Counts:         map[string]uint64{"1111": 1000},
		Duration:       "12ms",
	}
}

func TestWriteResultToFile(t *testing.T) {
	t.Parallel()

	t.Run("WritesMetadataAndCounts", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "result.txt")
		cfg := OutputConfig{OutputFile: path}

		if err := WriteResultToFile(sampleResult(), cfg); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read output file: %v", err)
		}
		content := string(data)
		for _, want := range []string{
			"# Oracle: balanced",
			"# M: 4",
			"# Shots: 1000",
			"classification = BALANCED",
			"dominant = 1111",
			"1111 1000",
		} {
			if !strings.Contains(content, want) {
				t.Errorf("Output missing %q:\n%s", want, content)
			}
		}
	})

	t.Run("CreatesParentDirectory", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "nested", "dir", "result.txt")
		if err := WriteResultToFile(sampleResult(), OutputConfig{OutputFile: path}); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected file to exist: %v", err)
		}
	})

	t.Run("NoopWithoutPath", func(t *testing.T) {
		t.Parallel()
		if err := WriteResultToFile(sampleResult(), OutputConfig{}); err != nil {
			t.Errorf("Expected nil error without output file, got %v", err)
		}
	})
}

func TestFormatQuietResult(t *testing.T) {
	t.Parallel()
	if got := FormatQuietResult(sampleResult()); got != "BALANCED 1111" {
		t.Errorf("Expected 'BALANCED 1111', got %q", got)
	}
}

func TestDisplayQuietResult(t *testing.T) {
	t.Parallel()
	var out strings.Builder
	DisplayQuietResult(&out, sampleResult())
	if out.String() != "BALANCED 1111\n" {
		t.Errorf("Expected single-line output, got %q", out.String())
	}
}
