package logging

import (
	"encoding/json"
	"errors"
	stdlog "log"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestZerologAdapter(t *testing.T) {
	t.Parallel()

	newAdapter := func() (*ZerologAdapter, *strings.Builder) {
		var buf strings.Builder
		return NewZerologAdapter(zerolog.New(&buf)), &buf
	}

	decode := func(t *testing.T, line string) map[string]any {
		t.Helper()
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("Log line is not valid JSON: %v\n%s", err, line)
		}
		return entry
	}

	t.Run("InfoWithFields", func(t *testing.T) {
		t.Parallel()
		logger, buf := newAdapter()
		logger.Info("run started",
			String("oracle", "balanced"),
			Int("m", 4),
			Uint64("shots", 1000),
			Float64("progress", 0.5),
		)

		entry := decode(t, buf.String())
		if entry["message"] != "run started" {
			t.Errorf("Expected message, got %v", entry["message"])
		}
		if entry["oracle"] != "balanced" {
			t.Errorf("Expected oracle field, got %v", entry["oracle"])
		}
		if entry["m"] != float64(4) || entry["shots"] != float64(1000) {
			t.Errorf("Expected numeric fields, got m=%v shots=%v", entry["m"], entry["shots"])
		}
		if entry["level"] != "info" {
			t.Errorf("Expected info level, got %v", entry["level"])
		}
	})

	t.Run("ErrorIncludesCause", func(t *testing.T) {
		t.Parallel()
		logger, buf := newAdapter()
		logger.Error("run failed", errors.New("engine exploded"))

		entry := decode(t, buf.String())
		if entry["level"] != "error" {
			t.Errorf("Expected error level, got %v", entry["level"])
		}
		if entry["error"] != "engine exploded" {
			t.Errorf("Expected error field, got %v", entry["error"])
		}
	})

	t.Run("ErrField", func(t *testing.T) {
		t.Parallel()
		logger, buf := newAdapter()
		logger.Info("partial failure", Err(errors.New("boom")))

		entry := decode(t, buf.String())
		if entry["error"] != "boom" {
			t.Errorf("Expected error field from Err helper, got %v", entry["error"])
		}
	})

	t.Run("Printf", func(t *testing.T) {
		t.Parallel()
		logger, buf := newAdapter()
		logger.Printf("completed %d runs", 3)

		entry := decode(t, buf.String())
		if entry["message"] != "completed 3 runs" {
			t.Errorf("Expected formatted message, got %v", entry["message"])
		}
	})

	t.Run("ComponentTag", func(t *testing.T) {
		t.Parallel()
		var buf strings.Builder
		logger := NewLogger(&buf, "server")
		logger.Info("listening")

		entry := decode(t, buf.String())
		if entry["component"] != "server" {
			t.Errorf("Expected component tag, got %v", entry["component"])
		}
	})
}

func TestStdLoggerAdapter(t *testing.T) {
	t.Parallel()

	newAdapter := func() (*StdLoggerAdapter, *strings.Builder) {
		var buf strings.Builder
		return NewStdLoggerAdapter(stdlog.New(&buf, "", 0)), &buf
	}

	t.Run("Info", func(t *testing.T) {
		t.Parallel()
		logger, buf := newAdapter()
		logger.Info("hello")
		if !strings.Contains(buf.String(), "[INFO] hello") {
			t.Errorf("Expected INFO prefix, got %q", buf.String())
		}
	})

	t.Run("Error", func(t *testing.T) {
		t.Parallel()
		logger, buf := newAdapter()
		logger.Error("failed", errors.New("boom"))
		out := buf.String()
		if !strings.Contains(out, "[ERROR]") || !strings.Contains(out, "boom") {
			t.Errorf("Expected ERROR with cause, got %q", out)
		}
	})

	t.Run("Debug", func(t *testing.T) {
		t.Parallel()
		logger, buf := newAdapter()
		logger.Debug("details", String("k", "v"))
		if !strings.Contains(buf.String(), "[DEBUG]") {
			t.Errorf("Expected DEBUG prefix, got %q", buf.String())
		}
	})

	t.Run("Printf", func(t *testing.T) {
		t.Parallel()
		logger, buf := newAdapter()
		logger.Printf("value=%d", 42)
		if !strings.Contains(buf.String(), "value=42") {
			t.Errorf("Expected formatted output, got %q", buf.String())
		}
	})
}

func TestAdaptersSatisfyInterface(t *testing.T) {
	t.Parallel()
	var _ Logger = (*ZerologAdapter)(nil)
	var _ Logger = (*StdLoggerAdapter)(nil)
}
