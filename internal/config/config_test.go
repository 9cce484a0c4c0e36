package config

import (
	"io"
	"os"
	"testing"
	"time"
)

func TestParseConfig(t *testing.T) {
	availableOracles := []string{"balanced", "constant0", "constant1"}

	t.Run("DefaultValues", func(t *testing.T) {
		t.Parallel()
		args := []string{}
		cfg, err := ParseConfig("djsim", args, io.Discard, availableOracles)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if cfg.M != DefaultM {
			t.Errorf("Expected default M %d, got %d", DefaultM, cfg.M)
		}
		if cfg.Oracle != "all" {
			t.Errorf("Expected default Oracle 'all', got %s", cfg.Oracle)
		}
		if cfg.Shots != DefaultShots {
			t.Errorf("Expected default Shots %d, got %d", DefaultShots, cfg.Shots)
		}
		if cfg.Timeout != DefaultTimeout {
			t.Errorf("Expected default Timeout %v, got %v", DefaultTimeout, cfg.Timeout)
		}
		if cfg.Port != DefaultPort {
			t.Errorf("Expected default Port %s, got %s", DefaultPort, cfg.Port)
		}
	})

	t.Run("ValidFlags", func(t *testing.T) {
		t.Parallel()
		args := []string{
			"-m", "6",
			"-oracle", "balanced",
			"-shots", "5000",
			"-seed", "42",
			"-workers", "2",
			"-v",
			"-timeout", "10s",
			"-server",
			"-port", "9090",
		}
		cfg, err := ParseConfig("djsim", args, io.Discard, availableOracles)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if cfg.M != 6 {
			t.Errorf("Expected M 6, got %d", cfg.M)
		}
		if cfg.Oracle != "balanced" {
			t.Errorf("Expected Oracle 'balanced', got %s", cfg.Oracle)
		}
		if cfg.Shots != 5000 {
			t.Errorf("Expected Shots 5000, got %d", cfg.Shots)
		}
		if cfg.Seed != 42 {
			t.Errorf("Expected Seed 42, got %d", cfg.Seed)
		}
		if cfg.Workers != 2 {
			t.Errorf("Expected Workers 2, got %d", cfg.Workers)
		}
		if !cfg.Verbose {
			t.Error("Expected Verbose true")
		}
		if cfg.Timeout != 10*time.Second {
			t.Errorf("Expected Timeout 10s, got %v", cfg.Timeout)
		}
		if !cfg.ServerMode {
			t.Error("Expected ServerMode true")
		}
		if cfg.Port != "9090" {
			t.Errorf("Expected Port 9090, got %s", cfg.Port)
		}
	})

	t.Run("OracleNameIsLowercased", func(t *testing.T) {
		t.Parallel()
		cfg, err := ParseConfig("djsim", []string{"-oracle", "BALANCED"}, io.Discard, availableOracles)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.Oracle != "balanced" {
			t.Errorf("Expected lowercased oracle name, got %s", cfg.Oracle)
		}
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		env := map[string]string{
			"DJSIM_M":        "3",
			"DJSIM_ORACLE":   "constant1",
			"DJSIM_SHOTS":    "777",
			"DJSIM_SEED":     "-5",
			"DJSIM_WORKERS":  "4",
			"DJSIM_TIMEOUT":  "2m",
			"DJSIM_JSON":     "true",
			"DJSIM_QUIET":    "true",
			"DJSIM_NO_COLOR": "true",
			"DJSIM_SERVER":   "true",
			"DJSIM_PORT":     "3000",
			"DJSIM_OUTPUT":   "out.txt",
		}

		for k, v := range env {
			os.Setenv(k, v)
		}
		defer func() {
			for k := range env {
				os.Unsetenv(k)
			}
		}()

		// No flags set, should take from env
		cfg, err := ParseConfig("djsim", []string{}, io.Discard, availableOracles)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if cfg.M != 3 {
			t.Errorf("Expected M 3 from env, got %d", cfg.M)
		}
		if cfg.Oracle != "constant1" {
			t.Errorf("Expected Oracle 'constant1' from env, got %s", cfg.Oracle)
		}
		if cfg.Shots != 777 {
			t.Errorf("Expected Shots 777, got %d", cfg.Shots)
		}
		if cfg.Seed != -5 {
			t.Errorf("Expected Seed -5, got %d", cfg.Seed)
		}
		if cfg.Workers != 4 {
			t.Errorf("Expected Workers 4, got %d", cfg.Workers)
		}
		if cfg.Timeout != 2*time.Minute {
			t.Errorf("Expected Timeout 2m, got %v", cfg.Timeout)
		}
		if !cfg.JSONOutput {
			t.Error("Expected JSONOutput true")
		}
		if !cfg.Quiet {
			t.Error("Expected Quiet true")
		}
		if !cfg.NoColor {
			t.Error("Expected NoColor true")
		}
		if !cfg.ServerMode {
			t.Error("Expected ServerMode true from env")
		}
		if cfg.Port != "3000" {
			t.Errorf("Expected Port 3000, got %s", cfg.Port)
		}
		if cfg.OutputFile != "out.txt" {
			t.Errorf("Expected OutputFile out.txt, got %s", cfg.OutputFile)
		}
	})

	t.Run("FlagPrecedenceOverEnv", func(t *testing.T) {
		os.Setenv("DJSIM_M", "3")
		defer os.Unsetenv("DJSIM_M")

		// Flag set explicitly
		cfg, err := ParseConfig("djsim", []string{"-m", "7"}, io.Discard, availableOracles)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if cfg.M != 7 {
			t.Errorf("Expected M 7 from flag, got %d", cfg.M)
		}
	})

	t.Run("InvalidFlags", func(t *testing.T) {
		t.Parallel()
		// Unknown flag
		_, err := ParseConfig("djsim", []string{"-unknown"}, io.Discard, availableOracles)
		if err == nil {
			t.Error("Expected error for unknown flag")
		}
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		t.Parallel()
		// Invalid oracle
		_, err := ParseConfig("djsim", []string{"-oracle", "invalid"}, io.Discard, availableOracles)
		if err == nil {
			t.Error("Expected error for invalid oracle")
		}
	})

	t.Run("ZeroWidthRejected", func(t *testing.T) {
		t.Parallel()
		_, err := ParseConfig("djsim", []string{"-m", "0"}, io.Discard, availableOracles)
		if err == nil {
			t.Error("Expected error for m=0")
		}
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()
	availableOracles := []string{"balanced", "constant0"}

	valid := AppConfig{M: 4, Shots: 100, Timeout: time.Second, Oracle: "balanced"}

	t.Run("Valid", func(t *testing.T) {
		t.Parallel()
		if err := valid.Validate(availableOracles); err != nil {
			t.Errorf("Unexpected validation error: %v", err)
		}
	})

	t.Run("InvalidM", func(t *testing.T) {
		t.Parallel()
		c := valid
		c.M = 0
		if err := c.Validate(availableOracles); err == nil {
			t.Error("Expected error for m=0")
		}
	})

	t.Run("InvalidShots", func(t *testing.T) {
		t.Parallel()
		c := valid
		c.Shots = 0
		if err := c.Validate(availableOracles); err == nil {
			t.Error("Expected error for zero shots")
		}
	})

	t.Run("InvalidTimeout", func(t *testing.T) {
		t.Parallel()
		c := valid
		c.Timeout = 0
		if err := c.Validate(availableOracles); err == nil {
			t.Error("Expected error for zero timeout")
		}
	})

	t.Run("NegativeWorkers", func(t *testing.T) {
		t.Parallel()
		c := valid
		c.Workers = -1
		if err := c.Validate(availableOracles); err == nil {
			t.Error("Expected error for negative workers")
		}
	})

	t.Run("InvalidOracle", func(t *testing.T) {
		t.Parallel()
		c := valid
		c.Oracle = "unknown"
		if err := c.Validate(availableOracles); err == nil {
			t.Error("Expected error for unknown oracle")
		}
	})

	t.Run("OracleAll", func(t *testing.T) {
		t.Parallel()
		c := valid
		c.Oracle = "all"
		if err := c.Validate(availableOracles); err != nil {
			t.Error("Oracle 'all' should be valid")
		}
	})
}

func TestEnvHelpers(t *testing.T) {
	prefix := EnvPrefix

	t.Run("getEnvString", func(t *testing.T) {
		key := "TEST_STRING"
		os.Setenv(prefix+key, "value")
		defer os.Unsetenv(prefix + key)
		if val := getEnvString(key, "default"); val != "value" {
			t.Errorf("Expected 'value', got '%s'", val)
		}
		if val := getEnvString("NONEXISTENT", "default"); val != "default" {
			t.Errorf("Expected 'default', got '%s'", val)
		}
	})

	t.Run("getEnvUint64", func(t *testing.T) {
		key := "TEST_UINT"
		os.Setenv(prefix+key, "123")
		defer os.Unsetenv(prefix + key)
		if val := getEnvUint64(key, 0); val != 123 {
			t.Errorf("Expected 123, got %d", val)
		}
		// Invalid
		os.Setenv(prefix+"INVALID", "abc")
		defer os.Unsetenv(prefix + "INVALID")
		if val := getEnvUint64("INVALID", 999); val != 999 {
			t.Errorf("Expected default 999 for invalid input, got %d", val)
		}
	})

	t.Run("getEnvInt64", func(t *testing.T) {
		key := "TEST_INT64"
		os.Setenv(prefix+key, "-42")
		defer os.Unsetenv(prefix + key)
		if val := getEnvInt64(key, 0); val != -42 {
			t.Errorf("Expected -42, got %d", val)
		}
	})

	t.Run("getEnvBool", func(t *testing.T) {
		key := "TEST_BOOL"
		os.Setenv(prefix+key, "true")
		defer os.Unsetenv(prefix + key)
		if val := getEnvBool(key, false); !val {
			t.Error("Expected true")
		}

		os.Setenv(prefix+key, "0")
		if val := getEnvBool(key, true); val {
			t.Error("Expected false for '0'")
		}

		os.Setenv(prefix+key, "invalid")
		if val := getEnvBool(key, true); !val {
			t.Error("Expected default true for invalid input")
		}
	})

	t.Run("getEnvDuration", func(t *testing.T) {
		key := "TEST_DURATION"
		os.Setenv(prefix+key, "1h")
		defer os.Unsetenv(prefix + key)
		if val := getEnvDuration(key, 0); val != time.Hour {
			t.Errorf("Expected 1h, got %v", val)
		}
	})
}
