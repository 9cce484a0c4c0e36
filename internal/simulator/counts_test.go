package simulator

import (
	"errors"
	"testing"

	apperrors "github.com/agbru/djsim/internal/errors"
)

func TestCountsTotal(t *testing.T) {
	t.Parallel()
	c := Counts{"00": 3, "01": 5, "11": 2}
	if got := c.Total(); got != 10 {
		t.Errorf("Expected total 10, got %d", got)
	}
	if got := (Counts{}).Total(); got != 0 {
		t.Errorf("Expected total 0 for empty counts, got %d", got)
	}
}

func TestCountsDominant(t *testing.T) {
	t.Parallel()

	t.Run("SingleWinner", func(t *testing.T) {
		t.Parallel()
		c := Counts{"00": 1, "11": 99}
		key, n, ok := c.Dominant()
		if !ok || key != "11" || n != 99 {
			t.Errorf("Expected (11, 99, true), got (%s, %d, %v)", key, n, ok)
		}
	})

	t.Run("LexicographicTieBreak", func(t *testing.T) {
		t.Parallel()
		c := Counts{"10": 5, "01": 5}
		key, _, ok := c.Dominant()
		if !ok || key != "01" {
			t.Errorf("Expected tie broken to '01', got %q", key)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		t.Parallel()
		if _, _, ok := (Counts{}).Dominant(); ok {
			t.Error("Expected ok=false for empty counts")
		}
	})
}

func TestCountsValidate(t *testing.T) {
	t.Parallel()

	expectCountsError := func(t *testing.T, err error) {
		t.Helper()
		if err == nil {
			t.Fatal("Expected a CountsError, got nil")
		}
		var ce apperrors.CountsError
		if !errors.As(err, &ce) {
			t.Errorf("Expected CountsError, got %T: %v", err, err)
		}
	}

	t.Run("Valid", func(t *testing.T) {
		t.Parallel()
		c := Counts{"0000": 60, "1111": 40}
		if err := c.Validate(4, 100); err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		t.Parallel()
		expectCountsError(t, Counts{}.Validate(4, 100))
	})

	t.Run("WrongWidth", func(t *testing.T) {
		t.Parallel()
		expectCountsError(t, Counts{"000": 100}.Validate(4, 100))
	})

	t.Run("NonBinaryAlphabet", func(t *testing.T) {
		t.Parallel()
		expectCountsError(t, Counts{"01x0": 100}.Validate(4, 100))
	})

	t.Run("TotalMismatch", func(t *testing.T) {
		t.Parallel()
		expectCountsError(t, Counts{"0000": 99}.Validate(4, 100))
	})
}

func TestCountsMerge(t *testing.T) {
	t.Parallel()
	a := Counts{"00": 2, "01": 3}
	b := Counts{"01": 1, "11": 4}
	a.Merge(b)

	expected := Counts{"00": 2, "01": 4, "11": 4}
	for key, n := range expected {
		if a[key] != n {
			t.Errorf("Merged[%q]: expected %d, got %d", key, n, a[key])
		}
	}
	if len(a) != len(expected) {
		t.Errorf("Expected %d keys after merge, got %d", len(expected), len(a))
	}
}
