package circuit

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("Valid", func(t *testing.T) {
		t.Parallel()
		c, err := New(3, 2)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if c.NumQubits() != 3 {
			t.Errorf("Expected 3 qubits, got %d", c.NumQubits())
		}
		if c.NumClbits() != 2 {
			t.Errorf("Expected 2 clbits, got %d", c.NumClbits())
		}
		if c.Len() != 0 {
			t.Errorf("Expected empty circuit, got %d gates", c.Len())
		}
	})

	t.Run("ZeroClbits", func(t *testing.T) {
		t.Parallel()
		if _, err := New(1, 0); err != nil {
			t.Errorf("Zero classical slots should be valid: %v", err)
		}
	})

	t.Run("ZeroQubits", func(t *testing.T) {
		t.Parallel()
		if _, err := New(0, 0); !errors.Is(err, ErrInvalidWidth) {
			t.Errorf("Expected ErrInvalidWidth, got %v", err)
		}
	})

	t.Run("NegativeClbits", func(t *testing.T) {
		t.Parallel()
		if _, err := New(1, -1); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
		}
	})
}

func TestGateBuilders(t *testing.T) {
	t.Parallel()

	t.Run("AppendsInOrder", func(t *testing.T) {
		t.Parallel()
		c, _ := New(3, 3)
		if err := c.X(0); err != nil {
			t.Fatalf("X failed: %v", err)
		}
		if err := c.H(1); err != nil {
			t.Fatalf("H failed: %v", err)
		}
		if err := c.CX(0, 2); err != nil {
			t.Fatalf("CX failed: %v", err)
		}
		if err := c.Measure(2, 0); err != nil {
			t.Fatalf("Measure failed: %v", err)
		}

		gates := c.Gates()
		if len(gates) != 4 {
			t.Fatalf("Expected 4 gates, got %d", len(gates))
		}
		expected := []Gate{
			{Kind: KindX, Target: 0, Control: NoIndex, Classical: NoIndex},
			{Kind: KindH, Target: 1, Control: NoIndex, Classical: NoIndex},
			{Kind: KindCX, Target: 2, Control: 0, Classical: NoIndex},
			{Kind: KindMeasure, Target: 2, Control: NoIndex, Classical: 0},
		}
		for i, g := range expected {
			if gates[i] != g {
				t.Errorf("Gate %d: expected %+v, got %+v", i, g, gates[i])
			}
		}
	})

	t.Run("QubitOutOfRange", func(t *testing.T) {
		t.Parallel()
		c, _ := New(2, 2)
		if err := c.X(2); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("X(2): expected ErrIndexOutOfRange, got %v", err)
		}
		if err := c.H(-1); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("H(-1): expected ErrIndexOutOfRange, got %v", err)
		}
		if err := c.CX(0, 5); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("CX(0,5): expected ErrIndexOutOfRange, got %v", err)
		}
		if err := c.Measure(0, 2); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Measure(0,2): expected ErrIndexOutOfRange, got %v", err)
		}
	})

	t.Run("SelfControlled", func(t *testing.T) {
		t.Parallel()
		c, _ := New(2, 0)
		if err := c.CX(1, 1); !errors.Is(err, ErrSelfControlled) {
			t.Errorf("Expected ErrSelfControlled, got %v", err)
		}
	})

	t.Run("FailedAppendLeavesCircuitUnchanged", func(t *testing.T) {
		t.Parallel()
		c, _ := New(2, 0)
		_ = c.X(0)
		_ = c.X(7) // out of range, must not be recorded
		if c.Len() != 1 {
			t.Errorf("Expected 1 gate after failed append, got %d", c.Len())
		}
	})
}

func TestCount(t *testing.T) {
	t.Parallel()
	c, _ := New(3, 3)
	_ = c.H(0)
	_ = c.H(1)
	_ = c.H(2)
	_ = c.CX(0, 1)
	_ = c.Measure(0, 0)

	if got := c.Count(KindH); got != 3 {
		t.Errorf("Expected 3 H gates, got %d", got)
	}
	if got := c.Count(KindCX); got != 1 {
		t.Errorf("Expected 1 CX gate, got %d", got)
	}
	if got := c.Count(KindX); got != 0 {
		t.Errorf("Expected 0 X gates, got %d", got)
	}
	if got := c.Count(KindMeasure); got != 1 {
		t.Errorf("Expected 1 measure, got %d", got)
	}
}

func TestAppend(t *testing.T) {
	t.Parallel()

	t.Run("EmbedsGatesInOrder", func(t *testing.T) {
		t.Parallel()
		sub, _ := New(2, 0)
		_ = sub.CX(0, 1)

		c, _ := New(3, 3)
		_ = c.H(0)
		if err := c.Append(sub); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		gates := c.Gates()
		if len(gates) != 2 {
			t.Fatalf("Expected 2 gates, got %d", len(gates))
		}
		if gates[1].Kind != KindCX || gates[1].Control != 0 || gates[1].Target != 1 {
			t.Errorf("Embedded gate mismatch: %+v", gates[1])
		}
	})

	t.Run("RejectsMeasurements", func(t *testing.T) {
		t.Parallel()
		sub, _ := New(2, 1)
		_ = sub.Measure(0, 0)

		c, _ := New(2, 1)
		if err := c.Append(sub); !errors.Is(err, ErrSubcircuitMeasures) {
			t.Errorf("Expected ErrSubcircuitMeasures, got %v", err)
		}
		if c.Len() != 0 {
			t.Errorf("Rejected append must not modify the circuit, got %d gates", c.Len())
		}
	})

	t.Run("RejectsWiderSubcircuit", func(t *testing.T) {
		t.Parallel()
		sub, _ := New(4, 0)
		c, _ := New(2, 0)
		if err := c.Append(sub); !errors.Is(err, ErrSubcircuitTooWide) {
			t.Errorf("Expected ErrSubcircuitTooWide, got %v", err)
		}
	})

	t.Run("DoesNotAliasSubcircuit", func(t *testing.T) {
		t.Parallel()
		sub, _ := New(2, 0)
		_ = sub.X(0)

		c, _ := New(2, 0)
		_ = c.Append(sub)
		_ = sub.X(1) // must not leak into c
		if c.Len() != 1 {
			t.Errorf("Appending to sub after embed modified the target: %d gates", c.Len())
		}
	})
}

func TestCloneAndEqual(t *testing.T) {
	t.Parallel()

	c, _ := New(2, 2)
	_ = c.H(0)
	_ = c.CX(0, 1)
	_ = c.Measure(0, 0)

	clone := c.Clone()
	if !c.Equal(clone) {
		t.Error("Clone should be equal to the original")
	}

	_ = clone.Measure(1, 1)
	if c.Equal(clone) {
		t.Error("Diverged clone should not be equal")
	}

	other, _ := New(3, 2)
	if c.Equal(other) {
		t.Error("Circuits of different widths should not be equal")
	}
	if c.Equal(nil) {
		t.Error("Equal(nil) should be false")
	}
}

func TestString(t *testing.T) {
	t.Parallel()
	c, _ := New(2, 1)
	_ = c.H(0)
	_ = c.CX(0, 1)
	_ = c.Measure(1, 0)

	s := c.String()
	for _, want := range []string{
		"qreg q[2]; creg c[1];",
		"h q[0]",
		"cx q[0], q[1]",
		"measure q[1] -> c[0]",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
}
