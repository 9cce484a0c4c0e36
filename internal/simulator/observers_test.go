package simulator

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestChannelObserver(t *testing.T) {
	t.Parallel()

	t.Run("ForwardsUpdates", func(t *testing.T) {
		t.Parallel()
		ch := make(chan ProgressUpdate, 1)
		obs := NewChannelObserver(ch)
		obs.Update(2, 0.5)

		u := <-ch
		if u.RunIndex != 2 || u.Value != 0.5 {
			t.Errorf("Expected {2, 0.5}, got %+v", u)
		}
	})

	t.Run("ClampsAboveOne", func(t *testing.T) {
		t.Parallel()
		ch := make(chan ProgressUpdate, 1)
		NewChannelObserver(ch).Update(0, 1.5)
		if u := <-ch; u.Value != 1.0 {
			t.Errorf("Expected clamped value 1.0, got %f", u.Value)
		}
	})

	t.Run("DropsWhenFull", func(t *testing.T) {
		t.Parallel()
		ch := make(chan ProgressUpdate, 1)
		obs := NewChannelObserver(ch)
		obs.Update(0, 0.1)
		obs.Update(0, 0.2) // must not block
		if u := <-ch; u.Value != 0.1 {
			t.Errorf("Expected first update retained, got %f", u.Value)
		}
	})

	t.Run("NilChannel", func(t *testing.T) {
		t.Parallel()
		NewChannelObserver(nil).Update(0, 0.5) // must not panic
	})
}

func TestLoggingObserverThrottles(t *testing.T) {
	t.Parallel()
	var buf strings.Builder
	logger := zerolog.New(zerolog.SyncWriter(&buf)).Level(zerolog.DebugLevel)

	obs := NewLoggingObserver(logger, 0.25)
	obs.Update(0, 0.1)  // first update for the run, logged
	obs.Update(0, 0.2)  // delta 0.1 < 0.25, suppressed
	obs.Update(0, 0.4)  // delta 0.3, logged
	obs.Update(0, 0.45) // suppressed
	obs.Update(0, 1.0)  // completion always logged

	lines := strings.Count(strings.TrimSpace(buf.String()), "\n") + 1
	if lines != 3 {
		t.Errorf("Expected 3 log lines, got %d:\n%s", lines, buf.String())
	}
}

func TestMultiObserver(t *testing.T) {
	t.Parallel()

	t.Run("FansOutToAll", func(t *testing.T) {
		t.Parallel()
		first := make(chan ProgressUpdate, 1)
		second := make(chan ProgressUpdate, 1)
		multi := NewMultiObserver(NewChannelObserver(first), NewChannelObserver(second))

		multi.Update(2, 0.5)

		for name, ch := range map[string]chan ProgressUpdate{"first": first, "second": second} {
			select {
			case update := <-ch:
				if update.RunIndex != 2 || update.Value != 0.5 {
					t.Errorf("%s: unexpected update %+v", name, update)
				}
			default:
				t.Errorf("%s: expected an update to be forwarded", name)
			}
		}
	})

	t.Run("SkipsNilObservers", func(t *testing.T) {
		t.Parallel()
		ch := make(chan ProgressUpdate, 1)
		multi := NewMultiObserver(nil, NewChannelObserver(ch), nil)

		multi.Update(0, 1.0)

		select {
		case <-ch:
		default:
			t.Error("Expected the non-nil observer to receive the update")
		}
	})

	t.Run("EmptyIsNoop", func(t *testing.T) {
		t.Parallel()
		NewMultiObserver().Update(0, 0.5)
	})
}
