package simulator

import (
	"sync"

	"github.com/rs/zerolog"
)

// ChannelObserver adapts progress reporting to channel-based communication,
// for UI code that consumes updates from a channel.
type ChannelObserver struct {
	channel chan<- ProgressUpdate
}

// NewChannelObserver creates an observer that sends updates to a channel.
// The channel should have sufficient buffer capacity to avoid blocking.
//
// Parameters:
//   - ch: The channel to send progress updates to. If nil, updates are discarded.
//
// Returns:
//   - *ChannelObserver: A new observer that forwards to the channel.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{channel: ch}
}

// Update implements ProgressObserver by sending to the channel.
// Uses non-blocking send to avoid stalling sampling goroutines when the
// channel is full; dropped updates are caught up by the next report.
func (o *ChannelObserver) Update(runIndex int, progress float64) {
	if o.channel == nil {
		return
	}
	if progress > 1.0 {
		progress = 1.0
	}
	select {
	case o.channel <- ProgressUpdate{RunIndex: runIndex, Value: progress}:
	default:
	}
}

// LoggingObserver logs progress updates using zerolog, throttled so that
// only changes of at least the configured threshold are emitted.
type LoggingObserver struct {
	logger    zerolog.Logger
	threshold float64
	lastLog   map[int]float64
	mu        sync.Mutex
}

// NewLoggingObserver creates an observer that logs progress.
// It only logs when progress advances by at least threshold since the last
// logged value for that run.
//
// Parameters:
//   - logger: The zerolog logger to use.
//   - threshold: The minimum progress delta between log lines (e.g. 0.1).
//
// Returns:
//   - *LoggingObserver: A new throttled logging observer.
func NewLoggingObserver(logger zerolog.Logger, threshold float64) *LoggingObserver {
	return &LoggingObserver{
		logger:    logger,
		threshold: threshold,
		lastLog:   make(map[int]float64),
	}
}

// MultiObserver fans each progress update out to several observers, so one
// engine run can feed both the UI channel and the verbose progress log.
type MultiObserver struct {
	observers []ProgressObserver
}

// NewMultiObserver creates an observer that forwards updates to every given
// observer in order. Nil entries are skipped.
func NewMultiObserver(observers ...ProgressObserver) *MultiObserver {
	kept := make([]ProgressObserver, 0, len(observers))
	for _, obs := range observers {
		if obs != nil {
			kept = append(kept, obs)
		}
	}
	return &MultiObserver{observers: kept}
}

// Update implements ProgressObserver by forwarding to every observer.
func (o *MultiObserver) Update(runIndex int, progress float64) {
	for _, obs := range o.observers {
		obs.Update(runIndex, progress)
	}
}

// Update implements ProgressObserver by logging throttled progress lines.
func (o *LoggingObserver) Update(runIndex int, progress float64) {
	o.mu.Lock()
	last, seen := o.lastLog[runIndex]
	if seen && progress-last < o.threshold && progress < 1.0 {
		o.mu.Unlock()
		return
	}
	o.lastLog[runIndex] = progress
	o.mu.Unlock()

	o.logger.Debug().
		Int("run", runIndex).
		Float64("progress", progress).
		Msg("sampling progress")
}
