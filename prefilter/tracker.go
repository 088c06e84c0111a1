package prefilter

import "sync/atomic"

// Tracker wraps a Prefilter with effectiveness tracking.
//
// A prefilter pays off only when it rejects texts: every text it lets through
// costs the scan plus a full engine run. When nearly every text contains one
// of the literals (short common words, or a stream of mostly listed lines),
// the scan is pure overhead. The tracker counts checks and rejections and
// retires the prefilter once its rejection rate falls below the threshold.
//
// Algorithm:
//  1. Track checks (texts scanned) and rejects (no literal found)
//  2. After the warmup period, check the ratio every CheckInterval checks
//  3. If rejects/checks < MinEfficiency, retire the prefilter
//  4. Once retired, never re-enable
//
// Counters are atomic, so a Tracker may be shared by concurrent readers.
//
// Example usage:
//
//	tracker := prefilter.NewTracker(pf)
//	if candidate, ok := tracker.Check(text); ok && !candidate {
//	    return false // rejected without running the engine
//	}
//	return re.MatchString(string(text))
type Tracker struct {
	inner Prefilter

	checks         atomic.Uint64
	rejects        atomic.Uint64
	lastCheckpoint atomic.Uint64
	retired        atomic.Bool

	checkInterval uint64
	minEfficiency float64
	warmupPeriod  uint64
}

// TrackerConfig holds configuration for the effectiveness tracker.
type TrackerConfig struct {
	// CheckInterval is how often to check effectiveness (in checks).
	// Default: 64
	CheckInterval uint64

	// MinEfficiency is the minimum acceptable ratio of rejects/checks.
	// If efficiency drops below this, the prefilter is retired.
	// Default: 0.1 (10%)
	MinEfficiency float64

	// WarmupPeriod is the minimum number of checks before evaluating.
	// This prevents premature retirement on small samples.
	// Default: 128
	WarmupPeriod uint64
}

// DefaultTrackerConfig returns the default tracker configuration.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		CheckInterval: 64,
		MinEfficiency: 0.1,
		WarmupPeriod:  128,
	}
}

// NewTracker creates a tracker for inner with the default config.
//
// Returns nil if inner is nil.
func NewTracker(inner Prefilter) *Tracker {
	return NewTrackerWithConfig(inner, DefaultTrackerConfig())
}

// NewTrackerWithConfig creates a tracker with a custom configuration.
//
// Returns nil if inner is nil.
func NewTrackerWithConfig(inner Prefilter, config TrackerConfig) *Tracker {
	if inner == nil {
		return nil
	}
	return &Tracker{
		inner:         inner,
		checkInterval: config.CheckInterval,
		minEfficiency: config.MinEfficiency,
		warmupPeriod:  config.WarmupPeriod,
	}
}

// Check runs the prefilter over haystack. ok is false when the tracker is nil
// or retired and the caller must consult the engine directly; otherwise
// candidate reports whether any literal occurs.
func (t *Tracker) Check(haystack []byte) (candidate, ok bool) {
	if !t.IsActive() {
		return false, false
	}
	candidate = t.inner.IsMatch(haystack)
	if !candidate {
		t.rejects.Add(1)
	}
	t.checks.Add(1)
	t.checkEffectiveness()
	return candidate, true
}

// IsActive reports whether the prefilter is still in use.
func (t *Tracker) IsActive() bool {
	return t != nil && !t.retired.Load()
}

// Stats returns the current tracking statistics.
func (t *Tracker) Stats() (checks, rejects uint64, efficiency float64, active bool) {
	checks = t.checks.Load()
	rejects = t.rejects.Load()
	if checks > 0 {
		efficiency = float64(rejects) / float64(checks)
	}
	active = t.IsActive()
	return
}

// Inner returns the underlying prefilter.
func (t *Tracker) Inner() Prefilter {
	return t.inner
}

// checkEffectiveness decides whether to retire the prefilter. The check runs
// at configured intervals only; retirement is monotonic, so concurrent
// callers racing on the checkpoint are harmless.
func (t *Tracker) checkEffectiveness() {
	checks := t.checks.Load()
	if checks < t.warmupPeriod {
		return
	}
	last := t.lastCheckpoint.Load()
	if checks-last < t.checkInterval {
		return
	}
	if !t.lastCheckpoint.CompareAndSwap(last, checks) {
		return
	}

	efficiency := float64(t.rejects.Load()) / float64(checks)
	if efficiency < t.minEfficiency {
		t.retired.Store(true)
	}
}
