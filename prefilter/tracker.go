package prefilter

import (
	"sync/atomic"
)

// Tracker wraps a Prefilter with effectiveness tracking.
//
// A prefilter pays for itself only when it rejects inputs. The tracker counts
// checks and rejections; once the rejection rate drops below the configured
// threshold the prefilter is retired and every input goes straight to the
// automaton. Counters are atomic, so one Tracker may be shared by concurrent
// matchers.
//
// Algorithm:
//  1. Count checks and rejections
//  2. After the warmup period, evaluate every CheckInterval checks
//  3. If rejections/checks < MinEfficiency, disable the prefilter
//  4. Once disabled, stay disabled and report through OnRetire
type Tracker struct {
	inner  Prefilter
	config TrackerConfig

	checks  atomic.Uint64
	rejects atomic.Uint64
	retired atomic.Bool
}

// TrackerConfig holds configuration for the effectiveness tracker.
type TrackerConfig struct {
	// CheckInterval is how often to check effectiveness (in checks).
	// Default: 64
	CheckInterval uint64

	// MinEfficiency is the minimum acceptable ratio of rejects/checks.
	// Default: 0.1 (10%)
	MinEfficiency float64

	// WarmupPeriod is the minimum number of checks before evaluating.
	// Default: 128
	WarmupPeriod uint64

	// OnRetire, when non-nil, is called once by the check that retires the
	// prefilter.
	OnRetire func(t *Tracker)
}

// DefaultTrackerConfig returns the default tracker configuration.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		CheckInterval: 64,
		MinEfficiency: 0.1,
		WarmupPeriod:  128,
	}
}

// NewTracker creates a new tracker for the given prefilter with default config.
//
// Returns nil if the inner prefilter is nil.
func NewTracker(inner Prefilter) *Tracker {
	return NewTrackerWithConfig(inner, DefaultTrackerConfig())
}

// NewTrackerWithConfig creates a new tracker with custom configuration.
//
// Returns nil if the inner prefilter is nil.
func NewTrackerWithConfig(inner Prefilter, config TrackerConfig) *Tracker {
	if inner == nil {
		return nil
	}
	if config.CheckInterval == 0 {
		config.CheckInterval = 1
	}
	return &Tracker{inner: inner, config: config}
}

// Reject reports whether haystack is proven unacceptable. A nil or retired
// tracker never rejects.
func (t *Tracker) Reject(haystack []byte) bool {
	if t == nil || t.retired.Load() {
		return false
	}
	rejected := !t.inner.IsMatch(haystack)
	if rejected {
		t.rejects.Add(1)
	}
	t.checkEffectiveness(t.checks.Add(1))
	return rejected
}

// IsActive returns true if the prefilter is still being used.
func (t *Tracker) IsActive() bool {
	return t != nil && !t.retired.Load()
}

// Stats returns the current tracking statistics.
//
// Returns (checks, rejects, efficiency, active).
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

// checkEffectiveness evaluates whether to retire the prefilter after the
// n-th check. Only every CheckInterval-th check past warmup is evaluated.
func (t *Tracker) checkEffectiveness(n uint64) {
	if n < t.config.WarmupPeriod || n%t.config.CheckInterval != 0 {
		return
	}
	efficiency := float64(t.rejects.Load()) / float64(n)
	if efficiency < t.config.MinEfficiency && t.retired.CompareAndSwap(false, true) && t.config.OnRetire != nil {
		t.config.OnRetire(t)
	}
}
