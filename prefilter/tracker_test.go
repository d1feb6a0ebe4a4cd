package prefilter

import (
	"sync"
	"testing"

	"github.com/coregx/thompson/literal"
)

func newTestPrefilter(t *testing.T) Prefilter {
	t.Helper()
	pf, err := NewBuilder(literal.NewSeq(literal.NewLiteral([]byte("needle"), false))).Build()
	if err != nil {
		t.Fatal(err)
	}
	return pf
}

func TestTracker_Nil(t *testing.T) {
	if NewTracker(nil) != nil {
		t.Error("NewTracker(nil) should be nil")
	}
	var tr *Tracker
	if tr.Reject([]byte("x")) || tr.IsActive() {
		t.Error("nil tracker must never reject")
	}
}

func TestTracker_Reject(t *testing.T) {
	tr := NewTracker(newTestPrefilter(t))
	if !tr.Reject([]byte("haystack")) {
		t.Error("input without the literal should be rejected")
	}
	if tr.Reject([]byte("a needle here")) {
		t.Error("input with the literal must not be rejected")
	}
	checks, rejects, eff, active := tr.Stats()
	if checks != 2 || rejects != 1 || eff != 0.5 || !active {
		t.Errorf("Stats() = %d, %d, %v, %v", checks, rejects, eff, active)
	}
	if tr.Inner() == nil {
		t.Error("Inner() returned nil")
	}
}

// TestTracker_Retire tests that a prefilter that never rejects is retired
// after warmup and reported exactly once.
func TestTracker_Retire(t *testing.T) {
	var retired []uint64
	tr := NewTrackerWithConfig(newTestPrefilter(t), TrackerConfig{
		CheckInterval: 4,
		MinEfficiency: 0.5,
		WarmupPeriod:  8,
		OnRetire: func(tr *Tracker) {
			checks, _, _, _ := tr.Stats()
			retired = append(retired, checks)
		},
	})
	for i := 0; i < 8; i++ {
		tr.Reject([]byte("needle"))
	}
	if tr.IsActive() {
		t.Fatal("tracker should retire an ineffective prefilter")
	}
	if tr.Reject([]byte("nothing")) {
		t.Error("retired tracker must not reject")
	}
	if len(retired) != 1 || retired[0] != 8 {
		t.Errorf("OnRetire calls = %v, want one at 8 checks", retired)
	}
}

func TestTracker_StaysActive(t *testing.T) {
	tr := NewTrackerWithConfig(newTestPrefilter(t), TrackerConfig{
		CheckInterval: 1,
		MinEfficiency: 0.5,
		WarmupPeriod:  1,
	})
	for i := 0; i < 100; i++ {
		tr.Reject([]byte("hay"))
	}
	if !tr.IsActive() {
		t.Error("an effective prefilter must stay active")
	}
}

func TestTracker_Concurrent(t *testing.T) {
	tr := NewTracker(newTestPrefilter(t))
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				tr.Reject([]byte("hay"))
			}
		}()
	}
	wg.Wait()
	if checks, rejects, _, _ := tr.Stats(); checks != 800 || rejects != 800 {
		t.Errorf("Stats() = %d checks, %d rejects; want 800, 800", checks, rejects)
	}
}
