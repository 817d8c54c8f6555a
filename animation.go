package gridcanvas

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// EaseOutCubic is the centering curve, 1 - (1-p)^3, with p clamped to
// [0, 1]. It is non-decreasing with EaseOutCubic(0) == 0 and
// EaseOutCubic(1) == 1.
func EaseOutCubic(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	q := 1 - p
	return 1 - q*q*q
}

// tweenRun is one time-based animation. The tween runs from 0 to 1 over the
// duration with an out-cubic curve, and apply receives the eased progress.
// Progress is always measured from start, never accumulated per frame.
type tweenRun struct {
	id       uint64
	tween    *gween.Tween
	start    time.Time
	duration time.Duration
	apply    func(eased float64)
	done     func(cancelled bool)
}

// animator steps independent tween runs from the frame callback. There is
// no global scheduler; the owning Grid calls step once per Update.
type animator struct {
	runs    []*tweenRun
	overlap Overlap
	nextID  uint64
}

// start registers a run beginning at now. With OverlapCancel any running
// animation is cancelled first. The first write happens on the next step.
func (a *animator) start(now time.Time, duration time.Duration, apply func(float64), done func(cancelled bool)) uint64 {
	if a.overlap == OverlapCancel {
		a.cancelAll()
	}
	a.nextID++
	a.runs = append(a.runs, &tweenRun{
		id:    a.nextID,
		tween:    gween.New(0, 1, float32(duration.Seconds()), ease.OutCubic),
		start:    now,
		duration: duration,
		apply:    apply,
		done:     done,
	})
	return a.nextID
}

// step advances every run to now. Runs are stepped in start order. A run
// that reaches the end applies exactly 1 and is dropped.
func (a *animator) step(now time.Time) {
	if len(a.runs) == 0 {
		return
	}
	runs := a.runs
	a.runs = nil
	var kept []*tweenRun
	for _, r := range runs {
		elapsed := now.Sub(r.start)
		if elapsed < 0 {
			elapsed = 0
		}
		val, finished := r.tween.Set(float32(elapsed.Seconds()))
		if finished || elapsed >= r.duration {
			r.apply(1)
			if r.done != nil {
				r.done(false)
			}
			continue
		}
		r.apply(float64(val))
		kept = append(kept, r)
	}
	// Runs started from a callback during this step come after the survivors.
	a.runs = append(kept, a.runs...)
}

// cancelAll drops every run without a final write.
func (a *animator) cancelAll() {
	runs := a.runs
	a.runs = nil
	for _, r := range runs {
		if r.done != nil {
			r.done(true)
		}
	}
}

// active reports the number of running animations.
func (a *animator) active() int {
	return len(a.runs)
}
