package searcher

import "time"

// Deadline is fixed once at the start of a decision and never extended.
type Deadline struct {
	start  time.Time
	end    time.Time
	budget time.Duration
	clock  func() time.Time
}

func NewDeadline(clock func() time.Time, budget time.Duration) Deadline {
	if clock == nil {
		clock = time.Now
	}
	if budget < 0 {
		budget = 0
	}
	start := clock()
	return Deadline{start: start, end: start.Add(budget), budget: budget, clock: clock}
}

// Expired reports whether the budget is spent. A zero budget is expired
// from the start.
func (d Deadline) Expired() bool {
	return !d.clock().Before(d.end)
}

func (d Deadline) Elapsed() time.Duration {
	return d.clock().Sub(d.start)
}

// Fraction is the share of the budget spent so far, clamped to [0, 1].
func (d Deadline) Fraction() float64 {
	if d.budget <= 0 {
		return 1
	}
	f := float64(d.Elapsed()) / float64(d.budget)
	return min(max(f, 0), 1)
}
