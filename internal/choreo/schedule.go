package choreo

import (
	"cmp"
	"slices"
)

// Timing is one object's reveal window in seconds.
type Timing struct {
	Delay    float32
	Duration float32
}

// Schedule is the reveal plan for a population. Order lists object indices
// in reveal order; Timings[k] belongs to Order[k].
type Schedule struct {
	Pattern Pattern
	Order   []int
	Timings []Timing
}

// ComputeSchedule derives the reveal plan. It depends only on the pattern and
// the objects' base positions.
func ComputeSchedule(p Pattern, objects []Object) Schedule {
	order := make([]int, len(objects))
	for i := range order {
		order[i] = i
	}
	if p.byDepth() {
		slices.SortStableFunc(order, func(a, b int) int {
			return cmp.Compare(objects[a].Base.Z, objects[b].Base.Z)
		})
		slices.Reverse(order)
	}

	timings := make([]Timing, len(order))
	for k, idx := range order {
		timings[k] = Timing{
			Delay:    p.delay(objects[idx].Base, k),
			Duration: p.duration(k),
		}
	}
	return Schedule{Pattern: p, Order: order, Timings: timings}
}

// MaxDelay is the latest reveal start, or 0 for an empty schedule.
func (s Schedule) MaxDelay() float32 {
	var m float32
	for _, t := range s.Timings {
		m = max(m, t.Delay)
	}
	return m
}

// End is when the last reveal settles.
func (s Schedule) End() float32 {
	var m float32
	for _, t := range s.Timings {
		m = max(m, t.Delay+t.Duration)
	}
	return m
}

// TimingOf returns the timing of object index i.
func (s Schedule) TimingOf(i int) (Timing, bool) {
	for k, idx := range s.Order {
		if idx == i {
			return s.Timings[k], true
		}
	}
	return Timing{}, false
}
