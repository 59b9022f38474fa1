package component

import "slices"

// Velocity holds a scalar speed and the queue of requested directions. Only
// the front of the queue is acted on.
type Velocity struct {
	Speed int
	Queue []Direction
}

// Push appends d to the back of the queue.
func (v *Velocity) Push(d Direction) {
	v.Queue = append(v.Queue, d)
}

// Stop removes every occurrence of d and reports whether any was removed.
func (v *Velocity) Stop(d Direction) bool {
	n := len(v.Queue)
	v.Queue = slices.DeleteFunc(v.Queue, func(q Direction) bool { return q == d })
	return len(v.Queue) != n
}

// Front returns the active direction.
func (v *Velocity) Front() (Direction, bool) {
	if len(v.Queue) == 0 {
		return 0, false
	}
	return v.Queue[0], true
}

// Clear empties the queue without touching the speed.
func (v *Velocity) Clear() {
	v.Queue = v.Queue[:0]
}

// Bound drops the oldest entries so at most max remain. A max of zero or less
// leaves the queue untouched.
func (v *Velocity) Bound(max int) {
	if max <= 0 || len(v.Queue) <= max {
		return
	}
	v.Queue = append(v.Queue[:0], v.Queue[len(v.Queue)-max:]...)
}

var VelocityComponent = NewComponent[Velocity]()
