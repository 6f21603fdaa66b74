package timerq

import (
	"container/heap"
	"time"
)

// Queue tracks the next re-render deadline of each scheduled component.
// It is a min-heap ordered by deadline with component id as tie-breaker,
// so equal deadlines pop in registration (id) order. At most one entry
// exists per component. Not safe for concurrent use; the event loop owns it.
type Queue struct {
	heap entries
	byID map[uint32]*entry
}

type entry struct {
	id    uint32
	when  time.Time
	every time.Duration
	index int
}

type entries []*entry

func (e entries) Len() int { return len(e) }

func (e entries) Less(i, j int) bool {
	if e[i].when.Equal(e[j].when) {
		return e[i].id < e[j].id
	}
	return e[i].when.Before(e[j].when)
}

func (e entries) Swap(i, j int) {
	e[i], e[j] = e[j], e[i]
	e[i].index = i
	e[j].index = j
}

func (e *entries) Push(x any) {
	ent := x.(*entry)
	ent.index = len(*e)
	*e = append(*e, ent)
}

func (e *entries) Pop() any {
	old := *e
	n := len(old)
	ent := old[n-1]
	old[n-1] = nil
	*e = old[:n-1]
	return ent
}

// New returns an empty queue
func New() *Queue {
	return &Queue{byID: make(map[uint32]*entry)}
}

// Len reports the number of scheduled components
func (q *Queue) Len() int {
	return len(q.heap)
}

// Schedule arms a recurring deadline for id, first firing at first and then
// every interval after each pop. An existing entry for id is replaced.
// Intervals must be positive; non-positive intervals are ignored.
func (q *Queue) Schedule(id uint32, first time.Time, every time.Duration) {
	if every <= 0 {
		return
	}
	if ent, ok := q.byID[id]; ok {
		ent.when = first
		ent.every = every
		heap.Fix(&q.heap, ent.index)
		return
	}
	ent := &entry{id: id, when: first, every: every}
	heap.Push(&q.heap, ent)
	q.byID[id] = ent
}

// Remove drops the entry for id, reporting whether one existed
func (q *Queue) Remove(id uint32) bool {
	ent, ok := q.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&q.heap, ent.index)
	delete(q.byID, id)
	return true
}

// Next returns the earliest deadline, if any
func (q *Queue) Next() (time.Time, bool) {
	if len(q.heap) == 0 {
		return time.Time{}, false
	}
	return q.heap[0].when, true
}

// PopDue returns the ids of every entry due at now, earliest first, and
// re-arms each at now plus its interval. An id appears at most once per
// call: the re-armed deadline is strictly after now, so a slow pass cannot
// spin on the same component.
func (q *Queue) PopDue(now time.Time) []uint32 {
	var due []uint32
	for len(q.heap) > 0 && !q.heap[0].when.After(now) {
		ent := q.heap[0]
		due = append(due, ent.id)
		ent.when = now.Add(ent.every)
		heap.Fix(&q.heap, 0)
	}
	return due
}
