package timeline

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/google/btree"
)

type (
	// index is the storage shared by OverlapIndex and ExclusiveTimeline:
	// an insertion-ordered event list plus start and end time indexes.
	// One RWMutex guards all of it; reads share the lock and every result
	// is copied out while it is held
	index[T any] struct {
		cmp    Comparator[T]
		arith  Arithmetic[T]
		events []*Event[T]
		starts *btree.BTreeG[*bucket[T]]
		ends   *btree.BTreeG[*bucket[T]]
		mu     sync.RWMutex
	}

	// bucket holds the events that share a single time key
	bucket[T any] struct {
		key    T
		events []*Event[T]
	}
)

const indexDegree = 16

func newIndex[T any](cmp Comparator[T]) *index[T] {
	less := func(a, b *bucket[T]) bool {
		return cmp(a.key, b.key) < 0
	}
	return &index[T]{
		cmp:    cmp,
		starts: btree.NewG(indexDegree, less),
		ends:   btree.NewG(indexDegree, less),
	}
}

// SetTimeArithmetic attaches the Arithmetic used to schedule events that
// only carry a duration
func (x *index[T]) SetTimeArithmetic(arith Arithmetic[T]) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.arith = arith
}

// TimeArithmetic returns the attached Arithmetic, if any
func (x *index[T]) TimeArithmetic() Arithmetic[T] {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.arith
}

// RemoveEvent removes the given Event, matched by identity. It reports
// whether the Event was present
func (x *index[T]) RemoveEvent(ev *Event[T]) (bool, error) {
	if ev == nil {
		return false, ErrNullEvent
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.remove(ev), nil
}

// RemoveEventAt removes the first Event whose start, end and subject
// match. Subjects are compared with reflect.DeepEqual
func (x *index[T]) RemoveEventAt(start, end T, subject any) (bool, error) {
	if isAbsent(start) || isAbsent(end) {
		return false, ErrNullRange
	}
	x.mu.Lock()
	defer x.mu.Unlock()

	for _, ev := range x.events {
		if x.cmp(ev.start, start) == 0 && x.cmp(ev.end, end) == 0 &&
			reflect.DeepEqual(ev.subject, subject) {
			return x.remove(ev), nil
		}
	}
	return false, nil
}

// GetSortedEvents returns the active events in canonical order
func (x *index[T]) GetSortedEvents() []*Event[T] {
	x.mu.RLock()
	defer x.mu.RUnlock()

	res := make([]*Event[T], 0, len(x.events))
	for _, ev := range x.events {
		if ev.IsActive() {
			res = append(res, ev)
		}
	}
	SortEvents(x.cmp, res)
	return res
}

// GetEventsAt returns the active events whose span contains t
func (x *index[T]) GetEventsAt(t T) ([]*Event[T], error) {
	if isAbsent(t) {
		return nil, ErrNullTime
	}
	x.mu.RLock()
	defer x.mu.RUnlock()

	res := []*Event[T]{}
	x.startingBy(t, func(ev *Event[T]) bool {
		if ev.IsActive() && x.cmp(ev.end, t) >= 0 {
			res = append(res, ev)
		}
		return true
	})
	SortEvents(x.cmp, res)
	return res, nil
}

// GetEventsBetween returns the active events overlapping [start, end] in
// canonical order
func (x *index[T]) GetEventsBetween(start, end T) ([]*Event[T], error) {
	if isAbsent(start) || isAbsent(end) {
		return nil, ErrNullRange
	}
	if x.cmp(start, end) > 0 {
		return nil, ErrInvalidRange
	}
	x.mu.RLock()
	defer x.mu.RUnlock()

	res := []*Event[T]{}
	seen := map[*Event[T]]struct{}{}
	x.startingBy(end, func(ev *Event[T]) bool {
		if !ev.IsActive() || x.cmp(ev.end, start) < 0 {
			return true
		}
		if _, ok := seen[ev]; !ok {
			seen[ev] = struct{}{}
			res = append(res, ev)
		}
		return true
	})
	SortEvents(x.cmp, res)
	return res, nil
}

// RemoveInactiveEvents removes every inactive Event and returns how many
// were removed
func (x *index[T]) RemoveInactiveEvents() int {
	return len(x.SweepInactiveEvents())
}

// SweepInactiveEvents removes every inactive Event and returns the events
// it removed, in insertion order
func (x *index[T]) SweepInactiveEvents() []*Event[T] {
	x.mu.Lock()
	defer x.mu.Unlock()

	res := []*Event[T]{}
	for _, ev := range x.inactive() {
		if x.remove(ev) {
			res = append(res, ev)
		}
	}
	return res
}

// GetAllEvents returns every stored Event, active or not, in insertion
// order
func (x *index[T]) GetAllEvents() []*Event[T] {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return slices.Clone(x.events)
}

// GetInactiveEvents returns the stored events that are inactive
func (x *index[T]) GetInactiveEvents() []*Event[T] {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.inactive()
}

// Len returns the number of stored events, active or not
func (x *index[T]) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.events)
}

// Bounds returns the earliest start and the latest end of the stored
// events, active or not
func (x *index[T]) Bounds() (Span[T], bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	first, ok := x.starts.Min()
	if !ok {
		return Span[T]{}, false
	}
	last, _ := x.ends.Max()
	return Span[T]{Start: first.key, End: last.key}, true
}

// Clear drops all events and index state
func (x *index[T]) Clear() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.events = nil
	x.starts.Clear(false)
	x.ends.Clear(false)
}

func (x *index[T]) inactive() []*Event[T] {
	res := []*Event[T]{}
	for _, ev := range x.events {
		if !ev.IsActive() {
			res = append(res, ev)
		}
	}
	return res
}

func (x *index[T]) holds(ev *Event[T]) bool {
	return slices.Contains(x.events, ev)
}

// prepare completes an event's span before it is indexed and rejects a
// span that is missing an endpoint or runs backwards
func (x *index[T]) prepare(ev *Event[T]) error {
	if err := x.resolve(ev); err != nil {
		return err
	}
	if isAbsent(ev.start) || isAbsent(ev.end) {
		return ErrNullRange
	}
	if x.cmp(ev.start, ev.end) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRange, ev)
	}
	return nil
}

func (x *index[T]) resolve(ev *Event[T]) error {
	switch {
	case ev.hasStart && ev.hasEnd:
		return nil
	case !ev.hasDuration || isAbsent(ev.duration):
		return ErrMissingDuration
	case x.arith == nil:
		return ErrMissingCalculator
	case ev.hasStart:
		end, err := x.arith.Add(ev.start, ev.duration)
		if err != nil {
			return err
		}
		ev.setSpan(ev.start, end)
		return nil
	case ev.hasEnd:
		start, err := x.arith.Subtract(ev.end, ev.duration)
		if err != nil {
			return err
		}
		ev.setSpan(start, ev.end)
		return nil
	default:
		return x.schedule(ev)
	}
}

func (x *index[T]) insert(ev *Event[T]) {
	x.events = append(x.events, ev)
	addToBucket(x.starts, ev.start, ev)
	addToBucket(x.ends, ev.end, ev)
}

func (x *index[T]) remove(ev *Event[T]) bool {
	i := slices.Index(x.events, ev)
	if i < 0 {
		return false
	}
	x.events = slices.Delete(x.events, i, i+1)
	removeFromBucket(x.starts, ev.start, ev)
	removeFromBucket(x.ends, ev.end, ev)
	return true
}

// overlaps reports whether any stored event, active or not, shares a
// point with the span
func (x *index[T]) overlaps(span Span[T]) bool {
	found := false
	x.startingBy(span.End, func(ev *Event[T]) bool {
		found = x.cmp(ev.end, span.Start) >= 0
		return !found
	})
	return found
}

// startingBy visits events whose start is at or before t, in start order,
// until fn returns false
func (x *index[T]) startingBy(t T, fn func(*Event[T]) bool) {
	x.starts.Ascend(func(b *bucket[T]) bool {
		if x.cmp(b.key, t) > 0 {
			return false
		}
		for _, ev := range b.events {
			if !fn(ev) {
				return false
			}
		}
		return true
	})
}

func (x *index[T]) sortedSnapshot() []*Event[T] {
	res := slices.Clone(x.events)
	SortEvents(x.cmp, res)
	return res
}

func addToBucket[T any](
	tree *btree.BTreeG[*bucket[T]], key T, ev *Event[T],
) {
	if b, ok := tree.Get(&bucket[T]{key: key}); ok {
		b.events = append(b.events, ev)
		return
	}
	tree.ReplaceOrInsert(&bucket[T]{key: key, events: []*Event[T]{ev}})
}

func removeFromBucket[T any](
	tree *btree.BTreeG[*bucket[T]], key T, ev *Event[T],
) {
	b, ok := tree.Get(&bucket[T]{key: key})
	if !ok {
		return
	}
	if i := slices.Index(b.events, ev); i >= 0 {
		b.events = slices.Delete(b.events, i, i+1)
	}
	if len(b.events) == 0 {
		tree.Delete(b)
	}
}
