package timeline

import (
	"cmp"
	"slices"
)

// ExclusiveTimeline stores events that may not share any point in time.
// A new event that overlaps a stored one, active or not, is handed to the
// EvictionPolicy, which decides whether and where it is inserted. It is
// safe for concurrent use
type ExclusiveTimeline[T any] struct {
	*index[T]
	policy EvictionPolicy[T]
}

var _ Structure[int] = (*ExclusiveTimeline[int])(nil)

// NewExclusiveTimeline creates an ExclusiveTimeline over a naturally
// ordered time type, using the Discard policy
func NewExclusiveTimeline[T cmp.Ordered]() *ExclusiveTimeline[T] {
	return NewExclusiveTimelineFunc(cmp.Compare[T])
}

// NewExclusiveTimelineFunc creates an ExclusiveTimeline ordered by the
// provided Comparator, using the Discard policy
func NewExclusiveTimelineFunc[T any](
	compare Comparator[T],
) *ExclusiveTimeline[T] {
	return &ExclusiveTimeline[T]{
		index:  newIndex(compare),
		policy: Discard[T]{},
	}
}

// SetEvictionPolicy replaces the policy used to resolve conflicts
func (x *ExclusiveTimeline[T]) SetEvictionPolicy(p EvictionPolicy[T]) error {
	if p == nil {
		return ErrInvalidArgument
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	x.policy = p
	return nil
}

// EvictionPolicy returns the policy used to resolve conflicts
func (x *ExclusiveTimeline[T]) EvictionPolicy() EvictionPolicy[T] {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.policy
}

// AddEvent schedules the Event if it only has a duration, then indexes it
// unless it overlaps a stored event. On overlap, the EvictionPolicy is
// consulted and whatever it returns is indexed instead. A dropped Event is
// not an error.
//
// A policy may return a different Event than the one passed in, as Delay
// does. The caller's Event is then not stored, so RemoveEvent will not find
// it; use the stored copy from a query, or RemoveEventAt with the new span
// and the same subject
func (x *ExclusiveTimeline[T]) AddEvent(ev *Event[T]) error {
	if ev == nil {
		return ErrNullEvent
	}
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.holds(ev) {
		return nil
	}
	if err := x.prepare(ev); err != nil {
		return err
	}

	span, _ := ev.Span()
	if !x.overlaps(span) {
		x.insert(ev)
		return nil
	}

	res, err := x.policy.ResolveConflict(ev, slices.Clone(x.events), x.arith)
	if err != nil || res == nil {
		return err
	}
	if x.holds(res) {
		return nil
	}
	if err := x.prepare(res); err != nil {
		return err
	}
	x.insert(res)
	return nil
}
