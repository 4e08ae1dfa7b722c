package timeline

import "cmp"

// OverlapIndex stores events that may freely overlap. It never rejects an
// event for sharing time with another. It is safe for concurrent use
type OverlapIndex[T any] struct {
	*index[T]
}

var _ Structure[int] = (*OverlapIndex[int])(nil)

// NewOverlapIndex creates an OverlapIndex over a naturally ordered time type
func NewOverlapIndex[T cmp.Ordered]() *OverlapIndex[T] {
	return NewOverlapIndexFunc(cmp.Compare[T])
}

// NewOverlapIndexFunc creates an OverlapIndex ordered by the provided
// Comparator
func NewOverlapIndexFunc[T any](
	compare Comparator[T],
) *OverlapIndex[T] {
	return &OverlapIndex[T]{index: newIndex(compare)}
}

// AddEvent indexes the Event. A duration-only Event is first given a span
// by gap search, which requires an attached Arithmetic. Adding an Event
// that is already stored does nothing
func (x *OverlapIndex[T]) AddEvent(ev *Event[T]) error {
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
	x.insert(ev)
	return nil
}
