package timeline

import (
	"fmt"
	"reflect"
	"slices"
	"sync/atomic"
)

type (
	// Event is a time-bounded entry stored by an index. An Event is either
	// fully specified by a start and end, or carries only a duration, in
	// which case the index assigns its span when it is added. The zero
	// value is an active Event with nothing set
	Event[T any] struct {
		start       T
		end         T
		duration    T
		subject     any
		hasStart    bool
		hasEnd      bool
		hasDuration bool
		inactive    atomic.Bool
	}

	// Span is a closed interval [Start, End]
	Span[T any] struct {
		Start T
		End   T
	}

	// Comparator orders two time points, returning a negative number, zero,
	// or a positive number
	Comparator[T any] func(a, b T) int
)

// NewEvent creates an active Event with an explicit start and end
func NewEvent[T any](start, end T, subject any) *Event[T] {
	return &Event[T]{
		start:    start,
		end:      end,
		subject:  subject,
		hasStart: true,
		hasEnd:   true,
	}
}

// NewDurationEvent creates an active Event that only knows its duration.
// Its span is assigned when it is added to an index
func NewDurationEvent[T any](duration T, subject any) *Event[T] {
	return &Event[T]{
		duration:    duration,
		subject:     subject,
		hasDuration: true,
	}
}

// Start returns the start time and whether it is set
func (e *Event[T]) Start() (T, bool) {
	return e.start, e.hasStart
}

// End returns the end time and whether it is set
func (e *Event[T]) End() (T, bool) {
	return e.end, e.hasEnd
}

// Duration returns the duration and whether it is set
func (e *Event[T]) Duration() (T, bool) {
	return e.duration, e.hasDuration
}

// Subject returns the Event's payload
func (e *Event[_]) Subject() any {
	return e.subject
}

// SetSubject replaces the Event's payload
func (e *Event[_]) SetSubject(subject any) {
	e.subject = subject
}

// SetStart sets the start time. It must not be called once the Event has
// been added to an index
func (e *Event[T]) SetStart(start T) {
	e.start = start
	e.hasStart = true
}

// SetEnd sets the end time. It must not be called once the Event has been
// added to an index
func (e *Event[T]) SetEnd(end T) {
	e.end = end
	e.hasEnd = true
}

// SetDuration sets the duration used when the Event is auto-scheduled
func (e *Event[T]) SetDuration(duration T) {
	e.duration = duration
	e.hasDuration = true
}

// Activate marks the Event as active
func (e *Event[_]) Activate() {
	e.inactive.Store(false)
}

// Deactivate marks the Event as inactive. Inactive events are kept by the
// index but excluded from queries until activated or swept
func (e *Event[_]) Deactivate() {
	e.inactive.Store(true)
}

// IsActive reports whether the Event is active
func (e *Event[_]) IsActive() bool {
	return !e.inactive.Load()
}

// HasOnlyDuration reports whether the Event lacks a complete span but has
// a duration to be scheduled by
func (e *Event[_]) HasOnlyDuration() bool {
	return (!e.hasStart || !e.hasEnd) && e.hasDuration
}

// Span returns the Event's interval once both start and end are known
func (e *Event[T]) Span() (Span[T], bool) {
	if !e.hasStart || !e.hasEnd {
		return Span[T]{}, false
	}
	return Span[T]{Start: e.start, End: e.end}, true
}

func (e *Event[T]) String() string {
	start, end := "?", "?"
	if e.hasStart {
		start = fmt.Sprint(e.start)
	}
	if e.hasEnd {
		end = fmt.Sprint(e.end)
	}
	res := fmt.Sprintf("[%s, %s] %v", start, end, e.subject)
	if !e.IsActive() {
		res += " (inactive)"
	}
	return res
}

func (e *Event[T]) setSpan(start, end T) {
	e.start, e.hasStart = start, true
	e.end, e.hasEnd = end, true
}

// clone copies everything but leaves the copy's span to the caller
func (e *Event[T]) clone() *Event[T] {
	res := &Event[T]{
		start:       e.start,
		end:         e.end,
		duration:    e.duration,
		subject:     e.subject,
		hasStart:    e.hasStart,
		hasEnd:      e.hasEnd,
		hasDuration: e.hasDuration,
	}
	res.inactive.Store(e.inactive.Load())
	return res
}

// Contains reports whether t falls within the closed interval
func (s Span[T]) Contains(cmp Comparator[T], t T) bool {
	return cmp(s.Start, t) <= 0 && cmp(t, s.End) <= 0
}

// Overlaps reports whether two closed intervals share at least one point
func (s Span[T]) Overlaps(cmp Comparator[T], other Span[T]) bool {
	return cmp(s.End, other.Start) >= 0 && cmp(s.Start, other.End) <= 0
}

func (s Span[T]) String() string {
	return fmt.Sprintf("[%v, %v]", s.Start, s.End)
}

// CompareEvents is the canonical Event ordering: by start, then by end,
// then active events before inactive ones. Missing times are skipped
func CompareEvents[T any](cmp Comparator[T], a, b *Event[T]) int {
	if a.hasStart && b.hasStart {
		if res := cmp(a.start, b.start); res != 0 {
			return res
		}
	}
	if a.hasEnd && b.hasEnd {
		if res := cmp(a.end, b.end); res != 0 {
			return res
		}
	}
	switch aa, ba := a.IsActive(), b.IsActive(); {
	case aa && !ba:
		return -1
	case !aa && ba:
		return 1
	default:
		return 0
	}
}

// SortEvents stably sorts events in canonical order
func SortEvents[T any](cmp Comparator[T], evs []*Event[T]) {
	slices.SortStableFunc(evs, func(a, b *Event[T]) int {
		return CompareEvents(cmp, a, b)
	})
}

// isAbsent reports whether a time value is missing: a nil interface, or a
// nil pointer, map, slice, func or chan
func isAbsent[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
