package timeline

type (
	// EvictionPolicy decides what happens to a new event that conflicts
	// with events already on an ExclusiveTimeline. It returns the event to
	// insert, or nil to drop it. The existing slice is a snapshot and must
	// not be modified, and neither may the new event: a policy that wants
	// to move it returns a different Event
	EvictionPolicy[T any] interface {
		ResolveConflict(
			ev *Event[T], existing []*Event[T], arith Arithmetic[T],
		) (*Event[T], error)
	}

	// PolicyFunc adapts a function to the EvictionPolicy interface
	PolicyFunc[T any] func(
		ev *Event[T], existing []*Event[T], arith Arithmetic[T],
	) (*Event[T], error)

	// Discard drops every conflicting event
	Discard[T any] struct{}

	// Delay moves a conflicting event to start where the latest existing
	// event ends, keeping its original span
	Delay[T any] struct{}
)

var (
	_ EvictionPolicy[int] = Discard[int]{}
	_ EvictionPolicy[int] = Delay[int]{}
	_ EvictionPolicy[int] = PolicyFunc[int](nil)
)

// ResolveConflict calls the wrapped function
func (fn PolicyFunc[T]) ResolveConflict(
	ev *Event[T], existing []*Event[T], arith Arithmetic[T],
) (*Event[T], error) {
	return fn(ev, existing, arith)
}

// ResolveConflict always drops the new event
func (Discard[T]) ResolveConflict(
	*Event[T], []*Event[T], Arithmetic[T],
) (*Event[T], error) {
	return nil, nil
}

// ResolveConflict returns a copy of ev rebased to the latest end among the
// existing events. The copy's span is the event's duration when it has one,
// otherwise its original end minus start. ev itself keeps its old span and
// is never stored
func (Delay[T]) ResolveConflict(
	ev *Event[T], existing []*Event[T], arith Arithmetic[T],
) (*Event[T], error) {
	if len(existing) == 0 {
		return ev, nil
	}
	if arith == nil {
		return nil, ErrMissingCalculator
	}

	last := existing[len(existing)-1]
	for _, e := range existing {
		if arith.Compare(e.end, last.end) > 0 {
			last = e
		}
	}

	span, err := originalSpan(ev, arith)
	if err != nil {
		return nil, err
	}
	end, err := arith.Add(last.end, span)
	if err != nil {
		return nil, err
	}

	res := ev.clone()
	res.setSpan(last.end, end)
	return res, nil
}

func originalSpan[T any](ev *Event[T], arith Arithmetic[T]) (T, error) {
	if d, ok := ev.Duration(); ok {
		return d, nil
	}
	return arith.Subtract(ev.end, ev.start)
}
