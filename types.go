package timeline

// Structure is the contract shared by OverlapIndex and ExclusiveTimeline
type Structure[T any] interface {
	// SetTimeArithmetic attaches the Arithmetic used for scheduling
	SetTimeArithmetic(Arithmetic[T])

	// AddEvent indexes an Event, scheduling it first if it only has a
	// duration
	AddEvent(*Event[T]) error

	// RemoveEvent removes an Event by identity
	RemoveEvent(*Event[T]) (bool, error)

	// RemoveEventAt removes the first Event matching a span and subject
	RemoveEventAt(start, end T, subject any) (bool, error)

	// GetSortedEvents returns the active events in canonical order
	GetSortedEvents() []*Event[T]

	// GetEventsAt returns the active events containing a time point
	GetEventsAt(T) ([]*Event[T], error)

	// GetEventsBetween returns the active events overlapping a range
	GetEventsBetween(start, end T) ([]*Event[T], error)

	// RemoveInactiveEvents sweeps inactive events, returning the count
	RemoveInactiveEvents() int

	// SweepInactiveEvents sweeps inactive events, returning them
	SweepInactiveEvents() []*Event[T]

	// GetAllEvents returns every stored Event
	GetAllEvents() []*Event[T]

	// GetInactiveEvents returns the stored events that are inactive
	GetInactiveEvents() []*Event[T]

	// Bounds returns the earliest start and latest end stored
	Bounds() (Span[T], bool)

	// Len returns the number of stored events
	Len() int

	// Clear drops every Event
	Clear()
}
