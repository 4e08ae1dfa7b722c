package timeline

import "errors"

var (
	// ErrNullEvent indicates a nil event was passed to an index
	ErrNullEvent = errors.New("event cannot be nil")

	// ErrNullTime indicates a query time point was absent
	ErrNullTime = errors.New("time cannot be nil")

	// ErrNullRange indicates the start or end of a range was absent
	ErrNullRange = errors.New("start time and end time cannot be nil")

	// ErrInvalidRange indicates a range whose start is after its end
	ErrInvalidRange = errors.New("start time cannot be after end time")

	// ErrInvalidArgument indicates a nil policy or an unusable setting
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingCalculator indicates a duration-only event was added to an
	// index that has no Arithmetic attached
	ErrMissingCalculator = errors.New(
		"time arithmetic is required to schedule events with only duration",
	)

	// ErrMissingDuration indicates an event without a complete span also
	// has no duration to schedule by
	ErrMissingDuration = errors.New(
		"event must have a duration to be scheduled",
	)

	// ErrUnsupportedTimeType is returned by an Arithmetic binding that has
	// no defined operation for its time type
	ErrUnsupportedTimeType = errors.New("unsupported time type")

	// ErrCapacityExceeded indicates a Registry is full
	ErrCapacityExceeded = errors.New("maximum number of timelines reached")

	// ErrTimelineKind indicates a Registry name is already bound to the
	// other kind of timeline
	ErrTimelineKind = errors.New("timeline exists with a different kind")
)
