package timeline

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/constraints"
)

type (
	// Arithmetic supplies the operations an index needs to schedule events
	// over a time type it knows nothing else about. Add and Subtract take a
	// time point and a duration expressed in the same type
	Arithmetic[T any] interface {
		Add(a, b T) (T, error)
		Subtract(a, b T) (T, error)
		Compare(a, b T) int
		Zero() (T, error)
	}

	// Number is the set of types Numeric can bind to
	Number interface {
		constraints.Integer | constraints.Float
	}

	// Numeric is ordinary arithmetic over an integer or floating point time
	// axis. Zero is 0
	Numeric[T Number] struct{}

	// Durations is arithmetic over time.Duration. Zero is the zero duration
	Durations struct{}

	// Anchored is arithmetic over time.Time where durations are themselves
	// time.Time values, measured as the elapsed span from a fixed anchor.
	// Zero is the anchor
	Anchored struct {
		anchor time.Time
	}

	// Unsupported is a binding for a time type that has an ordering but no
	// arithmetic. Every Add, Subtract and Zero fails with
	// ErrUnsupportedTimeType
	Unsupported[T any] struct {
		compare Comparator[T]
	}
)

var (
	// EpochAnchor is the origin of the Unix epoch
	EpochAnchor = time.Unix(0, 0).UTC()

	// CalendarAnchor is the wall-clock zero used by CalendarTime
	CalendarAnchor = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
)

var (
	_ Arithmetic[int64]         = Numeric[int64]{}
	_ Arithmetic[time.Duration] = Durations{}
	_ Arithmetic[time.Time]     = Anchored{}
	_ Arithmetic[string]        = Unsupported[string]{}
)

func (Numeric[T]) Add(a, b T) (T, error) {
	return a + b, nil
}

func (Numeric[T]) Subtract(a, b T) (T, error) {
	return a - b, nil
}

func (Numeric[T]) Compare(a, b T) int {
	return cmp.Compare(a, b)
}

func (Numeric[T]) Zero() (T, error) {
	return 0, nil
}

func (Durations) Add(a, b time.Duration) (time.Duration, error) {
	return a + b, nil
}

func (Durations) Subtract(a, b time.Duration) (time.Duration, error) {
	return a - b, nil
}

func (Durations) Compare(a, b time.Duration) int {
	return cmp.Compare(a, b)
}

func (Durations) Zero() (time.Duration, error) {
	return 0, nil
}

// EpochTime binds time.Time as an absolute epoch-based timestamp. A
// duration's magnitude is its offset from the Unix epoch
func EpochTime() Anchored {
	return AnchoredTime(EpochAnchor)
}

// CalendarTime binds time.Time as a calendar timestamp. A duration is the
// span between CalendarAnchor and the duration value
func CalendarTime() Anchored {
	return AnchoredTime(CalendarAnchor)
}

// AnchoredTime binds time.Time with durations measured from anchor
func AnchoredTime(anchor time.Time) Anchored {
	return Anchored{anchor: anchor}
}

// EpochDuration expresses d in the duration form EpochTime expects
func EpochDuration(d time.Duration) time.Time {
	return EpochAnchor.Add(d)
}

// CalendarDuration expresses d in the duration form CalendarTime expects
func CalendarDuration(d time.Duration) time.Time {
	return CalendarAnchor.Add(d)
}

// Anchor returns the instant durations are measured from
func (a Anchored) Anchor() time.Time {
	return a.anchor
}

// Duration expresses d in this binding's duration form
func (a Anchored) Duration(d time.Duration) time.Time {
	return a.anchor.Add(d)
}

// Elapsed converts a duration value back into a time.Duration
func (a Anchored) Elapsed(dur time.Time) time.Duration {
	return dur.Sub(a.anchor)
}

func (a Anchored) Add(start, dur time.Time) (time.Time, error) {
	return start.Add(a.Elapsed(dur)), nil
}

func (a Anchored) Subtract(end, dur time.Time) (time.Time, error) {
	return end.Add(-a.Elapsed(dur)), nil
}

func (Anchored) Compare(a, b time.Time) int {
	return a.Compare(b)
}

func (a Anchored) Zero() (time.Time, error) {
	return a.anchor, nil
}

// NewUnsupported binds a time type that can only be ordered. The
// comparator is required
func NewUnsupported[T any](compare Comparator[T]) Unsupported[T] {
	return Unsupported[T]{compare: compare}
}

func (u Unsupported[T]) Add(_, _ T) (T, error) {
	return u.fail()
}

func (u Unsupported[T]) Subtract(_, _ T) (T, error) {
	return u.fail()
}

func (u Unsupported[T]) Compare(a, b T) int {
	return u.compare(a, b)
}

func (u Unsupported[T]) Zero() (T, error) {
	return u.fail()
}

func (Unsupported[T]) fail() (T, error) {
	var zero T
	return zero, fmt.Errorf("%w: %T", ErrUnsupportedTimeType, zero)
}

// LexicalCompare orders values by their fmt.Sprint form. It is not a
// numeric ordering ("10" sorts before "9") and is only used when a caller
// asks for it explicitly
func LexicalCompare[T any](a, b T) int {
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
