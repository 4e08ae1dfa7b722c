package document

import (
	"cmp"
	"fmt"
	"strconv"
	"time"

	"github.com/kode4food/timeline"
)

type (
	// Axis names the time type a Document's events are measured in
	Axis string

	axis[T any] struct {
		compare       timeline.Comparator[T]
		arith         timeline.Arithmetic[T]
		parse         func(string) (T, error)
		parseDuration func(string) (T, error)
		format        func(T) string
	}
)

const (
	AxisInt      Axis = "int"
	AxisFloat    Axis = "float"
	AxisDuration Axis = "duration"
	AxisTime     Axis = "time"
)

var (
	intAxis = axis[int64]{
		compare:       cmp.Compare[int64],
		arith:         timeline.Numeric[int64]{},
		parse:         parseInt,
		parseDuration: parseInt,
		format: func(v int64) string {
			return strconv.FormatInt(v, 10)
		},
	}

	floatAxis = axis[float64]{
		compare:       cmp.Compare[float64],
		arith:         timeline.Numeric[float64]{},
		parse:         parseFloat,
		parseDuration: parseFloat,
		format: func(v float64) string {
			return strconv.FormatFloat(v, 'g', -1, 64)
		},
	}

	durationAxis = axis[time.Duration]{
		compare:       cmp.Compare[time.Duration],
		arith:         timeline.Durations{},
		parse:         time.ParseDuration,
		parseDuration: time.ParseDuration,
		format:        time.Duration.String,
	}

	calendar = timeline.CalendarTime()

	timeAxis = axis[time.Time]{
		compare: calendar.Compare,
		arith:   calendar,
		parse: func(s string) (time.Time, error) {
			return time.Parse(time.RFC3339, s)
		},
		parseDuration: func(s string) (time.Time, error) {
			d, err := time.ParseDuration(s)
			if err != nil {
				return time.Time{}, err
			}
			return calendar.Duration(d), nil
		},
		format: func(t time.Time) string {
			return t.Format(time.RFC3339)
		},
	}
)

// Axes returns the names of every supported Axis
func Axes() []Axis {
	return []Axis{AxisInt, AxisFloat, AxisDuration, AxisTime}
}

func (a Axis) valid() bool {
	switch a {
	case AxisInt, AxisFloat, AxisDuration, AxisTime:
		return true
	default:
		return false
	}
}

func (a axis[T]) event(e Event) (*timeline.Event[T], error) {
	ev := &timeline.Event[T]{}
	ev.SetSubject(e.Subject)
	if e.Start != "" {
		v, err := a.parse(e.Start)
		if err != nil {
			return nil, fmt.Errorf("start: %w", err)
		}
		ev.SetStart(v)
	}
	if e.End != "" {
		v, err := a.parse(e.End)
		if err != nil {
			return nil, fmt.Errorf("end: %w", err)
		}
		ev.SetEnd(v)
	}
	if e.Duration != "" {
		v, err := a.parseDuration(e.Duration)
		if err != nil {
			return nil, fmt.Errorf("duration: %w", err)
		}
		ev.SetDuration(v)
	}
	if !e.isActive() {
		ev.Deactivate()
	}
	return ev, nil
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
