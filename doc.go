// Package timeline implements in-memory interval indexes over an arbitrary
// time type. Events carry a start, an end, an optional duration, an opaque
// subject, and an active flag, and can be queried by point in time, by
// range, or listed in canonical order.
//
// Two structures share the same storage:
//   - OverlapIndex accepts any event, however it overlaps the others
//   - ExclusiveTimeline keeps events mutually exclusive, handing conflicts
//     to an EvictionPolicy (Discard or Delay, or your own)
//
// Events that only know their duration are placed by first-fit gap search,
// which needs an Arithmetic binding for the time type: Numeric for integer
// and floating point axes, Durations for time.Duration, and EpochTime or
// CalendarTime for time.Time.
//
// A Registry bounds how many named timelines a process keeps.
//
// The examples/ directory contains runnable programs that exercise the API.
package timeline
