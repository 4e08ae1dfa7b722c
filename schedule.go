package timeline

// schedule assigns a span to a duration-only event using first-fit gap
// search over the stored events in canonical order. Candidates are tried
// in this order: the empty timeline, the space between zero and the first
// event, each interior gap, and finally the end of the last event. A gap
// only fits when it is strictly longer than the duration
func (x *index[T]) schedule(ev *Event[T]) error {
	zero, err := x.arith.Zero()
	if err != nil {
		return err
	}

	sorted := x.sortedSnapshot()
	if len(sorted) == 0 || x.fits(zero, sorted[0].start, ev.duration) {
		return x.place(ev, zero)
	}

	for i := 0; i < len(sorted)-1; i++ {
		gapStart := sorted[i].end
		if x.fits(gapStart, sorted[i+1].start, ev.duration) {
			return x.place(ev, gapStart)
		}
	}
	return x.place(ev, sorted[len(sorted)-1].end)
}

func (x *index[T]) place(ev *Event[T], start T) error {
	end, err := x.arith.Add(start, ev.duration)
	if err != nil {
		return err
	}
	ev.setSpan(start, end)
	return nil
}

// fits reports whether [gapStart, gapEnd) is strictly longer than
// duration. A gap the binding cannot measure never fits
func (x *index[T]) fits(gapStart, gapEnd, duration T) bool {
	if x.arith.Compare(gapStart, gapEnd) >= 0 {
		return false
	}
	gap, err := x.arith.Subtract(gapEnd, gapStart)
	if err != nil {
		return false
	}
	return x.arith.Compare(gap, duration) > 0
}
