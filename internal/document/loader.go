package document

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kode4food/timeline"
)

type (
	// Loader places Documents onto timelines kept in one Registry per
	// Axis. Loading two Documents with the same name and axis adds to the
	// same timeline
	Loader struct {
		defaults  Defaults
		logger    *zap.Logger
		ints      *timeline.Registry[int64]
		floats    *timeline.Registry[float64]
		durations *timeline.Registry[time.Duration]
		times     *timeline.Registry[time.Time]
	}

	// Querier answers questions about a loaded timeline, parsing and
	// formatting times the way its Document's Axis does
	Querier interface {
		Report() *Report
		At(t string) ([]Placement, error)
		Between(start, end string) ([]Placement, error)
		Sweep() []Placement
	}

	// Report describes a loaded timeline and every event stored on it
	Report struct {
		Name    string
		Mode    Mode
		Policy  Policy
		Axis    Axis
		Events  []Placement
		Dropped int
	}

	// Placement is an event with its resolved span, formatted for display
	Placement struct {
		Start   string
		End     string
		Subject any
		Active  bool
	}

	querier[T any] struct {
		axis    axis[T]
		tl      timeline.Structure[T]
		doc     *Document
		dropped int
	}
)

// NewLoader creates a Loader whose registries are bounded by cfg
func NewLoader(
	cfg timeline.Config, defaults Defaults, logger *zap.Logger,
) (*Loader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ints, err := newRegistry(cfg, intAxis, logger)
	if err != nil {
		return nil, err
	}
	floats, err := newRegistry(cfg, floatAxis, logger)
	if err != nil {
		return nil, err
	}
	durations, err := newRegistry(cfg, durationAxis, logger)
	if err != nil {
		return nil, err
	}
	times, err := newRegistry(cfg, timeAxis, logger)
	if err != nil {
		return nil, err
	}
	return &Loader{
		defaults:  defaults,
		logger:    logger,
		ints:      ints,
		floats:    floats,
		durations: durations,
		times:     times,
	}, nil
}

// Build adds the Document's events to its named timeline, in order, and
// returns a Querier over the result. Settings the Document leaves blank
// come from the Loader's Defaults
func (l *Loader) Build(doc *Document) (Querier, error) {
	doc = doc.WithDefaults(l.defaults)
	if err := doc.validate(); err != nil {
		return nil, err
	}
	switch doc.Axis {
	case AxisInt:
		return build(l, l.ints, intAxis, doc)
	case AxisFloat:
		return build(l, l.floats, floatAxis, doc)
	case AxisDuration:
		return build(l, l.durations, durationAxis, doc)
	case AxisTime:
		return build(l, l.times, timeAxis, doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAxis, doc.Axis)
	}
}

// Timelines returns the number of timelines the Loader holds
func (l *Loader) Timelines() int {
	return l.ints.Len() + l.floats.Len() + l.durations.Len() + l.times.Len()
}

func newRegistry[T any](
	cfg timeline.Config, ax axis[T], logger *zap.Logger,
) (*timeline.Registry[T], error) {
	return timeline.NewRegistry(cfg, ax.compare,
		timeline.WithLogger[T](logger),
		timeline.WithArithmetic(ax.arith),
	)
}

func build[T any](
	l *Loader, reg *timeline.Registry[T], ax axis[T], doc *Document,
) (Querier, error) {
	tl, err := structure(reg, doc)
	if err != nil {
		return nil, err
	}

	dropped := 0
	for i, e := range doc.Events {
		ev, err := ax.event(e)
		if err != nil {
			return nil, fmt.Errorf("%w: %s event %d: %w",
				ErrBadEvent, doc.Name, i, err,
			)
		}
		before := tl.Len()
		if err := tl.AddEvent(ev); err != nil {
			return nil, fmt.Errorf("%s event %d: %w", doc.Name, i, err)
		}
		if tl.Len() == before {
			dropped++
			l.logger.Debug("Event dropped",
				zap.String("timeline", doc.Name),
				zap.Int("index", i),
				zap.Any("subject", e.Subject),
			)
		}
	}

	l.logger.Info("Document loaded",
		zap.String("name", doc.Name),
		zap.String("mode", string(doc.Mode)),
		zap.String("axis", string(doc.Axis)),
		zap.Int("events", len(doc.Events)),
		zap.Int("dropped", dropped),
	)
	return &querier[T]{
		axis:    ax,
		tl:      tl,
		doc:     doc,
		dropped: dropped,
	}, nil
}

func structure[T any](
	reg *timeline.Registry[T], doc *Document,
) (timeline.Structure[T], error) {
	if doc.Mode != ModeExclusive {
		ov, err := reg.Overlapping(doc.Name)
		if err != nil {
			return nil, err
		}
		return ov, nil
	}

	ex, err := reg.Exclusive(doc.Name)
	if err != nil {
		return nil, err
	}
	var p timeline.EvictionPolicy[T] = timeline.Discard[T]{}
	if doc.Policy == PolicyDelay {
		p = timeline.Delay[T]{}
	}
	if err := ex.SetEvictionPolicy(p); err != nil {
		return nil, err
	}
	return ex, nil
}

func (q *querier[T]) Report() *Report {
	evs := q.tl.GetAllEvents()
	timeline.SortEvents(q.axis.compare, evs)
	return &Report{
		Name:    q.doc.Name,
		Mode:    q.doc.Mode,
		Policy:  q.doc.Policy,
		Axis:    q.doc.Axis,
		Events:  q.placements(evs),
		Dropped: q.dropped,
	}
}

func (q *querier[T]) At(t string) ([]Placement, error) {
	v, err := q.axis.parse(t)
	if err != nil {
		return nil, err
	}
	evs, err := q.tl.GetEventsAt(v)
	if err != nil {
		return nil, err
	}
	return q.placements(evs), nil
}

func (q *querier[T]) Between(start, end string) ([]Placement, error) {
	s, err := q.axis.parse(start)
	if err != nil {
		return nil, err
	}
	e, err := q.axis.parse(end)
	if err != nil {
		return nil, err
	}
	evs, err := q.tl.GetEventsBetween(s, e)
	if err != nil {
		return nil, err
	}
	return q.placements(evs), nil
}

func (q *querier[T]) Sweep() []Placement {
	return q.placements(q.tl.SweepInactiveEvents())
}

func (q *querier[T]) placements(evs []*timeline.Event[T]) []Placement {
	res := make([]Placement, 0, len(evs))
	for _, ev := range evs {
		start, _ := ev.Start()
		end, _ := ev.End()
		res = append(res, Placement{
			Start:   q.axis.format(start),
			End:     q.axis.format(end),
			Subject: ev.Subject(),
			Active:  ev.IsActive(),
		})
	}
	return res
}

func (p Placement) String() string {
	res := fmt.Sprintf("[%s, %s] %v", p.Start, p.End, p.Subject)
	if !p.Active {
		return res + " (inactive)"
	}
	return res
}
