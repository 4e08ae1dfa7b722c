package timeline

import (
	"container/list"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type (
	// Registry is a bounded set of named timelines over one time type.
	// Lookups by name return the existing timeline or create one, and
	// creation past Config.MaxTimelines either fails or, with
	// Config.EvictIdle, drops the least recently used timeline. It is safe
	// for concurrent use
	Registry[T any] struct {
		compare Comparator[T]
		arith   Arithmetic[T]
		logger  *zap.Logger
		entries map[string]*list.Element
		lru     *list.List
		config  Config
		mu      sync.RWMutex
	}

	// RegistryOption configures a Registry
	RegistryOption[T any] func(*Registry[T])

	// Kind identifies which timeline structure a name is bound to
	Kind string

	registryEntry[T any] struct {
		value Structure[T]
		name  string
		kind  Kind
	}
)

const (
	KindOverlapping Kind = "overlapping"
	KindExclusive   Kind = "exclusive"
)

// NewRegistry creates a Registry whose timelines are ordered by compare
func NewRegistry[T any](
	cfg Config, compare Comparator[T], opts ...RegistryOption[T],
) (*Registry[T], error) {
	if cfg.MaxTimelines <= 0 {
		return nil, fmt.Errorf(
			"%w: maximum number of timelines must be positive, got %d",
			ErrInvalidArgument, cfg.MaxTimelines,
		)
	}
	if compare == nil {
		return nil, fmt.Errorf("%w: comparator is required",
			ErrInvalidArgument,
		)
	}
	r := &Registry[T]{
		compare: compare,
		logger:  zap.NewNop(),
		entries: map[string]*list.Element{},
		lru:     list.New(),
		config:  cfg,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// WithLogger sets the logger used to report registry activity
func WithLogger[T any](logger *zap.Logger) RegistryOption[T] {
	return func(r *Registry[T]) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithArithmetic attaches arith to every timeline the Registry creates
func WithArithmetic[T any](arith Arithmetic[T]) RegistryOption[T] {
	return func(r *Registry[T]) {
		r.arith = arith
	}
}

// Overlapping returns the OverlapIndex registered under name, creating it
// if needed
func (r *Registry[T]) Overlapping(name string) (*OverlapIndex[T], error) {
	v, err := r.get(name, KindOverlapping, func() Structure[T] {
		return NewOverlapIndexFunc(r.compare)
	})
	if err != nil {
		return nil, err
	}
	return v.(*OverlapIndex[T]), nil
}

// Exclusive returns the ExclusiveTimeline registered under name, creating
// it if needed
func (r *Registry[T]) Exclusive(name string) (*ExclusiveTimeline[T], error) {
	v, err := r.get(name, KindExclusive, func() Structure[T] {
		return NewExclusiveTimelineFunc(r.compare)
	})
	if err != nil {
		return nil, err
	}
	return v.(*ExclusiveTimeline[T]), nil
}

// Lookup returns the timeline registered under name without creating one
func (r *Registry[T]) Lookup(name string) (Structure[T], Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if elem, ok := r.entries[name]; ok {
		entry := elem.Value.(*registryEntry[T])
		return entry.value, entry.kind, true
	}
	return nil, "", false
}

// Remove drops the timeline registered under name, reporting whether one
// was present
func (r *Registry[T]) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	elem, ok := r.entries[name]
	if !ok {
		return false
	}
	r.lru.Remove(elem)
	delete(r.entries, name)
	r.logger.Debug("Timeline removed", zap.String("name", name))
	return true
}

// Clear drops every registered timeline
func (r *Registry[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := r.lru.Len()
	r.entries = map[string]*list.Element{}
	r.lru.Init()
	r.logger.Debug("Registry cleared", zap.Int("count", count))
}

// Len returns the number of registered timelines
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lru.Len()
}

// MaxTimelines returns the configured capacity
func (r *Registry[T]) MaxTimelines() int {
	return r.config.MaxTimelines
}

// Names returns the registered names, most recently used first
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]string, 0, r.lru.Len())
	for e := r.lru.Front(); e != nil; e = e.Next() {
		res = append(res, e.Value.(*registryEntry[T]).name)
	}
	return res
}

func (r *Registry[T]) get(
	name string, kind Kind, cons func() Structure[T],
) (Structure[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if elem, ok := r.entries[name]; ok {
		entry := elem.Value.(*registryEntry[T])
		if entry.kind != kind {
			return nil, fmt.Errorf("%w: %q is %s, not %s",
				ErrTimelineKind, name, entry.kind, kind,
			)
		}
		r.lru.MoveToFront(elem)
		return entry.value, nil
	}

	if r.lru.Len() >= r.config.MaxTimelines {
		if !r.config.EvictIdle {
			r.logger.Warn("Timeline rejected",
				zap.String("name", name),
				zap.Int("count", r.lru.Len()),
				zap.Int("max", r.config.MaxTimelines),
			)
			return nil, fmt.Errorf("%w: max %d, current %d",
				ErrCapacityExceeded, r.config.MaxTimelines, r.lru.Len(),
			)
		}
		r.evictLast()
	}

	value := cons()
	if r.arith != nil {
		value.SetTimeArithmetic(r.arith)
	}
	entry := &registryEntry[T]{name: name, kind: kind, value: value}
	r.entries[name] = r.lru.PushFront(entry)

	r.logger.Debug("Timeline created",
		zap.String("name", name),
		zap.String("kind", string(kind)),
		zap.Int("count", r.lru.Len()),
	)
	return value, nil
}

func (r *Registry[T]) evictLast() {
	back := r.lru.Back()
	if back == nil {
		return
	}
	r.lru.Remove(back)
	entry := back.Value.(*registryEntry[T])
	delete(r.entries, entry.name)
	r.logger.Info("Timeline evicted",
		zap.String("name", entry.name),
		zap.String("kind", string(entry.kind)),
	)
}
