package timeline

type (
	// Config controls a Registry
	Config struct {
		// MaxTimelines bounds how many named timelines may exist at once
		MaxTimelines int

		// EvictIdle makes a full Registry drop its least recently used
		// timeline to make room, instead of failing with
		// ErrCapacityExceeded
		EvictIdle bool
	}
)

const (
	DefaultMaxTimelines = 3
	DefaultEvictIdle    = false
)

func DefaultConfig() Config {
	return Config{
		MaxTimelines: DefaultMaxTimelines,
		EvictIdle:    DefaultEvictIdle,
	}
}
