package timeline_test

import (
	"cmp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kode4food/timeline"
)

func TestDefaultConfig(t *testing.T) {
	cfg := timeline.DefaultConfig()
	assert.Equal(t, timeline.DefaultMaxTimelines, cfg.MaxTimelines)
	assert.False(t, cfg.EvictIdle)
}

func TestNewRegistry(t *testing.T) {
	t.Run("non-positive capacity", func(t *testing.T) {
		_, err := timeline.NewRegistry(
			timeline.Config{}, cmp.Compare[int],
		)
		assert.ErrorIs(t, err, timeline.ErrInvalidArgument)
	})

	t.Run("missing comparator", func(t *testing.T) {
		_, err := timeline.NewRegistry[int](timeline.DefaultConfig(), nil)
		assert.ErrorIs(t, err, timeline.ErrInvalidArgument)
	})

	t.Run("defaults", func(t *testing.T) {
		reg, err := timeline.NewRegistry(
			timeline.DefaultConfig(), cmp.Compare[int],
		)
		require.NoError(t, err)
		assert.Equal(t, 3, reg.MaxTimelines())
		assert.Equal(t, 0, reg.Len())
		assert.Empty(t, reg.Names())
	})
}

func TestRegistryLookup(t *testing.T) {
	reg, err := timeline.NewRegistry(
		timeline.DefaultConfig(), cmp.Compare[int],
	)
	require.NoError(t, err)

	ov, err := reg.Overlapping("rooms")
	require.NoError(t, err)
	again, err := reg.Overlapping("rooms")
	assert.NoError(t, err)
	assert.Same(t, ov, again)

	ex, err := reg.Exclusive("desks")
	require.NoError(t, err)
	assert.NotNil(t, ex)
	assert.Equal(t, 2, reg.Len())

	t.Run("kind mismatch", func(t *testing.T) {
		_, err := reg.Exclusive("rooms")
		assert.ErrorIs(t, err, timeline.ErrTimelineKind)
		_, err = reg.Overlapping("desks")
		assert.ErrorIs(t, err, timeline.ErrTimelineKind)
	})

	t.Run("lookup does not create", func(t *testing.T) {
		v, kind, ok := reg.Lookup("desks")
		assert.True(t, ok)
		assert.Equal(t, timeline.KindExclusive, kind)
		assert.Equal(t, timeline.Structure[int](ex), v)

		_, _, ok = reg.Lookup("missing")
		assert.False(t, ok)
		assert.Equal(t, 2, reg.Len())
	})

	t.Run("names are most recent first", func(t *testing.T) {
		assert.Equal(t, []string{"desks", "rooms"}, reg.Names())
		_, err := reg.Overlapping("rooms")
		assert.NoError(t, err)
		assert.Equal(t, []string{"rooms", "desks"}, reg.Names())
	})

	t.Run("remove", func(t *testing.T) {
		assert.True(t, reg.Remove("rooms"))
		assert.False(t, reg.Remove("rooms"))
		assert.Equal(t, []string{"desks"}, reg.Names())
	})

	t.Run("clear", func(t *testing.T) {
		reg.Clear()
		assert.Equal(t, 0, reg.Len())
		_, _, ok := reg.Lookup("desks")
		assert.False(t, ok)
	})
}

func TestRegistryCapacity(t *testing.T) {
	t.Run("rejects past capacity", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		reg, err := timeline.NewRegistry(
			timeline.Config{MaxTimelines: 2}, cmp.Compare[int],
			timeline.WithLogger[int](zap.New(core)),
		)
		require.NoError(t, err)

		_, err = reg.Overlapping("a")
		assert.NoError(t, err)
		_, err = reg.Exclusive("b")
		assert.NoError(t, err)
		_, err = reg.Overlapping("c")
		assert.ErrorIs(t, err, timeline.ErrCapacityExceeded)
		assert.Contains(t, err.Error(), "max 2, current 2")
		assert.Equal(t, 2, reg.Len())

		// existing names are still served when full
		_, err = reg.Overlapping("a")
		assert.NoError(t, err)

		assert.Equal(t, 2, logs.FilterMessage("Timeline created").Len())
		rejected := logs.FilterMessage("Timeline rejected").All()
		require.Len(t, rejected, 1)
		assert.Equal(t, "c", rejected[0].ContextMap()["name"])
		assert.Equal(t, int64(2), rejected[0].ContextMap()["max"])
	})

	t.Run("removal frees a slot", func(t *testing.T) {
		reg, err := timeline.NewRegistry(
			timeline.Config{MaxTimelines: 1}, cmp.Compare[int],
		)
		require.NoError(t, err)
		_, err = reg.Overlapping("a")
		assert.NoError(t, err)
		assert.True(t, reg.Remove("a"))
		_, err = reg.Overlapping("b")
		assert.NoError(t, err)
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		reg, err := timeline.NewRegistry(
			timeline.Config{MaxTimelines: 2, EvictIdle: true},
			cmp.Compare[int],
			timeline.WithLogger[int](zap.New(core)),
		)
		require.NoError(t, err)

		_, err = reg.Overlapping("a")
		assert.NoError(t, err)
		_, err = reg.Overlapping("b")
		assert.NoError(t, err)
		_, err = reg.Overlapping("a")
		assert.NoError(t, err)
		_, err = reg.Exclusive("c")
		assert.NoError(t, err)

		assert.Equal(t, []string{"c", "a"}, reg.Names())
		evicted := logs.FilterMessage("Timeline evicted").All()
		require.Len(t, evicted, 1)
		assert.Equal(t, "b", evicted[0].ContextMap()["name"])
		assert.Equal(t, 0, logs.FilterMessage("Timeline created").Len())
	})
}

func TestRegistryArithmetic(t *testing.T) {
	reg, err := timeline.NewRegistry(
		timeline.DefaultConfig(), cmp.Compare[int],
		timeline.WithArithmetic[int](timeline.Numeric[int]{}),
	)
	require.NoError(t, err)

	ex, err := reg.Exclusive("jobs")
	require.NoError(t, err)
	assert.Equal(t,
		timeline.Arithmetic[int](timeline.Numeric[int]{}), ex.TimeArithmetic(),
	)

	ev := timeline.NewDurationEvent(4, "build")
	assert.NoError(t, ex.AddEvent(ev))
	s, ok := ev.Span()
	assert.True(t, ok)
	assert.Equal(t, timeline.Span[int]{Start: 0, End: 4}, s)
}
