package document_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kode4food/timeline/internal/document"
)

const rooms = `
name: rooms
mode: exclusive
policy: delay
axis: int
events:
  - {start: "5", end: "10", subject: standup}
  - {duration: "8", subject: review, active: false}
`

func TestParse(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		doc, err := document.Parse([]byte(rooms))
		require.NoError(t, err)
		assert.Equal(t, "rooms", doc.Name)
		assert.Equal(t, document.ModeExclusive, doc.Mode)
		assert.Equal(t, document.PolicyDelay, doc.Policy)
		assert.Equal(t, document.AxisInt, doc.Axis)
		require.Len(t, doc.Events, 2)

		assert.Equal(t, "5", doc.Events[0].Start)
		assert.Equal(t, "standup", doc.Events[0].Subject)
		assert.Nil(t, doc.Events[0].Active)

		assert.Equal(t, "8", doc.Events[1].Duration)
		require.NotNil(t, doc.Events[1].Active)
		assert.False(t, *doc.Events[1].Active)
	})

	t.Run("settings are optional", func(t *testing.T) {
		doc, err := document.Parse([]byte("name: bare\n"))
		require.NoError(t, err)
		assert.Empty(t, doc.Mode)
		assert.Empty(t, doc.Events)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := document.Parse([]byte("mode: overlap\n"))
		assert.ErrorIs(t, err, document.ErrMissingName)
	})

	t.Run("unknown settings", func(t *testing.T) {
		_, err := document.Parse([]byte("name: x\nmode: sideways\n"))
		assert.ErrorIs(t, err, document.ErrUnknownMode)

		_, err = document.Parse([]byte("name: x\npolicy: shove\n"))
		assert.ErrorIs(t, err, document.ErrUnknownPolicy)

		_, err = document.Parse([]byte("name: x\naxis: lunar\n"))
		assert.ErrorIs(t, err, document.ErrUnknownAxis)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := document.Parse([]byte("name: [unclosed\n"))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rooms.yaml")
	require.NoError(t, os.WriteFile(path, []byte(rooms), 0o600))

	doc, err := document.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "rooms", doc.Name)

	_, err = document.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("axis: int\n"), 0o600))
	_, err = document.Load(bad)
	assert.ErrorIs(t, err, document.ErrMissingName)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestWithDefaults(t *testing.T) {
	doc := &document.Document{Name: "x", Axis: document.AxisTime}
	res := doc.WithDefaults(document.DefaultDefaults())

	assert.Equal(t, document.ModeOverlap, res.Mode)
	assert.Equal(t, document.PolicyDiscard, res.Policy)
	assert.Equal(t, document.AxisTime, res.Axis)
	assert.Empty(t, doc.Mode)
}

func TestAxes(t *testing.T) {
	assert.Equal(t, []document.Axis{
		document.AxisInt, document.AxisFloat,
		document.AxisDuration, document.AxisTime,
	}, document.Axes())
}
