package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kode4food/timeline"
)

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, config string, args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", config}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

const rooms = `
name: rooms
mode: exclusive
policy: delay
axis: int
events:
  - {start: "5", end: "10", subject: standup}
  - {start: "6", end: "8", subject: sync}
  - {start: "20", end: "25", subject: retro, active: false}
`

func TestSchedule(t *testing.T) {
	dir := t.TempDir()
	config := writeFile(t, dir, "config.yaml", "verbose: false\n")
	doc := writeFile(t, dir, "rooms.yaml", rooms)

	out, err := execute(t, config, "schedule", doc)
	require.NoError(t, err)
	assert.Equal(t, `rooms (exclusive, delay, int)
  [5, 10] standup
  [10, 12] sync
  [20, 25] retro (inactive)
`, out)
}

func TestQueries(t *testing.T) {
	dir := t.TempDir()
	config := writeFile(t, dir, "config.yaml", "verbose: false\n")
	doc := writeFile(t, dir, "rooms.yaml", rooms)

	t.Run("at", func(t *testing.T) {
		out, err := execute(t, config, "at", doc, "11")
		require.NoError(t, err)
		assert.Equal(t, "rooms at 11\n  [10, 12] sync\n", out)
	})

	t.Run("between", func(t *testing.T) {
		out, err := execute(t, config, "between", doc, "13", "30")
		require.NoError(t, err)
		assert.Equal(t, "rooms between 13 and 30\n  (none)\n", out)

		_, err = execute(t, config, "between", doc, "30", "13")
		assert.ErrorIs(t, err, timeline.ErrInvalidRange)
	})

	t.Run("sweep", func(t *testing.T) {
		out, err := execute(t, config, "sweep", doc)
		require.NoError(t, err)
		assert.Equal(t, `rooms: removed 1 inactive, 2 remaining
  [20, 25] retro (inactive)
`, out)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, config, "at", filepath.Join(dir, "no.yaml"), "1")
		assert.Error(t, err)
	})
}

func TestConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	config := writeFile(t, dir, "config.yaml", "axis: duration\n")
	doc := writeFile(t, dir, "jobs.yaml", `
name: jobs
events:
  - {start: "1h", end: "2h", subject: backup}
  - {duration: "15m", subject: vacuum}
`)

	out, err := execute(t, config, "schedule", doc)
	require.NoError(t, err)
	assert.Equal(t, `jobs (overlap, discard, duration)
  [0s, 15m0s] vacuum
  [1h0m0s, 2h0m0s] backup
`, out)
}
