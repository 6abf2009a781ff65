package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/neonpulse/ecs"
	"github.com/plus3/neonpulse/play"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 5 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 5*time.Millisecond, s.Max)
	assert.Equal(t, 3*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration:       time.Second,
		Step:           10 * time.Millisecond,
		Seed:           9,
		Frames:         1500,
		GCPauseMetrics: true,
		Session: play.Session{
			Games:    3,
			Locks:    1234,
			MaxLevel: 4,
			Clears:   [5]int{1000, 20, 5, 2, 1},
		},
		Systems: []ecs.SystemStats{{Name: "BotSystem", ExecutionCount: 1500, AvgDuration: time.Microsecond}},
	}
	assert.Equal(t, 15*time.Second, r.SimulatedTime())
	assert.Equal(t, 20+10+6+4, r.Lines())

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "**Games:** 3")
	assert.Contains(t, out, "**Locks:** 1,234")
	assert.Contains(t, out, "**Lines:** 40")
	assert.Contains(t, out, "single 20, double 5, triple 2, tetris 1")
	assert.Contains(t, out, "1,500 covering 15s of game time")
	assert.Contains(t, out, "- BotSystem: avg 1µs")
	assert.Contains(t, out, "GC Pause Durations")
}
