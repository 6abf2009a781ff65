package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/plus3/neonpulse/ecs"
	"github.com/plus3/neonpulse/play"
)

type Report struct {
	// Configuration
	Duration       time.Duration
	Step           time.Duration
	Seed           uint64
	GCPauseMetrics bool

	// Results
	Frames        int64
	TotalTime     time.Duration
	UpdateTime    Stats
	Session       play.Session
	Systems       []ecs.SystemStats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]
	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// SimulatedTime is the game time covered by the run.
func (r *Report) SimulatedTime() time.Duration {
	return time.Duration(r.Frames) * r.Step
}

// Lines totals the rows cleared across every game.
func (r *Report) Lines() int {
	lines := 0
	for n, count := range r.Session.Clears {
		lines += n * count
	}
	return lines
}

const reportTemplate = `# NEON PULSE Soak Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Frame Step:** {{.Step}}
- **Seed:** {{.Seed}}

## Play
- **Games:** {{.Session.Games}}
- **Locks:** {{comma .Session.Locks}}
- **Lines:** {{comma .Lines}}
- **Max Level:** {{.Session.MaxLevel}}
- **Clears:** single {{index .Session.Clears 1}}, double {{index .Session.Clears 2}}, triple {{index .Session.Clears 3}}, tetris {{index .Session.Clears 4}}
- **Final Score:** {{comma .Session.Snapshot.Score}} ({{.Session.Snapshot.Phase}})

## Performance
- **Frames:** {{comma .Frames}} covering {{.SimulatedTime}} of game time in {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Systems
{{range .Systems}}- {{.Name}}: avg {{.AvgDuration}}, max {{.MaxDuration}} over {{comma .ExecutionCount}} runs
{{end}}
## Memory
- Heap Alloc:  {{bytes .MemStatsStart.HeapAlloc}} (start) -> {{bytes .MemStatsEnd.HeapAlloc}} (end)
- Total Alloc: {{bytes (usub64 .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}} during the run
- Sys Memory:  {{bytes .MemStatsStart.Sys}} (start) -> {{bytes .MemStatsEnd.Sys}} (end)
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{ns (usub64 .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs)}}
{{end}}`

var reportFuncs = template.FuncMap{
	"comma": func(v any) string {
		switch n := v.(type) {
		case int:
			return humanize.Comma(int64(n))
		case int64:
			return humanize.Comma(n)
		default:
			return "N/A"
		}
	},
	"bytes": humanize.Bytes,
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"usub64": func(a, b uint64) uint64 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
}

var reportTmpl = template.Must(template.New("report").Funcs(reportFuncs).Parse(reportTemplate))

func (r *Report) Generate(w io.Writer) error {
	return reportTmpl.Execute(w, r)
}
