package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/neonpulse/ecs"
)

// History is a fixed-size ring of samples for plotting.
type History struct {
	samples []float32
	offset  int
	count   int
}

func NewHistory(size int) *History {
	return &History{samples: make([]float32, max(size, 1))}
}

func (h *History) Push(v float32) {
	h.samples[h.offset] = v
	h.offset = (h.offset + 1) % len(h.samples)
	h.count = min(h.count+1, len(h.samples))
}

// Ordered copies the samples oldest-first into dst, which must hold Len
// values.
func (h *History) Ordered(dst []float32) []float32 {
	dst = dst[:0]
	dst = append(dst, h.samples[h.offset:]...)
	return append(dst, h.samples[:h.offset]...)
}

func (h *History) Len() int {
	return len(h.samples)
}

// Mean averages the samples pushed so far.
func (h *History) Mean() float32 {
	if h.count == 0 {
		return 0
	}
	var sum float32
	for _, v := range h.samples {
		sum += v
	}
	return sum / float32(h.count)
}

// PerformanceStats renders frame times, per-system timings and storage
// layout for a set of schedulers sharing one storage.
type PerformanceStats struct {
	storage    *ecs.Storage
	schedulers map[string]*ecs.Scheduler
	order      []string
	frames     *History
	plot       []float32
	last       time.Time
}

func NewPerformanceStats(storage *ecs.Storage, historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		storage:    storage,
		schedulers: make(map[string]*ecs.Scheduler),
		frames:     NewHistory(historyFrames),
	}
}

// Track adds a scheduler's systems to the timing table under name.
func (ps *PerformanceStats) Track(name string, scheduler *ecs.Scheduler) {
	if _, ok := ps.schedulers[name]; !ok {
		ps.order = append(ps.order, name)
	}
	ps.schedulers[name] = scheduler
}

// Sample records the time since the previous Sample call.
func (ps *PerformanceStats) Sample(now time.Time) {
	if !ps.last.IsZero() {
		ps.frames.Push(float32(now.Sub(ps.last).Seconds() * 1000))
	}
	ps.last = now
}

func (ps *PerformanceStats) Render() {
	ps.Sample(time.Now())

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 420), imgui.CondOnce)
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := ps.storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	avg := ps.frames.Mean()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	ps.plot = ps.frames.Ordered(ps.plot)
	imgui.PlotLinesFloatPtr("##frametime", &ps.plot[0], int32(len(ps.plot)))

	for _, name := range ps.order {
		if imgui.TreeNodeStr(name + " systems") {
			systemTable(name, ps.schedulers[name].GetStats())
			imgui.TreePop()
		}
	}

	if imgui.TreeNodeStr("Archetype Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ArchStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entities")
			imgui.TableHeadersRow()

			for _, arch := range stats.ArchetypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", arch.ID))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprint(arch.ComponentTypes))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singleton Details") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func systemTable(id string, stats *ecs.SchedulerStats) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV(id+"##systems", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("System")
	imgui.TableSetupColumn("Last")
	imgui.TableSetupColumn("Avg")
	imgui.TableSetupColumn("Max")
	imgui.TableHeadersRow()

	for _, sys := range stats.Systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(sys.Name)
		imgui.TableNextColumn()
		imgui.Text(sys.LastDuration.String())
		imgui.TableNextColumn()
		imgui.Text(sys.AvgDuration.String())
		imgui.TableNextColumn()
		imgui.Text(sys.MaxDuration.String())
	}
	imgui.EndTable()
}
