package debugui

import "github.com/plus3/neonpulse/ecs"

func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Panel](registry)
}

// SpawnPerformancePanel adds the performance window and returns it so the
// caller can Track schedulers created later.
func SpawnPerformancePanel(storage *ecs.Storage, historyFrames int) *PerformanceStats {
	stats := NewPerformanceStats(storage, historyFrames)
	storage.Spawn(Panel{Title: "Performance", Render: stats.Render})
	return stats
}
