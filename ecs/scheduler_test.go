package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/neonpulse/ecs"
)

type DriftSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *DriftSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for _, item := range s.Entities.Iter() {
		item.Position.X += item.Velocity.DX * float32(frame.Seconds())
		item.Position.Y += item.Velocity.DY * float32(frame.Seconds())
	}
}

type TickSystem struct {
	Counter ecs.Singleton[Counter]
}

func (s *TickSystem) Execute(frame *ecs.UpdateFrame) {
	s.Counter.Get().Ticks++
}

type SpawnerSystem struct {
	Labels ecs.View[struct{ *Label }]
	seen   []int
}

func (s *SpawnerSystem) Execute(frame *ecs.UpdateFrame) {
	n := 0
	for range s.Labels.Iter() {
		n++
	}
	s.seen = append(s.seen, n)
	frame.Commands.Spawn(Label("spawned"))
}

func TestScheduler(t *testing.T) {
	registry := newTestRegistry()

	t.Run("systems run in order with bound fields", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		ecs.NewSingleton(storage, Counter{})
		scheduler := ecs.NewScheduler(storage)

		drift := &DriftSystem{}
		tick := &TickSystem{}
		scheduler.Register(drift)
		scheduler.Register(tick)

		id := storage.Spawn(Position{}, Velocity{DX: 2, DY: 4})

		scheduler.Once(500 * time.Millisecond)
		scheduler.Once(500 * time.Millisecond)

		if drift.ExecuteCount != 2 {
			t.Errorf("expected DriftSystem to execute twice, got %d", drift.ExecuteCount)
		}
		if got := tick.Counter.Get().Ticks; got != 2 {
			t.Errorf("expected 2 ticks, got %d", got)
		}

		pos := ecs.ReadComponent[Position](storage, id)
		if pos.X != 2 || pos.Y != 4 {
			t.Errorf("expected position (2, 4), got (%v, %v)", pos.X, pos.Y)
		}
	})

	t.Run("commands flush after the frame", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)
		spawner := &SpawnerSystem{}
		scheduler.Register(spawner)

		scheduler.Once(0)
		scheduler.Once(0)
		scheduler.Once(0)

		want := []int{0, 1, 2}
		for i, n := range spawner.seen {
			if n != want[i] {
				t.Errorf("frame %d: expected %d labels, got %d", i, want[i], n)
			}
		}
	})

	t.Run("stats", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&DriftSystem{})
		scheduler.RegisterNamed("noop", ecs.SystemFunc(func(*ecs.UpdateFrame) {}))

		for range 5 {
			scheduler.Once(time.Millisecond)
		}

		stats := scheduler.GetStats()
		if stats.SystemCount != 2 {
			t.Fatalf("expected 2 systems, got %d", stats.SystemCount)
		}
		if stats.TotalExecutions != 10 {
			t.Errorf("expected 10 executions, got %d", stats.TotalExecutions)
		}
		if stats.Systems[0].Name != "DriftSystem" || stats.Systems[1].Name != "noop" {
			t.Errorf("unexpected names %q, %q", stats.Systems[0].Name, stats.Systems[1].Name)
		}
		for _, sys := range stats.Systems {
			if sys.MinDuration > sys.MaxDuration {
				t.Errorf("%s: min %v > max %v", sys.Name, sys.MinDuration, sys.MaxDuration)
			}
			if sys.AvgDuration != sys.TotalDuration/5 {
				t.Errorf("%s: avg %v does not match total %v", sys.Name, sys.AvgDuration, sys.TotalDuration)
			}
		}
	})

	t.Run("run stops on cancel", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		ecs.NewSingleton(storage, Counter{})
		scheduler := ecs.NewScheduler(storage)
		tick := &TickSystem{}
		scheduler.Register(tick)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		done := make(chan struct{})
		go func() {
			scheduler.Run(ctx, 5*time.Millisecond)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Run did not return after cancellation")
		}
		if tick.Counter.Get().Ticks == 0 {
			t.Error("expected at least one tick")
		}
	})
}
