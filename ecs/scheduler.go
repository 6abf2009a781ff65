package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// SchedulerStats reports execution timings for every registered system.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemEntry struct {
	system System
	stats  SystemStats
}

// Scheduler runs systems in registration order against one Storage and
// flushes the frame's Commands afterwards.
type Scheduler struct {
	storage  *Storage
	systems  []*systemEntry
	commands Commands
}

func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// Register binds the system's Query and Singleton fields and appends it to
// the run order.
func (s *Scheduler) Register(system System) {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	s.RegisterNamed(t.Name(), system)
}

// RegisterNamed is Register with an explicit name for the stats table.
func (s *Scheduler) RegisterNamed(name string, system System) {
	s.bindFields(system)
	s.systems = append(s.systems, &systemEntry{
		system: system,
		stats:  SystemStats{Name: name},
	})
}

func (s *Scheduler) bindFields(system System) {
	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}

	for i := range v.NumField() {
		field := v.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}
		name := field.Type().Name()
		if !strings.HasPrefix(name, "Query[") && !strings.HasPrefix(name, "Singleton[") &&
			!strings.HasPrefix(name, "View[") {
			continue
		}
		init := field.Addr().MethodByName("Init")
		if !init.IsValid() {
			panic("ecs: Init method not found on field " + v.Type().Field(i).Name)
		}
		init.Call([]reflect.Value{reflect.ValueOf(s.storage)})
	}
}

// Once runs every system once with the given frame delta.
func (s *Scheduler) Once(dt time.Duration) {
	frame := &UpdateFrame{
		DeltaTime: dt,
		Commands:  &s.commands,
		Storage:   s.storage,
	}

	for _, entry := range s.systems {
		start := time.Now()
		entry.system.Execute(frame)
		entry.record(time.Since(start))
	}

	s.commands.Flush(s.storage)
}

func (e *systemEntry) record(d time.Duration) {
	st := &e.stats
	if st.ExecutionCount == 0 || d < st.MinDuration {
		st.MinDuration = d
	}
	if d > st.MaxDuration {
		st.MaxDuration = d
	}
	st.ExecutionCount++
	st.LastDuration = d
	st.TotalDuration += d
}

// Run calls Once at the given interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Once(now.Sub(last))
			last = now
		}
	}
}

func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}
	for i, entry := range s.systems {
		st := entry.stats
		if st.ExecutionCount > 0 {
			st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
		}
		stats.Systems[i] = st
		stats.TotalExecutions += st.ExecutionCount
	}
	return stats
}
