package ecs

import "time"

// UpdateFrame is handed to every system during one Scheduler pass.
type UpdateFrame struct {
	DeltaTime time.Duration
	Commands  *Commands
	Storage   *Storage
}

// Seconds is DeltaTime as fractional seconds.
func (f *UpdateFrame) Seconds() float64 {
	return f.DeltaTime.Seconds()
}
