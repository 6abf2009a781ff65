package ecs_test

import "github.com/plus3/neonpulse/ecs"

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Glow struct {
	Hue float32
}

type Label string

type Counter struct {
	Ticks int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Glow](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[int](registry)
	return registry
}
