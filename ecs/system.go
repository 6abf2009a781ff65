package ecs

// System is one step of a frame. Query and Singleton fields on the
// implementing struct are bound by the Scheduler; other fields keep their
// values between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
