package scheduler

import "time"

// Clock abstracts wall-clock reads and one-shot timers so the engine can run
// against a fake clock in tests instead of real timers.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable one-shot timer handle.
type Timer interface {
	// Stop cancels the timer. It reports false if the timer already fired
	// or was stopped.
	Stop() bool
}

type realClock struct{}

// NewClock returns the system clock.
func NewClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
