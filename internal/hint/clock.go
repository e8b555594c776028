package hint

import "time"

// Clock schedules callbacks after a delay. The real implementation wraps
// time.AfterFunc; tests substitute a manual clock so the idle machine can
// be driven without sleeping.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a cancelable scheduled callback. Stop is a safe no-op on timers
// that already fired or were already stopped.
type Timer interface {
	Stop()
}

// SystemClock returns the wall-clock implementation.
func SystemClock() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return systemTimer{time.AfterFunc(d, fn)}
}

type systemTimer struct {
	t *time.Timer
}

func (st systemTimer) Stop() {
	st.t.Stop()
}
