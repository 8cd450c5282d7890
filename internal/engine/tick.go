// The tick loop driving the simulation from wall-clock time.
package engine

import (
	"log/slog"
	"time"
)

// Loop invokes the per-tick callback at a paced interval.
type Loop struct {
	Tick     uint64        // current tick counter (monotonic, never resets)
	Speed    float64       // multiplier: 1.0 = real-time, 0 = paused
	Interval time.Duration // base tick interval
	Running  bool

	OnTick func(tick uint64)
}

// NewLoop creates a tick loop with default pacing.
func NewLoop() *Loop {
	return &Loop{
		Speed:    1.0,
		Interval: 250 * time.Millisecond,
	}
}

// Run starts the loop. Blocks until Stop is called.
func (l *Loop) Run() {
	l.Running = true
	slog.Info("tick loop started", "tick", l.Tick, "speed", l.Speed)

	for l.Running {
		if l.Speed <= 0 {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()

		l.Tick++
		if l.OnTick != nil {
			l.OnTick(l.Tick)
		}

		elapsed := time.Since(start)
		target := time.Duration(float64(l.Interval) / l.Speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("tick loop stopped", "tick", l.Tick)
}

// Stop halts the loop after the current tick completes.
func (l *Loop) Stop() {
	l.Running = false
}
