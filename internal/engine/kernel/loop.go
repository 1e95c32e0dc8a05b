package kernel

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/vortex/internal/logger"
)

// IdleSleep is how long the loop sleeps when no update step is due.
const IdleSleep = 10 * time.Millisecond

// Clock is the loop's time source.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time        { return time.Now() }
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// App is what the loop drives.
type App interface {
	// Running reports whether the loop should continue.
	Running() bool
	// Update advances the simulation by one fixed step.
	Update() error
	// Render draws one frame.
	Render() error
}

// Loop runs fixed-size update steps and renders after every batch of
// steps.
type Loop struct {
	frameTime time.Duration
	clock     Clock
	log       *zap.Logger
	fps       int
}

// NewLoop returns a loop that updates framerate times per second.
func NewLoop(framerate float64, clock Clock) (*Loop, error) {
	if framerate <= 0 {
		return nil, fmt.Errorf("kernel: framerate must be positive, got %g", framerate)
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Loop{
		frameTime: time.Duration(float64(time.Second) / framerate),
		clock:     clock,
		log:       logger.Named("loop"),
	}, nil
}

// FrameTime returns the length of one update step.
func (l *Loop) FrameTime() time.Duration { return l.frameTime }

// FPS returns the frame count of the last full second.
func (l *Loop) FPS() int { return l.fps }

// Run loops until app stops running, ctx is done, or a step fails.
// Elapsed time is accumulated and consumed in whole steps; a frame is
// rendered only when at least one step ran, otherwise the loop sleeps for
// IdleSleep.
func (l *Loop) Run(ctx context.Context, app App) error {
	var (
		frames      int
		counter     time.Duration
		unprocessed time.Duration
		last        = l.clock.Now()
	)

	l.log.Info("loop started", zap.Duration("frame_time", l.frameTime))
	for app.Running() {
		if err := ctx.Err(); err != nil {
			l.log.Info("loop cancelled", zap.Error(err))
			return nil
		}

		now := l.clock.Now()
		passed := now.Sub(last)
		last = now
		unprocessed += passed
		counter += passed

		render := false
		for unprocessed > l.frameTime {
			render = true
			unprocessed -= l.frameTime

			if err := app.Update(); err != nil {
				return fmt.Errorf("update: %w", err)
			}

			if counter >= time.Second {
				l.fps = frames
				l.log.Info("fps", zap.Int("fps", frames))
				frames = 0
				counter = 0
			}
			if !app.Running() {
				return nil
			}
		}

		if render {
			if err := app.Render(); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			frames++
		} else {
			l.clock.Sleep(IdleSleep)
		}
	}
	return nil
}
