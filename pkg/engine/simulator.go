// pkg/engine/simulator.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/opd-ai/go-celestial/pkg/config"
	"github.com/opd-ai/go-celestial/pkg/entity"
	"github.com/opd-ai/go-celestial/pkg/event"
	"github.com/opd-ai/go-celestial/pkg/logging"
	"github.com/opd-ai/go-celestial/pkg/physics"
	"github.com/opd-ai/go-celestial/pkg/render"
)

// ErrNoActiveRun is returned when an operation needs a run that does not exist.
var ErrNoActiveRun = errors.New("no active run")

// Simulator owns the single active run. Starting a run cancels the previous
// one; a superseded run never reaches the sink again.
//
// Sink methods are called with the simulator lock held and must not call
// back into the Simulator. Bus handlers run without the lock.
type Simulator struct {
	cfg    *config.Config
	sink   render.Sink
	bus    *event.Bus
	logger *logging.Logger

	mu         sync.Mutex
	generation uint64
	active     *run
}

type run struct {
	id      string
	gen     uint64
	cancel  context.CancelFunc
	done    chan struct{}
	summary render.Summary
	err     error
}

// NewSimulator creates a simulator. A nil sink, bus or logger is allowed.
func NewSimulator(cfg *config.Config, sink render.Sink, bus *event.Bus, logger *logging.Logger) *Simulator {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if sink == nil {
		sink = render.NewNullRenderer(logger)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Simulator{
		cfg:    cfg,
		sink:   sink,
		bus:    bus,
		logger: logger,
	}
}

// SceneFor lays out the scenery of a run of p.
func SceneFor(p physics.Parameters, planet entity.Planet) render.Scene {
	ground := physics.GroundLength(physics.EstimatedRange(p.InitialSpeed, p.LaunchAngleDegrees, p.Gravity))
	if math.IsNaN(ground) || math.IsInf(ground, 0) {
		ground = physics.MinGroundLength
	}
	return render.Scene{
		Planet:       planet,
		BallRadius:   physics.BallRadius(p.Volume),
		GroundLength: ground,
		CameraCenter: physics.Vector2D{X: ground / 4, Y: 2},
	}
}

func (s *Simulator) offset() physics.Vector2D {
	return physics.Vector2D{X: s.cfg.Camera.OffsetX, Y: s.cfg.Camera.OffsetY}
}

func (s *Simulator) interval() time.Duration {
	rate := s.cfg.Display.TickRate
	if rate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / rate)
}

// Start launches a run of p in the background and returns its ID. Any
// active run is cancelled first.
func (s *Simulator) Start(ctx context.Context, p physics.Parameters) (string, error) {
	r, err := s.start(ctx, p)
	if err != nil {
		return "", err
	}
	return r.id, nil
}

func (s *Simulator) start(ctx context.Context, p physics.Parameters) (*run, error) {
	planet, err := entity.LookupPlanet(p.Planet)
	if err != nil {
		return nil, logging.WrapError(err, "start run")
	}

	r := &run{
		id:   logging.NewRunID(),
		done: make(chan struct{}),
	}
	runCtx, cancel := context.WithCancel(logging.WithRunID(ctx, r.id))
	r.cancel = cancel

	scene := SceneFor(p, planet)
	scene.RunID = r.id

	s.mu.Lock()
	if s.active != nil {
		s.active.cancel()
	}
	s.generation++
	r.gen = s.generation
	s.active = r
	s.sink.Reset(scene)
	s.mu.Unlock()

	s.logger.Info(runCtx, "simulation started",
		"planet", p.Planet,
		"velocity", p.InitialSpeed,
		"angle", p.LaunchAngleDegrees,
		"step_bound", physics.StepBound(p),
	)
	s.publish(event.NewRunEvent(event.SimulationStarted, s, r.id, p))

	go s.execute(runCtx, r, p)
	return r, nil
}

// emit calls fn under the lock if gen is still the current run.
func (s *Simulator) emit(gen uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	fn()
	return true
}

func (s *Simulator) execute(ctx context.Context, r *run, p physics.Parameters) {
	defer close(r.done)
	defer r.cancel()

	sum, err := drive(ctx, r.id, p, s.interval(), s.offset(), func(f render.Frame) bool {
		if !s.emit(r.gen, func() { s.sink.Update(f) }) {
			return false
		}
		s.publish(event.NewStepEvent(s, r.id, f.State))
		return true
	})
	if err == nil && !s.emit(r.gen, func() { s.sink.Report(sum) }) {
		err = context.Canceled
	}

	r.summary, r.err = sum, err
	if err != nil {
		s.logger.Info(ctx, "simulation cancelled", "steps", sum.Steps)
		s.publish(event.NewRunEvent(event.SimulationCancelled, s, r.id, p))
		return
	}
	s.logger.Info(ctx, "simulation finished",
		"distance", sum.Distance,
		"steps", sum.Steps,
		"flight_time", sum.FlightTime,
	)
	s.publish(event.NewFinishedEvent(s, r.id, sum.Planet, sum.Distance, sum.Steps))
}

// drive steps a run of p, pacing by interval when it is positive, and hands
// every state to emit. It stops early when ctx ends or emit returns false.
func drive(ctx context.Context, id string, p physics.Parameters, interval time.Duration, offset physics.Vector2D, emit func(render.Frame) bool) (render.Summary, error) {
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	it := physics.NewIntegrator(p)
	fp := newFingerprint()
	sum := render.Summary{RunID: id, Planet: p.Planet}

	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return sum, ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return sum, err
		}

		st, ok := it.Next()
		if !ok {
			break
		}
		fp.add(st)
		sum.Steps = it.Steps()
		sum.FlightTime = st.Time
		sum.MaxHeight = math.Max(sum.MaxHeight, st.Position.Y)

		frame := render.Frame{
			RunID: id,
			Step:  st.Step,
			State: st,
			Focus: physics.FocusPoint(st.Position, offset),
		}
		if emit != nil && !emit(frame) {
			return sum, context.Canceled
		}
	}

	sum.Distance = it.Distance()
	sum.Fingerprint = fp.sum()
	sum.Text = render.FormatDistance(sum.Distance)
	return sum, nil
}

// Wait blocks until run id ends and returns its summary. It fails with
// ErrNoActiveRun when id is not the most recent run.
func (s *Simulator) Wait(id string) (render.Summary, error) {
	s.mu.Lock()
	r := s.active
	s.mu.Unlock()
	if r == nil || r.id != id {
		return render.Summary{}, fmt.Errorf("%w: %s", ErrNoActiveRun, id)
	}
	<-r.done
	return r.summary, r.err
}

// Stop cancels the active run and waits for it to end.
func (s *Simulator) Stop() error {
	s.mu.Lock()
	r := s.active
	s.mu.Unlock()
	if r == nil {
		return ErrNoActiveRun
	}
	select {
	case <-r.done:
		return ErrNoActiveRun
	default:
	}
	r.cancel()
	<-r.done
	return nil
}

// Active returns the ID of the most recent run and whether it is still running.
func (s *Simulator) Active() (string, bool) {
	s.mu.Lock()
	r := s.active
	s.mu.Unlock()
	if r == nil {
		return "", false
	}
	select {
	case <-r.done:
		return r.id, false
	default:
		return r.id, true
	}
}

// Run starts a run of p and waits for it.
func (s *Simulator) Run(ctx context.Context, p physics.Parameters) (render.Summary, error) {
	r, err := s.start(ctx, p)
	if err != nil {
		return render.Summary{}, err
	}
	<-r.done
	return r.summary, r.err
}

func (s *Simulator) publish(e event.Event) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}
