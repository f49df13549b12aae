package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-celestial/pkg/config"
	"github.com/opd-ai/go-celestial/pkg/entity"
	"github.com/opd-ai/go-celestial/pkg/event"
	"github.com/opd-ai/go-celestial/pkg/physics"
	"github.com/opd-ai/go-celestial/pkg/render"
)

// recorder is a goroutine-safe Sink that keeps everything it receives.
type recorder struct {
	mu     sync.Mutex
	log    []any
	frames int
}

func (r *recorder) Reset(s render.Scene) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log = append(r.log, s)
}

func (r *recorder) Update(f render.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log = append(r.log, f)
	r.frames++
}

func (r *recorder) Report(s render.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log = append(r.log, s)
}

func (r *recorder) snapshot() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]any(nil), r.log...)
}

func earthLaunch() physics.Parameters {
	return physics.Parameters{
		Planet:             "Earth",
		InitialSpeed:       24,
		LaunchAngleDegrees: 45,
		Mass:               1,
		Friction:           0.01,
		Volume:             1,
		Gravity:            9.8,
	}
}

func unpaced() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Display.TickRate = 0
	return cfg
}

func TestSceneFor(t *testing.T) {
	earth, _ := entity.LookupPlanet("Earth")
	scene := SceneFor(earthLaunch(), earth)

	assert.Equal(t, physics.MinGroundLength, scene.GroundLength)
	assert.Equal(t, physics.Vector2D{X: 25, Y: 2}, scene.CameraCenter)
	assert.InDelta(t, 0.620, scene.BallRadius, 0.001)

	moon, _ := entity.LookupPlanet("Moon")
	p := earthLaunch()
	p.Gravity = moon.Gravity
	scene = SceneFor(p, moon)
	assert.InDelta(t, 1.5*24*24/1.62, scene.GroundLength, 1e-9)

	p.InitialSpeed = 1e308
	p.Gravity = 1e-308
	scene = SceneFor(p, moon)
	assert.Equal(t, physics.MinGroundLength, scene.GroundLength)
}

func TestSimulator_RunReportsDistance(t *testing.T) {
	rec := &recorder{}
	sim := NewSimulator(unpaced(), rec, nil, nil)

	sum, err := sim.Run(context.Background(), earthLaunch())
	require.NoError(t, err)

	want := physics.Simulate(earthLaunch())
	assert.Equal(t, want.Distance, sum.Distance)
	assert.Equal(t, want.Steps, sum.Steps)
	assert.Equal(t, want.FlightTime, sum.FlightTime)
	assert.Equal(t, want.MaxHeight, sum.MaxHeight)
	assert.Equal(t, Fingerprint(earthLaunch()), sum.Fingerprint)
	assert.Equal(t, render.FormatDistance(want.Distance), sum.Text)
	assert.InEpsilon(t, 58.78, sum.Distance, 0.01)

	log := rec.snapshot()
	require.Len(t, log, want.Steps+2)
	scene, ok := log[0].(render.Scene)
	require.True(t, ok)
	assert.Equal(t, sum.RunID, scene.RunID)
	assert.Equal(t, "Earth", scene.Planet.Name)

	first := log[1].(render.Frame)
	assert.Equal(t, 1, first.Step)
	assert.Equal(t, first.State.Position.X+10, first.Focus.X)
	assert.Equal(t, 2.0, first.Focus.Y)

	assert.Equal(t, sum, log[len(log)-1].(render.Summary))

	id, running := sim.Active()
	assert.Equal(t, sum.RunID, id)
	assert.False(t, running)
}

func TestSimulator_UnknownPlanet(t *testing.T) {
	sim := NewSimulator(unpaced(), &recorder{}, nil, nil)
	p := earthLaunch()
	p.Planet = "Pluto"

	_, err := sim.Start(context.Background(), p)
	assert.ErrorIs(t, err, entity.ErrUnknownPlanet)
}

func TestSimulator_DegenerateLaunch(t *testing.T) {
	sim := NewSimulator(unpaced(), &recorder{}, nil, nil)
	p := earthLaunch()
	p.InitialSpeed = 0

	sum, err := sim.Run(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sum.Distance)
	assert.Equal(t, 1, sum.Steps)
	assert.Equal(t, "Total Distance: 0.00 meters", sum.Text)
}

func TestSimulator_StartSupersedesActiveRun(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Display.TickRate = 200
	rec := &recorder{}
	bus := event.NewEventBus()
	cancelled := make(chan string, 1)
	bus.Subscribe(event.SimulationCancelled, func(e event.Event) {
		cancelled <- e.(*event.RunEvent).RunID
	})
	sim := NewSimulator(cfg, rec, bus, nil)

	first, err := sim.Start(context.Background(), earthLaunch())
	require.NoError(t, err)
	time.Sleep(30 * time.Millisecond)

	moon := earthLaunch()
	moon.Planet = "Moon"
	moon.Gravity = 1.62
	second, err := sim.Start(context.Background(), moon)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	_, err = sim.Wait(first)
	assert.ErrorIs(t, err, ErrNoActiveRun)

	select {
	case id := <-cancelled:
		assert.Equal(t, first, id)
	case <-time.After(2 * time.Second):
		t.Fatal("superseded run was not cancelled")
	}

	require.NoError(t, sim.Stop())
	_, err = sim.Wait(second)
	assert.ErrorIs(t, err, context.Canceled)

	// Nothing from the first run may follow the second run's scene.
	seenSecond := false
	for _, m := range rec.snapshot() {
		switch v := m.(type) {
		case render.Scene:
			seenSecond = v.RunID == second
		case render.Frame:
			if seenSecond {
				assert.Equal(t, second, v.RunID)
			}
		case render.Summary:
			t.Errorf("unexpected report for %s", v.RunID)
		}
	}
	assert.True(t, seenSecond)
}

func TestSimulator_StopWithoutRun(t *testing.T) {
	sim := NewSimulator(unpaced(), &recorder{}, nil, nil)
	assert.True(t, errors.Is(sim.Stop(), ErrNoActiveRun))

	_, err := sim.Run(context.Background(), earthLaunch())
	require.NoError(t, err)
	assert.ErrorIs(t, sim.Stop(), ErrNoActiveRun)

	_, running := sim.Active()
	assert.False(t, running)
}

func TestSimulator_CancelledContext(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Display.TickRate = 100
	rec := &recorder{}
	sim := NewSimulator(cfg, rec, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := sim.Run(ctx, earthLaunch())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulator_PublishesLifecycle(t *testing.T) {
	bus := event.NewEventBus()
	var mu sync.Mutex
	var types []event.Type
	steps := 0
	record := func(e event.Event) {
		mu.Lock()
		defer mu.Unlock()
		if e.GetType() == event.SimulationStep {
			steps++
			return
		}
		types = append(types, e.GetType())
	}
	bus.Subscribe(event.SimulationStarted, record)
	bus.Subscribe(event.SimulationStep, record)
	bus.Subscribe(event.SimulationFinished, record)

	sim := NewSimulator(unpaced(), &recorder{}, bus, nil)
	sum, err := sim.Run(context.Background(), earthLaunch())
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []event.Type{event.SimulationStarted, event.SimulationFinished}, types)
	assert.Equal(t, sum.Steps, steps)
}

func TestFingerprint_Deterministic(t *testing.T) {
	a := Fingerprint(earthLaunch())
	b := Fingerprint(earthLaunch())
	assert.Equal(t, a, b)

	p := earthLaunch()
	p.LaunchAngleDegrees = 46
	assert.NotEqual(t, a, Fingerprint(p))
}
