// pkg/physics/projectile.go
package physics

import (
	"iter"
	"math"
)

// Integration constants. TimeStep is fixed; the settle thresholds treat
// near-zero height and speed as rest so the loop cannot oscillate forever.
const (
	TimeStep     = 0.01 // seconds
	SettleHeight = 0.01 // meters
	SettleSpeed  = 0.05 // m/s
)

// Parameters is the immutable snapshot a run is started from.
// Mass and Friction are carried for display only; the integrator ignores them.
type Parameters struct {
	Planet             string
	InitialSpeed       float64 // m/s
	LaunchAngleDegrees float64
	Mass               float64 // kg
	Friction           float64
	Volume             float64 // m³
	Gravity            float64 // m/s²
}

// launchable reports whether the snapshot describes a ball that can leave the ground.
func (p Parameters) launchable() bool {
	for _, v := range []float64{p.InitialSpeed, p.LaunchAngleDegrees, p.Gravity} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return p.InitialSpeed > 0 && p.Gravity > 0
}

// State is the kinematic state after a given number of steps.
type State struct {
	Step     int
	Time     float64 // seconds since launch
	Position Vector2D
	Velocity Vector2D
}

// AtRest reports whether the settle condition holds.
func (s State) AtRest() bool {
	return s.Position.Y <= SettleHeight &&
		math.Abs(s.Velocity.X) < SettleSpeed &&
		math.Abs(s.Velocity.Y) < SettleSpeed
}

// Integrator steps a single ballistic trajectory with explicit Euler
// integration over flat ground. It is not safe for concurrent use.
type Integrator struct {
	gravity float64
	state   State
	limit   int
	resting bool // degenerate snapshot, emit one rest state
	done    bool
}

// NewIntegrator prepares a run from p. The ball starts at the origin with
// its launch velocity decomposed from speed and angle.
func NewIntegrator(p Parameters) *Integrator {
	it := &Integrator{
		gravity: p.Gravity,
		limit:   StepBound(p),
	}
	if !p.launchable() {
		it.resting = true
		return it
	}
	it.state.Velocity = FromAngle(Radians(p.LaunchAngleDegrees), p.InitialSpeed)
	return it
}

// Next advances the ball by one TimeStep and returns the new state.
// It returns false once the run has settled.
func (it *Integrator) Next() (State, bool) {
	if it.done {
		return it.state, false
	}
	if it.resting {
		it.done = true
		return it.state, true
	}

	s := it.state
	s.Step++
	s.Time = float64(s.Step) * TimeStep
	s.Position = s.Position.Add(s.Velocity.Scale(TimeStep))

	// Ground contact is inelastic: the first touchdown ends all motion.
	if (s.Position.Y <= 0 && s.Velocity.Y < 0) || s.Step >= it.limit {
		s.Position.Y = 0
		s.Velocity = Vector2D{}
	} else {
		s.Velocity.Y -= it.gravity * TimeStep
	}

	it.state = s
	if s.AtRest() {
		it.done = true
	}
	return s, true
}

// Done reports whether the run has settled.
func (it *Integrator) Done() bool {
	return it.done
}

// Steps returns the number of states produced so far.
func (it *Integrator) Steps() int {
	if it.resting && it.done {
		return 1
	}
	return it.state.Step
}

// Distance returns the horizontal position of the latest state, which is
// the total distance travelled once the run is done.
func (it *Integrator) Distance() float64 {
	return it.state.Position.X
}

// State returns the latest state without advancing.
func (it *Integrator) State() State {
	return it.state
}

// StepBound returns an upper bound on the number of states a run of p can
// produce: the closed-form flight time in steps, plus the touchdown step
// and a margin for rounding.
func StepBound(p Parameters) int {
	if !p.launchable() {
		return 1
	}
	vy := math.Max(p.InitialSpeed*math.Sin(Radians(p.LaunchAngleDegrees)), 0)
	n := int(math.Ceil(2*vy/(p.Gravity*TimeStep))) + 3
	return n + n/100
}

// Trajectory returns the lazy state sequence of a run of p. Every call
// starts a fresh, independent run.
func Trajectory(p Parameters) iter.Seq[State] {
	return func(yield func(State) bool) {
		it := NewIntegrator(p)
		for {
			s, ok := it.Next()
			if !ok || !yield(s) {
				return
			}
		}
	}
}

// Result summarizes a completed run.
type Result struct {
	States     []State
	Distance   float64
	Steps      int
	FlightTime float64
	MaxHeight  float64
}

// Simulate runs p to completion and keeps every state.
func Simulate(p Parameters) Result {
	var r Result
	for s := range Trajectory(p) {
		r.States = append(r.States, s)
		r.MaxHeight = math.Max(r.MaxHeight, s.Position.Y)
		r.Distance = s.Position.X
		r.FlightTime = s.Time
	}
	r.Steps = len(r.States)
	return r
}
