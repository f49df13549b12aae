// pkg/render/scene.go
package render

import (
	"github.com/opd-ai/go-celestial/pkg/entity"
	"github.com/opd-ai/go-celestial/pkg/physics"
)

// Display is an entity.Renderer with a movable view and a status line.
type Display interface {
	entity.Renderer
	SetCenter(physics.Vector2D)
	SetStatus(string)
}

// SceneSink adapts a Display into a Sink by keeping the ground and ball
// entities of the current run and redrawing them on every frame.
type SceneSink struct {
	display Display
	ground  *entity.Ground
	ball    *entity.Ball
}

// NewSceneSink wraps display.
func NewSceneSink(display Display) *SceneSink {
	return &SceneSink{display: display}
}

// Ball returns the ball of the current run, or nil before the first Reset.
func (s *SceneSink) Ball() *entity.Ball {
	return s.ball
}

// Reset implements Sink.
func (s *SceneSink) Reset(scene Scene) {
	s.ground = entity.NewGround(scene.Planet, scene.GroundLength)
	s.ball = entity.NewBall(0)
	s.ball.Radius = scene.BallRadius
	s.display.SetCenter(scene.CameraCenter)
	s.display.SetStatus(scene.Planet.String())
	s.draw()
}

// Update implements Sink.
func (s *SceneSink) Update(f Frame) {
	if s.ball == nil {
		return
	}
	s.ball.MoveTo(f.State.Position)
	s.display.SetCenter(f.Focus)
	s.draw()
}

// Report implements Sink.
func (s *SceneSink) Report(sum Summary) {
	s.display.SetStatus(sum.Text)
	s.draw()
}

func (s *SceneSink) draw() {
	s.display.Clear()
	for _, e := range s.entities() {
		e.Render(s.display)
	}
	s.display.Present()
}

// entities lists what the current run draws, ground first.
func (s *SceneSink) entities() []entity.Entity {
	var out []entity.Entity
	if s.ground != nil {
		out = append(out, s.ground)
	}
	if s.ball != nil {
		out = append(out, s.ball)
	}
	return out
}
