// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-celestial/pkg/entity"
	"github.com/opd-ai/go-celestial/pkg/logging"
)

// NullRenderer draws nothing and records the presentation stream as
// structured logs. It serves as both an entity.Renderer and a Sink.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a new NullRenderer. A nil logger discards output.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{logger: logger}
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called")
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.logger.Debug(context.Background(), "Present called")
}

// RenderGround implements entity.Renderer.
func (d *NullRenderer) RenderGround(ground *entity.Ground) {
	ctx := context.Background()
	if ground == nil {
		d.logger.Debug(ctx, "RenderGround called with nil ground")
		return
	}
	d.logger.Debug(ctx, "RenderGround called",
		"planet", ground.Planet.Name,
		"length", ground.Length,
	)
}

// RenderBall implements entity.Renderer.
func (d *NullRenderer) RenderBall(ball *entity.Ball) {
	ctx := context.Background()
	if ball == nil {
		d.logger.Debug(ctx, "RenderBall called with nil ball")
		return
	}
	d.logger.Debug(ctx, "RenderBall called",
		"x", ball.Position.X,
		"y", ball.Position.Y,
		"radius", ball.Radius,
	)
}

// Reset implements Sink.
func (d *NullRenderer) Reset(scene Scene) {
	ctx := logging.WithRunID(context.Background(), scene.RunID)
	d.logger.Info(ctx, "scene reset",
		"planet", scene.Planet.Name,
		"gravity", scene.Planet.Gravity,
		"ball_radius", scene.BallRadius,
		"ground_length", scene.GroundLength,
	)
}

// Update implements Sink.
func (d *NullRenderer) Update(f Frame) {
	ctx := logging.WithRunID(context.Background(), f.RunID)
	d.logger.Debug(ctx, "frame",
		"step", f.Step,
		"t", f.State.Time,
		"x", f.State.Position.X,
		"y", f.State.Position.Y,
		"vx", f.State.Velocity.X,
		"vy", f.State.Velocity.Y,
	)
}

// Report implements Sink.
func (d *NullRenderer) Report(sum Summary) {
	ctx := logging.WithRunID(context.Background(), sum.RunID)
	d.logger.Info(ctx, sum.Text,
		"planet", sum.Planet,
		"distance", sum.Distance,
		"steps", sum.Steps,
		"flight_time", sum.FlightTime,
		"max_height", sum.MaxHeight,
		"fingerprint", sum.Fingerprint,
	)
}
