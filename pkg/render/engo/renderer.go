// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-celestial/pkg/entity"
	"github.com/opd-ai/go-celestial/pkg/physics"
)

// Projection maps world meters onto engo pixels. Engo's Y axis points down,
// so heights above the ground become negative pixel rows.
type Projection struct {
	PixelsPerMeter float64
}

// Point converts a world position to engo world pixels.
func (p Projection) Point(v physics.Vector2D) engo.Point {
	return engo.Point{
		X: float32(v.X * p.PixelsPerMeter),
		Y: float32(-v.Y * p.PixelsPerMeter),
	}
}

// Length converts meters to pixels.
func (p Projection) Length(meters float64) float32 {
	return float32(meters * p.PixelsPerMeter)
}

// BallColor is the orange the ball is drawn in.
var BallColor = color.RGBA{R: 255, G: 165, B: 0, A: 255}

// TrailStride keeps one trail dot out of every TrailStride ball positions.
const TrailStride = 4

type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// EngoRenderer implements render.Display on top of engo's render system.
type EngoRenderer struct {
	world        *ecs.World
	renderSystem *common.RenderSystem
	proj         Projection
	camera       *CameraSystem
	hud          *HUDSystem
	assets       *AssetManager

	ground *sprite
	ball   *sprite
	trail  []*sprite
	seen   int // ball moves already considered for dots
}

// NewEngoRenderer creates a renderer drawing into world.
func NewEngoRenderer(world *ecs.World, rs *common.RenderSystem, proj Projection, camera *CameraSystem, hud *HUDSystem, assets *AssetManager) *EngoRenderer {
	return &EngoRenderer{
		world:        world,
		renderSystem: rs,
		proj:         proj,
		camera:       camera,
		hud:          hud,
		assets:       assets,
	}
}

func (r *EngoRenderer) add(s *sprite) *sprite {
	s.BasicEntity = ecs.NewBasic()
	s.RenderComponent.Scale = engo.Point{X: 1, Y: 1}
	r.renderSystem.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	return s
}

// RenderGround implements entity.Renderer
func (r *EngoRenderer) RenderGround(ground *entity.Ground) {
	if r.ground == nil {
		r.ground = r.add(&sprite{})
		r.ground.RenderComponent.SetZIndex(0)
	}
	r.ground.Drawable = common.Rectangle{}
	r.ground.Color = ground.Planet.Color
	r.ground.SpaceComponent = common.SpaceComponent{
		Position: r.proj.Point(physics.Vector2D{}),
		Width:    r.proj.Length(ground.Length),
		Height:   r.proj.Length(ground.Thickness),
	}
}

// RenderBall implements entity.Renderer
func (r *EngoRenderer) RenderBall(ball *entity.Ball) {
	if ball.Moves < r.seen {
		r.clearTrail()
	}
	var dots []physics.Vector2D
	dots, r.seen = TrailDots(ball, r.seen)
	for _, pos := range dots {
		r.addTrailDot(pos)
	}

	if r.ball == nil {
		r.ball = r.add(&sprite{})
		r.ball.Drawable = common.Circle{}
		r.ball.Color = BallColor
		r.ball.RenderComponent.SetZIndex(2)
	}
	r.ball.SpaceComponent = BallSpace(r.proj, ball.Position, ball.Radius)
}

// TrailDots returns the dot positions for moves recorded after seen, keeping
// every TrailStride-th move, and the new count of moves seen.
func TrailDots(ball *entity.Ball, seen int) ([]physics.Vector2D, int) {
	points, first := ball.TrailSince(seen)
	var dots []physics.Vector2D
	for i, pos := range points {
		if (first+i)%TrailStride == 0 {
			dots = append(dots, pos)
		}
	}
	return dots, ball.Moves
}

// BallSpace returns the bounding box of a ball resting its bottom on pos.
func BallSpace(proj Projection, pos physics.Vector2D, radius float64) common.SpaceComponent {
	d := proj.Length(2 * radius)
	p := proj.Point(pos)
	return common.SpaceComponent{
		Position: engo.Point{X: p.X - d/2, Y: p.Y - d},
		Width:    d,
		Height:   d,
	}
}

func (r *EngoRenderer) addTrailDot(pos physics.Vector2D) {
	dot := r.add(&sprite{})
	dot.Drawable = r.assets.TrailDot()
	dot.Color = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	dot.RenderComponent.SetZIndex(1)
	size := float32(TrailDotSize)
	p := r.proj.Point(pos)
	dot.SpaceComponent = common.SpaceComponent{
		Position: engo.Point{X: p.X - size/2, Y: p.Y - size/2},
		Width:    size,
		Height:   size,
	}
	r.trail = append(r.trail, dot)
}

func (r *EngoRenderer) clearTrail() {
	for _, dot := range r.trail {
		r.world.RemoveEntity(dot.BasicEntity)
	}
	r.trail = r.trail[:0]
	r.seen = 0
}

// Clear implements entity.Renderer. Engo redraws every frame on its own.
func (r *EngoRenderer) Clear() {}

// Present implements entity.Renderer.
func (r *EngoRenderer) Present() {}

// SetCenter implements render.Display.
func (r *EngoRenderer) SetCenter(pos physics.Vector2D) {
	r.camera.SetTarget(pos)
}

// SetStatus implements render.Display.
func (r *EngoRenderer) SetStatus(status string) {
	r.hud.SetStatus(status)
}

// TrailLen returns the number of trail dots on screen.
func (r *EngoRenderer) TrailLen() int {
	return len(r.trail)
}
