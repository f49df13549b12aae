// pkg/entity/entity.go
package entity

import (
	"github.com/opd-ai/go-celestial/pkg/physics"
)

// Entity is anything drawn in the launch scene.
type Entity interface {
	Render(r Renderer)
}

// BaseEntity contains common functionality for all entities
type BaseEntity struct {
	Position physics.Vector2D
	Visible  bool
}

// DefaultTrailLength caps the number of trail points a ball keeps.
const DefaultTrailLength = 4096

// Ball is the launched sphere. It keeps a trail of past positions.
// Moves counts every MoveTo, including positions the trail has dropped.
type Ball struct {
	BaseEntity
	Radius   float64
	Trail    []physics.Vector2D
	MaxTrail int
	Moves    int
}

// NewBall creates a visible ball at the origin sized from its volume.
func NewBall(volume float64) *Ball {
	return &Ball{
		BaseEntity: BaseEntity{Visible: true},
		Radius:     physics.BallRadius(volume),
		MaxTrail:   DefaultTrailLength,
	}
}

// MoveTo places the ball and records the new position in its trail.
func (b *Ball) MoveTo(pos physics.Vector2D) {
	b.Position = pos
	b.Moves++
	if b.MaxTrail <= 0 {
		b.Trail = nil
		return
	}
	if len(b.Trail) >= b.MaxTrail {
		b.Trail = b.Trail[1:]
	}
	b.Trail = append(b.Trail, pos)
}

// TrailSince returns the trail points recorded after the first n moves,
// with the move number of the first point returned. Points already dropped
// from the trail are skipped.
func (b *Ball) TrailSince(n int) ([]physics.Vector2D, int) {
	if n < 0 {
		n = 0
	}
	if n >= b.Moves {
		return nil, b.Moves
	}
	first := b.Moves - len(b.Trail)
	if n < first {
		n = first
	}
	return b.Trail[n-first:], n
}

// Ground is the flat strip the ball lands on. It starts at the launch point
// and extends Length meters down range.
type Ground struct {
	BaseEntity
	Length    float64
	Thickness float64
	Planet    Planet
}

// NewGround creates ground for a planet, long enough for the expected range.
func NewGround(planet Planet, length float64) *Ground {
	return &Ground{
		BaseEntity: BaseEntity{
			Position: physics.Vector2D{X: length / 2},
			Visible:  true,
		},
		Length:    length,
		Thickness: 0.5,
		Planet:    planet,
	}
}

func (b *Ball) Render(r Renderer) {
	if b.Visible {
		r.RenderBall(b)
	}
}

func (g *Ground) Render(r Renderer) {
	if g.Visible {
		r.RenderGround(g)
	}
}
