// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/charmbracelet/harmonica"

	"github.com/opd-ai/go-celestial/pkg/physics"
)

// CameraSystem eases the view toward the focal point of the current frame
// with a critically damped spring, so 100 Hz physics frames do not jitter
// on a 60 Hz display.
type CameraSystem struct {
	proj Projection

	target    physics.Vector2D
	targetSet bool

	// spring state, in world meters
	pos physics.Vector2D
	vel physics.Vector2D

	frequency float64
	damping   float64

	zoom    float32
	minZoom float32
	maxZoom float32
}

// NewCameraSystem creates a camera with the given spring parameters.
func NewCameraSystem(proj Projection, frequency, damping float64) *CameraSystem {
	return &CameraSystem{
		proj:      proj,
		frequency: frequency,
		damping:   damping,
		zoom:      1.0,
		minZoom:   0.25,
		maxZoom:   4.0,
	}
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update advances the spring and moves the engo camera.
func (cs *CameraSystem) Update(dt float32) {
	cs.handleZoomInput()
	cs.Step(float64(dt))
	cs.applyCameraTransform()
}

func (cs *CameraSystem) handleZoomInput() {
	if scrollY := engo.Input.Mouse.ScrollY; scrollY != 0 {
		cs.SetZoom(cs.zoom * (1.0 - scrollY*0.1))
	}
	if engo.Input.Button(ButtonResetZoom).JustPressed() {
		cs.SetZoom(1.0)
	}
}

// Step advances the spring by dt seconds and returns the camera position.
func (cs *CameraSystem) Step(dt float64) physics.Vector2D {
	if !cs.targetSet || dt <= 0 {
		return cs.pos
	}
	spring := harmonica.NewSpring(dt, cs.frequency, cs.damping)
	cs.pos.X, cs.vel.X = spring.Update(cs.pos.X, cs.vel.X, cs.target.X)
	cs.pos.Y, cs.vel.Y = spring.Update(cs.pos.Y, cs.vel.Y, cs.target.Y)
	return cs.pos
}

func (cs *CameraSystem) applyCameraTransform() {
	p := cs.proj.Point(cs.pos)
	engo.Mailbox.Dispatch(common.CameraMessage{Axis: common.XAxis, Value: p.X})
	engo.Mailbox.Dispatch(common.CameraMessage{Axis: common.YAxis, Value: p.Y})
	engo.Mailbox.Dispatch(common.CameraMessage{Axis: common.ZAxis, Value: cs.zoom})
}

// SetTarget sets the focal point to ease toward.
func (cs *CameraSystem) SetTarget(target physics.Vector2D) {
	cs.target = target
	cs.targetSet = true
}

// JumpTo places the camera on target with no easing.
func (cs *CameraSystem) JumpTo(target physics.Vector2D) {
	cs.SetTarget(target)
	cs.pos = target
	cs.vel = physics.Vector2D{}
}

// Position returns the current camera position in world meters.
func (cs *CameraSystem) Position() physics.Vector2D {
	return cs.pos
}

// SetZoom sets the zoom level within the allowed range.
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.zoom = max(cs.minZoom, min(cs.maxZoom, zoom))
}

// Zoom returns the current zoom level.
func (cs *CameraSystem) Zoom() float32 {
	return cs.zoom
}
