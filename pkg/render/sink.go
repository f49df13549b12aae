// pkg/render/sink.go
package render

import (
	"fmt"

	"github.com/opd-ai/go-celestial/pkg/entity"
	"github.com/opd-ai/go-celestial/pkg/physics"
)

// Scene describes the static layout of a run: what the sink draws before
// the first frame arrives.
type Scene struct {
	RunID        string
	Planet       entity.Planet
	BallRadius   float64
	GroundLength float64
	CameraCenter physics.Vector2D
}

// Frame is one integrator step together with the camera focal point.
type Frame struct {
	RunID string
	Step  int
	State physics.State
	Focus physics.Vector2D
}

// Summary is the outcome of a finished run.
type Summary struct {
	RunID       string
	Planet      string
	Distance    float64
	Steps       int
	FlightTime  float64
	MaxHeight   float64
	Fingerprint uint64
	Text        string
}

// Sink receives the presentation stream of a run: one Reset, any number of
// Updates, then at most one Report.
type Sink interface {
	Reset(Scene)
	Update(Frame)
	Report(Summary)
}

// FormatDistance renders the final distance line.
func FormatDistance(distance float64) string {
	return fmt.Sprintf("Total Distance: %.2f meters", distance)
}

type tee []Sink

// Tee fans a run out to several sinks in order.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

func (t tee) Reset(s Scene) {
	for _, sink := range t {
		sink.Reset(s)
	}
}

func (t tee) Update(f Frame) {
	for _, sink := range t {
		sink.Update(f)
	}
}

func (t tee) Report(s Summary) {
	for _, sink := range t {
		sink.Report(s)
	}
}
