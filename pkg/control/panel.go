package control

import (
	"fmt"
	"sync"

	"github.com/opd-ai/go-celestial/pkg/config"
	"github.com/opd-ai/go-celestial/pkg/entity"
	"github.com/opd-ai/go-celestial/pkg/event"
	"github.com/opd-ai/go-celestial/pkg/physics"
)

// Slider names, in panel order.
const (
	Velocity = "velocity"
	Mass     = "mass"
	Friction = "friction"
	Volume   = "volume"
	Angle    = "angle"
)

// Panel groups the launch sliders and the planet menu. The focus cursor
// walks the sliders first and the planet menu last.
type Panel struct {
	mu      sync.RWMutex
	sliders []*Slider
	planets *Menu
	focus   int
	bus     *event.Bus
}

// NewPanel builds the panel from configuration. bus may be nil.
func NewPanel(cfg *config.Config, bus *event.Bus) *Panel {
	c := cfg.Controls
	p := &Panel{
		sliders: []*Slider{
			NewSlider(Velocity, c.Velocity),
			NewSlider(Mass, c.Mass),
			NewSlider(Friction, c.Friction),
			NewSlider(Volume, c.Volume),
			NewSlider(Angle, c.Angle),
		},
		planets: NewMenu(entity.PlanetNames(), cfg.Planet),
		bus:     bus,
	}
	return p
}

// Sliders returns copies of the sliders in panel order.
func (p *Panel) Sliders() []Slider {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Slider, len(p.sliders))
	for i, s := range p.sliders {
		out[i] = *s
	}
	return out
}

func (p *Panel) slider(name string) *Slider {
	for _, s := range p.sliders {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Value returns the current value of the named slider.
func (p *Panel) Value(name string) (float64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if s := p.slider(name); s != nil {
		return s.Value, true
	}
	return 0, false
}

// Set updates the named slider and returns the stored value.
func (p *Panel) Set(name string, v float64) (float64, error) {
	p.mu.Lock()
	s := p.slider(name)
	if s == nil {
		p.mu.Unlock()
		return 0, fmt.Errorf("unknown control %q", name)
	}
	stored := s.Set(v)
	p.mu.Unlock()

	p.publish(event.NewParameterEvent(p, name, stored))
	return stored, nil
}

// Planet returns the selected catalog entry.
func (p *Panel) Planet() entity.Planet {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.planet()
}

func (p *Panel) planet() entity.Planet {
	planet, err := entity.LookupPlanet(p.planets.Selected())
	if err != nil {
		planet, _ = entity.LookupPlanet(entity.DefaultPlanet)
	}
	return planet
}

// SelectPlanet switches the menu to name.
func (p *Panel) SelectPlanet(name string) error {
	i := entity.PlanetIndex(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", entity.ErrUnknownPlanet, name)
	}
	p.mu.Lock()
	p.planets.Index = i
	p.mu.Unlock()
	p.publishPlanet()
	return nil
}

// CyclePlanet moves the menu by dir (positive = next).
func (p *Panel) CyclePlanet(dir int) entity.Planet {
	p.mu.Lock()
	if dir < 0 {
		p.planets.Prev()
	} else {
		p.planets.Next()
	}
	p.mu.Unlock()
	p.publishPlanet()
	return p.Planet()
}

// GravityLabel returns the label shown next to the planet menu.
func (p *Panel) GravityLabel() string {
	return fmt.Sprintf("Gravity: %g m/s²", p.Planet().Gravity)
}

// Snapshot reads every control once into launch parameters.
func (p *Panel) Snapshot() physics.Parameters {
	p.mu.RLock()
	defer p.mu.RUnlock()
	planet := p.planet()
	return physics.Parameters{
		Planet:             planet.Name,
		InitialSpeed:       p.slider(Velocity).Value,
		LaunchAngleDegrees: p.slider(Angle).Value,
		Mass:               p.slider(Mass).Value,
		Friction:           p.slider(Friction).Value,
		Volume:             p.slider(Volume).Value,
		Gravity:            planet.Gravity,
	}
}

// Focus returns the focused control index. len(Sliders()) means the planet menu.
func (p *Panel) Focus() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.focus
}

// FocusedName returns the focused slider name, or "planet".
func (p *Panel) FocusedName() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.focus < len(p.sliders) {
		return p.sliders[p.focus].Name
	}
	return "planet"
}

// FocusNext moves the cursor down, wrapping around.
func (p *Panel) FocusNext() {
	p.mu.Lock()
	p.focus = (p.focus + 1) % (len(p.sliders) + 1)
	p.mu.Unlock()
}

// FocusPrev moves the cursor up, wrapping around.
func (p *Panel) FocusPrev() {
	p.mu.Lock()
	n := len(p.sliders) + 1
	p.focus = (p.focus - 1 + n) % n
	p.mu.Unlock()
}

// Adjust nudges the focused slider by n increments, or cycles the planet
// menu when it has focus.
func (p *Panel) Adjust(n int) {
	p.mu.Lock()
	if p.focus >= len(p.sliders) {
		p.mu.Unlock()
		if n != 0 {
			p.CyclePlanet(n)
		}
		return
	}
	s := p.sliders[p.focus]
	stored := s.Nudge(n)
	p.mu.Unlock()
	p.publish(event.NewParameterEvent(p, s.Name, stored))
}

func (p *Panel) publishPlanet() {
	planet := p.Planet()
	p.publish(event.NewPlanetEvent(p, planet.Name, planet.Gravity))
}

func (p *Panel) publish(e event.Event) {
	if p.bus != nil {
		p.bus.Publish(e)
	}
}
