// pkg/entity/planet.go
package entity

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// ErrUnknownPlanet is returned when a name is not in the catalog.
var ErrUnknownPlanet = errors.New("unknown planet")

// Planet is a catalog entry: a surface gravity and a ground colour.
type Planet struct {
	Name    string
	Gravity float64 // m/s²
	Color   color.RGBA
}

// gray mirrors a 0..1 intensity onto an opaque RGBA grey.
func gray(level float64) color.RGBA {
	v := uint8(level*255 + 0.5)
	return color.RGBA{R: v, G: v, B: v, A: 255}
}

var catalog = []Planet{
	{Name: "Earth", Gravity: 9.8, Color: color.RGBA{R: 0, G: 255, B: 0, A: 255}},
	{Name: "Moon", Gravity: 1.62, Color: gray(0.5)},
	{Name: "Mercury", Gravity: 3.7, Color: gray(0.3)},
	{Name: "Mars", Gravity: 3.71, Color: color.RGBA{R: 255, G: 102, B: 51, A: 255}},
}

// DefaultPlanet is selected when nothing else is configured.
const DefaultPlanet = "Earth"

// Planets returns the catalog in menu order.
func Planets() []Planet {
	out := make([]Planet, len(catalog))
	copy(out, catalog)
	return out
}

// PlanetNames returns the catalog names in menu order.
func PlanetNames() []string {
	names := make([]string, len(catalog))
	for i, p := range catalog {
		names[i] = p.Name
	}
	return names
}

// LookupPlanet finds a planet by name, ignoring case.
func LookupPlanet(name string) (Planet, error) {
	for _, p := range catalog {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return Planet{}, fmt.Errorf("%w: %q", ErrUnknownPlanet, name)
}

// PlanetIndex returns the menu position of name, or -1.
func PlanetIndex(name string) int {
	for i, p := range catalog {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

// String implements fmt.Stringer
func (p Planet) String() string {
	return fmt.Sprintf("%s (%g m/s²)", p.Name, p.Gravity)
}
