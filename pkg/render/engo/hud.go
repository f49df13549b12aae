// pkg/render/engo/hud.go
package engo

import (
	"sync"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-celestial/pkg/control"
)

// HelpLine lists the key bindings.
const HelpLine = "Up/Down select  Left/Right adjust  P planet  Enter launch  R reset zoom"

// HUDSystem draws the control panel, the gravity label and the run status
// in screen space.
type HUDSystem struct {
	panel        *control.Panel
	renderSystem *common.RenderSystem
	assets       *AssetManager

	mu     sync.Mutex
	status string

	lines      []*sprite
	shown      []string
	lineHeight float32
}

// NewHUDSystem creates a new HUD system
func NewHUDSystem(panel *control.Panel, rs *common.RenderSystem, assets *AssetManager) *HUDSystem {
	return &HUDSystem{
		panel:        panel,
		renderSystem: rs,
		assets:       assets,
		lineHeight:   20,
	}
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update redraws lines whose text changed.
func (hud *HUDSystem) Update(dt float32) {
	lines := PanelLines(hud.panel, hud.Status())
	for i, text := range lines {
		if i < len(hud.shown) && hud.shown[i] == text {
			continue
		}
		hud.setLine(i, text)
	}
	hud.shown = lines
}

func (hud *HUDSystem) setLine(i int, text string) {
	for len(hud.lines) <= i {
		s := &sprite{BasicEntity: ecs.NewBasic()}
		s.RenderComponent.Scale = engo.Point{X: 1, Y: 1}
		s.RenderComponent.SetShader(common.HUDShader)
		s.RenderComponent.SetZIndex(10)
		s.SpaceComponent.Position = engo.Point{X: 10, Y: 10 + float32(len(hud.lines))*hud.lineHeight}
		s.Drawable = common.Text{Font: hud.assets.Font(), Text: " "}
		hud.renderSystem.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
		hud.lines = append(hud.lines, s)
	}
	if text == "" {
		text = " "
	}
	hud.lines[i].Drawable = common.Text{Font: hud.assets.Font(), Text: text}
}

// SetStatus replaces the status line.
func (hud *HUDSystem) SetStatus(status string) {
	hud.mu.Lock()
	defer hud.mu.Unlock()
	hud.status = status
}

// Status returns the status line.
func (hud *HUDSystem) Status() string {
	hud.mu.Lock()
	defer hud.mu.Unlock()
	return hud.status
}

// PanelLines renders the panel as text: one line per slider, the planet
// menu, its gravity label, the status and the key help. The focused control
// is marked with '>'.
func PanelLines(panel *control.Panel, status string) []string {
	sliders := panel.Sliders()
	focus := panel.Focus()
	lines := make([]string, 0, len(sliders)+5)
	for i, s := range sliders {
		lines = append(lines, marker(i == focus)+s.String())
	}
	lines = append(lines,
		marker(focus == len(sliders))+"Planet: "+panel.Planet().Name,
		"  "+panel.GravityLabel(),
		"",
		status,
		HelpLine,
	)
	return lines
}

func marker(focused bool) string {
	if focused {
		return "> "
	}
	return "  "
}
