// pkg/render/engo/input.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-celestial/pkg/control"
	"github.com/opd-ai/go-celestial/pkg/logging"
	"github.com/opd-ai/go-celestial/pkg/physics"
)

// Button names registered with engo.Input.
const (
	ButtonFocusUp   = "focusUp"
	ButtonFocusDown = "focusDown"
	ButtonDecrease  = "decrease"
	ButtonIncrease  = "increase"
	ButtonPlanet    = "planet"
	ButtonLaunch    = "launch"
	ButtonLaunchAlt = "launchAlt"
	ButtonResetZoom = "resetZoom"
)

// Action is a keyboard command against the control panel.
type Action int

const (
	ActionNone Action = iota
	ActionFocusUp
	ActionFocusDown
	ActionDecrease
	ActionIncrease
	ActionCyclePlanet
	ActionLaunch
)

// Launcher starts a run from a parameter snapshot.
type Launcher interface {
	Start(ctx context.Context, p physics.Parameters) (string, error)
}

// SetupControls registers the key bindings
func SetupControls() {
	engo.Input.RegisterButton(ButtonFocusUp, engo.KeyArrowUp)
	engo.Input.RegisterButton(ButtonFocusDown, engo.KeyArrowDown)
	engo.Input.RegisterButton(ButtonDecrease, engo.KeyArrowLeft)
	engo.Input.RegisterButton(ButtonIncrease, engo.KeyArrowRight)
	engo.Input.RegisterButton(ButtonPlanet, engo.KeyP)
	engo.Input.RegisterButton(ButtonLaunch, engo.KeyEnter)
	engo.Input.RegisterButton(ButtonLaunchAlt, engo.KeySpace)
	engo.Input.RegisterButton(ButtonResetZoom, engo.KeyR)
}

// InputSystem turns key presses into panel changes and launches.
type InputSystem struct {
	ctx      context.Context
	panel    *control.Panel
	launcher Launcher
	logger   *logging.Logger
}

// NewInputSystem creates a new input system
func NewInputSystem(ctx context.Context, panel *control.Panel, launcher Launcher, logger *logging.Logger) *InputSystem {
	return &InputSystem{ctx: ctx, panel: panel, launcher: launcher, logger: logger}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update reads the buttons pressed since the last frame.
func (is *InputSystem) Update(dt float32) {
	for _, a := range pressedActions() {
		is.Apply(a)
	}
}

func pressedActions() []Action {
	var actions []Action
	bindings := []struct {
		button string
		action Action
	}{
		{ButtonFocusUp, ActionFocusUp},
		{ButtonFocusDown, ActionFocusDown},
		{ButtonDecrease, ActionDecrease},
		{ButtonIncrease, ActionIncrease},
		{ButtonPlanet, ActionCyclePlanet},
		{ButtonLaunch, ActionLaunch},
		{ButtonLaunchAlt, ActionLaunch},
	}
	for _, b := range bindings {
		if engo.Input.Button(b.button).JustPressed() {
			actions = append(actions, b.action)
		}
	}
	return actions
}

// Apply performs a single action.
func (is *InputSystem) Apply(a Action) {
	switch a {
	case ActionFocusUp:
		is.panel.FocusPrev()
	case ActionFocusDown:
		is.panel.FocusNext()
	case ActionDecrease:
		is.panel.Adjust(-1)
	case ActionIncrease:
		is.panel.Adjust(1)
	case ActionCyclePlanet:
		is.panel.CyclePlanet(1)
	case ActionLaunch:
		if _, err := is.launcher.Start(is.ctx, is.panel.Snapshot()); err != nil {
			is.logger.Error(is.ctx, "failed to start simulation", err)
		}
	}
}
