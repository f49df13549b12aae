package engo

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-celestial/pkg/config"
	"github.com/opd-ai/go-celestial/pkg/control"
	"github.com/opd-ai/go-celestial/pkg/entity"
	"github.com/opd-ai/go-celestial/pkg/logging"
	"github.com/opd-ai/go-celestial/pkg/physics"
)

func TestProjection_FlipsHeight(t *testing.T) {
	proj := Projection{PixelsPerMeter: 20}

	p := proj.Point(physics.Vector2D{X: 2, Y: 3})
	if p.X != 40 || p.Y != -60 {
		t.Errorf("Point() = %v, want (40,-60)", p)
	}
	if proj.Length(0.5) != 10 {
		t.Errorf("Length(0.5) = %v, want 10", proj.Length(0.5))
	}
}

func TestPixelProjection(t *testing.T) {
	cfg := config.DefaultConfig()
	if got := PixelProjection(cfg).PixelsPerMeter; got != 20 {
		t.Errorf("expected 20 px/m for an 800 px window, got %v", got)
	}
	cfg.Display.Width = 0
	if got := PixelProjection(cfg).PixelsPerMeter; got != 20 {
		t.Errorf("expected fallback of 20 px/m, got %v", got)
	}
}

func TestBallSpace_RestsOnPosition(t *testing.T) {
	space := BallSpace(Projection{PixelsPerMeter: 10}, physics.Vector2D{X: 5, Y: 0}, 1)

	if space.Width != 20 || space.Height != 20 {
		t.Errorf("expected 20x20 box, got %vx%v", space.Width, space.Height)
	}
	want := engo.Point{X: 40, Y: -20}
	if space.Position != want {
		t.Errorf("Position = %v, want %v", space.Position, want)
	}
}

func TestTrailDots_ContinuePastTrailCap(t *testing.T) {
	ball := entity.NewBall(1)
	total := entity.DefaultTrailLength + 2000
	seen, count := 0, 0
	for i := 0; i < total; i++ {
		ball.MoveTo(physics.Vector2D{X: float64(i)})
		var dots []physics.Vector2D
		dots, seen = TrailDots(ball, seen)
		for _, d := range dots {
			if int(d.X)%TrailStride != 0 {
				t.Fatalf("dot at move %v is off the stride", d.X)
			}
		}
		count += len(dots)
	}

	if seen != total {
		t.Errorf("seen = %d, want %d", seen, total)
	}
	if want := (total + TrailStride - 1) / TrailStride; count != want {
		t.Errorf("placed %d dots, want %d", count, want)
	}
}

func TestTrailDots_CatchUpAfterBurst(t *testing.T) {
	ball := entity.NewBall(1)
	for i := 0; i < 10; i++ {
		ball.MoveTo(physics.Vector2D{X: float64(i)})
	}

	dots, seen := TrailDots(ball, 0)
	if seen != 10 || len(dots) != 3 || dots[2].X != 8 {
		t.Errorf("TrailDots = %v (seen %d), want moves 0,4,8", dots, seen)
	}
	if dots, _ := TrailDots(ball, seen); len(dots) != 0 {
		t.Errorf("no new moves should give no dots, got %v", dots)
	}
}

func TestBallColor_IsOrange(t *testing.T) {
	if BallColor.R != 255 || BallColor.G != 165 || BallColor.B != 0 {
		t.Errorf("BallColor = %v, want orange", BallColor)
	}
}

func TestCameraSystem_SpringConverges(t *testing.T) {
	cs := NewCameraSystem(Projection{PixelsPerMeter: 20}, 6, 1)

	if got := cs.Step(0.016); got != (physics.Vector2D{}) {
		t.Errorf("camera without target moved to %v", got)
	}

	cs.SetTarget(physics.Vector2D{X: 30, Y: 2})
	first := cs.Step(1.0 / 60)
	if first.X <= 0 || first.X >= 30 {
		t.Errorf("first step should move partway, got %v", first)
	}
	for i := 0; i < 600; i++ {
		cs.Step(1.0 / 60)
	}
	pos := cs.Position()
	if d := math.Hypot(pos.X-30, pos.Y-2); d > 0.01 {
		t.Errorf("camera did not settle on target, at %v", pos)
	}

	cs.JumpTo(physics.Vector2D{X: -5, Y: 1})
	if cs.Position() != (physics.Vector2D{X: -5, Y: 1}) {
		t.Errorf("JumpTo did not place camera, at %v", cs.Position())
	}
}

func TestCameraSystem_ZoomClamped(t *testing.T) {
	cs := NewCameraSystem(Projection{PixelsPerMeter: 20}, 6, 1)
	cs.SetZoom(100)
	if cs.Zoom() != 4 {
		t.Errorf("expected max zoom 4, got %v", cs.Zoom())
	}
	cs.SetZoom(0)
	if cs.Zoom() != 0.25 {
		t.Errorf("expected min zoom 0.25, got %v", cs.Zoom())
	}
}

func TestDotImage(t *testing.T) {
	img := DotImage(4)
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if img.NRGBAAt(0, 0).A != 0 {
		t.Error("corner should be transparent")
	}
	if img.NRGBAAt(2, 2).A != 255 {
		t.Error("centre should be opaque")
	}
}

func TestPanelLines(t *testing.T) {
	panel := control.NewPanel(config.DefaultConfig(), nil)
	lines := PanelLines(panel, "Total Distance: 58.78 meters")

	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d: %q", len(lines), lines)
	}
	if lines[0] != "> Initial Velocity: 24 m/s" {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.HasPrefix(lines[5], "  Planet: Earth") {
		t.Errorf("unexpected planet line %q", lines[5])
	}
	if lines[6] != "  Gravity: 9.8 m/s²" {
		t.Errorf("unexpected gravity line %q", lines[6])
	}
	if lines[8] != "Total Distance: 58.78 meters" {
		t.Errorf("unexpected status line %q", lines[8])
	}
}

type fakeLauncher struct {
	started []physics.Parameters
}

func (f *fakeLauncher) Start(_ context.Context, p physics.Parameters) (string, error) {
	f.started = append(f.started, p)
	return "run", nil
}

func TestInputSystem_Apply(t *testing.T) {
	panel := control.NewPanel(config.DefaultConfig(), nil)
	launcher := &fakeLauncher{}
	is := NewInputSystem(context.Background(), panel, launcher, logging.Discard())

	is.Apply(ActionIncrease)
	is.Apply(ActionFocusUp)
	if panel.FocusedName() != "planet" {
		t.Errorf("expected planet focus, got %s", panel.FocusedName())
	}
	is.Apply(ActionFocusDown)
	is.Apply(ActionCyclePlanet)
	is.Apply(ActionNone)
	is.Apply(ActionLaunch)

	if len(launcher.started) != 1 {
		t.Fatalf("expected one launch, got %d", len(launcher.started))
	}
	p := launcher.started[0]
	if p.InitialSpeed != 25 || p.Planet != "Moon" || p.Gravity != 1.62 {
		t.Errorf("unexpected snapshot %+v", p)
	}

	is.Apply(ActionDecrease)
	if v, _ := panel.Value(control.Velocity); v != 24 {
		t.Errorf("expected velocity 24, got %v", v)
	}
}

func TestExitOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	exited := make(chan struct{})
	release := ExitOnCancel(ctx, func() { close(exited) })
	defer release()

	cancel()
	select {
	case <-exited:
	case <-time.After(2 * time.Second):
		t.Fatal("exit was not called after cancel")
	}
}

func TestExitOnCancel_ReleaseSkipsExit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	called := make(chan struct{}, 1)
	release := ExitOnCancel(ctx, func() { called <- struct{}{} })
	release()
	release()

	cancel()
	select {
	case <-called:
		t.Fatal("exit called after release")
	case <-time.After(50 * time.Millisecond):
	}
}
