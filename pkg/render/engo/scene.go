// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"
	"sync"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-celestial/pkg/config"
	"github.com/opd-ai/go-celestial/pkg/control"
	"github.com/opd-ai/go-celestial/pkg/logging"
	"github.com/opd-ai/go-celestial/pkg/render"
)

// LaunchScene is the interactive window: control panel, ground, ball and
// follow camera. Runs arrive through a render.Queue that the simulator
// writes from its own goroutine.
type LaunchScene struct {
	ctx      context.Context
	cfg      *config.Config
	panel    *control.Panel
	launcher Launcher
	queue    *render.Queue
	logger   *logging.Logger

	assets   *AssetManager
	camera   *CameraSystem
	hud      *HUDSystem
	renderer *EngoRenderer
	sink     *render.SceneSink
}

// NewLaunchScene creates the scene. launcher must write into queue.
func NewLaunchScene(ctx context.Context, cfg *config.Config, panel *control.Panel, launcher Launcher, queue *render.Queue, logger *logging.Logger) *LaunchScene {
	return &LaunchScene{
		ctx:      ctx,
		cfg:      cfg,
		panel:    panel,
		launcher: launcher,
		queue:    queue,
		logger:   logger,
		assets:   NewAssetManager(),
	}
}

// Type returns the scene type (required by Engo)
func (scene *LaunchScene) Type() string {
	return "LaunchScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *LaunchScene) Preload() {
	if err := scene.assets.Preload(); err != nil {
		scene.logger.Error(scene.ctx, "preload failed", err)
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *LaunchScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)
	common.SetBackground(color.RGBA{R: 20, G: 20, B: 30, A: 255})
	common.CameraBounds = engo.AABB{
		Min: engo.Point{X: -1e7, Y: -1e7},
		Max: engo.Point{X: 1e7, Y: 1e7},
	}
	SetupControls()

	if err := scene.assets.LoadAssets(14); err != nil {
		panic("Failed to initialize assets: " + err.Error())
	}

	rs := &common.RenderSystem{}
	world.AddSystem(rs)

	proj := PixelProjection(scene.cfg)
	scene.camera = NewCameraSystem(proj, scene.cfg.Camera.Frequency, scene.cfg.Camera.Damping)
	scene.hud = NewHUDSystem(scene.panel, rs, scene.assets)
	scene.renderer = NewEngoRenderer(world, rs, proj, scene.camera, scene.hud, scene.assets)
	scene.sink = render.NewSceneSink(scene.renderer)

	world.AddSystem(NewInputSystem(scene.ctx, scene.panel, scene.launcher, scene.logger))
	world.AddSystem(&frameSystem{scene: scene})
	world.AddSystem(scene.camera)
	world.AddSystem(scene.hud)

	scene.hud.SetStatus("Press Enter to launch")
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *LaunchScene) Exit() {
	engo.Exit()
}

// Apply feeds queued messages to the scene sink. A new Scene snaps the
// camera to the initial view before easing begins.
func (scene *LaunchScene) Apply(msgs []any) {
	for _, m := range msgs {
		switch v := m.(type) {
		case render.Scene:
			scene.sink.Reset(v)
			scene.camera.JumpTo(v.CameraCenter)
		case render.Frame:
			scene.sink.Update(v)
		case render.Summary:
			scene.sink.Report(v)
		}
	}
}

// frameSystem drains the queue on the engo loop goroutine.
type frameSystem struct {
	scene *LaunchScene
}

func (fs *frameSystem) Remove(basic ecs.BasicEntity) {}

func (fs *frameSystem) Update(dt float32) {
	if fs.scene.queue.Len() > 0 {
		fs.scene.Apply(fs.scene.queue.Drain())
	}
}

// PixelProjection sizes the view so about 40 meters span the window width.
func PixelProjection(cfg *config.Config) Projection {
	ppm := float64(cfg.Display.Width) / 40
	if ppm <= 0 {
		ppm = 20
	}
	return Projection{PixelsPerMeter: ppm}
}

// Run opens the window and blocks until it closes or the scene's context
// is cancelled.
func Run(scene *LaunchScene) {
	release := ExitOnCancel(scene.ctx, engo.Exit)
	defer release()
	engo.Run(engo.RunOptions{
		Title:          "Celestial Launch",
		Width:          scene.cfg.Display.Width,
		Height:         scene.cfg.Display.Height,
		StandardInputs: true,
		NotResizable:   true,
	}, scene)
}

// ExitOnCancel calls exit once ctx is cancelled. The returned release stops
// the watch without calling exit.
func ExitOnCancel(ctx context.Context, exit func()) (release func()) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			select {
			case <-done:
			default:
				exit()
			}
		case <-done:
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}
