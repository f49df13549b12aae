// cmd/celestial/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/opd-ai/go-celestial/pkg/config"
	"github.com/opd-ai/go-celestial/pkg/control"
	"github.com/opd-ai/go-celestial/pkg/engine"
	"github.com/opd-ai/go-celestial/pkg/event"
	"github.com/opd-ai/go-celestial/pkg/logging"
	"github.com/opd-ai/go-celestial/pkg/render"
	engorender "github.com/opd-ai/go-celestial/pkg/render/engo"
	"github.com/opd-ai/go-celestial/pkg/tui"
	"github.com/opd-ai/go-celestial/pkg/validation"
)

type options struct {
	configPath string
	renderer   string
	planet     string
	compare    string
	logPath    string
	tickRate   float64
	width      int
	height     int
	controls   map[string]*float64
	set        map[string]bool
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("celestial", flag.ContinueOnError)
	o := &options{controls: make(map[string]*float64), set: make(map[string]bool)}
	fs.StringVar(&o.configPath, "config", "celestial.yaml", "Path to configuration file (JSON or YAML)")
	fs.StringVar(&o.renderer, "renderer", "", "Renderer: engo, tui, terminal or null")
	fs.StringVar(&o.planet, "planet", "", "Planet: Earth, Moon, Mercury or Mars")
	fs.StringVar(&o.compare, "compare", "", "Compare planets, comma separated or 'all' (headless)")
	fs.StringVar(&o.logPath, "log", "", "Write logs to this file instead of the console")
	fs.Float64Var(&o.tickRate, "tick-rate", 0, "Simulation steps per second, 0 = unpaced")
	fs.IntVar(&o.width, "width", 0, "Window width (engo only)")
	fs.IntVar(&o.height, "height", 0, "Window height (engo only)")
	for _, name := range []string{control.Velocity, control.Mass, control.Friction, control.Volume, control.Angle} {
		o.controls[name] = fs.Float64(name, 0, "Initial "+name+" control value")
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

// loadConfig reads the config file when present, then applies environment
// and flag overrides in that order.
func loadConfig(o *options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if _, err := os.Stat(o.configPath); err == nil {
		if cfg, err = config.LoadConfig(o.configPath); err != nil {
			return nil, err
		}
	} else if o.set["config"] {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if o.set["renderer"] {
		cfg.Display.Renderer = strings.ToLower(o.renderer)
	}
	if o.set["planet"] {
		cfg.Planet = o.planet
	}
	if o.set["tick-rate"] {
		cfg.Display.TickRate = o.tickRate
	}
	if o.set["width"] {
		cfg.Display.Width = o.width
	}
	if o.set["height"] {
		cfg.Display.Height = o.height
	}
	return cfg, cfg.Validate()
}

// applyControls copies control flags onto the panel. Out-of-range values
// are rejected rather than clamped.
func applyControls(o *options, cfg *config.Config, panel *control.Panel) error {
	sliders := map[string]config.SliderConfig{
		control.Velocity: cfg.Controls.Velocity,
		control.Mass:     cfg.Controls.Mass,
		control.Friction: cfg.Controls.Friction,
		control.Volume:   cfg.Controls.Volume,
		control.Angle:    cfg.Controls.Angle,
	}
	var errs []error
	for name, v := range o.controls {
		if !o.set[name] {
			continue
		}
		if err := validation.ValidateValue(name, *v, sliders[name]); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, err := panel.Set(name, *v); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	return validation.ValidateParameters(panel.Snapshot(), cfg.Controls)
}

func openLog(path string, fallback io.Writer) (*logging.Logger, func(), error) {
	if path == "" {
		return logging.NewLoggerTo(fallback), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logging.NewLoggerTo(f), func() { f.Close() }, nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "celestial:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	// Front ends that own the terminal keep logs off stdout.
	var fallback io.Writer = os.Stdout
	switch cfg.Display.Renderer {
	case config.RendererTUI:
		fallback = io.Discard
	case config.RendererTerminal:
		fallback = os.Stderr
	}
	logger, closeLog, err := openLog(o.logPath, fallback)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithRunID(ctx, "")

	bus := event.NewEventBus()
	bus.Subscribe(event.PlanetChanged, func(e event.Event) {
		if pe, ok := e.(*event.PlanetEvent); ok {
			logger.Debug(ctx, "planet changed", "planet", pe.Planet, "gravity", pe.Gravity)
		}
	})

	panel := control.NewPanel(cfg, bus)
	if err := applyControls(o, cfg, panel); err != nil {
		return err
	}

	if o.compare != "" {
		return runCompare(ctx, cfg, panel, o.compare, logger, os.Stdout)
	}

	switch cfg.Display.Renderer {
	case config.RendererNull:
		sim := engine.NewSimulator(cfg, render.NewNullRenderer(logger), bus, logger)
		_, err := sim.Run(ctx, panel.Snapshot())
		return err
	case config.RendererTerminal:
		view := render.NewTerminalRenderer(cfg.Display.TerminalCols, cfg.Display.TerminalRows, cfg.Display.TerminalScale)
		sim := engine.NewSimulator(cfg, terminalSink(view, logger), bus, logger)
		_, err := sim.Run(ctx, panel.Snapshot())
		return err
	case config.RendererTUI:
		queue := render.NewQueue()
		sim := engine.NewSimulator(cfg, queue, bus, logger)
		defer sim.Stop()
		return tui.Run(ctx, tui.New(ctx, cfg, panel, sim, queue, logger))
	default:
		queue := render.NewQueue()
		sim := engine.NewSimulator(cfg, queue, bus, logger)
		defer sim.Stop()
		engorender.Run(engorender.NewLaunchScene(ctx, cfg, panel, sim, queue, logger))
		return nil
	}
}

// terminalSink draws into view and also logs the run.
func terminalSink(view render.Display, logger *logging.Logger) render.Sink {
	return render.Tee(render.NewNullRenderer(logger), render.NewSceneSink(view))
}

func runCompare(ctx context.Context, cfg *config.Config, panel *control.Panel, list string, logger *logging.Logger, out io.Writer) error {
	var planets []string
	if !strings.EqualFold(strings.TrimSpace(list), "all") {
		for _, name := range strings.Split(list, ",") {
			if name = strings.TrimSpace(name); name != "" {
				planets = append(planets, name)
			}
		}
	}

	sim := engine.NewSimulator(cfg, nil, nil, logger)
	results, err := sim.Compare(ctx, panel.Snapshot(), planets)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PLANET\tDISTANCE (m)\tFLIGHT (s)\tPEAK (m)\tSTEPS\tFINGERPRINT")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%d\t%016x\n", r.Planet, r.Distance, r.FlightTime, r.MaxHeight, r.Steps, r.Fingerprint)
	}
	return w.Flush()
}
