package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ivlev/scrollrig/internal/analyzer"
	"github.com/ivlev/scrollrig/internal/choreo"
	"github.com/ivlev/scrollrig/internal/config"
	"github.com/ivlev/scrollrig/internal/director"
	"github.com/ivlev/scrollrig/internal/engine"
	"github.com/ivlev/scrollrig/internal/path"
	"github.com/ivlev/scrollrig/internal/preview"
	"github.com/ivlev/scrollrig/internal/renderer"
	"github.com/ivlev/scrollrig/internal/shot"
	"github.com/ivlev/scrollrig/internal/source"
	"github.com/ivlev/scrollrig/internal/tui"
)

var buildVersion = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[-] Error: %v", err)
	}
	cfg.BuildVersion = buildVersion

	modePtr := flag.String("mode", "simulate", "Mode: simulate, bake, preview, tui")
	writeScenePtr := flag.String("write-scene", "", "Write the effective scene to this YAML file")
	flag.StringVar(&cfg.ScenePath, "scene", cfg.ScenePath, "YAML scene file (default: seeded reference road)")
	flag.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "Output directory for scenarios and previews")
	flag.StringVar(&cfg.Shot, "shot", cfg.Shot, "Shot: "+joinNames(shot.Names()))
	flag.StringVar(&cfg.Pattern, "pattern", cfg.Pattern, "Pattern: "+joinNames(choreo.Patterns()))
	flag.StringVar(&cfg.RevealStyle, "reveal", cfg.RevealStyle, "Model reveal: grow, clip")
	flag.IntVar(&cfg.Focus, "focus", cfg.Focus, "Initial focus target index")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for road perturbation and object variants")
	flag.IntVar(&cfg.GridSize, "grid", cfg.GridSize, "Object grid size (grid x grid)")
	flag.IntVar(&cfg.FPS, "fps", cfg.FPS, "Frames per second")
	flag.IntVar(&cfg.Frames, "frames", cfg.Frames, "Frames to simulate")
	flag.IntVar(&cfg.Keyframes, "keyframes", cfg.Keyframes, "Keyframes per baked take")
	flag.StringVar(&cfg.Detector, "detector", cfg.Detector, "Pop detector for baked takes: jump, turn")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Bake workers (0: number of CPUs)")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "Preview width")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "Preview height")
	flag.BoolVar(&cfg.ShowStats, "stats", cfg.ShowStats, "Print the full simulation report")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flag.Parse()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("[-] Error: %v", err)
	}

	scene := &config.Scene{}
	if cfg.ScenePath != "" {
		scene, err = config.LoadScene(cfg.ScenePath)
		if err != nil {
			log.Fatalf("[-] Scene error: %v", err)
		}
		scene.Apply(&cfg)
		fmt.Printf("[*] Scene: %s\n", cfg.ScenePath)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Config error: %v", err)
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}

	curve, err := buildCurve(cfg, scene)
	if err != nil {
		log.Fatalf("[-] Path error: %v", err)
	}
	fmt.Printf("[*] Path: %d control points, length %.2f, closed=%v\n", len(curve.Points()), curve.Length(), curve.Closed())

	if *writeScenePtr != "" {
		if err := writeScene(cfg, scene, curve, *writeScenePtr); err != nil {
			log.Fatalf("[-] Scene error: %v", err)
		}
		fmt.Printf("[+] Scene written: %s\n", *writeScenePtr)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Fatalf("[-] Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *modePtr {
	case "bake":
		err = runBake(ctx, cfg, curve, logger)
	case "preview":
		err = runPreview(ctx, cfg, scene, curve, logger)
	case "simulate":
		err = runSimulate(ctx, cfg, scene, curve, logger)
	case "tui":
		err = runTUI(cfg, scene, curve, logger)
	default:
		err = fmt.Errorf("unknown mode %q", *modePtr)
	}
	if err != nil {
		log.Fatalf("[-] %s failed: %v", *modePtr, err)
	}
}

func joinNames[T ~string](names []T) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}

func newLogger(level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})), nil
}

func buildCurve(cfg config.Config, scene *config.Scene) (*path.Curve, error) {
	var src source.Source
	if len(scene.Points) > 0 {
		src = source.NewStaticSource(scene.Points, scene.Closed)
	} else {
		src = source.NewRoadSource(cfg.Seed)
	}
	return source.Curve(src, cfg.Tension)
}

func buildObjects(cfg config.Config) []choreo.Object {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed+1))
	return choreo.NewGrid(cfg.GridSize, cfg.GridSpacing, cfg.Variants, rng)
}

func newEngine(cfg config.Config, scene *config.Scene, curve *path.Curve, logger *slog.Logger) (*engine.Engine, error) {
	e, err := engine.New(cfg, curve, buildObjects(cfg),
		engine.WithLogger(logger),
		engine.WithTargets(scene.Targets()))
	if err != nil {
		return nil, err
	}
	if scene.Custom != nil {
		e.Focus().SetCustom(*scene.Custom)
	}
	return e, nil
}

func writeScene(cfg config.Config, scene *config.Scene, curve *path.Curve, out string) error {
	s := *scene
	s.Points = curve.Points()
	s.Closed = curve.Closed()
	s.Tension = cfg.Tension
	s.Shot = cfg.Shot
	s.Pattern = cfg.Pattern
	s.Reveal = cfg.RevealStyle
	s.Focus = scene.Targets()
	s.Grid = config.Grid{Size: cfg.GridSize, Spacing: cfg.GridSpacing, Variants: cfg.Variants}
	return config.WriteScene(&s, out)
}

func runBake(ctx context.Context, cfg config.Config, curve *path.Curve, logger *slog.Logger) error {
	detector, err := analyzer.NewDetector(cfg.Detector)
	if err != nil {
		return err
	}
	d := director.NewDirector(cfg.Keyframes)
	d.Workers = cfg.Workers
	d.Detector = detector
	d.Logger = logger

	fmt.Printf("[*] Baking %d shots, %d keyframes each, %d workers...\n", len(shot.Names()), cfg.Keyframes, cfg.Workers)
	start := time.Now()
	scenario, err := d.Bake(ctx, curve, shot.Names())
	if err != nil {
		return err
	}

	for _, take := range scenario.Takes {
		if len(take.Pops) == 0 {
			fmt.Printf("[*] Take %d %-10s smooth\n", take.ID, take.Shot)
			continue
		}
		fmt.Printf("[!] Take %d %-10s %d pop(s)\n", take.ID, take.Shot, len(take.Pops))
		for _, p := range take.Pops {
			fmt.Printf("    u=%.4f jump=%.3f confidence=%.2f\n", p.Progress, p.Magnitude(), p.Confidence)
		}
	}

	out := director.GenerateScenarioPath(cfg.OutputDir)
	if err := director.WriteScenario(scenario, out); err != nil {
		return err
	}
	fmt.Printf("[+] Scenario saved in %.2fs: %s\n", time.Since(start).Seconds(), out)
	return nil
}

// previewTrack replays the latest baked take of the configured shot, or
// evaluates the shot directly when nothing has been baked.
func previewTrack(cfg config.Config, curve *path.Curve) ([]shot.Pose, error) {
	name, err := shot.ParseName(cfg.Shot)
	if err != nil {
		return nil, err
	}
	samples := max(cfg.Keyframes, 3)
	track := make([]shot.Pose, 0, samples)

	if latest, err := director.FindLatestScenario(cfg.OutputDir); err == nil {
		scenario, err := director.ReadScenario(latest)
		if err != nil {
			return nil, err
		}
		if take, ok := scenario.Take(name); ok {
			fmt.Printf("[*] Replaying take %d (%s) from %s\n", take.ID, take.Shot, filepath.Base(latest))
			play := renderer.NewPlayback(take, renderer.NewRig(cfg.RigRate))
			dt := 1 / float32(cfg.FPS)
			for i := 0; i < samples; i++ {
				track = append(track, play.Update(dt, float32(i)/float32(samples)))
			}
			return track, nil
		}
	}

	fn, err := shot.Lookup(name)
	if err != nil {
		return nil, err
	}
	sampler := path.NewSampler(curve)
	for i := 0; i < samples; i++ {
		track = append(track, fn(sampler, float32(i)/float32(samples)))
	}
	return track, nil
}

func runPreview(ctx context.Context, cfg config.Config, scene *config.Scene, curve *path.Curve, logger *slog.Logger) error {
	opts := preview.DefaultOptions()
	opts.Width, opts.Height = cfg.Width, cfg.Height

	track, err := previewTrack(cfg, curve)
	if err != nil {
		return err
	}

	stamp := time.Now().Format("2006-01-02_15-04-05")
	planPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("plan_%s_%s.png", cfg.Shot, stamp))
	plan := preview.Scene{Curve: curve, Track: track, Focus: scene.Targets()}
	if err := preview.RenderFile(plan, opts, preview.DefaultPalette, planPath); err != nil {
		return err
	}
	fmt.Printf("[+] Plan: %s\n", planPath)

	// the field is drawn after a short simulation so revealed objects show
	e, err := newEngine(cfg, scene, curve, logger)
	if err != nil {
		return err
	}
	defer e.Close()
	if _, err := e.Simulate(ctx, cfg.Frames, cfg.FPS, nil); err != nil {
		return err
	}

	origin := choreo.GridOrigin(cfg.GridSize)
	objects := append([]choreo.Object(nil), e.Objects()...)
	for i := range objects {
		objects[i].Base = objects[i].Base.Add(origin)
	}
	fieldPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("field_%s_%s.png", cfg.Pattern, stamp))
	field := preview.Scene{
		Objects: objects,
		Track:   []shot.Pose{e.Choreographer().CameraPose()},
	}
	if err := preview.RenderFile(field, opts, preview.DefaultPalette, fieldPath); err != nil {
		return err
	}
	fmt.Printf("[+] Field: %s\n", fieldPath)
	return nil
}

func runSimulate(ctx context.Context, cfg config.Config, scene *config.Scene, curve *path.Curve, logger *slog.Logger) error {
	e, err := newEngine(cfg, scene, curve, logger)
	if err != nil {
		return err
	}
	defer e.Close()

	fmt.Printf("[*] Simulating %d frames at %d fps: shot=%s pattern=%s reveal=%s\n",
		cfg.Frames, cfg.FPS, cfg.Shot, cfg.Pattern, cfg.RevealStyle)
	report, err := e.Simulate(ctx, cfg.Frames, cfg.FPS, nil)
	if err != nil {
		return err
	}
	if report.StatsErr != nil {
		fmt.Printf("[!] Process stats unavailable: %v\n", report.StatsErr)
	}

	if cfg.ShowStats {
		fmt.Print(report)
	}
	last := report.Last
	fmt.Printf("[+] Done: %d frames in %.3fs (%.0f fps), camera at (%.2f, %.2f, %.2f), model %.0f%%\n",
		report.Frames, report.Wall.Seconds(), report.FPS(),
		last.Camera.Position.X, last.Camera.Position.Y, last.Camera.Position.Z, last.Reveal*100)
	return nil
}

func runTUI(cfg config.Config, scene *config.Scene, curve *path.Curve, logger *slog.Logger) error {
	e, err := newEngine(cfg, scene, curve, logger)
	if err != nil {
		return err
	}
	defer e.Close()
	return tui.Run(e, cfg.FPS)
}
