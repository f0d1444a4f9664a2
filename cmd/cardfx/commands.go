package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jenafy/cardfx/internal/catalog"
	"github.com/jenafy/cardfx/internal/config"
	"github.com/jenafy/cardfx/internal/export"
	"github.com/jenafy/cardfx/internal/fx"
	"github.com/jenafy/cardfx/internal/metrics"
	"github.com/jenafy/cardfx/internal/storage"
	"github.com/jenafy/cardfx/internal/surface"
	"github.com/jenafy/cardfx/internal/theme"
	"github.com/jenafy/cardfx/internal/viz"
)

func runTeam(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return runView(cmd.Context(), catalog.Members, cfg)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	engine := args[0]
	member, ok := catalog.MemberFor(engine)
	if !ok {
		member = catalog.Member{Name: engine, Role: "backdrop", Engine: engine, Theme: cfg.Theme}
	}
	if cmd.Flags().Changed("theme") || cmd.Flags().Changed("preset") {
		member.Theme = cfg.Theme
	}
	return runView(cmd.Context(), []catalog.Member{member}, cfg)
}

// runView runs the bubbletea card view, hot reloading --config if given.
func runView(ctx context.Context, members []catalog.Member, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := []viz.Option{viz.WithLogger(logger)}
	if configFile != "" {
		reloads := make(chan *config.Config, 1)
		w, err := config.NewWatcher(configFile, func(c *config.Config) {
			// keep only the newest pending config
			select {
			case <-reloads:
			default:
			}
			reloads <- c
		}, logger)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
		opts = append(opts, viz.WithReloads(reloads))
	}

	m, err := viz.NewModel(members, cfg, opts...)
	if err != nil {
		return err
	}
	defer m.Stop()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	reg := catalog.NewRegistry()
	engines := []string{args[0]}
	if args[0] == "all" {
		engines = reg.Names()
	} else if !reg.Has(args[0]) {
		return fmt.Errorf("%w: %s (available: %s)", fx.ErrUnknownEngine, args[0], strings.Join(reg.Names(), ", "))
	}

	out := outPath
	if out == "" {
		out = "cardfx.gif"
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	for _, engine := range engines {
		engine := engine
		path := out
		if len(engines) > 1 {
			ext := filepath.Ext(out)
			path = strings.TrimSuffix(out, ext) + "-" + engine + ext
		}
		g.Go(func() error {
			return renderEngine(ctx, reg, engine, cfg, path)
		})
	}
	return g.Wait()
}

func renderEngine(ctx context.Context, reg *catalog.Registry, engine string, cfg *config.Config, path string) error {
	th := themeFor(engine, cfg)
	scene, err := reg.New(engine, th, fx.NewRand(cfg.Seed), cfg)
	if err != nil {
		return err
	}
	r, err := surface.NewRaster(cfg.Width, cfg.Height, th.Background)
	if err != nil {
		return err
	}

	start := time.Now()
	images, err := export.Capture(ctx, scene, r, cfg.Frames, every)
	if err != nil {
		return err
	}
	if err := export.WriteFile(path, images, export.DelayFor(cfg.FPS, every)); err != nil {
		return err
	}

	logger.Info("rendered",
		zap.String("engine", engine),
		zap.String("theme", th.Name),
		zap.String("path", path),
		zap.Int("frames", cfg.Frames),
		zap.Int("images", len(images)),
		zap.Duration("elapsed", time.Since(start)),
	)
	fmt.Printf("wrote %s (%d frames, %s)\n", path, len(images), th.Name)
	return nil
}

// themeFor picks the theme: an explicit choice, else the member card's.
func themeFor(engine string, cfg *config.Config) theme.Theme {
	if cfg.Theme != "" && cfg.Theme != config.DefaultTheme {
		return theme.Lookup(cfg.Theme)
	}
	if m, ok := catalog.MemberFor(engine); ok {
		return theme.Lookup(m.Theme)
	}
	return theme.Lookup(cfg.Theme)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	engine := args[0]
	th := themeFor(engine, cfg)
	scene, err := catalog.NewRegistry().New(engine, th, fx.NewRand(cfg.Seed), cfg)
	if err != nil {
		return err
	}

	b := surface.NewBraille(cfg.Card.Cols, cfg.Card.Rows, cfg.Card.Scale, th.Background)
	r := fx.NewRunner(scene, fx.WithLogger(logger))
	if err := r.Start(b, nil); err != nil {
		return err
	}
	defer r.Stop()
	if err := r.RunFrames(cmd.Context(), cfg.Frames); err != nil {
		return err
	}

	if svgPath != "" {
		if err := os.WriteFile(svgPath, []byte(export.BrailleToSVG(b, cfg.Card.Scale)), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
		return nil
	}
	fmt.Print(b.Render())
	return nil
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	engine := args[0]
	th := themeFor(engine, cfg)
	cfg.Theme = th.Name
	cfg.Engine = engine
	scene, err := catalog.NewRegistry().New(engine, th, fx.NewRand(cfg.Seed), cfg)
	if err != nil {
		return err
	}

	rec := surface.NewRecorder(float64(cfg.Width), float64(cfg.Height))
	col := metrics.NewCollector(0, append(metrics.Standard(), metrics.NewDrawCalls(rec))...)
	r := fx.NewRunner(scene, fx.WithLogger(logger), fx.WithObserver(col))
	if err := r.Start(rec, nil); err != nil {
		return err
	}

	start := time.Now()
	err = r.RunFrames(cmd.Context(), cfg.Frames)
	r.Stop()
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(&storage.Run{
		Engine:  engine,
		Seed:    cfg.Seed,
		Elapsed: elapsed,
		Config:  cfg,
		Metrics: col.Values(),
		Samples: col.Samples(),
	})
	if err != nil {
		return err
	}

	logger.Info("recorded run", zap.String("id", runID), zap.Uint64("frames", r.Frames()), zap.Duration("elapsed", elapsed))
	fmt.Printf("run %s\n", runID)
	return printMetrics(os.Stdout, col.Values())
}

func printMetrics(out io.Writer, vals map[string]float64) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, m := range metrics.Standard() {
		fmt.Fprintf(w, "%s\t%.3f\n", m.Name(), vals[m.Name()])
	}
	if v, ok := vals["draw_calls"]; ok {
		fmt.Fprintf(w, "draw_calls\t%.1f\n", v)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tENGINE\tTHEME\tTIME\tFRAMES\tSEED\tPEAK")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%.0f\n",
			run.ID,
			run.Engine,
			run.Theme,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Seed,
			run.Metrics["population_peak"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("engine: %s\n", meta.Engine)
	fmt.Printf("frames: %d\n\n", len(samples))

	series := []struct {
		caption string
		value   func(metrics.Sample) float64
	}{
		{"population", func(s metrics.Sample) float64 { return float64(s.Population) }},
		{"connections", func(s metrics.Sample) float64 { return float64(s.Connections) }},
		{"mean life", func(s metrics.Sample) float64 { return s.MeanLife }},
		{"draw calls", func(s metrics.Sample) float64 { return float64(s.Draws) }},
	}

	var population []float64
	for i, sr := range series {
		data := make([]float64, len(samples))
		nonZero := false
		for j, s := range samples {
			data[j] = sr.value(s)
			nonZero = nonZero || data[j] != 0
		}
		if i == 0 {
			population = data
		}
		if !nonZero {
			continue
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption(sr.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if svgPath != "" {
		th := theme.Lookup(meta.Theme)
		svg := export.SeriesToSVG(population, 640, 240, theme.Hex(th.Palette[0]))
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}
	return nil
}

// openOut returns stdout when no path is given.
func openOut() (io.WriteCloser, error) {
	if outPath == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(outPath)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportCSV(cmd *cobra.Command, args []string) error {
	out, err := openOut()
	if err != nil {
		return err
	}
	defer out.Close()
	return storage.New(dataDir).ExportCSV(args[0], out)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	out, err := openOut()
	if err != nil {
		return err
	}
	defer out.Close()
	return storage.New(dataDir).ExportJSON(args[0], out)
}

func benchEngine(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	engine := args[0]
	reg := catalog.NewRegistry()
	if !reg.Has(engine) {
		return fmt.Errorf("%w: %s", fx.ErrUnknownEngine, engine)
	}
	th := themeFor(engine, cfg)

	factory := func(s int64) (fx.Scene, fx.Surface) {
		scene, _ := reg.New(engine, th, fx.NewRand(s), cfg)
		return scene, surface.NewRecorder(float64(cfg.Width), float64(cfg.Height))
	}

	seedStart := cfg.Seed
	if seedStart == 0 {
		seedStart = 1
	}

	fmt.Printf("benchmarking %s: %d runs x %d frames\n\n", engine, numRuns, cfg.Frames)
	start := time.Now()
	results, err := fx.NewEnsemble(factory, numRuns, seedStart).Run(cmd.Context(), cfg.Frames)
	if err != nil {
		return err
	}
	total := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tFRAMES\tTIME\tFRAMES/S\tPEAK\tFINAL\tLINKS")
	var frameSum uint64
	for _, res := range results {
		rate := 0.0
		if res.Elapsed > 0 {
			rate = float64(res.Frames) / res.Elapsed.Seconds()
		}
		frameSum += res.Frames
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%d\t%d\t%d\n",
			res.Seed,
			res.Frames,
			res.Elapsed.Round(time.Microsecond),
			rate,
			res.PeakPopulation,
			res.Final.Population,
			res.Final.Connections,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ntotal %v, %.0f frames/s across all runs\n", total.Round(time.Millisecond), float64(frameSum)/total.Seconds())
	return nil
}

func listThemes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "THEME\tPALETTE\tBORDER")
	for _, th := range theme.Themes {
		hexes := make([]string, len(th.Palette))
		for i, c := range th.Palette {
			hexes[i] = theme.Hex(c)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", th.Name, strings.Join(hexes, " "), th.Border)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ENGINE\tPRESET\tTHEME")
	for _, engine := range config.ListEngines() {
		for _, name := range config.ListPresets(engine) {
			p := config.GetPreset(engine, name)
			fmt.Fprintf(w, "%s\t%s\t%s\n", engine, name, p.Theme)
		}
	}
	return w.Flush()
}
