package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jenafy/cardfx/internal/config"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	logFile    string

	seed      int64
	themeName string
	fps       int
	frames    int
	width     int
	height    int
	every     int
	outPath   string
	numRuns   int
	svgPath   string

	logger *zap.Logger
)

// main registers the cardfx commands and runs the team view when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "cardfx",
		Short: "animated team card backdrops",
		Long: `cardfx runs the team card backdrops: a rising code rain and a
drifting field of connected shapes. Run without arguments to see both
member cards live in the terminal.`,
		PersistentPreRunE: setupLogger,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: runTeam,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".cardfx", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file for interactive views")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "theme override")
	rootCmd.PersistentFlags().IntVar(&fps, "fps", config.DefaultFPS, "frames per second")

	teamCmd := &cobra.Command{
		Use:   "team",
		Short: "show every member card live",
		Args:  cobra.NoArgs,
		RunE:  runTeam,
	}

	liveCmd := &cobra.Command{
		Use:   "live [engine]",
		Short: "show a single card live",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}

	renderCmd := &cobra.Command{
		Use:   "render [engine|all]",
		Short: "render frames headlessly to gif or png",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	addFrameFlags(renderCmd)
	renderCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "image width")
	renderCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "image height")
	renderCmd.Flags().IntVar(&every, "every", 2, "keep every n-th frame")
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (.gif or .png)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [engine]",
		Short: "print one braille frame, or write it as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  runSnapshot,
	}
	addFrameFlags(snapshotCmd)
	snapshotCmd.Flags().StringVar(&svgPath, "svg", "", "write svg instead of printing")

	recordCmd := &cobra.Command{
		Use:   "record [engine]",
		Short: "run headlessly and store per-frame metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  runRecord,
	}
	addFrameFlags(recordCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the population plot as svg")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and frames as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	benchCmd := &cobra.Command{
		Use:   "bench [engine]",
		Short: "benchmark an engine over independent seeds",
		Args:  cobra.ExactArgs(1),
		RunE:  benchEngine,
	}
	addFrameFlags(benchCmd)
	benchCmd.Flags().IntVar(&numRuns, "runs", 8, "number of runs")

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list themes",
		RunE:  listThemes,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(teamCmd, liveCmd, renderCmd, snapshotCmd, recordCmd, listCmd, plotCmd,
		exportCSVCmd, exportJSONCmd, benchCmd, themesCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addFrameFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to simulate")
}

func interactive(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "cardfx", "team", "live":
		return true
	}
	return false
}

// setupLogger builds a production logger. Interactive views own the
// terminal, so they log to --log-file or not at all.
func setupLogger(cmd *cobra.Command, args []string) error {
	if interactive(cmd) && logFile == "" {
		logger = zap.NewNop()
		return nil
	}

	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if logFile != "" {
		cfg.OutputPaths = []string{logFile}
		cfg.ErrorOutputPaths = []string{logFile}
	}

	var err error
	logger, err = cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// loadConfig resolves the config file, preset and flag overrides, in that
// order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if preset != "" {
		p := config.FindPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (see cardfx presets)", preset)
		}
		config.ApplyPreset(cfg, p)
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
