// Package main provides the CLI entry point for video-analyzer.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/kmmndr/video_analyzer/internal/analyzer"
	"github.com/kmmndr/video_analyzer/internal/config"
	"github.com/kmmndr/video_analyzer/internal/logger"
	"github.com/kmmndr/video_analyzer/internal/report"
)

var (
	version = "dev"
	now     = time.Now
)

// CLI defines the command-line interface.
type CLI struct {
	Video string `arg:"" help:"Path to the input video file."`

	Mode      string  `short:"m" required:"" enum:"shake,face,object" help:"Detection mode: camera shake, face, or object detection."`
	Output    string  `short:"o" help:"Path to save the output JSON file (default: <video>_<mode>_<timestamp>.json)."`
	Threshold float64 `short:"t" default:"0.5" help:"Motion threshold for camera shake detection."`

	Config     string   `short:"c" help:"YAML file with optical flow and cascade parameters."`
	CascadeDir []string `help:"Additional directory to search for Haar cascade files."`

	LogLevel  string `short:"l" default:"info" enum:"debug,info,warn,error,quiet" help:"Log level (debug, info, warn, error, quiet)."`
	LogFormat string `default:"console" enum:"console,json" help:"Log format (console, json)."`
	Quiet     bool   `short:"Q" help:"Suppress all log output."`

	Version kong.VersionFlag `help:"Show version information."`
}

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("video-analyzer"),
		kong.Description("Detect camera shake, faces or objects in a video file."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	if err := ctx.Run(); err != nil {
		os.Exit(1)
	}
}

func (cli *CLI) newLogger() logger.Logger {
	level := logger.ParseLogLevel(cli.LogLevel)
	switch {
	case cli.Quiet:
		return logger.NewNoop()
	case cli.LogFormat == "json":
		return logger.NewJSON(level)
	default:
		return logger.NewConsole(level)
	}
}

// Run executes the analysis.
func (cli *CLI) Run() error {
	log := cli.newLogger()
	if jsonLog, ok := log.(*logger.JSONLogger); ok {
		defer jsonLog.Sync()
	}

	if err := cli.run(log); err != nil {
		log.Error("Analysis failed: %s", err)
		return err
	}
	return nil
}

func (cli *CLI) run(log logger.Logger) error {
	if info, err := os.Stat(cli.Video); err != nil || info.IsDir() {
		return fmt.Errorf("%w: video file '%s' not found", analyzer.ErrIO, cli.Video)
	}

	mode, err := analyzer.ParseMode(cli.Mode)
	if err != nil {
		return err
	}

	cfg := config.Defaults()
	if cli.Config != "" {
		if cfg, err = config.Load(cli.Config); err != nil {
			return fmt.Errorf("%w: %w", analyzer.ErrConfig, err)
		}
		log.Debug("Using detector config %s", cli.Config)
	}

	output := cli.Output
	if output == "" {
		output = report.DefaultOutputPath(cli.Video, string(mode), now())
	}

	log.Info("Analyzing video: %s", cli.Video)
	log.Info("Mode: %s", mode)
	log.Info("Output will be saved to: %s", output)

	summary, err := analyzer.New(log).Run(analyzer.Options{
		VideoPath:   cli.Video,
		Mode:        mode,
		Threshold:   cli.Threshold,
		Config:      cfg,
		CascadeDirs: cli.CascadeDir,
	})
	if err != nil {
		return err
	}

	if err := report.NewWriter().Write(output, summary); err != nil {
		return fmt.Errorf("%w: %w", analyzer.ErrIO, err)
	}

	switch mode {
	case analyzer.ModeShake:
		log.Info("Analysis complete. Found %d camera shake events.", summary.Total())
	case analyzer.ModeFace:
		log.Info("Analysis complete. Found faces in %d frames.", summary.Total())
	case analyzer.ModeObject:
		log.Info("Analysis complete. Found objects in %d frames.", summary.Total())
	}
	log.Info("Results saved to: %s", output)

	return nil
}

