package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/wamos0922/ossimg/edit"
	"github.com/wamos0922/ossimg/imagefile"
	"github.com/wamos0922/ossimg/palette"
	"github.com/wamos0922/ossimg/retouch"
	"github.com/wamos0922/ossimg/stages"
)

const version = "0.1.0"

type cli struct {
	LogLevel string           `help:"Log level" enum:"debug,info,warn,error" default:"info"`
	LogJSON  bool             `help:"Log as JSON lines" name:"log-json"`
	LogFile  string           `help:"Write logs to this file instead of stderr, rotated as it grows" type:"path"`
	Version  kong.VersionFlag `help:"Print version and exit"`

	Retouch  retouch.CLICmd `cmd:"" help:"Apply a preset or manual look to every picture of a folder"`
	Stages   stages.CLICmd  `cmd:"" help:"Write every intermediate picture of a manual edit"`
	Presets  presetsCmd     `cmd:"" help:"List the preset looks"`
	Palettes palettesCmd    `cmd:"" help:"List the built-in palettes"`
}

type presetsCmd struct{}

func (presetsCmd) Run(kctx *kong.Context) error {
	for _, p := range edit.Presets() {
		steps := make([]string, len(p.Steps))
		for i, s := range p.Steps {
			steps[i] = s.String()
		}
		if _, err := fmt.Fprintf(kctx.Stdout, "%-16s %s\n", p.Name, strings.Join(steps, " -> ")); err != nil {
			return err
		}
	}
	return nil
}

type palettesCmd struct {
	Export string `help:"Write every built-in palette as <name>.pal into this folder" type:"path"`
}

func (c palettesCmd) Run(kctx *kong.Context) error {
	if c.Export != "" {
		if err := os.MkdirAll(c.Export, 0o755); err != nil {
			return fmt.Errorf("unable to create export folder %q: %w", c.Export, err)
		}
	}

	for _, name := range palette.Names() {
		pal, err := palette.Load(name)
		if err != nil {
			return err
		}
		if _, err = fmt.Fprintf(kctx.Stdout, "%-16s %d colors\n", name, len(pal)); err != nil {
			return err
		}
		if c.Export == "" {
			continue
		}
		path := filepath.Join(c.Export, name+".pal")
		if err = palette.Save(path, pal); err != nil {
			return err
		}
		slog.Info("palette exported", "name", name, "dest", path)
	}
	return nil
}

func newLogger(c *cli) (*slog.Logger, func() error, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}

	out := zapcore.Lock(os.Stderr)
	if c.LogFile != "" {
		out = zapcore.AddSync(&lumberjack.Logger{
			Filename:   c.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		})
	}

	encConf := zap.NewProductionEncoderConfig()
	encConf.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if c.LogJSON {
		enc = zapcore.NewJSONEncoder(encConf)
	} else {
		encConf.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encConf)
	}

	core := zapcore.NewCore(enc, out, level)
	return slog.New(zapslog.NewHandler(core)), core.Sync, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var c cli
	kctx := kong.Parse(&c,
		kong.Name("ossimg"),
		kong.Description("Picture looks: brightness, saturation, sharpness and shadows, alone or as presets."),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, "/etc/ossimg.json", "~/.config/ossimg.json", "ossimg.json"),
		kong.Vars{
			"version":       version,
			"presets":       strings.Join(edit.PresetNames(), ", "),
			"palettes":      strings.Join(palette.Names(), ", "),
			"palettespaces": strings.Join(palette.Spaces(), ", "),
			"formats":       strings.Join(imagefile.Formats, ","),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	logger, sync, err := newLogger(&c)
	kctx.FatalIfErrorf(err)
	slog.SetDefault(logger)
	defer func() {
		_ = sync()
	}()

	slog.Debug("running", "command", kctx.Command())
	if err = kctx.Run(); err != nil {
		slog.Error("command failed", "command", kctx.Command(), "error", err)
		_ = sync()
		stop()
		os.Exit(1)
	}
}
