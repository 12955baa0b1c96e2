package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wamos0922/ossimg/edit"
	"github.com/wamos0922/ossimg/imagefile"
	"github.com/wamos0922/ossimg/palette"
)

func newParser(t *testing.T, c *cli, out *bytes.Buffer) *kong.Kong {
	t.Helper()
	parser, err := kong.New(c,
		kong.Name("ossimg"),
		kong.Writers(out, out),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
		kong.Vars{
			"version":       version,
			"presets":       strings.Join(edit.PresetNames(), ", "),
			"palettes":      strings.Join(palette.Names(), ", "),
			"palettespaces": strings.Join(palette.Spaces(), ", "),
			"formats":       strings.Join(imagefile.Formats, ","),
		},
	)
	require.NoError(t, err)
	return parser
}

func TestPresetsCommand(t *testing.T) {
	var c cli
	var out bytes.Buffer
	parser := newParser(t, &c, &out)

	kctx, err := parser.Parse([]string{"presets"})
	require.NoError(t, err)
	require.NoError(t, kctx.Run())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "golden-hour      saturation(1.30) -> shadows(0.30) -> brightness(1.15) -> sharpness(0.80)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "gritty-contrast  sharpness(2.50)"))
	assert.True(t, strings.HasPrefix(lines[2], "pastel-matte     saturation(1.10)"))
}

func TestPalettesCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pals")
	var c cli
	var out bytes.Buffer
	parser := newParser(t, &c, &out)

	kctx, err := parser.Parse([]string{"palettes", "--export", dir})
	require.NoError(t, err)
	require.NoError(t, kctx.Run())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(palette.Names()))
	assert.Equal(t, "bw               2 colors", lines[0])

	for _, name := range palette.Names() {
		pal, err := palette.Load(filepath.Join(dir, name+".pal"))
		require.NoError(t, err, name)
		want, err := palette.Load(name)
		require.NoError(t, err)
		assert.Len(t, pal, len(want), name)
	}
}

func TestRetouchFlags(t *testing.T) {
	dir := t.TempDir()
	var c cli
	var out bytes.Buffer
	parser := newParser(t, &c, &out)

	_, err := parser.Parse([]string{"retouch", "--scan", dir, "--preset", "pastel-matte", "--format", "jpeg", "--workers", "3"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "retouched"), c.Retouch.Dest)
	assert.Equal(t, "pastel-matte", c.Retouch.Preset)
	assert.Equal(t, 1.0, c.Retouch.Brightness)

	_, err = parser.Parse([]string{"retouch", "--scan", dir, "--format", "webp"})
	assert.Error(t, err)

	_, err = parser.Parse([]string{"retouch", "--scan", dir, "--preset", "golden-hour", "--shadows", "0.4"})
	assert.ErrorContains(t, err, "cannot be combined")

	_, err = parser.Parse([]string{"retouch", "--scan", dir, "--palette", "bw", "--palette-space", "oklab"})
	require.NoError(t, err)
	assert.Equal(t, "oklab", c.Retouch.PaletteSpace)
}

func TestNewLogger(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "ossimg.log")
	logger, sync, err := newLogger(&cli{LogLevel: "warn", LogJSON: true, LogFile: logFile})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "file", "a.png")
	require.NoError(t, sync())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), `"msg":"shown"`)
	assert.Contains(t, string(data), `"file":"a.png"`)

	_, _, err = newLogger(&cli{LogLevel: "loud"})
	assert.Error(t, err)
}
