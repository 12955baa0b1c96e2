package stages

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 6, 6))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 5)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func newCmd(file string) *CLICmd {
	return &CLICmd{
		File:       file,
		Dest:       "stages",
		Saturation: 1.2,
		Shadows:    0.3,
		Brightness: 1.1,
		Sharpness:  1.5,
		Format:     "unsup:png",
		Quality:    95,
	}
}

func TestStagesAll(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "photo.png")
	writePNG(t, file)

	cmd := newCmd(file)
	require.NoError(t, cmd.Validate(nil))
	written, err := cmd.run()
	require.NoError(t, err)

	stagesDir := filepath.Join(dir, "stages")
	assert.Equal(t, []string{
		filepath.Join(stagesDir, "photo.01-saturation.png"),
		filepath.Join(stagesDir, "photo.02-shadows.png"),
		filepath.Join(stagesDir, "photo.03-brightness.png"),
		filepath.Join(stagesDir, "photo.04-sharpness.png"),
	}, written)
	for _, path := range written {
		_, err := os.Stat(path)
		assert.NoError(t, err)
	}
}

func TestStagesUntil(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "photo.png")
	writePNG(t, file)

	cmd := newCmd(file)
	cmd.Until = "shadows"
	cmd.Format = "jpeg"
	require.NoError(t, cmd.Validate(nil))
	written, err := cmd.run()
	require.NoError(t, err)
	require.Len(t, written, 2)
	assert.Equal(t, "photo.02-shadows.jpeg", filepath.Base(written[1]))

	entries, err := os.ReadDir(filepath.Join(dir, "stages"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestStagesValidate(t *testing.T) {
	cmd := newCmd("photo.png")
	cmd.Until = "contrast"
	assert.ErrorContains(t, cmd.Validate(nil), `unknown stage "contrast"`)

	cmd = newCmd("photo.png")
	cmd.Quality = 101
	assert.ErrorContains(t, cmd.Validate(nil), "invalid JPEG quality")
}

func TestStagesMissingFile(t *testing.T) {
	cmd := newCmd(filepath.Join(t.TempDir(), "missing.png"))
	require.NoError(t, cmd.Validate(nil))
	assert.ErrorIs(t, cmd.Run(), os.ErrNotExist)
}
