package imagefile

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for output formats without an encoder.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Formats lists the accepted values for SaveOptions.Format.
var Formats = []string{
	"same",
	"gif", "unsup:gif",
	"jpeg", "unsup:jpeg",
	"png", "unsup:png",
	"bmp", "unsup:bmp",
	"tiff", "unsup:tiff",
}

const DefaultQuality = 95

type SaveOptions struct {
	// Format is the output format. If prefixed with "unsup:" only sources
	// without an encoder (webp) are converted, anything else keeps its format.
	Format string
	// Quality is the JPEG quality, 1 to 100. Zero means DefaultQuality.
	Quality int
	// Suffix is inserted between the base name and the extension.
	Suffix string
}

// OutputFormat resolves the format a source of srcFormat is written as.
func OutputFormat(srcFormat, format string) string {
	format, unsupOnly := strings.CutPrefix(format, "unsup:")
	if (unsupOnly && srcFormat != "webp") || format == "same" || format == "" {
		return srcFormat
	}
	return format
}

// Save encodes img into destDir under srcName with its extension replaced to
// match the output format, and returns the written path. The file is written
// to a temporary name first and renamed into place once complete.
func Save(img image.Image, srcFormat, destDir, srcName string, opts SaveOptions) (dest string, err error) {
	outType := OutputFormat(srcFormat, opts.Format)
	enc, err := encoder(outType, opts.Quality)
	if err != nil {
		return "", err
	}

	base := strings.TrimSuffix(filepath.Base(srcName), filepath.Ext(srcName))
	destName := fmt.Sprintf("%s%s.%s", base, opts.Suffix, outType)
	dest = filepath.Join(destDir, destName)

	outFile, err := os.CreateTemp(destDir, "."+destName+".*")
	if err != nil {
		return "", fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	defer func() {
		if err != nil {
			_ = outFile.Close()
			_ = os.Remove(outFile.Name())
		}
	}()

	if err = enc(outFile, img); err != nil {
		return "", fmt.Errorf("could not encode %s destination %q: %w", strings.ToUpper(outType), destName, err)
	}
	if err = outFile.Sync(); err != nil {
		return "", fmt.Errorf("could not flush temporary destination %q: %w", destName, err)
	}
	if err = outFile.Close(); err != nil {
		return "", fmt.Errorf("could not close temporary destination %q: %w", destName, err)
	}
	if err = os.Rename(outFile.Name(), dest); err != nil {
		return "", fmt.Errorf("could not rename destination file %q: %w", destName, err)
	}
	return dest, nil
}

type encodeFunc func(io.Writer, image.Image) error

func encoder(format string, quality int) (encodeFunc, error) {
	switch format {
	case "gif":
		return func(w io.Writer, img image.Image) error {
			return gif.Encode(w, img, nil)
		}, nil
	case "jpeg":
		if quality <= 0 || quality > 100 {
			quality = DefaultQuality
		}
		return func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
		}, nil
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		return enc.Encode, nil
	case "bmp":
		return bmp.Encode, nil
	case "tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
