package palette

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"io"

	"golang.org/x/image/riff"
)

/*
A PAL file is a RIFF form of type "PAL " holding "data" chunks, each a
LOGPALETTE:

typedef struct tagLOGPALETTE {
  WORD         palVersion;    // 0x0300
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1]; // R, G, B, flags
} LOGPALETTE;
*/

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

const palVersion = 0x0300

// ReadRIFF reads every palette stored in a RIFF PAL stream.
func ReadRIFF(r io.Reader) ([]color.Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %q", string(formType[:]))
	}

	return readPalettes(rd)
}

func readPalettes(r *riff.Reader) ([]color.Palette, error) {
	var res []color.Palette
	for {
		id, size, data, err := r.Next()
		if errors.Is(err, io.EOF) {
			return res, nil
		} else if err != nil {
			return res, fmt.Errorf("could not read chunk #%d: %w", len(res), err)
		}

		switch id {
		case riff.LIST:
			listType, list, err := riff.NewListReader(size, data)
			if err != nil {
				return res, fmt.Errorf("could not read list chunk #%d: %w", len(res), err)
			} else if listType != palType {
				return res, fmt.Errorf("unsupported list type in chunk #%d: %q", len(res), string(listType[:]))
			}
			pals, err := readPalettes(list)
			res = append(res, pals...)
			if err != nil {
				return res, err
			}
		case dataType:
			pal, err := readPalette(data)
			if err != nil {
				return res, fmt.Errorf("chunk #%d: %w", len(res), err)
			}
			res = append(res, pal)
		default:
			// Unknown chunks are skipped by the next call to Next.
		}
	}
}

func readPalette(r io.Reader) (color.Palette, error) {
	var hdr struct {
		Version uint16
		Count   uint16
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("could not read palette header: %w", err)
	} else if hdr.Version != palVersion {
		return nil, fmt.Errorf("unsupported palette version: %#04x", hdr.Version)
	}

	entries := make([]byte, int(hdr.Count)*4)
	if _, err := io.ReadFull(r, entries); err != nil {
		return nil, fmt.Errorf("could not read %d colors: %w", hdr.Count, err)
	}

	res := make(color.Palette, hdr.Count)
	for i := range res {
		e := entries[i*4 : i*4+4]
		res[i] = color.RGBA{R: e[0], G: e[1], B: e[2], A: 0xff}
	}
	return res, nil
}

// WriteRIFF stores pals as a RIFF PAL stream, one data chunk per palette. It
// returns the number of bytes written.
func WriteRIFF(w io.Writer, pals []color.Palette) (int64, error) {
	size := 4
	for _, pal := range pals {
		size += 8 + 4 + len(pal)*4 // chunk header + LOGPALETTE header + entries
	}

	buf := make([]byte, 0, 8+size)
	buf = append(buf, riffType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(size))
	buf = append(buf, palType[:]...)
	for _, pal := range pals {
		buf = append(buf, dataType[:]...)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(4+len(pal)*4))
		buf = binary.LittleEndian.AppendUint16(buf, palVersion)
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(pal)))
		for _, col := range pal {
			c := color.RGBAModel.Convert(col).(color.RGBA)
			buf = append(buf, c.R, c.G, c.B, 0)
		}
	}

	n, err := w.Write(buf)
	if err != nil {
		return int64(n), fmt.Errorf("could not write palette: %w", err)
	}
	return int64(n), nil
}
