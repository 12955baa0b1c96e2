package edit

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/wamos0922/ossimg/enhance"
)

// ErrUnknownPreset is returned by LookupPreset for names it does not know.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named, fixed sequence of adjustments.
type Preset struct {
	Name  string
	Steps []Step
}

// Apply runs the steps left to right, each one consuming the previous output.
func (p Preset) Apply(img image.Image) (*image.NRGBA, error) {
	if len(p.Steps) == 0 {
		if err := enhance.Validate(img); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
		return imaging.Clone(img), nil
	}

	cur := img
	var out *image.NRGBA
	for i, s := range p.Steps {
		fn := s.Op.Func()
		if fn == nil {
			return nil, fmt.Errorf("preset %q step %d: unsupported operation %s", p.Name, i, s.Op)
		}
		var err error
		if out, err = fn(cur, s.Value); err != nil {
			return nil, fmt.Errorf("preset %q step %d (%s): %w", p.Name, i, s, err)
		}
		cur = out
	}
	return out, nil
}

const (
	PresetGoldenHour     = "golden-hour"
	PresetGrittyContrast = "gritty-contrast"
	PresetPastelMatte    = "pastel-matte"
)

// GoldenHour is a warm, soft look: richer colours, lifted shadows and an
// overall glow.
var GoldenHour = Preset{
	Name: PresetGoldenHour,
	Steps: []Step{
		{OpSaturation, 1.30},
		{OpShadows, 0.30},
		{OpBrightness, 1.15},
		{OpSharpness, 0.80},
	},
}

// GrittyContrast is a crisp urban look with crushed shadows and muted colours.
var GrittyContrast = Preset{
	Name: PresetGrittyContrast,
	Steps: []Step{
		{OpSharpness, 2.50},
		{OpBrightness, 0.90},
		{OpShadows, -0.20},
		{OpSaturation, 0.80},
	},
}

// PastelMatte is a bright, washed out look with strongly lifted shadows.
var PastelMatte = Preset{
	Name: PresetPastelMatte,
	Steps: []Step{
		{OpSaturation, 1.10},
		{OpShadows, 0.70},
		{OpBrightness, 1.20},
		{OpSharpness, 0.90},
	},
}

func ApplyGoldenHour(img image.Image) (*image.NRGBA, error) {
	return GoldenHour.Apply(img)
}

func ApplyGrittyContrast(img image.Image) (*image.NRGBA, error) {
	return GrittyContrast.Apply(img)
}

func ApplyPastelMatte(img image.Image) (*image.NRGBA, error) {
	return PastelMatte.Apply(img)
}

// Presets returns the built-in presets.
func Presets() []Preset {
	return []Preset{GoldenHour, GrittyContrast, PastelMatte}
}

// PresetNames returns the names of the built-in presets, in the order of Presets.
func PresetNames() []string {
	presets := Presets()
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

// LookupPreset finds a built-in preset by name.
func LookupPreset(name string) (Preset, error) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}
