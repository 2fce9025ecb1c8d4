package card

import (
	"image/color"

	"github.com/tartampluch/birthday-cards/internal/config"
)

// Preset is a named background/text color pairing applied when rendering.
type Preset struct {
	Name       string
	Background color.RGBA
	Text       color.RGBA
}

// presets holds the four built-in card styles.
var presets = map[string]Preset{
	config.PresetClassic: {
		Name:       config.PresetClassic,
		Background: color.RGBA{R: 0xFF, G: 0xE4, B: 0xE1, A: 0xFF}, // misty rose
		Text:       color.RGBA{R: 0x8B, G: 0x00, B: 0x00, A: 0xFF}, // dark red
	},
	config.PresetModern: {
		Name:       config.PresetModern,
		Background: color.RGBA{R: 0xE6, G: 0xE6, B: 0xFA, A: 0xFF}, // lavender
		Text:       color.RGBA{R: 0x4B, G: 0x00, B: 0x82, A: 0xFF}, // indigo
	},
	config.PresetFun: {
		Name:       config.PresetFun,
		Background: color.RGBA{R: 0xFF, G: 0xB6, B: 0xC1, A: 0xFF}, // light pink
		Text:       color.RGBA{R: 0xFF, G: 0x14, B: 0x93, A: 0xFF}, // deep pink
	},
	config.PresetElegant: {
		Name:       config.PresetElegant,
		Background: color.RGBA{R: 0xF0, G: 0xF8, B: 0xFF, A: 0xFF}, // alice blue
		Text:       color.RGBA{R: 0x19, G: 0x19, B: 0x70, A: 0xFF}, // midnight blue
	},
}

// LookupPreset resolves a preset by name, falling back to Classic for unknown
// names so rendering never fails on a stale preference value.
func LookupPreset(name string) Preset {
	if p, ok := presets[name]; ok {
		return p
	}
	return presets[config.PresetClassic]
}
