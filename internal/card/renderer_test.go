package card_test

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/birthday-cards/internal/card"
	"github.com/tartampluch/birthday-cards/internal/config"
)

// TestRender_Dimensions verifies the fixed 400x300 card size.
func TestRender_Dimensions(t *testing.T) {
	r := card.NewRenderer()

	img := r.Render(config.PresetClassic, "Jane", "Happy day!")

	require.NotNil(t, img)
	assert.Equal(t, config.CardWidth, img.Bounds().Dx())
	assert.Equal(t, config.CardHeight, img.Bounds().Dy())
}

// TestRender_PresetBackground samples a corner pixel, which text never
// reaches, to confirm the preset background fill.
func TestRender_PresetBackground(t *testing.T) {
	r := card.NewRenderer()

	tests := []struct {
		preset   string
		expected color.RGBA
	}{
		{config.PresetClassic, color.RGBA{R: 0xFF, G: 0xE4, B: 0xE1, A: 0xFF}},
		{config.PresetModern, color.RGBA{R: 0xE6, G: 0xE6, B: 0xFA, A: 0xFF}},
		{config.PresetFun, color.RGBA{R: 0xFF, G: 0xB6, B: 0xC1, A: 0xFF}},
		{config.PresetElegant, color.RGBA{R: 0xF0, G: 0xF8, B: 0xFF, A: 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			img := r.Render(tt.preset, "Jane", "msg")
			assert.Equal(t, tt.expected, img.RGBAAt(0, config.CardHeight-1))
		})
	}
}

// TestRender_UnknownPresetFallsBack verifies a stale preference value renders
// with the Classic style instead of failing.
func TestRender_UnknownPresetFallsBack(t *testing.T) {
	r := card.NewRenderer()

	img := r.Render("Vaporwave", "Jane", "msg")

	classic := card.LookupPreset(config.PresetClassic)
	assert.Equal(t, classic.Background, img.RGBAAt(0, 0))
}

// TestRender_DrawsText verifies some pixels change from the background where
// the title line is drawn.
func TestRender_DrawsText(t *testing.T) {
	r := card.NewRenderer()

	img := r.Render(config.PresetClassic, "Jane", "Wishing you a wonderful birthday!")

	background := card.LookupPreset(config.PresetClassic).Background
	touched := false
	for y := config.CardTitleY - 20; y < config.CardTitleY+5 && !touched; y++ {
		for x := config.CardMarginX; x < config.CardWidth-config.CardMarginX; x++ {
			if img.RGBAAt(x, y) != background {
				touched = true
				break
			}
		}
	}
	assert.True(t, touched, "Title text should alter pixels near the title baseline")
}

// TestLookupPreset_Known resolves each built-in preset by name.
func TestLookupPreset_Known(t *testing.T) {
	for _, name := range config.CardPresets {
		assert.Equal(t, name, card.LookupPreset(name).Name)
	}
}

// TestEncodePNG_RoundTrip verifies the encoded bytes are a decodable PNG of
// the right size.
func TestEncodePNG_RoundTrip(t *testing.T) {
	r := card.NewRenderer()
	img := r.Render(config.PresetFun, "Jane", "msg")

	data, err := card.EncodePNG(img)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, config.CardWidth, decoded.Bounds().Dx())
	assert.Equal(t, config.CardHeight, decoded.Bounds().Dy())
}
