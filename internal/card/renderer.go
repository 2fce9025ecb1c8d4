package card

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log/slog"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/tartampluch/birthday-cards/internal/config"
)

// Renderer draws fixed-size greeting cards. Font faces are built once; if the
// embedded Go font cannot be prepared the renderer degrades to the fixed
// basic font, mirroring the usual "nice font, else default" behavior.
type Renderer struct {
	titleFace font.Face
	bodyFace  font.Face
}

// NewRenderer constructs a Renderer with title and body faces.
func NewRenderer() *Renderer {
	r := &Renderer{
		titleFace: basicfont.Face7x13,
		bodyFace:  basicfont.Face7x13,
	}

	ft, err := opentype.Parse(goregular.TTF)
	if err != nil {
		slog.Warn(config.ErrFontFace,
			config.LogKeyComponent, config.CompCard,
			config.LogKeyError, err)
		return r
	}

	title, errTitle := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    config.CardTitleFontSize,
		DPI:     config.CardFontDPI,
		Hinting: font.HintingFull,
	})
	body, errBody := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    config.CardBodyFontSize,
		DPI:     config.CardFontDPI,
		Hinting: font.HintingFull,
	})
	if errTitle != nil || errBody != nil {
		slog.Warn(config.ErrFontFace,
			config.LogKeyComponent, config.CompCard,
			config.LogKeyError, fmt.Errorf("title: %v, body: %v", errTitle, errBody))
		return r
	}

	r.titleFace = title
	r.bodyFace = body
	return r
}

// Render produces the 400x300 card bitmap: preset background, centered
// localized title line, and the message word-wrapped and centered below.
func (r *Renderer) Render(presetName, recipient, message string) *image.RGBA {
	preset := LookupPreset(presetName)

	img := image.NewRGBA(image.Rect(0, 0, config.CardWidth, config.CardHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(preset.Background), image.Point{}, draw.Src)

	title := fmt.Sprintf(config.CardTitleFormat, recipient)
	r.drawCentered(img, r.titleFace, preset, title, config.CardTitleY)

	y := config.CardBodyStartY
	for _, line := range wrapLines(r.bodyFace, message, config.CardWidth-2*config.CardMarginX) {
		r.drawCentered(img, r.bodyFace, preset, line, y)
		y += config.CardLineSpacing
	}

	slog.Debug(config.MsgCardRendered,
		config.LogKeyComponent, config.CompCard,
		config.LogKeyPreset, preset.Name,
		config.LogKeyName, recipient)

	return img
}

// EncodePNG serializes a rendered card for download or serving.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrPNGEncode, err)
	}
	return buf.Bytes(), nil
}

// drawCentered renders one line horizontally centered with its baseline at y.
func (r *Renderer) drawCentered(img *image.RGBA, face font.Face, preset Preset, text string, y int) {
	width := font.MeasureString(face, text).Ceil()
	x := (config.CardWidth - width) / 2
	if x < config.CardMarginX {
		x = config.CardMarginX
	}

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(preset.Text),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// wrapLines greedily packs words into lines no wider than maxWidth pixels.
// A single word wider than maxWidth gets its own line rather than being split.
func wrapLines(face font.Face, message string, maxWidth int) []string {
	words := strings.Fields(message)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var current []string

	for _, word := range words {
		candidate := strings.Join(append(current, word), config.CharSpace)
		if font.MeasureString(face, candidate).Ceil() <= maxWidth {
			current = append(current, word)
			continue
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, config.CharSpace))
		}
		current = []string{word}
	}

	if len(current) > 0 {
		lines = append(lines, strings.Join(current, config.CharSpace))
	}
	return lines
}
