package window

import (
	"image"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
)

// renderLabel draws a small anti-aliased text image for a key label using
// freetype, with the font from Fyne's theme.
func renderLabel(text string) *canvas.Image {
	fontResource := theme.DefaultTextFont()
	fontBytes := fontResource.Content()

	f, err := freetype.ParseFont(fontBytes)
	if err != nil {
		log.Printf("Failed to parse font: %v", err)
		// Fallback to empty image
		return canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	}

	fontSize := float64(11)
	dpi := float64(72)

	c := freetype.NewContext()
	c.SetFont(f)
	c.SetFontSize(fontSize)
	c.SetDPI(dpi)

	opts := truetype.Options{Size: fontSize, DPI: dpi}
	face := truetype.NewFace(f, &opts)
	defer face.Close()

	// Measure text width
	textWidth := 0
	for _, r := range text {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}
		textWidth += adv.Round()
	}

	metrics := face.Metrics()
	ascent := metrics.Ascent.Round()
	textHeight := ascent + metrics.Descent.Round()

	padding := 2
	imgWidth := textWidth + padding*2
	imgHeight := textHeight + padding*2

	srcImg := image.NewRGBA(image.Rect(0, 0, imgWidth, imgHeight))

	c.SetClip(srcImg.Bounds())
	c.SetDst(srcImg)
	c.SetSrc(image.NewUniform(blackKeyColor))

	pt := freetype.Pt(padding, padding+ascent)
	if _, err := c.DrawString(text, pt); err != nil {
		log.Printf("Failed to draw string: %v", err)
	}

	img := canvas.NewImageFromImage(srcImg)
	img.FillMode = canvas.ImageFillOriginal
	img.SetMinSize(fyne.NewSize(float32(imgWidth), float32(imgHeight)))
	return img
}
