package window

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/PixPMusic/gopher-piano/internal/keyboard"
	"github.com/PixPMusic/gopher-piano/internal/scene"
)

// Palette for the keyboard view. Indicator colors are looked up by the
// material color names the keyboard manager writes.
var (
	bodyColor        = color.NRGBA{R: 0x6b, G: 0x44, B: 0x26, A: 0xff}
	housingColor     = color.NRGBA{R: 0x2e, G: 0x2e, B: 0x30, A: 0xff}
	buttonColor      = color.NRGBA{R: 0x8a, G: 0x8a, B: 0x8e, A: 0xff}
	buttonPressed    = color.NRGBA{R: 0x5e, G: 0x5e, B: 0x62, A: 0xff}
	whiteKeyColor    = color.NRGBA{R: 0xf7, G: 0xf5, B: 0xee, A: 0xff}
	whiteKeyPressed  = color.NRGBA{R: 0xd4, G: 0xd1, B: 0xc6, A: 0xff}
	blackKeyColor    = color.NRGBA{R: 0x1d, G: 0x1d, B: 0x1f, A: 0xff}
	blackKeyPressed  = color.NRGBA{R: 0x3c, G: 0x3c, B: 0x40, A: 0xff}
	indicatorPalette = map[string]color.NRGBA{
		"red":   {R: 0xc0, G: 0x27, B: 0x1c, A: 0xff},
		"green": {R: 0x2f, G: 0xc0, B: 0x36, A: 0xff},
	}
)

// pressShift is how many pixels a fully depressed key shifts in the view
// per scene unit of travel.
const pressShift = 14

// pianoView renders the scene graph as a top-down keyboard and translates
// pointer presses into picks delivered to the keyboard manager.
type pianoView struct {
	widget.BaseWidget

	root    *scene.Node
	manager *keyboard.Manager

	// view window in scene coordinates, derived from the key bed
	minX, maxX float64
	minZ, maxZ float64

	// rest positions for rendering press offsets
	rest map[*scene.Node]float64
}

func newPianoView(root *scene.Node, manager *keyboard.Manager) *pianoView {
	v := &pianoView{
		root:    root,
		manager: manager,
		rest:    make(map[*scene.Node]float64),
	}
	if body := root.FindByName(scene.BodyName); body != nil {
		v.minX = body.Position.X - body.Size.X/2
		v.maxX = body.Position.X + body.Size.X/2
		v.minZ = body.Position.Z - body.Size.Z/2
		v.maxZ = body.Position.Z + body.Size.Z/2
	}
	root.Walk(func(n *scene.Node) {
		v.rest[n] = n.Position.Y
	})
	v.ExtendBaseWidget(v)
	return v
}

// toScene converts a widget-local position to scene plane coordinates.
func (v *pianoView) toScene(pos fyne.Position) (x, z float64) {
	size := v.Size()
	if size.Width == 0 || size.Height == 0 {
		return v.minX - 1, v.minZ - 1
	}
	x = v.minX + float64(pos.X)/float64(size.Width)*(v.maxX-v.minX)
	z = v.minZ + float64(pos.Y)/float64(size.Height)*(v.maxZ-v.minZ)
	return x, z
}

// MouseDown resolves the pointer to a scene node and hands it to the
// keyboard manager; a miss resolves to the key bed or nil, both no-ops
// there.
func (v *pianoView) MouseDown(ev *desktop.MouseEvent) {
	x, z := v.toScene(ev.Position)
	v.manager.HandleIntersectedObject(scene.Pick(v.root, x, z))
	v.Refresh()
}

// MouseUp ends the press gesture, releasing every held key at once.
func (v *pianoView) MouseUp(*desktop.MouseEvent) {
	v.manager.ReleaseAllPressedKeys()
	v.Refresh()
}

func (v *pianoView) MinSize() fyne.Size {
	return fyne.NewSize(720, 260)
}

func (v *pianoView) CreateRenderer() fyne.WidgetRenderer {
	r := &pianoRenderer{view: v}
	r.build()
	return r
}

type keySprite struct {
	node  *scene.Node
	rect  *canvas.Rectangle
	label *canvas.Image // nil for black keys
}

type pianoRenderer struct {
	view *pianoView

	background *canvas.Rectangle
	housing    *canvas.Rectangle
	button     *canvas.Circle
	indicator  *canvas.Circle
	whites     []keySprite
	blacks     []keySprite

	indicatorMat *scene.Material
	buttonNode   *scene.Node

	objects []fyne.CanvasObject
}

func (r *pianoRenderer) build() {
	v := r.view

	r.background = canvas.NewRectangle(bodyColor)
	r.background.CornerRadius = 6
	r.objects = append(r.objects, r.background)

	v.root.Walk(func(n *scene.Node) {
		switch {
		case strings.HasPrefix(n.Name, scene.KeyPrefix):
			rect := canvas.NewRectangle(whiteKeyColor)
			rect.CornerRadius = 2
			sprite := keySprite{node: n, rect: rect}
			noteName := strings.TrimPrefix(n.Name, scene.KeyPrefix)
			if strings.Contains(noteName, "#") {
				rect.FillColor = blackKeyColor
				r.blacks = append(r.blacks, sprite)
			} else {
				sprite.label = renderLabel(noteName)
				r.whites = append(r.whites, sprite)
			}
		case n.Name == scene.PowerHousing:
			r.housing = canvas.NewRectangle(housingColor)
			r.housing.CornerRadius = 4
		case n.Name == scene.PowerButton:
			r.button = canvas.NewCircle(buttonColor)
			r.buttonNode = n
		case n.Name == scene.PowerIndicator:
			r.indicator = canvas.NewCircle(indicatorPalette["red"])
			r.indicatorMat = n.Material
		}
	})

	// stacking order: housing below button/indicator, whites below blacks
	if r.housing != nil {
		r.objects = append(r.objects, r.housing)
	}
	for _, s := range r.whites {
		r.objects = append(r.objects, s.rect)
		if s.label != nil {
			r.objects = append(r.objects, s.label)
		}
	}
	for _, s := range r.blacks {
		r.objects = append(r.objects, s.rect)
	}
	if r.button != nil {
		r.objects = append(r.objects, r.button)
	}
	if r.indicator != nil {
		r.objects = append(r.objects, r.indicator)
	}
}

// place positions a canvas object over a node's footprint, shifted down by
// the node's current press travel.
func (r *pianoRenderer) place(obj fyne.CanvasObject, n *scene.Node, size fyne.Size) {
	v := r.view
	sx := float64(size.Width) / (v.maxX - v.minX)
	sy := float64(size.Height) / (v.maxZ - v.minZ)

	press := v.rest[n] - n.Position.Y
	w := float32(n.Size.X * sx)
	h := float32(n.Size.Z * sy)
	x := float32((n.Position.X - n.Size.X/2 - v.minX) * sx)
	y := float32((n.Position.Z-n.Size.Z/2-v.minZ)*sy) + float32(press*pressShift)

	obj.Resize(fyne.NewSize(w, h))
	obj.Move(fyne.NewPos(x, y))
}

func (r *pianoRenderer) Layout(size fyne.Size) {
	v := r.view

	r.background.Resize(size)
	r.background.Move(fyne.NewPos(0, 0))

	for _, s := range append(append([]keySprite{}, r.whites...), r.blacks...) {
		r.place(s.rect, s.node, size)
	}

	sx := float64(size.Width) / (v.maxX - v.minX)
	sy := float64(size.Height) / (v.maxZ - v.minZ)

	for _, s := range r.whites {
		if s.label == nil {
			continue
		}
		ls := s.label.MinSize()
		cx := float32((s.node.Position.X - v.minX) * sx)
		front := float32((s.node.Position.Z + s.node.Size.Z/2 - v.minZ) * sy)
		s.label.Resize(ls)
		s.label.Move(fyne.NewPos(cx-ls.Width/2, front-ls.Height-4))
	}

	if r.housing != nil {
		if n := v.root.FindByName(scene.PowerHousing); n != nil {
			r.place(r.housing, n, size)
		}
	}
	if r.button != nil && r.buttonNode != nil {
		r.place(r.button, r.buttonNode, size)
	}
	if r.indicator != nil {
		if n := v.root.FindByName(scene.PowerIndicator); n != nil {
			d := float32(0.9 * sx)
			cx := float32((n.Position.X - v.minX) * sx)
			cy := float32((n.Position.Z - v.minZ) * sy)
			r.indicator.Resize(fyne.NewSize(d, d))
			r.indicator.Move(fyne.NewPos(cx-d/2, cy-d/2))
		}
	}
}

func (r *pianoRenderer) Refresh() {
	for _, s := range r.whites {
		if r.view.rest[s.node]-s.node.Position.Y > 0.01 {
			s.rect.FillColor = whiteKeyPressed
		} else {
			s.rect.FillColor = whiteKeyColor
		}
	}
	for _, s := range r.blacks {
		if r.view.rest[s.node]-s.node.Position.Y > 0.01 {
			s.rect.FillColor = blackKeyPressed
		} else {
			s.rect.FillColor = blackKeyColor
		}
	}
	if r.button != nil && r.buttonNode != nil {
		if r.view.rest[r.buttonNode]-r.buttonNode.Position.Y > 0.01 {
			r.button.FillColor = buttonPressed
		} else {
			r.button.FillColor = buttonColor
		}
	}
	if r.indicator != nil && r.indicatorMat != nil {
		if c, ok := indicatorPalette[r.indicatorMat.Color]; ok {
			r.indicator.FillColor = c
		}
	}

	r.Layout(r.view.Size())
	canvas.Refresh(r.view)
}

func (r *pianoRenderer) MinSize() fyne.Size {
	return r.view.MinSize()
}

func (r *pianoRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *pianoRenderer) Destroy() {}
