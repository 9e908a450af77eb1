package scene

import "github.com/PixPMusic/gopher-piano/internal/note"

// Node names the interaction layer looks up.
const (
	RootName       = "pianoKeyboard"
	BodyName       = "keyboardBody"
	KeyPrefix      = "Key_"
	PowerButton    = "powerButton"
	PowerHousing   = "powerButtonHousing"
	PowerIndicator = "powerIndicator"
)

// Keyboard geometry, in scene units. White keys are laid out along X with
// a small gap; black keys straddle the boundary between neighbouring
// whites, sit higher and reach only partway down the key bed.
const (
	whiteKeyWidth = 2.2
	whiteKeyDepth = 10.0
	whiteKeyPitch = 2.3
	blackKeyWidth = 1.3
	blackKeyDepth = 6.0

	whiteKeyTopY = 1.0
	blackKeyTopY = 1.6
)

// BuildKeyboard constructs the full keyboard model: the key bed, the 25
// keys of note.All named KeyPrefix+<note>, and the power button group with
// its indicator. The returned root is what the keyboard manager scans at
// initialization.
func BuildKeyboard() *Node {
	root := &Node{Name: RootName}

	span := 15 * whiteKeyPitch // 15 white keys C3..C5
	body := &Node{
		Name:     BodyName,
		Position: Vec3{X: span / 2, Y: -0.5, Z: whiteKeyDepth / 2},
		Size:     Vec3{X: span + 6, Y: 1, Z: whiteKeyDepth + 4},
	}
	root.Add(body)

	white := 0
	var lastWhiteX float64
	for _, n := range note.All {
		key := &Node{Name: KeyPrefix + string(n)}
		if n.IsAccidental() {
			key.Position = Vec3{
				X: lastWhiteX + whiteKeyPitch/2,
				Y: blackKeyTopY - 0.5,
				Z: blackKeyDepth / 2,
			}
			key.Size = Vec3{X: blackKeyWidth, Y: 1, Z: blackKeyDepth}
		} else {
			x := float64(white)*whiteKeyPitch + whiteKeyWidth/2
			key.Position = Vec3{X: x, Y: whiteKeyTopY - 0.5, Z: whiteKeyDepth / 2}
			key.Size = Vec3{X: whiteKeyWidth, Y: 1, Z: whiteKeyDepth}
			lastWhiteX = x
			white++
		}
		root.Add(key)
	}

	housing := &Node{
		Name:     PowerHousing,
		Position: Vec3{X: -2.4, Y: 0.2, Z: 2.2},
		Size:     Vec3{X: 3.2, Y: 1.4, Z: 3.2},
	}
	button := &Node{
		Name:     PowerButton,
		Position: Vec3{X: -2.4, Y: 1.1, Z: 2.2},
		Size:     Vec3{X: 1.6, Y: 0.5, Z: 1.6},
	}
	indicator := &Node{
		Name:     PowerIndicator,
		Position: Vec3{X: -2.4, Y: 0.95, Z: 4.0},
		Material: &Material{Color: "red"},
	}
	housing.Add(button, indicator)
	root.Add(housing)

	return root
}
