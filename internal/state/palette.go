package state

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Palette is the fixed 7-entry color wheel shared by the pad, balls and
// bricks. Bricks index it by id, so a freshly built field comes out as a
// repeating rainbow.
var Palette = [7]rl.Color{
	rl.NewColor(249, 65, 68, 255),   // #f94144
	rl.NewColor(243, 114, 44, 255),  // #f3722c
	rl.NewColor(248, 150, 30, 255),  // #f8961e
	rl.NewColor(249, 199, 79, 255),  // #f9c74f
	rl.NewColor(144, 190, 109, 255), // #90be6d
	rl.NewColor(67, 170, 139, 255),  // #43aa8b
	rl.NewColor(87, 117, 144, 255),  // #577590
}

var paletteNames = map[rl.Color]string{
	Palette[0]: "#f94144",
	Palette[1]: "#f3722c",
	Palette[2]: "#f8961e",
	Palette[3]: "#f9c74f",
	Palette[4]: "#90be6d",
	Palette[5]: "#43aa8b",
	Palette[6]: "#577590",
}

// PaletteColor returns the palette entry for index mod 7.
func PaletteColor(index int) rl.Color {
	return Palette[index%len(Palette)]
}

// ColorName returns the hex name of a palette color, or a formatted
// fallback for anything outside the palette.
func ColorName(c rl.Color) string {
	if name, ok := paletteNames[c]; ok {
		return name
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
