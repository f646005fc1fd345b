// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package jobgraph

// A Color tags a job for profiling and visualization tools. It has no effect
// on scheduling.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Predefined colors.
var (
	ColorBlack      = RGB(0, 0, 0)
	ColorDarkRed    = RGB(128, 0, 0)
	ColorRed        = RGB(255, 0, 0)
	ColorDarkGreen  = RGB(0, 128, 0)
	ColorGreen      = RGB(0, 255, 0)
	ColorDarkBlue   = RGB(0, 0, 128)
	ColorBlue       = RGB(0, 0, 255)
	ColorYellow     = RGB(255, 255, 0)
	ColorPurple     = RGB(255, 0, 255)
	ColorCyan       = RGB(0, 255, 255)
	ColorOrange     = RGB(255, 128, 0)
	ColorDarkOrange = RGB(128, 64, 0)
	ColorGrey       = RGB(128, 128, 128)
	ColorLightGrey  = RGB(192, 192, 192)
	ColorWhite      = RGB(255, 255, 255)
)

// A palette of visually distinct colors for tagging related groups of jobs.
var distinctColors = [...]Color{
	RGB(255, 0, 0), RGB(204, 143, 102), RGB(226, 242, 0), RGB(41, 166, 124),
	RGB(0, 170, 255), RGB(69, 38, 153), RGB(153, 38, 130), RGB(229, 57, 80),
	RGB(204, 0, 0), RGB(255, 170, 0), RGB(85, 128, 0), RGB(64, 255, 217),
	RGB(0, 75, 140), RGB(161, 115, 230), RGB(242, 61, 157), RGB(178, 101, 89),
	RGB(140, 94, 0), RGB(181, 217, 108), RGB(64, 242, 255), RGB(77, 117, 153),
	RGB(157, 61, 242), RGB(140, 0, 56), RGB(127, 57, 32), RGB(204, 173, 51),
	RGB(64, 255, 64), RGB(38, 145, 153), RGB(0, 102, 255), RGB(242, 0, 226),
	RGB(153, 77, 107), RGB(229, 92, 0), RGB(140, 126, 70), RGB(0, 179, 71),
	RGB(0, 194, 242), RGB(27, 0, 204), RGB(230, 115, 222), RGB(127, 0, 17),
}

// DistinctColor returns a color from a fixed palette of maximally distinct
// colors, cycling when the index exceeds the palette size.
func DistinctColor(i int) Color {
	if i < 0 {
		panic("color index must be non-negative")
	}
	return distinctColors[i%len(distinctColors)]
}
