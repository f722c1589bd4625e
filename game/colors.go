package game

import "image/color"

var (
	tableColor     = color.RGBA{0, 102, 51, 255}
	frameColor     = color.RGBA{65, 40, 14, 255}
	borderColor    = color.RGBA{0, 0, 0, 255}
	faceColor      = color.RGBA{120, 63, 25, 255}
	triangleA      = color.RGBA{225, 188, 125, 255}
	triangleALight = color.RGBA{255, 218, 155, 255}
	triangleB      = color.RGBA{120, 17, 0, 255}

	lightCheckerColor = color.RGBA{232, 211, 162, 255}
	darkCheckerColor  = color.RGBA{0, 0, 0, 255}

	highlightColor = color.RGBA{255, 255, 255, 51}
	selectedColor  = color.RGBA{255, 218, 0, 255}
)

var noticeColors = [...]color.RGBA{
	triangleALight,
	{120, 220, 120, 255},
	{255, 190, 60, 255},
	{255, 90, 80, 255},
}
