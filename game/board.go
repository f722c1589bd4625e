package game

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"codeberg.org/tslocum/gotext"
	"codeberg.org/tslocum/pips/model"
	"codeberg.org/tslocum/pips/session"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// Checkers drawn per point before the rest is shown as a count.
	maxPointStack = 6
	// Checkers drawn on each half of the bar.
	maxBarStack = 5
)

var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.White)
}

// board draws the game and maps screen positions to board locations.
type board struct {
	x, y, w, h int

	spaceWidth           float64
	barWidth             float64
	horizontalBorderSize float64
	verticalBorderSize   float64
	innerW, innerH       int

	// perspective is the colour whose home is drawn in the bottom right.
	perspective model.Color

	// Rectangles relative to the board: x, y, w, h.
	pointRects [model.NumPoints + 1][4]int
	barRects   [2][4]int
	offRects   [2][4]int

	backgroundImage *ebiten.Image
	highlightImage  *ebiten.Image

	vertices []ebiten.Vertex
	indices  []uint16
}

func newBoard() *board {
	return &board{
		perspective: model.Black,
	}
}

// setRect sets the position and size of the board on the screen.
func (b *board) setRect(r image.Rectangle) {
	if r.Min.X == b.x && r.Min.Y == b.y && r.Dx() == b.w && r.Dy() == b.h {
		return
	}
	b.x, b.y, b.w, b.h = r.Min.X, r.Min.Y, r.Dx(), r.Dy()
	if b.w <= 0 || b.h <= 0 {
		return
	}

	// Twelve points, the bar and the bear-off tray with half a column of
	// frame on each side of the playing area and the tray.
	b.spaceWidth = float64(b.w) / 15.5
	b.barWidth = b.spaceWidth
	b.horizontalBorderSize = b.spaceWidth / 2
	b.verticalBorderSize = b.spaceWidth / 2
	b.innerW = int(b.spaceWidth*12 + b.barWidth)
	b.innerH = b.h - int(b.verticalBorderSize*2)

	b.setSpaceRects()
	b.updateBackgroundImage()
}

// setPerspective sets the colour the board is drawn for.
func (b *board) setPerspective(c model.Color) {
	if c == b.perspective {
		return
	}
	b.perspective = c
	if b.w > 0 && b.h > 0 {
		b.setSpaceRects()
		b.updateBackgroundImage()
	}
}

// cell returns the column (1-13, 7 is the bar) and row (1 top, 2 bottom)
// where point is drawn. Each player sees their own home in the bottom right.
func (b *board) cell(point int) (column int, row int) {
	switch {
	case point <= 6:
		column, row = 14-point, 2
	case point <= 12:
		column, row = 13-point, 2
	case point <= 18:
		column, row = point-12, 1
	default:
		column, row = point-11, 1
	}
	if b.perspective == model.White {
		row = 3 - row
	}
	return column, row
}

func (b *board) setSpaceRects() {
	halfH := b.innerH / 2
	top, bottom := int(b.verticalBorderSize), int(b.verticalBorderSize)+halfH
	w := int(b.spaceWidth)

	for point := 1; point <= model.NumPoints; point++ {
		column, row := b.cell(point)
		x := int(b.horizontalBorderSize + b.spaceWidth*float64(column-1))
		if column > 7 {
			x = int(b.horizontalBorderSize + b.spaceWidth*float64(column-2) + b.barWidth)
		}
		y := top
		if row == 2 {
			y = bottom
		}
		b.pointRects[point] = [4]int{x, y, w, halfH}
	}

	me, opponent := b.perspective, b.perspective.Opponent()

	barX := int(b.horizontalBorderSize + b.spaceWidth*6)
	b.barRects[me] = [4]int{barX, top, int(b.barWidth), halfH}
	b.barRects[opponent] = [4]int{barX, bottom, int(b.barWidth), halfH}

	trayX := int(b.horizontalBorderSize*2) + b.innerW
	b.offRects[me] = [4]int{trayX, bottom, w, halfH}
	b.offRects[opponent] = [4]int{trayX, top, w, halfH}

	highlightHeight := halfH
	if b.highlightImage == nil || b.highlightImage.Bounds().Dx() != w || b.highlightImage.Bounds().Dy() != highlightHeight {
		b.highlightImage = ebiten.NewImage(w, highlightHeight)
		b.highlightImage.Fill(highlightColor)
	}
}

func (b *board) bottomRow(point int) bool {
	_, row := b.cell(point)
	return row == 2
}

// locationAt returns the board location at the screen position x, y. Only
// the local player's half of the bar and bear-off tray are locations.
func (b *board) locationAt(x, y int) (model.Location, bool) {
	x, y = x-b.x, y-b.y
	in := func(r [4]int) bool {
		return x >= r[0] && x < r[0]+r[2] && y >= r[1] && y < r[1]+r[3]
	}
	for point := 1; point <= model.NumPoints; point++ {
		if in(b.pointRects[point]) {
			return model.Point(point), true
		}
	}
	if in(b.barRects[b.perspective]) {
		return model.Bar, true
	} else if in(b.offRects[b.perspective]) {
		return model.BearOff, true
	}
	return model.Location{}, false
}

func (b *board) updateBackgroundImage() {
	if b.backgroundImage == nil || b.backgroundImage.Bounds().Dx() != b.w || b.backgroundImage.Bounds().Dy() != b.h {
		b.backgroundImage = ebiten.NewImage(b.w, b.h)
	}

	// Draw frame.
	b.backgroundImage.Fill(frameColor)

	// Draw face.
	{
		x, y := int(b.horizontalBorderSize), int(b.verticalBorderSize)
		w, h := b.innerW, b.innerH
		b.backgroundImage.SubImage(image.Rect(x, y, x+w, y+h)).(*ebiten.Image).Fill(faceColor)
	}

	// Draw bear-off tray.
	{
		x, y := int(b.horizontalBorderSize*2)+b.innerW, int(b.verticalBorderSize)
		w, h := int(b.spaceWidth), b.innerH
		b.backgroundImage.SubImage(image.Rect(x, y, x+w, y+h)).(*ebiten.Image).Fill(faceColor)
	}

	// Draw bar.
	{
		x, y := int(b.horizontalBorderSize+b.spaceWidth*6), 0
		w, h := int(b.barWidth), b.h
		b.backgroundImage.SubImage(image.Rect(x, y, x+w, y+h)).(*ebiten.Image).Fill(frameColor)
	}

	// Draw triangles.
	triangleHeight := float32(b.innerH) / 2 * 0.85
	for point := 1; point <= model.NumPoints; point++ {
		r := b.pointRects[point]
		x, y, w, h := float32(r[0]), float32(r[1]), float32(r[2]), float32(r[3])

		var path vector.Path
		if b.bottomRow(point) {
			path.MoveTo(x, y+h)
			path.LineTo(x+w/2, y+h-triangleHeight)
			path.LineTo(x+w, y+h)
		} else {
			path.MoveTo(x, y)
			path.LineTo(x+w/2, y+triangleHeight)
			path.LineTo(x+w, y)
		}
		path.Close()

		c := triangleA
		if point%2 == 0 {
			c = triangleB
		}
		b.fillPath(b.backgroundImage, &path, c)
	}

	// Draw border.
	vector.StrokeRect(b.backgroundImage, float32(b.horizontalBorderSize), float32(b.verticalBorderSize), float32(b.innerW), float32(b.innerH), 2, borderColor, true)
}

func (b *board) fillPath(target *ebiten.Image, path *vector.Path, c color.RGBA) {
	b.vertices, b.indices = path.AppendVerticesAndIndicesForFilling(b.vertices[:0], b.indices[:0])
	for i := range b.vertices {
		b.vertices[i].SrcX, b.vertices[i].SrcY = 1, 1
		b.vertices[i].ColorR = float32(c.R) / 0xff
		b.vertices[i].ColorG = float32(c.G) / 0xff
		b.vertices[i].ColorB = float32(c.B) / 0xff
		b.vertices[i].ColorA = float32(c.A) / 0xff
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	target.DrawTriangles(b.vertices, b.indices, whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image), op)
}

// Draw draws the board for the view v.
func (b *board) Draw(screen *ebiten.Image, v *session.View) {
	if b.backgroundImage == nil || b.w <= 0 || b.h <= 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(b.x), float64(b.y))
	screen.DrawImage(b.backgroundImage, op)

	s := v.Snapshot

	// Draw highlights.
	for _, target := range v.Targets {
		var r [4]int
		switch {
		case target.IsPoint():
			r = b.pointRects[target.Index()]
		case target.IsBearOff():
			r = b.offRects[v.Color]
		default:
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(r[2])/float64(b.highlightImage.Bounds().Dx()), float64(r[3])/float64(b.highlightImage.Bounds().Dy()))
		op.GeoM.Translate(float64(b.x+r[0]), float64(b.y+r[1]))
		screen.DrawImage(b.highlightImage, op)
	}
	if !v.Origin.IsZero() {
		var r [4]int
		if v.Origin.IsBar() {
			r = b.barRects[v.Color]
		} else {
			r = b.pointRects[v.Origin.Index()]
		}
		vector.StrokeRect(screen, float32(b.x+r[0])+1, float32(b.y+r[1])+1, float32(r[2])-2, float32(r[3])-2, 3, selectedColor, true)
	}

	// Draw checkers.
	for point := 1; point <= model.NumPoints; point++ {
		checkers := s.Point(point)
		if len(checkers) == 0 {
			continue
		}
		b.drawStack(screen, b.pointRects[point], b.bottomRow(point), checkers[0].Color, len(checkers), maxPointStack)
	}
	for _, c := range []model.Color{model.White, model.Black} {
		r := b.barRects[c]
		if n := len(s.OnBar(c)); n > 0 {
			b.drawStack(screen, r, r[1] != int(b.verticalBorderSize), c, n, maxBarStack)
		}

		r = b.offRects[c]
		label := fmt.Sprintf("%d / %d", len(s.Off(c)), model.CheckersPerPlayer)
		ebitenutil.DebugPrintAt(screen, label, b.x+r[0]+2, b.y+r[1]+r[3]/2-8)
	}

	b.drawPlayers(screen, v)
	b.drawDice(screen, v)
}

// drawStack draws count checkers of colour c in r, starting at the bottom
// edge when bottom is set. Checkers above max are shown as a count.
func (b *board) drawStack(screen *ebiten.Image, r [4]int, bottom bool, c model.Color, count int, max int) {
	size := float32(r[2])
	step := size
	if available := float32(r[3]) / float32(max); available < step {
		step = available
	}
	radius := size/2 - 2

	shown := count
	if shown > max {
		shown = max
	}
	fill, stroke := lightCheckerColor, darkCheckerColor
	if c == model.Black {
		fill, stroke = darkCheckerColor, lightCheckerColor
	}

	cx := float32(b.x+r[0]) + size/2
	var cy float32
	for i := 0; i < shown; i++ {
		if bottom {
			cy = float32(b.y+r[1]+r[3]) - step*float32(i) - step/2
		} else {
			cy = float32(b.y+r[1]) + step*float32(i) + step/2
		}
		vector.DrawFilledCircle(screen, cx, cy, radius, fill, true)
		vector.StrokeCircle(screen, cx, cy, radius, 1.5, stroke, true)
	}
	if count > max {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("+%d", count-max), int(cx)-8, int(cy)-8)
	}
}

// drawPlayers labels each side of the board with its player and pip count.
func (b *board) drawPlayers(screen *ebiten.Image, v *session.View) {
	me, opponent := b.perspective, b.perspective.Opponent()
	x := b.x + int(b.horizontalBorderSize)
	ebitenutil.DebugPrintAt(screen, seatLabel(v, opponent), x, b.y)
	ebitenutil.DebugPrintAt(screen, seatLabel(v, me), x, b.y+b.h-int(b.verticalBorderSize))
}

func seatLabel(v *session.View, c model.Color) string {
	seat := v.Seats[c]
	if !seat.Joined {
		return fmt.Sprintf("%s: %s", colorLabel(c), gotext.Get("Waiting for player..."))
	}
	name := seat.Name
	if seat.You {
		name = strings.TrimSpace(name + " " + gotext.Get("(You)"))
	}
	label := fmt.Sprintf("%s: %s - %s", colorLabel(c), name, gotext.Get("%d pips", v.Pips[c]))
	if seat.Turn {
		label = "> " + label
	}
	return label
}

// drawDice draws the dice in the middle of the local player's half of the
// board.
func (b *board) drawDice(screen *ebiten.Image, v *session.View) {
	if len(v.Dice) == 0 {
		return
	}
	size := float32(b.spaceWidth) * 0.8
	gap := size / 4
	total := size*float32(len(v.Dice)) + gap*float32(len(v.Dice)-1)

	x := float32(b.x) + float32(b.horizontalBorderSize+b.spaceWidth*7+b.barWidth) - total/2 + float32(b.spaceWidth*2)
	y := float32(b.y+b.h/2) - size/2

	fill, pip := lightCheckerColor, darkCheckerColor
	if v.Snapshot.CurrentPlayer != model.NoPlayer {
		if p, ok := v.Snapshot.Player(v.Snapshot.CurrentPlayer); ok && p.Color == model.Black {
			fill, pip = darkCheckerColor, lightCheckerColor
		}
	}
	for i, face := range v.Dice {
		dx := x + float32(i)*(size+gap)
		if v.Rolling {
			// Shake while rolling.
			dx += float32((face+i)%3 - 1)
		}
		drawDie(screen, dx, y, size, face, fill, pip)
	}
}

// Pip positions on a 3x3 grid.
var dieFaces = [7][][2]int{
	1: {{1, 1}},
	2: {{0, 0}, {2, 2}},
	3: {{0, 0}, {1, 1}, {2, 2}},
	4: {{0, 0}, {2, 0}, {0, 2}, {2, 2}},
	5: {{0, 0}, {2, 0}, {1, 1}, {0, 2}, {2, 2}},
	6: {{0, 0}, {2, 0}, {0, 1}, {2, 1}, {0, 2}, {2, 2}},
}

func drawDie(screen *ebiten.Image, x, y, size float32, face int, fill color.RGBA, pip color.RGBA) {
	vector.DrawFilledRect(screen, x, y, size, size, fill, true)
	vector.StrokeRect(screen, x, y, size, size, 1.5, borderColor, true)
	if face < 1 || face > 6 {
		return
	}
	cell := size / 3
	for _, p := range dieFaces[face] {
		vector.DrawFilledCircle(screen, x+cell*float32(p[0])+cell/2, y+cell*float32(p[1])+cell/2, cell/4, pip, true)
	}
}
