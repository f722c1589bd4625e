package game

import (
	"image"
	"log"

	"codeberg.org/tslocum/etk"
	"github.com/hajimehoshi/ebiten/v2"
)

// BoardWidget draws the board and turns clicks on it into session input.
type BoardWidget struct {
	*etk.Box
	board *board
}

func NewBoardWidget() *BoardWidget {
	return &BoardWidget{
		Box:   etk.NewBox(),
		board: newBoard(),
	}
}

func (bw *BoardWidget) SetRect(r image.Rectangle) {
	bw.Box.SetRect(r)
	bw.board.setRect(r)
}

func (bw *BoardWidget) HandleMouse(cursor image.Point, pressed bool, clicked bool) (handled bool, err error) {
	if !clicked || game == nil {
		return false, nil
	}

	loc, ok := bw.board.locationAt(cursor.X, cursor.Y)
	if !ok {
		game.session.Cancel()
		return true, nil
	}
	switch {
	case loc.IsBar():
		err = game.session.ClickBar()
	case loc.IsBearOff():
		err = game.session.ClickBearOff()
	default:
		err = game.session.ClickPoint(loc.Index())
	}
	if err != nil {
		log.Printf("*** %s", err)
	}
	return true, nil
}

func (bw *BoardWidget) Draw(screen *ebiten.Image) error {
	if game == nil {
		return nil
	}
	bw.board.Draw(screen, &game.view)
	return nil
}
