package game

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"codeberg.org/tslocum/etk"
	"codeberg.org/tslocum/gotext"
	"codeberg.org/tslocum/pips/client"
	"codeberg.org/tslocum/pips/config"
	"codeberg.org/tslocum/pips/model"
	"codeberg.org/tslocum/pips/session"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const MaxDebug = 2

const (
	minWidth  = 320
	minHeight = 240
)

const statusBarHeight = 50

var (
	Debug int

	game *Game
)

var spinner = []byte(`-\|/`)

func l(s string) {
	log.Print(s)
	if game != nil {
		game.session.SetStatus(time.Now().Format("15:04") + " " + s)
	}
}

type Game struct {
	Config *config.Config
	Client *client.Client

	session *session.Session
	view    session.View

	root        *etk.Grid
	boardWidget *BoardWidget
	statusText  *etk.Text
	noticeText  *etk.Text
	rollButton  *etk.Button
	lastNotice  session.Notice

	cancel    context.CancelFunc
	connected bool

	screenW, screenH int

	pressedKeys []ebiten.Key

	debugImg     *ebiten.Image
	drawBuffer   bytes.Buffer
	spinnerIndex int
}

func NewGame(c *config.Config) *Game {
	loadLocale(c.LocaleDir, c.Locale)

	cl := client.NewClient(c.ServerAddress)
	cl.Negotiate = c.Negotiate
	cl.ReconnectDelay = c.ReconnectDelay
	cl.Debug.Store(int32(Debug))

	g := &Game{
		Config:      c,
		Client:      cl,
		boardWidget: NewBoardWidget(),
		statusText:  etk.NewText(""),
		noticeText:  etk.NewText(""),
		debugImg:    ebiten.NewImage(200, 200),
	}
	g.session = session.New(cl, session.Options{
		Timing:         c.Timing(),
		NoticeDuration: c.NoticeDuration,
	})
	g.rollButton = etk.NewButton(gotext.Get("Roll"), g.selectRoll)

	g.root = etk.NewGrid()
	g.root.SetColumnSizes(-1, -1, 200)
	g.root.SetRowSizes(-1, statusBarHeight)
	g.root.AddChildAt(g.boardWidget, 0, 0, 3, 1)
	g.root.AddChildAt(g.statusText, 0, 1, 1, 1)
	g.root.AddChildAt(g.noticeText, 1, 1, 1, 1)
	g.root.AddChildAt(g.rollButton, 2, 1, 1, 1)
	etk.SetRoot(g.root)

	game = g
	g.view = g.session.View()
	return g
}

// Connect starts the connection to the server.
func (g *Game) Connect() {
	if g.connected {
		return
	}
	g.connected = true

	l("*** " + gotext.Get("Connecting..."))

	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	go func() {
		err := g.Client.Run(ctx)
		if err != nil && ctx.Err() == nil {
			log.Printf("*** Client stopped: %s", err)
		}
	}()
}

// handleEvents applies all queued server events. It never blocks.
func (g *Game) handleEvents() {
	for {
		select {
		case ev := <-g.Client.Events:
			g.handleEvent(ev)
		default:
			return
		}
	}
}

func (g *Game) handleEvent(e interface{}) {
	switch ev := e.(type) {
	case *client.EventConnected:
		g.session.ClearNotice()
		l("*** " + gotext.Get("Connected."))
	case *client.EventReconnecting:
		g.session.Notify(session.Warning, gotext.Get("Connection lost. Trying to reconnect..."))
		l("*** " + gotext.Get("Reconnecting..."))
	case *client.EventDisconnected:
		g.session.Notify(session.Error, gotext.Get("Disconnected from server."))
		l("*** " + gotext.Get("Disconnected."))
	case *client.EventState:
		g.session.ReplaceState(ev.State)
	case *client.EventGameStart:
		g.session.Started(ev.State)
	case *client.EventRole:
		g.session.AssignRole(ev.Player, ev.Color)
		g.boardWidget.board.setPerspective(ev.Color)
	case *client.EventWaiting:
		g.session.Waiting()
	case *client.EventTurn:
		g.session.NotifyTurn(ev.Player)
	case *client.EventError:
		g.session.Error(ev.Message)
	case *client.EventInvalidMove:
		g.session.InvalidMove(ev.Reason)
	case *client.EventGameOver:
		g.session.GameOver(ev.Winner)
	default:
		l("*** " + gotext.Get("Warning: Received unknown event: %+v", ev))
	}
}

func (g *Game) selectRoll() error {
	err := g.session.Roll()
	if err != nil {
		log.Printf("*** %s", err)
	}
	return nil
}

func (g *Game) handleInput(keys []ebiten.Key) error {
	for _, key := range keys {
		switch key {
		case ebiten.KeyR:
			if !ebiten.IsKeyPressed(ebiten.KeyControl) {
				g.selectRoll()
			}
		case ebiten.KeyEscape:
			g.session.Cancel()
		}
	}
	return nil
}

// refresh updates the view and the widgets showing it.
func (g *Game) refresh() {
	g.view = g.session.View()

	if g.view.Player != model.NoPlayer {
		g.boardWidget.board.setPerspective(g.view.Color)
	}

	status := g.view.Status
	if g.view.Player != model.NoPlayer {
		turn := gotext.Get("Opponent's turn")
		if g.view.MyTurn {
			turn = gotext.Get("Your turn")
		}
		if g.view.Snapshot.Phase == model.GameOver {
			turn = gotext.Get("Game over")
		}
		status = fmt.Sprintf("%s - %s", colorLabel(g.view.Color), turn)
		if g.view.Status != "" {
			status += "\n" + g.view.Status
		}
	}
	if g.statusText.Text() != status {
		g.statusText.SetText(status)
	}

	if g.view.Notice != g.lastNotice {
		g.lastNotice = g.view.Notice
		g.noticeText.SetForeground(noticeColors[g.view.Notice.Kind])
		g.noticeText.SetText(g.view.Notice.Message)
	}
}

// Update is called by Ebitengine once per tick. Server events are applied
// before input is handled.
func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		g.Exit()
		return nil
	}

	g.handleEvents()
	g.session.Update()
	g.refresh()

	if ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyD) {
		Debug++
		if Debug > MaxDebug {
			Debug = 0
		}
		g.Client.Debug.Store(int32(Debug))
	}

	g.pressedKeys = inpututil.AppendJustPressedKeys(g.pressedKeys[:0])
	err := g.handleInput(g.pressedKeys)
	if err != nil {
		return err
	}

	err = etk.Update()
	if err != nil {
		return err
	}
	g.refresh()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(tableColor)

	err := etk.Draw(screen)
	if err != nil {
		log.Fatal(err)
	}

	if Debug > 0 {
		g.drawBuffer.Reset()

		g.spinnerIndex++
		if g.spinnerIndex == 4 {
			g.spinnerIndex = 0
		}

		g.drawBuffer.Write([]byte(fmt.Sprintf("FPS %c %0.0f\n", spinner[g.spinnerIndex], ebiten.ActualFPS())))
		s := g.view.Snapshot
		g.drawBuffer.Write([]byte(fmt.Sprintf("%s %s\n", s.Phase, s.CurrentPlayer)))
		g.drawBuffer.Write([]byte(fmt.Sprintf("DICE %v %v\n", s.Dice.Current, s.Remaining())))
		if !g.view.Origin.IsZero() {
			g.drawBuffer.Write([]byte(fmt.Sprintf("SEL %s -> %v", g.view.Origin, g.view.Targets)))
		}

		g.debugImg.Clear()

		ebitenutil.DebugPrint(g.debugImg, g.drawBuffer.String())

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(3, 0)
		screen.DrawImage(g.debugImg, op)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := ebiten.DeviceScaleFactor()
	outsideWidth, outsideHeight = int(float64(outsideWidth)*s), int(float64(outsideHeight)*s)
	if outsideWidth < minWidth {
		outsideWidth = minWidth
	}
	if outsideHeight < minHeight {
		outsideHeight = minHeight
	}
	if g.screenW == outsideWidth && g.screenH == outsideHeight {
		return outsideWidth, outsideHeight
	}

	g.screenW, g.screenH = outsideWidth, outsideHeight

	etk.Layout(g.screenW, g.screenH)
	return outsideWidth, outsideHeight
}

// Exit disconnects from the server and exits the process.
func (g *Game) Exit() {
	if g.cancel != nil {
		g.cancel()
	}
	os.Exit(0)
}

func colorLabel(c model.Color) string {
	if c == model.White {
		return gotext.Get("White")
	}
	return gotext.Get("Black")
}
