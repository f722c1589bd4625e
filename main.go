package main

//go:generate xgotext -no-locations -default pips -in . -out locales

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/tslocum/pips/game"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	screenWidth  = 1024
	screenHeight = 768
)

func main() {
	c, err := parseFlags()
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("pips")
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	g := game.NewGame(c)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGINT,
		syscall.SIGTERM)
	go func() {
		<-sigc

		g.Exit()
	}()

	g.Connect()

	op := &ebiten.RunGameOptions{
		X11ClassName:    "pips",
		X11InstanceName: "pips",
	}
	if err := ebiten.RunGameWithOptions(g, op); err != nil {
		log.Fatal(err)
	}
}
