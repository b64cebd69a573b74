package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/slingshot/common"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "draw physics shapes and log every contact")
	watch := flag.Bool("watch", false, "reload tuning when files under prefabs/ change")
	level := flag.Int("level", 0, "index of the first level")
	flag.Parse()

	logger, err := common.NewLogger(*debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	game, err := NewGame(GameOptions{Debug: *debug, Watch: *watch, Level: *level, Log: logger})
	if err != nil {
		logger.Fatal("start game", zap.Error(err))
	}
	defer func() { _ = game.Close() }()

	ebiten.SetWindowSize(game.spec.Window.Width, game.spec.Window.Height)
	ebiten.SetWindowTitle(game.spec.Window.Title)

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("run game", zap.Error(err))
	}
}
