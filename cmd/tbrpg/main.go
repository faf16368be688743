package main

import (
	"flag"
	"log"

	"chosenoffset.com/tbrpg/internal/config"
	"chosenoffset.com/tbrpg/internal/game"
	ebitenrender "chosenoffset.com/tbrpg/internal/render/ebiten"
)

func main() {
	configPath := flag.String("config", "tbrpg.json", "path to the JSON config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine(cfg.Timing.UpdatesPerSec)

	log.Println("Loading game...")
	g, err := game.NewManager(cfg, renderer, inputMgr, loader).LoadGame()
	if err != nil {
		log.Fatalf("Failed to load game: %v", err)
	}

	// Set up the window
	engine.SetWindowSize(game.GameWidth*cfg.Display.Scale, game.GameHeight*cfg.Display.Scale)
	engine.SetWindowTitle(cfg.Display.Title)
	engine.SetFullscreen(cfg.Display.Fullscreen)
	engine.SetWindowResizable(true)

	log.Println("Starting game...")
	err = engine.RunGame(g)
	g.Close()
	if err != nil {
		log.Fatal(err)
	}
}
