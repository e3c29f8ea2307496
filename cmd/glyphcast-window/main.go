// Package main is the windowed entry point for glyphcast.
package main

import (
	"context"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"

	"github.com/samdwyer/glyphcast/internal/engine"
	"github.com/samdwyer/glyphcast/internal/game"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	ctx := context.Background()
	cfg := game.LoadConfig()

	scene, err := game.LoadScene(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to load map: %v", err)
	}
	eng, err := engine.New(ctx, scene.Grid, scene.Engine)
	if err != nil {
		log.Fatalf("Failed to initialize engine: %v", err)
	}

	w := newWindow(eng, cfg)
	defer w.Close()

	width, height := w.Layout(0, 0)
	ebiten.SetWindowTitle("glyphcast - " + scene.Name)
	ebiten.SetWindowSize(width, height)
	ebiten.SetTPS(cfg.FPS)
	if err := ebiten.RunGame(w); err != nil {
		log.Fatal(err)
	}
}
