package main

import (
	"flag"
	"log"

	"orbsmash/internal/config"
	"orbsmash/internal/game"
)

func main() {
	configPath := flag.String("config", "", "tuning YAML path (default: $ORBSMASH_CONFIG, else built-in defaults)")
	flag.Parse()

	tuning, err := config.Load(*configPath)
	if err != nil {
		log.Printf("config: %v, continuing with defaults", err)
	}

	game.New(tuning).Run()
}
