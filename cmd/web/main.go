package main

import (
	"log"

	"github.com/duetmatch/duet/internal/web/app"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if err := app.New(cfg).Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
