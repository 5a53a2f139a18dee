package main

import (
	"github.com/joho/godotenv"

	"github.com/aqasim81/severity-palette/internal/cli"
)

func main() {
	// A missing .env is fine; PALETTE_* may come from the real environment.
	_ = godotenv.Load()

	cli.Execute()
}
