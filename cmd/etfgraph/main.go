package main

import (
	"os"

	"github.com/etfgraph/etfgraph/cmd/etfgraph/cmd"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for ALPHAVANTAGE_API_KEY and friends.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
