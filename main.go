package main

import (
	"os"

	"github.com/abhisek/matchup/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
