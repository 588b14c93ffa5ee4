package main

import (
	"os"

	"github.com/rustyeddy/crossbar/cmd/trader/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
