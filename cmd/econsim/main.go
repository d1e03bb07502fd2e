package main

import (
	"os"

	"github.com/rustyeddy/econsim/cmd/econsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
