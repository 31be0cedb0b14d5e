package main

import (
	"os"

	"github.com/arinadev/recipebook/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
