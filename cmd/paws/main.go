package main

import (
	"os"

	"github.com/zainarain279/paws/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
