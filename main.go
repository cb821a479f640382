package main

import (
	"os"

	"github.com/Anilrajput6441/Gema-Assignment/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
