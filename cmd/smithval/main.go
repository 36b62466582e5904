package main

import (
	"os"

	"github.com/Smith-Tools/smith-validation/internal/app"
)

func main() {
	if err := app.BuildRoot().Execute(); err != nil {
		os.Exit(1)
	}
}
