package main

import (
	"fmt"
	"os"

	"github.com/IGES-Geospatial/globe-observer-go/internal/tui"
)

func main() {
	if err := tui.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "globe-photos-tui: %v\n", err)
		os.Exit(1)
	}
}
