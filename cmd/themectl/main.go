// Themectl - wallpaper-driven desktop theme synchronizer
//
// Themectl persists the current wallpaper selection, derives a colour
// palette from it, propagates the palette into per-application config files,
// and refreshes the running consumer processes.
package main

import (
	"github.com/ShyamendraHazra/home-config/internal/cli"
)

func main() {
	cli.Execute()
}
