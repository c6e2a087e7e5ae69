// cubesim - interactive N×N×N twisty cube simulator.
package main

import (
	"github.com/SeamusWaldron/cubesim/internal/cli"
)

func main() {
	cli.Execute()
}
