// Package cubesim simulates an N×N×N twisty cube: a logical cubie grid,
// animated layer turns driven through a renderer, move history with
// undo, redo, scramble and auto-solve playback, and a drag gesture
// interpreter.
//
// # Quick Start
//
// Build a cube on the headless scene and turn a layer:
//
//	sc := scene.New()
//	c, err := cubesim.New(3, 3, 3, sc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	c.OnTurn(func(m cubesim.Move, o cubesim.Origin) {
//	    fmt.Println("Turned:", m.Notation(), "by", o)
//	})
//
//	c.Turn(cubesim.X, 0, cubesim.Normal.Step(1))
//	c.Settle(time.Now())
//
// # Ticking
//
// Nothing moves on its own. Either call Tick from the caller's own loop
// (a bubbletea tick message, a game loop) or hand the cube to Run, which
// ticks it from a time.Ticker until the context ends. Every entry point
// must be called from the goroutine that ticks.
//
// # Busy and Auto
//
// At most one turn animates at a time. Requests made while a turn is in
// flight fail with ErrBusy; manual turns and new scripts requested while
// a script (undo, redo, scramble, solve, play) is running fail with
// ErrAutoMode. Both are meant to be ignored by interactive callers.
//
// # Notation
//
// A move is written as the axis letter and layer index, with a trailing
// apostrophe for the clockwise direction:
//
//	x0   // layer 0 about +x, counter-clockwise
//	y1'  // layer 1 about +y, clockwise
package cubesim
