package main

import (
	"context"

	"github.com/adaptco/nes/console"
	"github.com/adaptco/nes/cycle"
	"github.com/adaptco/nes/replay"

	"github.com/hajimehoshi/ebiten/v2"
)

// cyclesPerStep is how far one ebiten Update's worth of stepping advances
// the master clock before control returns to the render loop; it's large
// enough to cover a handful of frames' slack without tying the step rate to
// ebiten's own tick, since the actual stepping runs on its own goroutine
// (see run below).
const cyclesPerStep = cycle.Master(29780 * 3) // ~1 NTSC frame's worth of PPU dots

// game adapts a console.Machine to the ebiten.Game interface. Grounded on
// _examples/bdwalton-gintendo/console/bus.go's Layout/Draw/Update/Run split:
// stepping runs on its own goroutine (Run), decoupled from ebiten's render
// callback, which only draws whatever frame is currently in the
// framebuffer and samples the keyboard.
type game struct {
	machine *console.Machine
	kbd     *keyboardDevice
	rec     *replay.Device
}

// run drives the machine continuously until ctx is cancelled. It is started
// on its own goroutine by main before handing control to ebiten.RunGame.
func (g *game) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			g.machine.Step(cyclesPerStep)
			if g.machine.FrameComplete() && g.rec != nil {
				g.rec.AdvanceFrame()
			}
		}
	}
}

func (g *game) Update() error {
	if g.kbd != nil {
		g.kbd.sample()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	snap := g.machine.Snapshot()
	screen.WritePixels(snap.FramePtr)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	snap := g.machine.Snapshot()
	return snap.W, snap.H
}
