package main

import (
	"sync/atomic"

	"github.com/adaptco/nes/input"

	"github.com/hajimehoshi/ebiten/v2"
)

// keyboardDevice is an input.Device backed by ebiten's keyboard state. Per
// the concurrency model, it's polled from the machine's own stepping
// goroutine, which is never the goroutine ebiten calls Update on; sampling
// therefore happens once per ebiten frame in Update and is handed off
// through a single atomic word, rather than touching ebiten.IsKeyPressed
// from the stepping goroutine directly.
type keyboardDevice struct {
	snapshot atomic.Uint32
}

// sample reads the current keyboard state. Only called from ebiten's Update.
func (k *keyboardDevice) sample() {
	var bits uint8
	if ebiten.IsKeyPressed(ebiten.KeyZ) {
		bits |= input.ButtonA
	}
	if ebiten.IsKeyPressed(ebiten.KeyX) {
		bits |= input.ButtonB
	}
	if ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		bits |= input.ButtonSelect
	}
	if ebiten.IsKeyPressed(ebiten.KeyEnter) {
		bits |= input.ButtonStart
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		bits |= input.ButtonUp
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		bits |= input.ButtonDown
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		bits |= input.ButtonLeft
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		bits |= input.ButtonRight
	}
	k.snapshot.Store(uint32(bits))
}

// PollStatus satisfies input.Device. Safe to call from any goroutine.
func (k *keyboardDevice) PollStatus() uint8 {
	return uint8(k.snapshot.Load())
}
