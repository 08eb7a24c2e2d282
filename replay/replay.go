// Package replay implements the recorded-input device used to drive a
// machine deterministically from a text log instead of a live controller.
//
// Grounded on input.Device's PollStatus contract and the state-codec-style
// line format documented for this repository: "<frame_index> <button_flags>"
// lines, '#' comments, blank lines ignored. No example repo in the pack
// ships a replay format of its own, so the parser uses the plain
// bufio.Scanner + strings.Fields idiom rather than pulling in a CSV/INI
// library for five bytes of structure.
package replay

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Device implements input.Device, replaying a precomputed frame-indexed
// button sequence. Flags persist from the frame they were set on until the
// next recorded change, matching how a human's held button spans frames.
type Device struct {
	events  map[int]uint8
	frame   int
	current uint8
}

// Load parses a replay log from r. Lines are "<frame_index> <button_flags>";
// button_flags may be written in decimal or 0x-prefixed hex. Lines starting
// with '#' and blank lines are ignored.
func Load(r io.Reader) (*Device, error) {
	d := &Device{events: make(map[int]uint8)}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("replay: line %d: want 2 fields, got %d", lineNo, len(fields))
		}
		frame, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("replay: line %d: bad frame index: %w", lineNo, err)
		}
		flags, err := strconv.ParseUint(fields[1], 0, 8)
		if err != nil {
			return nil, fmt.Errorf("replay: line %d: bad button flags: %w", lineNo, err)
		}
		d.events[frame] = uint8(flags)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	return d, nil
}

// PollStatus returns the button state latched for the current frame.
func (d *Device) PollStatus() uint8 {
	return d.current
}

// AdvanceFrame moves the replay to the next frame, applying any recorded
// button change at that frame. Callers invoke this once per machine frame
// completion (see console.Machine.FrameComplete), never per PollStatus call,
// so mid-frame shift-register reads all see the same snapshot.
func (d *Device) AdvanceFrame() {
	if flags, ok := d.events[d.frame]; ok {
		d.current = flags
	}
	d.frame++
}

// Frame returns the index of the frame that will next be applied.
func (d *Device) Frame() int {
	return d.frame
}
