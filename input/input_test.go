package input

import "testing"

type fakeDevice uint8

func (f fakeDevice) PollStatus() uint8 { return uint8(f) }

func TestStrobeFallingEdgeLatchesSnapshot(t *testing.T) {
	var p Port
	p.Attach(fakeDevice(ButtonA | ButtonRight))

	p.Write(1) // strobe on
	p.Write(0) // falling edge, latches

	var got uint8
	for i := 0; i < 8; i++ {
		got = got<<1 | p.Read()&0x01
	}
	want := uint8(ButtonA | ButtonRight)
	if got != want {
		t.Errorf("got %08b, want %08b", got, want)
	}
}

func TestReadPastEighthBitReturnsOne(t *testing.T) {
	var p Port
	p.Attach(fakeDevice(0))
	p.Write(1)
	p.Write(0)

	for i := 0; i < 8; i++ {
		p.Read()
	}
	if got := p.Read() & 0x01; got != 1 {
		t.Errorf("read past bit 7 = %d, want 1", got)
	}
}

func TestStrobeHighAlwaysReportsButtonA(t *testing.T) {
	var p Port
	p.Attach(fakeDevice(ButtonA))
	p.Write(1)

	if got := p.Read() & 0x01; got != 1 {
		t.Errorf("strobe-high read = %d, want 1", got)
	}
	if got := p.Read() & 0x01; got != 1 {
		t.Errorf("second strobe-high read = %d, want 1 (should not advance)", got)
	}
}

func TestDetachedPortReportsReleased(t *testing.T) {
	var p Port
	p.Write(1)
	p.Write(0)
	if got := p.Read() & 0x01; got != 0 {
		t.Errorf("detached port read = %d, want 0", got)
	}
}
