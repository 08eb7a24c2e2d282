package cycle

import "testing"

func TestToCPUTruncates(t *testing.T) {
	cases := []struct {
		m    Master
		want CPU
	}{
		{0, 0},
		{2, 0},
		{3, 1},
		{8, 2},
		{9, 3},
	}
	for _, c := range cases {
		if got := c.m.ToCPU(); got != c.want {
			t.Errorf("Master(%d).ToCPU() = %d, want %d", c.m, got, c.want)
		}
	}
}

func TestToPPUIdentity(t *testing.T) {
	if got := Master(1234).ToPPU(); got != 1234 {
		t.Errorf("ToPPU() = %d, want 1234", got)
	}
}

func TestFromCPURoundTrip(t *testing.T) {
	if got := FromCPU(7); got != 21 {
		t.Errorf("FromCPU(7) = %d, want 21", got)
	}
}

func TestSubSaturates(t *testing.T) {
	if got := Master(5).Sub(10); got != 0 {
		t.Errorf("Master(5).Sub(10) = %d, want 0", got)
	}
	if got := Master(10).Sub(5); got != 5 {
		t.Errorf("Master(10).Sub(5) = %d, want 5", got)
	}
}

func TestBefore(t *testing.T) {
	if !Master(1).Before(2) {
		t.Error("expected 1 before 2")
	}
	if Master(2).Before(2) {
		t.Error("did not expect 2 before 2")
	}
}
