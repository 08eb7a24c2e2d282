package nesrom

import (
	"os"
	"testing"
)

func TestNew(t *testing.T) {
	const path = "../testdata/ram_after_reset.nes"
	f, err := os.Open(path)
	if err != nil {
		t.Errorf("couldn't open testdata file: %v", err)
	}
	f.Close()

	if _, err := New(path); err != nil {
		t.Errorf("couldn't parse testdata file: %v", err)
	}
}
