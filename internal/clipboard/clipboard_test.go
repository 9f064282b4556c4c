package clipboard

import (
	"errors"
	"testing"
)

func TestWrite(t *testing.T) {
	if !Available() {
		if err := Write("🔥"); !errors.Is(err, ErrUnavailable) {
			t.Errorf("Write() error = %v, want ErrUnavailable", err)
		}
		return
	}

	orig := writeAll
	t.Cleanup(func() { writeAll = orig })

	var got string
	writeAll = func(s string) error {
		got = s
		return nil
	}
	if err := Write("🔥"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got != "🔥" {
		t.Errorf("clipboard = %q, want 🔥", got)
	}

	boom := errors.New("boom")
	writeAll = func(string) error { return boom }
	if err := Write("x"); !errors.Is(err, boom) {
		t.Errorf("Write() error = %v, want wrapped boom", err)
	}
}
