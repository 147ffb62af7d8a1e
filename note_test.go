package harmonium_test

import (
	"testing"

	"github.com/besynth/harmonium"
)

func TestKeyToNote(t *testing.T) {
	cases := []struct {
		key  int
		note string
	}{
		{0, "C-1"}, {48, "C3"}, {60, "C4"}, {61, "C#4"}, {69, "A4"}, {89, "F6"}, {127, "G9"},
	}
	for _, c := range cases {
		note, err := harmonium.KeyToNote(c.key)
		if err != nil {
			t.Fatalf("KeyToNote(%v) failed: %v", c.key, err)
		}
		if note != c.note {
			t.Errorf("KeyToNote(%v) = %q, expected %q", c.key, note, c.note)
		}
		key, err := harmonium.NoteToKey(c.note)
		if err != nil {
			t.Fatalf("NoteToKey(%q) failed: %v", c.note, err)
		}
		if key != c.key {
			t.Errorf("NoteToKey(%q) = %v, expected %v", c.note, key, c.key)
		}
	}
	if _, err := harmonium.KeyToNote(128); err == nil {
		t.Fatalf("key 128 should have been rejected")
	}
	if _, err := harmonium.KeyToNote(-1); err == nil {
		t.Fatalf("key -1 should have been rejected")
	}
}

func TestNoteToKeyDefaultsToOctave4(t *testing.T) {
	key, err := harmonium.NoteToKey("A")
	if err != nil {
		t.Fatalf("NoteToKey failed: %v", err)
	}
	if key != 69 {
		t.Fatalf("expected A to mean A4 = 69, got %v", key)
	}
}

func TestNoteToKeyInvalid(t *testing.T) {
	for _, note := range []string{"", "H2", "Cb4", "C44", "A#-2"} {
		if _, err := harmonium.NoteToKey(note); err == nil {
			t.Errorf("note %q should have been rejected", note)
		}
	}
}
