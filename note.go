package harmonium

import (
	"fmt"
	"regexp"
	"strconv"
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var noteRegexp = regexp.MustCompile(`^([A-G]#?)(-1|\d)?$`)

// KeyToNote converts a MIDI key number to scientific pitch notation, e.g.
// 60 -> "C4".
func KeyToNote(key int) (string, error) {
	if key < 0 || key > 127 {
		return "", fmt.Errorf("key %v out of MIDI range 0..127", key)
	}
	return fmt.Sprintf("%s%d", noteNames[key%12], key/12-1), nil
}

// NoteToKey converts scientific pitch notation to a MIDI key number. The
// octave may be omitted, defaulting to 4, so "A" means A4 = key 69.
func NoteToKey(note string) (int, error) {
	m := noteRegexp.FindStringSubmatch(note)
	if m == nil {
		return 0, fmt.Errorf("invalid note %q", note)
	}
	octave := 4
	if m[2] != "" {
		octave, _ = strconv.Atoi(m[2])
	}
	index := 0
	for i, name := range noteNames {
		if name == m[1] {
			index = i
			break
		}
	}
	key := (octave+1)*12 + index
	if key < 0 || key > 127 {
		return 0, fmt.Errorf("note %q maps to key %v, outside MIDI range 0..127", note, key)
	}
	return key, nil
}
