package cmd

// MIDIContext is the note-event source the play command listens to. The
// real implementation needs cgo; without it a null context stands in.
type MIDIContext interface {
	InputNames() []string
	Open(prefix string, handler func(key int, on bool)) error
	Close()
}
