package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/besynth/harmonium"
	"github.com/besynth/harmonium/cmd"
	"github.com/besynth/harmonium/oto"
	"github.com/besynth/harmonium/synth"
	"github.com/besynth/harmonium/version"
)

func main() {
	list := flag.Bool("l", false, "List MIDI input ports and exit.")
	port := flag.String("p", "", "Prefix of the MIDI input port to listen on.")
	versionFlag := flag.Bool("v", false, "Print version.")
	help := flag.Bool("h", false, "Show help.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if *help {
		flag.Usage()
		os.Exit(0)
	}
	midiContext := cmd.NewMIDIContext()
	defer midiContext.Close()
	if *list {
		for _, name := range midiContext.InputNames() {
			fmt.Println(name)
		}
		os.Exit(0)
	}
	requestFile := ""
	if flag.NArg() > 0 {
		requestFile = flag.Arg(0)
	}
	req, err := cmd.LoadRequest(requestFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	notes, err := renderKeys(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	audioContext, err := oto.NewContext(req.Format.SampleRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer audioContext.Close()
	err = midiContext.Open(*port, func(key int, on bool) {
		if !on {
			return
		}
		data, ok := notes[key]
		if !ok {
			return
		}
		go playNote(audioContext, data)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "no MIDI input (%v); playing a demo scale\n", err)
		playScale(audioContext, req, notes)
		return
	}
	fmt.Fprintf(os.Stderr, "listening for MIDI notes %v-%v, ctrl-c to quit\n",
		req.Keys.Low, req.Keys.High)
	select {}
}

// renderKeys renders the whole key range up front so note-ons play with no
// synthesis latency.
func renderKeys(req harmonium.Request) (map[int][]int16, error) {
	table, err := req.Tuning.FrequencyTable(req.Keys)
	if err != nil {
		return nil, err
	}
	renderer, err := synth.Synther{}.Synth(req.Timbre, req.Format)
	if err != nil {
		return nil, err
	}
	notes := make(map[int][]int16, len(table))
	for _, kf := range table {
		sample, err := renderer.Render(kf, req.Duration)
		if err != nil {
			return nil, fmt.Errorf("rendering key %v: %w", kf.Key, err)
		}
		notes[kf.Key] = sample.Data
	}
	return notes, nil
}

func playNote(audioContext *oto.Context, data []int16) {
	sink := audioContext.Output()
	defer sink.Close()
	if err := sink.WriteAudio(data); err != nil {
		fmt.Fprintf(os.Stderr, "playback error: %v\n", err)
	}
}

// playScale walks the tuning from the base key upward, one octave worth of
// keys, so the instrument can be auditioned without a MIDI device.
func playScale(audioContext *oto.Context, req harmonium.Request, notes map[int][]int16) {
	step := time.Duration(float64(time.Second) * req.Duration * 0.5)
	for key := req.Tuning.BaseKey; key <= req.Tuning.BaseKey+12; key++ {
		data, ok := notes[key]
		if !ok {
			continue
		}
		if name, err := harmonium.KeyToNote(key); err == nil {
			fmt.Fprintf(os.Stderr, "%v ", name)
		}
		go playNote(audioContext, data)
		time.Sleep(step)
	}
	time.Sleep(time.Duration(float64(time.Second) * req.Duration))
	fmt.Fprintln(os.Stderr)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: harmonium-play [flags] [request.yml]

Renders the requested harmonium and plays it: from a MIDI keyboard when one
is connected, otherwise as a demo scale from the tuning's base key.

Flags:
`)
	flag.PrintDefaults()
}
