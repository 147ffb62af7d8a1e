package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"gopkg.in/yaml.v3"

	"github.com/besynth/harmonium"
	"github.com/besynth/harmonium/cmd"
	"github.com/besynth/harmonium/synth"
	"github.com/besynth/harmonium/version"
)

func main() {
	outPath := flag.String("o", "harmonium.sf2", "Output file for the compiled soundfont.")
	baseNote := flag.String("note", "", "Base note of the tuning in scientific pitch, e.g. A4. Overrides the request file.")
	baseFreq := flag.Float64("freq", 0, "Base frequency in Hz. Overrides the request file.")
	kind := flag.String("kind", "", "Tuning kind: western or hindustani. Overrides the request file.")
	keys := flag.String("range", "", "Key range to generate, e.g. 48-89 or C3-F6. Overrides the request file.")
	duration := flag.Float64("d", 0, "Note duration in seconds. Overrides the request file.")
	wavDir := flag.String("w", "", "Also dump one .wav file per key into this directory.")
	yamlOut := flag.Bool("y", false, "Do not compile; print the effective request as YAML instead.")
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
	requestFile := ""
	if flag.NArg() > 0 {
		requestFile = flag.Arg(0)
	}
	req, err := cmd.LoadRequest(requestFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if err := applyFlags(&req, *baseNote, *baseFreq, *kind, *keys, *duration); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if *yamlOut {
		contents, err := yaml.Marshal(req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not marshal request: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(contents))
		os.Exit(0)
	}
	container, diag, err := harmonium.Generate(synth.Synther{}, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, container, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "could not write %v: %v\n", *outPath, err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%v: %v zones, %v sample bytes, %v total bytes\n",
		*outPath, diag.Zones, diag.SampleBytes, diag.TotalBytes)
	for _, w := range diag.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %v\n", w)
	}
	if *wavDir != "" {
		if err := dumpWavs(*wavDir, req); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}
}

func applyFlags(req *harmonium.Request, baseNote string, baseFreq float64, kind, keys string, duration float64) error {
	if baseNote != "" {
		key, err := harmonium.NoteToKey(baseNote)
		if err != nil {
			return err
		}
		req.Tuning.BaseKey = key
	}
	if baseFreq > 0 {
		req.Tuning.BaseFreq = baseFreq
	}
	if kind != "" {
		req.Tuning.Kind = harmonium.TuningKind(kind)
	}
	if keys != "" {
		r, err := parseKeyRange(keys)
		if err != nil {
			return err
		}
		req.Keys = r
	}
	if duration > 0 {
		req.Duration = duration
	}
	return nil
}

// parseKeyRange accepts "48-89" as well as "C3-F6".
func parseKeyRange(s string) (harmonium.KeyRange, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return harmonium.KeyRange{}, fmt.Errorf("invalid key range %q, expected e.g. 48-89", s)
	}
	var r harmonium.KeyRange
	var err error
	if r.Low, err = parseKey(parts[0]); err != nil {
		return r, err
	}
	if r.High, err = parseKey(parts[1]); err != nil {
		return r, err
	}
	return r, nil
}

func parseKey(s string) (int, error) {
	var key int
	if _, err := fmt.Sscanf(s, "%d", &key); err == nil {
		return key, nil
	}
	return harmonium.NoteToKey(s)
}

// dumpWavs renders every key once more and writes one wav per key, like the
// original generator's sample directory.
func dumpWavs(dir string, req harmonium.Request) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create wav directory: %w", err)
	}
	table, err := req.Tuning.FrequencyTable(req.Keys)
	if err != nil {
		return err
	}
	renderer, err := synth.Synther{}.Synth(req.Timbre, req.Format)
	if err != nil {
		return err
	}
	for _, kf := range table {
		sample, err := renderer.Render(kf, req.Duration)
		if err != nil {
			return fmt.Errorf("rendering key %v: %w", kf.Key, err)
		}
		if err := writeWav(filepath.Join(dir, fmt.Sprintf("%d.wav", kf.Key)), sample); err != nil {
			return err
		}
	}
	return nil
}

func writeWav(path string, sample harmonium.RenderedSample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %v: %w", path, err)
	}
	defer f.Close()
	enc := wav.NewEncoder(f, sample.Format.SampleRate, 16, 1, 1)
	data := make([]int, len(sample.Data))
	for i, v := range sample.Data {
		data[i] = int(v)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sample.Format.SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("could not encode %v: %w", path, err)
	}
	return enc.Close()
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: harmonium-gen [flags] [request.yml]

Renders a harmonium across the requested tuning and key range and compiles
the samples into a SoundFont 2 file. The optional request.yml overrides the
defaults; flags override the file.

Flags:
`)
	flag.PrintDefaults()
}
