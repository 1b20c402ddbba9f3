// main.go - Demo harness for the spatial mixing core: loads a scene
// script (or a built-in default), builds one static tone source per
// scene entry, and plays them through the live mixer until 'q' is
// pressed. Exercises the core package the way an enclosing engine would,
// the same relation the teacher's cmd/ie32to64 has to its root package.

package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/audiocore/spatialmix"
)

const (
	sampleRate    = 44100
	periodSamples = 1024
)

func main() {
	scenePath := ""
	if len(os.Args) > 1 {
		scenePath = os.Args[1]
	}

	var scene []SceneSource
	var err error
	if scenePath != "" {
		scene, err = loadScene(scenePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "scene:", err)
			os.Exit(1)
		}
	} else {
		scene = defaultScene()
	}

	device := spatialmix.NewDevice(periodSamples, 0)
	sources := make([]*spatialmix.Source, 0, len(scene))
	for _, sc := range scene {
		sources = append(sources, buildSource(sc))
	}

	mixer := &spatialmix.Mixer{Device: device, Sources: sources}

	player, err := NewPlayer(sampleRate, periodSamples)
	if err != nil {
		fmt.Fprintln(os.Stderr, "player:", err)
		os.Exit(1)
	}
	defer player.Close()

	player.SetupMixer(mixer)
	player.Start()

	fmt.Println("playing - press q to quit")
	waitForQuit()
}

func buildSource(sc SceneSource) *spatialmix.Source {
	src := &spatialmix.Source{}
	src.NewSource(1, 2)
	src.SourceType = spatialmix.Static
	src.Looping = sc.Looping
	src.State = spatialmix.Playing

	numSamples := sampleRate
	pcm := spatialmix.GenerateTone(sc.Freq, sampleRate, numSamples, spatialmix.FmtShort)
	buf := &spatialmix.Buffer{
		Data:      pcm,
		Size:      len(pcm),
		LoopStart: 0,
		LoopEnd:   numSamples,
		FmtType:   spatialmix.FmtShort,
	}
	src.Queue = &spatialmix.BufferListItem{Buffer: buf}
	src.BuffersInQueue = 1

	src.Params.Step = spatialmix.FractionOne
	src.Params.IIRFilter.SetCoeffs(1, 0, 0, 0, 0)
	src.Params.DryGains[0][spatialmix.FrontLeft] = float32(sc.GainLeft)
	src.Params.DryGains[0][spatialmix.FrontRight] = float32(sc.GainRight)

	resampler := spatialmix.ResamplerCubic
	switch sc.Resampler {
	case "point":
		resampler = spatialmix.ResamplerPoint
	case "linear":
		resampler = spatialmix.ResamplerLinear
	}
	src.ResamplerKind = resampler
	src.Params.DoMix = spatialmix.SelectMixer(spatialmix.FmtShort, resampler)

	return src
}

// waitForQuit puts stdin into raw mode so a bare 'q' (no Enter) exits;
// falls back to blocking forever when there's no controlling terminal.
func waitForQuit() {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		select {}
	}
	defer term.Restore(fd, oldState)

	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return
		}
		if buf[0] == 'q' || buf[0] == 'Q' {
			return
		}
	}
}
