//go:build !headless

// player_oto.go - oto/v3 audio output, adapted from the core engine's
// OtoPlayer (audio_backend_oto.go): same atomic-pointer-swap + Read()
// callback shape, driving a spatialmix.Mixer tick per callback instead
// of a SoundChip ring buffer.

package main

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/oto/v3"

	"github.com/audiocore/spatialmix"
)

type Player struct {
	ctx    *oto.Context
	player *oto.Player

	mixer     atomic.Pointer[spatialmix.Mixer]
	device    *spatialmix.Device
	periodBuf []float32 // interleaved stereo scratch, sized for one period

	mutex   sync.Mutex
	started bool
}

func NewPlayer(sampleRate, periodSamples int) (*Player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	return &Player{
		ctx:       ctx,
		periodBuf: make([]float32, periodSamples*2),
	}, nil
}

func (p *Player) SetupMixer(m *spatialmix.Mixer) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.mixer.Store(m)
	p.device = m.Device
	p.player = p.ctx.NewPlayer(p)
}

// Read satisfies io.Reader for oto's pull-based player: each call ticks
// the mixer for one period's worth of frames and hands back interleaved
// stereo float32 samples.
func (p *Player) Read(b []byte) (int, error) {
	m := p.mixer.Load()
	if m == nil {
		clear(b)
		return len(b), nil
	}

	frames := len(b) / 8
	if frames > len(p.periodBuf)/2 {
		frames = len(p.periodBuf) / 2
	}

	if err := m.Tick(frames); err != nil {
		clear(b)
		return len(b), nil
	}
	spatialmix.ConsumeDevice(p.device, p.periodBuf[:frames*2], 2)

	n := frames * 8
	copy(b[:n], (*[1 << 30]byte)(unsafe.Pointer(&p.periodBuf[0]))[:n])
	return n, nil
}

func (p *Player) Start() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.started && p.player != nil {
		p.player.Play()
		p.started = true
	}
}

func (p *Player) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.started && p.player != nil {
		p.player.Close()
		p.started = false
	}
}

func (p *Player) Close() {
	p.Stop()
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.player != nil {
		p.player.Close()
		p.player = nil
	}
}

func clear(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
