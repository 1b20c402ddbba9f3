//go:build headless

// player_headless.go - no-device stub, adapted from the core engine's
// headless backend (audio_backend_headless.go) for CI/test runs with no
// sound device.

package main

import "github.com/audiocore/spatialmix"

type Player struct {
	started bool
	mixer   *spatialmix.Mixer
}

func NewPlayer(sampleRate, periodSamples int) (*Player, error) {
	return &Player{}, nil
}

func (p *Player) SetupMixer(m *spatialmix.Mixer) { p.mixer = m }
func (p *Player) Start()                         { p.started = true }
func (p *Player) Stop()                          { p.started = false }
func (p *Player) Close()                         { p.started = false }
