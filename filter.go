// filter.go - Per-channel voice low-pass filter, with a click-removal
// "peek" entry point that computes a boundary-correction sample without
// committing new filter state.

package spatialmix

// BiquadFilter is the two-pole low-pass voice filter. Coefficients are
// shared across a source's channels (resolved externally, same as gains);
// the delay-line state (z1/z2, transposed Direct Form II) is per channel.
type BiquadFilter struct {
	b0, b1, b2 float32
	a1, a2     float32
	z1, z2     []float32 // per-channel state
}

func (f *BiquadFilter) init(numChannels int) {
	f.b0 = 1 // identity pass-through until configured
	f.z1 = make([]float32, numChannels)
	f.z2 = make([]float32, numChannels)
}

// SetCoeffs installs new transposed Direct Form II biquad coefficients. Deriving
// cutoff/resonance from distance or obstruction is listener/source
// parameter derivation and is out of this core's scope; callers resolve
// coefficients externally and hand them in already computed.
func (f *BiquadFilter) SetCoeffs(b0, b1, b2, a1, a2 float32) {
	f.b0, f.b1, f.b2, f.a1, f.a2 = b0, b1, b2, a1, a2
}

// step advances channel ch's filter state by one sample and returns the
// filtered output.
func (f *BiquadFilter) step(ch int, x float32) float32 {
	z1, z2 := f.z1[ch], f.z2[ch]
	y := f.b0*x + z1
	f.z1[ch] = f.b1*x - f.a1*y + z2
	f.z2[ch] = f.b2*x - f.a2*y
	return y
}

// stepCorrection computes what step would return for input x given the
// filter's *current* state, without committing the state update. Used at
// block boundaries to emit a click-removal delta that stays consistent
// with the filter's continuation on the next block (see spec §9's click
// removal semantics).
func (f *BiquadFilter) stepCorrection(ch int, x float32) float32 {
	return f.b0*x + f.z1[ch]
}

// OnePoleFilter is the simpler aux-send filter: single delay element per
// channel.
type OnePoleFilter struct {
	b0, b1 float32
	a1     float32
	z1     []float32
}

func (f *OnePoleFilter) init(numChannels int) {
	f.b0 = 1
	f.z1 = make([]float32, numChannels)
}

func (f *OnePoleFilter) SetCoeffs(b0, b1, a1 float32) {
	f.b0, f.b1, f.a1 = b0, b1, a1
}

func (f *OnePoleFilter) step(ch int, x float32) float32 {
	y := f.b0*x + f.z1[ch]
	f.z1[ch] = f.b1*x - f.a1*y
	return y
}

func (f *OnePoleFilter) stepCorrection(ch int, x float32) float32 {
	return f.b0*x + f.z1[ch]
}
