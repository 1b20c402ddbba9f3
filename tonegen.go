// tonegen.go - Test-tone PCM generation, adapted from the teacher's sine
// lookup table (audio_lut.go's sinLUT/fastSin) for building the demo
// harness's tone buffers rather than real-time synthesis.

package spatialmix

import "math"

const (
	toneLUTSize  = 8192
	toneLUTMask  = toneLUTSize - 1
	toneLUTScale = float32(toneLUTSize) / (2 * math.Pi)
)

var toneSinLUT [toneLUTSize]float32

func init() {
	for i := 0; i < toneLUTSize; i++ {
		phase := float64(i) * 2 * math.Pi / float64(toneLUTSize)
		toneSinLUT[i] = float32(math.Sin(phase))
	}
}

const twoPi = float32(2 * math.Pi)

// fastSin returns sin(phase) via lookup-table interpolation, wrapping
// phase into [0, 2π) first.
func fastSin(phase float32) float32 {
	if phase < 0 || phase >= twoPi {
		phase -= twoPi * float32(math.Floor(float64(phase/twoPi)))
	}

	indexF := phase * toneLUTScale
	index := int(indexF) & toneLUTMask
	frac := indexF - float32(int(indexF))
	next := (index + 1) & toneLUTMask

	return toneSinLUT[index] + frac*(toneSinLUT[next]-toneSinLUT[index])
}

// GenerateTone fills a PCM buffer of numSamples mono frames at sampleRate
// with a sine wave at freqHz, encoded to fmtType, for use as a source
// buffer.
func GenerateTone(freqHz, sampleRate float64, numSamples int, fmtType FmtType) []byte {
	sampleSize := fmtType.SampleSize()
	out := make([]byte, numSamples*sampleSize)
	phaseStep := float32(2 * math.Pi * freqHz / sampleRate)

	var phase float32
	for i := 0; i < numSamples; i++ {
		s := fastSin(phase)
		phase += phaseStep

		switch fmtType {
		case FmtByte:
			out[i] = byte(int8(s * normalize8))
		case FmtShort:
			v := int16(s * normalize16)
			out[i*2] = byte(uint16(v))
			out[i*2+1] = byte(uint16(v) >> 8)
		case FmtFloat:
			bits := math.Float32bits(s * normalize32)
			out[i*4] = byte(bits)
			out[i*4+1] = byte(bits >> 8)
			out[i*4+2] = byte(bits >> 16)
			out[i*4+3] = byte(bits >> 24)
		}
	}
	return out
}
