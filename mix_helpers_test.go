// mix_helpers_test.go - Shared fixture builders for the scenario and
// property test suites: PCM encoders and small Source/Device factories
// so each test only states what differs from a plain pass-through voice.

package spatialmix

import "math"

func encodeI8(vals []int8) []byte {
	out := make([]byte, len(vals))
	for i, v := range vals {
		out[i] = byte(v)
	}
	return out
}

func encodeI16(vals []int16) []byte {
	out := make([]byte, len(vals)*2)
	for i, v := range vals {
		u := uint16(v)
		out[i*2] = byte(u)
		out[i*2+1] = byte(u >> 8)
	}
	return out
}

func encodeF32(vals []float32) []byte {
	out := make([]byte, len(vals)*4)
	for i, v := range vals {
		bits := math.Float32bits(v)
		out[i*4] = byte(bits)
		out[i*4+1] = byte(bits >> 8)
		out[i*4+2] = byte(bits >> 16)
		out[i*4+3] = byte(bits >> 24)
	}
	return out
}

// newMonoStaticSource builds a single-channel, Static, non-looping source
// over data, with identity dry gain into FrontLeft and a pass-through
// voice filter (no coefficients set beyond the default b0=1).
func newMonoStaticSource(data []byte, fmtType FmtType, resampler Resampler, step int) *Source {
	sampleSize := fmtType.SampleSize()
	src := &Source{State: Playing, SourceType: Static, ResamplerKind: resampler, Looping: false}
	src.NewSource(1, sampleSize)
	buf := &Buffer{Data: data, Size: len(data), FmtType: fmtType}
	item := &BufferListItem{Buffer: buf}
	src.Queue = item
	src.BuffersInQueue = 1
	src.Params.Step = step
	src.Params.DryGains[0][FrontLeft] = 1
	src.Params.DoMix = SelectMixer(fmtType, resampler)
	return src
}

// newMonoLoopingSource is the same as newMonoStaticSource but configured
// to loop over [loopStart, loopEnd).
func newMonoLoopingSource(data []byte, fmtType FmtType, resampler Resampler, step, loopStart, loopEnd int) *Source {
	src := newMonoStaticSource(data, fmtType, resampler, step)
	src.Looping = true
	src.Queue.Buffer.LoopStart = loopStart
	src.Queue.Buffer.LoopEnd = loopEnd
	return src
}

// newMonoStreamingSource chains one BufferListItem per element of bufs
// into a doubly-linked, non-looping queue.
func newMonoStreamingSource(bufs [][]byte, fmtType FmtType, resampler Resampler, step int) *Source {
	sampleSize := fmtType.SampleSize()
	src := &Source{State: Playing, SourceType: Streaming, ResamplerKind: resampler, Looping: false}
	src.NewSource(1, sampleSize)

	var head, prev *BufferListItem
	for _, data := range bufs {
		buf := &Buffer{Data: data, Size: len(data), FmtType: fmtType}
		item := &BufferListItem{Buffer: buf, Prev: prev}
		if prev != nil {
			prev.Next = item
		} else {
			head = item
		}
		prev = item
	}
	src.Queue = head
	src.BuffersInQueue = len(bufs)
	src.Params.Step = step
	src.Params.DryGains[0][FrontLeft] = 1
	src.Params.DoMix = SelectMixer(fmtType, resampler)
	return src
}

// enableIdentityHrtf configures channel 0's HRTF coefficients/delay as a
// one-tap identity filter with no ramp in progress, and switches
// Params.DoMix to the HRTF mixer.
func enableIdentityHrtf(src *Source, fmtType FmtType, resampler Resampler) {
	src.Params.HrtfCoeffs[0][0] = [2]float32{1, 1}
	src.Params.DoMix = SelectHrtfMixer(fmtType, resampler)
}
