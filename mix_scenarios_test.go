// mix_scenarios_test.go - Concrete mix scenarios (spec §8 A-F): fixed
// inputs with a known-correct output, checked with testify/require in
// the style of the pack's testify-based suites.

package spatialmix

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// A: Static, non-looping, mono i16 [0, 16384, -16384, 0], point
// resampler, step=FractionOne, dry gain 1 into FrontLeft, pass-through
// filter. Four calls of samplesToDo=1 produce dry_buffer[0][0] of
// [0, 0.5, -0.5, 0] and the source ends Stopped.
func TestScenarioA_StaticPointSingleSampleCalls(t *testing.T) {
	data := encodeI16([]int16{0, 16384, -16384, 0})
	src := newMonoStaticSource(data, FmtShort, ResamplerPoint, FractionOne)

	want := []float32{0, 16384.0 / 32767.0, -16384.0 / 32767.0, 0}
	for i, w := range want {
		device := NewDevice(1, 0)
		MixSource(src, device, 1)
		require.InDeltaf(t, w, device.DryBuffer[0][FrontLeft], 1e-4, "sample %d", i)
	}
	require.Equal(t, Stopped, src.State)
}

// B: Static, looping, LoopStart=1, LoopEnd=3, buffer [a,b,c,d], point,
// step=FractionOne, samplesToDo=6: outputs follow source indices
// 0,1,2,1,2,1 and Position ends at 2.
func TestScenarioB_StaticLoopingPoint(t *testing.T) {
	a, b, c, d := float32(1), float32(2), float32(3), float32(4)
	data := encodeF32([]float32{a, b, c, d})
	src := newMonoLoopingSource(data, FmtFloat, ResamplerPoint, FractionOne, 1, 3)

	device := NewDevice(6, 0)
	MixSource(src, device, 6)

	want := []float32{a, b, c, b, c, b}
	for i, w := range want {
		require.InDeltaf(t, w, device.DryBuffer[i][FrontLeft], 1e-6, "sample %d", i)
	}
	require.Equal(t, Playing, src.State)
	require.Equal(t, 2, src.Position)
}

// C: Streaming, three queued mono i16 buffers of length 2 each, point,
// step=FractionOne, samplesToDo=5, non-looping: outputs the contiguous
// source stream 0..4, BuffersPlayed ends at 2, Position ends at 1.
func TestScenarioC_StreamingQueueAdvance(t *testing.T) {
	vals := []int16{10, 20, 30, 40, 50, 60}
	bufs := [][]byte{
		encodeI16(vals[0:2]),
		encodeI16(vals[2:4]),
		encodeI16(vals[4:6]),
	}
	src := newMonoStreamingSource(bufs, FmtShort, ResamplerPoint, FractionOne)

	device := NewDevice(5, 0)
	MixSource(src, device, 5)

	for i, v := range vals[:5] {
		want := float32(v) / 32767.0
		require.InDeltaf(t, want, device.DryBuffer[i][FrontLeft], 1e-4, "sample %d", i)
	}
	require.Equal(t, 2, src.BuffersPlayed)
	require.Equal(t, 1, src.Position)
	require.Equal(t, Playing, src.State)
}

// D: Linear resampler, step=FractionOne/2, mono f32 buffer [0,1],
// samplesToDo=3: outputs [0, 0.5, 1.0], the tail zero-padded past the
// buffer end.
func TestScenarioD_LinearZeroPaddedTail(t *testing.T) {
	data := encodeF32([]float32{0, 1})
	src := newMonoStaticSource(data, FmtFloat, ResamplerLinear, FractionOne/2)

	device := NewDevice(3, 0)
	MixSource(src, device, 3)

	want := []float32{0, 0.5, 1.0}
	for i, w := range want {
		require.InDeltaf(t, w, device.DryBuffer[i][FrontLeft], 1e-6, "sample %d", i)
	}
}

// E: Cubic resampler needs pre-padding of 1; the very first output at
// Position=0 must read a synthetic zero for v[-1] rather than reading out
// of bounds, and must match cubic interpolation over [0,0,1,0] at t=0.
func TestScenarioE_CubicFirstSampleSyntheticPrePad(t *testing.T) {
	data := encodeF32([]float32{0, 1, 0})
	src := newMonoStaticSource(data, FmtFloat, ResamplerCubic, FractionOne)

	device := NewDevice(1, 0)
	require.NotPanics(t, func() {
		MixSource(src, device, 1)
	})
	require.InDeltaf(t, 0, device.DryBuffer[0][FrontLeft], 1e-6)
}

// 8-bit format decode: point resampler over a mono i8 buffer normalizes
// each element by /127, matching spec §4.1.
func TestDecode_I8FormatNormalization(t *testing.T) {
	data := encodeI8([]int8{127, -128, 0})
	src := newMonoStaticSource(data, FmtByte, ResamplerPoint, FractionOne)

	device := NewDevice(3, 0)
	MixSource(src, device, 3)

	want := []float32{1.0, -128.0 / 127.0, 0}
	for i, w := range want {
		require.InDeltaf(t, w, device.DryBuffer[i][FrontLeft], 1e-4, "sample %d", i)
	}
}

// F: HRTF steady state with an identity one-tap FIR (Coeffs[0]=(1,1),
// all other taps zero) and zero delay: FRONT_LEFT/FRONT_RIGHT equal the
// filtered (pass-through) input stream, and no other output channel is
// touched.
func TestScenarioF_HrtfIdentitySteadyState(t *testing.T) {
	samples := []float32{0.3, 0.6, 0.9}
	data := encodeF32(samples)
	src := newMonoStaticSource(data, FmtFloat, ResamplerPoint, FractionOne)
	enableIdentityHrtf(src, FmtFloat, ResamplerPoint)

	device := NewDevice(3, 0)
	MixSource(src, device, 3)

	for i, v := range samples {
		require.InDeltaf(t, v, device.DryBuffer[i][FrontLeft], 1e-6, "left %d", i)
		require.InDeltaf(t, v, device.DryBuffer[i][FrontRight], 1e-6, "right %d", i)
		for c := 0; c < MaxChannels; c++ {
			if c == FrontLeft || c == FrontRight {
				continue
			}
			require.Zerof(t, device.DryBuffer[i][c], "channel %d at sample %d should be untouched", c, i)
		}
	}
}

// F2: the leading click-removal correction for a source with a nonzero
// inter-aural delay must read the delayed history sample, not the raw
// just-filtered one - otherwise the correction at a block boundary
// doesn't match what the per-sample loop actually emitted, and the
// crossfade in devicemix.go reintroduces the click it exists to hide.
// Builds up one block of real history via a first MixSource call, then
// checks the second call's leading correction against a value computed
// independently from the ring state MixSource itself exposes.
func TestScenarioF2_HrtfLeadingCorrectionUsesDelayedHistory(t *testing.T) {
	samples := []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8}
	data := encodeF32(samples)

	src := newMonoStaticSource(data, FmtFloat, ResamplerPoint, FractionOne)
	src.Params.HrtfCoeffs[0][0] = [2]float32{1, 1}
	src.Params.HrtfDelay[0] = [2]int32{2 << 16, 0} // left ear lags 2 samples, right ear none
	src.Params.DoMix = SelectHrtfMixer(FmtFloat, ResamplerPoint)

	// First call fills history[0..3] with samples[0..3].
	MixSource(src, NewDevice(4, 0), 4)
	require.Equal(t, uint32(4), src.HrtfOffset)

	history := src.HrtfHistory[0]
	values := src.HrtfValues[0]
	offset := src.HrtfOffset

	wantLeft := history[(offset-2)&SrcHistoryMask]
	wantNext := values[(offset+1)&HRIRMask]
	wantCorrection := -(wantNext[0] + 1*wantLeft)

	// The delayed lookback must land on real history (samples[2]), not
	// on the next raw input sample about to be filtered (samples[4]) -
	// the exact distinction the bug collapsed.
	require.InDeltaf(t, samples[2], wantLeft, 1e-6)
	require.NotEqual(t, samples[4], wantLeft)

	device2 := NewDevice(4, 0)
	MixSource(src, device2, 4)

	require.InDeltaf(t, wantCorrection, device2.ClickRemoval[FrontLeft], 1e-6)
}
