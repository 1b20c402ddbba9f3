// constants.go - Fixed-point phase, padding, and channel layout constants
// for the spatial mixing core.

package spatialmix

// ------------------------------------------------------------------------------
// Fixed-point resample phase
// ------------------------------------------------------------------------------
const (
	FractionBits = 14                 // Width of the fractional phase
	FractionOne  = 1 << FractionBits  // 1.0 in fixed-point phase units
	FractionMask = FractionOne - 1    // Mask to keep phase in [0, FractionOne)
)

// ------------------------------------------------------------------------------
// Resampler kinds
// ------------------------------------------------------------------------------
type Resampler int

const (
	ResamplerPoint Resampler = iota
	ResamplerLinear
	ResamplerCubic
	numResamplers
)

// ResamplerPrePadding/ResamplerPadding give the number of source samples
// each kernel needs before/after the read head (the cubic kernel reads
// v[-step] and v[step], v[2*step]).
var (
	ResamplerPrePadding = [numResamplers]int{
		ResamplerPoint:  0,
		ResamplerLinear: 0,
		ResamplerCubic:  1,
	}
	ResamplerPadding = [numResamplers]int{
		ResamplerPoint:  0,
		ResamplerLinear: 1,
		ResamplerCubic:  2,
	}
)

// ------------------------------------------------------------------------------
// Sample element formats
// ------------------------------------------------------------------------------
type FmtType int

const (
	FmtByte FmtType = iota
	FmtShort
	FmtFloat
	numFmtTypes
)

// SampleSize returns the element width in bytes for a format.
func (f FmtType) SampleSize() int {
	switch f {
	case FmtByte:
		return 1
	case FmtShort:
		return 2
	case FmtFloat:
		return 4
	default:
		return 0
	}
}

// Normalization divisors used to map integer PCM to [-1, 1] unit float.
const (
	normalize8  = 127.0
	normalize16 = 32767.0
	normalize32 = 1.0
)

// ------------------------------------------------------------------------------
// Output channel layout
// ------------------------------------------------------------------------------
// Not specified by name count in spec.md beyond FRONT_LEFT/FRONT_RIGHT;
// follows the 8-channel device layout of the OpenAL-soft mixer this spec
// distills (see original_source/Alc/mixer.c and DESIGN.md).
const (
	FrontLeft = iota
	FrontRight
	FrontCenter
	LFE
	BackLeft
	BackRight
	SideLeft
	SideRight
	MaxChannels
)

// ------------------------------------------------------------------------------
// Source state machine
// ------------------------------------------------------------------------------
type SourceState int

const (
	Initial SourceState = iota
	Playing
	Paused
	Stopped
)

type SourceType int

const (
	Static SourceType = iota
	Streaming
)

// ------------------------------------------------------------------------------
// HRTF ring buffer sizes
// ------------------------------------------------------------------------------
// Both must be powers of two so that `& mask` implements wraparound.
const (
	HRIRLength = 32 // FIR tap count per ear
	HRIRMask   = HRIRLength - 1

	SrcHistoryLength = 128 // Pre-HRTF filtered-signal delay line length
	SrcHistoryMask   = SrcHistoryLength - 1
)

// DelayFracBits is the number of fractional bits in the 16.16 HRTF delay
// ramp; the +32768 bias in §4.4 implements round-to-nearest before the
// ramp collapses to an integer sample count.
const (
	DelayFracBits = 16
	delayRoundBias = 1 << (DelayFracBits - 1)
)

// STACK_DATA_SIZE bounds the per-iteration padded source window MixSource
// assembles; kept at the original mixer's size (see DESIGN.md).
const StackDataSize = 16384
