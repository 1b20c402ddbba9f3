// types.go - Data model for sources, device, and effect slots.

package spatialmix

// Buffer is an immutable PCM buffer owned by the application; the core
// never mutates it.
type Buffer struct {
	Data      []byte
	Size      int // bytes
	LoopStart int // sample index
	LoopEnd   int // sample index
	FmtType   FmtType
}

// NumSamples returns the buffer's length in samples for the given frame
// size (channels * sample size).
func (b *Buffer) NumSamples(frameSize int) int {
	if frameSize == 0 {
		return 0
	}
	return b.Size / frameSize
}

// BufferListItem is a node in a source's doubly-linked buffer queue. It
// may carry no Buffer at all (a deliberately-empty placeholder the queue
// walk must skip over).
type BufferListItem struct {
	Buffer *Buffer
	Next   *BufferListItem
	Prev   *BufferListItem
}

// AuxSend routes a scalar-gain, single-pole-filtered copy of a source
// channel into an EffectSlot's mono wet buffer.
type AuxSend struct {
	Slot      *EffectSlot
	WetGain   float32
	IIRFilter OnePoleFilter
}

// Params holds the already-resolved spatialization parameters for one mix
// slice; the core only consumes these, never derives them.
type Params struct {
	Step int // resample phase increment per output sample, fixed-point

	IIRFilter BiquadFilter // per-source-channel voice filter

	// DryGains[srcCh][outCh] is the non-HRTF panning gain matrix.
	DryGains [][MaxChannels]float32

	// HRTF ramp targets and per-output-sample step, indexed [srcCh][tap][ear]
	// (coeffs) or [srcCh][ear] (delay); each source channel ramps toward its
	// own target independently since panning gain differs per channel.
	HrtfCoeffs    [][HRIRLength][2]float32
	HrtfCoeffStep [][HRIRLength][2]float32
	HrtfDelay     [][2]int32 // 16.16 fixed-point target delay per source channel, per ear
	HrtfDelayStep [][2]int32

	DoMix MixerFn

	Send []AuxSend
}

// Source is a single playing voice.
type Source struct {
	State SourceState

	Queue         *BufferListItem // head of the buffer queue
	BuffersPlayed int             // index of the currently-playing item
	BuffersInQueue int

	Position         int // integer sample index within the current buffer
	PositionFraction int // fixed-point phase, [0, FractionOne)

	Looping    bool
	SourceType SourceType

	NumChannels int
	SampleSize  int
	FrameSize   int // NumChannels * SampleSize

	ResamplerKind Resampler

	Params Params

	// HRTF interpolation/ring-buffer state, one row per source channel.
	HrtfCounter int
	HrtfOffset  uint32
	HrtfMoving  bool
	HrtfHistory [][SrcHistoryLength]float32
	HrtfValues  [][HRIRLength][2]float32

	// current queue-walk cursor, maintained across MixSource calls
	cur *BufferListItem
}

// NewSource sets NumChannels, SampleSize and FrameSize from its arguments
// and allocates the per-channel filter, gain and HRTF state.
func (s *Source) NewSource(numChannels, sampleSize int) {
	s.NumChannels = numChannels
	s.SampleSize = sampleSize
	s.FrameSize = numChannels * sampleSize
	s.HrtfHistory = make([][SrcHistoryLength]float32, numChannels)
	s.HrtfValues = make([][HRIRLength][2]float32, numChannels)
	s.Params.IIRFilter.init(numChannels)
	s.Params.DryGains = make([][MaxChannels]float32, numChannels)
	s.Params.HrtfCoeffs = make([][HRIRLength][2]float32, numChannels)
	s.Params.HrtfCoeffStep = make([][HRIRLength][2]float32, numChannels)
	s.Params.HrtfDelay = make([][2]int32, numChannels)
	s.Params.HrtfDelayStep = make([][2]int32, numChannels)
}

// AddSend appends a new aux send routing this source into slot, with its
// own per-channel one-pole filter state.
func (s *Source) AddSend(slot *EffectSlot, wetGain float32) {
	send := AuxSend{Slot: slot, WetGain: wetGain}
	send.IIRFilter.init(s.NumChannels)
	s.Params.Send = append(s.Params.Send, send)
}

// Device is the per-output-period dry-mix accumulator shared by all
// sources. The core only accumulates into it; a separate consumption
// stage (devicemix.go) reads and zeroes it.
type Device struct {
	DryBuffer     [][MaxChannels]float32
	ClickRemoval  [MaxChannels]float32
	PendingClicks [MaxChannels]float32
	NumAuxSends   int
}

// NewDevice allocates a dry buffer sized for samplesPerPeriod output
// samples.
func NewDevice(samplesPerPeriod, numAuxSends int) *Device {
	return &Device{
		DryBuffer:   make([][MaxChannels]float32, samplesPerPeriod),
		NumAuxSends: numAuxSends,
	}
}

// Reset zeroes the dry buffer for the next period, keeping click-removal
// state (it carries across periods by design).
func (d *Device) Reset() {
	for i := range d.DryBuffer {
		d.DryBuffer[i] = [MaxChannels]float32{}
	}
}

// EffectSlot is the external processor a source's aux send feeds; a slot
// whose EffectType is EffectNull is a bypass and sends into it are skipped.
type EffectSlot struct {
	WetBuffer     []float32
	ClickRemoval  [1]float32
	PendingClicks [1]float32
	EffectType    EffectType
}

type EffectType int

const (
	EffectNull EffectType = iota
	EffectReverb
	EffectChorus
)

// NewEffectSlot allocates a mono wet buffer sized for samplesPerPeriod.
func NewEffectSlot(samplesPerPeriod int) *EffectSlot {
	return &EffectSlot{WetBuffer: make([]float32, samplesPerPeriod)}
}

func (s *EffectSlot) Reset() {
	for i := range s.WetBuffer {
		s.WetBuffer[i] = 0
	}
}
