// select.go - Kernel dispatch tables. Selection happens once per
// parameter update; the returned MixerFn makes no further format or
// resampler decisions on the hot path.

package spatialmix

var decoders = [numFmtTypes]decodeFunc{
	FmtByte:  decodeI8,
	FmtShort: decodeI16,
	FmtFloat: decodeF32,
}

var samplerCtors = [numResamplers]func(decodeFunc) samplerFunc{
	ResamplerPoint:  pointSampler,
	ResamplerLinear: lerpSampler,
	ResamplerCubic:  cubicSampler,
}

var dryMixers [numFmtTypes][numResamplers]MixerFn
var hrtfMixers [numFmtTypes][numResamplers]MixerFn

func init() {
	for f := FmtType(0); f < numFmtTypes; f++ {
		for r := Resampler(0); r < numResamplers; r++ {
			sampler := samplerCtors[r](decoders[f])
			dryMixers[f][r] = makeMixDry(sampler)
			hrtfMixers[f][r] = makeMixHrtf(sampler)
		}
	}
}

// SelectMixer returns the non-HRTF mixer for a (format, resampler) pair,
// or nil if the combination is unsupported.
func SelectMixer(fmtType FmtType, resampler Resampler) MixerFn {
	if fmtType < 0 || fmtType >= numFmtTypes || resampler < 0 || resampler >= numResamplers {
		return nil
	}
	return dryMixers[fmtType][resampler]
}

// SelectHrtfMixer returns the HRTF mixer for a (format, resampler) pair,
// or nil if the combination is unsupported.
func SelectHrtfMixer(fmtType FmtType, resampler Resampler) MixerFn {
	if fmtType < 0 || fmtType >= numFmtTypes || resampler < 0 || resampler >= numResamplers {
		return nil
	}
	return hrtfMixers[fmtType][resampler]
}
