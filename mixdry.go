// mixdry.go - Non-HRTF per-source dry/wet mix (spec §4.3): resample ->
// filter -> pan into the device dry buffer, plus the aux-send pass shared
// with the HRTF mixer.

package spatialmix

// MixerFn is the per-parameter-update-selected mixer entry point. Its
// preconditions/postconditions are exactly those of spec §4.3/§4.4:
// srcData is the whole padded window (prePad samples of lead-in still
// reachable for the cubic kernel's v[-step] read, followed by the
// playable region and its post-padding), bufferSize <= samplesToDo, and
// on return *posInt/*posFrac have advanced by exactly bufferSize output
// steps.
type MixerFn func(source *Source, device *Device, srcData []byte, prePad int, posInt, posFrac *int, outPos, samplesToDo, bufferSize int)

// makeMixDry builds the plain (non-HRTF) mixer for one (format,resampler)
// pair. The sampler is selected once by select.go and closed over here -
// the hot loop below never re-dispatches on format or resampler.
func makeMixDry(sampler samplerFunc) MixerFn {
	return func(source *Source, device *Device, srcData []byte, prePad int, posInt, posFrac *int, outPos, samplesToDo, bufferSize int) {
		numChannels := source.NumChannels
		step := numChannels
		increment := source.Params.Step
		filter := &source.Params.IIRFilter
		lead := prePad * numChannels

		var pos, frac int
		for i := 0; i < numChannels; i++ {
			drySend := source.Params.DryGains[i]

			pos = 0
			frac = *posFrac

			if outPos == 0 {
				v := filter.stepCorrection(i, sampler(srcData, lead+pos*numChannels+i, step, frac))
				for c := 0; c < MaxChannels; c++ {
					device.ClickRemoval[c] -= v * drySend[c]
				}
			}

			op := outPos
			for b := 0; b < bufferSize; b++ {
				v := filter.step(i, sampler(srcData, lead+pos*numChannels+i, step, frac))
				row := &device.DryBuffer[op]
				for c := 0; c < MaxChannels; c++ {
					row[c] += v * drySend[c]
				}

				frac += increment
				pos += frac >> FractionBits
				frac &= FractionMask
				op++
			}

			if op == samplesToDo {
				v := filter.stepCorrection(i, sampler(srcData, lead+pos*numChannels+i, step, frac))
				for c := 0; c < MaxChannels; c++ {
					device.PendingClicks[c] += v * drySend[c]
				}
			}
		}

		mixAuxSends(source, sampler, srcData, lead, posFrac, outPos, samplesToDo, bufferSize)

		*posInt += pos
		*posFrac = frac
	}
}

// mixAuxSends is the send-path pass shared verbatim by the dry and HRTF
// mixers: it always filters the raw (pre-HRTF) source stream, even when
// the dry path above is replaced by HRTF convolution (spec §9, open
// question (i) - preserved intentionally).
func mixAuxSends(source *Source, sampler samplerFunc, srcData []byte, lead int, posFrac *int, outPos, samplesToDo, bufferSize int) {
	numChannels := source.NumChannels
	step := numChannels
	increment := source.Params.Step

	for sendIdx := range source.Params.Send {
		send := &source.Params.Send[sendIdx]
		if send.Slot == nil || send.Slot.EffectType == EffectNull {
			continue
		}
		wetBuffer := send.Slot.WetBuffer
		wetSend := send.WetGain
		filter := &send.IIRFilter

		for i := 0; i < numChannels; i++ {
			pos := 0
			frac := *posFrac

			if outPos == 0 {
				v := filter.stepCorrection(i, sampler(srcData, lead+pos*numChannels+i, step, frac))
				send.Slot.ClickRemoval[0] -= v * wetSend
			}

			op := outPos
			for b := 0; b < bufferSize; b++ {
				v := filter.step(i, sampler(srcData, lead+pos*numChannels+i, step, frac))
				wetBuffer[op] += v * wetSend

				frac += increment
				pos += frac >> FractionBits
				frac &= FractionMask
				op++
			}

			if op == samplesToDo {
				v := filter.stepCorrection(i, sampler(srcData, lead+pos*numChannels+i, step, frac))
				send.Slot.PendingClicks[0] += v * wetSend
			}
		}
	}
}
