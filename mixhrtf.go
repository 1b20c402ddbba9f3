// mixhrtf.go - HRTF convolution mixer (spec §4.4): replaces the dry pan
// path with a ramped, per-ear FIR convolution driven by a rotating output
// accumulator so each input sample costs one multiply-add per tap rather
// than a full convolution per output sample.

package spatialmix

// makeMixHrtf builds the HRTF mixer for one (format,resampler) pair. Like
// makeMixDry, the sampler is closed over once by select.go.
func makeMixHrtf(sampler samplerFunc) MixerFn {
	return func(source *Source, device *Device, srcData []byte, prePad int, posInt, posFrac *int, outPos, samplesToDo, bufferSize int) {
		numChannels := source.NumChannels
		step := numChannels
		increment := source.Params.Step
		filter := &source.Params.IIRFilter
		lead := prePad * numChannels

		var pos, frac int
		for i := 0; i < numChannels; i++ {
			history := &source.HrtfHistory[i]
			values := &source.HrtfValues[i]
			target := &source.Params.HrtfCoeffs[i]
			coeffStep := &source.Params.HrtfCoeffStep[i]
			targetDelay := &source.Params.HrtfDelay[i]
			delayStep := &source.Params.HrtfDelayStep[i]

			pos = 0
			frac = *posFrac

			counter := source.HrtfCounter - outPos
			if counter < 0 {
				counter = 0
			}
			offset := uint32(source.HrtfOffset) + uint32(outPos)

			var coeffs [HRIRLength][2]float32
			for c := 0; c < HRIRLength; c++ {
				coeffs[c][0] = target[c][0] - coeffStep[c][0]*float32(counter)
				coeffs[c][1] = target[c][1] - coeffStep[c][1]*float32(counter)
			}
			delay := [2]int32{
				targetDelay[0] - delayStep[0]*int32(counter) + delayRoundBias,
				targetDelay[1] - delayStep[1]*int32(counter) + delayRoundBias,
			}

			if outPos == 0 {
				v := filter.stepCorrection(i, sampler(srcData, lead+pos*numChannels+i, step, frac))
				history[offset&SrcHistoryMask] = v
				left := history[(offset-uint32(delay[0]>>16))&SrcHistoryMask]
				right := history[(offset-uint32(delay[1]>>16))&SrcHistoryMask]
				next := values[(offset+1)&HRIRMask]
				device.ClickRemoval[FrontLeft] -= next[0] + coeffs[0][0]*left
				device.ClickRemoval[FrontRight] -= next[1] + coeffs[0][1]*right
			}

			op := outPos
			for b := 0; b < bufferSize; b++ {
				v := filter.step(i, sampler(srcData, lead+pos*numChannels+i, step, frac))
				history[offset&SrcHistoryMask] = v

				left := history[(offset-uint32(delay[0]>>16))&SrcHistoryMask]
				right := history[(offset-uint32(delay[1]>>16))&SrcHistoryMask]

				ramping := counter > 0
				if ramping {
					delay[0] += delayStep[0]
					delay[1] += delayStep[1]
				}

				values[offset&HRIRMask] = [2]float32{}
				offset++

				// Fused tap accumulation (ApplyCoeffs): spread this sample's
				// contribution across the next HRIR_LENGTH output slots.
				for c := 0; c < HRIRLength; c++ {
					cell := &values[(offset+uint32(c))&HRIRMask]
					cell[0] += coeffs[c][0] * left
					cell[1] += coeffs[c][1] * right
					if ramping {
						coeffs[c][0] += coeffStep[c][0]
						coeffs[c][1] += coeffStep[c][1]
					}
				}

				out := values[offset&HRIRMask]
				row := &device.DryBuffer[op]
				row[FrontLeft] += out[0]
				row[FrontRight] += out[1]

				if ramping {
					counter--
				}

				frac += increment
				pos += frac >> FractionBits
				frac &= FractionMask
				op++
			}

			if op == samplesToDo {
				v := filter.stepCorrection(i, sampler(srcData, lead+pos*numChannels+i, step, frac))
				history[offset&SrcHistoryMask] = v
				left := history[(offset-uint32(delay[0]>>16))&SrcHistoryMask]
				right := history[(offset-uint32(delay[1]>>16))&SrcHistoryMask]
				next := values[(offset+1)&HRIRMask]
				device.PendingClicks[FrontLeft] += next[0] + coeffs[0][0]*left
				device.PendingClicks[FrontRight] += next[1] + coeffs[0][1]*right
			}
		}

		// Aux sends always filter the raw source stream, never the
		// HRTF-convolved one.
		mixAuxSends(source, sampler, srcData, lead, posFrac, outPos, samplesToDo, bufferSize)

		*posInt += pos
		*posFrac = frac
	}
}
