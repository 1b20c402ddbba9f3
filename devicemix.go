// devicemix.go - Device/effect-slot consumption stage: applies the
// click-removal crossfade at the block boundary, promotes this block's
// pending clicks into the next block's correction, copies the
// accumulators out to interleaved output, and resets them for the next
// period. No direct original-source analogue survived retrieval (the
// original's device-mix stage was filtered out of the pack); implemented
// from spec.md's click-removal semantics paragraph.

package spatialmix

// ConsumeDevice reads device.DryBuffer for the period just mixed into an
// interleaved output buffer sized numOutChannels per sample.
func ConsumeDevice(device *Device, out []float32, numOutChannels int) {
	for i, row := range device.DryBuffer {
		for c := 0; c < numOutChannels; c++ {
			v := row[c]
			if i == 0 {
				v += device.ClickRemoval[c]
			}
			out[i*numOutChannels+c] = v
		}
	}

	device.ClickRemoval = device.PendingClicks
	device.PendingClicks = [MaxChannels]float32{}
	device.Reset()
}

// ConsumeEffectSlot mirrors ConsumeDevice for a mono wet buffer.
func ConsumeEffectSlot(slot *EffectSlot, out []float32) {
	for i, v := range slot.WetBuffer {
		if i == 0 {
			v += slot.ClickRemoval[0]
		}
		out[i] = v
	}

	slot.ClickRemoval[0] = slot.PendingClicks[0]
	slot.PendingClicks[0] = 0
	slot.Reset()
}
