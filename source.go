// source.go - MixSource feed loop (spec §4.6): sizes and assembles a
// padded source window each iteration, invokes the selected mixer, and
// drives the buffer-queue/loop state machine until the requested output
// span is filled or the source stops.

package spatialmix

// MixSource drives source until samplesToDo output samples have been
// produced into device, or the source stops. Preconditions: source.State
// is well-defined, the queue is non-empty, and source.Params.DoMix is set.
func MixSource(source *Source, device *Device, samplesToDo int) {
	if source.State != Playing {
		return
	}
	if source.cur == nil {
		source.cur = source.Queue
	}
	if source.cur == nil {
		source.State = Stopped
		return
	}

	prePad := ResamplerPrePadding[source.ResamplerKind]
	postPad := ResamplerPadding[source.ResamplerKind]
	frameSize := source.FrameSize
	maxFrames := StackDataSize / frameSize

	var stackBuf [StackDataSize]byte

	outPos := 0
	for source.State == Playing && outPos < samplesToDo {
		// (a) Size the request. The +1 on the remaining count matches
		// original_source/Alc/mixer.c:586's SamplesToDo-OutPos+1. The +1
		// after the shift already makes §4.6(c)'s BufferSize come out at
		// least `needed` (usable*FractionOne > needed*step+frac), so the
		// first margin only adds one output step of slack to the window.
		needed := samplesToDo - outPos
		numerator := int64(needed+1)*int64(source.Params.Step) + int64(source.PositionFraction)
		usableNeeded := int(numerator>>FractionBits) + 1
		if usableNeeded < 1 {
			usableNeeded = 1
		}
		total := usableNeeded + prePad + postPad
		if total > maxFrames {
			total = maxFrames
		}
		srcData := stackBuf[:total*frameSize]

		// (b) Assemble the padded window.
		if source.SourceType == Static {
			source.fillWindowStatic(srcData, prePad)
		} else {
			source.fillWindowStreaming(srcData, prePad)
		}

		// (c) How many output samples this window supports.
		usable := total - prePad - postPad
		if usable < 0 {
			usable = 0
		}
		bufferSize := 0
		if source.Params.Step > 0 {
			num := usable*FractionOne - source.Params.Step - source.PositionFraction + (source.Params.Step - 1)
			bufferSize = num / source.Params.Step
		}
		if bufferSize < 0 {
			bufferSize = 0
		}
		if remain := samplesToDo - outPos; bufferSize > remain {
			bufferSize = remain
		}

		// (d) Invoke the selected mixer.
		// srcData is handed to the mixer whole, not re-sliced at prePad:
		// the cubic kernel's v[-step] read needs the pre-padding bytes
		// still reachable, and Go slices (unlike C pointers) cannot index
		// negative of their own start even when backing memory exists.
		source.Params.DoMix(source, device, srcData, prePad, &source.Position, &source.PositionFraction, outPos, samplesToDo, bufferSize)
		outPos += bufferSize

		// (e) Advance queue/loop state.
		source.advanceQueue()
	}

	// Post: HRTF ramp bookkeeping for the next call.
	source.HrtfOffset += uint32(outPos)
	if source.State == Playing {
		if source.HrtfCounter > outPos {
			source.HrtfCounter -= outPos
		} else {
			source.HrtfCounter = 0
		}
		source.HrtfMoving = true
	} else {
		source.HrtfCounter = 0
		source.HrtfMoving = false
	}
}

// advanceQueue implements step (e): stop in place, wrap a static loop,
// cross a buffer boundary, or stop the source at the end of the queue.
func (s *Source) advanceQueue() {
	for {
		cur := s.cur
		if cur.Buffer != nil && cur.Buffer.LoopEnd > s.Position {
			return
		}
		if s.SourceType == Static && s.Looping && cur.Buffer != nil {
			buf := cur.Buffer
			loopLen := buf.LoopEnd - buf.LoopStart
			s.Position = ((s.Position-buf.LoopStart)%loopLen+loopLen)%loopLen + buf.LoopStart
			return
		}

		bufSamples := 0
		if cur.Buffer != nil {
			bufSamples = cur.Buffer.NumSamples(s.FrameSize)
		}
		if s.Position < bufSamples {
			return
		}

		next := cur.Next
		s.BuffersPlayed++
		s.Position -= bufSamples

		if next == nil {
			if s.Looping {
				s.cur = queueHead(cur)
				s.BuffersPlayed = 0
				continue
			}
			s.State = Stopped
			s.Position = 0
			s.PositionFraction = 0
			s.cur = queueHead(cur)
			s.BuffersPlayed = s.BuffersInQueue
			return
		}
		s.cur = next
	}
}

func queueHead(item *BufferListItem) *BufferListItem {
	for item.Prev != nil {
		item = item.Prev
	}
	return item
}

func queueTail(item *BufferListItem) *BufferListItem {
	for item.Next != nil {
		item = item.Next
	}
	return item
}

func zeroFill(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// fillWindowStatic assembles dst (prePad frames of lead-in, followed by
// the playable window) from a single buffer, handling the non-looping
// boundary case and the loop-region tiling case.
func (s *Source) fillWindowStatic(dst []byte, prePad int) {
	buf := s.cur.Buffer
	frameSize := s.FrameSize
	position := s.Position

	looping := s.Looping && position < buf.LoopEnd

	if !looping {
		if position >= prePad {
			start := (position - prePad) * frameSize
			n := 0
			if start < len(buf.Data) {
				n = copy(dst, buf.Data[start:])
			}
			zeroFill(dst[n:])
		} else {
			lead := (prePad - position) * frameSize
			if lead > len(dst) {
				lead = len(dst)
			}
			zeroFill(dst[:lead])
			n := copy(dst[lead:], buf.Data)
			zeroFill(dst[lead+n:])
		}
		return
	}

	loopLen := buf.LoopEnd - buf.LoopStart
	readPos := position - prePad
	off := 0
	if position >= buf.LoopStart {
		for readPos < buf.LoopStart {
			readPos += loopLen
		}
	} else if readPos < 0 {
		off = -readPos * frameSize
		if off > len(dst) {
			off = len(dst)
		}
		zeroFill(dst[:off])
		readPos = 0
	}

	start := readPos * frameSize
	end := buf.LoopEnd * frameSize
	if start < end {
		off += copy(dst[off:], buf.Data[start:end])
	}

	loopBytes := buf.Data[buf.LoopStart*frameSize : buf.LoopEnd*frameSize]
	for off < len(dst) && len(loopBytes) > 0 {
		off += copy(dst[off:], loopBytes)
	}
	zeroFill(dst[off:])
}

// fillWindowStreaming assembles dst by walking the buffer queue: reaching
// backward for any missing pre-roll, then copying forward across item
// boundaries, skipping buffer-less placeholder items.
func (s *Source) fillWindowStreaming(dst []byte, prePad int) {
	frameSize := s.FrameSize
	item := s.cur
	offset := s.Position
	leadZero := 0

	remaining := prePad
	for remaining > 0 {
		if offset >= remaining {
			offset -= remaining
			remaining = 0
			break
		}
		remaining -= offset

		prev := item.Prev
		for prev != nil && prev.Buffer == nil {
			prev = prev.Prev
		}
		if prev == nil {
			if s.Looping {
				tail := queueTail(item)
				for tail != nil && tail.Buffer == nil {
					tail = tail.Prev
				}
				if tail == nil {
					leadZero = remaining
					remaining = 0
					break
				}
				item = tail
				offset = item.Buffer.NumSamples(frameSize)
				continue
			}
			leadZero = remaining
			remaining = 0
			break
		}
		item = prev
		offset = item.Buffer.NumSamples(frameSize)
	}

	off := 0
	if leadZero > 0 {
		n := leadZero * frameSize
		if n > len(dst) {
			n = len(dst)
		}
		zeroFill(dst[:n])
		off = n
	}

	for off < len(dst) {
		if item == nil || item.Buffer == nil {
			zeroFill(dst[off:])
			return
		}
		samples := item.Buffer.NumSamples(frameSize)
		if offset >= samples {
			item = item.Next
			offset = 0
			continue
		}

		start := offset * frameSize
		n := copy(dst[off:], item.Buffer.Data[start:samples*frameSize])
		off += n
		offset += n / frameSize

		if off >= len(dst) {
			return
		}

		next := item.Next
		for next != nil && next.Buffer == nil {
			next = next.Next
		}
		if next == nil {
			if s.Looping {
				head := queueHead(item)
				for head != nil && head.Buffer == nil {
					head = head.Next
				}
				if head == nil {
					zeroFill(dst[off:])
					return
				}
				item = head
				offset = 0
				continue
			}
			zeroFill(dst[off:])
			return
		}
		item = next
		offset = 0
	}
}
