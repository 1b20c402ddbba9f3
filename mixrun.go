// mixrun.go - Per-tick fan-out across sources sharing one device. Spec
// §5 permits parallel source mixing as long as the additive writes into
// shared accumulators are serialized; this starts one errgroup goroutine
// per source and holds a mutex for each whole MixSource call, so the
// sources' mixes run one at a time, the same pattern the rest of the
// retrieval pack uses for worker-pool style work.

package spatialmix

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// Mixer drives a fixed set of sources into one shared Device each tick.
type Mixer struct {
	Device  *Device
	Sources []*Source

	mu sync.Mutex
}

// Tick mixes up to samplesToDo samples from every Playing source into
// m.Device, advancing each source's playback state.
func (m *Mixer) Tick(samplesToDo int) error {
	var g errgroup.Group
	for _, src := range m.Sources {
		src := src
		g.Go(func() error {
			if src.State != Playing {
				return nil
			}
			m.mu.Lock()
			defer m.mu.Unlock()
			MixSource(src, m.Device, samplesToDo)
			return nil
		})
	}
	return g.Wait()
}
