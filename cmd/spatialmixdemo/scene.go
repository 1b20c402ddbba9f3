// scene.go - Lua scene scripting for the demo harness: a script sets a
// global `sources` table describing what to play and where, the same
// "small config script drives static Go structs" shape the rest of the
// retrieval pack uses gopher-lua for.

package main

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// SceneSource describes one demo voice as configured by a scene script.
type SceneSource struct {
	Freq      float64
	GainLeft  float64
	GainRight float64
	Looping   bool
	Resampler string
}

// loadScene runs a Lua scene script and extracts its `sources` table.
func loadScene(path string) ([]SceneSource, error) {
	L := lua.NewState()
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("scene script: %w", err)
	}

	tbl, ok := L.GetGlobal("sources").(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("scene script must define a global 'sources' table")
	}

	var out []SceneSource
	var forEachErr error
	tbl.ForEach(func(_ lua.LValue, v lua.LValue) {
		row, ok := v.(*lua.LTable)
		if !ok {
			forEachErr = fmt.Errorf("sources entries must be tables")
			return
		}
		src := SceneSource{
			Freq:      float64(lua.LVAsNumber(row.RawGetString("freq"))),
			GainLeft:  float64(lua.LVAsNumber(row.RawGetString("gain_left"))),
			GainRight: float64(lua.LVAsNumber(row.RawGetString("gain_right"))),
			Looping:   lua.LVAsBool(row.RawGetString("loop")),
			Resampler: lua.LVAsString(row.RawGetString("resampler")),
		}
		out = append(out, src)
	})
	return out, forEachErr
}

// defaultScene is used when no scene script is given on the command line:
// one looping tone panned center.
func defaultScene() []SceneSource {
	return []SceneSource{
		{Freq: 440, GainLeft: 0.7, GainRight: 0.7, Looping: true, Resampler: "cubic"},
	}
}
