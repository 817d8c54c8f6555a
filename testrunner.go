package gridcanvas

import (
	"encoding/json"
	"fmt"
	"strings"
)

// testStep is a single action in a test script. Coordinates are window
// coordinates; Mods is a comma-separated list of "shift", "ctrl", "alt",
// "meta".
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Mods   string  `json:"mods,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"press": true, "move": true, "release": true, "click": true,
	"drag": true, "wheel": true, "center": true, "wait": true,
	"screenshot": true,
}

// TestRunner plays a scripted sequence of pointer, wheel, and camera
// commands against a Grid, one step per frame. Attach with SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script. Unknown actions and malformed
// modifier lists are rejected up front.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if _, err := parseMods(st.Mods); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a runner. Its step is called from Step before input
// is processed.
func (g *Grid) SetTestRunner(r *TestRunner) {
	g.testRunner = r
}

// Done reports whether every step has run and all injected input drained.
func (r *TestRunner) Done() bool {
	return r.done
}

// step runs at most one script step per frame, waiting for injected input
// to drain first.
func (r *TestRunner) step(g *Grid) {
	if r.done {
		return
	}
	if len(g.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	mods, _ := parseMods(st.Mods)

	switch st.Action {
	case "press":
		g.InjectPress(st.X, st.Y)
	case "move":
		g.InjectMove(st.X, st.Y)
	case "release":
		g.InjectRelease(st.X, st.Y)
	case "click":
		g.InjectClick(st.X, st.Y)
	case "drag":
		g.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wheel":
		g.InjectWheel(st.X, st.Y, st.DX, st.DY, mods)
	case "center":
		g.CenterOnPoint(st.X, st.Y)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	case "screenshot":
		g.Screenshot(st.Label)
	}
	g.log.Debug("script step", "index", r.cursor-1, "action", st.Action)

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(g.injectQueue) == 0 {
		r.done = true
	}
}

// parseMods parses a comma-separated modifier list such as "ctrl,shift".
func parseMods(s string) (KeyModifiers, error) {
	var mods KeyModifiers
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "":
		case "shift":
			mods |= ModShift
		case "ctrl", "control":
			mods |= ModCtrl
		case "alt":
			mods |= ModAlt
		case "meta", "cmd":
			mods |= ModMeta
		default:
			return 0, fmt.Errorf("unknown modifier %q", part)
		}
	}
	return mods, nil
}
