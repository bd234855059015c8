package orrery

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and draw-call metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime  time.Duration
	submitTime    time.Duration
	commandCount  int
	drawCallCount int
}

// debugLogEvery throttles stats output to one line pair per this many draws.
const debugLogEvery = 60

// debugLogDue reports whether the current draw should log stats. Draws are
// counted apart from ticks since Ebitengine may draw several times per tick.
func (s *Scene) debugLogDue() bool {
	return s.debug && s.draws%debugLogEvery == 0
}

// debugLog prints timing and draw-call stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debugLogDue() {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[orrery] draw %d (tick %d) | traverse: %v | submit: %v | total: %v\n",
		s.draws, s.frames, stats.traverseTime, stats.submitTime, stats.traverseTime+stats.submitTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[orrery] commands: %d | draw calls: %d\n",
		stats.commandCount, stats.drawCallCount)
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	if d := nodeDepth(n); d > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[orrery] warning: tree depth %d exceeds %d (node %q)\n",
			d, debugMaxTreeDepth, n.Name)
	}
}

// nodeDepth counts n and its ancestors.
func nodeDepth(n *Node) int {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	return depth
}
