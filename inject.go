package orrery

// InjectKey queues a synthetic key press. Injected keys are consumed one per
// frame, ahead of live keyboard input, on the next Update.
func (s *Scene) InjectKey(k Key) {
	s.keyQueue = append(s.keyQueue, k)
}

// InjectClick queues a synthetic left click at the given screen coordinates.
// The position is converted to world space through the viewport, identical
// to real mouse input. Consumes one frame.
func (s *Scene) InjectClick(x, y float64) {
	s.clickQueue = append(s.clickQueue, Vec2{X: x, Y: y})
}

// pendingInjections reports how many synthetic events are still queued.
func (s *Scene) pendingInjections() int {
	return len(s.keyQueue) + len(s.clickQueue)
}
