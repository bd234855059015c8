package orrery

import "math"

// Global speed factors applied by SpeedUp and SpeedDown. They are not
// inverses: one of each leaves the multiplier at 0.99 of where it started.
const (
	SpeedUpFactor   = 1.1
	SpeedDownFactor = 0.9
)

// Animated is a scalar that a Loop advances once per tick.
type Animated interface {
	// Advance moves the value by its own speed times mult and wraps it back
	// into its canonical range.
	Advance(mult float64)
}

// Spinner is an angle in degrees kept in [0, 360).
type Spinner struct {
	Angle float64
	Speed float64
}

// Advance adds Speed*mult to Angle and wraps.
func (s *Spinner) Advance(mult float64) {
	s.Angle = wrapDegrees(s.Angle + s.Speed*mult)
}

// wrapDegrees folds a into [0, 360). Per-tick steps stay below a full turn,
// so a single subtraction normally suffices; larger steps fall back to Mod.
func wrapDegrees(a float64) float64 {
	switch {
	case a >= 360:
		a -= 360
	case a < 0:
		a += 360
	}
	if a < 0 || a >= 360 {
		a = math.Mod(a, 360)
		if a < 0 {
			a += 360
		}
		if a >= 360 { // -tiny + 360 rounds up
			a = 0
		}
	}
	return a
}

// Scroller is an offset kept in [-Bound, Bound]. Leaving one side re-enters
// at the other.
type Scroller struct {
	Offset float64
	Speed  float64
	Bound  float64
}

// Advance adds Speed*mult to Offset and wraps.
func (s *Scroller) Advance(mult float64) {
	s.Nudge(s.Speed * mult)
}

// Nudge shifts Offset by delta and wraps. It ignores the pause state, since
// it is driven by the player rather than the clock.
func (s *Scroller) Nudge(delta float64) {
	s.Offset += delta
	switch {
	case s.Offset > s.Bound:
		s.Offset = -s.Bound
	case s.Offset < -s.Bound:
		s.Offset = s.Bound
	}
}

// Loop advances a fixed set of animated values by a shared speed multiplier.
// The set is fixed once ticking starts; values are advanced in the order they
// were added.
type Loop struct {
	// Speed is the global multiplier. NewLoop sets it to 1.
	Speed float64

	paused bool
	values []Animated
}

// NewLoop returns a running loop over values with a multiplier of 1.
func NewLoop(values ...Animated) *Loop {
	return &Loop{Speed: 1, values: values}
}

// Add appends v to the loop.
func (l *Loop) Add(v Animated) {
	l.values = append(l.values, v)
}

// Len returns the number of animated values.
func (l *Loop) Len() int {
	return len(l.values)
}

// Tick advances every value once. It does nothing while paused and reports
// whether anything moved.
func (l *Loop) Tick() bool {
	if l.paused {
		return false
	}
	for _, v := range l.values {
		v.Advance(l.Speed)
	}
	return true
}

// TogglePause flips the paused flag.
func (l *Loop) TogglePause() {
	l.paused = !l.paused
}

// Paused reports whether Tick is currently a no-op.
func (l *Loop) Paused() bool {
	return l.paused
}

// SpeedUp multiplies the global speed by SpeedUpFactor.
func (l *Loop) SpeedUp() {
	l.Speed *= SpeedUpFactor
}

// SpeedDown multiplies the global speed by SpeedDownFactor.
func (l *Loop) SpeedDown() {
	l.Speed *= SpeedDownFactor
}

// HandleKey applies the keys every demo shares: Space pauses, Up and Down
// change speed and Escape quits with ErrQuit. It reports whether k was one
// of them.
func (l *Loop) HandleKey(k Key) (bool, error) {
	switch k {
	case KeyEscape:
		return true, ErrQuit
	case KeySpace:
		l.TogglePause()
	case KeyUp:
		l.SpeedUp()
	case KeyDown:
		l.SpeedDown()
	default:
		return false, nil
	}
	return true, nil
}
