package orrery

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Key repeat timing in ticks, for keys held down (arrow keys only).
const (
	repeatDelay    = 30
	repeatInterval = 4
)

// ebitenKeys maps the keys the framework understands to Ebitengine keys.
var ebitenKeys = [...]struct {
	key    Key
	ebiten ebiten.Key
	repeat bool
}{
	{KeyEscape, ebiten.KeyEscape, false},
	{KeySpace, ebiten.KeySpace, false},
	{KeyUp, ebiten.KeyArrowUp, true},
	{KeyDown, ebiten.KeyArrowDown, true},
	{KeyLeft, ebiten.KeyArrowLeft, true},
	{KeyRight, ebiten.KeyArrowRight, true},
	{KeyF12, ebiten.KeyF12, false},
}

// inputSource reports this tick's key presses and left clicks. Screen
// coordinates are in pixels.
type inputSource interface {
	appendKeys(buf []Key) []Key
	click() (sx, sy float64, ok bool)
}

// ebitenInput reads the live keyboard and mouse state.
type ebitenInput struct{}

func (ebitenInput) appendKeys(buf []Key) []Key {
	for _, k := range ebitenKeys {
		if keyFired(inpututil.KeyPressDuration(k.ebiten), k.repeat) {
			buf = append(buf, k.key)
		}
	}
	return buf
}

func (ebitenInput) click() (float64, float64, bool) {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return 0, 0, false
	}
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y), true
}

// keyFired reports whether a key held for d ticks should fire this tick:
// on the first tick, and for repeating keys every repeatInterval ticks once
// repeatDelay has passed.
func keyFired(d int, repeat bool) bool {
	if d == 1 {
		return true
	}
	if !repeat || d <= repeatDelay {
		return false
	}
	return (d-repeatDelay)%repeatInterval == 0
}

// processInput drains injected and live input and dispatches it to the
// handler. Live input is ignored while a TestRunner is attached. F12 is
// consumed by the scene (screenshot). Returns the first error a key handler
// reports.
func (s *Scene) processInput() error {
	s.keyBuf = s.keyBuf[:0]
	if len(s.keyQueue) > 0 {
		s.keyBuf = append(s.keyBuf, s.keyQueue[0])
		copy(s.keyQueue, s.keyQueue[1:])
		s.keyQueue = s.keyQueue[:len(s.keyQueue)-1]
	}
	live := s.input != nil && s.testRunner == nil
	if live {
		s.keyBuf = s.input.appendKeys(s.keyBuf)
	}

	for _, k := range s.keyBuf {
		if k == KeyF12 {
			s.Screenshot("f12")
			continue
		}
		if s.handler == nil {
			continue
		}
		if err := s.handler.OnKey(k); err != nil {
			return err
		}
	}

	if sx, sy, ok := s.nextClick(live); ok && s.handler != nil {
		wx, wy := s.viewport.ScreenToWorld(sx, sy)
		s.handler.OnClick(Vec2{X: wx, Y: wy})
	}
	return nil
}

// nextClick pops one injected click, falling back to the live mouse.
func (s *Scene) nextClick(live bool) (float64, float64, bool) {
	if len(s.clickQueue) > 0 {
		c := s.clickQueue[0]
		copy(s.clickQueue, s.clickQueue[1:])
		s.clickQueue = s.clickQueue[:len(s.clickQueue)-1]
		return c.X, c.Y, true
	}
	if live {
		return s.input.click()
	}
	return 0, 0, false
}
