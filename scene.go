package orrery

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Handler receives the callbacks of the host event loop. All methods run on
// the game goroutine, one at a time.
//
// Per Update: OnKey for each key fired this tick, then OnClick for at most
// one left click, then OnTick. Per Draw: OnRender, after which the scene tree
// is drawn. OnResize is called when the window size changes (and once before
// the first frame).
type Handler interface {
	// OnKey handles a key press. Returning ErrQuit ends the run loop
	// cleanly; any other error aborts it.
	OnKey(k Key) error
	// OnClick handles a left click at the given world position.
	OnClick(at Vec2)
	// OnTick advances animation state by one step.
	OnTick()
	// OnRender copies animation state onto scene nodes before drawing.
	OnRender(s *Scene)
	// OnResize reports the new window size in pixels.
	OnResize(w, h int)
}

const defaultCommandCap = 256

// Scene is the top-level object that owns the node tree, viewport, input
// queues and render buffers. It implements ebiten.Game.
type Scene struct {
	root    *Node
	handler Handler
	debug   bool

	// ClearColor fills the screen before the tree is drawn.
	ClearColor Color
	// AntiAlias enables anti-aliased triangle rasterization.
	AntiAlias bool
	// ShowFPS draws the FPS/TPS overlay in the top-left corner.
	ShowFPS bool
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	viewport *Viewport
	sized    bool
	frames   uint64
	draws    uint64

	// Render state
	commands []RenderCommand

	// Input state
	input      inputSource
	keyBuf     []Key
	keyQueue   []Key
	clickQueue []Vec2
	testRunner *TestRunner
	quit       bool

	screenshotQueue []string
}

// NewScene creates a new scene with a pre-created root container. The
// viewport starts at 800x600 until the first Layout call.
func NewScene() *Scene {
	return &Scene{
		root:          NewContainer("root"),
		ClearColor:    Color{A: 1},
		ScreenshotDir: "screenshots",
		viewport:      newViewport(800, 600),
		commands:      make([]RenderCommand, 0, defaultCommandCap),
		input:         ebitenInput{},
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetHandler sets the callback receiver for input, ticks and rendering.
func (s *Scene) SetHandler(h Handler) {
	s.handler = h
}

// Viewport returns the world-to-screen mapping.
func (s *Scene) Viewport() *Viewport {
	return s.viewport
}

// Frames returns the number of completed Update calls.
func (s *Scene) Frames() uint64 {
	return s.frames
}

// SetDebugMode enables or disables debug mode. When enabled, deep trees are
// reported and per-frame timing stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool

// RequestQuit makes the next Update end the run loop cleanly.
func (s *Scene) RequestQuit() {
	s.quit = true
}

// Update processes input and advances the handler by one tick.
func (s *Scene) Update() error {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if s.quit {
		return ebiten.Termination
	}

	if err := s.processInput(); err != nil {
		if errors.Is(err, ErrQuit) {
			return ebiten.Termination
		}
		return err
	}

	if s.handler != nil {
		s.handler.OnTick()
	}
	s.frames++
	return nil
}

// Draw clears the screen, lets the handler sync node state, then traverses
// the tree and submits draw calls in tree order.
func (s *Scene) Draw(screen *ebiten.Image) {
	s.draws++
	screen.Fill(s.ClearColor.toRGBA())

	if s.handler != nil {
		s.handler.OnRender(s)
	}

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.buildCommands()

	if s.debug {
		stats.traverseTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	s.submitCommands(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.drawCallCount = countDrawCalls(s.commands)
		s.debugLog(stats)
	}

	if s.ShowFPS {
		drawFPS(screen)
	}
	s.flushScreenshots(screen)
}

// buildCommands resets the command list and traverses the tree from the root.
func (s *Scene) buildCommands() {
	s.commands = s.commands[:0]
	view := s.viewport.computeViewMatrix()
	s.traverse(s.root, view, identityTransform, 1.0, false)
}

// Layout keeps a 1:1 pixel mapping with the window and reports size changes
// to the handler.
func (s *Scene) Layout(outsideWidth, outsideHeight int) (int, int) {
	changed := s.viewport.Resize(outsideWidth, outsideHeight)
	if changed || !s.sized {
		s.sized = true
		if s.handler != nil {
			s.handler.OnResize(outsideWidth, outsideHeight)
		}
	}
	return outsideWidth, outsideHeight
}
