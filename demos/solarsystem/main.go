// solarsystem animates five planets orbiting and spinning around a sun over
// a random starfield. Click for new stars, SPACE pauses, UP/DOWN change the
// speed.
package main

import (
	"errors"
	"flag"
	"log"
	"math/rand/v2"
	"time"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/orrery"
	"github.com/phanxgames/orrery/config"
)

const (
	tickSeconds   = 1.0 / 60
	pauseFade     = 0.25
	helpX         = -1.9
	helpTop       = 1.8
	helpSpacing   = 0.1
	pausedY       = -1.85
	defaultShots  = "screenshots"
	pausedCaption = "PAUSED"
)

var errEntityCount = errors.New("entity count changed, restart to apply")

type planet struct {
	orbit      *orrery.Node // rotated by the revolution angle
	body       *orrery.Node // offset by the orbit radius, rotated by the spin
	revolution orrery.Spinner
	rotation   orrery.Spinner
}

type app struct {
	scene   *orrery.Scene
	spec    *config.SolarSystem
	loop    *orrery.Loop
	rng     *rand.Rand
	tweens  orrery.Tweens
	planets []*planet

	sun        *orrery.Node
	stars      *orrery.Node
	starPoints []orrery.Vec2
	paused     *orrery.Node

	reload *reloader
}

type reloader = config.Reloader[config.SolarSystem, *config.SolarSystem]

func newApp(scene *orrery.Scene, spec *config.SolarSystem, rng *rand.Rand, font *orrery.TTFFont) *app {
	a := &app{
		scene: scene,
		spec:  spec,
		loop:  orrery.NewLoop(),
		rng:   rng,
	}
	scene.ClearColor = spec.Background.Color
	root := scene.Root()

	a.starPoints = orrery.Starfield(rng, spec.Stars.Count, spec.Stars.Bound)
	a.stars = orrery.NewPoints("stars", a.starPoints, spec.Stars.Size)
	a.stars.Color = spec.Stars.Color.Color
	root.AddChild(a.stars)

	a.sun = orrery.NewCircle("sun", spec.Sun.Radius, spec.Sun.Segments)
	a.sun.Color = spec.Sun.Color.Color
	root.AddChild(a.sun)

	for _, ps := range spec.Planets {
		p := &planet{
			revolution: orrery.Spinner{Speed: ps.Revolution},
			rotation:   orrery.Spinner{Speed: ps.Rotation},
		}
		path := orrery.NewLineLoop(ps.Name+"-path", orrery.CirclePoints(ps.Orbit, ps.Segments), spec.OrbitWidth)
		path.Color = spec.OrbitColor.Color
		root.AddChild(path)

		p.orbit = orrery.NewContainer(ps.Name + "-orbit")
		p.body = orrery.NewCircle(ps.Name, ps.Radius, ps.Segments)
		p.body.Color = ps.Color.Color
		p.body.X = ps.Orbit
		p.orbit.AddChild(p.body)
		root.AddChild(p.orbit)

		a.loop.Add(&p.revolution)
		a.loop.Add(&p.rotation)
		a.planets = append(a.planets, p)
	}

	for i, line := range spec.Help {
		t := orrery.NewText("help", line, font)
		t.SetPosition(helpX, helpTop-float64(i)*helpSpacing)
		root.AddChild(t)
	}
	a.paused = orrery.NewText("paused", pausedCaption, font)
	a.paused.SetPosition(helpX, pausedY)
	a.paused.Alpha = 0
	root.AddChild(a.paused)

	scene.SetHandler(a)
	return a
}

func (a *app) OnKey(k orrery.Key) error {
	_, err := a.loop.HandleKey(k)
	if k == orrery.KeySpace {
		to := 0.0
		if a.loop.Paused() {
			to = 1
		}
		a.tweens.Add(orrery.TweenAlpha(a.paused, to, pauseFade, ease.OutQuad))
	}
	return err
}

// OnClick scatters a new starfield of the same size.
func (a *app) OnClick(orrery.Vec2) {
	a.starPoints = orrery.Starfield(a.rng, len(a.starPoints), a.spec.Stars.Bound)
	orrery.SetPointPositions(a.stars, a.starPoints, a.spec.Stars.Size)
}

func (a *app) OnTick() {
	a.pollReload()
	a.loop.Tick()
	a.tweens.Update(tickSeconds)
}

// OnRender copies the animation angles onto the planet nodes.
func (a *app) OnRender(*orrery.Scene) {
	for _, p := range a.planets {
		p.orbit.SetRotationDegrees(p.revolution.Angle)
		p.body.SetRotationDegrees(p.rotation.Angle)
	}
}

// OnResize keeps the PAUSED caption centred; its pixel width maps to fewer
// world units as the window grows.
func (a *app) OnResize(w, h int) {
	font := a.paused.Label.Font
	if font == nil {
		return
	}
	width, _ := font.MeasureString(pausedCaption)
	a.paused.SetPosition(-width/2/a.scene.Viewport().Scale(), pausedY)
}

// pollReload applies a changed scene definition. Vertex data and entity
// counts are fixed, so only speeds and colors are taken from the new file.
func (a *app) pollReload() {
	if a.reload == nil {
		return
	}
	spec, err := a.reload.Poll()
	if err != nil {
		log.Printf("solarsystem: reload: %v", err)
		return
	}
	if spec == nil {
		return
	}
	if err := a.apply(spec); err != nil {
		log.Printf("solarsystem: reload: %v", err)
		return
	}
	log.Printf("solarsystem: reloaded %s", a.reload.Path())
}

func (a *app) apply(spec *config.SolarSystem) error {
	if len(spec.Planets) != len(a.planets) || spec.Stars.Count != len(a.starPoints) {
		return errEntityCount
	}
	for i, ps := range spec.Planets {
		p := a.planets[i]
		p.revolution.Speed = ps.Revolution
		p.rotation.Speed = ps.Rotation
		p.body.Color = ps.Color.Color
	}
	a.sun.Color = spec.Sun.Color.Color
	a.stars.Color = spec.Stars.Color.Color
	a.scene.ClearColor = spec.Background.Color
	// Sizes stay as built.
	spec.Stars.Size = a.spec.Stars.Size
	spec.Stars.Bound = a.spec.Stars.Bound
	a.spec = spec
	return nil
}

// closeReload stops watching the config file. Safe to call without -watch.
func (a *app) closeReload() {
	if a.reload == nil {
		return
	}
	if err := a.reload.Close(); err != nil {
		log.Printf("solarsystem: watch: %v", err)
	}
	a.reload = nil
}

func main() {
	configPath := flag.String("config", "", "scene definition override (YAML)")
	watch := flag.Bool("watch", false, "reload -config when it changes")
	debug := flag.Bool("debug", false, "log per-frame stats to stderr")
	showFPS := flag.Bool("fps", false, "show the FPS overlay")
	script := flag.String("script", "", "run a scripted input file (YAML)")
	shots := flag.String("shots", defaultShots, "screenshot directory")
	flag.Parse()

	spec, err := config.LoadSpec[config.SolarSystem](config.SolarSystemFile, *configPath)
	if err != nil {
		log.Fatalf("solarsystem: %v", err)
	}
	font, err := orrery.LoadDefaultFont(orrery.DefaultFontSize)
	if err != nil {
		log.Fatalf("solarsystem: %v", err)
	}

	scene := orrery.NewScene()
	scene.SetDebugMode(*debug)
	scene.ScreenshotDir = *shots
	seed := uint64(time.Now().UnixNano())
	a := newApp(scene, spec, rand.New(rand.NewPCG(seed, seed>>1)), font)

	if *script != "" {
		runner, err := orrery.LoadTestScriptFile(*script)
		if err != nil {
			log.Fatalf("solarsystem: %v", err)
		}
		scene.SetTestRunner(runner)
	}

	if *watch {
		if *configPath == "" {
			log.Fatalf("solarsystem: -watch needs -config")
		}
		r, err := config.NewReloader[config.SolarSystem](config.SolarSystemFile, *configPath)
		if err != nil {
			log.Fatalf("solarsystem: watch: %v", err)
		}
		a.reload = r
	}

	err = orrery.Run(scene, orrery.RunConfig{
		Title:   spec.Window.Title,
		Width:   spec.Window.Width,
		Height:  spec.Window.Height,
		ShowFPS: *showFPS,
	})
	a.closeReload()
	if err != nil {
		log.Fatalf("solarsystem: %v", err)
	}
}
