// sunearth animates the earth orbiting the sun with the moon orbiting the
// earth. SPACE pauses, UP/DOWN change the speed.
package main

import (
	"flag"
	"log"

	"github.com/phanxgames/orrery"
	"github.com/phanxgames/orrery/config"
)

const (
	helpX       = -1.9
	helpTop     = 1.8
	helpSpacing = 0.1
)

// orbiter is a body revolving around its parent's origin while spinning.
type orbiter struct {
	orbit      *orrery.Node
	body       *orrery.Node
	revolution orrery.Spinner
	rotation   orrery.Spinner
}

func newOrbiter(spec config.OrbiterSpec) *orbiter {
	o := &orbiter{
		orbit:      orrery.NewContainer(spec.Name + "-orbit"),
		body:       orrery.NewCircle(spec.Name, spec.Radius, spec.Segments),
		revolution: orrery.Spinner{Speed: spec.Revolution},
		rotation:   orrery.Spinner{Speed: spec.Rotation},
	}
	o.body.Color = spec.Color.Color
	return o
}

func (o *orbiter) sync() {
	o.orbit.SetRotationDegrees(o.revolution.Angle)
	o.body.SetRotationDegrees(o.rotation.Angle)
}

type reloader = config.Reloader[config.SunEarth, *config.SunEarth]

type app struct {
	scene  *orrery.Scene
	reload *reloader
	loop   *orrery.Loop
	sun    *orrery.Node
	earth  *orbiter
	moon   *orbiter
	marker *orrery.Node
}

func newApp(scene *orrery.Scene, spec *config.SunEarth, font *orrery.TTFFont) *app {
	a := &app{
		scene: scene,
		earth: newOrbiter(spec.Earth),
		moon:  newOrbiter(spec.Moon),
	}
	scene.ClearColor = spec.Background.Color
	root := scene.Root()

	a.sun = orrery.NewCircle(spec.Sun.Name, spec.Sun.Radius, spec.Sun.Segments)
	a.sun.Color = spec.Sun.Color.Color
	root.AddChild(a.sun)

	// The moon circles the earth's centre without taking on its spin.
	center := orrery.NewContainer("earth-center")
	center.X = spec.Earth.Orbit
	a.earth.orbit.AddChild(center)
	center.AddChild(a.earth.body)

	r := spec.Earth.Radius
	a.marker = orrery.NewPolygon("earth-marker", []orrery.Vec2{
		{X: r * 0.4, Y: -r * 0.35},
		{X: r * 1.4, Y: 0},
		{X: r * 0.4, Y: r * 0.35},
	})
	a.marker.Color = spec.Marker.Color
	a.earth.body.AddChild(a.marker)

	a.moon.body.X = spec.Moon.Orbit
	a.moon.orbit.AddChild(a.moon.body)
	center.AddChild(a.moon.orbit)
	root.AddChild(a.earth.orbit)

	a.loop = orrery.NewLoop(
		&a.earth.revolution, &a.earth.rotation,
		&a.moon.revolution, &a.moon.rotation,
	)

	for i, line := range spec.Help {
		t := orrery.NewText("help", line, font)
		t.SetPosition(helpX, helpTop-float64(i)*helpSpacing)
		root.AddChild(t)
	}

	scene.SetHandler(a)
	return a
}

// OnKey handles ESC, SPACE, UP and DOWN. Other keys are ignored.
func (a *app) OnKey(k orrery.Key) error {
	_, err := a.loop.HandleKey(k)
	return err
}

func (a *app) OnClick(orrery.Vec2) {}

func (a *app) OnTick() {
	a.pollReload()
	a.loop.Tick()
}

// pollReload takes speeds and colors from a changed scene definition.
// Sizes and orbits are baked into the meshes and need a restart.
func (a *app) pollReload() {
	if a.reload == nil {
		return
	}
	spec, err := a.reload.Poll()
	if err != nil {
		log.Printf("sunearth: reload: %v", err)
		return
	}
	if spec != nil {
		a.apply(spec)
		log.Printf("sunearth: reloaded %s", a.reload.Path())
	}
}

func (a *app) apply(spec *config.SunEarth) {
	a.earth.revolution.Speed = spec.Earth.Revolution
	a.earth.rotation.Speed = spec.Earth.Rotation
	a.moon.revolution.Speed = spec.Moon.Revolution
	a.moon.rotation.Speed = spec.Moon.Rotation
	a.sun.Color = spec.Sun.Color.Color
	a.earth.body.Color = spec.Earth.Color.Color
	a.moon.body.Color = spec.Moon.Color.Color
	a.marker.Color = spec.Marker.Color
	a.scene.ClearColor = spec.Background.Color
}

func (a *app) OnRender(*orrery.Scene) {
	a.earth.sync()
	a.moon.sync()
}

func (a *app) OnResize(w, h int) {}

// closeReload stops watching the config file. Safe to call without -watch.
func (a *app) closeReload() {
	if a.reload == nil {
		return
	}
	if err := a.reload.Close(); err != nil {
		log.Printf("sunearth: watch: %v", err)
	}
	a.reload = nil
}

func main() {
	configPath := flag.String("config", "", "scene definition override (YAML)")
	watch := flag.Bool("watch", false, "reload -config when it changes")
	debug := flag.Bool("debug", false, "log per-frame stats to stderr")
	showFPS := flag.Bool("fps", false, "show the FPS overlay")
	script := flag.String("script", "", "run a scripted input file (YAML)")
	shots := flag.String("shots", "screenshots", "screenshot directory")
	flag.Parse()

	spec, err := config.LoadSpec[config.SunEarth](config.SunEarthFile, *configPath)
	if err != nil {
		log.Fatalf("sunearth: %v", err)
	}
	font, err := orrery.LoadDefaultFont(orrery.DefaultFontSize)
	if err != nil {
		log.Fatalf("sunearth: %v", err)
	}

	scene := orrery.NewScene()
	scene.SetDebugMode(*debug)
	scene.ScreenshotDir = *shots
	a := newApp(scene, spec, font)

	if *script != "" {
		runner, err := orrery.LoadTestScriptFile(*script)
		if err != nil {
			log.Fatalf("sunearth: %v", err)
		}
		scene.SetTestRunner(runner)
	}

	if *watch {
		if *configPath == "" {
			log.Fatalf("sunearth: -watch needs -config")
		}
		r, err := config.NewReloader[config.SunEarth](config.SunEarthFile, *configPath)
		if err != nil {
			log.Fatalf("sunearth: watch: %v", err)
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
		log.Fatalf("sunearth: %v", err)
	}
}
