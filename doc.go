// Package orrery is a small retained-mode 2D animation framework for
// [Ebitengine].
//
// It provides a scene graph of meshes and text labels, a Y-up world
// viewport, keyboard and mouse dispatch through a [Handler], and a [Loop]
// that advances wrapped angles and offsets once per tick.
//
// # Quick start
//
// Implement [Handler], attach it to a scene and call [Run]:
//
//	scene := orrery.NewScene()
//	scene.SetHandler(app)
//	if err := orrery.Run(scene, orrery.RunConfig{
//		Title: "Orbit", Width: 800, Height: 800,
//	}); err != nil {
//		log.Fatal(err)
//	}
//
// Returning [ErrQuit] from [Handler.OnKey] ends the loop and Run returns nil.
//
// # World space
//
// The origin is the centre of the window and Y points up. The shorter window
// axis spans [-2, 2]; the longer one widens with the aspect ratio. Click
// positions passed to [Handler.OnClick] are already in world units.
//
// # Scene graph
//
// Every visual element is a [Node]. Children inherit their parent's
// transform and alpha and are drawn after it, in insertion order. A planet
// is an orbit container rotated by its revolution angle holding a body offset
// by the orbit radius and rotated by its own spin:
//
//	orbit := orrery.NewContainer("earth-orbit")
//	body := orrery.NewCircle("earth", 0.08, orrery.DefaultSegments)
//	body.X = 0.65
//	orbit.AddChild(body)
//	scene.Root().AddChild(orbit)
//
// # Animation
//
// [Spinner] and [Scroller] hold one wrapped scalar each. A [Loop] advances
// them by their speed times a global multiplier that [Loop.SpeedUp] and
// [Loop.SpeedDown] change. Colors and alphas can be eased with [gween]
// through [TweenColor] and [TweenAlpha].
//
// # Scripted runs
//
// [LoadTestScript] reads a YAML list of key, click, wait, screenshot and quit
// steps that [Scene.SetTestRunner] feeds through the input queue, one per
// frame.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package orrery
