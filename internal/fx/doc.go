// Package fx provides the core primitives for per-card backdrop animations.
//
// The package defines the interfaces every animation engine is built on:
//
//   - [Surface]: 2D drawing context an engine paints each frame onto
//   - [Scene]: an engine's population and per-frame update/draw routine
//   - [Rand]: injectable random source so tests can pin outcomes
//   - [Runner]: lifecycle (created → running → stopped) and frame loop
//   - [ResizeHub]: resize notifications from the host environment
//
// # Example
//
//	scene := coderain.New(th.Palette, fx.NewRand(seed))
//	r := fx.NewRunner(scene)
//	_ = r.Start(surface, hub)
//	defer r.Stop()
//	_ = r.Run(ctx, fx.FrameInterval)
//
// # Thread Safety
//
// A Scene is only ever touched by the goroutine stepping its Runner.
// Stop and ResizeHub.Notify may be called from any goroutine.
package fx
