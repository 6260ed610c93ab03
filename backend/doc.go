// Package backend provides a pluggable composition backend abstraction.
//
// A Backend consumes the per-layer output of the latch engine (the
// latched state plus its display projection) and produces the frame
// the display scans out. The compositor core never touches pixels;
// everything pixel- or GPU-shaped lives behind this interface.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at
// runtime. The headless software backend registers itself on import:
//
//	import _ "github.com/gogpu/compositor/backend/headless"
//
// # Backend Selection
//
// Use Default() for the best available backend, or Get() for a
// specific one:
//
//	b := backend.Default()
//	if err := b.Init(); err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
// # Composition
//
// Each refresh cycle the display loop latches its layers, collects
// their states and projections into ComposedLayer values back to
// front, and hands them to Compose. The returned fence signals at
// scan-out and feeds back into Layer.OnCompositionComplete:
//
//	present, err := b.Compose(size, layers)
//	for _, l := range visible {
//		l.OnCompositionComplete(present)
//	}
//
// # Available Backends
//
//   - "headless": CPU composition into an in-memory image (always
//     available)
//   - GPU backends plug in through the same registry and receive
//     their device via DeviceHandle
package backend
