// Package compositor implements per-layer buffer latching and frame
// synchronization for a display compositor.
//
// # Overview
//
// Once per display refresh the composition loop asks each layer
// whether its producer's next frame is ready to become the visible
// content. That decision, the latch, has to respect the frame's
// acquire fence, cross-layer transaction dependencies, and the
// producer's desired present time, and it has to derive the geometric
// mapping the render backend needs to present the buffer correctly.
//
// The package decomposes the problem into four narrow components,
// composed by the Layer type:
//
//   - fence.Tracker answers fence readiness queries without blocking
//   - syncpoint.Ledger orders cross-layer dependencies by frame number
//   - geometry.Project derives the buffer-to-display mapping
//   - the latch engine, driven by Layer.TryLatch, ties them together
//
// # Quick start
//
//	layer := compositor.NewLayer(producer, registry,
//	    compositor.WithName("video"),
//	)
//	layer.SetBounds(image.Rect(0, 0, 1920, 1080))
//
//	// Once per refresh cycle, on the composition thread:
//	res := layer.TryLatch(expectedPresentTime)
//	if res.Latched {
//	    backend.Compose(layer.CurrentState(), layer.Projection())
//	    layer.OnCompositionComplete(presentFence)
//	}
//
// # Threading
//
// TryLatch, Projection, and OnCompositionComplete run on a single
// composition thread. Producer-side events (new frame queued, sideband
// toggled) arrive from client threads and only flip lightweight flags;
// they never mutate the latched state directly. The latched state
// snapshot is replaced atomically, so readers on any goroutine always
// observe a complete state.
//
// # Logging
//
// The package produces no log output by default. Call SetLogger to
// enable it; see the function documentation for the levels used.
package compositor

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
