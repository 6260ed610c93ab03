package compositor

import (
	"errors"
	"time"

	"github.com/gogpu/compositor/fence"
)

// ErrNoPendingFrame is returned by producers when AcquireNextBuffer is
// called without a queued frame.
var ErrNoPendingFrame = errors.New("compositor: no pending frame")

// FrameProducer is the queue-side collaborator a layer consumes frames
// from. Implementations are typically backed by a buffer queue shared
// with a client process.
//
// All methods are called from the composition thread. Acquisition
// failures are transient: the latch attempt fails for the current
// cycle with no state mutation and is retried next cycle.
type FrameProducer interface {
	// HasPendingFrame reports whether an update is queued.
	HasPendingFrame() bool

	// NextFrameNumber returns the frame number of the buffer that
	// would be acquired for the given present time.
	NextFrameNumber(expectedPresent time.Time) uint64

	// PresentTimeCurrent reports whether the head frame's desired
	// present time is due at the given expected present time. A frame
	// scheduled for the future keeps its dependents waiting.
	PresentTimeCurrent(expectedPresent time.Time) bool

	// HeadFence returns the acquire fence of the head frame, or nil
	// when the frame needs no synchronization.
	HeadFence() fence.Fence

	// AcquireNextBuffer hands over the head frame. The producer must
	// not return a frame number at or below a previously acquired one.
	AcquireNextBuffer(expectedPresent time.Time) (BufferFrame, error)
}

// SidebandStream is an opaque handle for content that bypasses the
// normal buffer queue (a hardware video plane, a protected path). The
// compositor only routes it; backends interpret it.
type SidebandStream any
