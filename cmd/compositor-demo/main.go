// Command compositor-demo drives the compositor with two simulated
// producers and writes the final composed frame to a PNG.
//
// A full-screen background layer animates its color while a smaller
// overlay layer updates every third cycle, exercising the latch
// policy, fence signaling, and the headless composition backend.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"sync"
	"time"

	charm "github.com/charmbracelet/log"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/backend"
	"github.com/gogpu/compositor/backend/headless"
	"github.com/gogpu/compositor/fence"
	"github.com/gogpu/compositor/geometry"
	"github.com/gogpu/compositor/stats"
	"github.com/gogpu/compositor/syncpoint"
)

func main() {
	var (
		width   = flag.Int("width", 800, "display width")
		height  = flag.Int("height", 600, "display height")
		frames  = flag.Int("frames", 120, "refresh cycles to run")
		output  = flag.String("output", "frame.png", "output file")
		verbose = flag.Bool("verbose", false, "debug logging")
	)
	flag.Parse()

	logger := charm.NewWithOptions(os.Stderr, charm.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           charm.InfoLevel,
	})
	if *verbose {
		logger.SetLevel(charm.DebugLevel)
	}
	compositor.SetLogger(slog.New(logger))

	b := backend.MustDefault()
	if err := b.Init(); err != nil {
		logger.Fatal("backend init failed", "error", err)
	}
	defer b.Close()
	logger.Info("backend ready", "name", b.Name())

	reg := syncpoint.NewRegistry()
	tracker := stats.NewTracker()

	bg := newDemoProducer(*width, *height)
	bgLayer := compositor.NewLayer(bg, reg,
		compositor.WithName("background"),
		compositor.WithOpaque(),
		compositor.WithStats(tracker))
	bgLayer.SetBounds(image.Rect(0, 0, *width, *height))

	ov := newDemoProducer(*width/3, *height/3)
	ovLayer := compositor.NewLayer(ov, reg,
		compositor.WithName("overlay"))
	ovLayer.SetBounds(image.Rect(*width/16, *height/16, *width/16+*width/3, *height/16+*height/3))
	ovLayer.SetAlpha(0.85)

	layers := []*compositor.Layer{bgLayer, ovLayer}

	refresh := 16670 * time.Microsecond
	now := time.Now()
	for i := 0; i < *frames; i++ {
		expected := now.Add(refresh)

		bg.produce(backgroundColor(i), expected)
		if i%3 == 0 {
			ov.produce(color.RGBA{230, 230, 230, 255}, expected)
		}

		var composed []backend.ComposedLayer
		for _, l := range layers {
			l.TryLatch(expected)
			if !l.Visible() {
				continue
			}
			composed = append(composed, backend.ComposedLayer{
				State:      l.CurrentState(),
				Projection: l.Projection(),
				Alpha:      l.Alpha(),
				Opaque:     l.Opaque(),
				Damage:     l.Damage(),
			})
		}

		present, err := b.Compose(image.Pt(*width, *height), composed)
		if err != nil {
			logger.Fatal("compose failed", "cycle", i, "error", err)
		}
		for _, l := range layers {
			l.OnCompositionComplete(present)
		}
		now = expected
	}

	for _, l := range layers {
		l.Disconnect()
	}

	if avg, ok := tracker.AverageLatency(); ok {
		logger.Info("run complete",
			"frames", *frames,
			"latches", tracker.Latches(),
			"avg_latency", avg)
	} else {
		logger.Info("run complete", "frames", *frames, "latches", tracker.Latches())
	}

	h, ok := b.(*headless.Headless)
	if !ok || h.Frame() == nil {
		logger.Warn("no frame to save")
		return
	}
	f, err := os.Create(*output)
	if err != nil {
		logger.Fatal("create output failed", "error", err)
	}
	defer f.Close()
	if err := png.Encode(f, h.Frame()); err != nil {
		logger.Fatal("encode failed", "error", err)
	}
	logger.Info("frame saved", "path", *output, "size", image.Pt(*width, *height))
}

// backgroundColor cycles through a slow hue sweep.
func backgroundColor(cycle int) color.RGBA {
	t := uint8(cycle * 2)
	return color.RGBA{R: 40 + t/2, G: 60, B: 120 - t/3, A: 255}
}

// demoProducer is an in-memory frame queue feeding a layer. produce
// enqueues a freshly filled buffer with an already signaled acquire
// fence.
type demoProducer struct {
	w, h int

	mu     sync.Mutex
	queue  []compositor.BufferFrame
	nextFN uint64
}

func newDemoProducer(w, h int) *demoProducer {
	return &demoProducer{w: w, h: h, nextFN: 1}
}

func (p *demoProducer) produce(c color.RGBA, desired time.Time) {
	buf := headless.NewMemoryBuffer(p.w, p.h)
	buf.Fill(c)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = append(p.queue, compositor.BufferFrame{
		FrameNumber:    p.nextFN,
		Buffer:         buf,
		AcquireFence:   fence.NewSignaled(time.Now()),
		ScalingMode:    geometry.ScalingFreeze,
		DesiredPresent: desired,
		Damage:         compositor.FullDamage(),
	})
	p.nextFN++
}

func (p *demoProducer) HasPendingFrame() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue) > 0
}

func (p *demoProducer) NextFrameNumber(time.Time) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.queue) == 0 {
		return 0
	}
	return p.queue[0].FrameNumber
}

func (p *demoProducer) PresentTimeCurrent(expected time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.queue) == 0 {
		return false
	}
	return !p.queue[0].DesiredPresent.After(expected)
}

func (p *demoProducer) HeadFence() fence.Fence {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.queue) == 0 {
		return nil
	}
	return p.queue[0].AcquireFence
}

func (p *demoProducer) AcquireNextBuffer(time.Time) (compositor.BufferFrame, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.queue) == 0 {
		return compositor.BufferFrame{}, compositor.ErrNoPendingFrame
	}
	f := p.queue[0]
	p.queue = p.queue[1:]
	return f, nil
}
