// Command hwcsim drives the composition engine with fake hardware and
// prints what it decided for every frame.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/hwc"
	"github.com/gogpu/hwc/blit"
	"github.com/gogpu/hwc/buffer"
	"github.com/gogpu/hwc/geom"
	"github.com/gogpu/hwc/hwctest"
	"github.com/gogpu/hwc/overlay"
	"github.com/gogpu/hwc/props"
)

func main() {
	var (
		width    = flag.Int("width", 480, "framebuffer width")
		height   = flag.Int("height", 800, "framebuffer height")
		frames   = flag.Int("frames", 3, "frames per scenario")
		scenario = flag.String("scenario", "video", "scenario: video, bypass, blit or external")
		bypass   = flag.Bool("bypass", true, "enable composition bypass")
		backend  = flag.String("blit", "", fmt.Sprintf("blit backend, e.g. %q (empty for none)", blit.SoftwareName))
		output   = flag.String("output", "", "write the last render buffer to this PNG")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	hwc.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	store := props.NewMap(nil)
	if *bypass {
		store.Set(props.KeyBypassEnable, "1")
	}
	// HWC_DEBUG_EGL_SWAPINTERVAL and friends override the flags.
	env := props.Env{Prefix: "HWC_"}
	for _, k := range []string{props.KeyBypassEnable, props.KeyIdleTime, props.KeySwapInterval, props.KeyPanel3D, props.KeyDumpLayers} {
		if v, ok := env.Get(k); ok {
			store.Set(k, v)
		}
	}

	fb := hwctest.NewFramebuffer(*width, *height)
	pipes := hwctest.NewPipes()
	renderer := hwctest.NewRenderer(*width, *height)
	mapper := hwctest.NewMapper()

	caps := hwc.DefaultCapabilities()
	opts := []hwc.Option{
		hwc.WithLocker(hwctest.NewLocker()),
		hwc.WithRenderer(renderer),
		hwc.WithMapper(mapper),
		hwc.WithProperties(store),
	}
	if *backend != "" {
		caps.CompositionType |= hwc.CompositionTypeC2D
		opts = append(opts, hwc.WithBlitBackend(*backend))
	}
	opts = append(opts, hwc.WithCapabilities(caps))

	dev, err := hwc.Open(fb, pipes, opts...)
	if err != nil {
		log.Fatalf("open: %v", err)
	}
	dev.RegisterProcs(hwctest.NewProcs())

	list, err := buildScenario(*scenario, *width, *height, mapper)
	if err != nil {
		log.Fatal(err)
	}
	if *scenario == "external" {
		dev.Perform(hwc.EventExternalDisplay, int(overlay.ExternalHDMI))
	}

	for n := range *frames {
		if err := dev.Prepare(list); err != nil {
			log.Fatalf("frame %d: prepare: %v", n, err)
		}
		if err := dev.Set(1, 1, list); err != nil {
			log.Printf("frame %d: set: %v", n, err)
		}
		printFrame(n, list, dev.Stats())
	}

	if err := dev.Close(); err != nil {
		log.Printf("close: %v", err)
	}
	fmt.Printf("pipe calls: %d, swaps: %d, fb events: %d\n", len(pipes.Calls), renderer.Swaps, len(fb.Events))

	if *output != "" {
		if err := savePNG(*output, renderer.Buffer); err != nil {
			log.Fatalf("save: %v", err)
		}
		log.Printf("render buffer saved to %s", *output)
	}
}

func buildScenario(name string, w, h int, mapper *hwctest.Mapper) (*hwc.LayerList, error) {
	full := geom.XYWH(0, 0, w, h)
	switch name {
	case "video":
		status := hwctest.Layer(hwctest.UI(1, w, 40), geom.XYWH(0, 0, w, 40))
		status.Flags = hwc.FlagNotUpdating
		video := hwctest.Layer(hwctest.Video(2, 1280, 720), geom.XYWH(0, 40, w, w*9/16))
		return hwctest.List(status, video), nil
	case "bypass":
		return hwctest.List(
			hwctest.Layer(hwctest.UI(1, w, h), full),
			hwctest.Layer(hwctest.UI(2, w, 40), geom.XYWH(0, 0, w, 40)),
			hwctest.Layer(hwctest.UI(3, w, 80), geom.XYWH(0, h-80, w, 80)),
		), nil
	case "blit":
		var layers []hwc.Layer
		for i, c := range []color.RGBA{{R: 0xC0, A: 0xFF}, {G: 0xC0, A: 0xFF}, {B: 0xC0, A: 0xFF}} {
			b := hwctest.UI(buffer.ID(i+1), w/2, h/4)
			img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
			draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
			mapper.Add(b, img)
			l := hwctest.Layer(b, geom.XYWH(i*w/4, i*h/4, b.Width, b.Height))
			l.Flags = hwc.FlagAsynchronous
			layers = append(layers, l)
		}
		return hwctest.List(layers...), nil
	case "external":
		return hwctest.List(
			hwctest.Layer(hwctest.UI(1, w, h), full),
			hwctest.Layer(hwctest.Video(2, 1280, 720), geom.XYWH(0, 0, w, w*9/16)),
		), nil
	default:
		return nil, fmt.Errorf("unknown scenario %q", name)
	}
}

func printFrame(n int, list *hwc.LayerList, st hwc.Stats) {
	var b strings.Builder
	fmt.Fprintf(&b, "frame %d: skip=%v state=%v channel=%s bypass=%s pipes=%d locked=%d\n",
		n, list.Flags&hwc.ListSkipComposition != 0, st.OverlayState, st.Channel, st.Bypass, st.PipesUsed, st.LockedBuffers)
	for i, l := range list.Layers {
		fmt.Fprintf(&b, "  layer %d: %-7s pipe=%-2s hints=%v flags=%v\n", i, l.Composition, l.Pipe, l.Hints, l.Flags)
	}
	fmt.Print(b.String())
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
