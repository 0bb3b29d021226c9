package hwc

import (
	"fmt"
	"log/slog"
	"strings"
)

// dumpLayer logs everything the engine knows about one layer. Enabled by
// the debug.hwc.dumplayers property.
func dumpLayer(listFlags ListFlags, i int, l *Layer) {
	slogger().Debug("hwc: dump",
		slog.Int("layer", i),
		slog.Bool("listSkip", listFlags&ListSkipComposition != 0),
		slog.String("composition", l.Composition.String()),
		slog.String("flags", l.Flags.String()),
		slog.String("hints", l.Hints.String()),
		slog.String("buffer", l.Buffer.String()),
		slog.String("crop", l.SourceCrop.String()),
		slog.String("frame", l.DisplayFrame.String()),
		slog.Int("visibleRects", len(l.VisibleRegion)),
		slog.Int("transform", int(l.Transform)),
		slog.Int("blending", int(l.Blending)),
		slog.Int("alpha", int(l.Alpha)),
		slog.String("pipe", l.Pipe.String()),
	)
}

var layerFlagNames = []string{"skip", "no-overlay", "not-updating", "async", "orig-res"}

func (f LayerFlags) String() string { return bitNames(uint32(f), layerFlagNames) }

var hintNames = []string{"clear-fb", "s3d-sbs", "s3d-tb"}

func (h Hints) String() string { return bitNames(uint32(h), hintNames) }

// bitNames joins the names of the set bits of v with '|'. Unnamed bits are
// printed in hex.
func bitNames(v uint32, names []string) string {
	if v == 0 {
		return "0"
	}
	var parts []string
	for i, n := range names {
		if v&(1<<i) != 0 {
			parts = append(parts, n)
			v &^= 1 << i
		}
	}
	if v != 0 {
		parts = append(parts, fmt.Sprintf("%#x", v))
	}
	return strings.Join(parts, "|")
}
