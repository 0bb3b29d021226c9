package hwc

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestSkipDecision(t *testing.T) {
	tests := []struct {
		name                            string
		video, count, notUpdating, prev int
		wantSkip                        bool
		wantPrev                        int
	}{
		{"no video forgets count", 0, 3, 2, 3, false, -1},
		{"two videos forget count", 2, 3, 1, 3, false, -1},
		{"first video frame composes", 1, 1, 0, -1, false, 1},
		{"video alone skips", 1, 1, 0, 1, true, 1},
		{"count changed composes", 1, 3, 2, 2, false, 3},
		{"static UI around video skips", 1, 3, 2, 3, true, 3},
		{"updating UI composes", 1, 3, 1, 3, false, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skip, prev := skipDecision(tt.video, tt.count, tt.notUpdating, tt.prev)
			if skip != tt.wantSkip || prev != tt.wantPrev {
				t.Errorf("skipDecision(%d, %d, %d, %d) = (%v, %d), want (%v, %d)",
					tt.video, tt.count, tt.notUpdating, tt.prev, skip, prev, tt.wantSkip, tt.wantPrev)
			}
		})
	}
}

func TestSkipDecisionIsPure(t *testing.T) {
	a1, b1 := skipDecision(1, 2, 1, 2)
	a2, b2 := skipDecision(1, 2, 1, 2)
	if a1 != a2 || b1 != b2 {
		t.Errorf("same inputs gave (%v, %d) then (%v, %d)", a1, b1, a2, b2)
	}
}

func TestBinding(t *testing.T) {
	var zero Binding
	if zero.IsBound() {
		t.Error("zero Binding is bound")
	}
	if _, ok := zero.Index(); ok {
		t.Error("zero Binding has an index")
	}
	for _, i := range []int{0, 1, 2, 254} {
		b := Bound(i)
		got, ok := b.Index()
		if !ok || got != i {
			t.Errorf("Bound(%d).Index() = (%d, %v)", i, got, ok)
		}
	}
	if Bound(-1).IsBound() || Bound(255).IsBound() {
		t.Error("out of range Bound is bound")
	}
	if s := Bound(2).String(); s != "#2" {
		t.Errorf("String() = %q, want #2", s)
	}
}

func TestFlagStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{LayerFlags(0).String(), "0"},
		{(FlagSkip | FlagAsynchronous).String(), "skip|async"},
		{(HintClearFramebuffer | HintS3DTopBottom).String(), "clear-fb|s3d-tb"},
		{Hints(1 << 8).String(), "0x100"},
		{CompositionBlit.String(), "blit"},
		{Composition(9).String(), "Composition(9)"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestFramebufferDither(t *testing.T) {
	tests := []struct {
		f    gputypes.TextureFormat
		want bool
	}{
		{gputypes.TextureFormatUndefined, false},
		{gputypes.TextureFormatRGBA8Unorm, false},
		{gputypes.TextureFormatBGRA8Unorm, false},
		{gputypes.TextureFormatR8Unorm, true},
	}
	for _, tt := range tests {
		if got := framebufferDither(tt.f); got != tt.want {
			t.Errorf("framebufferDither(%v) = %v, want %v", tt.f, got, tt.want)
		}
	}
}

func TestCapabilities(t *testing.T) {
	c := Capabilities{CompositionType: CompositionTypeGPU | CompositionTypeC2D}
	if !c.blitAllowed() {
		t.Error("C2D should allow blits")
	}
	if (Capabilities{CompositionType: CompositionTypeDyn}).blitAllowed() {
		t.Error("Dyn alone should not allow unconditional blits")
	}
	if !(Capabilities{CompositionType: CompositionTypeCPU}).cpuOnly() {
		t.Error("CPU composition not reported")
	}
	if (Capabilities{TV3D: true}).stereoComposition() {
		t.Error("stereo composition needs HDMI as primary")
	}
}
