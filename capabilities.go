package hwc

// CompositionType is the set of composition engines the platform offers.
type CompositionType uint8

const (
	CompositionTypeGPU CompositionType = 1 << iota
	CompositionTypeMDP
	CompositionTypeC2D
	CompositionTypeCPU

	// CompositionTypeDyn uses the blit engine only while the frame's total
	// destination area stays within twice the framebuffer.
	CompositionTypeDyn
)

// Capabilities describe the platform. They are fixed for the lifetime of a
// Device.
type Capabilities struct {
	// Bypass allows UI layers on overlay pipes. The debug.compbypass.enable
	// property must also be 1.
	Bypass bool

	// ExternalDisplay enables HDMI/WiFi display handling.
	ExternalDisplay bool

	// HDMIAsPrimary means the primary display is an HDMI sink; UI layers then
	// need stereo hints while 3D content plays on a 3D TV.
	HDMIAsPrimary bool

	TV3D          bool
	Panel3D       bool
	TrueMirroring bool

	CompositionType CompositionType
}

// DefaultCapabilities returns GPU composition with bypass and external
// display support.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		Bypass:          true,
		ExternalDisplay: true,
		CompositionType: CompositionTypeGPU,
	}
}

// blitAllowed reports whether the engine may blit a layer unconditionally.
func (c Capabilities) blitAllowed() bool {
	return c.CompositionType&(CompositionTypeC2D|CompositionTypeMDP) != 0
}

func (c Capabilities) cpuOnly() bool {
	return c.CompositionType == CompositionTypeCPU
}

// stereoComposition reports whether UI layers need stereo hints next to 3D
// content.
func (c Capabilities) stereoComposition() bool {
	return c.HDMIAsPrimary && c.TV3D
}
