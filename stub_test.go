package hwc

import "github.com/gogpu/hwc/overlay"

// stubFramebuffer and stubPipes accept everything. Scenario tests use the
// recording fakes in hwctest instead.
type stubFramebuffer struct{ w, h int }

func (f *stubFramebuffer) Width() int                          { return f.w }
func (f *stubFramebuffer) Height() int                         { return f.h }
func (f *stubFramebuffer) Perform(FramebufferEvent, int) error { return nil }

type stubPipes struct{}

func (stubPipes) SetSource(overlay.PipeArgs, overlay.Dest) error  { return nil }
func (stubPipes) SetParameter(overlay.Params, overlay.Dest) error { return nil }
func (stubPipes) SetCrop(overlay.Dim, overlay.Dest) error         { return nil }
func (stubPipes) SetPosition(overlay.Dim, overlay.Dest) error     { return nil }
func (stubPipes) Commit(overlay.Dest) error                       { return nil }
func (stubPipes) SetMemoryID(int, overlay.Dest)                   {}
func (stubPipes) QueueBuffer(uint32, overlay.Dest) error          { return nil }
func (stubPipes) WaitForVsync(overlay.Dest) error                 { return nil }
func (stubPipes) Reconfigure(overlay.ReconfArgs) error            { return nil }
func (stubPipes) SetState(overlay.State) error                    { return nil }
func (stubPipes) CloseChannel(overlay.Dest) error                 { return nil }
func (stubPipes) Close() error                                    { return nil }
