// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package hwctest

import (
	"github.com/gogpu/hwc"
	"github.com/gogpu/hwc/buffer"
	"github.com/gogpu/hwc/geom"
)

// UI returns a contiguous RGBA_8888 UI buffer.
func UI(id buffer.ID, w, h int) *buffer.Handle {
	return &buffer.Handle{
		ID:     id,
		Width:  w,
		Height: h,
		Format: buffer.FormatRGBA8888,
		Size:   w * h * 4,
		FD:     int(id) + 100,
		Type:   buffer.TypeUI,
	}
}

// Video returns a YCbCr 4:2:0 video buffer.
func Video(id buffer.ID, w, h int) *buffer.Handle {
	return &buffer.Handle{
		ID:     id,
		Width:  w,
		Height: h,
		Format: buffer.FormatYCbCr420SP,
		Size:   w * h * 3 / 2,
		FD:     int(id) + 100,
		Type:   buffer.TypeVideo,
	}
}

// Layer shows all of b at frame.
func Layer(b *buffer.Handle, frame geom.Rect) hwc.Layer {
	l := hwc.Layer{
		Buffer:        b,
		DisplayFrame:  frame,
		VisibleRegion: []geom.Rect{frame},
		Alpha:         0xFF,
	}
	if b != nil {
		l.SourceCrop = geom.Rect{Right: b.Width, Bottom: b.Height}
	}
	return l
}

// List builds a layer list.
func List(layers ...hwc.Layer) *hwc.LayerList {
	return &hwc.LayerList{Layers: layers}
}
