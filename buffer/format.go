// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package buffer

import "fmt"

// Format is a HAL pixel format code. Stereoscopic buffers carry their 3D
// packing in the 0xFF000 bits on top of the color format.
type Format uint32

// Color formats.
const (
	FormatRGBA8888        Format = 0x1
	FormatRGBX8888        Format = 0x2
	FormatRGB888          Format = 0x3
	FormatRGB565          Format = 0x4
	FormatBGRA8888        Format = 0x5
	FormatYCbCr422SP      Format = 0x10
	FormatYCrCb420SP      Format = 0x11
	FormatYCbCr422I       Format = 0x14
	FormatYCbCr420SPTiled Format = 0x108
	FormatYCbCr420SP      Format = 0x109
	FormatYCrCb422SP      Format = 0x10B
	FormatYV12            Format = 0x32315659
)

// Stereoscopic input packings.
const (
	In3DSideBySideLR Format = 0x10000
	In3DTopBottom    Format = 0x20000
	In3DInterleave   Format = 0x40000
	In3DSideBySideRL Format = 0x80000
)

// Stereoscopic output packings.
const (
	Out3DSideBySide Format = 0x1000
	Out3DTopBottom  Format = 0x2000
	Out3DInterleave Format = 0x4000
	Out3DMonoscopic Format = 0x8000
)

const (
	mask3DIn  Format = 0xF0000
	mask3DOut Format = 0xF000
	shift3D          = 4
)

// Color returns f without its stereoscopic bits.
func (f Format) Color() Format {
	// YV12's fourcc overlaps the 3D bit range.
	if f == FormatYV12 {
		return f
	}
	return f &^ (mask3DIn | mask3DOut)
}

// Input3D returns the stereoscopic input packing of f, or 0 for 2D content.
func (f Format) Input3D() Format {
	if f == FormatYV12 {
		return 0
	}
	return f & mask3DIn
}

// Output3D returns the requested stereoscopic output packing, or 0.
func (f Format) Output3D() Format {
	if f == FormatYV12 {
		return 0
	}
	return f & mask3DOut
}

// S3D returns the full input|output packing with the missing half derived
// from the other: side-by-side inputs always output side-by-side, anything
// else outputs its own packing. The result is 0 for 2D content.
func (f Format) S3D() Format {
	in, out := f.Input3D(), f.Output3D()
	if in == 0 && out == 0 {
		return 0
	}
	s := in | out
	if in == 0 {
		s |= out << shift3D
	}
	if out == 0 {
		switch in {
		case In3DSideBySideLR, In3DSideBySideRL:
			s |= In3DSideBySideLR >> shift3D
		default:
			s |= in >> shift3D
		}
	}
	return s
}

// IsRGB reports whether the color part of f is an RGB layout.
func (f Format) IsRGB() bool {
	switch f.Color() {
	case FormatRGBA8888, FormatRGBX8888, FormatRGB888, FormatRGB565, FormatBGRA8888:
		return true
	}
	return false
}

// IsYUV reports whether the color part of f is a YUV layout.
func (f Format) IsYUV() bool {
	switch f.Color() {
	case FormatYCbCr422SP, FormatYCrCb420SP, FormatYCbCr422I, FormatYCbCr420SPTiled,
		FormatYCbCr420SP, FormatYCrCb422SP, FormatYV12:
		return true
	}
	return false
}

func (f Format) String() string {
	var name string
	switch f.Color() {
	case FormatRGBA8888:
		name = "RGBA_8888"
	case FormatRGBX8888:
		name = "RGBX_8888"
	case FormatRGB888:
		name = "RGB_888"
	case FormatRGB565:
		name = "RGB_565"
	case FormatBGRA8888:
		name = "BGRA_8888"
	case FormatYCbCr422SP:
		name = "YCbCr_422_SP"
	case FormatYCrCb420SP:
		name = "YCrCb_420_SP"
	case FormatYCbCr422I:
		name = "YCbCr_422_I"
	case FormatYCbCr420SPTiled:
		name = "YCbCr_420_SP_TILED"
	case FormatYCbCr420SP:
		name = "YCbCr_420_SP"
	case FormatYCrCb422SP:
		name = "YCrCb_422_SP"
	case FormatYV12:
		name = "YV12"
	default:
		return fmt.Sprintf("Format(%#x)", uint32(f))
	}
	if s := f.S3D(); s != 0 {
		return fmt.Sprintf("%s|3D(%#x)", name, uint32(s))
	}
	return name
}
