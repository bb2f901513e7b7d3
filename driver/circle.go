// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package driver

import (
	"fmt"
)

// Pixel represents an EFI_GRAPHICS_OUTPUT_BLT_PIXEL, the byte order within
// a pixel is blue, green, red, reserved.
type Pixel struct {
	Blue     uint8
	Green    uint8
	Red      uint8
	Reserved uint8
}

// Circle colors
var (
	Orange = Pixel{Blue: 0x00, Green: 0x99, Red: 0xff}
	Black  = Pixel{}
)

// CircleRadius is the radius of the drawn circle in pixels.
const CircleRadius = 50

// Display represents a graphics output device.
type Display interface {
	// Resolution returns the current mode resolution.
	Resolution() (width int, height int, err error)
	// BltBufferToVideo copies a full screen BLT buffer to video memory.
	BltBufferToVideo(buf []Pixel, width int, height int) error
}

// PixelBytes converts a BLT buffer to its memory representation.
func PixelBytes(buf []Pixel) []byte {
	b := make([]byte, 0, len(buf)*4)

	for _, p := range buf {
		b = append(b, p.Blue, p.Green, p.Red, p.Reserved)
	}

	return b
}

// Circle fills the pixels of buf, a width x height BLT buffer, lying within
// radius from the center of the screen.
func Circle(buf []Pixel, width int, height int, radius int, color Pixel) {
	cx := width / 2
	cy := height / 2

	for y := 0; y < height; y++ {
		dy := y - cy

		for x := 0; x < width; x++ {
			dx := x - cx

			if dx*dx+dy*dy <= radius*radius {
				buf[y*width+x] = color
			}
		}
	}
}

// DrawCircle draws a circle, of CircleRadius and argument color, at the
// center of the display through a full screen BLT buffer.
func DrawCircle(d Display, color Pixel) (err error) {
	width, height, err := d.Resolution()

	if err != nil {
		return fmt.Errorf("could not get resolution, %v", err)
	}

	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid resolution %dx%d, %w", width, height, ErrUnsupported)
	}

	buf := make([]Pixel, width*height)
	Circle(buf, width, height, CircleRadius, color)

	return d.BltBufferToVideo(buf, width, height)
}
