package colortable

import (
	"image"
	"path/filepath"
	"strings"
)

// AverageColor returns the arithmetic mean of every pixel in m, computed
// independently per channel and truncated toward zero. An empty image
// returns the zero Color.
func AverageColor(m image.Image) Color {
	b := m.Bounds()
	n := uint64(b.Dx()) * uint64(b.Dy())
	if b.Empty() {
		return Color{}
	}

	var sum [4]uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := FromColor(m.At(x, y))
			for i := range sum {
				sum[i] += uint64(c[i])
			}
		}
	}

	var c Color
	for i := range c {
		c[i] = uint8(sum[i] / n)
	}
	return c
}

// TextureName derives a block identifier from a texture filename by dropping
// any directory, the ".png" extension and any "_top" face suffix.
func TextureName(file string) string {
	name := filepath.Base(file)
	if ext := filepath.Ext(name); strings.EqualFold(ext, ".png") {
		name = strings.TrimSuffix(name, ext)
	}
	return strings.ReplaceAll(name, "_top", "")
}
