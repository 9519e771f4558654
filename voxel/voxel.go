/*
Package voxel implements the palette based voxel encoding of an image.

Every pixel is mapped onto the block with the nearest colour, blocks are
collected into a palette in the order they are first seen and each voxel
stores a single byte palette index. Voxels are laid out linearly using
x + z*Width + y*Width*Length; images map onto the y = 0 layer with the image
X axis as x and the image Y axis as z.
*/
package voxel

import (
	"errors"
	"fmt"
)

// MaxPalette is the largest palette that can be addressed by a single byte
// index.
const MaxPalette = 256

var (
	// ErrDegenerate is returned when there is nothing to encode or decode.
	ErrDegenerate = errors.New("voxel: zero area volume")
	// ErrPaletteOverflow is returned when an image needs more than
	// MaxPalette distinct blocks.
	ErrPaletteOverflow = errors.New("voxel: more than 256 palette entries")
	// ErrUnsupportedHeight is returned when decoding a volume more than
	// one layer high.
	ErrUnsupportedHeight = errors.New("voxel: volume height is not 1")
	// ErrBadLength is returned when the block data does not cover the
	// volume exactly.
	ErrBadLength = errors.New("voxel: block data length does not match dimensions")
)

// UnknownBlockError records a palette index that could not be resolved to a
// colour.
type UnknownBlockError struct {
	Index int
	Name  string
}

func (e *UnknownBlockError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("voxel: palette index %d has no block", e.Index)
	}
	return fmt.Sprintf("voxel: unknown block %q at palette index %d", e.Name, e.Index)
}

// Index returns the linear position of voxel (x, y, z) in a volume of the
// given width and length.
func Index(x, y, z, width, length int) int {
	return x + z*width + y*width*length
}

// Volume is a grid of palette indices.
type Volume struct {
	Width   int
	Height  int
	Length  int
	Palette Palette
	Data    []byte
}

// Index returns the linear position of voxel (x, y, z).
func (v *Volume) Index(x, y, z int) int {
	return Index(x, y, z, v.Width, v.Length)
}

// At returns the palette index of voxel (x, y, z).
func (v *Volume) At(x, y, z int) byte {
	return v.Data[v.Index(x, y, z)]
}

// Validate checks the dimensions agree with the block data and every index
// refers to a palette entry.
func (v *Volume) Validate() error {
	if v.Width <= 0 || v.Height <= 0 || v.Length <= 0 || len(v.Data) == 0 {
		return ErrDegenerate
	}
	if len(v.Data) != v.Width*v.Height*v.Length {
		return ErrBadLength
	}
	for _, b := range v.Data {
		if int(b) >= v.Palette.Len() {
			return &UnknownBlockError{Index: int(b)}
		}
	}
	return nil
}
