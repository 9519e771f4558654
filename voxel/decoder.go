package voxel

import (
	"image"
	"image/color"

	"github.com/bodgit/imgschem/colortable"
)

// Decoder renders one layer high volumes back into images.
type Decoder struct {
	table *colortable.Table
}

// NewDecoder returns a Decoder that resolves block colours from t.
func NewDecoder(t *colortable.Table) *Decoder {
	return &Decoder{table: t}
}

// Decode returns an image with one pixel per voxel, each pixel being the
// table colour of the voxel's block. The image palette matches the volume
// palette index for index.
func (d *Decoder) Decode(v *Volume) (*image.Paletted, error) {
	if d.table == nil || d.table.Len() == 0 {
		return nil, colortable.ErrEmpty
	}

	if v.Width <= 0 || v.Length <= 0 || len(v.Data) == 0 {
		return nil, ErrDegenerate
	}
	if v.Height != 1 {
		return nil, ErrUnsupportedHeight
	}
	if len(v.Data) != v.Width*v.Height*v.Length {
		return nil, ErrBadLength
	}

	if v.Palette.Len() > MaxPalette {
		return nil, ErrPaletteOverflow
	}

	palette := make(color.Palette, v.Palette.Len())
	for i := range palette {
		name := v.Palette.Name(i)
		c, ok := d.table.Lookup(name)
		if !ok {
			return nil, &UnknownBlockError{Index: i, Name: name}
		}
		palette[i] = c.NRGBA()
	}

	m := image.NewPaletted(image.Rect(0, 0, v.Width, v.Length), palette)
	for i, b := range v.Data {
		if int(b) >= len(palette) {
			return nil, &UnknownBlockError{Index: int(b)}
		}
		m.SetColorIndex(i%v.Width, i/v.Width, b)
	}

	return m, nil
}
