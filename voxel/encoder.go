package voxel

import (
	"image"

	"github.com/bodgit/imgschem/colortable"
)

// Encoder converts images into one layer high volumes.
type Encoder struct {
	table *colortable.Table
}

// NewEncoder returns an Encoder that picks blocks from t.
func NewEncoder(t *colortable.Table) *Encoder {
	return &Encoder{table: t}
}

// Encode maps every pixel of m to the block with the nearest colour.
func (e *Encoder) Encode(m image.Image) (*Volume, error) {
	if e.table == nil || e.table.Len() == 0 {
		return nil, colortable.ErrEmpty
	}

	b := m.Bounds()
	if b.Empty() {
		return nil, ErrDegenerate
	}

	v := &Volume{
		Width:  b.Dx(),
		Height: 1,
		Length: b.Dy(),
	}
	v.Data = make([]byte, v.Width*v.Height*v.Length)

	// Images tend to repeat colours so remember which palette entry each
	// colour resolved to
	seen := make(map[colortable.Color]byte)

	for x := 0; x < v.Width; x++ {
		for z := 0; z < v.Length; z++ {
			c := colortable.FromColor(m.At(b.Min.X+x, b.Min.Y+z))

			i, ok := seen[c]
			if !ok {
				n := v.Palette.Add(e.table.Nearest(c).Name)
				if n >= MaxPalette {
					return nil, ErrPaletteOverflow
				}
				i = byte(n)
				seen[c] = i
			}

			v.Data[v.Index(x, 0, z)] = i
		}
	}

	return v, nil
}
