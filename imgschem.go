/*
Package imgschem is a library for converting images into single layer block
schematics and back again.

Each pixel is replaced by the block whose average colour is nearest, using a
colour table that can be maintained with a BlockDB.
*/
package imgschem

import (
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"  // decode GIF images
	_ "image/jpeg" // decode JPEG images
	"image/png"
	"io"
	"log"
	"os"

	"github.com/bodgit/imgschem/colortable"
	"github.com/bodgit/imgschem/schematic"
	"github.com/bodgit/imgschem/voxel"
	"github.com/ericpauley/go-quantize/quantize"
)

// Converter converts between images and schematics using a fixed colour
// table.
type Converter struct {
	table  *colortable.Table
	opts   Options
	logger *log.Logger
}

// New returns a Converter using table t.
func New(t *colortable.Table, opts Options, logger *log.Logger) (*Converter, error) {
	if t == nil || t.Len() == 0 {
		return nil, colortable.ErrEmpty
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Converter{
		table:  t,
		opts:   opts,
		logger: logger,
	}, nil
}

func (c *Converter) quantize(m image.Image) image.Image {
	if c.opts.MaxColors == 0 {
		return m
	}

	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, c.opts.MaxColors), m))
	if c.opts.Dither {
		draw.FloydSteinberg.Draw(pm, b, m, b.Min)
	} else {
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	c.logger.Printf("Reduced image to %d colors\n", len(pm.Palette))

	return pm
}

// Encode converts m to a schematic and writes it to w.
func (c *Converter) Encode(w io.Writer, m image.Image) error {
	v, err := voxel.NewEncoder(c.table).Encode(c.quantize(m))
	if err != nil {
		return err
	}

	c.logger.Printf("Encoded %dx%d image using %d blocks\n", v.Width, v.Length, v.Palette.Len())

	return schematic.Encode(w, v, c.opts.schematic())
}

// Decode reads a schematic from r and renders it as an image.
func (c *Converter) Decode(r io.Reader) (image.Image, error) {
	v, err := schematic.Decode(r, c.opts.schematic())
	if err != nil {
		return nil, err
	}

	m, err := voxel.NewDecoder(c.table).Decode(v)
	if err != nil {
		return nil, err
	}

	c.logger.Printf("Decoded %dx%d schematic using %d blocks\n", v.Width, v.Length, v.Palette.Len())

	return m, nil
}

// EncodeFile converts the image in file in to a schematic written to file
// out. Any image format registered with the image package can be read.
func (c *Converter) EncodeFile(in, out string) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return err
	}

	o, err := os.Create(out)
	if err != nil {
		return err
	}
	defer o.Close()

	if err := c.Encode(o, m); err != nil {
		return err
	}

	c.logger.Printf("Wrote \"%s\"\n", out)

	return o.Close()
}

// DecodeFile renders the schematic in file in as a PNG image written to file
// out.
func (c *Converter) DecodeFile(in, out string) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := c.Decode(f)
	if err != nil {
		return err
	}

	o, err := os.Create(out)
	if err != nil {
		return err
	}
	defer o.Close()

	if err := png.Encode(o, m); err != nil {
		return err
	}

	c.logger.Printf("Wrote \"%s\"\n", out)

	return o.Close()
}
