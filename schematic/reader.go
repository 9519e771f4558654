package schematic

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/Tnze/go-mc/nbt"
	"github.com/bodgit/imgschem/voxel"
	"github.com/klauspost/compress/gzip"
)

var gzipMagic = []byte{0x1f, 0x8b}

type decoder struct {
	r io.Reader
	o *Options

	s schematic
}

func (d *decoder) decode(r io.Reader) error {
	br := bufio.NewReader(r)
	d.r = br

	// Writers always compress but accept raw NBT too
	if magic, err := br.Peek(len(gzipMagic)); err == nil && bytes.Equal(magic, gzipMagic) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return err
		}
		defer zr.Close()
		d.r = zr
	}

	if _, err := nbt.NewDecoder(d.r).Decode(&d.s); err != nil {
		return err
	}

	if d.s.Version != Version {
		return ErrBadVersion
	}

	return nil
}

func (d *decoder) config() Config {
	return Config{
		Version:     int(d.s.Version),
		Width:       int(uint16(d.s.Width)),
		Height:      int(uint16(d.s.Height)),
		Length:      int(uint16(d.s.Length)),
		DataVersion: int(d.s.DataVersion),
		PaletteMax:  int(d.s.PaletteMax),
	}
}

func (d *decoder) palette() (voxel.Palette, error) {
	ns := d.o.namespace()

	if len(d.s.Palette) > voxel.MaxPalette {
		return voxel.Palette{}, ErrBadPalette
	}

	names := make([]string, len(d.s.Palette))
	seen := make([]bool, len(d.s.Palette))
	for name, i := range d.s.Palette {
		if i < 0 || int(i) >= len(names) || seen[i] {
			return voxel.Palette{}, ErrBadPalette
		}
		names[i], seen[i] = strings.TrimPrefix(name, ns), true
	}

	p := voxel.NewPalette(names...)
	if p.Len() != len(names) {
		// Two identifiers collapsed into one once the namespace was removed
		return voxel.Palette{}, ErrBadPalette
	}
	return p, nil
}

// Decode reads a schematic from r and returns it as a voxel.Volume. The
// namespace from o, or the default if o is nil, is removed from every block
// identifier.
func Decode(r io.Reader, o *Options) (*voxel.Volume, error) {
	d := decoder{o: o}
	if err := d.decode(r); err != nil {
		return nil, err
	}

	p, err := d.palette()
	if err != nil {
		return nil, err
	}

	c := d.config()
	v := &voxel.Volume{
		Width:   c.Width,
		Height:  c.Height,
		Length:  c.Length,
		Palette: p,
		Data:    d.s.BlockData,
	}

	if err := v.Validate(); err != nil {
		return nil, err
	}

	return v, nil
}

// DecodeConfig returns the header of a schematic without validating the
// palette or block data.
func DecodeConfig(r io.Reader) (Config, error) {
	var d decoder
	if err := d.decode(r); err != nil {
		return Config{}, err
	}
	return d.config(), nil
}
