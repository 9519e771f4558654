package schematic

import (
	"io"

	"github.com/Tnze/go-mc/nbt"
	"github.com/bodgit/imgschem/voxel"
	"github.com/klauspost/compress/gzip"
)

type encoder struct {
	w io.Writer
	o *Options
}

func (e *encoder) encode(v *voxel.Volume) error {
	zw := gzip.NewWriter(e.w)

	ns := e.o.namespace()
	s := schematic{
		Version:     Version,
		Width:       int16(uint16(v.Width)),
		Height:      int16(uint16(v.Height)),
		Length:      int16(uint16(v.Length)),
		DataVersion: e.o.dataVersion(),
		PaletteMax:  int32(v.Palette.Len()),
		Palette:     make(map[string]int32, v.Palette.Len()),
		BlockData:   v.Data,
	}
	for i, name := range v.Palette.Names() {
		s.Palette[ns+name] = int32(i)
	}

	if err := nbt.NewEncoder(zw).Encode(s, rootName); err != nil {
		zw.Close()
		return err
	}

	return zw.Close()
}

// Encode writes the volume v to w in schematic format. A nil o uses the
// default namespace and data version.
func Encode(w io.Writer, v *voxel.Volume, o *Options) error {
	if v.Width > maxSize || v.Height > maxSize || v.Length > maxSize {
		return ErrTooLarge
	}
	if v.Palette.Len() > voxel.MaxPalette {
		return voxel.ErrPaletteOverflow
	}
	if err := v.Validate(); err != nil {
		return err
	}

	e := encoder{w: w, o: o}

	return e.encode(v)
}
