/*
Package schematic implements a Sponge version 2 schematic decoder and
encoder.

A schematic is a gzip compressed NBT compound named "Schematic" holding, in
order:

	Version      TAG_Int        always 2
	Width        TAG_Short
	Height       TAG_Short
	Length       TAG_Short
	DataVersion  TAG_Int
	PaletteMax   TAG_Int        number of palette entries
	Palette      TAG_Compound   namespaced block identifier to TAG_Int index
	BlockData    TAG_Byte_Array one palette index per voxel

Block data is written one byte per voxel so at most 256 blocks can be
referenced. Dimensions are stored as unsigned 16-bit values.
*/
package schematic

import (
	"errors"
)

const (
	// Version is the schematic format version written.
	Version = 2
	// DataVersion is the default target data version.
	DataVersion = 2230
	// Namespace is the default block identifier prefix.
	Namespace = "minecraft:"

	rootName = "Schematic"
	maxSize  = 1<<16 - 1
)

var (
	// ErrTooLarge is returned when a dimension is too large for the format.
	ErrTooLarge = errors.New("schematic: dimensions too large")
	// ErrBadPalette is returned when palette indices are not a permutation
	// of 0 to PaletteMax-1.
	ErrBadPalette = errors.New("schematic: invalid palette index")
	// ErrBadVersion is returned when the format version is not supported.
	ErrBadVersion = errors.New("schematic: unsupported version")
)

// Options are the encoding parameters.
type Options struct {
	// Namespace is prefixed to every block identifier on encode and
	// stripped on decode.
	Namespace string
	// DataVersion identifies the target application data version.
	DataVersion int32
}

func (o *Options) namespace() string {
	if o == nil || o.Namespace == "" {
		return Namespace
	}
	return o.Namespace
}

func (o *Options) dataVersion() int32 {
	if o == nil || o.DataVersion == 0 {
		return DataVersion
	}
	return o.DataVersion
}

// Config holds the header fields of a schematic.
type Config struct {
	Version     int
	Width       int
	Height      int
	Length      int
	DataVersion int
	PaletteMax  int
}

// Field order matters, it is the order the tags are written
type schematic struct {
	Version     int32            `nbt:"Version"`
	Width       int16            `nbt:"Width"`
	Height      int16            `nbt:"Height"`
	Length      int16            `nbt:"Length"`
	DataVersion int32            `nbt:"DataVersion"`
	PaletteMax  int32            `nbt:"PaletteMax"`
	Palette     map[string]int32 `nbt:"Palette"`
	BlockData   []byte           `nbt:"BlockData"`
}
