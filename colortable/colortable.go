/*
Package colortable implements the block colour lookup table used to map
image pixels onto blocks.

A table is an ordered list of block identifiers, each with a representative
non-premultiplied RGBA colour. The order of the table is significant: when two
blocks are equally close to a pixel the one that appears first wins. Tables
are normally persisted as a JSON object mapping block identifier to a four
element array, in which case the key order of the file defines the table
order.
*/
package colortable

import (
	"errors"
	"fmt"
	"image/color"
)

var (
	// ErrEmpty is returned when a table has no entries.
	ErrEmpty = errors.New("colortable: no entries")
	// ErrMalformed is returned when a table cannot be parsed or contains
	// invalid entries.
	ErrMalformed = errors.New("colortable: malformed table")
)

// Color is a non-premultiplied RGBA colour vector.
type Color [4]uint8

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA returns c as a color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// FromColor converts any color.Color to a non-premultiplied Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{n.R, n.G, n.B, n.A}
}

func sqDiff(x, y uint8) uint32 {
	d := int32(x) - int32(y)
	return uint32(d * d)
}

// Distance returns the squared euclidean distance between two colours in
// RGBA space.
func Distance(c1, c2 Color) uint32 {
	return sqDiff(c1[0], c2[0]) + sqDiff(c1[1], c2[1]) + sqDiff(c1[2], c2[2]) + sqDiff(c1[3], c2[3])
}

// Entry is a single block and its colour.
type Entry struct {
	Name  string
	Color Color
}

// Table is an immutable, ordered block colour table.
type Table struct {
	entries []Entry
	index   map[string]int
}

// New returns a table containing entries in the given order.
func New(entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, ErrEmpty
	}

	t := &Table{
		entries: make([]Entry, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	copy(t.entries, entries)

	for i, e := range t.entries {
		if e.Name == "" {
			return nil, fmt.Errorf("%w: empty block identifier at position %d", ErrMalformed, i)
		}
		if _, ok := t.index[e.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate block identifier %q", ErrMalformed, e.Name)
		}
		t.index[e.Name] = i
	}

	return t, nil
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the table entries in table order.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Lookup returns the colour of the named block.
func (t *Table) Lookup(name string) (Color, bool) {
	i, ok := t.index[name]
	if !ok {
		return Color{}, false
	}
	return t.entries[i].Color, true
}

// Nearest returns the entry whose colour is closest to c. On a tie the entry
// that appears first in the table is returned.
func (t *Table) Nearest(c Color) Entry {
	best := 0
	bestSum := uint32(1<<32 - 1)
	for i, e := range t.entries {
		if sum := Distance(c, e.Color); sum < bestSum {
			best, bestSum = i, sum
		}
	}
	return t.entries[best]
}
