package voxel

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/imgschem/colortable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable(t *testing.T) *colortable.Table {
	t.Helper()
	tab, err := colortable.New([]colortable.Entry{
		{Name: "stone", Color: colortable.Color{128, 128, 128, 255}},
		{Name: "grass", Color: colortable.Color{0, 200, 0, 255}},
		{Name: "sand", Color: colortable.Color{220, 210, 160, 255}},
		{Name: "water", Color: colortable.Color{40, 60, 220, 255}},
	})
	require.NoError(t, err)
	return tab
}

func testImage() image.Image {
	m := image.NewNRGBA(image.Rect(0, 0, 5, 3))
	colors := []color.NRGBA{
		{130, 130, 130, 255},
		{10, 210, 5, 255},
		{200, 200, 150, 255},
		{30, 50, 250, 255},
		{0, 0, 0, 255},
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			m.SetNRGBA(x, y, colors[(x+y*2)%len(colors)])
		}
	}
	return m
}

func TestEncodeScenario(t *testing.T) {
	tab, err := colortable.New([]colortable.Entry{
		{Name: "stone", Color: colortable.Color{128, 128, 128, 255}},
		{Name: "grass", Color: colortable.Color{0, 200, 0, 255}},
	})
	require.NoError(t, err)

	m := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	m.SetNRGBA(0, 0, color.NRGBA{130, 130, 130, 255})
	m.SetNRGBA(1, 0, color.NRGBA{10, 210, 5, 255})

	v, err := NewEncoder(tab).Encode(m)
	require.NoError(t, err)

	assert.Equal(t, 2, v.Width)
	assert.Equal(t, 1, v.Height)
	assert.Equal(t, 1, v.Length)
	assert.Equal(t, []string{"stone", "grass"}, v.Palette.Names())
	assert.Equal(t, []byte{0, 1}, v.Data)
	assert.Equal(t, 2, v.Palette.Len())
}

func TestEncodeDeterministic(t *testing.T) {
	e := NewEncoder(testTable(t))

	v1, err := e.Encode(testImage())
	require.NoError(t, err)
	v2, err := e.Encode(testImage())
	require.NoError(t, err)

	assert.Equal(t, v1.Palette.Names(), v2.Palette.Names())
	assert.Equal(t, v1.Data, v2.Data)
}

func TestEncodeInvariants(t *testing.T) {
	tab := testTable(t)
	m := testImage()

	v, err := NewEncoder(tab).Encode(m)
	require.NoError(t, err)
	require.NoError(t, v.Validate())

	b := m.Bounds()
	require.Len(t, v.Data, b.Dx()*b.Dy())

	used := make(map[string]struct{})
	for z := 0; z < v.Length; z++ {
		for x := 0; x < v.Width; x++ {
			want := tab.Nearest(colortable.FromColor(m.At(x, z))).Name
			i := v.Data[x+z*v.Width]
			assert.Less(t, int(i), v.Palette.Len())
			assert.Equal(t, want, v.Palette.Name(int(i)), "voxel (%d, 0, %d)", x, z)
			assert.Equal(t, i, v.At(x, 0, z))
			used[want] = struct{}{}
		}
	}

	// Every palette entry is used exactly once in the palette
	assert.Len(t, used, v.Palette.Len())
	for _, n := range v.Palette.Names() {
		assert.Contains(t, used, n)
	}
}

func TestEncodeScanOrder(t *testing.T) {
	// Columns are scanned before rows so (0, 1) is seen before (1, 0)
	m := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	m.SetNRGBA(0, 0, color.NRGBA{128, 128, 128, 255})
	m.SetNRGBA(1, 0, color.NRGBA{0, 200, 0, 255})
	m.SetNRGBA(0, 1, color.NRGBA{40, 60, 220, 255})
	m.SetNRGBA(1, 1, color.NRGBA{0, 200, 0, 255})

	v, err := NewEncoder(testTable(t)).Encode(m)
	require.NoError(t, err)

	assert.Equal(t, []string{"stone", "water", "grass"}, v.Palette.Names())
	assert.Equal(t, []byte{0, 2, 1, 2}, v.Data)
}

func TestEncodeOffsetBounds(t *testing.T) {
	m := image.NewNRGBA(image.Rect(10, 20, 12, 21))
	m.SetNRGBA(10, 20, color.NRGBA{0, 200, 0, 255})
	m.SetNRGBA(11, 20, color.NRGBA{128, 128, 128, 255})

	v, err := NewEncoder(testTable(t)).Encode(m)
	require.NoError(t, err)

	assert.Equal(t, []string{"grass", "stone"}, v.Palette.Names())
	assert.Equal(t, []byte{0, 1}, v.Data)
}

func TestEncodeErrors(t *testing.T) {
	_, err := NewEncoder(testTable(t)).Encode(image.NewNRGBA(image.Rect(0, 0, 0, 5)))
	assert.ErrorIs(t, err, ErrDegenerate)

	_, err = NewEncoder(nil).Encode(testImage())
	assert.ErrorIs(t, err, colortable.ErrEmpty)
}

func TestEncodePaletteOverflow(t *testing.T) {
	var entries []colortable.Entry
	m := image.NewNRGBA(image.Rect(0, 0, MaxPalette+1, 1))
	for i := 0; i <= MaxPalette; i++ {
		c := colortable.Color{uint8(i), uint8(i >> 8), 0, 255}
		entries = append(entries, colortable.Entry{Name: fmt.Sprintf("block_%d", i), Color: c})
		m.SetNRGBA(i, 0, c.NRGBA())
	}
	tab, err := colortable.New(entries)
	require.NoError(t, err)

	_, err = NewEncoder(tab).Encode(m)
	assert.ErrorIs(t, err, ErrPaletteOverflow)

	// Exactly MaxPalette blocks still fits
	v, err := NewEncoder(tab).Encode(m.SubImage(image.Rect(0, 0, MaxPalette, 1)))
	require.NoError(t, err)
	assert.Equal(t, MaxPalette, v.Palette.Len())
	assert.Equal(t, byte(MaxPalette-1), v.Data[MaxPalette-1])
}

func TestRoundTrip(t *testing.T) {
	tab := testTable(t)
	m := testImage()

	v, err := NewEncoder(tab).Encode(m)
	require.NoError(t, err)

	out, err := NewDecoder(tab).Decode(v)
	require.NoError(t, err)
	assert.Equal(t, m.Bounds(), out.Bounds())

	for z := 0; z < v.Length; z++ {
		for x := 0; x < v.Width; x++ {
			want := tab.Nearest(colortable.FromColor(m.At(x, z))).Color
			assert.Equal(t, want.NRGBA(), out.At(x, z), "pixel (%d, %d)", x, z)
		}
	}

	// Encoding the decoded image again is stable
	again, err := NewEncoder(tab).Encode(out)
	require.NoError(t, err)
	assert.Equal(t, v.Data, again.Data)
	assert.Equal(t, v.Palette.Names(), again.Palette.Names())
}

func TestDecodeLayout(t *testing.T) {
	v := &Volume{
		Width:   3,
		Height:  1,
		Length:  2,
		Palette: NewPalette("stone", "grass"),
		Data:    []byte{0, 0, 1, 1, 0, 0},
	}

	m, err := NewDecoder(testTable(t)).Decode(v)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 3, 2), m.Bounds())
	assert.Equal(t, uint8(1), m.ColorIndexAt(2, 0))
	assert.Equal(t, uint8(1), m.ColorIndexAt(0, 1))
	assert.Equal(t, uint8(0), m.ColorIndexAt(1, 1))
	assert.Equal(t, color.NRGBA{0, 200, 0, 255}, m.At(2, 0))
}

func TestDecodeErrors(t *testing.T) {
	tab := testTable(t)
	d := NewDecoder(tab)

	tables := []struct {
		name   string
		volume *Volume
		err    error
	}{
		{
			name:   "empty",
			volume: &Volume{Width: 1, Height: 1, Length: 1, Palette: NewPalette("stone")},
			err:    ErrDegenerate,
		},
		{
			name:   "height",
			volume: &Volume{Width: 1, Height: 2, Length: 1, Palette: NewPalette("stone"), Data: []byte{0, 0}},
			err:    ErrUnsupportedHeight,
		},
		{
			name:   "length",
			volume: &Volume{Width: 2, Height: 1, Length: 1, Palette: NewPalette("stone"), Data: []byte{0}},
			err:    ErrBadLength,
		},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			_, err := d.Decode(table.volume)
			assert.ErrorIs(t, err, table.err)
		})
	}

	var ube *UnknownBlockError

	_, err := d.Decode(&Volume{Width: 1, Height: 1, Length: 1, Palette: NewPalette("bedrock"), Data: []byte{0}})
	require.ErrorAs(t, err, &ube)
	assert.Equal(t, "bedrock", ube.Name)
	assert.Equal(t, 0, ube.Index)

	_, err = d.Decode(&Volume{Width: 1, Height: 1, Length: 1, Palette: NewPalette("stone"), Data: []byte{3}})
	require.ErrorAs(t, err, &ube)
	assert.Equal(t, 3, ube.Index)

	names := make([]string, MaxPalette+1)
	for i := range names {
		names[i] = fmt.Sprintf("block_%d", i)
	}
	_, err = d.Decode(&Volume{Width: 1, Height: 1, Length: 1, Palette: NewPalette(names...), Data: []byte{0}})
	assert.ErrorIs(t, err, ErrPaletteOverflow)

	_, err = NewDecoder(nil).Decode(&Volume{Width: 1, Height: 1, Length: 1, Palette: NewPalette("stone"), Data: []byte{0}})
	assert.ErrorIs(t, err, colortable.ErrEmpty)
}

func TestIndex(t *testing.T) {
	assert.Equal(t, 0, Index(0, 0, 0, 4, 3))
	assert.Equal(t, 3, Index(3, 0, 0, 4, 3))
	assert.Equal(t, 4, Index(0, 0, 1, 4, 3))
	assert.Equal(t, 12, Index(0, 1, 0, 4, 3))
	assert.Equal(t, 23, Index(3, 1, 2, 4, 3))
}

func TestPalette(t *testing.T) {
	var p Palette
	assert.Equal(t, 0, p.Add("stone"))
	assert.Equal(t, 1, p.Add("grass"))
	assert.Equal(t, 0, p.Add("stone"))
	assert.Equal(t, 2, p.Len())

	i, ok := p.Index("grass")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = p.Index("sand")
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b"}, NewPalette("a", "b", "a").Names())
	assert.Equal(t, 2, NewPalette("a", "b").Len())
}
