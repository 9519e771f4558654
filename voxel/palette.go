package voxel

// Palette is an ordered set of block identifiers. The index of a block is
// the position at which it was first added. The zero value is an empty
// palette ready to use.
type Palette struct {
	names []string
	index map[string]int
}

// NewPalette returns a palette containing names in order, ignoring any
// repeats.
func NewPalette(names ...string) Palette {
	var p Palette
	for _, n := range names {
		p.Add(n)
	}
	return p
}

// Add appends name if it is not already present and returns its index.
func (p *Palette) Add(name string) int {
	if i, ok := p.index[name]; ok {
		return i
	}
	if p.index == nil {
		p.index = make(map[string]int)
	}
	p.index[name] = len(p.names)
	p.names = append(p.names, name)
	return len(p.names) - 1
}

// Index returns the index of name.
func (p Palette) Index(name string) (int, bool) {
	i, ok := p.index[name]
	return i, ok
}

// Name returns the block at index i.
func (p Palette) Name(i int) string {
	return p.names[i]
}

// Len returns the number of blocks in the palette.
func (p Palette) Len() int {
	return len(p.names)
}

// Names returns a copy of the blocks in index order.
func (p Palette) Names() []string {
	return append([]string(nil), p.names...)
}
