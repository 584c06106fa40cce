package cube

// Layer is one depth slice of the board.
// count always equals the number of occupied cells in blocks.
type Layer struct {
	count         int
	color         Color
	width, height int
	blocks        [][]bool // [x][y]
}

func NewLayer(width, height int, color Color) *Layer {
	blocks := make([][]bool, width)
	for x := range blocks {
		blocks[x] = make([]bool, height)
	}
	return &Layer{
		color:  color,
		width:  width,
		height: height,
		blocks: blocks,
	}
}

// DoesPieceFit reports whether every offset around (cx, cy) is free.
// Callers must keep the cells inside the layer.
func (l *Layer) DoesPieceFit(cx, cy int, offsets []Vec3) bool {
	for _, o := range offsets {
		if l.blocks[cx+int(o.X)][cy+int(o.Y)] {
			return false
		}
	}
	return true
}

// NewBlock occupies a single cell. Occupying a cell twice is a no-op.
func (l *Layer) NewBlock(x, y int) {
	if l.blocks[x][y] {
		return
	}
	l.blocks[x][y] = true
	l.count++
}

func (l *Layer) Count() int   { return l.count }
func (l *Layer) Color() Color { return l.color }

func (l *Layer) Occupied(x, y int) bool { return l.blocks[x][y] }

func (l *Layer) IsFull() bool { return l.count == l.width*l.height }

// Reset empties the layer, its color is kept.
func (l *Layer) Reset() {
	l.count = 0
	for x := range l.blocks {
		clear(l.blocks[x])
	}
}

// Blocks returns a copy of the occupancy grid indexed [x][y].
func (l *Layer) Blocks() [][]bool {
	out := make([][]bool, len(l.blocks))
	for x := range l.blocks {
		out[x] = make([]bool, len(l.blocks[x]))
		copy(out[x], l.blocks[x])
	}
	return out
}

func (l *Layer) Width() int  { return l.width }
func (l *Layer) Height() int { return l.height }
