package cube

// Shape indexes one of the five piece templates.
type Shape int

const (
	Square Shape = iota
	Bar
	Skew
	Hook
	Tee
)

const shapeCount = 5

// Vec3 is a position or offset in board coordinates.
// X and Y are lateral, Z grows away from the viewer towards the floor.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Cell is an absolute integer board cell.
type Cell struct {
	X, Y, Z int
}

func (v Vec3) cell() Cell { return Cell{int(v.X), int(v.Y), int(v.Z)} }

/*
Templates are laid out on a single depth slice around the piece's center (C).

.	Square		.	Bar			.	Skew		.	Hook		.	Tee

-1	O O		 0	O C O O		-1	O O X		-1	O O O		-1	X O X
 0	O C		.			 0	X C O		 0	O X X		 0	O C O
*/
var templates = [shapeCount][4]Vec3{
	Square: {{0, 0, 0}, {-1, 0, 0}, {0, -1, 0}, {-1, -1, 0}},
	Bar:    {{-1, 0, 0}, {0, 0, 0}, {1, 0, 0}, {2, 0, 0}},
	Skew:   {{-1, -1, 0}, {0, -1, 0}, {0, 0, 0}, {1, 0, 0}},
	Hook:   {{-1, 0, 0}, {-1, -1, 0}, {0, -1, 0}, {1, -1, 0}},
	Tee:    {{-1, 0, 0}, {0, 0, 0}, {0, -1, 0}, {1, 0, 0}},
}

// Piece is the falling shape. Only quarter turns about X and Y are modeled.
type Piece struct {
	Type      Shape
	RotationX int
	RotationY int
	Center    Vec3
}

// NewPiece returns a piece of type t at the board's lateral center on the top slice.
func NewPiece(cfg Config, t Shape) *Piece {
	return &Piece{Type: t, Center: spawnPoint(cfg)}
}

func spawnPoint(cfg Config) Vec3 {
	return Vec3{X: float64(cfg.Width / 2), Y: float64(cfg.Height / 2)}
}

func (p *Piece) Copy() *Piece {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// Blocks returns the four offsets of the piece for its current orientation.
func (p *Piece) Blocks() []Vec3 {
	blocks := make([]Vec3, 4)
	copy(blocks, templates[p.Type][:])
	return p.rotate(blocks)
}

// rotate turns the blocks about X first and Y second, then shifts them in
// depth so the shallowest one lands on the baseline. The baseline starts at
// the center's depth, so a piece deeper than its own offsets is not lifted.
func (p *Piece) rotate(blocks []Vec3) []Vec3 {
	for i := range blocks {
		b := &blocks[i]
		switch p.RotationX {
		case 1:
			b.X, b.Z = -b.Z, b.X
		case 2:
			b.X, b.Z = -b.X, -b.Z
		case 3:
			b.X, b.Z = b.Z, -b.X
		}
		switch p.RotationY {
		case 1:
			b.Y, b.Z = -b.Z, b.Y
		case 2:
			b.Y, b.Z = -b.Y, -b.Z
		case 3:
			b.Y, b.Z = b.Z, -b.Y
		}
	}

	lowZ := int(p.Center.Z)
	for _, b := range blocks {
		if b.Z < float64(lowZ) {
			lowZ = int(b.Z)
		}
	}
	for i := range blocks {
		blocks[i].Z -= float64(lowZ)
	}
	return blocks
}

func (p *Piece) RotateX(d int) { p.RotationX = quarterTurns(p.RotationX + d) }
func (p *Piece) RotateY(d int) { p.RotationY = quarterTurns(p.RotationY + d) }

func quarterTurns(r int) int {
	return ((r % 4) + 4) % 4
}

// Cells returns the absolute board cells the piece covers.
func (p *Piece) Cells() []Cell {
	blocks := p.Blocks()
	cells := make([]Cell, len(blocks))
	for i, b := range blocks {
		cells[i] = p.Center.Add(b).cell()
	}
	return cells
}

// BlocksH returns the blocks that are unique once projected on the X/Z plane.
// Renderers use it for the horizontal shadow guides.
func (p *Piece) BlocksH() []Vec3 {
	return unique(p.Blocks(), func(a, b Vec3) bool { return a.X == b.X && a.Z == b.Z })
}

// BlocksV returns the blocks that are unique once projected on the Y/Z plane.
func (p *Piece) BlocksV() []Vec3 {
	return unique(p.Blocks(), func(a, b Vec3) bool { return a.Y == b.Y && a.Z == b.Z })
}

func unique(blocks []Vec3, same func(a, b Vec3) bool) []Vec3 {
	var out []Vec3
next:
	for _, b := range blocks {
		for _, v := range out {
			if same(b, v) {
				continue next
			}
		}
		out = append(out, b)
	}
	return out
}
