// Package cube contains the rules of a 3D block-stacking game.
//
// The board is a stack of Depth layers, each a Width x Height grid. Layer 0 is
// the slice nearest the viewer, pieces spawn there and fall towards the
// floor at Depth-1. Filling a whole layer clears it and scores points.
package cube

import "time"

// Logic is the game controller. It is not safe for concurrent use, callers
// serialize every call (see Game).
type Logic struct {
	cfg    Config
	rand   Random
	clock  Clock
	layers []*Layer
	piece  *Piece
	next   *Piece

	score   int
	level   int
	running bool

	timer    time.Duration
	lastTime time.Time
}

// NewLogic builds the board and starts a new game.
func NewLogic(cfg Config, r Random, c Clock) *Logic {
	l := &Logic{
		cfg:    cfg,
		rand:   r,
		clock:  c,
		layers: make([]*Layer, cfg.Depth),
		next:   NewPiece(cfg, Square),
	}
	l.ResetGame()
	return l
}

func (l *Logic) ResetGame() {
	l.score = 0
	l.level = 1
	for i := range l.layers {
		l.layers[i] = NewLayer(l.cfg.Width, l.cfg.Height, l.cfg.color(i))
	}
	l.piece = NewPiece(l.cfg, l.randomShape())
	l.next.Type = l.randomShape()
	l.timer = 0
	l.lastTime = l.clock.Now()
	l.running = true
}

func (l *Logic) randomShape() Shape {
	return Shape(l.rand.IntRange(0, shapeCount-1))
}

// NewPiece promotes the next piece to the spawn point. It returns false when
// the spawn cells on layer 0 are taken, which ends the game.
func (l *Logic) NewPiece() bool {
	l.piece.Center = spawnPoint(l.cfg)
	l.piece.RotationX = 0
	l.piece.RotationY = 0
	l.piece.Type = l.next.Type
	if !l.layers[0].DoesPieceFit(int(l.piece.Center.X), int(l.piece.Center.Y), l.piece.Blocks()) {
		return false
	}
	l.next.Type = l.randomShape()
	return true
}

// IsValid reports whether every cell of offsets around the piece's center is
// inside the board. Occupancy is not checked.
func (l *Logic) IsValid(offsets []Vec3) bool {
	for _, o := range offsets {
		v := l.piece.Center.Add(o)
		if v.X < 0 || v.X > float64(l.cfg.Width-1) || v.Y < 0 || v.Y > float64(l.cfg.Height-1) {
			return false
		}
		if v.Z < 0 || v.Z >= float64(l.cfg.Depth) {
			return false
		}
	}
	return true
}

// MovePiece shifts the piece laterally. The move is undone only when it is
// both out of bounds and colliding, so sliding into settled blocks inside the
// board is allowed.
func (l *Logic) MovePiece(dx, dy int) {
	l.piece.Center.X += float64(dx)
	l.piece.Center.Y += float64(dy)
	if !l.IsValid(l.piece.Blocks()) && l.CheckPieceCollision() {
		l.piece.Center.X -= float64(dx)
		l.piece.Center.Y -= float64(dy)
	}
}

// RotatePiece turns the piece about X and Y together, reverting both turns
// when the new orientation leaves the board.
func (l *Logic) RotatePiece(dx, dy int) {
	l.piece.RotateX(dx)
	l.piece.RotateY(dy)
	if !l.IsValid(l.piece.Blocks()) {
		l.piece.RotateX(-dx)
		l.piece.RotateY(-dy)
	}
}

// CheckPieceCollision reports whether a cell of the piece reached the
// sentinel slice, left the board laterally, or overlaps a settled block.
func (l *Logic) CheckPieceCollision() bool {
	sentinel := l.cfg.Depth - 1
	for _, c := range l.piece.Cells() {
		if c.Z >= sentinel || c.X < 0 || c.X >= l.cfg.Width || c.Y < 0 || c.Y >= l.cfg.Height ||
			l.layers[c.Z].Occupied(c.X, c.Y) {
			return true
		}
	}
	return false
}

func (l *Logic) MovePieceDown() {
	l.piece.Center.Z++
	if l.CheckPieceCollision() {
		l.DropPiece()
	}
}

// DropPiece locks the piece. Every cell falls down its own (x, y) column and
// rests on top of the shallowest settled block, or on the slice above the
// sentinel when the column is empty. The piece's depth does not matter.
func (l *Logic) DropPiece() {
	if !l.running {
		return
	}
	last := len(l.layers) - 1
	for _, c := range l.piece.Cells() {
		for i := 1; i <= last; i++ {
			below, above := l.layers[i].Occupied(c.X, c.Y), l.layers[i-1].Occupied(c.X, c.Y)
			if (i == last && !below) || (below && !above) {
				l.layers[i-1].NewBlock(c.X, c.Y)
				break
			}
		}
	}
	if !l.NewPiece() {
		l.running = false
	}
}

// Update advances the game by the real time elapsed since the previous call:
// full layers are cleared and scored, then the piece falls one slice once the
// drop interval has passed.
func (l *Logic) Update() {
	if !l.running {
		return
	}
	for _, layer := range l.layers {
		if layer.IsFull() {
			layer.Reset()
			l.score += l.cfg.ClearBonus
			l.level = 1 + l.score/l.cfg.LevelScore
		}
	}

	now := l.clock.Now()
	l.timer += now.Sub(l.lastTime)
	l.lastTime = now

	if l.timer >= l.DropInterval() {
		l.timer = 0
		l.MovePieceDown()
	}
}

// DropInterval is the time between gravity steps at the current level.
func (l *Logic) DropInterval() time.Duration {
	d := l.cfg.TimerLimit - time.Duration(l.level-1)*l.cfg.LevelStep
	return max(d, l.cfg.MinDropInterval)
}

func (l *Logic) Config() Config { return l.cfg }
func (l *Logic) Score() int     { return l.score }
func (l *Logic) Level() int     { return l.level }
func (l *Logic) Running() bool  { return l.running }

// Piece returns a copy of the falling piece.
func (l *Logic) Piece() *Piece { return l.piece.Copy() }

// Next returns a copy of the preview piece, only its Type is meaningful.
func (l *Logic) Next() *Piece { return l.next.Copy() }

func (l *Logic) NextType() Shape { return l.next.Type }

// Layer returns the live layer at depth i. Renderers must not mutate it.
func (l *Logic) Layer(i int) *Layer { return l.layers[i] }
func (l *Logic) Depth() int         { return len(l.layers) }
