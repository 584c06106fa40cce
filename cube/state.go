package cube

// LayerState is a read-only copy of a Layer.
type LayerState struct {
	Blocks [][]bool // [x][y]
	Count  int
	Color  Color
}

// State is a snapshot of the game that is safe to hand to renderers and
// transports. Nothing in it aliases the live board.
type State struct {
	Width, Height, Depth int

	Layers []LayerState
	Piece  *Piece
	Cells  []Cell // absolute cells of Piece
	Next   Shape

	Score   int
	Level   int
	Running bool
}

func (l *Logic) State() *State {
	layers := make([]LayerState, len(l.layers))
	for i, layer := range l.layers {
		layers[i] = LayerState{
			Blocks: layer.Blocks(),
			Count:  layer.Count(),
			Color:  layer.Color(),
		}
	}
	return &State{
		Width:   l.cfg.Width,
		Height:  l.cfg.Height,
		Depth:   l.cfg.Depth,
		Layers:  layers,
		Piece:   l.piece.Copy(),
		Cells:   l.piece.Cells(),
		Next:    l.next.Type,
		Score:   l.score,
		Level:   l.level,
		Running: l.running,
	}
}

// PieceAt reports whether the falling piece covers the cell.
func (s *State) PieceAt(x, y, z int) bool {
	for _, c := range s.Cells {
		if c.X == x && c.Y == y && c.Z == z {
			return true
		}
	}
	return false
}
