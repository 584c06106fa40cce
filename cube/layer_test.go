package cube

import "testing"

func TestLayer(t *testing.T) {
	t.Run("reset layer is not full", func(t *testing.T) {
		t.Parallel()
		l := NewLayer(6, 6, Red)
		l.NewBlock(1, 1)
		l.Reset()
		if l.IsFull() {
			t.Errorf("wanted reset layer not to be full")
		}
		if l.Count() != 0 {
			t.Errorf("wanted count 0, got %d", l.Count())
		}
		if l.Occupied(1, 1) {
			t.Errorf("wanted cell to be cleared")
		}
		if l.Color() != Red {
			t.Errorf("wanted color to survive the reset, got %v", l.Color())
		}
	})

	t.Run("count follows new blocks", func(t *testing.T) {
		t.Parallel()
		l := NewLayer(6, 6, Red)
		n := 0
		for x := range 6 {
			for y := range 6 {
				l.NewBlock(x, y)
				n++
				if l.Count() != n {
					t.Fatalf("wanted count %d, got %d", n, l.Count())
				}
				if l.IsFull() != (n == 36) {
					t.Fatalf("wanted full to be %t with %d blocks", n == 36, n)
				}
			}
		}
	})

	t.Run("occupying a cell twice counts once", func(t *testing.T) {
		t.Parallel()
		l := NewLayer(6, 6, Red)
		l.NewBlock(2, 3)
		l.NewBlock(2, 3)
		if l.Count() != 1 {
			t.Errorf("wanted count 1, got %d", l.Count())
		}
	})

	t.Run("blocks is a copy", func(t *testing.T) {
		t.Parallel()
		l := NewLayer(6, 6, Red)
		b := l.Blocks()
		b[0][0] = true
		if l.Occupied(0, 0) {
			t.Errorf("wanted layer to be unaffected by the copy")
		}
	})
}

func TestDoesPieceFit(t *testing.T) {
	square := (&Piece{Type: Square}).Blocks()
	tests := []struct {
		name    string
		blocks  [][2]int
		cx, cy  int
		wantFit bool
	}{
		{
			name:    "empty layer",
			cx:      3,
			cy:      3,
			wantFit: true,
		},
		{
			name:    "block outside the footprint",
			blocks:  [][2]int{{4, 4}, {0, 0}},
			cx:      3,
			cy:      3,
			wantFit: true,
		},
		{
			name:   "block under the center",
			blocks: [][2]int{{3, 3}},
			cx:     3,
			cy:     3,
		},
		{
			name:   "block under a corner",
			blocks: [][2]int{{2, 2}},
			cx:     3,
			cy:     3,
		},
		{
			name:   "placement in the corner of the layer",
			blocks: [][2]int{{0, 0}},
			cx:     1,
			cy:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := NewLayer(6, 6, Red)
			for _, b := range tt.blocks {
				l.NewBlock(b[0], b[1])
			}
			if got := l.DoesPieceFit(tt.cx, tt.cy, square); got != tt.wantFit {
				t.Errorf("wanted fit %t, got %t", tt.wantFit, got)
			}
		})
	}
}
