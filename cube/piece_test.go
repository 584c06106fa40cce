package cube

import (
	"fmt"
	"reflect"
	"testing"
)

func TestBlocksNormalization(t *testing.T) {
	for shape := range Shape(shapeCount) {
		for rx := range 4 {
			for ry := range 4 {
				t.Run(fmt.Sprintf("shape %d rx %d ry %d", shape, rx, ry), func(t *testing.T) {
					t.Parallel()
					p := &Piece{Type: shape, RotationX: rx, RotationY: ry, Center: Vec3{3, 3, 4}}
					blocks := p.Blocks()
					if len(blocks) != 4 {
						t.Fatalf("wanted 4 blocks, got %d", len(blocks))
					}
					lowZ := blocks[0].Z
					for i, b := range blocks {
						lowZ = min(lowZ, b.Z)
						for _, o := range blocks[i+1:] {
							if b == o {
								t.Errorf("wanted distinct blocks, got %v twice", b)
							}
						}
					}
					if lowZ != 0 {
						t.Errorf("wanted shallowest block at depth 0, got %v", lowZ)
					}
				})
			}
		}
	}
}

func TestBlocks(t *testing.T) {
	tests := []struct {
		name  string
		piece *Piece
		want  []Vec3
	}{
		{
			name:  "square unrotated",
			piece: &Piece{Type: Square},
			want:  []Vec3{{0, 0, 0}, {-1, 0, 0}, {0, -1, 0}, {-1, -1, 0}},
		},
		{
			name:  "bar turned about X stands along the fall axis",
			piece: &Piece{Type: Bar, RotationX: 1},
			want:  []Vec3{{0, 0, 0}, {0, 0, 1}, {0, 0, 2}, {0, 0, 3}},
		},
		{
			name:  "bar turned back about X",
			piece: &Piece{Type: Bar, RotationX: 3},
			want:  []Vec3{{0, 0, 3}, {0, 0, 2}, {0, 0, 1}, {0, 0, 0}},
		},
		{
			name:  "bar half turn about X",
			piece: &Piece{Type: Bar, RotationX: 2},
			want:  []Vec3{{1, 0, 0}, {0, 0, 0}, {-1, 0, 0}, {-2, 0, 0}},
		},
		{
			name:  "tee turned about Y",
			piece: &Piece{Type: Tee, RotationY: 1},
			want:  []Vec3{{-1, 0, 1}, {0, 0, 1}, {0, 0, 0}, {1, 0, 1}},
		},
		{
			name:  "rotation does not depend on the piece depth",
			piece: &Piece{Type: Tee, RotationY: 1, Center: Vec3{3, 3, 6}},
			want:  []Vec3{{-1, 0, 1}, {0, 0, 1}, {0, 0, 0}, {1, 0, 1}},
		},
		{
			// the baseline starts at the center's depth, a center above the
			// board pushes the blocks down by the same amount.
			name:  "center above the board shifts the baseline",
			piece: &Piece{Type: Square, Center: Vec3{3, 3, -2}},
			want:  []Vec3{{0, 0, 2}, {-1, 0, 2}, {0, -1, 2}, {-1, -1, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.piece.Blocks()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wanted %v, got %v", tt.want, got)
			}
		})
	}
}

func TestBlocksDoesNotTouchTemplates(t *testing.T) {
	p := &Piece{Type: Bar, RotationX: 1}
	p.Blocks()
	want := [4]Vec3{{-1, 0, 0}, {0, 0, 0}, {1, 0, 0}, {2, 0, 0}}
	if templates[Bar] != want {
		t.Errorf("wanted template to stay %v, got %v", want, templates[Bar])
	}
}

func TestRotate(t *testing.T) {
	for _, d := range []int{1, -1} {
		t.Run(fmt.Sprintf("delta %d", d), func(t *testing.T) {
			t.Parallel()
			for start := range 4 {
				p := &Piece{RotationX: start, RotationY: start}
				for range 4 {
					p.RotateX(d)
					p.RotateY(d)
					if p.RotationX < 0 || p.RotationX > 3 || p.RotationY < 0 || p.RotationY > 3 {
						t.Fatalf("rotation left [0,3]: %d, %d", p.RotationX, p.RotationY)
					}
				}
				if p.RotationX != start || p.RotationY != start {
					t.Errorf("wanted %d after four turns, got %d, %d", start, p.RotationX, p.RotationY)
				}
			}
		})
	}

	t.Run("backwards from zero wraps to three", func(t *testing.T) {
		t.Parallel()
		p := &Piece{}
		p.RotateX(-1)
		p.RotateY(-1)
		if p.RotationX != 3 || p.RotationY != 3 {
			t.Errorf("wanted 3, 3, got %d, %d", p.RotationX, p.RotationY)
		}
	})
}

func TestProjections(t *testing.T) {
	tests := []struct {
		name         string
		piece        *Piece
		wantH, wantV []Vec3
	}{
		{
			name:  "square",
			piece: &Piece{Type: Square},
			wantH: []Vec3{{0, 0, 0}, {-1, 0, 0}},
			wantV: []Vec3{{0, 0, 0}, {0, -1, 0}},
		},
		{
			name:  "bar",
			piece: &Piece{Type: Bar},
			wantH: []Vec3{{-1, 0, 0}, {0, 0, 0}, {1, 0, 0}, {2, 0, 0}},
			wantV: []Vec3{{-1, 0, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.piece.BlocksH(); !reflect.DeepEqual(got, tt.wantH) {
				t.Errorf("wanted H %v, got %v", tt.wantH, got)
			}
			if got := tt.piece.BlocksV(); !reflect.DeepEqual(got, tt.wantV) {
				t.Errorf("wanted V %v, got %v", tt.wantV, got)
			}
		})
	}
}

func TestCells(t *testing.T) {
	p := NewPiece(DefaultConfig(), Square)
	want := []Cell{{3, 3, 0}, {2, 3, 0}, {3, 2, 0}, {2, 2, 0}}
	if got := p.Cells(); !reflect.DeepEqual(got, want) {
		t.Errorf("wanted %v, got %v", want, got)
	}
}
