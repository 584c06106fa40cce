package client

import (
	"cubetris/cube"
	"log/slog"
	"reflect"
	"strings"
	"testing"
)

func testRender(t *testing.T, w *strings.Builder) *render {
	t.Helper()
	r := &render{
		writer:       w,
		logger:       slog.Default(),
		styles:       newStyles(w),
		templateData: &templateData{},
	}
	tmpl, err := r.loadTemplate()
	if err != nil {
		t.Fatalf("unable to load template: %v", err)
	}
	r.template = tmpl
	return r
}

// droppedState is a game where a square was dropped and another one spawned.
func droppedState() *cube.State {
	logic, _ := cube.NewTestLogic(cube.Square, cube.Bar)
	logic.DropPiece()
	return logic.State()
}

func TestSlices(t *testing.T) {
	r := testRender(t, &strings.Builder{})
	got := r.slices(droppedState())

	if n := strings.Count(got, "██"); n != 4 {
		t.Errorf("wanted 4 settled blocks, got %d in\n%s", n, got)
	}
	if n := strings.Count(got, "[]"); n != 4 {
		t.Errorf("wanted 4 piece cells, got %d in\n%s", n, got)
	}
	for _, label := range []string{"0", "8"} {
		if !strings.Contains(got, label) {
			t.Errorf("wanted slice %s labeled", label)
		}
	}
	// two rows of five slices, each 6 cells tall plus borders and a label.
	if lines := strings.Count(got, "\n") + 1; lines != 2*(6+2+1) {
		t.Errorf("wanted %d lines, got %d", 2*(6+2+1), lines)
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		shape cube.Shape
		want  []string
	}{
		{cube.Square, []string{"████    ", "████    "}},
		{cube.Bar, []string{"████████", "        "}},
		{cube.Tee, []string{"██████  ", "  ██    "}},
		{cube.Hook, []string{"██      ", "██████  "}},
	}
	r := testRender(t, &strings.Builder{})
	for _, tt := range tests {
		got := r.next(&cube.State{Next: tt.shape})
		if !reflect.DeepEqual(tt.want, got) {
			t.Errorf("shape %d: want %q, got %q", tt.shape, tt.want, got)
		}
	}
}

func TestRenderFrames(t *testing.T) {
	tests := []struct {
		name string
		do   func(*render)
		want []string
	}{
		{
			name: "lobby",
			do:   func(r *render) { r.lobby(defaultLobby()) },
			want: []string{"Welcome to Cubetris", "(p)lay"},
		},
		{
			name: "running game",
			do:   func(r *render) { r.game(droppedState()) },
			want: []string{"CUBETRIS", "score 0", "level 1", "NEXT"},
		},
		{
			name: "game over banner",
			do: func(r *render) {
				r.game(droppedState())
				r.banner(gameOver(40))
			},
			want: []string{"Game Over", "score 40", "(r)estart"},
		},
		{
			name: "high score banner",
			do: func(r *render) {
				r.game(droppedState())
				r.banner(highScore(40, 0))
			},
			want: []string{"New high score!", "#1 with 40"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := &strings.Builder{}
			r := testRender(t, w)
			tt.do(r)
			out := w.String()
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("wanted %q in\n%s", s, out)
				}
			}
			if strings.Count(out, "\n") != strings.Count(out, "\r\n") {
				t.Errorf("wanted every new line to carry a carriage return")
			}
		})
	}

	t.Run("a running state clears the banner", func(t *testing.T) {
		w := &strings.Builder{}
		r := testRender(t, w)
		r.game(droppedState())
		r.banner(gameOver(0))
		w.Reset()
		r.game(droppedState())
		if strings.Contains(w.String(), "Game Over") {
			t.Errorf("wanted the banner gone once the game runs again")
		}
	})
}
