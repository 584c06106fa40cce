package gesture

import (
	"cubetris/cube"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feed sends the same right hand gesture n times and returns the frames
// (1-based) that produced an action.
func feed(tr *Translator, g Gesture, n int) map[int]cube.Action {
	fired := make(map[int]cube.Action)
	for i := 1; i <= n; i++ {
		if a, ok := tr.Translate(Body{Right: g}); ok {
			fired[i] = a
		}
	}
	return fired
}

func TestTranslate(t *testing.T) {
	// default sensitivity is punch 2, move 3, rotate 2.
	tests := []struct {
		name    string
		gesture Gesture
		frames  int
		want    map[int]cube.Action
	}{
		{
			name:    "punch drops every third frame",
			gesture: Gesture{State: Open, Punch: true},
			frames:  6,
			want:    map[int]cube.Action{3: cube.Drop, 6: cube.Drop},
		},
		{
			name:    "open hand without punch does nothing",
			gesture: Gesture{State: Open},
			frames:  6,
			want:    map[int]cube.Action{},
		},
		{
			name:    "closed hand moves every fourth frame",
			gesture: Gesture{State: Closed, Direction: Right},
			frames:  8,
			want:    map[int]cube.Action{4: cube.MoveRight, 8: cube.MoveRight},
		},
		{
			name:    "closed hand moving down",
			gesture: Gesture{State: Closed, Direction: Down},
			frames:  4,
			want:    map[int]cube.Action{4: cube.MoveDown},
		},
		{
			name:    "held lasso turns every other time",
			gesture: Gesture{State: Lasso, Direction: Up},
			frames:  9,
			want:    map[int]cube.Action{3: cube.RotateUp, 9: cube.RotateUp},
		},
		{
			name:    "still lasso never turns",
			gesture: Gesture{State: Lasso, Direction: Stop},
			frames:  9,
			want:    map[int]cube.Action{},
		},
		{
			name:    "untracked hand",
			gesture: Gesture{State: Unknown, Direction: Left, Punch: true},
			frames:  9,
			want:    map[int]cube.Action{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tr := NewTranslator(cube.DefaultConfig())
			assert.Equal(t, tt.want, feed(tr, tt.gesture, tt.frames))
		})
	}
}

func TestStopRearmsTurns(t *testing.T) {
	tr := NewTranslator(cube.DefaultConfig())
	lasso := Gesture{State: Lasso, Direction: Left}

	require.Equal(t, map[int]cube.Action{3: cube.RotateLeft}, feed(tr, lasso, 3))
	// the third frame of a stopped lasso resets the streak.
	require.Empty(t, feed(tr, Gesture{State: Lasso, Direction: Stop}, 3))
	assert.Equal(t, map[int]cube.Action{3: cube.RotateLeft}, feed(tr, lasso, 3))
}

func TestHandSelection(t *testing.T) {
	cfg := cube.DefaultConfig()
	cfg.Hand = cube.LeftHand
	cfg.Sensitivity = cube.Sensitivity{}
	tr := NewTranslator(cfg)

	_, ok := tr.Translate(Body{Right: Gesture{State: Open, Punch: true}})
	assert.False(t, ok, "the right hand is ignored when playing left handed")

	a, ok := tr.Translate(Body{Left: Gesture{State: Open, Punch: true}})
	require.True(t, ok)
	assert.Equal(t, cube.Drop, a)
}

func TestParse(t *testing.T) {
	h, err := ParseHandState("lasso")
	require.NoError(t, err)
	assert.Equal(t, Lasso, h)
	h, err = ParseHandState("")
	require.NoError(t, err)
	assert.Equal(t, Unknown, h)
	_, err = ParseHandState("fist")
	assert.Error(t, err)

	d, err := ParseDirection("down")
	require.NoError(t, err)
	assert.Equal(t, Down, d)
	d, err = ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, Stop, d)
	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}
