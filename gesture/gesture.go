// Package gesture turns gestures an external recognizer already resolved into
// game actions, holding them back until they were seen for long enough.
package gesture

import (
	"cubetris/cube"
	"fmt"
)

// HandState is what the tracked hand is doing.
type HandState int

const (
	Unknown HandState = iota
	Open              // punching drops the piece
	Closed            // moving shifts the piece
	Lasso             // moving turns the piece
)

// Direction is the dominant direction the hand moved in since the last frame.
type Direction int

const (
	Stop Direction = iota
	Left
	Right
	Up
	Down
)

// Gesture is one hand in one sensor frame.
type Gesture struct {
	State     HandState
	Direction Direction
	Punch     bool
}

// Body is both hands in one sensor frame.
type Body struct {
	Left, Right Gesture
}

var (
	handStates = map[string]HandState{
		"unknown": Unknown,
		"open":    Open,
		"closed":  Closed,
		"lasso":   Lasso,
	}
	directions = map[string]Direction{
		"stop":  Stop,
		"left":  Left,
		"right": Right,
		"up":    Up,
		"down":  Down,
	}

	moves = map[Direction]cube.Action{
		Left:  cube.MoveLeft,
		Right: cube.MoveRight,
		Up:    cube.MoveUp,
		Down:  cube.MoveDown,
	}
	turns = map[Direction]cube.Action{
		Left:  cube.RotateLeft,
		Right: cube.RotateRight,
		Up:    cube.RotateUp,
		Down:  cube.RotateDown,
	}
)

// ParseHandState reads the name a recognizer reports a hand state with. An
// empty name is Unknown.
func ParseHandState(s string) (HandState, error) {
	if s == "" {
		return Unknown, nil
	}
	h, ok := handStates[s]
	if !ok {
		return Unknown, fmt.Errorf("unknown hand state %q", s)
	}
	return h, nil
}

// ParseDirection reads the name a recognizer reports a direction with. An
// empty name is Stop.
func ParseDirection(s string) (Direction, error) {
	if s == "" {
		return Stop, nil
	}
	d, ok := directions[s]
	if !ok {
		return Stop, fmt.Errorf("unknown direction %q", s)
	}
	return d, nil
}

// Translator debounces frames. It is not safe for concurrent use. A gesture of a kind fires once it was seen
// one more time than the kind's sensitivity, then its counter starts over.
// Moves repeat while the hand keeps moving; turns fire every other time so a
// held lasso doesn't spin the piece. A Stop direction rearms both.
type Translator struct {
	sens cube.Sensitivity
	hand cube.Hand

	punch, move, rotate int
	streak              int
}

func NewTranslator(cfg cube.Config) *Translator {
	return &Translator{sens: cfg.Sensitivity, hand: cfg.Hand}
}

// Translate feeds one frame and returns the action it triggers, if any.
func (t *Translator) Translate(b Body) (cube.Action, bool) {
	g := b.Right
	if t.hand == cube.LeftHand {
		g = b.Left
	}
	if t.streak == 2 {
		t.streak = 0
	}

	switch g.State {
	case Open:
		if !g.Punch {
			return "", false
		}
		if !ready(&t.punch, t.sens.Punch) {
			return "", false
		}
		return cube.Drop, true
	case Closed:
		if !ready(&t.move, t.sens.Move) {
			return "", false
		}
		if g.Direction == Stop {
			t.streak = 0
			return "", false
		}
		t.streak++
		a, ok := moves[g.Direction]
		return a, ok
	case Lasso:
		if !ready(&t.rotate, t.sens.Rotate) {
			return "", false
		}
		if g.Direction == Stop {
			t.streak = 0
			return "", false
		}
		fire := t.streak == 0
		t.streak++
		if !fire {
			return "", false
		}
		a, ok := turns[g.Direction]
		return a, ok
	}
	return "", false
}

func ready(counter *int, threshold int) bool {
	if *counter >= threshold {
		*counter = 0
		return true
	}
	*counter++
	return false
}
