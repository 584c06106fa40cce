package cube

import "fmt"

type Action string

const (
	MoveLeft    Action = "left"     // Moves the piece one cell along -X.
	MoveRight   Action = "right"    // Moves the piece one cell along +X.
	MoveUp      Action = "up"       // Moves the piece one cell along +Y.
	MoveDown    Action = "down"     // Moves the piece one cell along -Y.
	RotateLeft  Action = "rotleft"  // Quarter turn about X, backwards.
	RotateRight Action = "rotright" // Quarter turn about X, forwards.
	RotateUp    Action = "rotup"    // Quarter turn about Y, forwards.
	RotateDown  Action = "rotdown"  // Quarter turn about Y, backwards.
	Drop        Action = "drop"     // Locks the piece straight away.
	Reset       Action = "reset"    // Starts a new game.
)

var actions = map[Action]func(l *Logic){
	MoveLeft:    func(l *Logic) { l.MovePiece(-1, 0) },
	MoveRight:   func(l *Logic) { l.MovePiece(1, 0) },
	MoveUp:      func(l *Logic) { l.MovePiece(0, 1) },
	MoveDown:    func(l *Logic) { l.MovePiece(0, -1) },
	RotateLeft:  func(l *Logic) { l.RotatePiece(-1, 0) },
	RotateRight: func(l *Logic) { l.RotatePiece(1, 0) },
	RotateUp:    func(l *Logic) { l.RotatePiece(0, 1) },
	RotateDown:  func(l *Logic) { l.RotatePiece(0, -1) },
	Drop:        func(l *Logic) { l.DropPiece() },
	Reset:       func(l *Logic) { l.ResetGame() },
}

func ParseAction(s string) (Action, error) {
	a := Action(s)
	if _, ok := actions[a]; !ok {
		return "", fmt.Errorf("unknown action %q", s)
	}
	return a, nil
}

// ApplyAction runs a player action against the game. Once the game is over
// only Reset has an effect.
func ApplyAction(l *Logic, a Action) error {
	do, ok := actions[a]
	if !ok {
		return fmt.Errorf("unknown action %q", a)
	}
	if !l.Running() && a != Reset {
		return nil
	}
	do(l)
	return nil
}
