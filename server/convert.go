package server

import (
	"cubetris/cube"
	"cubetris/gesture"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// StateToProto encodes a game snapshot. The falling piece travels as its type,
// rotation and center; its cells are derived again on decode.
func StateToProto(s *cube.State) (*structpb.Struct, error) {
	layers := make([]any, len(s.Layers))
	for i, l := range s.Layers {
		columns := make([]any, len(l.Blocks))
		for x, col := range l.Blocks {
			cells := make([]any, len(col))
			for y, b := range col {
				cells[y] = b
			}
			columns[x] = cells
		}
		layers[i] = map[string]any{
			"blocks": columns,
			"count":  l.Count,
			"color":  string(l.Color),
		}
	}

	m := map[string]any{
		"width":   s.Width,
		"height":  s.Height,
		"depth":   s.Depth,
		"layers":  layers,
		"next":    int(s.Next),
		"score":   s.Score,
		"level":   s.Level,
		"running": s.Running,
	}
	if s.Piece != nil {
		m["piece"] = map[string]any{
			"type":       int(s.Piece.Type),
			"rotation_x": s.Piece.RotationX,
			"rotation_y": s.Piece.RotationY,
			"center":     []any{s.Piece.Center.X, s.Piece.Center.Y, s.Piece.Center.Z},
		}
	}

	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("unable to encode state: %w", err)
	}
	return st, nil
}

// StateFromProto is the inverse of StateToProto.
func StateFromProto(st *structpb.Struct) (*cube.State, error) {
	d := &decoder{}
	m := st.AsMap()

	s := &cube.State{
		Width:   d.intField(m, "width"),
		Height:  d.intField(m, "height"),
		Depth:   d.intField(m, "depth"),
		Next:    cube.Shape(d.intField(m, "next")),
		Score:   d.intField(m, "score"),
		Level:   d.intField(m, "level"),
		Running: d.boolField(m, "running"),
	}

	for i, v := range d.listField(m, "layers") {
		lm, ok := v.(map[string]any)
		if !ok {
			d.fail(fmt.Sprintf("layers[%d]", i))
			break
		}
		layer := cube.LayerState{
			Count: d.intField(lm, "count"),
			Color: cube.Color(d.stringField(lm, "color")),
		}
		for x, col := range d.listField(lm, "blocks") {
			cells, ok := col.([]any)
			if !ok {
				d.fail(fmt.Sprintf("layers[%d].blocks[%d]", i, x))
				break
			}
			column := make([]bool, len(cells))
			for y, c := range cells {
				b, ok := c.(bool)
				if !ok {
					d.fail(fmt.Sprintf("layers[%d].blocks[%d][%d]", i, x, y))
				}
				column[y] = b
			}
			layer.Blocks = append(layer.Blocks, column)
		}
		s.Layers = append(s.Layers, layer)
	}

	if pv, ok := m["piece"]; ok {
		pm, ok := pv.(map[string]any)
		if !ok {
			d.fail("piece")
		} else {
			p := &cube.Piece{
				Type:      cube.Shape(d.intField(pm, "type")),
				RotationX: d.intField(pm, "rotation_x"),
				RotationY: d.intField(pm, "rotation_y"),
			}
			center := d.listField(pm, "center")
			if len(center) == 3 {
				p.Center = cube.Vec3{X: d.number(center[0]), Y: d.number(center[1]), Z: d.number(center[2])}
			} else {
				d.fail("piece.center")
			}
			if p.Type < cube.Square || p.Type > cube.Tee {
				d.fail("piece.type")
			}
			if d.err == nil {
				s.Piece = p
				s.Cells = p.Cells()
			}
		}
	}

	if d.err != nil {
		return nil, d.err
	}
	return s, nil
}

// BodyFromProto reads a gesture frame:
//
//	{"left": {"state": "closed", "direction": "right", "punch": false}, "right": {...}}
//
// A missing hand is untracked.
func BodyFromProto(st *structpb.Struct) (gesture.Body, error) {
	m := st.AsMap()
	left, err := gestureFromMap(m, "left")
	if err != nil {
		return gesture.Body{}, err
	}
	right, err := gestureFromMap(m, "right")
	if err != nil {
		return gesture.Body{}, err
	}
	return gesture.Body{Left: left, Right: right}, nil
}

func gestureFromMap(m map[string]any, hand string) (gesture.Gesture, error) {
	v, ok := m[hand]
	if !ok {
		return gesture.Gesture{}, nil
	}
	hm, ok := v.(map[string]any)
	if !ok {
		return gesture.Gesture{}, fmt.Errorf("invalid gesture field %q", hand)
	}
	var g gesture.Gesture
	var err error
	name, _ := hm["state"].(string)
	if g.State, err = gesture.ParseHandState(name); err != nil {
		return gesture.Gesture{}, fmt.Errorf("%s: %w", hand, err)
	}
	name, _ = hm["direction"].(string)
	if g.Direction, err = gesture.ParseDirection(name); err != nil {
		return gesture.Gesture{}, fmt.Errorf("%s: %w", hand, err)
	}
	if p, ok := hm["punch"]; ok {
		if g.Punch, ok = p.(bool); !ok {
			return gesture.Gesture{}, fmt.Errorf("invalid gesture field %q", hand+".punch")
		}
	}
	return g, nil
}

// decoder records the first field that didn't have the expected type.
type decoder struct {
	err error
}

func (d *decoder) fail(field string) {
	if d.err == nil {
		d.err = fmt.Errorf("invalid state field %q", field)
	}
}

func (d *decoder) intField(m map[string]any, key string) int {
	v, ok := m[key].(float64)
	if !ok {
		d.fail(key)
	}
	return int(v)
}

func (d *decoder) number(v any) float64 {
	f, ok := v.(float64)
	if !ok {
		d.fail("number")
	}
	return f
}

func (d *decoder) boolField(m map[string]any, key string) bool {
	v, ok := m[key].(bool)
	if !ok {
		d.fail(key)
	}
	return v
}

func (d *decoder) stringField(m map[string]any, key string) string {
	v, ok := m[key].(string)
	if !ok {
		d.fail(key)
	}
	return v
}

func (d *decoder) listField(m map[string]any, key string) []any {
	v, ok := m[key].([]any)
	if !ok {
		d.fail(key)
	}
	return v
}
