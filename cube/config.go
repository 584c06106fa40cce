package cube

import (
	"errors"
	"fmt"
	"time"
)

// Color is the display color a layer is rendered with.
type Color string

const (
	SkyBlue Color = "skyblue"
	Coral   Color = "coral"
	Yellow  Color = "yellow"
	Violet  Color = "violet"
	Red     Color = "red"
	Orange  Color = "orange"
	Green   Color = "green"
	Fuchsia Color = "fuchsia"
	Blue    Color = "blue"
)

// Speed selects the base drop interval.
type Speed int

const (
	Slow Speed = iota
	Normal
	Fast
)

var speeds = map[Speed]time.Duration{
	Slow:   2000 * time.Millisecond,
	Normal: 1000 * time.Millisecond,
	Fast:   500 * time.Millisecond,
}

// Themes are the layer palettes, index 0 is the slice nearest the viewer.
var Themes = [][]Color{
	{SkyBlue, Coral, Yellow, Violet, Red, Orange, Coral, Green, Fuchsia, Red},
	{Orange, Green, Red, Violet, Red, Orange, Green, Yellow, Blue, Red},
	{Fuchsia, Coral, Yellow, Violet, Orange, Green, Red, Violet, Yellow, Red},
}

// Hand is the hand the player gestures with.
type Hand int

const (
	LeftHand Hand = iota
	RightHand
)

// Sensitivity is the number of consecutive gesture frames the driver waits
// for before it turns a gesture into an action. Lower is more sensitive.
type Sensitivity struct {
	Punch  int
	Move   int
	Rotate int
}

var sensitivities = []Sensitivity{
	{Punch: 1, Move: 2, Rotate: 1},
	{Punch: 2, Move: 3, Rotate: 2},
	{Punch: 3, Move: 4, Rotate: 3},
}

// Config holds everything the game needs to know about the board and its pacing.
// It is built once at startup and passed by value to the constructors.
type Config struct {
	// Width and Height are the lateral extents (X and Y), Depth is the fall axis (Z).
	Width, Height, Depth int

	// Palette colors the layers; it wraps around when shorter than Depth.
	Palette []Color

	// TimerLimit is the drop interval at level 1. Every level takes LevelStep
	// off it, never going below MinDropInterval.
	TimerLimit      time.Duration
	LevelStep       time.Duration
	MinDropInterval time.Duration

	// TickInterval is how often the Game loop calls Update.
	TickInterval time.Duration

	ClearBonus int // points per cleared layer
	LevelScore int // points per level

	Sensitivity Sensitivity
	Hand        Hand
}

func DefaultConfig() Config {
	return Config{
		Width:           6,
		Height:          6,
		Depth:           10,
		Palette:         Themes[0],
		TimerLimit:      speeds[Slow],
		LevelStep:       200 * time.Millisecond,
		MinDropInterval: 100 * time.Millisecond,
		TickInterval:    33 * time.Millisecond,
		ClearBonus:      10,
		LevelScore:      50,
		Sensitivity:     sensitivities[1],
		Hand:            RightHand,
	}
}

func (c Config) WithSpeed(s Speed) (Config, error) {
	d, ok := speeds[s]
	if !ok {
		return c, fmt.Errorf("unknown speed %d", s)
	}
	c.TimerLimit = d
	return c, nil
}

func (c Config) WithTheme(i int) (Config, error) {
	if i < 0 || i >= len(Themes) {
		return c, fmt.Errorf("unknown theme %d", i)
	}
	c.Palette = Themes[i]
	return c, nil
}

func (c Config) WithSensitivity(i int) (Config, error) {
	if i < 0 || i >= len(sensitivities) {
		return c, fmt.Errorf("unknown sensitivity %d", i)
	}
	c.Sensitivity = sensitivities[i]
	return c, nil
}

func (c Config) WithHand(h Hand) (Config, error) {
	if h != LeftHand && h != RightHand {
		return c, fmt.Errorf("unknown hand %d", h)
	}
	c.Hand = h
	return c, nil
}

// Validate checks the board is large enough to spawn every shape at its center.
func (c Config) Validate() error {
	var errs []error
	if c.Width < 5 {
		errs = append(errs, fmt.Errorf("width must be at least 5, got %d", c.Width))
	}
	if c.Height < 2 {
		errs = append(errs, fmt.Errorf("height must be at least 2, got %d", c.Height))
	}
	if c.Depth < 2 {
		errs = append(errs, fmt.Errorf("depth must be at least 2, got %d", c.Depth))
	}
	if len(c.Palette) == 0 {
		errs = append(errs, errors.New("palette is empty"))
	}
	if c.TimerLimit <= 0 || c.MinDropInterval <= 0 || c.TickInterval <= 0 {
		errs = append(errs, errors.New("timer durations must be positive"))
	}
	if c.LevelScore <= 0 {
		errs = append(errs, fmt.Errorf("level score must be positive, got %d", c.LevelScore))
	}
	return errors.Join(errs...)
}

func (c Config) color(depth int) Color {
	return c.Palette[depth%len(c.Palette)]
}
