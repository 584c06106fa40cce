package client

import (
	"context"
	"cubetris/cube"
	"cubetris/scores"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/eiannone/keyboard"
)

type clientState int

const (
	lobby clientState = iota
	playing
)

type state struct {
	current clientState
	mu      sync.Mutex
}

func (s *state) get() clientState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *state) set(c clientState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = c
}

// tetrisGame is either a local cube.Game or a game hosted by a server.
type tetrisGame interface {
	Start()
	GetUpdate() <-chan *cube.State
	Action(cube.Action)
	Stop()
}

type renderer interface {
	lobby(message)
	game(*cube.State)
	banner(message)
	reset()
}

type scoreKeeper interface {
	Record(score int, when time.Time) (int, bool, error)
}

type Client struct {
	newLocal  func() tetrisGame
	newRemote func(context.Context) (tetrisGame, error)
	render    renderer
	scores    scoreKeeper
	logger    *slog.Logger
	kbCh      <-chan keyboard.KeyEvent
	state     *state

	game   tetrisGame
	cancel context.CancelFunc
}

type Options struct {
	Config  cube.Config
	Address string
	// Seed fixes the piece sequence of local games, 0 picks a new one each game.
	Seed int64
	// Scores is where finished games are recorded, nil keeps no scores.
	Scores *scores.Store
}

func New(l *slog.Logger, o *Options) (*Client, error) {
	r, err := newRender(l)
	if err != nil {
		return nil, fmt.Errorf("failed to load renderer: %w", err)
	}
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	c := &Client{
		newLocal: func() tetrisGame {
			if o.Seed != 0 {
				return cube.NewSeededGame(o.Config, o.Seed, l)
			}
			return cube.NewGame(o.Config, l)
		},
		newRemote: func(ctx context.Context) (tetrisGame, error) {
			return DialRemote(ctx, o.Address, l)
		},
		render: r,
		logger: l,
		kbCh:   kb,
		state:  &state{current: lobby},
	}
	if o.Scores != nil {
		c.scores = o.Scores
	}
	return c, nil
}

func (c *Client) Start() {
	c.render.lobby(defaultLobby())
	var wg sync.WaitGroup
	wg.Add(1)
	go c.listenKB(&wg)
	wg.Wait()
	c.stopGame()
}

func (c *Client) listenKB(wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		event, ok := <-c.kbCh
		if !ok {
			c.logger.Error("Keyboard events channel closed unexpectedly")
			return
		}
		if event.Err != nil {
			c.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
			return
		}
		if event.Key == keyboard.KeyCtrlC {
			return
		}
		switch c.state.get() {
		case lobby:
			switch event.Rune {
			case 'p':
				c.play(c.newLocal())
			case 'o':
				c.render.lobby(connecting())
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				g, err := c.newRemote(ctx)
				cancel()
				if err != nil {
					c.logger.Error("unable to start online game", slog.String("error", err.Error()))
					c.render.lobby(errorMessage())
					continue
				}
				c.play(g)
			case 'q':
				return
			}
		case playing:
			if event.Rune == 'q' {
				c.stopGame()
				c.state.set(lobby)
				c.render.lobby(defaultLobby())
				continue
			}
			if a, ok := keyAction(event); ok {
				c.game.Action(a)
			}
		}
	}
}

// keyAction maps a key to a game action: arrows shift the piece, a/d turn it
// about X, w/s about Y.
func keyAction(event keyboard.KeyEvent) (cube.Action, bool) {
	switch {
	case event.Key == keyboard.KeyArrowLeft:
		return cube.MoveLeft, true
	case event.Key == keyboard.KeyArrowRight:
		return cube.MoveRight, true
	case event.Key == keyboard.KeyArrowUp:
		return cube.MoveUp, true
	case event.Key == keyboard.KeyArrowDown:
		return cube.MoveDown, true
	case event.Rune == 'a':
		return cube.RotateLeft, true
	case event.Rune == 'd':
		return cube.RotateRight, true
	case event.Rune == 'w':
		return cube.RotateUp, true
	case event.Rune == 's':
		return cube.RotateDown, true
	case event.Key == keyboard.KeySpace:
		return cube.Drop, true
	case event.Rune == 'r':
		return cube.Reset, true
	}
	return "", false
}

func (c *Client) play(g tetrisGame) {
	c.stopGame()
	ctx, cancel := context.WithCancel(context.Background())
	c.game, c.cancel = g, cancel
	c.state.set(playing)
	c.render.reset()
	g.Start()
	go c.listenGame(ctx, g)
}

func (c *Client) stopGame() {
	if c.game == nil {
		return
	}
	c.cancel()
	c.game.Stop()
	c.game, c.cancel = nil, nil
}

func (c *Client) listenGame(ctx context.Context, g tetrisGame) {
	running := true
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-g.GetUpdate():
			if !ok {
				if ctx.Err() != nil {
					return
				}
				// only a remote game closes its updates, when the server went away.
				c.logger.Error("game update channel closed unexpectedly")
				g.Stop()
				c.state.set(lobby)
				c.render.lobby(errorMessage())
				return
			}
			c.render.game(u)
			if running && !u.Running {
				c.gameOver(u.Score)
			}
			running = u.Running
		}
	}
}

func (c *Client) gameOver(score int) {
	c.logger.Debug("game over", slog.Int("score", score))
	if c.scores == nil {
		c.render.banner(gameOver(score))
		return
	}
	rank, ok, err := c.scores.Record(score, time.Now())
	if err != nil {
		c.logger.Error("unable to record score", slog.String("error", err.Error()))
	}
	if ok {
		c.render.banner(highScore(score, rank))
		return
	}
	c.render.banner(gameOver(score))
}
