package cube

import (
	"log/slog"
	"sync"
	"time"
)

type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) *wrappedTicker {
	return &wrappedTicker{ticker: time.NewTicker(d)}
}

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

// Game drives a Logic from a single goroutine: ticker ticks call Update and
// player actions are applied in between, so the Logic never sees concurrent
// calls. Every change is published as a State on GetUpdate.
type Game struct {
	updateCh  chan *State
	actionCh  chan request
	startCh   chan struct{}
	quitCh    chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once

	logic  *Logic
	ticker Ticker
	logger *slog.Logger
	mu     sync.RWMutex
}

// NewGame returns a game paced by the wall clock with a time-seeded generator.
func NewGame(cfg Config, l *slog.Logger) *Game {
	return NewSeededGame(cfg, time.Now().UnixNano(), l)
}

// NewSeededGame replays the same piece sequence for the same seed.
func NewSeededGame(cfg Config, seed int64, l *slog.Logger) *Game {
	logic := NewLogic(cfg, NewRandom(seed), SystemClock())
	return NewConfigurableGame(logic, newWrappedTicker(cfg.TickInterval), l)
}

func NewConfigurableGame(logic *Logic, ticker Ticker, l *slog.Logger) *Game {
	if l == nil {
		l = slog.Default()
	}
	return &Game{
		updateCh: make(chan *State, 1),
		actionCh: make(chan request),
		startCh:  make(chan struct{}),
		quitCh:   make(chan struct{}),
		logic:    logic,
		ticker:   ticker,
		logger:   l,
	}
}

// Start runs the game loop until Stop is called. Starting twice is a no-op.
func (g *Game) Start() {
	g.startOnce.Do(func() {
		g.publish()
		g.ticker.Reset(g.logic.Config().TickInterval)
		close(g.startCh)
		g.logger.Debug("game started")
		go g.listen()
	})
}

func (g *Game) Stop() {
	g.stopOnce.Do(func() {
		g.ticker.Stop()
		close(g.quitCh)
		g.logger.Debug("game stopped")
	})
}

type request struct {
	action Action
	done   chan struct{}
}

// Action hands a player action to the game loop. It returns once the loop
// applied it, so a Read right after sees its effect, or straight away when the
// game was stopped. Before Start there is no loop and the action is applied
// in place.
func (g *Game) Action(a Action) {
	select {
	case <-g.startCh:
	default:
		g.apply(a)
		g.publish()
		return
	}

	r := request{action: a, done: make(chan struct{})}
	select {
	case g.actionCh <- r:
	case <-g.quitCh:
		return
	}
	select {
	case <-r.done:
	case <-g.quitCh:
	}
}

func (g *Game) GetUpdate() <-chan *State { return g.updateCh }

// Read returns a copy of the current state that's safe to read concurrently.
func (g *Game) Read() *State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.logic.State()
}

func (g *Game) listen() {
	for {
		select {
		case <-g.ticker.C():
			g.mu.Lock()
			before := g.logic.fingerprint()
			g.logic.Update()
			after := g.logic.fingerprint()
			g.mu.Unlock()
			if before == after {
				// gravity didn't kick in, nothing to redraw.
				continue
			}
			if before.running && !after.running {
				g.logger.Debug("game over", slog.Int("score", after.score))
			}
		case r := <-g.actionCh:
			ok := g.apply(r.action)
			close(r.done)
			if !ok {
				continue
			}
		case <-g.quitCh:
			return
		}
		g.publish()
	}
}

func (g *Game) apply(a Action) bool {
	g.mu.Lock()
	err := ApplyAction(g.logic, a)
	g.mu.Unlock()
	if err != nil {
		g.logger.Error("unable to apply action", slog.String("error", err.Error()))
		return false
	}
	return true
}

// Config is the configuration the game was built with.
func (g *Game) Config() Config { return g.logic.Config() }

// publish replaces any state the reader hasn't picked up yet.
func (g *Game) publish() {
	s := g.Read()
	for {
		select {
		case g.updateCh <- s:
			return
		default:
		}
		select {
		case <-g.updateCh:
		default:
		}
	}
}

type fingerprint struct {
	piece   Piece
	score   int
	running bool
}

func (l *Logic) fingerprint() fingerprint {
	return fingerprint{piece: *l.piece, score: l.score, running: l.running}
}
