package cube

import (
	"sync"
	"time"
)

// MockTicker is a manual implementation of the Ticker interface.
type MockTicker struct {
	ch          chan time.Time
	stop, reset bool
	mu          sync.Mutex
}

func NewMockTicker() *MockTicker          { return &MockTicker{ch: make(chan time.Time)} }
func (m *MockTicker) C() <-chan time.Time { return m.ch }
func (m *MockTicker) Tick()               { m.ch <- time.Now() }
func (m *MockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}
func (m *MockTicker) Reset(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset = true
}
func (m *MockTicker) IsReset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reset
}
func (m *MockTicker) IsStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}

// ManualClock only moves when told to.
type ManualClock struct {
	now time.Time
	mu  sync.Mutex
}

func NewManualClock() *ManualClock { return &ManualClock{now: time.Unix(0, 0)} }

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SequenceRandom returns the given shapes in order and repeats the last one.
type SequenceRandom struct {
	seq []Shape
	i   int
	mu  sync.Mutex
}

func NewSequenceRandom(seq ...Shape) *SequenceRandom {
	if len(seq) == 0 {
		seq = []Shape{Square}
	}
	return &SequenceRandom{seq: seq}
}

func (r *SequenceRandom) IntRange(lo, hi int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := int(r.seq[min(r.i, len(r.seq)-1)])
	r.i++
	return max(lo, min(v, hi))
}

// NewTestLogic creates a default sized game whose pieces come from seq and
// whose clock is driven by hand. The first shape is the falling piece, the
// second one the next piece.
func NewTestLogic(seq ...Shape) (*Logic, *ManualClock) {
	clock := NewManualClock()
	return NewLogic(DefaultConfig(), NewSequenceRandom(seq...), clock), clock
}

// NewTestGame creates a game around a test logic and returns the manual ticker driving it.
func NewTestGame(l *Logic) (*Game, *MockTicker) {
	ticker := NewMockTicker()
	return NewConfigurableGame(l, ticker, nil), ticker
}

// Fill occupies every cell of layer i.
func (l *Logic) Fill(i int) {
	for x := range l.cfg.Width {
		for y := range l.cfg.Height {
			l.layers[i].NewBlock(x, y)
		}
	}
}
