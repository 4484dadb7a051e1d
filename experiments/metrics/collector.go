package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric summarises a single decision.
type SearchMetric struct {
	Strategy   string
	Budget     time.Duration
	Duration   time.Duration
	Iterations int // BFS nodes popped, DLS stack pops or MCTS simulations
	Expansions int // successor states generated
	Rollouts   int // MCTS playouts run to a terminal or cutoff
	Depth      int // deepest completed DLS pass
	Fallback   bool
}

type MoveMetric struct {
	Step   int
	Agent  int
	Action string
	SearchMetric
}

type GameMetric struct {
	StartingAgent int
	Winner        int // -1 on a draw or an unfinished game
	Scores        []int
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	TotalMoves    int
	Invalid       int // actions replaced by the engine's fallback
}

type Collector interface {
	Start(strategy string, budget time.Duration)
	AddIteration()
	AddExpansion()
	AddRollout()
	SetDepth(depth int)
	SetFallback(value bool)
	Complete() SearchMetric
}

type collector struct {
	strategy   string
	budget     time.Duration
	startTime  time.Time
	iterations atomic.Int32
	expansions atomic.Int32
	rollouts   atomic.Int32
	depth      atomic.Int32
	fallback   atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(strategy string, budget time.Duration) {
	m.startTime = time.Now()
	m.strategy = strategy
	m.budget = budget
	m.iterations.Store(0)
	m.expansions.Store(0)
	m.rollouts.Store(0)
	m.depth.Store(0)
	m.fallback.Store(false)
}

func (m *collector) AddIteration() {
	m.iterations.Add(1)
}

func (m *collector) AddExpansion() {
	m.expansions.Add(1)
}

func (m *collector) AddRollout() {
	m.rollouts.Add(1)
}

func (m *collector) SetDepth(depth int) {
	m.depth.Store(int32(depth))
}

func (m *collector) SetFallback(value bool) {
	m.fallback.Store(value)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Strategy:   m.strategy,
		Budget:     m.budget,
		Duration:   time.Since(m.startTime),
		Iterations: int(m.iterations.Load()),
		Expansions: int(m.expansions.Load()),
		Rollouts:   int(m.rollouts.Load()),
		Depth:      int(m.depth.Load()),
		Fallback:   m.fallback.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(strategy string, budget time.Duration) {}
func (m *dummyCollector) AddIteration()                               {}
func (m *dummyCollector) AddExpansion()                               {}
func (m *dummyCollector) AddRollout()                                 {}
func (m *dummyCollector) SetDepth(depth int)                          {}
func (m *dummyCollector) SetFallback(value bool)                      {}
func (m *dummyCollector) Complete() SearchMetric                      { return SearchMetric{} }
