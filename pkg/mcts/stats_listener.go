package mcts

import (
	"time"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

type ListenerTreeStats struct {
	Worker     int
	Maxdepth   int
	Cycles     int
	Elapsed    time.Duration
	Cps        uint32
	Size       int
	BestMove   uttt.Move
	StopReason StopReason
}

// Convert engine counters to 'ListenerTreeStats' struct
func toListenerStats(engine *Engine) ListenerTreeStats {
	stats := ListenerTreeStats{
		Worker:     engine.id,
		Maxdepth:   engine.MaxDepth(),
		Cycles:     engine.Cycles(),
		Elapsed:    engine.Limiter.Elapsed(),
		Cps:        engine.Cps(),
		Size:       engine.Size(),
		BestMove:   uttt.MoveNone,
		StopReason: engine.Limiter.StopReason(),
	}
	if best, ok := engine.Table().Best(); ok {
		stats.BestMove = best.Move
	}
	return stats
}

// Listener function callback, will recieve current tree statistics, like
// max depth of tree, number of iterations so far
type ListenerFunc func(ListenerTreeStats)

type StatsListener struct {
	// called when 'max depth' increases
	onDepth ListenerFunc

	// called every N full iterations
	onCycle ListenerFunc
	nCycles int

	// called when the search stops (either by limiter or 'stop' signal)
	onStop ListenerFunc
}

func NewStatsListener() StatsListener {
	return StatsListener{nCycles: 1}
}

// Attach new on max depth change callback
func (listener *StatsListener) OnDepth(onDepth ListenerFunc) *StatsListener {
	listener.onDepth = onDepth
	return listener
}

// Attach new on iteration increase callback, this will slow down the search,
// because of the table evaluation, so use it with a large cycle interval
func (listener *StatsListener) OnCycle(onCycle ListenerFunc) *StatsListener {
	listener.onCycle = onCycle
	return listener
}

func (listener *StatsListener) SetCycleInterval(n int) *StatsListener {
	listener.nCycles = max(n, 1)
	return listener
}

// Attach 'on search end' callback, makes 'StopReason' available in the stats
func (listener *StatsListener) OnStop(onStop ListenerFunc) *StatsListener {
	listener.onStop = onStop
	return listener
}

func (listener *StatsListener) invoke(f ListenerFunc, engine *Engine) {
	if f != nil {
		f(toListenerStats(engine))
	}
}

func (listener *StatsListener) invokeCycle(engine *Engine) {
	if listener.onCycle != nil && engine.Cycles()%listener.nCycles == 0 {
		listener.onCycle(toListenerStats(engine))
	}
}
