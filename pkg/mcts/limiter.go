package mcts

import (
	"context"
	"sync/atomic"
	"time"
)

type StopReason int

const (
	StopNone      StopReason = 0
	StopInterrupt StopReason = 1 // Stopped by user, by calling .Stop() or context cancellation
	StopMovetime  StopReason = 2 // Time limit reached
	StopCycles    StopReason = 4 // Cycle limit reached
)

func (sr StopReason) String() string {
	if sr == StopNone {
		return "None"
	}

	reasons := []struct {
		flag StopReason
		name string
	}{
		{StopInterrupt, "Interrupt"},
		{StopMovetime, "Movetime"},
		{StopCycles, "Cycles"},
	}

	var result string
	for _, r := range reasons {
		if sr&r.flag == r.flag {
			if result != "" {
				result += "|"
			}
			result += r.name
		}
	}

	return result
}

type LimiterLike interface {
	SetContext(ctx context.Context)
	SetLimits(*Limits)
	Limits() *Limits
	// Time since the last 'Reset' call
	Elapsed() time.Duration
	// Set the stop signal, will cause to exit search if set to true
	SetStop(bool)
	// Get the stop signal
	Stop() bool
	// Reset the limiter's flags, called on search setup
	Reset()
	// Wheter the search may run another iteration, checked between iterations
	Ok(cycles uint32) bool
	// Get the reason why the search was stopped, valid after search ends
	StopReason() StopReason
	// Evaluate stop reason based on current state, and set it internally
	EvaluateStopReason(cycles uint32)
}

type Limiter struct {
	limits   *Limits
	start    time.Time
	movetime time.Duration
	stop     atomic.Bool
	reason   StopReason
	ctx      context.Context
}

func NewLimiter() *Limiter {
	return &Limiter{
		limits: DefaultLimits(),
		start:  time.Now(),
		ctx:    context.Background(),
	}
}

func (l *Limiter) Reset() {
	l.start = time.Now()
	l.stop.Store(false)
	l.reason = StopNone

	l.movetime = -1
	if l.limits.Movetime >= 0 {
		l.movetime = time.Duration(l.limits.Movetime) * time.Millisecond
	}
}

func (l *Limiter) SetContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	l.ctx = ctx
}

func (l *Limiter) SetStop(v bool) {
	l.stop.Store(v)
}

func (l *Limiter) Stop() bool {
	select {
	case <-l.ctx.Done():
		l.stop.Store(true)
	default:
	}
	return l.stop.Load()
}

func (l *Limiter) SetLimits(limits *Limits) {
	l.limits = limits
}

func (l *Limiter) Limits() *Limits {
	return l.limits
}

func (l *Limiter) Elapsed() time.Duration {
	return time.Since(l.start)
}

func (l *Limiter) StopReason() StopReason {
	return l.reason
}

func (l *Limiter) limitMask(cycles uint32) StopReason {
	reason := StopNone
	if l.Stop() {
		reason |= StopInterrupt
	}

	// If infinite, only the stop signal ends the search
	if l.limits.Infinite {
		return reason
	}

	if l.movetime >= 0 && l.Elapsed() >= l.movetime {
		reason |= StopMovetime
	}
	if cycles >= l.limits.Cycles {
		reason |= StopCycles
	}
	return reason
}

func (l *Limiter) EvaluateStopReason(cycles uint32) {
	l.reason = l.limitMask(cycles)
}

func (l *Limiter) Ok(cycles uint32) bool {
	return l.limitMask(cycles) == StopNone
}
