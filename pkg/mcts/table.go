package mcts

import (
	"fmt"
	"slices"
	"strings"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/samber/lo"
)

// Statistics of a single root move
type MoveStats struct {
	Move   uttt.Move `json:"move"`
	Visits int       `json:"visits"`
	Reward float64   `json:"reward"` // total reward, for the player to move at the root
}

func (s MoveStats) AvgReward() float64 {
	if s.Visits == 0 {
		return 0
	}
	return s.Reward / float64(s.Visits)
}

// Per-move statistics of the root's children
type Table map[uttt.Move]MoveStats

// Add other table's counters to this one
func (t Table) Merge(other Table) {
	for move, stats := range other {
		merged := t[move]
		merged.Move = move
		merged.Visits += stats.Visits
		merged.Reward += stats.Reward
		t[move] = merged
	}
}

// Total number of visits over all moves
func (t Table) Visits() int {
	return lo.SumBy(lo.Values(t), func(s MoveStats) int { return s.Visits })
}

// Moves ordered by index
func (t Table) Sorted() []MoveStats {
	moves := lo.Keys(t)
	slices.Sort(moves)
	return lo.Map(moves, func(m uttt.Move, _ int) MoveStats { return t[m] })
}

// Most visited move, ties go to the higher average reward, then to the lower move
func (t Table) Best() (MoveStats, bool) {
	var best MoveStats
	found := false

	for _, s := range t.Sorted() {
		if s.Visits == 0 {
			continue
		}
		if !found || s.Visits > best.Visits ||
			(s.Visits == best.Visits && s.AvgReward() > best.AvgReward()) {
			best = s
			found = true
		}
	}
	return best, found
}

func (t Table) String() string {
	lines := lo.Map(t.Sorted(), func(s MoveStats, _ int) string {
		return fmt.Sprintf("%s v=%d wr=%.3f", s.Move, s.Visits, s.AvgReward())
	})
	return strings.Join(lines, ", ")
}
