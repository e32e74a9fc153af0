package memory

import (
	"context"
	"sort"
	"sync"

	"civiccents-service/internal/domain"
)

// Leaderboard ranks speed-challenge results in memory, keeping only each
// player's best score.
type Leaderboard struct {
	size int

	mu     sync.Mutex
	scores map[string]map[string]int
}

func NewLeaderboard(size int) *Leaderboard {
	if size <= 0 {
		size = 10
	}
	return &Leaderboard{size: size, scores: make(map[string]map[string]int)}
}

func (l *Leaderboard) Record(_ context.Context, game, name string, score int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	board := l.scores[game]
	if board == nil {
		board = make(map[string]int)
		l.scores[game] = board
	}
	if score > board[name] {
		board[name] = score
	}
	return nil
}

func (l *Leaderboard) Top(_ context.Context, game string) ([]domain.LeaderboardEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries := make([]domain.LeaderboardEntry, 0, len(l.scores[game]))
	for name, score := range l.scores[game] {
		entries = append(entries, domain.LeaderboardEntry{Name: name, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Name < entries[j].Name
	})
	if len(entries) > l.size {
		entries = entries[:l.size]
	}
	return entries, nil
}
