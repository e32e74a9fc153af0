package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"civiccents-service/internal/domain"
)

// Leaderboard ranks speed-challenge results in a Redis sorted set per game
// mode. Only a player's best score is kept.
type Leaderboard struct {
	client *redis.Client
	size   int64
}

func NewLeaderboard(client *redis.Client, size int) *Leaderboard {
	if size <= 0 {
		size = 10
	}
	return &Leaderboard{client: client, size: int64(size)}
}

// Record submits a final score. Lower scores than the player's existing best
// are ignored.
func (l *Leaderboard) Record(ctx context.Context, game, name string, score int) error {
	key := l.key(game)
	current, err := l.client.ZScore(ctx, key, name).Result()
	if err == nil && int(current) >= score {
		return nil
	}
	if err != nil && err != redis.Nil {
		return err
	}
	pipe := l.client.Pipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(score), Member: name})
	pipe.ZRemRangeByRank(ctx, key, 0, -(l.size + 1))
	_, err = pipe.Exec(ctx)
	return err
}

// Top returns the highest scores, best first.
func (l *Leaderboard) Top(ctx context.Context, game string) ([]domain.LeaderboardEntry, error) {
	results, err := l.client.ZRevRangeWithScores(ctx, l.key(game), 0, l.size-1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]domain.LeaderboardEntry, 0, len(results))
	for _, z := range results {
		name, _ := z.Member.(string)
		entries = append(entries, domain.LeaderboardEntry{Name: name, Score: int(z.Score)})
	}
	return entries, nil
}

func (l *Leaderboard) key(game string) string {
	return "leaderboard:" + game
}
