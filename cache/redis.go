package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mww/club_ladder/model"
	"github.com/redis/go-redis/v9"
)

const leaderboardTTL = 10 * time.Minute

type redisCache struct {
	client *redis.Client
}

func New(addr, password string, db int) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Check connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	return &redisCache{client: client}, nil
}

func (c *redisCache) GetLeaderboard(ctx context.Context, leagueID int32) ([]model.LeaguePlayer, bool, error) {
	data, err := c.client.Get(ctx, leaderboardKey(leagueID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("error reading leaderboard %d: %w", leagueID, err)
	}

	var players []model.LeaguePlayer
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, false, fmt.Errorf("error decoding leaderboard %d: %w", leagueID, err)
	}
	return players, true, nil
}

func (c *redisCache) Generation(ctx context.Context, leagueID int32) (int64, error) {
	gen, err := readGeneration(ctx, c.client, leagueID)
	if err != nil {
		return 0, fmt.Errorf("error reading leaderboard generation %d: %w", leagueID, err)
	}
	return gen, nil
}

func (c *redisCache) SetLeaderboard(ctx context.Context, leagueID int32, generation int64, players []model.LeaguePlayer) error {
	data, err := json.Marshal(players)
	if err != nil {
		return fmt.Errorf("error encoding leaderboard %d: %w", leagueID, err)
	}

	// The write only goes through if nobody touched the generation key between the
	// check and the exec.
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		gen, err := readGeneration(ctx, tx, leagueID)
		if err != nil {
			return err
		}
		if gen != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, leaderboardKey(leagueID), data, leaderboardTTL)
			return nil
		})
		return err
	}, generationKey(leagueID))

	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error writing leaderboard %d: %w", leagueID, err)
	}
	return nil
}

func (c *redisCache) Invalidate(ctx context.Context, leagueID int32) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(leagueID))
		pipe.Del(ctx, leaderboardKey(leagueID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("error invalidating leaderboard %d: %w", leagueID, err)
	}
	return nil
}

func readGeneration(ctx context.Context, c redis.Cmdable, leagueID int32) (int64, error) {
	gen, err := c.Get(ctx, generationKey(leagueID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func leaderboardKey(leagueID int32) string {
	return fmt.Sprintf("leaderboard:%d", leagueID)
}

func generationKey(leagueID int32) string {
	return fmt.Sprintf("leaderboard:%d:gen", leagueID)
}
