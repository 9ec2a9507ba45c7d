package mockcache

import (
	"context"

	"github.com/mww/club_ladder/model"
	"github.com/stretchr/testify/mock"
)

type Cache struct {
	mock.Mock
}

func (c *Cache) GetLeaderboard(ctx context.Context, leagueID int32) ([]model.LeaguePlayer, bool, error) {
	args := c.Called(ctx, leagueID)

	var r []model.LeaguePlayer
	if args.Get(0) != nil {
		r = args.Get(0).([]model.LeaguePlayer)
	}
	return r, args.Bool(1), args.Error(2)
}

func (c *Cache) Generation(ctx context.Context, leagueID int32) (int64, error) {
	args := c.Called(ctx, leagueID)
	return args.Get(0).(int64), args.Error(1)
}

func (c *Cache) SetLeaderboard(ctx context.Context, leagueID int32, generation int64, players []model.LeaguePlayer) error {
	args := c.Called(ctx, leagueID, generation, players)
	return args.Error(0)
}

func (c *Cache) Invalidate(ctx context.Context, leagueID int32) error {
	args := c.Called(ctx, leagueID)
	return args.Error(0)
}
