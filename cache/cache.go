package cache

import (
	"context"

	"github.com/mww/club_ladder/model"
)

// Cache holds computed leaderboards so that they don't need to be rebuilt from the
// database on every request. Entries must be invalidated whenever a league's players or
// matches change.
//
// Every invalidation bumps the league's generation. A leaderboard built from data read
// after Generation returned g is only stored if the generation is still g, so a board
// that was computed before an invalidation can never be cached after it.
type Cache interface {
	// Returns the leaderboard and true if it was found.
	GetLeaderboard(ctx context.Context, leagueID int32) ([]model.LeaguePlayer, bool, error)
	Generation(ctx context.Context, leagueID int32) (int64, error)
	// Stores the leaderboard unless the league was invalidated since generation was read.
	SetLeaderboard(ctx context.Context, leagueID int32, generation int64, players []model.LeaguePlayer) error
	Invalidate(ctx context.Context, leagueID int32) error
}

type nopCache struct{}

// NewNop returns a cache that never stores anything.
func NewNop() Cache {
	return nopCache{}
}

func (nopCache) GetLeaderboard(ctx context.Context, leagueID int32) ([]model.LeaguePlayer, bool, error) {
	return nil, false, nil
}

func (nopCache) Generation(ctx context.Context, leagueID int32) (int64, error) {
	return 0, nil
}

func (nopCache) SetLeaderboard(ctx context.Context, leagueID int32, generation int64, players []model.LeaguePlayer) error {
	return nil
}

func (nopCache) Invalidate(ctx context.Context, leagueID int32) error {
	return nil
}
