package controller

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/mww/club_ladder/model"
)

func (c *controller) GetLeaderboard(ctx context.Context, leagueID int32) ([]model.LeaguePlayer, error) {
	players, found, err := c.cache.GetLeaderboard(ctx, leagueID)
	if err != nil {
		log.Printf("error reading cached leaderboard for league %d: %v", leagueID, err)
	} else if found {
		return players, nil
	}

	// Read before the database so that an invalidation that lands while the board is being
	// built stops it from being cached.
	gen, genErr := c.cache.Generation(ctx, leagueID)
	if genErr != nil {
		log.Printf("error reading leaderboard generation for league %d: %v", leagueID, genErr)
	}

	if _, err := c.GetLeague(ctx, leagueID); err != nil {
		return nil, err
	}

	players, err = c.db.GetLeaguePlayers(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error getting league players: %w", err)
	}

	board := make([]model.LeaguePlayer, 0, len(players))
	for _, p := range players {
		if p.IsActive() {
			board = append(board, p)
		}
	}
	sortLeaderboard(board)

	if genErr == nil {
		if err := c.cache.SetLeaderboard(ctx, leagueID, gen, board); err != nil {
			log.Printf("error caching leaderboard for league %d: %v", leagueID, err)
		}
	}
	return board, nil
}

// Highest rating first. Ties go to the player with more wins, then by name.
func sortLeaderboard(players []model.LeaguePlayer) {
	slices.SortFunc(players, func(a, b model.LeaguePlayer) int {
		if a.Rating != b.Rating {
			return b.Rating - a.Rating
		}
		if a.Wins != b.Wins {
			return b.Wins - a.Wins
		}
		if c := strings.Compare(a.DisplayName, b.DisplayName); c != 0 {
			return c
		}
		return strings.Compare(a.UserID, b.UserID)
	})
}
