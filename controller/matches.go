package controller

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mww/club_ladder/db"
	"github.com/mww/club_ladder/model"
	"github.com/mww/club_ladder/rating"
)

// How long after a match is recorded one of its players can still delete it.
const retractionWindow = 12 * time.Hour

func (c *controller) RecordMatch(ctx context.Context, leagueID int32, reporterID string, result model.MatchResult) (*model.Match, error) {
	if err := rating.ValidateResult(result); err != nil {
		return nil, err
	}

	l, err := c.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if l.Archived {
		return nil, ErrLeagueArchived
	}

	id := uuid.NewString()
	created := c.clock.Now().UTC().Truncate(time.Microsecond)

	var match model.Match
	err = c.db.UpdateLeagueStats(ctx, leagueID, func(state *model.LeagueState) (*model.StatsUpdate, error) {
		if err := checkReporter(state, reporterID); err != nil {
			return nil, err
		}
		for _, userID := range []string{result.PlayerA, result.PlayerB} {
			if err := checkActive(state, userID); err != nil {
				return nil, err
			}
		}

		u, err := rating.ApplyMatchResult(*state, result, id, created)
		if err != nil {
			return nil, err
		}
		match = u.Match
		return u.StatsUpdate(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("error recording match: %w", err)
	}

	log.Printf("recorded match %s in league %d: %s beat %s (%+d/%+d)",
		match.ID, leagueID, match.Winner, match.Loser(), match.EloChange(match.Winner), match.EloChange(match.Loser()))
	c.invalidateLeaderboard(ctx, leagueID)
	return &match, nil
}

func (c *controller) DeleteMatch(ctx context.Context, leagueID int32, matchID, requesterID string) error {
	l, err := c.GetLeague(ctx, leagueID)
	if err != nil {
		return err
	}
	if l.Archived {
		return ErrLeagueArchived
	}

	m, err := c.db.GetMatch(ctx, leagueID, matchID)
	if err != nil {
		return fmt.Errorf("error looking up match: %w", err)
	}
	if !m.HasParticipant(requesterID) {
		return ErrNotParticipant
	}
	if c.clock.Now().Sub(m.Created) > retractionWindow {
		return ErrRetractionWindowClosed
	}

	err = c.db.UpdateLeagueStats(ctx, leagueID, func(state *model.LeagueState) (*model.StatsUpdate, error) {
		u, err := rating.RevertMatchResult(*state, matchID)
		if err != nil {
			return nil, err
		}
		return u.StatsUpdate(), nil
	})
	if err != nil {
		return fmt.Errorf("error deleting match: %w", err)
	}

	log.Printf("deleted match %s in league %d", matchID, leagueID)
	c.invalidateLeaderboard(ctx, leagueID)
	return nil
}

func (c *controller) GetMatches(ctx context.Context, leagueID int32) ([]model.Match, error) {
	if _, err := c.GetLeague(ctx, leagueID); err != nil {
		return nil, err
	}

	matches, err := c.db.GetMatches(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error getting matches: %w", err)
	}
	return matches, nil
}

func checkReporter(state *model.LeagueState, reporterID string) error {
	i := state.FindPlayer(reporterID)
	if i < 0 {
		return db.ErrNotMember
	}
	if !state.Players[i].IsActive() {
		return ErrInactivePlayer
	}
	return nil
}

func checkActive(state *model.LeagueState, userID string) error {
	i := state.FindPlayer(userID)
	if i < 0 {
		return fmt.Errorf("%w: %s", rating.ErrUnknownPlayer, userID)
	}
	if !state.Players[i].IsActive() {
		return fmt.Errorf("%w: %s", ErrInactivePlayer, userID)
	}
	return nil
}
