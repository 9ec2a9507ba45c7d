package rating

import (
	"fmt"
	"time"

	"github.com/mww/club_ladder/model"
)

// Update is the result of applying or reverting a single match. State is the new league
// snapshot, the input snapshot is never modified.
type Update struct {
	State    model.LeagueState
	PlayerA  model.LeaguePlayer
	PlayerB  model.LeaguePlayer
	Match    model.Match
	Reverted bool
}

// StatsUpdate returns the writes the store needs to perform to persist the update.
func (u *Update) StatsUpdate() *model.StatsUpdate {
	s := &model.StatsUpdate{
		Players: []model.LeaguePlayer{u.PlayerA, u.PlayerB},
	}
	m := u.Match
	if u.Reverted {
		s.Delete = &m
	} else {
		s.Insert = &m
	}
	return s
}

// ValidateResult checks that a result is self consistent: distinct players, non-negative
// scores that differ, and a winner who is one of the players and has the higher score.
func ValidateResult(r model.MatchResult) error {
	if r.PlayerA == "" || r.PlayerB == "" {
		return fmt.Errorf("%w: both players must be provided", ErrInvalidResult)
	}
	if r.PlayerA == r.PlayerB {
		return fmt.Errorf("%w: a player cannot play against themselves", ErrInvalidResult)
	}
	if r.ScoreA < 0 || r.ScoreB < 0 {
		return fmt.Errorf("%w: scores cannot be negative", ErrInvalidResult)
	}
	if r.ScoreA == r.ScoreB {
		return fmt.Errorf("%w: scores cannot be tied", ErrInvalidResult)
	}
	switch r.Winner {
	case r.PlayerA:
		if r.ScoreA < r.ScoreB {
			return fmt.Errorf("%w: winner must have the higher score", ErrInvalidResult)
		}
	case r.PlayerB:
		if r.ScoreB < r.ScoreA {
			return fmt.Errorf("%w: winner must have the higher score", ErrInvalidResult)
		}
	default:
		return fmt.Errorf("%w: winner %s did not play in the match", ErrInvalidResult, r.Winner)
	}
	return nil
}

// ApplyMatchResult applies a validated result to the league. Each side's rating change is
// computed from that side's own matches played, so the two changes are only exact
// negatives of each other when both players have played the same number of matches.
//
// The caller must make sure the same result is never applied twice, the id of the match
// is what makes it unique.
func ApplyMatchResult(state model.LeagueState, r model.MatchResult, matchID string, created time.Time) (*Update, error) {
	if err := ValidateResult(r); err != nil {
		return nil, err
	}
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id must be provided", ErrInvalidResult)
	}
	if state.FindMatch(matchID) >= 0 {
		return nil, fmt.Errorf("%w: match %s has already been recorded", ErrInvalidResult, matchID)
	}

	ia, err := findActivePlayer(&state, r.PlayerA)
	if err != nil {
		return nil, err
	}
	ib, err := findActivePlayer(&state, r.PlayerB)
	if err != nil {
		return nil, err
	}

	next := state.Clone()
	a := &next.Players[ia]
	b := &next.Players[ib]

	outcomeA, outcomeB := Win, Loss
	if r.Winner == r.PlayerB {
		outcomeA, outcomeB = Loss, Win
	}

	deltaA := ComputeRatingDelta(a.Rating, b.Rating, a.MatchesPlayed(), outcomeA)
	deltaB := ComputeRatingDelta(b.Rating, a.Rating, b.MatchesPlayed(), outcomeB)
	if err := checkSign(deltaA, outcomeA); err != nil {
		return nil, err
	}
	if err := checkSign(deltaB, outcomeB); err != nil {
		return nil, err
	}

	a.Rating += deltaA
	b.Rating += deltaB
	record(a, outcomeA)
	record(b, outcomeB)

	m := model.Match{
		ID:         matchID,
		LeagueID:   state.LeagueID,
		PlayerA:    r.PlayerA,
		PlayerB:    r.PlayerB,
		ScoreA:     r.ScoreA,
		ScoreB:     r.ScoreB,
		Winner:     r.Winner,
		EloChangeA: deltaA,
		EloChangeB: deltaB,
		Created:    created,
	}
	next.Matches = append(next.Matches, m)

	return &Update{
		State:   next,
		PlayerA: *a,
		PlayerB: *b,
		Match:   m,
	}, nil
}

// RevertMatchResult undoes a match that was previously applied to the league. It uses the
// rating changes stored on the match rather than recomputing them, since both players'
// ratings have likely moved since then.
func RevertMatchResult(state model.LeagueState, matchID string) (*Update, error) {
	mi := state.FindMatch(matchID)
	if mi < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMatch, matchID)
	}
	m := state.Matches[mi]

	// Inactive players can still have their old matches reverted.
	ia := state.FindPlayer(m.PlayerA)
	if ia < 0 {
		return nil, fmt.Errorf("%w: %s is no longer in the league", ErrUnknownPlayer, m.PlayerA)
	}
	ib := state.FindPlayer(m.PlayerB)
	if ib < 0 {
		return nil, fmt.Errorf("%w: %s is no longer in the league", ErrUnknownPlayer, m.PlayerB)
	}

	// A player that left and joined again has a new membership that the match never
	// counted towards.
	for _, i := range []int{ia, ib} {
		if p := state.Players[i]; m.Created.Before(p.Joined) {
			return nil, fmt.Errorf("%w: %s joined the league again after match %s", ErrUnknownPlayer, p.UserID, m.ID)
		}
	}

	next := state.Clone()
	a := &next.Players[ia]
	b := &next.Players[ib]

	if err := unrecord(a, m.Winner == a.UserID); err != nil {
		return nil, err
	}
	if err := unrecord(b, m.Winner == b.UserID); err != nil {
		return nil, err
	}
	a.Rating -= m.EloChangeA
	b.Rating -= m.EloChangeB

	next.Matches = append(next.Matches[:mi], next.Matches[mi+1:]...)

	return &Update{
		State:    next,
		PlayerA:  *a,
		PlayerB:  *b,
		Match:    m,
		Reverted: true,
	}, nil
}

func findActivePlayer(state *model.LeagueState, userID string) (int, error) {
	i := state.FindPlayer(userID)
	if i < 0 {
		return -1, fmt.Errorf("%w: %s is not in league %d", ErrUnknownPlayer, userID, state.LeagueID)
	}
	if !state.Players[i].IsActive() {
		return -1, fmt.Errorf("%w: %s is not active in league %d", ErrUnknownPlayer, userID, state.LeagueID)
	}
	return i, nil
}

func checkSign(delta int, o Outcome) error {
	if (o == Win && delta <= 0) || (o == Loss && delta >= 0) {
		return fmt.Errorf("%w: %d for a %s", ErrRoundingInvariant, delta, o)
	}
	return nil
}

func record(p *model.LeaguePlayer, o Outcome) {
	if o == Win {
		p.Wins++
	} else {
		p.Losses++
	}
}

func unrecord(p *model.LeaguePlayer, won bool) error {
	if won {
		if p.Wins == 0 {
			return fmt.Errorf("%w: %s has no wins to revert", ErrInvalidResult, p.UserID)
		}
		p.Wins--
	} else {
		if p.Losses == 0 {
			return fmt.Errorf("%w: %s has no losses to revert", ErrInvalidResult, p.UserID)
		}
		p.Losses--
	}
	return nil
}
