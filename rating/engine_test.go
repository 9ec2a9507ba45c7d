package rating

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/mww/club_ladder/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2024, 9, 14, 10, 0, 0, 0, time.UTC)

func newState(ids ...string) model.LeagueState {
	s := model.LeagueState{LeagueID: 7}
	for _, id := range ids {
		s.Players = append(s.Players, model.LeaguePlayer{
			LeagueID:    7,
			UserID:      id,
			DisplayName: "Player " + id,
			Rating:      model.InitialRating,
			Status:      model.STATUS_ACTIVE,
		})
	}
	return s
}

func player(t *testing.T, s model.LeagueState, id string) model.LeaguePlayer {
	i := s.FindPlayer(id)
	require.GreaterOrEqual(t, i, 0, "player %s not found", id)
	return s.Players[i]
}

func TestValidateResult(t *testing.T) {
	tests := map[string]struct {
		r     model.MatchResult
		valid bool
	}{
		"a wins":            {r: model.MatchResult{PlayerA: "a", PlayerB: "b", ScoreA: 3, ScoreB: 1, Winner: "a"}, valid: true},
		"b wins":            {r: model.MatchResult{PlayerA: "a", PlayerB: "b", ScoreA: 0, ScoreB: 3, Winner: "b"}, valid: true},
		"tied":              {r: model.MatchResult{PlayerA: "a", PlayerB: "b", ScoreA: 2, ScoreB: 2, Winner: "a"}},
		"winner not player": {r: model.MatchResult{PlayerA: "a", PlayerB: "b", ScoreA: 3, ScoreB: 1, Winner: "c"}},
		"winner lower":      {r: model.MatchResult{PlayerA: "a", PlayerB: "b", ScoreA: 1, ScoreB: 3, Winner: "a"}},
		"negative score":    {r: model.MatchResult{PlayerA: "a", PlayerB: "b", ScoreA: 3, ScoreB: -1, Winner: "a"}},
		"same player":       {r: model.MatchResult{PlayerA: "a", PlayerB: "a", ScoreA: 3, ScoreB: 1, Winner: "a"}},
		"missing player":    {r: model.MatchResult{PlayerA: "a", PlayerB: "", ScoreA: 3, ScoreB: 1, Winner: "a"}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := ValidateResult(tc.r)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidResult)
			}
		})
	}
}

func TestApplyAndRevert_scenario(t *testing.T) {
	s0 := newState("a", "b")

	first, err := ApplyMatchResult(s0, model.MatchResult{PlayerA: "a", PlayerB: "b", ScoreA: 3, ScoreB: 1, Winner: "a"}, "m1", created)
	require.NoError(t, err)
	assert.Equal(t, 16, first.Match.EloChangeA)
	assert.Equal(t, -16, first.Match.EloChangeB)
	assert.Equal(t, model.LeaguePlayer{LeagueID: 7, UserID: "a", DisplayName: "Player a", Rating: 1016, Wins: 1, Status: model.STATUS_ACTIVE}, first.PlayerA)
	assert.Equal(t, model.LeaguePlayer{LeagueID: 7, UserID: "b", DisplayName: "Player b", Rating: 984, Losses: 1, Status: model.STATUS_ACTIVE}, first.PlayerB)
	assert.Equal(t, first.PlayerA, player(t, first.State, "a"))
	assert.Equal(t, first.PlayerB, player(t, first.State, "b"))
	assert.Len(t, first.State.Matches, 1)

	s1 := first.State
	second, err := ApplyMatchResult(s1, model.MatchResult{PlayerA: "a", PlayerB: "b", ScoreA: 3, ScoreB: 0, Winner: "a"}, "m2", created.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 15, second.Match.EloChangeA)
	assert.Equal(t, -15, second.Match.EloChangeB)
	assert.Equal(t, 1031, second.PlayerA.Rating)
	assert.Equal(t, 969, second.PlayerB.Rating)

	reverted, err := RevertMatchResult(second.State, "m2")
	require.NoError(t, err)
	assert.True(t, reverted.Reverted)
	assert.Equal(t, s1.Players, reverted.State.Players)
	assert.Equal(t, model.LeaguePlayer{LeagueID: 7, UserID: "a", DisplayName: "Player a", Rating: 1016, Wins: 1, Status: model.STATUS_ACTIVE}, reverted.PlayerA)
	assert.Equal(t, model.LeaguePlayer{LeagueID: 7, UserID: "b", DisplayName: "Player b", Rating: 984, Losses: 1, Status: model.STATUS_ACTIVE}, reverted.PlayerB)
	assert.Equal(t, []string{"m1"}, matchIDs(reverted.State))
}

func TestApplyMatchResult_doesNotModifyInput(t *testing.T) {
	s := newState("a", "b")
	s.Matches = make([]model.Match, 0, 10) // spare capacity must not be written into

	u, err := ApplyMatchResult(s, model.MatchResult{PlayerA: "a", PlayerB: "b", ScoreA: 11, ScoreB: 9, Winner: "b"}, "m1", created)
	require.NoError(t, err)

	assert.Equal(t, newState("a", "b").Players, s.Players)
	assert.Len(t, s.Matches, 0)
	assert.Len(t, u.State.Matches, 1)
	assert.Empty(t, s.Matches[:1][0].ID)
}

func TestApplyMatchResult_asymmetricMatchCounts(t *testing.T) {
	s := newState("rookie", "veteran")
	s.Players[1].Wins = 20
	s.Players[1].Losses = 20

	u, err := ApplyMatchResult(s, model.MatchResult{PlayerA: "rookie", PlayerB: "veteran", ScoreA: 3, ScoreB: 2, Winner: "rookie"}, "m1", created)
	require.NoError(t, err)

	// Each side uses their own K factor so the changes are not mirror images.
	assert.Equal(t, 16, u.Match.EloChangeA)
	assert.Equal(t, -8, u.Match.EloChangeB)
	assert.Equal(t, 1016, u.PlayerA.Rating)
	assert.Equal(t, 992, u.PlayerB.Rating)
	assert.Equal(t, 21, u.PlayerB.Losses)

	r, err := RevertMatchResult(u.State, "m1")
	require.NoError(t, err)
	assert.Equal(t, s.Players, r.State.Players)
}

func TestApplyMatchResult_errors(t *testing.T) {
	s := newState("a", "b", "c")
	s.Players[2].Status = model.STATUS_INACTIVE
	s.Matches = []model.Match{{ID: "dup", PlayerA: "a", PlayerB: "b"}}

	tests := map[string]struct {
		r     model.MatchResult
		id    string
		exErr error
	}{
		"invalid":      {r: model.MatchResult{PlayerA: "a", PlayerB: "b", ScoreA: 1, ScoreB: 1, Winner: "a"}, id: "m", exErr: ErrInvalidResult},
		"unknown a":    {r: model.MatchResult{PlayerA: "x", PlayerB: "b", ScoreA: 3, ScoreB: 1, Winner: "x"}, id: "m", exErr: ErrUnknownPlayer},
		"unknown b":    {r: model.MatchResult{PlayerA: "a", PlayerB: "y", ScoreA: 3, ScoreB: 1, Winner: "a"}, id: "m", exErr: ErrUnknownPlayer},
		"inactive":     {r: model.MatchResult{PlayerA: "a", PlayerB: "c", ScoreA: 3, ScoreB: 1, Winner: "a"}, id: "m", exErr: ErrUnknownPlayer},
		"duplicate id": {r: model.MatchResult{PlayerA: "a", PlayerB: "b", ScoreA: 3, ScoreB: 1, Winner: "a"}, id: "dup", exErr: ErrInvalidResult},
		"missing id":   {r: model.MatchResult{PlayerA: "a", PlayerB: "b", ScoreA: 3, ScoreB: 1, Winner: "a"}, id: "", exErr: ErrInvalidResult},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			u, err := ApplyMatchResult(s, tc.r, tc.id, created)
			assert.Nil(t, u)
			assert.ErrorIs(t, err, tc.exErr)
		})
	}
}

func TestRevertMatchResult_errors(t *testing.T) {
	s := newState("a", "b")
	u, err := ApplyMatchResult(s, model.MatchResult{PlayerA: "a", PlayerB: "b", ScoreA: 3, ScoreB: 1, Winner: "a"}, "m1", created)
	require.NoError(t, err)

	_, err = RevertMatchResult(u.State, "nope")
	assert.ErrorIs(t, err, ErrUnknownMatch)

	// b left the league
	gone := u.State.Clone()
	gone.Players = gone.Players[:1]
	_, err = RevertMatchResult(gone, "m1")
	assert.ErrorIs(t, err, ErrUnknownPlayer)

	// records that do not add up are refused instead of going negative
	corrupt := u.State.Clone()
	corrupt.Players[0].Wins = 0
	_, err = RevertMatchResult(corrupt, "m1")
	assert.ErrorIs(t, err, ErrInvalidResult)
}

func TestRevertMatchResult_inactivePlayer(t *testing.T) {
	s := newState("a", "b")
	u, err := ApplyMatchResult(s, model.MatchResult{PlayerA: "a", PlayerB: "b", ScoreA: 3, ScoreB: 1, Winner: "a"}, "m1", created)
	require.NoError(t, err)

	state := u.State.Clone()
	state.Players[1].Status = model.STATUS_INACTIVE

	r, err := RevertMatchResult(state, "m1")
	require.NoError(t, err)
	assert.Equal(t, model.InitialRating, r.PlayerB.Rating)
	assert.Equal(t, model.STATUS_INACTIVE, r.PlayerB.Status)
}

func TestRevertMatchResult_rejoinedPlayer(t *testing.T) {
	s := newState("a", "b", "c")
	first, err := ApplyMatchResult(s, model.MatchResult{PlayerA: "a", PlayerB: "b", ScoreA: 3, ScoreB: 1, Winner: "a"}, "m1", created)
	require.NoError(t, err)

	// b leaves and joins again, starting over with a fresh membership.
	state := first.State.Clone()
	i := state.FindPlayer("b")
	state.Players[i] = model.NewLeaguePlayer(7, &model.User{ID: "b", DisplayName: "Player b"})
	state.Players[i].Joined = created.Add(time.Minute)

	second, err := ApplyMatchResult(state, model.MatchResult{PlayerA: "c", PlayerB: "b", ScoreA: 3, ScoreB: 1, Winner: "c"}, "m2", created.Add(2*time.Minute))
	require.NoError(t, err)
	b := player(t, second.State, "b")
	require.Equal(t, 1, b.Losses)

	_, err = RevertMatchResult(second.State, "m1")
	assert.ErrorIs(t, err, ErrUnknownPlayer)

	// The match from the new membership still reverts cleanly.
	r, err := RevertMatchResult(second.State, "m2")
	require.NoError(t, err)
	assert.Equal(t, model.InitialRating, r.PlayerB.Rating)
	assert.Equal(t, 0, r.PlayerB.MatchesPlayed())

	// A match recorded at the same instant the player joined belongs to the membership.
	same := newState("a", "b")
	same.Players[1].Joined = created
	u, err := ApplyMatchResult(same, model.MatchResult{PlayerA: "a", PlayerB: "b", ScoreA: 3, ScoreB: 1, Winner: "a"}, "m3", created)
	require.NoError(t, err)
	_, err = RevertMatchResult(u.State, "m3")
	assert.NoError(t, err)
}

// Applying a match, then many unrelated ones, then reverting the first must leave the
// two players exactly where the later matches alone would have put them.
func TestRoundTrip_withInterveningMatches(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f"}
	rnd := rand.New(rand.NewSource(42))

	for run := 0; run < 25; run++ {
		t.Run(fmt.Sprint(run), func(t *testing.T) {
			state := newState(ids...)
			for i := range state.Players {
				state.Players[i].Rating = 800 + rnd.Intn(600)
				state.Players[i].Wins = rnd.Intn(40)
				state.Players[i].Losses = rnd.Intn(40)
			}
			before := state.Clone()

			// The match that will later be retracted.
			target, err := ApplyMatchResult(state, model.MatchResult{PlayerA: "a", PlayerB: "b", ScoreA: 3, ScoreB: 2, Winner: "b"}, "target", created)
			require.NoError(t, err)
			state = target.State

			n := 1 + rnd.Intn(30)
			for i := 0; i < n; i++ {
				pa, pb := ids[rnd.Intn(len(ids))], ids[rnd.Intn(len(ids))]
				if pa == pb {
					continue
				}
				r := model.MatchResult{PlayerA: pa, PlayerB: pb, ScoreA: 3, ScoreB: rnd.Intn(3), Winner: pa}
				if rnd.Intn(2) == 0 {
					r.ScoreA, r.ScoreB, r.Winner = r.ScoreB, r.ScoreA, pb
				}
				u, err := ApplyMatchResult(state, r, fmt.Sprintf("m%d", i), created.Add(time.Duration(i)*time.Minute))
				require.NoError(t, err)
				state = u.State
			}

			reverted, err := RevertMatchResult(state, "target")
			require.NoError(t, err)
			state = reverted.State

			// Replay the same unrelated matches on the untouched state by applying their stored deltas.
			expected := before.Clone()
			for _, m := range state.Matches {
				ia, ib := expected.FindPlayer(m.PlayerA), expected.FindPlayer(m.PlayerB)
				expected.Players[ia].Rating += m.EloChangeA
				expected.Players[ib].Rating += m.EloChangeB
				if m.Winner == m.PlayerA {
					expected.Players[ia].Wins++
					expected.Players[ib].Losses++
				} else {
					expected.Players[ib].Wins++
					expected.Players[ia].Losses++
				}
			}
			assert.Equal(t, expected.Players, state.Players)
			assert.NotContains(t, matchIDs(state), "target")
		})
	}
}

func TestRoundTrip_immediate(t *testing.T) {
	state := newState("a", "b")
	state.Players[0].Rating = 1234
	state.Players[0].Wins = 31
	state.Players[1].Rating = 876
	state.Players[1].Losses = 2

	u, err := ApplyMatchResult(state, model.MatchResult{PlayerA: "a", PlayerB: "b", ScoreA: 0, ScoreB: 21, Winner: "b"}, "m1", created)
	require.NoError(t, err)
	r, err := RevertMatchResult(u.State, "m1")
	require.NoError(t, err)

	assert.Equal(t, state.Players, r.State.Players)
	assert.Empty(t, r.State.Matches)
	assert.Equal(t, u.Match, r.Match)
}

func TestUpdate_StatsUpdate(t *testing.T) {
	u, err := ApplyMatchResult(newState("a", "b"), model.MatchResult{PlayerA: "a", PlayerB: "b", ScoreA: 3, ScoreB: 1, Winner: "a"}, "m1", created)
	require.NoError(t, err)

	su := u.StatsUpdate()
	assert.Equal(t, []model.LeaguePlayer{u.PlayerA, u.PlayerB}, su.Players)
	require.NotNil(t, su.Insert)
	assert.Equal(t, "m1", su.Insert.ID)
	assert.Nil(t, su.Delete)

	r, err := RevertMatchResult(u.State, "m1")
	require.NoError(t, err)
	su = r.StatsUpdate()
	assert.Nil(t, su.Insert)
	require.NotNil(t, su.Delete)
	assert.Equal(t, "m1", su.Delete.ID)
}

func TestRoundingInvariantIsNeverReturned(t *testing.T) {
	s := newState("a", "b")
	s.Players[0].Rating = 5000
	s.Players[1].Rating = 0

	_, err := ApplyMatchResult(s, model.MatchResult{PlayerA: "a", PlayerB: "b", ScoreA: 3, ScoreB: 1, Winner: "a"}, "m1", created)
	assert.False(t, errors.Is(err, ErrRoundingInvariant))
	assert.NoError(t, err)
}

func matchIDs(s model.LeagueState) []string {
	ids := make([]string, 0, len(s.Matches))
	for _, m := range s.Matches {
		ids = append(ids, m.ID)
	}
	return ids
}
