package model

import "time"

// Match is a recorded result between two players of a league. The rating changes are
// frozen on the record so that the match can be reverted exactly later on.
type Match struct {
	ID         string    `json:"id"`
	LeagueID   int32     `json:"league_id"`
	PlayerA    string    `json:"player_a"`
	PlayerB    string    `json:"player_b"`
	ScoreA     int       `json:"score_a"`
	ScoreB     int       `json:"score_b"`
	Winner     string    `json:"winner"`
	EloChangeA int       `json:"elo_change_a"`
	EloChangeB int       `json:"elo_change_b"`
	Created    time.Time `json:"created"`
}

// Loser returns the user id of the participant that did not win.
func (m *Match) Loser() string {
	if m.Winner == m.PlayerA {
		return m.PlayerB
	}
	return m.PlayerA
}

// HasParticipant returns true if the user played in the match.
func (m *Match) HasParticipant(userID string) bool {
	return m.PlayerA == userID || m.PlayerB == userID
}

// EloChange returns the rating change stored for the participant.
func (m *Match) EloChange(userID string) int {
	if userID == m.PlayerA {
		return m.EloChangeA
	}
	if userID == m.PlayerB {
		return m.EloChangeB
	}
	return 0
}

// MatchResult is a reported result before it has been applied to a league.
type MatchResult struct {
	PlayerA string `json:"player_a"`
	PlayerB string `json:"player_b"`
	ScoreA  int    `json:"score_a"`
	ScoreB  int    `json:"score_b"`
	Winner  string `json:"winner"`
}
