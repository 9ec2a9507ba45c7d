package model

import "time"

type League struct {
	ID          int32     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Public      bool      `json:"public"`
	InviteCode  string    `json:"invite_code,omitempty"` // Empty for public leagues
	OwnerID     string    `json:"owner_id"`
	Archived    bool      `json:"archived"`
	Created     time.Time `json:"created"`
}

// LeagueState is a snapshot of everything the rating engine needs to know about a
// single league. It is loaded by the store, handed to the engine, and the result is
// written back by the store.
type LeagueState struct {
	LeagueID int32
	Players  []LeaguePlayer
	Matches  []Match
}

// FindPlayer returns the index of the player with the user id, or -1.
func (s *LeagueState) FindPlayer(userID string) int {
	for i := range s.Players {
		if s.Players[i].UserID == userID {
			return i
		}
	}
	return -1
}

// FindMatch returns the index of the match with the id, or -1.
func (s *LeagueState) FindMatch(matchID string) int {
	for i := range s.Matches {
		if s.Matches[i].ID == matchID {
			return i
		}
	}
	return -1
}

// Clone makes a copy of the state that shares nothing with the original.
func (s LeagueState) Clone() LeagueState {
	c := LeagueState{LeagueID: s.LeagueID}
	if s.Players != nil {
		c.Players = make([]LeaguePlayer, len(s.Players))
		copy(c.Players, s.Players)
	}
	if s.Matches != nil {
		c.Matches = make([]Match, len(s.Matches))
		copy(c.Matches, s.Matches)
	}
	return c
}

// StatsUpdate is the set of writes produced by recording or retracting a single match.
// Either all of it is persisted or none of it is.
type StatsUpdate struct {
	Players []LeaguePlayer
	Insert  *Match
	Delete  *Match
}
