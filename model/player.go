package model

import (
	"strings"
	"time"
)

const InitialRating = 1000

type PlayerStatus string

const (
	STATUS_UNKNOWN  PlayerStatus = ""
	STATUS_ACTIVE   PlayerStatus = "active"
	STATUS_INACTIVE PlayerStatus = "inactive"
)

func ParsePlayerStatus(s string) PlayerStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return STATUS_ACTIVE
	case "inactive":
		return STATUS_INACTIVE
	default:
		return STATUS_UNKNOWN
	}
}

// LeaguePlayer is a user's membership in one league along with their rating and record
// in that league.
type LeaguePlayer struct {
	LeagueID    int32        `json:"league_id"`
	UserID      string       `json:"user_id"`
	DisplayName string       `json:"display_name"`
	Rating      int          `json:"rating"`
	Wins        int          `json:"wins"`
	Losses      int          `json:"losses"`
	Status      PlayerStatus `json:"status"`
	Joined      time.Time    `json:"joined"`
}

func NewLeaguePlayer(leagueID int32, u *User) LeaguePlayer {
	return LeaguePlayer{
		LeagueID:    leagueID,
		UserID:      u.ID,
		DisplayName: u.DisplayName,
		Rating:      InitialRating,
		Status:      STATUS_ACTIVE,
	}
}

func (p *LeaguePlayer) MatchesPlayed() int {
	return p.Wins + p.Losses
}

func (p *LeaguePlayer) IsActive() bool {
	return p.Status == STATUS_ACTIVE
}
