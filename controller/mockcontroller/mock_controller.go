package mockcontroller

import (
	"context"

	"github.com/mww/club_ladder/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) CreateUser(ctx context.Context, username, displayName string) (*model.User, error) {
	args := c.Called(ctx, username, displayName)

	var u *model.User
	if args.Get(0) != nil {
		u = args.Get(0).(*model.User)
	}
	return u, args.Error(1)
}

func (c *C) GetUser(ctx context.Context, id string) (*model.User, error) {
	args := c.Called(ctx, id)

	var u *model.User
	if args.Get(0) != nil {
		u = args.Get(0).(*model.User)
	}
	return u, args.Error(1)
}

func (c *C) CreateLeague(ctx context.Context, ownerID, name, description string, public bool) (*model.League, error) {
	args := c.Called(ctx, ownerID, name, description, public)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (c *C) GetLeague(ctx context.Context, id int32) (*model.League, error) {
	args := c.Called(ctx, id)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (c *C) ListLeagues(ctx context.Context) ([]model.League, error) {
	args := c.Called(ctx)

	var res []model.League
	if args.Get(0) != nil {
		res = args.Get(0).([]model.League)
	}
	return res, args.Error(1)
}

func (c *C) ListLeaguesForUser(ctx context.Context, userID string) ([]model.League, error) {
	args := c.Called(ctx, userID)

	var res []model.League
	if args.Get(0) != nil {
		res = args.Get(0).([]model.League)
	}
	return res, args.Error(1)
}

func (c *C) ArchiveLeague(ctx context.Context, leagueID int32, requesterID string) error {
	args := c.Called(ctx, leagueID, requesterID)
	return args.Error(0)
}

func (c *C) RegenerateInviteCode(ctx context.Context, leagueID int32, requesterID string) (string, error) {
	args := c.Called(ctx, leagueID, requesterID)
	return args.String(0), args.Error(1)
}

func (c *C) JoinLeague(ctx context.Context, leagueID int32, userID, inviteCode string) (*model.LeaguePlayer, error) {
	args := c.Called(ctx, leagueID, userID, inviteCode)

	var p *model.LeaguePlayer
	if args.Get(0) != nil {
		p = args.Get(0).(*model.LeaguePlayer)
	}
	return p, args.Error(1)
}

func (c *C) JoinLeagueByCode(ctx context.Context, userID, inviteCode string) (*model.LeaguePlayer, error) {
	args := c.Called(ctx, userID, inviteCode)

	var p *model.LeaguePlayer
	if args.Get(0) != nil {
		p = args.Get(0).(*model.LeaguePlayer)
	}
	return p, args.Error(1)
}

func (c *C) LeaveLeague(ctx context.Context, leagueID int32, userID string) error {
	args := c.Called(ctx, leagueID, userID)
	return args.Error(0)
}

func (c *C) SetPlayerStatus(ctx context.Context, leagueID int32, requesterID, userID string, status model.PlayerStatus) error {
	args := c.Called(ctx, leagueID, requesterID, userID, status)
	return args.Error(0)
}

func (c *C) RecordMatch(ctx context.Context, leagueID int32, reporterID string, result model.MatchResult) (*model.Match, error) {
	args := c.Called(ctx, leagueID, reporterID, result)

	var m *model.Match
	if args.Get(0) != nil {
		m = args.Get(0).(*model.Match)
	}
	return m, args.Error(1)
}

func (c *C) DeleteMatch(ctx context.Context, leagueID int32, matchID, requesterID string) error {
	args := c.Called(ctx, leagueID, matchID, requesterID)
	return args.Error(0)
}

func (c *C) GetMatches(ctx context.Context, leagueID int32) ([]model.Match, error) {
	args := c.Called(ctx, leagueID)

	var res []model.Match
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Match)
	}
	return res, args.Error(1)
}

func (c *C) GetLeaderboard(ctx context.Context, leagueID int32) ([]model.LeaguePlayer, error) {
	args := c.Called(ctx, leagueID)

	var res []model.LeaguePlayer
	if args.Get(0) != nil {
		res = args.Get(0).([]model.LeaguePlayer)
	}
	return res, args.Error(1)
}
