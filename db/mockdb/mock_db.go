package mockdb

import (
	"context"

	"github.com/mww/club_ladder/model"
	"github.com/stretchr/testify/mock"
)

type DB struct {
	mock.Mock
}

func (db *DB) AddUser(ctx context.Context, u *model.User) error {
	args := db.Called(ctx, u)
	return args.Error(0)
}

func (db *DB) GetUser(ctx context.Context, id string) (*model.User, error) {
	args := db.Called(ctx, id)

	var u *model.User
	if args.Get(0) != nil {
		u = args.Get(0).(*model.User)
	}
	return u, args.Error(1)
}

func (db *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	args := db.Called(ctx, username)

	var u *model.User
	if args.Get(0) != nil {
		u = args.Get(0).(*model.User)
	}
	return u, args.Error(1)
}

func (db *DB) AddLeague(ctx context.Context, l *model.League) error {
	args := db.Called(ctx, l)
	return args.Error(0)
}

func (db *DB) GetLeague(ctx context.Context, id int32) (*model.League, error) {
	args := db.Called(ctx, id)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (db *DB) GetLeagueByInviteCode(ctx context.Context, code string) (*model.League, error) {
	args := db.Called(ctx, code)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (db *DB) ListLeagues(ctx context.Context, includePrivate bool) ([]model.League, error) {
	args := db.Called(ctx, includePrivate)

	var r []model.League
	if args.Get(0) != nil {
		r = args.Get(0).([]model.League)
	}
	return r, args.Error(1)
}

func (db *DB) ListLeaguesForUser(ctx context.Context, userID string) ([]model.League, error) {
	args := db.Called(ctx, userID)

	var r []model.League
	if args.Get(0) != nil {
		r = args.Get(0).([]model.League)
	}
	return r, args.Error(1)
}

func (db *DB) ArchiveLeague(ctx context.Context, id int32) error {
	args := db.Called(ctx, id)
	return args.Error(0)
}

func (db *DB) SetInviteCode(ctx context.Context, id int32, code string) error {
	args := db.Called(ctx, id, code)
	return args.Error(0)
}

func (db *DB) AddLeaguePlayer(ctx context.Context, p *model.LeaguePlayer) error {
	args := db.Called(ctx, p)
	return args.Error(0)
}

func (db *DB) GetLeaguePlayers(ctx context.Context, leagueID int32) ([]model.LeaguePlayer, error) {
	args := db.Called(ctx, leagueID)

	var r []model.LeaguePlayer
	if args.Get(0) != nil {
		r = args.Get(0).([]model.LeaguePlayer)
	}
	return r, args.Error(1)
}

func (db *DB) RemoveLeaguePlayer(ctx context.Context, leagueID int32, userID string) error {
	args := db.Called(ctx, leagueID, userID)
	return args.Error(0)
}

func (db *DB) SetLeaguePlayerStatus(ctx context.Context, leagueID int32, userID string, status model.PlayerStatus) error {
	args := db.Called(ctx, leagueID, userID, status)
	return args.Error(0)
}

func (db *DB) GetMatch(ctx context.Context, leagueID int32, matchID string) (*model.Match, error) {
	args := db.Called(ctx, leagueID, matchID)

	var m *model.Match
	if args.Get(0) != nil {
		m = args.Get(0).(*model.Match)
	}
	return m, args.Error(1)
}

func (db *DB) GetMatches(ctx context.Context, leagueID int32) ([]model.Match, error) {
	args := db.Called(ctx, leagueID)

	var r []model.Match
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Match)
	}
	return r, args.Error(1)
}

// UpdateLeagueStats calls fn with the *model.LeagueState given as the first return value,
// if there is one, and returns fn's error if the mocked error is nil. The update fn
// produces is recorded on the State so tests can inspect it.
func (db *DB) UpdateLeagueStats(ctx context.Context, leagueID int32, fn func(state *model.LeagueState) (*model.StatsUpdate, error)) error {
	args := db.Called(ctx, leagueID, fn)

	if s := args.Get(0); s != nil {
		state := s.(*State)
		update, err := fn(&state.LeagueState)
		if err != nil {
			return err
		}
		state.Updates = append(state.Updates, update)
	}
	return args.Error(1)
}

// State is the value mocked calls to UpdateLeagueStats run fn against.
type State struct {
	model.LeagueState
	Updates []*model.StatsUpdate
}
