package db

import (
	"context"

	"github.com/mww/club_ladder/model"
)

type DB interface {
	AddUser(ctx context.Context, u *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// Adds the league and sets the ID and Created fields on l.
	AddLeague(ctx context.Context, l *model.League) error
	GetLeague(ctx context.Context, id int32) (*model.League, error)
	GetLeagueByInviteCode(ctx context.Context, code string) (*model.League, error)
	// Lists the leagues that are not archived. Private leagues are only included if
	// includePrivate is true.
	ListLeagues(ctx context.Context, includePrivate bool) ([]model.League, error)
	// Lists all the leagues the user is a member of, archived or not.
	ListLeaguesForUser(ctx context.Context, userID string) ([]model.League, error)
	ArchiveLeague(ctx context.Context, id int32) error
	SetInviteCode(ctx context.Context, id int32, code string) error

	AddLeaguePlayer(ctx context.Context, p *model.LeaguePlayer) error
	// Returns all the players in the league regardless of status.
	GetLeaguePlayers(ctx context.Context, leagueID int32) ([]model.LeaguePlayer, error)
	RemoveLeaguePlayer(ctx context.Context, leagueID int32, userID string) error
	SetLeaguePlayerStatus(ctx context.Context, leagueID int32, userID string, status model.PlayerStatus) error

	GetMatch(ctx context.Context, leagueID int32, matchID string) (*model.Match, error)
	// Returns the matches for the league, the most recent match is first.
	GetMatches(ctx context.Context, leagueID int32) ([]model.Match, error)

	// UpdateLeagueStats loads the league's players and matches while holding a lock on the
	// league, so that only one update per league runs at a time. The state is passed to fn
	// and the update fn returns is persisted in the same transaction. If fn returns an error,
	// or persisting fails, nothing is written.
	UpdateLeagueStats(ctx context.Context, leagueID int32, fn func(state *model.LeagueState) (*model.StatsUpdate, error)) error
}
