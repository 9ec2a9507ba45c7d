package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/itbasis/go-clock"
	"github.com/mww/club_ladder/cache"
	"github.com/mww/club_ladder/db"
	"github.com/mww/club_ladder/model"
)

var (
	ErrNotParticipant         = errors.New("only players in the match can delete it")
	ErrRetractionWindowClosed = errors.New("match is too old to be deleted")
	ErrInvalidInviteCode      = errors.New("invite code is not valid")
	ErrNotOwner               = errors.New("only the league owner can do that")
	ErrLeagueArchived         = errors.New("league is archived")
	ErrInactivePlayer         = errors.New("player is not active in the league")
	ErrInvalidInput           = errors.New("invalid input")
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	CreateUser(ctx context.Context, username, displayName string) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)

	// Creates a new league owned by ownerID. The owner is added as the first player.
	// Private leagues get an invite code that other users need in order to join.
	CreateLeague(ctx context.Context, ownerID, name, description string, public bool) (*model.League, error)
	GetLeague(ctx context.Context, id int32) (*model.League, error)
	// Lists the public leagues that are not archived.
	ListLeagues(ctx context.Context) ([]model.League, error)
	ListLeaguesForUser(ctx context.Context, userID string) ([]model.League, error)
	ArchiveLeague(ctx context.Context, leagueID int32, requesterID string) error
	RegenerateInviteCode(ctx context.Context, leagueID int32, requesterID string) (string, error)

	JoinLeague(ctx context.Context, leagueID int32, userID, inviteCode string) (*model.LeaguePlayer, error)
	JoinLeagueByCode(ctx context.Context, userID, inviteCode string) (*model.LeaguePlayer, error)
	LeaveLeague(ctx context.Context, leagueID int32, userID string) error
	// Players can change their own status, the league owner can change anyone's.
	SetPlayerStatus(ctx context.Context, leagueID int32, requesterID, userID string, status model.PlayerStatus) error

	// Validates and records the result of a match, updating both player's ratings and records.
	RecordMatch(ctx context.Context, leagueID int32, reporterID string, result model.MatchResult) (*model.Match, error)
	// Deletes a match and reverts the rating changes it caused. Only the players in the
	// match can delete it, and only shortly after it was recorded.
	DeleteMatch(ctx context.Context, leagueID int32, matchID, requesterID string) error
	GetMatches(ctx context.Context, leagueID int32) ([]model.Match, error)
	// Returns the active players in the league, highest rating first.
	GetLeaderboard(ctx context.Context, leagueID int32) ([]model.LeaguePlayer, error)
}

type controller struct {
	clock clock.Clock
	db    db.DB
	cache cache.Cache
}

func New(clock clock.Clock, db db.DB, cache cache.Cache) (C, error) {
	if db == nil {
		return nil, errors.New("db is required")
	}
	if cache == nil {
		return nil, errors.New("cache is required")
	}

	c := &controller{
		clock: clock,
		db:    db,
		cache: cache,
	}
	return c, nil
}

func invalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
