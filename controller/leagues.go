package controller

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mww/club_ladder/db"
	"github.com/mww/club_ladder/model"
)

const (
	// Upper case letters and digits, without the ones that are easy to confuse (0/O, 1/I).
	inviteCodeLetters  = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	inviteCodeLength   = 8
	inviteCodeAttempts = 5
)

func (c *controller) CreateLeague(ctx context.Context, ownerID, name, description string, public bool) (*model.League, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidInputf("league name must be provided")
	}
	if len(name) > maxNameLength {
		return nil, invalidInputf("league name can be at most %d characters", maxNameLength)
	}

	owner, err := c.db.GetUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error looking up league owner: %w", err)
	}

	l := &model.League{
		Name:        name,
		Description: strings.TrimSpace(description),
		Public:      public,
		OwnerID:     owner.ID,
	}

	for i := 0; i < inviteCodeAttempts; i++ {
		if !public {
			l.InviteCode = generateInviteCode()
		}
		err = c.db.AddLeague(ctx, l)
		if !errors.Is(err, db.ErrInviteCodeTaken) {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("error adding league: %w", err)
	}

	p := model.NewLeaguePlayer(l.ID, owner)
	if err := c.db.AddLeaguePlayer(ctx, &p); err != nil {
		return nil, fmt.Errorf("error adding owner to league: %w", err)
	}
	return l, nil
}

func (c *controller) GetLeague(ctx context.Context, id int32) (*model.League, error) {
	l, err := c.db.GetLeague(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error looking up league: %w", err)
	}
	return l, nil
}

func (c *controller) ListLeagues(ctx context.Context) ([]model.League, error) {
	return c.db.ListLeagues(ctx, false)
}

func (c *controller) ListLeaguesForUser(ctx context.Context, userID string) ([]model.League, error) {
	return c.db.ListLeaguesForUser(ctx, userID)
}

func (c *controller) ArchiveLeague(ctx context.Context, leagueID int32, requesterID string) error {
	if _, err := c.getOwnedLeague(ctx, leagueID, requesterID); err != nil {
		return err
	}
	if err := c.db.ArchiveLeague(ctx, leagueID); err != nil {
		return fmt.Errorf("error archiving league: %w", err)
	}
	return nil
}

func (c *controller) RegenerateInviteCode(ctx context.Context, leagueID int32, requesterID string) (string, error) {
	l, err := c.getOwnedLeague(ctx, leagueID, requesterID)
	if err != nil {
		return "", err
	}
	if l.Public {
		return "", invalidInputf("public leagues do not use invite codes")
	}
	if l.Archived {
		return "", ErrLeagueArchived
	}

	var code string
	for i := 0; i < inviteCodeAttempts; i++ {
		code = generateInviteCode()
		err = c.db.SetInviteCode(ctx, leagueID, code)
		if !errors.Is(err, db.ErrInviteCodeTaken) {
			break
		}
	}
	if err != nil {
		return "", fmt.Errorf("error saving invite code: %w", err)
	}
	return code, nil
}

func (c *controller) JoinLeague(ctx context.Context, leagueID int32, userID, inviteCode string) (*model.LeaguePlayer, error) {
	l, err := c.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if !l.Public && !strings.EqualFold(strings.TrimSpace(inviteCode), l.InviteCode) {
		return nil, ErrInvalidInviteCode
	}
	return c.join(ctx, l, userID)
}

func (c *controller) JoinLeagueByCode(ctx context.Context, userID, inviteCode string) (*model.LeaguePlayer, error) {
	inviteCode = strings.ToUpper(strings.TrimSpace(inviteCode))
	if inviteCode == "" {
		return nil, ErrInvalidInviteCode
	}

	l, err := c.db.GetLeagueByInviteCode(ctx, inviteCode)
	if errors.Is(err, db.ErrLeagueNotFound) {
		return nil, ErrInvalidInviteCode
	} else if err != nil {
		return nil, fmt.Errorf("error looking up league by invite code: %w", err)
	}
	return c.join(ctx, l, userID)
}

func (c *controller) join(ctx context.Context, l *model.League, userID string) (*model.LeaguePlayer, error) {
	if l.Archived {
		return nil, ErrLeagueArchived
	}

	u, err := c.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := model.NewLeaguePlayer(l.ID, u)
	if err := c.db.AddLeaguePlayer(ctx, &p); err != nil {
		return nil, fmt.Errorf("error joining league: %w", err)
	}
	c.invalidateLeaderboard(ctx, l.ID)
	return &p, nil
}

func (c *controller) LeaveLeague(ctx context.Context, leagueID int32, userID string) error {
	l, err := c.GetLeague(ctx, leagueID)
	if err != nil {
		return err
	}
	if l.OwnerID == userID {
		return invalidInputf("the league owner cannot leave the league")
	}

	if err := c.db.RemoveLeaguePlayer(ctx, leagueID, userID); err != nil {
		return fmt.Errorf("error leaving league: %w", err)
	}
	c.invalidateLeaderboard(ctx, leagueID)
	return nil
}

func (c *controller) SetPlayerStatus(ctx context.Context, leagueID int32, requesterID, userID string, status model.PlayerStatus) error {
	if status == model.STATUS_UNKNOWN {
		return invalidInputf("status must be active or inactive")
	}

	l, err := c.GetLeague(ctx, leagueID)
	if err != nil {
		return err
	}
	if requesterID != userID && requesterID != l.OwnerID {
		return ErrNotOwner
	}
	if l.Archived {
		return ErrLeagueArchived
	}

	if err := c.db.SetLeaguePlayerStatus(ctx, leagueID, userID, status); err != nil {
		return fmt.Errorf("error setting player status: %w", err)
	}
	c.invalidateLeaderboard(ctx, leagueID)
	return nil
}

func (c *controller) getOwnedLeague(ctx context.Context, leagueID int32, requesterID string) (*model.League, error) {
	l, err := c.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if l.OwnerID != requesterID {
		return nil, ErrNotOwner
	}
	return l, nil
}

func (c *controller) invalidateLeaderboard(ctx context.Context, leagueID int32) {
	if err := c.cache.Invalidate(ctx, leagueID); err != nil {
		log.Printf("error invalidating leaderboard for league %d: %v", leagueID, err)
	}
}

func generateInviteCode() string {
	b := make([]byte, inviteCodeLength)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("error reading random bytes: %v", err))
	}
	for i := range b {
		b[i] = inviteCodeLetters[int(b[i])%len(inviteCodeLetters)]
	}
	return string(b)
}
