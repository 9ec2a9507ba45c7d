package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mww/club_ladder/model"
)

func (db *postgresDB) UpdateLeagueStats(ctx context.Context, leagueID int32, fn func(state *model.LeagueState) (*model.StatsUpdate, error)) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Lock the league row. Any other UpdateLeagueStats for the same league blocks here
	// until this transaction is done, so two updates never read the same ratings.
	const lock = `SELECT id FROM leagues WHERE id=@id FOR UPDATE`
	var id int32
	if err := tx.QueryRow(ctx, lock, pgx.NamedArgs{"id": leagueID}).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrLeagueNotFound
		}
		return fmt.Errorf("error locking league %d: %w", leagueID, err)
	}

	players, err := getLeaguePlayers(ctx, tx, leagueID)
	if err != nil {
		return err
	}
	matches, err := getMatches(ctx, tx, leagueID)
	if err != nil {
		return err
	}

	state := &model.LeagueState{
		LeagueID: leagueID,
		Players:  players,
		Matches:  matches,
	}
	update, err := fn(state)
	if err != nil {
		return err
	}
	if update == nil {
		update = &model.StatsUpdate{}
	}

	for i := range update.Players {
		p := &update.Players[i]
		if p.LeagueID != leagueID {
			return fmt.Errorf("player %s belongs to league %d, not %d", p.UserID, p.LeagueID, leagueID)
		}
		if err := updateLeaguePlayerStats(ctx, tx, p); err != nil {
			return err
		}
	}

	if update.Delete != nil {
		if err := deleteMatch(ctx, tx, update.Delete); err != nil {
			return err
		}
	}

	if update.Insert != nil {
		if update.Insert.LeagueID != leagueID {
			return fmt.Errorf("match %s belongs to league %d, not %d", update.Insert.ID, update.Insert.LeagueID, leagueID)
		}
		// Store the time at the precision postgres keeps it so the caller's copy matches what
		// will be read back.
		update.Insert.Created = update.Insert.Created.UTC().Truncate(time.Microsecond)
		if err := insertMatch(ctx, tx, update.Insert); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing stats for league %d: %w", leagueID, err)
	}
	return nil
}
