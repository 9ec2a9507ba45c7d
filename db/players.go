package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mww/club_ladder/model"
)

func (db *postgresDB) AddLeaguePlayer(ctx context.Context, p *model.LeaguePlayer) error {
	if p == nil {
		return errors.New("AddLeaguePlayer - player is nil")
	}
	const query = `INSERT INTO league_players (league_id, user_id, rating, wins, losses, status, joined)
					VALUES (@leagueID, @userID, @rating, @wins, @losses, @status, @joined)`

	joined := db.now()
	args := pgx.NamedArgs{
		"leagueID": p.LeagueID,
		"userID":   p.UserID,
		"rating":   p.Rating,
		"wins":     p.Wins,
		"losses":   p.Losses,
		"status":   string(p.Status),
		"joined":   timestamp(joined),
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyMember
		}
		return fmt.Errorf("error adding user %s to league %d: %w", p.UserID, p.LeagueID, err)
	}

	p.Joined = joined
	return nil
}

func (db *postgresDB) GetLeaguePlayers(ctx context.Context, leagueID int32) ([]model.LeaguePlayer, error) {
	return getLeaguePlayers(ctx, db.pool, leagueID)
}

func (db *postgresDB) RemoveLeaguePlayer(ctx context.Context, leagueID int32, userID string) error {
	const query = `DELETE FROM league_players WHERE league_id=@leagueID AND user_id=@userID`
	args := pgx.NamedArgs{
		"leagueID": leagueID,
		"userID":   userID,
	}

	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error removing user %s from league %d: %w", userID, leagueID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotMember
	}
	return nil
}

func (db *postgresDB) SetLeaguePlayerStatus(ctx context.Context, leagueID int32, userID string, status model.PlayerStatus) error {
	const query = `UPDATE league_players SET status=@status WHERE league_id=@leagueID AND user_id=@userID`
	args := pgx.NamedArgs{
		"leagueID": leagueID,
		"userID":   userID,
		"status":   string(status),
	}

	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error setting status for user %s in league %d: %w", userID, leagueID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotMember
	}
	return nil
}

func getLeaguePlayers(ctx context.Context, q querier, leagueID int32) ([]model.LeaguePlayer, error) {
	const query = `SELECT lp.league_id, lp.user_id, u.display_name, lp.rating, lp.wins, lp.losses, lp.status, lp.joined
					FROM league_players lp
					JOIN users u ON u.id = lp.user_id
					WHERE lp.league_id=@leagueID
					ORDER BY lp.joined, lp.user_id`

	args := pgx.NamedArgs{
		"leagueID": leagueID,
	}
	rows, err := q.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error querying players for league %d: %w", leagueID, err)
	}
	defer rows.Close()

	results := make([]model.LeaguePlayer, 0, 16)
	for rows.Next() {
		var p model.LeaguePlayer
		var status string
		var joined pgtype.Timestamptz
		err := rows.Scan(&p.LeagueID, &p.UserID, &p.DisplayName, &p.Rating, &p.Wins, &p.Losses, &status, &joined)
		if err != nil {
			return nil, fmt.Errorf("error scanning league player: %w", err)
		}
		p.Status = model.ParsePlayerStatus(status)
		p.Joined = joined.Time.UTC()
		results = append(results, p)
	}
	return results, rows.Err()
}

func updateLeaguePlayerStats(ctx context.Context, tx pgx.Tx, p *model.LeaguePlayer) error {
	const query = `UPDATE league_players SET rating=@rating, wins=@wins, losses=@losses
					WHERE league_id=@leagueID AND user_id=@userID`

	args := pgx.NamedArgs{
		"leagueID": p.LeagueID,
		"userID":   p.UserID,
		"rating":   p.Rating,
		"wins":     p.Wins,
		"losses":   p.Losses,
	}
	tag, err := tx.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error updating stats for user %s: %w", p.UserID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("error updating stats for user %s: %w", p.UserID, ErrNotMember)
	}
	return nil
}
