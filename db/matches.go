package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mww/club_ladder/model"
)

const matchColumns = `id, league_id, player_a, player_b, score_a, score_b, winner, elo_change_a, elo_change_b, created`

func (db *postgresDB) GetMatch(ctx context.Context, leagueID int32, matchID string) (*model.Match, error) {
	const query = `SELECT ` + matchColumns + ` FROM matches WHERE league_id=@leagueID AND id=@id`
	args := pgx.NamedArgs{
		"leagueID": leagueID,
		"id":       matchID,
	}

	m, err := scanMatch(db.pool.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("error scanning match %s: %w", matchID, err)
	}
	return m, nil
}

func (db *postgresDB) GetMatches(ctx context.Context, leagueID int32) ([]model.Match, error) {
	return getMatches(ctx, db.pool, leagueID)
}

func getMatches(ctx context.Context, q querier, leagueID int32) ([]model.Match, error) {
	const query = `SELECT ` + matchColumns + ` FROM matches WHERE league_id=@leagueID ORDER BY created DESC, id`
	args := pgx.NamedArgs{
		"leagueID": leagueID,
	}

	rows, err := q.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error querying matches for league %d: %w", leagueID, err)
	}
	defer rows.Close()

	results := make([]model.Match, 0, 32)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning match: %w", err)
		}
		results = append(results, *m)
	}
	return results, rows.Err()
}

func insertMatch(ctx context.Context, tx pgx.Tx, m *model.Match) error {
	const query = `INSERT INTO matches (` + matchColumns + `) VALUES (
		@id,
		@leagueID,
		@playerA,
		@playerB,
		@scoreA,
		@scoreB,
		@winner,
		@eloChangeA,
		@eloChangeB,
		@created
	)`

	args := pgx.NamedArgs{
		"id":         m.ID,
		"leagueID":   m.LeagueID,
		"playerA":    m.PlayerA,
		"playerB":    m.PlayerB,
		"scoreA":     m.ScoreA,
		"scoreB":     m.ScoreB,
		"winner":     m.Winner,
		"eloChangeA": m.EloChangeA,
		"eloChangeB": m.EloChangeB,
		"created":    timestamp(m.Created),
	}
	if _, err := tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error inserting match %s: %w", m.ID, err)
	}
	return nil
}

func deleteMatch(ctx context.Context, tx pgx.Tx, m *model.Match) error {
	const query = `DELETE FROM matches WHERE league_id=@leagueID AND id=@id`
	args := pgx.NamedArgs{
		"leagueID": m.LeagueID,
		"id":       m.ID,
	}

	tag, err := tx.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error deleting match %s: %w", m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func scanMatch(row pgx.Row) (*model.Match, error) {
	var m model.Match
	var created pgtype.Timestamptz
	err := row.Scan(
		&m.ID,
		&m.LeagueID,
		&m.PlayerA,
		&m.PlayerB,
		&m.ScoreA,
		&m.ScoreB,
		&m.Winner,
		&m.EloChangeA,
		&m.EloChangeB,
		&created)
	if err != nil {
		return nil, err
	}
	m.Created = created.Time.UTC()
	return &m, nil
}
