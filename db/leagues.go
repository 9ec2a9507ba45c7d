package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mww/club_ladder/model"
)

const leagueColumns = `l.id, l.name, l.description, l.public, l.invite_code, l.owner_id, l.archived, l.created`

func (db *postgresDB) AddLeague(ctx context.Context, l *model.League) error {
	if l == nil {
		return errors.New("AddLeague - league is nil")
	}
	const query = `INSERT INTO leagues (name, description, public, invite_code, owner_id, created)
					VALUES (@name, @description, @public, @inviteCode, @ownerID, @created)
					RETURNING id`

	created := db.now()
	args := pgx.NamedArgs{
		"name":        l.Name,
		"description": nullString(l.Description),
		"public":      l.Public,
		"inviteCode":  nullString(l.InviteCode),
		"ownerID":     l.OwnerID,
		"created":     timestamp(created),
	}

	var id int32
	if err := db.pool.QueryRow(ctx, query, args).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return ErrInviteCodeTaken
		}
		return fmt.Errorf("error inserting league(%s): %w", l.Name, err)
	}

	l.ID = id
	l.Created = created
	return nil
}

func (db *postgresDB) GetLeague(ctx context.Context, id int32) (*model.League, error) {
	const query = `SELECT ` + leagueColumns + ` FROM leagues l WHERE l.id=@id`
	return getLeague(ctx, db.pool, query, pgx.NamedArgs{"id": id})
}

func (db *postgresDB) GetLeagueByInviteCode(ctx context.Context, code string) (*model.League, error) {
	const query = `SELECT ` + leagueColumns + ` FROM leagues l WHERE l.invite_code=@code`
	return getLeague(ctx, db.pool, query, pgx.NamedArgs{"code": code})
}

func (db *postgresDB) ListLeagues(ctx context.Context, includePrivate bool) ([]model.League, error) {
	const query = `SELECT ` + leagueColumns + ` FROM leagues l
					WHERE l.archived=false AND (l.public OR @includePrivate)
					ORDER BY l.name, l.id`

	args := pgx.NamedArgs{
		"includePrivate": includePrivate,
	}
	return listLeagues(ctx, db.pool, query, args)
}

func (db *postgresDB) ListLeaguesForUser(ctx context.Context, userID string) ([]model.League, error) {
	const query = `SELECT ` + leagueColumns + ` FROM leagues l
					JOIN league_players lp ON lp.league_id = l.id
					WHERE lp.user_id=@userID
					ORDER BY l.archived, l.name, l.id`

	args := pgx.NamedArgs{
		"userID": userID,
	}
	return listLeagues(ctx, db.pool, query, args)
}

func (db *postgresDB) ArchiveLeague(ctx context.Context, id int32) error {
	const query = `UPDATE leagues SET archived=true WHERE id=@id`
	return db.execLeagueUpdate(ctx, query, pgx.NamedArgs{"id": id})
}

func (db *postgresDB) SetInviteCode(ctx context.Context, id int32, code string) error {
	const query = `UPDATE leagues SET invite_code=@code WHERE id=@id`
	args := pgx.NamedArgs{
		"id":   id,
		"code": nullString(code),
	}
	return db.execLeagueUpdate(ctx, query, args)
}

func (db *postgresDB) execLeagueUpdate(ctx context.Context, query string, args pgx.NamedArgs) error {
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrInviteCodeTaken
		}
		return fmt.Errorf("error updating league: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeagueNotFound
	}
	return nil
}

func getLeague(ctx context.Context, q querier, query string, args pgx.NamedArgs) (*model.League, error) {
	l, err := scanLeague(q.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("error scanning league: %w", err)
	}
	return l, nil
}

func listLeagues(ctx context.Context, q querier, query string, args pgx.NamedArgs) ([]model.League, error) {
	rows, err := q.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error listing leagues: %w", err)
	}
	defer rows.Close()

	results := make([]model.League, 0, 8)
	for rows.Next() {
		l, err := scanLeague(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning league: %w", err)
		}
		results = append(results, *l)
	}
	return results, rows.Err()
}

func scanLeague(row pgx.Row) (*model.League, error) {
	var l model.League
	var description, inviteCode sql.NullString
	var created pgtype.Timestamptz
	err := row.Scan(
		&l.ID,
		&l.Name,
		&description,
		&l.Public,
		&inviteCode,
		&l.OwnerID,
		&l.Archived,
		&created)
	if err != nil {
		return nil, err
	}

	l.Description = valueOrEmpty(description)
	l.InviteCode = valueOrEmpty(inviteCode)
	l.Created = created.Time.UTC()
	return &l, nil
}
