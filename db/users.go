package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mww/club_ladder/model"
)

func (db *postgresDB) AddUser(ctx context.Context, u *model.User) error {
	if u == nil {
		return errors.New("AddUser - user is nil")
	}
	const query = `INSERT INTO users (id, username, display_name, created)
					VALUES (@id, @username, @displayName, @created)`

	created := db.now()
	args := pgx.NamedArgs{
		"id":          u.ID,
		"username":    u.Username,
		"displayName": u.DisplayName,
		"created":     timestamp(created),
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("error inserting user(%s): %w", u.Username, err)
	}

	u.Created = created
	return nil
}

func (db *postgresDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	const query = `SELECT id, username, display_name, created FROM users WHERE id=@id`
	return db.getUser(ctx, query, pgx.NamedArgs{"id": id})
}

func (db *postgresDB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	const query = `SELECT id, username, display_name, created FROM users WHERE username=@username`
	return db.getUser(ctx, query, pgx.NamedArgs{"username": username})
}

func (db *postgresDB) getUser(ctx context.Context, query string, args pgx.NamedArgs) (*model.User, error) {
	var u model.User
	var created pgtype.Timestamptz
	err := db.pool.QueryRow(ctx, query, args).Scan(&u.ID, &u.Username, &u.DisplayName, &created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	u.Created = created.Time.UTC()
	return &u, nil
}
