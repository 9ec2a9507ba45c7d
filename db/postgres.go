package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUserNotFound    error = errors.New("user not found")
	ErrUsernameTaken   error = errors.New("username is already taken")
	ErrLeagueNotFound  error = errors.New("league not found")
	ErrInviteCodeTaken error = errors.New("invite code is already in use")
	ErrAlreadyMember   error = errors.New("user is already a member of the league")
	ErrNotMember       error = errors.New("user is not a member of the league")
	ErrMatchNotFound   error = errors.New("match not found")
)

const uniqueViolation = "23505"

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

// querier is implemented by both the pool and a transaction so that the same read
// helpers can be used inside and outside of UpdateLeagueStats.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func nullString(s string) sql.NullString {
	return sql.NullString{
		String: s,
		Valid:  s != "",
	}
}

func valueOrEmpty(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}

func timestamp(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{
		Time:             t,
		InfinityModifier: pgtype.Finite,
		Valid:            !t.IsZero(),
	}
}

// now returns the current time at the precision postgres stores, so values read back
// compare equal to the ones that were written.
func (db *postgresDB) now() time.Time {
	return db.clock.Now().UTC().Truncate(time.Microsecond)
}
