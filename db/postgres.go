package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/agroth3/nfl-playoff-picks/model"
	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

var (
	ErrNotFound            error = errors.New("not found")
	ErrLeagueNotFound      error = fmt.Errorf("league %w", ErrNotFound)
	ErrTeamNotFound        error = fmt.Errorf("team %w", ErrNotFound)
	ErrUserNotFound        error = fmt.Errorf("user %w", ErrNotFound)
	ErrMembershipNotFound  error = fmt.Errorf("league member %w", ErrNotFound)
	ErrConstraintViolation error = errors.New("constraint violation")
	ErrEmailTaken          error = errors.New("email address is already registered")
)

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

func (db *postgresDB) now() pgtype.Timestamptz {
	return pgtype.Timestamptz{
		Time:             db.clock.Now().UTC(),
		InfinityModifier: pgtype.Finite,
		Valid:            true,
	}
}

// mapWriteError converts constraint errors from postgres into the errors
// exposed by this package. Foreign key failures mean a referenced row is
// missing, the column named in the constraint decides which one.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgForeignKeyViolation:
		c := pgErr.ConstraintName
		switch {
		case strings.Contains(c, "team_id"):
			return fmt.Errorf("%w: %s", ErrTeamNotFound, c)
		case strings.Contains(c, "league_id"):
			return fmt.Errorf("%w: %s", ErrLeagueNotFound, c)
		case strings.Contains(c, "user_id"), strings.Contains(c, "owner_id"):
			return fmt.Errorf("%w: %s", ErrUserNotFound, c)
		}
		return fmt.Errorf("%w: %s", ErrNotFound, c)
	case pgUniqueViolation:
		if strings.Contains(pgErr.ConstraintName, "email") {
			return ErrEmailTaken
		}
		return fmt.Errorf("%w: %s", ErrConstraintViolation, pgErr.ConstraintName)
	}
	return err
}

func valueOrEmpty(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}

func nullString(s string) sql.NullString {
	return sql.NullString{
		String: s,
		Valid:  s != "",
	}
}

type DBConference struct {
	conference model.Conference
}

func (c *DBConference) ScanText(v pgtype.Text) error {
	c.conference = model.ParseConference(v.String)
	return nil
}

func (c *DBConference) TextValue() (pgtype.Text, error) {
	return pgtype.Text{
		String: string(c.conference),
		Valid:  c.conference != model.CONF_UNKNOWN,
	}, nil
}
