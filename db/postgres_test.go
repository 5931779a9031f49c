package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"testing"

	"github.com/agroth3/nfl-playoff-picks/containers"
	"github.com/agroth3/nfl-playoff-picks/model"
	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// A test global db instance to use for all of the tests instead of setting up a new one each time.
	testDB DB

	// a counter to generate unique emails and names for each test. To help keep them separated.
	idCtr = int32(0)
)

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	container := containers.NewDBContainer()

	clock := clock.New()

	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if container != nil {
				container.Shutdown()
			}
			fmt.Println("panic")
		}
	}()

	var err error
	testDB, err = New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		fmt.Printf("error connecting to db: %v", err)
		os.Exit(-1)
	}

	code := m.Run()
	container.Shutdown()
	os.Exit(code)
}

func TestMapWriteError(t *testing.T) {
	tests := map[string]struct {
		err      error
		expected error
	}{
		"pick team fk":   {err: &pgconn.PgError{Code: "23503", ConstraintName: "picks_team_id_fkey"}, expected: ErrTeamNotFound},
		"pick league fk": {err: &pgconn.PgError{Code: "23503", ConstraintName: "picks_league_id_fkey"}, expected: ErrLeagueNotFound},
		"pick user fk":   {err: &pgconn.PgError{Code: "23503", ConstraintName: "picks_user_id_fkey"}, expected: ErrUserNotFound},
		"owner fk":       {err: &pgconn.PgError{Code: "23503", ConstraintName: "leagues_owner_id_fkey"}, expected: ErrUserNotFound},
		"unknown fk":     {err: &pgconn.PgError{Code: "23503", ConstraintName: "other"}, expected: ErrNotFound},
		"email unique":   {err: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, expected: ErrEmailTaken},
		"other unique":   {err: &pgconn.PgError{Code: "23505", ConstraintName: "leagues_hash_key"}, expected: ErrConstraintViolation},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := mapWriteError(fmt.Errorf("wrapped: %w", tc.err))
			if !errors.Is(got, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}

	plain := errors.New("connection reset")
	if got := mapWriteError(plain); got != plain {
		t.Errorf("expected unmapped error to be returned as is, got %v", got)
	}
}

func TestNotFoundErrors(t *testing.T) {
	for _, err := range []error{ErrLeagueNotFound, ErrTeamNotFound, ErrUserNotFound, ErrMembershipNotFound} {
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected %v to wrap ErrNotFound", err)
		}
	}
}

func addUser(t *testing.T, first, last string) *model.User {
	t.Helper()
	id := atomic.AddInt32(&idCtr, 1)

	u := &model.User{
		Email:        fmt.Sprintf("user%d@example.com", id),
		FirstName:    first,
		LastName:     last,
		PasswordHash: "not-a-real-hash",
	}
	err := testDB.AddUser(context.Background(), u)
	assertFatalf(t, err == nil, "error adding user: %v", err)
	return u
}

func addLeague(t *testing.T, owner *model.User) *model.League {
	t.Helper()
	id := atomic.AddInt32(&idCtr, 1)

	l := &model.League{
		Name:         fmt.Sprintf("League %d", id),
		OwnerID:      owner.ID,
		PasswordHash: "not-a-real-hash",
	}
	err := testDB.AddLeague(context.Background(), l)
	assertFatalf(t, err == nil, "error adding league: %v", err)
	return l
}

func addTeam(t *testing.T, leagueID int32, abbr string, rank, wins int) *model.Team {
	t.Helper()

	tm := &model.Team{
		LeagueID:     leagueID,
		Name:         abbr + " team",
		Abbreviation: abbr,
		Conference:   model.CONF_NFC,
		Rank:         rank,
		Wins:         wins,
	}
	err := testDB.AddTeam(context.Background(), tm)
	assertFatalf(t, err == nil, "error adding team: %v", err)
	return tm
}

func assertFatalf(t *testing.T, c bool, f string, args ...any) {
	t.Helper()
	if !c {
		t.Fatalf(f, args...)
	}
}

func assertEquals(t *testing.T, field string, expected, actual any) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s - expected: '%v', got: '%v'", field, expected, actual)
	}
}

func assertTrue(t *testing.T, field string, cond bool) {
	t.Helper()
	if !cond {
		t.Errorf("%s - expected to be true but it was false", field)
	}
}
