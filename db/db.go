package db

import (
	"context"

	"github.com/agroth3/nfl-playoff-picks/model"
)

type DB interface {
	// Inserts a new user. The ID and Created fields are set on u.
	AddUser(ctx context.Context, u *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUserName(ctx context.Context, id, firstName, lastName string) error

	// Inserts a new league and makes the owner its first member. The ID, Hash
	// and Created fields are set on l.
	AddLeague(ctx context.Context, l *model.League) error
	GetLeague(ctx context.Context, id int32) (*model.League, error)
	GetLeagueByHash(ctx context.Context, hash string) (*model.League, error)
	// Lists the leagues the user is a member of, archived leagues are not returned.
	ListLeagues(ctx context.Context, userID string) ([]model.League, error)
	// Applies the lock/archive flags, team edits and team removals in a single
	// transaction. Nothing is saved if any part of the update fails.
	UpdateLeague(ctx context.Context, leagueID int32, update *model.LeagueUpdate) error
	DeleteLeague(ctx context.Context, id int32) error

	IsLeagueMember(ctx context.Context, leagueID int32, userID string) (bool, error)
	// Adding a user that is already a member is not an error.
	AddLeagueMember(ctx context.Context, leagueID int32, userID string) error
	GetLeagueMembers(ctx context.Context, leagueID int32) ([]model.LeagueMember, error)
	// Removes the member and all of their picks in the league.
	RemoveLeagueMember(ctx context.Context, leagueID int32, userID string) error

	GetTeams(ctx context.Context, leagueID int32) ([]model.Team, error)
	AddTeam(ctx context.Context, t *model.Team) error

	// Inserts the pick, or updates the points of the existing pick for the
	// same (league, user, team).
	UpsertPick(ctx context.Context, p *model.Pick) (*model.Pick, error)
	// Upserts every entry in one transaction.
	UpsertPicks(ctx context.Context, leagueID int32, userID string, entries []model.PickEntry) error
	GetPicks(ctx context.Context, leagueID int32, userID string) ([]model.Pick, error)
	// All picks by current members of the league, joined with the member's
	// name and the picked team.
	GetLeagueMemberPicks(ctx context.Context, leagueID int32) ([]model.MemberPick, error)
}
