package mockdb

import (
	"context"

	"github.com/agroth3/nfl-playoff-picks/model"
	"github.com/stretchr/testify/mock"
)

type DB struct {
	mock.Mock
}

func (db *DB) AddUser(ctx context.Context, u *model.User) error {
	args := db.Called(ctx, u)
	return args.Error(0)
}

func (db *DB) GetUser(ctx context.Context, id string) (*model.User, error) {
	args := db.Called(ctx, id)

	var u *model.User
	if args.Get(0) != nil {
		u = args.Get(0).(*model.User)
	}
	return u, args.Error(1)
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := db.Called(ctx, email)

	var u *model.User
	if args.Get(0) != nil {
		u = args.Get(0).(*model.User)
	}
	return u, args.Error(1)
}

func (db *DB) UpdateUserName(ctx context.Context, id, firstName, lastName string) error {
	args := db.Called(ctx, id, firstName, lastName)
	return args.Error(0)
}

func (db *DB) AddLeague(ctx context.Context, l *model.League) error {
	args := db.Called(ctx, l)
	return args.Error(0)
}

func (db *DB) GetLeague(ctx context.Context, id int32) (*model.League, error) {
	args := db.Called(ctx, id)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (db *DB) GetLeagueByHash(ctx context.Context, hash string) (*model.League, error) {
	args := db.Called(ctx, hash)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (db *DB) ListLeagues(ctx context.Context, userID string) ([]model.League, error) {
	args := db.Called(ctx, userID)

	var res []model.League
	if args.Get(0) != nil {
		res = args.Get(0).([]model.League)
	}
	return res, args.Error(1)
}

func (db *DB) UpdateLeague(ctx context.Context, leagueID int32, update *model.LeagueUpdate) error {
	args := db.Called(ctx, leagueID, update)
	return args.Error(0)
}

func (db *DB) DeleteLeague(ctx context.Context, id int32) error {
	args := db.Called(ctx, id)
	return args.Error(0)
}

func (db *DB) IsLeagueMember(ctx context.Context, leagueID int32, userID string) (bool, error) {
	args := db.Called(ctx, leagueID, userID)
	return args.Bool(0), args.Error(1)
}

func (db *DB) AddLeagueMember(ctx context.Context, leagueID int32, userID string) error {
	args := db.Called(ctx, leagueID, userID)
	return args.Error(0)
}

func (db *DB) GetLeagueMembers(ctx context.Context, leagueID int32) ([]model.LeagueMember, error) {
	args := db.Called(ctx, leagueID)

	var res []model.LeagueMember
	if args.Get(0) != nil {
		res = args.Get(0).([]model.LeagueMember)
	}
	return res, args.Error(1)
}

func (db *DB) RemoveLeagueMember(ctx context.Context, leagueID int32, userID string) error {
	args := db.Called(ctx, leagueID, userID)
	return args.Error(0)
}

func (db *DB) GetTeams(ctx context.Context, leagueID int32) ([]model.Team, error) {
	args := db.Called(ctx, leagueID)

	var res []model.Team
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Team)
	}
	return res, args.Error(1)
}

func (db *DB) AddTeam(ctx context.Context, t *model.Team) error {
	args := db.Called(ctx, t)
	return args.Error(0)
}

func (db *DB) UpsertPick(ctx context.Context, p *model.Pick) (*model.Pick, error) {
	args := db.Called(ctx, p)

	var res *model.Pick
	if args.Get(0) != nil {
		res = args.Get(0).(*model.Pick)
	}
	return res, args.Error(1)
}

func (db *DB) UpsertPicks(ctx context.Context, leagueID int32, userID string, entries []model.PickEntry) error {
	args := db.Called(ctx, leagueID, userID, entries)
	return args.Error(0)
}

func (db *DB) GetPicks(ctx context.Context, leagueID int32, userID string) ([]model.Pick, error) {
	args := db.Called(ctx, leagueID, userID)

	var res []model.Pick
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Pick)
	}
	return res, args.Error(1)
}

func (db *DB) GetLeagueMemberPicks(ctx context.Context, leagueID int32) ([]model.MemberPick, error) {
	args := db.Called(ctx, leagueID)

	var res []model.MemberPick
	if args.Get(0) != nil {
		res = args.Get(0).([]model.MemberPick)
	}
	return res, args.Error(1)
}
