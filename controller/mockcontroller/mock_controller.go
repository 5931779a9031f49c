package mockcontroller

import (
	"context"

	"github.com/agroth3/nfl-playoff-picks/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) SignUp(ctx context.Context, firstName, lastName, email, password string) (*model.User, error) {
	args := c.Called(ctx, firstName, lastName, email, password)
	return user(args.Get(0)), args.Error(1)
}

func (c *C) Login(ctx context.Context, email, password string) (*model.User, error) {
	args := c.Called(ctx, email, password)
	return user(args.Get(0)), args.Error(1)
}

func (c *C) GetUser(ctx context.Context, id string) (*model.User, error) {
	args := c.Called(ctx, id)
	return user(args.Get(0)), args.Error(1)
}

func (c *C) UpdateProfile(ctx context.Context, id, firstName, lastName string) (*model.User, error) {
	args := c.Called(ctx, id, firstName, lastName)
	return user(args.Get(0)), args.Error(1)
}

func (c *C) CreateLeague(ctx context.Context, ownerID, name, password string) (*model.League, error) {
	args := c.Called(ctx, ownerID, name, password)
	return league(args.Get(0)), args.Error(1)
}

func (c *C) GetLeague(ctx context.Context, leagueID int32, userID string) (*model.League, error) {
	args := c.Called(ctx, leagueID, userID)
	return league(args.Get(0)), args.Error(1)
}

func (c *C) ListLeagues(ctx context.Context, userID string) ([]model.League, error) {
	args := c.Called(ctx, userID)

	var res []model.League
	if args.Get(0) != nil {
		res = args.Get(0).([]model.League)
	}
	return res, args.Error(1)
}

func (c *C) GetLeagueByHash(ctx context.Context, hash string) (*model.League, error) {
	args := c.Called(ctx, hash)
	return league(args.Get(0)), args.Error(1)
}

func (c *C) JoinLeague(ctx context.Context, userID, hash, password, clientKey string) (*model.League, error) {
	args := c.Called(ctx, userID, hash, password, clientKey)
	return league(args.Get(0)), args.Error(1)
}

func (c *C) UpdateLeague(ctx context.Context, leagueID int32, userID string, update *model.LeagueUpdate) error {
	args := c.Called(ctx, leagueID, userID, update)
	return args.Error(0)
}

func (c *C) DeleteLeague(ctx context.Context, leagueID int32, userID string) error {
	args := c.Called(ctx, leagueID, userID)
	return args.Error(0)
}

func (c *C) ListMembers(ctx context.Context, leagueID int32) ([]model.LeagueMember, error) {
	args := c.Called(ctx, leagueID)

	var res []model.LeagueMember
	if args.Get(0) != nil {
		res = args.Get(0).([]model.LeagueMember)
	}
	return res, args.Error(1)
}

func (c *C) RemoveMember(ctx context.Context, leagueID int32, actingUserID, memberID string) error {
	args := c.Called(ctx, leagueID, actingUserID, memberID)
	return args.Error(0)
}

func (c *C) ListTeams(ctx context.Context, leagueID int32) ([]model.Team, error) {
	args := c.Called(ctx, leagueID)

	var res []model.Team
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Team)
	}
	return res, args.Error(1)
}

func (c *C) AddTeam(ctx context.Context, leagueID int32, userID string, t *model.Team) error {
	args := c.Called(ctx, leagueID, userID, t)
	return args.Error(0)
}

func (c *C) GetPicks(ctx context.Context, leagueID int32, userID string) ([]model.Pick, error) {
	args := c.Called(ctx, leagueID, userID)

	var res []model.Pick
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Pick)
	}
	return res, args.Error(1)
}

func (c *C) ValidateAndUpsertPicks(ctx context.Context, leagueID int32, userID string, batch []model.PickEntry) error {
	args := c.Called(ctx, leagueID, userID, batch)
	return args.Error(0)
}

func (c *C) ComputeLeaderboard(ctx context.Context, leagueID int32) (*model.Leaderboard, error) {
	args := c.Called(ctx, leagueID)

	var lb *model.Leaderboard
	if args.Get(0) != nil {
		lb = args.Get(0).(*model.Leaderboard)
	}
	return lb, args.Error(1)
}

func (c *C) GetMyPicks(ctx context.Context, leagueID int32, userID string) ([]model.MemberPick, error) {
	args := c.Called(ctx, leagueID, userID)

	var res []model.MemberPick
	if args.Get(0) != nil {
		res = args.Get(0).([]model.MemberPick)
	}
	return res, args.Error(1)
}

func user(v any) *model.User {
	if v == nil {
		return nil
	}
	return v.(*model.User)
}

func league(v any) *model.League {
	if v == nil {
		return nil
	}
	return v.(*model.League)
}
