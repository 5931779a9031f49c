package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/agroth3/nfl-playoff-picks/db/mockdb"
	"github.com/agroth3/nfl-playoff-picks/model"
	"github.com/agroth3/nfl-playoff-picks/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	teamX = model.Team{ID: 10, Name: "Eagles", Abbreviation: "PHI", Rank: 2, Wins: 10}
	teamY = model.Team{ID: 11, Name: "Seahawks", Abbreviation: "SEA", Rank: 1, Wins: 2}
	teamZ = model.Team{ID: 12, Name: "Vikings", Abbreviation: "MIN", Rank: 3, Wins: 0}
)

func memberPick(userID, first, last string, team model.Team, points int) model.MemberPick {
	return model.MemberPick{
		UserID:    userID,
		FirstName: first,
		LastName:  last,
		Points:    points,
		Team:      team,
	}
}

func TestBuildLeaderboard_ranksByScore(t *testing.T) {
	teams := []model.Team{teamX, teamY}
	picks := []model.MemberPick{
		memberPick("b", "Member", "B", teamX, 1),
		memberPick("b", "Member", "B", teamY, 5),
		memberPick("a", "Member", "A", teamX, 5),
		memberPick("a", "Member", "A", teamY, 1),
	}

	lb := buildLeaderboard(teams, picks)

	expected := []model.MemberScore{
		{Rank: 1, UserID: "a", DisplayName: "Member A", Total: 52},
		{Rank: 2, UserID: "b", DisplayName: "Member B", Total: 20},
	}
	assert.Equal(t, expected, lb.Scores)

	// Matrix rows follow the ranking, columns follow team rank.
	require.Len(t, lb.Matrix.Rows, 2)
	assert.Equal(t, "a", lb.Matrix.Rows[0].UserID)
	assert.Equal(t, []int{1, 5}, lb.Matrix.Rows[0].Cells)
	assert.Equal(t, "b", lb.Matrix.Rows[1].UserID)
	assert.Equal(t, []int{5, 1}, lb.Matrix.Rows[1].Cells)
}

func TestBuildLeaderboard_headersByRank(t *testing.T) {
	// Created in an order that does not match rank
	teams := []model.Team{teamZ, teamX, teamY}

	lb := buildLeaderboard(teams, nil)

	got := make([]int32, 0, len(lb.Matrix.Headers))
	for _, h := range lb.Matrix.Headers {
		got = append(got, h.ID)
	}
	assert.Equal(t, []int32{teamY.ID, teamX.ID, teamZ.ID}, got)

	// The caller's slice is left alone
	assert.Equal(t, teamZ.ID, teams[0].ID)
}

func TestBuildLeaderboard_missingPicksAreZero(t *testing.T) {
	teams := []model.Team{teamX, teamY, teamZ}
	picks := []model.MemberPick{
		memberPick("a", "Member", "A", teamX, 3),
		memberPick("b", "Member", "B", teamZ, 2),
	}

	lb := buildLeaderboard(teams, picks)

	require.Len(t, lb.Matrix.Rows, 2)
	for _, r := range lb.Matrix.Rows {
		assert.Len(t, r.Cells, len(teams), "row for %s", r.UserID)
	}
	assert.Equal(t, []int{0, 3, 0}, lb.Matrix.Rows[0].Cells)
	assert.Equal(t, []int{0, 0, 2}, lb.Matrix.Rows[1].Cells)
}

func TestBuildLeaderboard_empty(t *testing.T) {
	lb := buildLeaderboard([]model.Team{teamX, teamY}, nil)

	assert.Empty(t, lb.Scores)
	assert.Empty(t, lb.Matrix.Rows)
	assert.Len(t, lb.Matrix.Headers, 2)
}

func TestBuildLeaderboard_sameNameDifferentMembers(t *testing.T) {
	picks := []model.MemberPick{
		memberPick("first", "Josh", "Allen", teamX, 1),
		memberPick("second", "Josh", "Allen", teamX, 2),
	}

	lb := buildLeaderboard([]model.Team{teamX}, picks)

	require.Len(t, lb.Scores, 2)
	assert.Equal(t, "second", lb.Scores[0].UserID)
	assert.Equal(t, 20, lb.Scores[0].Total)
	assert.Equal(t, "first", lb.Scores[1].UserID)
	assert.Equal(t, 10, lb.Scores[1].Total)
}

func TestBuildLeaderboard_ties(t *testing.T) {
	picks := []model.MemberPick{
		memberPick("3", "Zach", "Ertz", teamX, 1),
		memberPick("2", "Amari", "Cooper", teamX, 1),
		memberPick("1", "Amari", "Cooper", teamX, 1),
	}

	lb := buildLeaderboard([]model.Team{teamX}, picks)

	ids := make([]string, 0, len(lb.Scores))
	ranks := make([]int, 0, len(lb.Scores))
	for _, s := range lb.Scores {
		ids = append(ids, s.UserID)
		ranks = append(ranks, s.Rank)
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)
	assert.Equal(t, []int{1, 2, 3}, ranks)
}

func TestComputeLeaderboard(t *testing.T) {
	ctx := context.Background()
	d := &mockdb.DB{}
	d.On("GetTeams", mock.Anything, int32(1)).Return([]model.Team{teamX, teamY}, nil)
	d.On("GetLeagueMemberPicks", mock.Anything, int32(1)).Return([]model.MemberPick{
		memberPick("a", "Member", "A", teamX, 5),
	}, nil)

	c := newTestController(t, d, nil)
	lb, err := c.ComputeLeaderboard(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lb.Scores, 1)
	assert.Equal(t, 50, lb.Scores[0].Total)
	d.AssertExpectations(t)
}

func TestComputeLeaderboard_dbError(t *testing.T) {
	d := &mockdb.DB{}
	d.On("GetTeams", mock.Anything, int32(1)).Return(nil, errors.New("db down"))

	c := newTestController(t, d, nil)
	_, err := c.ComputeLeaderboard(context.Background(), 1)
	assert.ErrorContains(t, err, "db down")
}

func TestGetMyPicks(t *testing.T) {
	d := &mockdb.DB{}
	d.On("GetLeagueMemberPicks", mock.Anything, int32(1)).Return([]model.MemberPick{
		memberPick("a", "Member", "A", teamX, 1),
		memberPick("b", "Member", "B", teamX, 3),
		memberPick("a", "Member", "A", teamY, 3),
		memberPick("a", "Member", "A", teamZ, 0),
	}, nil)

	c := newTestController(t, d, nil)
	picks, err := c.GetMyPicks(context.Background(), 1, "a")
	require.NoError(t, err)
	require.Len(t, picks, 2)
	assert.Equal(t, teamY.ID, picks[0].Team.ID)
	assert.Equal(t, 3, picks[0].Points)
	assert.Equal(t, teamX.ID, picks[1].Team.ID)
}

// Scores a league end to end against postgres.
func TestComputeLeaderboard_db(t *testing.T) {
	ctx := context.Background()
	owner := testutils.TylerLockett
	member := testutils.JalenHurts
	l, teams, err := testDB.NewTestLeague(owner, []string{"SEA", "PHI"}, member)
	require.NoError(t, err)

	c := newTestController(t, testDB.DB, nil)

	// Rank 1 team gets 10 wins, rank 2 team gets 2
	update := &model.LeagueUpdate{Teams: []model.TeamUpdate{
		{ID: teams[0].ID, Name: teams[0].Name, Abbreviation: teams[0].Abbreviation, Rank: 1, Wins: 10},
		{ID: teams[1].ID, Name: teams[1].Name, Abbreviation: teams[1].Abbreviation, Rank: 2, Wins: 2},
	}}
	require.NoError(t, c.UpdateLeague(ctx, l.ID, owner.ID, update))

	require.NoError(t, c.ValidateAndUpsertPicks(ctx, l.ID, owner.ID, []model.PickEntry{
		{TeamID: teams[0].ID, Points: 2}, {TeamID: teams[1].ID, Points: 1},
	}))
	require.NoError(t, c.ValidateAndUpsertPicks(ctx, l.ID, member.ID, []model.PickEntry{
		{TeamID: teams[0].ID, Points: 1}, {TeamID: teams[1].ID, Points: 2},
	}))

	lb, err := c.ComputeLeaderboard(ctx, l.ID)
	require.NoError(t, err)
	require.Len(t, lb.Scores, 2)
	assert.Equal(t, owner.ID, lb.Scores[0].UserID)
	assert.Equal(t, 22, lb.Scores[0].Total)
	assert.Equal(t, "Tyler Lockett", lb.Scores[0].DisplayName)
	assert.Equal(t, member.ID, lb.Scores[1].UserID)
	assert.Equal(t, 14, lb.Scores[1].Total)
	assert.Equal(t, []int{2, 1}, lb.Matrix.Rows[0].Cells)
}
