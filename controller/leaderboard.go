package controller

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/agroth3/nfl-playoff-picks/model"
)

func (c *controller) ComputeLeaderboard(ctx context.Context, leagueID int32) (*model.Leaderboard, error) {
	teams, err := c.db.GetTeams(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error getting teams: %w", err)
	}

	picks, err := c.db.GetLeagueMemberPicks(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error getting league picks: %w", err)
	}

	return buildLeaderboard(teams, picks), nil
}

func (c *controller) GetMyPicks(ctx context.Context, leagueID int32, userID string) ([]model.MemberPick, error) {
	picks, err := c.db.GetLeagueMemberPicks(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error getting league picks: %w", err)
	}

	mine := make([]model.MemberPick, 0, 16)
	for _, p := range picks {
		if p.UserID == userID && p.Points > 0 {
			mine = append(mine, p)
		}
	}

	slices.SortStableFunc(mine, func(a, b model.MemberPick) int {
		return cmp.Or(
			cmp.Compare(b.Points, a.Points),
			cmp.Compare(a.Team.Rank, b.Team.Rank))
	})
	return mine, nil
}

type memberTally struct {
	userID string
	name   string
	total  int
	cells  []int
}

// buildLeaderboard groups picks by member id. A member's total is the sum of
// points * wins over their picks. Members are ranked by total, highest first,
// with display name and then id breaking ties. Matrix rows follow the same
// order and always have one cell per team.
func buildLeaderboard(teams []model.Team, picks []model.MemberPick) *model.Leaderboard {
	headers := slices.Clone(teams)
	model.SortTeamsByRank(headers)

	column := make(map[int32]int, len(headers))
	for i, t := range headers {
		column[t.ID] = i
	}

	tallies := make(map[string]*memberTally)
	for _, p := range picks {
		m, ok := tallies[p.UserID]
		if !ok {
			m = &memberTally{
				userID: p.UserID,
				name:   p.DisplayName(),
				cells:  make([]int, len(headers)),
			}
			tallies[p.UserID] = m
		}

		m.total += p.Score()
		if i, ok := column[p.Team.ID]; ok {
			m.cells[i] = p.Points
		}
	}

	ranked := make([]*memberTally, 0, len(tallies))
	for _, m := range tallies {
		ranked = append(ranked, m)
	}
	slices.SortFunc(ranked, func(a, b *memberTally) int {
		return cmp.Or(
			cmp.Compare(b.total, a.total),
			cmp.Compare(a.name, b.name),
			cmp.Compare(a.userID, b.userID))
	})

	lb := &model.Leaderboard{
		Scores: make([]model.MemberScore, 0, len(ranked)),
		Matrix: model.PickMatrix{
			Headers: headers,
			Rows:    make([]model.PickMatrixRow, 0, len(ranked)),
		},
	}
	for i, m := range ranked {
		lb.Scores = append(lb.Scores, model.MemberScore{
			Rank:        i + 1,
			UserID:      m.userID,
			DisplayName: m.name,
			Total:       m.total,
		})
		lb.Matrix.Rows = append(lb.Matrix.Rows, model.PickMatrixRow{
			UserID:      m.userID,
			DisplayName: m.name,
			Cells:       m.cells,
		})
	}

	return lb
}
