package controller

import (
	"context"
	"testing"

	"github.com/agroth3/nfl-playoff-picks/model"
	"github.com/agroth3/nfl-playoff-picks/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTeam(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, testDB.DB, nil)
	owner := testutils.TJHockenson

	l, _, err := testDB.NewTestLeague(owner, nil)
	require.NoError(t, err)

	tests := map[string]struct {
		team     model.Team
		exFields map[string]string
	}{
		"success": {team: model.Team{Name: " Minnesota Vikings ", Abbreviation: "MIN", Conference: model.CONF_NFC, Rank: 4, Wins: 9}},
		"missing everything": {team: model.Team{}, exFields: map[string]string{
			"name":         "Team name is required",
			"abbreviation": "Team abbreviation is required",
			"conference":   "Team conference is required",
		}},
		"missing conference": {team: model.Team{Name: "Bills", Abbreviation: "BUF"}, exFields: map[string]string{
			"conference": "Team conference is required",
		}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			team := tc.team
			err := c.AddTeam(ctx, l.ID, owner.ID, &team)
			if tc.exFields != nil {
				assert.Equal(t, tc.exFields, validationFields(t, err))
				return
			}

			require.NoError(t, err)
			assert.True(t, team.ID > 0)
			assert.Equal(t, "Minnesota Vikings", team.Name)
			// New teams always start unranked with no wins
			assert.Equal(t, 0, team.Rank)
			assert.Equal(t, 0, team.Wins)
			assert.Equal(t, l.ID, team.LeagueID)
		})
	}
}

func TestListTeams_sortedByRank(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, testDB.DB, nil)
	owner := testutils.TJHockenson

	l, teams, err := testDB.NewTestLeague(owner, []string{"KC", "BUF", "BAL"})
	require.NoError(t, err)

	// Reverse the ranks so creation order and rank order disagree
	update := &model.LeagueUpdate{}
	for i, tm := range teams {
		update.Teams = append(update.Teams, model.TeamUpdate{ID: tm.ID, Name: tm.Name, Abbreviation: tm.Abbreviation, Rank: len(teams) - i})
	}
	require.NoError(t, c.UpdateLeague(ctx, l.ID, owner.ID, update))

	got, err := c.ListTeams(ctx, l.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"BAL", "BUF", "KC"}, []string{got[0].Abbreviation, got[1].Abbreviation, got[2].Abbreviation})
}
