package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/agroth3/nfl-playoff-picks/model"
	"go.uber.org/zap"
)

func (c *controller) ListTeams(ctx context.Context, leagueID int32) ([]model.Team, error) {
	teams, err := c.db.GetTeams(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error getting teams: %w", err)
	}
	model.SortTeamsByRank(teams)
	return teams, nil
}

func (c *controller) AddTeam(ctx context.Context, leagueID int32, userID string, t *model.Team) error {
	if t == nil {
		return fmt.Errorf("team must be provided")
	}
	if _, err := c.requireOwner(ctx, leagueID, userID); err != nil {
		return err
	}

	t.Name = strings.TrimSpace(t.Name)
	t.Abbreviation = strings.TrimSpace(t.Abbreviation)

	verr := &ValidationError{Fields: make(map[string]string)}
	if t.Name == "" {
		verr.Fields["name"] = "Team name is required"
	}
	if t.Abbreviation == "" {
		verr.Fields["abbreviation"] = "Team abbreviation is required"
	}
	if t.Conference == model.CONF_UNKNOWN {
		verr.Fields["conference"] = "Team conference is required"
	}
	if err := verr.errOrNil(); err != nil {
		return err
	}

	t.LeagueID = leagueID
	t.Rank = 0
	t.Wins = 0
	if err := c.db.AddTeam(ctx, t); err != nil {
		return fmt.Errorf("error adding team: %w", err)
	}

	c.logger.Info("team added", zap.Int32("league_id", leagueID), zap.Int32("team_id", t.ID))
	return nil
}
