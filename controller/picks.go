package controller

import (
	"context"
	"fmt"
	"strconv"

	"github.com/agroth3/nfl-playoff-picks/db"
	"github.com/agroth3/nfl-playoff-picks/model"
	"go.uber.org/zap"
)

func (c *controller) GetPicks(ctx context.Context, leagueID int32, userID string) ([]model.Pick, error) {
	picks, err := c.db.GetPicks(ctx, leagueID, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting picks: %w", err)
	}
	return picks, nil
}

func (c *controller) ValidateAndUpsertPicks(ctx context.Context, leagueID int32, userID string, batch []model.PickEntry) error {
	l, err := c.GetLeague(ctx, leagueID, userID)
	if err != nil {
		return err
	}
	if l.Locked {
		return ErrLeagueLocked
	}

	teams, err := c.db.GetTeams(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("error getting teams: %w", err)
	}

	known := make(map[int32]bool, len(teams))
	for _, t := range teams {
		known[t.ID] = true
	}
	for _, e := range batch {
		if !known[e.TeamID] {
			return fmt.Errorf("team %d is not in league %d: %w", e.TeamID, leagueID, db.ErrTeamNotFound)
		}
	}

	if fields := validateBatch(batch, len(teams)); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	if err := c.db.UpsertPicks(ctx, leagueID, userID, batch); err != nil {
		return fmt.Errorf("error saving picks: %w", err)
	}

	c.logger.Info("picks saved", zap.Int32("league_id", leagueID), zap.String("user_id", userID), zap.Int("picks", len(batch)))
	return nil
}

// validateBatch checks a pick submission against a league with numTeams teams.
// Points run from 1 to numTeams with 0 meaning no pick, and every non-zero
// value may only be used once. The result is keyed by team id and is empty
// when the batch is valid.
func validateBatch(batch []model.PickEntry, numTeams int) map[string]string {
	fields := make(map[string]string)

	counts := make(map[int]int, len(batch))
	seenTeams := make(map[int32]int, len(batch))
	for _, e := range batch {
		seenTeams[e.TeamID]++
		if e.Points != 0 {
			counts[e.Points]++
		}
	}

	for _, e := range batch {
		key := strconv.Itoa(int(e.TeamID))
		switch {
		case e.Points < 0 || e.Points > numTeams:
			fields[key] = fmt.Sprintf("Please enter a point value between 1 and %d", numTeams)
		case seenTeams[e.TeamID] > 1:
			fields[key] = "Team was picked more than once"
		case e.Points != 0 && counts[e.Points] > 1:
			fields[key] = "Please enter a unique point value"
		}
	}

	return fields
}
