package controller

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/agroth3/nfl-playoff-picks/db"
	"github.com/agroth3/nfl-playoff-picks/model"
	"go.uber.org/zap"
)

func (c *controller) CreateLeague(ctx context.Context, ownerID, name, password string) (*model.League, error) {
	name = strings.TrimSpace(name)

	verr := &ValidationError{Fields: make(map[string]string)}
	if name == "" {
		verr.Fields["name"] = "Name is required"
	}
	validatePassword(verr.Fields, password)
	if err := verr.errOrNil(); err != nil {
		return nil, err
	}

	hash, err := c.hashPassword(password)
	if err != nil {
		return nil, err
	}

	l := &model.League{
		Name:         name,
		OwnerID:      ownerID,
		PasswordHash: hash,
	}
	if err := c.db.AddLeague(ctx, l); err != nil {
		return nil, fmt.Errorf("error adding league: %w", err)
	}

	c.logger.Info("league created", zap.Int32("league_id", l.ID), zap.String("owner_id", ownerID))
	return l, nil
}

func (c *controller) GetLeague(ctx context.Context, leagueID int32, userID string) (*model.League, error) {
	l, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error looking up league: %w", err)
	}

	isMember, err := c.db.IsLeagueMember(ctx, leagueID, userID)
	if err != nil {
		return nil, fmt.Errorf("error checking league membership: %w", err)
	}
	// Non-members are not told the league exists.
	if !isMember {
		return nil, db.ErrLeagueNotFound
	}
	return l, nil
}

func (c *controller) ListLeagues(ctx context.Context, userID string) ([]model.League, error) {
	return c.db.ListLeagues(ctx, userID)
}

func (c *controller) GetLeagueByHash(ctx context.Context, hash string) (*model.League, error) {
	l, err := c.db.GetLeagueByHash(ctx, strings.TrimSpace(hash))
	if err != nil {
		return nil, fmt.Errorf("error looking up league: %w", err)
	}
	return l, nil
}

func (c *controller) JoinLeague(ctx context.Context, userID, hash, password, clientKey string) (*model.League, error) {
	hash = strings.TrimSpace(hash)

	verr := &ValidationError{Fields: make(map[string]string)}
	if hash == "" {
		verr.Fields["hash"] = "League ID is required"
	}
	validatePassword(verr.Fields, password)
	if err := verr.errOrNil(); err != nil {
		return nil, err
	}

	allowed, err := c.limiter.Allow(ctx, clientKey)
	if err != nil {
		// Fail open. The league password is still checked.
		c.logger.Error("join limiter failed", zap.Error(err))
		allowed = true
	}
	if !allowed {
		c.logger.Warn("too many join attempts", zap.String("client", clientKey))
		return nil, ErrTooManyAttempts
	}

	l, err := c.db.GetLeagueByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, db.ErrLeagueNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up league: %w", err)
	}
	if l.Archived || !checkPassword(l.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	if err := c.db.AddLeagueMember(ctx, l.ID, userID); err != nil {
		return nil, fmt.Errorf("error joining league: %w", err)
	}

	c.logger.Info("league joined", zap.Int32("league_id", l.ID), zap.String("user_id", userID))
	return l, nil
}

func (c *controller) UpdateLeague(ctx context.Context, leagueID int32, userID string, update *model.LeagueUpdate) error {
	if update == nil {
		return errors.New("update must be provided")
	}
	if _, err := c.requireOwner(ctx, leagueID, userID); err != nil {
		return err
	}

	removed := make(map[int32]bool, len(update.RemovedTeamIDs))
	for _, id := range update.RemovedTeamIDs {
		removed[id] = true
	}

	verr := &ValidationError{Fields: make(map[string]string)}
	teams := make([]model.TeamUpdate, 0, len(update.Teams))
	for _, t := range update.Teams {
		if removed[t.ID] {
			continue
		}
		t.Name = strings.TrimSpace(t.Name)
		t.Abbreviation = strings.TrimSpace(t.Abbreviation)
		t.ImageURI = strings.TrimSpace(t.ImageURI)

		key := strconv.Itoa(int(t.ID))
		switch {
		case t.Name == "":
			verr.Fields[key] = "Team name is required"
		case t.Abbreviation == "":
			verr.Fields[key] = "Team abbreviation is required"
		case t.Rank < 0:
			verr.Fields[key] = "Rank can not be negative"
		case t.Wins < 0:
			verr.Fields[key] = "Wins can not be negative"
		}
		teams = append(teams, t)
	}
	if err := verr.errOrNil(); err != nil {
		return err
	}

	u := &model.LeagueUpdate{
		Locked:         update.Locked,
		Archived:       update.Archived,
		Teams:          teams,
		RemovedTeamIDs: update.RemovedTeamIDs,
	}
	if err := c.db.UpdateLeague(ctx, leagueID, u); err != nil {
		return fmt.Errorf("error updating league: %w", err)
	}

	c.logger.Info("league updated",
		zap.Int32("league_id", leagueID),
		zap.Bool("locked", u.Locked),
		zap.Bool("archived", u.Archived),
		zap.Int("teams", len(u.Teams)),
		zap.Int("removed", len(u.RemovedTeamIDs)))
	return nil
}

func (c *controller) DeleteLeague(ctx context.Context, leagueID int32, userID string) error {
	if _, err := c.requireOwner(ctx, leagueID, userID); err != nil {
		return err
	}

	if err := c.db.DeleteLeague(ctx, leagueID); err != nil {
		return fmt.Errorf("error deleting league: %w", err)
	}

	c.logger.Info("league deleted", zap.Int32("league_id", leagueID))
	return nil
}

func (c *controller) ListMembers(ctx context.Context, leagueID int32) ([]model.LeagueMember, error) {
	return c.db.GetLeagueMembers(ctx, leagueID)
}

func (c *controller) RemoveMember(ctx context.Context, leagueID int32, actingUserID, memberID string) error {
	l, err := c.requireOwner(ctx, leagueID, actingUserID)
	if err != nil {
		return err
	}
	if l.IsOwner(memberID) {
		return newValidationError("member", "The league admin can not be removed")
	}

	if err := c.db.RemoveLeagueMember(ctx, leagueID, memberID); err != nil {
		return fmt.Errorf("error removing member: %w", err)
	}

	c.logger.Info("league member removed", zap.Int32("league_id", leagueID), zap.String("user_id", memberID))
	return nil
}

// requireOwner loads the league and checks userID is its owner.
func (c *controller) requireOwner(ctx context.Context, leagueID int32, userID string) (*model.League, error) {
	l, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error looking up league: %w", err)
	}
	if !l.IsOwner(userID) {
		return nil, ErrNotLeagueAdmin
	}
	return l, nil
}
