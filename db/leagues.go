package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/agroth3/nfl-playoff-picks/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const leagueColumns = `id, name, owner_id, hash, password_hash, locked, archived, created`

func (db *postgresDB) AddLeague(ctx context.Context, l *model.League) error {
	if l == nil {
		return errors.New("AddLeague - league is nil")
	}

	const insertLeague = `INSERT INTO leagues (
		name,
		owner_id,
		hash,
		password_hash,
		locked,
		archived
	) VALUES (
		@name,
		@ownerID,
		@hash,
		@passwordHash,
		FALSE,
		FALSE
	) RETURNING id, created`

	hash := uuid.NewString()

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{
		"name":         l.Name,
		"ownerID":      l.OwnerID,
		"hash":         hash,
		"passwordHash": l.PasswordHash,
	}
	var id int32
	var created pgtype.Timestamptz
	if err := tx.QueryRow(ctx, insertLeague, args).Scan(&id, &created); err != nil {
		return fmt.Errorf("error inserting league: %w", mapWriteError(err))
	}

	if err := addLeagueMember(ctx, tx, id, l.OwnerID); err != nil {
		return fmt.Errorf("error adding league owner as member: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error commiting league transaction: %w", err)
	}

	l.ID = id
	l.Hash = hash
	l.Locked = false
	l.Archived = false
	l.Created = created.Time
	return nil
}

func (db *postgresDB) GetLeague(ctx context.Context, id int32) (*model.League, error) {
	const query = `SELECT ` + leagueColumns + ` FROM leagues WHERE id=@id`

	l, err := scanLeague(db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("error scanning league %d: %w", id, err)
	}
	return l, nil
}

func (db *postgresDB) GetLeagueByHash(ctx context.Context, hash string) (*model.League, error) {
	const query = `SELECT ` + leagueColumns + ` FROM leagues WHERE hash=@hash`

	l, err := scanLeague(db.pool.QueryRow(ctx, query, pgx.NamedArgs{"hash": hash}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("error scanning league by hash: %w", err)
	}
	return l, nil
}

func (db *postgresDB) ListLeagues(ctx context.Context, userID string) ([]model.League, error) {
	const query = `SELECT l.id, l.name, l.owner_id, l.hash, l.password_hash, l.locked, l.archived, l.created
		FROM leagues l
		JOIN league_members m ON m.league_id = l.id
		WHERE m.user_id=@userID AND l.archived = FALSE
		ORDER BY l.created DESC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"userID": userID})
	if err != nil {
		return nil, fmt.Errorf("error querying leagues: %w", err)
	}
	defer rows.Close()

	leagues := make([]model.League, 0, 4)
	for rows.Next() {
		l, err := scanLeague(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning league: %w", err)
		}
		leagues = append(leagues, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return leagues, nil
}

func (db *postgresDB) UpdateLeague(ctx context.Context, leagueID int32, update *model.LeagueUpdate) error {
	if update == nil {
		return errors.New("UpdateLeague - update is nil")
	}

	const updateLeague = `UPDATE leagues
		SET locked=@locked,
			archived=@archived,
			updated=@updated
		WHERE id=@id`

	const updateTeam = `UPDATE teams
		SET name=@name,
			abbreviation=@abbreviation,
			rank=@rank,
			wins=@wins,
			image_uri=@imageURI
		WHERE id=@id AND league_id=@leagueID`

	// Picks are removed explicitly so removing a team never depends on the
	// cascade being present in the schema.
	const deletePicks = `DELETE FROM picks WHERE league_id=@leagueID AND team_id = ANY(@ids)`
	const deleteTeams = `DELETE FROM teams WHERE league_id=@leagueID AND id = ANY(@ids)`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{
		"id":       leagueID,
		"locked":   update.Locked,
		"archived": update.Archived,
		"updated":  db.now(),
	}
	tag, err := tx.Exec(ctx, updateLeague, args)
	if err != nil {
		return fmt.Errorf("error updating league %d: %w", leagueID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeagueNotFound
	}

	for _, t := range update.Teams {
		args := pgx.NamedArgs{
			"id":           t.ID,
			"leagueID":     leagueID,
			"name":         t.Name,
			"abbreviation": t.Abbreviation,
			"rank":         t.Rank,
			"wins":         t.Wins,
			"imageURI":     nullString(t.ImageURI),
		}
		tag, err := tx.Exec(ctx, updateTeam, args)
		if err != nil {
			return fmt.Errorf("error updating team %d: %w", t.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("error updating team %d: %w", t.ID, ErrTeamNotFound)
		}
	}

	if len(update.RemovedTeamIDs) > 0 {
		args := pgx.NamedArgs{
			"leagueID": leagueID,
			"ids":      update.RemovedTeamIDs,
		}
		if _, err := tx.Exec(ctx, deletePicks, args); err != nil {
			return fmt.Errorf("error deleting picks for removed teams: %w", err)
		}
		if _, err := tx.Exec(ctx, deleteTeams, args); err != nil {
			return fmt.Errorf("error deleting removed teams: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error commiting league update: %w", err)
	}
	return nil
}

func (db *postgresDB) DeleteLeague(ctx context.Context, id int32) error {
	statements := []string{
		`DELETE FROM picks WHERE league_id=@id`,
		`DELETE FROM teams WHERE league_id=@id`,
		`DELETE FROM league_members WHERE league_id=@id`,
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{"id": id}
	for _, s := range statements {
		if _, err := tx.Exec(ctx, s, args); err != nil {
			return fmt.Errorf("error deleting league %d: %w", id, err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM leagues WHERE id=@id`, args)
	if err != nil {
		return fmt.Errorf("error deleting league %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeagueNotFound
	}

	return tx.Commit(ctx)
}

func (db *postgresDB) IsLeagueMember(ctx context.Context, leagueID int32, userID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM league_members WHERE league_id=@leagueID AND user_id=@userID)`

	args := pgx.NamedArgs{
		"leagueID": leagueID,
		"userID":   userID,
	}
	var exists bool
	if err := db.pool.QueryRow(ctx, query, args).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking league membership: %w", err)
	}
	return exists, nil
}

func (db *postgresDB) AddLeagueMember(ctx context.Context, leagueID int32, userID string) error {
	return addLeagueMember(ctx, db.pool, leagueID, userID)
}

func (db *postgresDB) GetLeagueMembers(ctx context.Context, leagueID int32) ([]model.LeagueMember, error) {
	const query = `SELECT u.id, u.email, u.first_name, u.last_name, u.password_hash, u.created, u.updated, m.joined
		FROM league_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.league_id=@leagueID
		ORDER BY m.joined ASC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	if err != nil {
		return nil, fmt.Errorf("error querying league members: %w", err)
	}
	defer rows.Close()

	members := make([]model.LeagueMember, 0, 8)
	for rows.Next() {
		var m model.LeagueMember
		var created, updated, joined pgtype.Timestamptz
		err := rows.Scan(
			&m.User.ID,
			&m.User.Email,
			&m.User.FirstName,
			&m.User.LastName,
			&m.User.PasswordHash,
			&created,
			&updated,
			&joined)
		if err != nil {
			return nil, fmt.Errorf("error scanning league member: %w", err)
		}
		m.User.Created = created.Time
		m.User.Updated = updated.Time
		m.Joined = joined.Time
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return members, nil
}

func (db *postgresDB) RemoveLeagueMember(ctx context.Context, leagueID int32, userID string) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{
		"leagueID": leagueID,
		"userID":   userID,
	}
	if _, err := tx.Exec(ctx, `DELETE FROM picks WHERE league_id=@leagueID AND user_id=@userID`, args); err != nil {
		return fmt.Errorf("error deleting member picks: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM league_members WHERE league_id=@leagueID AND user_id=@userID`, args)
	if err != nil {
		return fmt.Errorf("error deleting league member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMembershipNotFound
	}

	return tx.Commit(ctx)
}

// execer is satisfied by both the pool and a transaction.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func addLeagueMember(ctx context.Context, e execer, leagueID int32, userID string) error {
	const query = `INSERT INTO league_members (league_id, user_id)
		VALUES (@leagueID, @userID)
		ON CONFLICT (league_id, user_id) DO NOTHING`

	args := pgx.NamedArgs{
		"leagueID": leagueID,
		"userID":   userID,
	}
	if _, err := e.Exec(ctx, query, args); err != nil {
		return mapWriteError(err)
	}
	return nil
}

func scanLeague(row pgx.Row) (*model.League, error) {
	var l model.League
	var created pgtype.Timestamptz
	err := row.Scan(
		&l.ID,
		&l.Name,
		&l.OwnerID,
		&l.Hash,
		&l.PasswordHash,
		&l.Locked,
		&l.Archived,
		&created)
	if err != nil {
		return nil, err
	}

	l.Created = created.Time
	return &l, nil
}
