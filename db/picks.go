package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agroth3/nfl-playoff-picks/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const upsertPickQuery = `INSERT INTO picks (
		league_id,
		user_id,
		team_id,
		points
	) VALUES (
		@leagueID,
		@userID,
		@teamID,
		@points
	)
	ON CONFLICT (league_id, user_id, team_id)
	DO UPDATE SET points=EXCLUDED.points, updated=@updated
	RETURNING league_id, user_id, team_id, points, COALESCE(updated, created)`

func (db *postgresDB) UpsertPick(ctx context.Context, p *model.Pick) (*model.Pick, error) {
	if p == nil {
		return nil, errors.New("UpsertPick - pick is nil")
	}

	args := namedArgsForPick(p.LeagueID, p.UserID, p.TeamID, p.Points, db.now())
	res, err := scanPick(db.pool.QueryRow(ctx, upsertPickQuery, args))
	if err != nil {
		return nil, fmt.Errorf("error upserting pick: %w", mapWriteError(err))
	}
	return res, nil
}

func (db *postgresDB) UpsertPicks(ctx context.Context, leagueID int32, userID string, entries []model.PickEntry) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	updated := db.now()
	for _, e := range entries {
		args := namedArgsForPick(leagueID, userID, e.TeamID, e.Points, updated)
		if _, err := tx.Exec(ctx, upsertPickQuery, args); err != nil {
			return fmt.Errorf("error upserting pick for team %d: %w", e.TeamID, mapWriteError(err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error commiting picks: %w", err)
	}
	return nil
}

func (db *postgresDB) GetPicks(ctx context.Context, leagueID int32, userID string) ([]model.Pick, error) {
	const query = `SELECT league_id, user_id, team_id, points, COALESCE(updated, created)
		FROM picks
		WHERE league_id=@leagueID AND user_id=@userID
		ORDER BY created ASC, team_id ASC`

	args := pgx.NamedArgs{
		"leagueID": leagueID,
		"userID":   userID,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error querying picks: %w", err)
	}
	defer rows.Close()

	picks := make([]model.Pick, 0, 16)
	for rows.Next() {
		p, err := scanPick(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning pick: %w", err)
		}
		picks = append(picks, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return picks, nil
}

func (db *postgresDB) GetLeagueMemberPicks(ctx context.Context, leagueID int32) ([]model.MemberPick, error) {
	const query = `SELECT p.user_id, u.first_name, u.last_name, u.email, p.points,
			t.id, t.league_id, t.name, t.abbreviation, t.conference, t.rank, t.wins, t.image_uri, t.created
		FROM picks p
		JOIN league_members m ON m.league_id = p.league_id AND m.user_id = p.user_id
		JOIN users u ON u.id = p.user_id
		JOIN teams t ON t.id = p.team_id AND t.league_id = p.league_id
		WHERE p.league_id=@leagueID
		ORDER BY p.user_id, t.rank, t.id`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	if err != nil {
		return nil, fmt.Errorf("error querying league member picks: %w", err)
	}
	defer rows.Close()

	picks := make([]model.MemberPick, 0, 64)
	for rows.Next() {
		var mp model.MemberPick
		var conf DBConference
		var imageURI sql.NullString
		var created pgtype.Timestamptz
		err := rows.Scan(
			&mp.UserID,
			&mp.FirstName,
			&mp.LastName,
			&mp.Email,
			&mp.Points,
			&mp.Team.ID,
			&mp.Team.LeagueID,
			&mp.Team.Name,
			&mp.Team.Abbreviation,
			&conf,
			&mp.Team.Rank,
			&mp.Team.Wins,
			&imageURI,
			&created)
		if err != nil {
			return nil, fmt.Errorf("error scanning league member pick: %w", err)
		}
		mp.Team.Conference = conf.conference
		mp.Team.ImageURI = valueOrEmpty(imageURI)
		mp.Team.Created = created.Time
		picks = append(picks, mp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return picks, nil
}

func scanPick(row pgx.Row) (*model.Pick, error) {
	var p model.Pick
	var updated pgtype.Timestamptz
	if err := row.Scan(&p.LeagueID, &p.UserID, &p.TeamID, &p.Points, &updated); err != nil {
		return nil, err
	}
	p.Updated = updated.Time
	return &p, nil
}

func namedArgsForPick(leagueID int32, userID string, teamID int32, points int, updated pgtype.Timestamptz) pgx.NamedArgs {
	return pgx.NamedArgs{
		"leagueID": leagueID,
		"userID":   userID,
		"teamID":   teamID,
		"points":   points,
		"updated":  updated,
	}
}
