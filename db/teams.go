package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/agroth3/nfl-playoff-picks/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

func (db *postgresDB) GetTeams(ctx context.Context, leagueID int32) ([]model.Team, error) {
	const query = `SELECT id, league_id, name, abbreviation, conference, rank, wins, image_uri, created
		FROM teams
		WHERE league_id=@leagueID
		ORDER BY created ASC, id ASC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	if err != nil {
		return nil, fmt.Errorf("error querying teams: %w", err)
	}
	defer rows.Close()

	teams := make([]model.Team, 0, 16)
	for rows.Next() {
		var t model.Team
		var conf DBConference
		var imageURI sql.NullString
		var created pgtype.Timestamptz
		err := rows.Scan(
			&t.ID,
			&t.LeagueID,
			&t.Name,
			&t.Abbreviation,
			&conf,
			&t.Rank,
			&t.Wins,
			&imageURI,
			&created)
		if err != nil {
			return nil, fmt.Errorf("error scanning team: %w", err)
		}
		t.Conference = conf.conference
		t.ImageURI = valueOrEmpty(imageURI)
		t.Created = created.Time
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return teams, nil
}

func (db *postgresDB) AddTeam(ctx context.Context, t *model.Team) error {
	if t == nil {
		return errors.New("AddTeam - team is nil")
	}

	const query = `INSERT INTO teams (
		league_id,
		name,
		abbreviation,
		conference,
		rank,
		wins,
		image_uri
	) VALUES (
		@leagueID,
		@name,
		@abbreviation,
		@conference,
		@rank,
		@wins,
		@imageURI
	) RETURNING id, created`

	args := pgx.NamedArgs{
		"leagueID":     t.LeagueID,
		"name":         strings.TrimSpace(t.Name),
		"abbreviation": strings.TrimSpace(t.Abbreviation),
		"conference":   &DBConference{conference: t.Conference},
		"rank":         t.Rank,
		"wins":         t.Wins,
		"imageURI":     nullString(t.ImageURI),
	}

	var created pgtype.Timestamptz
	if err := db.pool.QueryRow(ctx, query, args).Scan(&t.ID, &created); err != nil {
		return fmt.Errorf("error inserting team: %w", mapWriteError(err))
	}
	t.Created = created.Time
	return nil
}
