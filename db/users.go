package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agroth3/nfl-playoff-picks/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const userColumns = `id, email, first_name, last_name, password_hash, created, updated`

func (db *postgresDB) AddUser(ctx context.Context, u *model.User) error {
	if u == nil {
		return errors.New("AddUser - user is nil")
	}

	const query = `INSERT INTO users (
		id,
		email,
		first_name,
		last_name,
		password_hash
	) VALUES (
		@id,
		@email,
		@firstName,
		@lastName,
		@passwordHash
	) RETURNING created`

	id := uuid.NewString()
	args := pgx.NamedArgs{
		"id":           id,
		"email":        normalizeEmail(u.Email),
		"firstName":    strings.TrimSpace(u.FirstName),
		"lastName":     strings.TrimSpace(u.LastName),
		"passwordHash": u.PasswordHash,
	}

	var created pgtype.Timestamptz
	if err := db.pool.QueryRow(ctx, query, args).Scan(&created); err != nil {
		return fmt.Errorf("error inserting user: %w", mapWriteError(err))
	}

	u.ID = id
	u.Email = normalizeEmail(u.Email)
	u.Created = created.Time
	return nil
}

func (db *postgresDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=@id`

	u, err := scanUser(db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user %s: %w", id, err)
	}
	return u, nil
}

func (db *postgresDB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=@email`

	u, err := scanUser(db.pool.QueryRow(ctx, query, pgx.NamedArgs{"email": normalizeEmail(email)}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user by email: %w", err)
	}
	return u, nil
}

func (db *postgresDB) UpdateUserName(ctx context.Context, id, firstName, lastName string) error {
	const query = `UPDATE users
		SET first_name=@firstName,
			last_name=@lastName,
			updated=@updated
		WHERE id=@id`

	args := pgx.NamedArgs{
		"id":        id,
		"firstName": strings.TrimSpace(firstName),
		"lastName":  strings.TrimSpace(lastName),
		"updated":   db.now(),
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error updating user %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	var created, updated pgtype.Timestamptz
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.PasswordHash,
		&created,
		&updated)
	if err != nil {
		return nil, err
	}

	u.Created = created.Time
	u.Updated = updated.Time
	return &u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
