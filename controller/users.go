package controller

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/agroth3/nfl-playoff-picks/db"
	"github.com/agroth3/nfl-playoff-picks/model"
	"go.uber.org/zap"
)

func (c *controller) SignUp(ctx context.Context, firstName, lastName, email, password string) (*model.User, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(email)

	verr := &ValidationError{Fields: make(map[string]string)}
	if firstName == "" {
		verr.Fields["firstName"] = "First name is required"
	}
	if lastName == "" {
		verr.Fields["lastName"] = "Last name is required"
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		verr.Fields["email"] = "Email is invalid"
	}
	validatePassword(verr.Fields, password)
	if err := verr.errOrNil(); err != nil {
		return nil, err
	}

	hash, err := c.hashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
	}
	if err := c.db.AddUser(ctx, u); err != nil {
		if errors.Is(err, db.ErrEmailTaken) {
			return nil, newValidationError("email", "A user already exists with this email")
		}
		return nil, fmt.Errorf("error adding user: %w", err)
	}

	c.logger.Info("user signed up", zap.String("user_id", u.ID))
	return u, nil
}

func (c *controller) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, err := c.db.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !checkPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (c *controller) GetUser(ctx context.Context, id string) (*model.User, error) {
	u, err := c.db.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error looking up user: %w", err)
	}
	return u, nil
}

func (c *controller) UpdateProfile(ctx context.Context, id, firstName, lastName string) (*model.User, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	verr := &ValidationError{Fields: make(map[string]string)}
	if firstName == "" {
		verr.Fields["firstName"] = "First name is required"
	}
	if lastName == "" {
		verr.Fields["lastName"] = "Last name is required"
	}
	if err := verr.errOrNil(); err != nil {
		return nil, err
	}

	if err := c.db.UpdateUserName(ctx, id, firstName, lastName); err != nil {
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	return c.GetUser(ctx, id)
}
