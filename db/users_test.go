package db

import (
	"context"
	"errors"
	"testing"

	"github.com/agroth3/nfl-playoff-picks/model"
)

func TestUsers_saveAndLoad(t *testing.T) {
	ctx := context.Background()
	u := addUser(t, " Tyler ", "Lockett")

	assertTrue(t, "ID set", u.ID != "")
	assertTrue(t, "Created set", !u.Created.IsZero())

	res, err := testDB.GetUser(ctx, u.ID)
	assertFatalf(t, err == nil, "error getting user: %v", err)
	assertEquals(t, "Email", u.Email, res.Email)
	assertEquals(t, "FirstName", "Tyler", res.FirstName)
	assertEquals(t, "LastName", "Lockett", res.LastName)
	assertEquals(t, "PasswordHash", "not-a-real-hash", res.PasswordHash)
	assertTrue(t, "Updated is zero", res.Updated.IsZero())

	byEmail, err := testDB.GetUserByEmail(ctx, "  "+u.Email+" ")
	assertFatalf(t, err == nil, "error getting user by email: %v", err)
	assertEquals(t, "ID", u.ID, byEmail.ID)

	err = testDB.UpdateUserName(ctx, u.ID, "Jalen", "Hurts")
	assertFatalf(t, err == nil, "error updating user: %v", err)
	res, err = testDB.GetUser(ctx, u.ID)
	assertFatalf(t, err == nil, "error getting user: %v", err)
	assertEquals(t, "DisplayName", "Jalen Hurts", res.DisplayName())
	assertTrue(t, "Updated set", !res.Updated.IsZero())
}

func TestUsers_duplicateEmail(t *testing.T) {
	u := addUser(t, "CeeDee", "Lamb")

	dup := &model.User{Email: u.Email, FirstName: "Other", PasswordHash: "x"}
	err := testDB.AddUser(context.Background(), dup)
	assertTrue(t, "ErrEmailTaken", errors.Is(err, ErrEmailTaken))
}

func TestUsers_notFound(t *testing.T) {
	ctx := context.Background()

	_, err := testDB.GetUser(ctx, "missing")
	assertTrue(t, "GetUser not found", errors.Is(err, ErrUserNotFound))

	_, err = testDB.GetUserByEmail(ctx, "missing@example.com")
	assertTrue(t, "GetUserByEmail not found", errors.Is(err, ErrUserNotFound))

	err = testDB.UpdateUserName(ctx, "missing", "a", "b")
	assertTrue(t, "UpdateUserName not found", errors.Is(err, ErrUserNotFound))
}
