package model

import (
	"strings"
	"time"
)

type User struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string // Never rendered
	Created      time.Time
	Updated      time.Time
}

// DisplayName is the name shown on the leaderboard and member list. Falls back
// to the email address when the user has not entered a name.
func (u *User) DisplayName() string {
	return displayName(u.FirstName, u.LastName, u.Email)
}

func displayName(first, last, fallback string) string {
	n := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	if n == "" {
		return fallback
	}
	return n
}
