package model

import "time"

type League struct {
	ID       int32
	Name     string
	OwnerID  string
	Hash     string // shared with people invited to join the league
	Locked   bool   // picks are frozen and the leaderboard is visible
	Archived bool   // hidden from league listings
	Created  time.Time

	PasswordHash string // Never rendered
}

func (l *League) IsOwner(userID string) bool {
	return l.OwnerID == userID
}

type LeagueMember struct {
	User   User
	Joined time.Time
}

// LeagueUpdate is everything the admin page can change in one submission.
type LeagueUpdate struct {
	Locked         bool
	Archived       bool
	Teams          []TeamUpdate
	RemovedTeamIDs []int32
}

type TeamUpdate struct {
	ID           int32
	Name         string
	Abbreviation string
	Rank         int
	Wins         int
	ImageURI     string
}
