package model

import "time"

type Pick struct {
	LeagueID int32
	UserID   string
	TeamID   int32
	Points   int
	Updated  time.Time
}

// PickEntry is one row of a pick submission. Points of 0 means the member
// left the team blank.
type PickEntry struct {
	TeamID int32
	Points int
}

// MemberPick is a pick joined with the member's name and the team that was
// picked. It is the input for the leaderboard.
type MemberPick struct {
	UserID    string
	FirstName string
	LastName  string
	Email     string
	Points    int
	Team      Team
}

func (p *MemberPick) DisplayName() string {
	return displayName(p.FirstName, p.LastName, p.Email)
}

// Score is the number of points this pick is currently worth.
func (p *MemberPick) Score() int {
	return p.Points * p.Team.Wins
}
