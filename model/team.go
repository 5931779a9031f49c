package model

import (
	"cmp"
	"slices"
	"time"
)

type Team struct {
	ID           int32
	LeagueID     int32
	Name         string
	Abbreviation string
	Conference   Conference
	Rank         int
	Wins         int
	ImageURI     string
	Created      time.Time
}

// Label is used as the column header on the pick matrix.
func (t *Team) Label() string {
	if t.Abbreviation != "" {
		return t.Abbreviation
	}
	return t.Name
}

// SortTeamsByRank orders teams by ascending rank. Teams with the same rank
// are ordered by name, then id, so the order never depends on creation order.
func SortTeamsByRank(teams []Team) {
	slices.SortStableFunc(teams, func(a, b Team) int {
		return cmp.Or(
			cmp.Compare(a.Rank, b.Rank),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.ID, b.ID))
	})
}
