package model

type Leaderboard struct {
	Scores []MemberScore
	Matrix PickMatrix
}

type MemberScore struct {
	Rank        int
	UserID      string
	DisplayName string
	Total       int
}

type PickMatrix struct {
	Headers []Team // ascending by rank
	Rows    []PickMatrixRow
}

type PickMatrixRow struct {
	UserID      string
	DisplayName string
	// One entry per header, 0 when the member did not pick that team.
	Cells []int
}
