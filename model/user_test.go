package model

import "testing"

func TestDisplayName(t *testing.T) {
	tests := map[string]struct {
		user User
		want string
	}{
		"first and last": {user: User{FirstName: "Tyler", LastName: "Lockett", Email: "t@example.com"}, want: "Tyler Lockett"},
		"first only":     {user: User{FirstName: "Tyler", Email: "t@example.com"}, want: "Tyler"},
		"padded":         {user: User{FirstName: "  Tyler ", LastName: " Lockett  "}, want: "Tyler Lockett"},
		"email fallback": {user: User{Email: "t@example.com"}, want: "t@example.com"},
		"blank fallback": {user: User{FirstName: "  ", Email: "t@example.com"}, want: "t@example.com"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tc.user.DisplayName(); got != tc.want {
				t.Errorf("expected: '%s', got: '%s'", tc.want, got)
			}
		})
	}
}

func TestMemberPickScore(t *testing.T) {
	p := MemberPick{Points: 5, Team: Team{Wins: 10}}
	if p.Score() != 50 {
		t.Errorf("expected score of 50, got %d", p.Score())
	}
}
