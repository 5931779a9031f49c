package web

import (
	"fmt"

	"github.com/agroth3/nfl-playoff-picks/model"
)

type tab struct {
	Name    string
	Href    string
	Current bool
}

const (
	tabDetails = "details"
	tabEntries = "entries"
	tabMembers = "members"
	tabAdmin   = "admin"
)

// leagueTabs builds the tab bar for one request. The admin tab is only
// included for the league owner.
func leagueTabs(l *model.League, userID, current string) []tab {
	base := fmt.Sprintf("/leagues/%d", l.ID)

	tabs := []tab{
		{Name: "Details", Href: base + "/" + tabDetails, Current: current == tabDetails},
		{Name: "Your Picks", Href: base + "/" + tabEntries, Current: current == tabEntries},
		{Name: "Members", Href: base + "/" + tabMembers, Current: current == tabMembers},
	}
	if l.IsOwner(userID) {
		tabs = append(tabs, tab{Name: "Admin", Href: base + "/" + tabAdmin, Current: current == tabAdmin})
	}
	return tabs
}

// leaguePageData adds the league and its tabs to the data for a league page.
func leaguePageData(l *model.League, user *model.User, current string, data map[string]any) map[string]any {
	if data == nil {
		data = make(map[string]any)
	}
	data["League"] = l
	data["Tabs"] = leagueTabs(l, user.ID, current)
	data["IsOwner"] = l.IsOwner(user.ID)
	return data
}
