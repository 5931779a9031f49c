package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/agroth3/nfl-playoff-picks/controller"
	"github.com/agroth3/nfl-playoff-picks/model"
	"github.com/unrolled/render"
)

const leaderboardLockedMsg = "Leaderboard will be available once all picks are in and league is locked."

func leaguesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagues, err := ctrl.ListLeagues(r.Context(), currentUser(r).ID)
		if err != nil {
			renderError(w, r, render, err)
			return
		}
		render.HTML(w, http.StatusOK, "leagues", page(r, "Leagues", map[string]any{"Leagues": leagues}))
	}
}

func newLeaguePage(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.HTML(w, http.StatusOK, "leagueNew", page(r, "New league", nil))
	}
}

func createLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			badRequest(w, r, render, err.Error())
			return
		}

		name := r.PostForm.Get("name")
		l, err := ctrl.CreateLeague(r.Context(), currentUser(r).ID, name, r.PostForm.Get("password"))
		if err != nil {
			if fields, ok := validationFields(err); ok {
				data := map[string]any{"Errors": fields, "Name": name}
				render.HTML(w, http.StatusBadRequest, "leagueNew", page(r, "New league", data))
				return
			}
			renderError(w, r, render, err)
			return
		}

		http.Redirect(w, r, fmt.Sprintf("/leagues/%d/admin", l.ID), http.StatusSeeOther)
	}
}

func joinLeaguePage(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{"Hash": r.URL.Query().Get("lid")}
		render.HTML(w, http.StatusOK, "leagueJoin", page(r, "Join league", data))
	}
}

func joinLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			badRequest(w, r, render, err.Error())
			return
		}

		hash := r.PostForm.Get("hash")
		l, err := ctrl.JoinLeague(r.Context(), currentUser(r).ID, hash, r.PostForm.Get("password"), clientKey(r))
		if err != nil {
			var fields map[string]string
			status := http.StatusBadRequest
			if f, ok := validationFields(err); ok {
				fields = f
			} else if errors.Is(err, controller.ErrInvalidCredentials) {
				fields = map[string]string{"password": "Invalid id or password"}
			} else if errors.Is(err, controller.ErrTooManyAttempts) {
				fields = map[string]string{"hash": "Too many attempts, try again later"}
				status = http.StatusTooManyRequests
			} else {
				renderError(w, r, render, err)
				return
			}

			data := map[string]any{"Errors": fields, "Hash": hash}
			render.HTML(w, status, "leagueJoin", page(r, "Join league", data))
			return
		}

		http.Redirect(w, r, fmt.Sprintf("/leagues/%d/details", l.ID), http.StatusSeeOther)
	}
}

func leagueRootHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, fmt.Sprintf("/leagues/%d/details", currentLeague(r).ID), http.StatusSeeOther)
}

func leagueDetailsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := currentLeague(r)
		u := currentUser(r)
		data := leaguePageData(l, u, tabDetails, nil)

		// The leaderboard stays hidden until picks are frozen.
		if !l.Locked {
			data["Message"] = leaderboardLockedMsg
			render.HTML(w, http.StatusOK, "leagueDetails", page(r, l.Name, data))
			return
		}

		lb, err := ctrl.ComputeLeaderboard(r.Context(), l.ID)
		if err != nil {
			renderError(w, r, render, err)
			return
		}
		mine, err := ctrl.GetMyPicks(r.Context(), l.ID, u.ID)
		if err != nil {
			renderError(w, r, render, err)
			return
		}

		data["Leaderboard"] = lb
		data["MyPicks"] = mine
		render.HTML(w, http.StatusOK, "leagueDetails", page(r, l.Name, data))
	}
}

type entryRow struct {
	Team   model.Team
	Points int
}

func renderEntries(w http.ResponseWriter, r *http.Request, ctrl controller.C, render *render.Render, status int, points map[int32]int, extra map[string]any) {
	l := currentLeague(r)

	teams, err := ctrl.ListTeams(r.Context(), l.ID)
	if err != nil {
		renderError(w, r, render, err)
		return
	}

	rows := make([]entryRow, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, entryRow{Team: t, Points: points[t.ID]})
	}

	data := leaguePageData(l, currentUser(r), tabEntries, extra)
	data["Rows"] = rows
	data["NumTeams"] = len(teams)
	render.HTML(w, status, "leagueEntries", page(r, l.Name, data))
}

func entriesPage(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := currentLeague(r)

		picks, err := ctrl.GetPicks(r.Context(), l.ID, currentUser(r).ID)
		if err != nil {
			renderError(w, r, render, err)
			return
		}

		points := make(map[int32]int, len(picks))
		for _, p := range picks {
			points[p.TeamID] = p.Points
		}
		renderEntries(w, r, ctrl, render, http.StatusOK, points, nil)
	}
}

func submitPicksHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			badRequest(w, r, render, err.Error())
			return
		}

		teamIDs, err := parseInt32s(r.PostForm["teamId"])
		if err != nil {
			badRequest(w, r, render, "invalid team id")
			return
		}
		pointVals := r.PostForm["points"]

		batch := make([]model.PickEntry, 0, len(teamIDs))
		submitted := make(map[int32]int, len(teamIDs))
		for i, id := range teamIDs {
			p, err := formInt(valueAt(pointVals, i))
			if err != nil {
				// Out of range, so the controller reports it against the team.
				p = -1
			}
			batch = append(batch, model.PickEntry{TeamID: id, Points: p})
			submitted[id] = p
		}

		l := currentLeague(r)
		err = ctrl.ValidateAndUpsertPicks(r.Context(), l.ID, currentUser(r).ID, batch)
		if err != nil {
			if fields, ok := validationFields(err); ok {
				renderEntries(w, r, ctrl, render, http.StatusBadRequest, submitted, map[string]any{"Errors": fields})
				return
			}
			renderError(w, r, render, err)
			return
		}

		renderEntries(w, r, ctrl, render, http.StatusOK, submitted, map[string]any{"Saved": true})
	}
}

func membersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderMembers(w, r, ctrl, render, http.StatusOK, nil)
	}
}

func renderMembers(w http.ResponseWriter, r *http.Request, ctrl controller.C, render *render.Render, status int, extra map[string]any) {
	l := currentLeague(r)

	members, err := ctrl.ListMembers(r.Context(), l.ID)
	if err != nil {
		renderError(w, r, render, err)
		return
	}

	data := leaguePageData(l, currentUser(r), tabMembers, extra)
	data["Members"] = members
	render.HTML(w, status, "leagueMembers", page(r, l.Name, data))
}

func removeMemberHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			badRequest(w, r, render, err.Error())
			return
		}

		l := currentLeague(r)
		err := ctrl.RemoveMember(r.Context(), l.ID, currentUser(r).ID, r.PostForm.Get("userId"))
		if err != nil {
			if fields, ok := validationFields(err); ok {
				renderMembers(w, r, ctrl, render, http.StatusBadRequest, map[string]any{"Errors": fields})
				return
			}
			renderError(w, r, render, err)
			return
		}

		http.Redirect(w, r, fmt.Sprintf("/leagues/%d/members", l.ID), http.StatusSeeOther)
	}
}

func renderAdmin(w http.ResponseWriter, r *http.Request, ctrl controller.C, render *render.Render, status int, extra map[string]any) {
	l := currentLeague(r)
	u := currentUser(r)
	if !l.IsOwner(u.ID) {
		renderError(w, r, render, controller.ErrNotLeagueAdmin)
		return
	}

	teams, err := ctrl.ListTeams(r.Context(), l.ID)
	if err != nil {
		renderError(w, r, render, err)
		return
	}

	data := leaguePageData(l, u, tabAdmin, extra)
	data["Teams"] = teams
	data["Conferences"] = model.Conferences
	render.HTML(w, status, "leagueAdmin", page(r, l.Name, data))
}

func adminPage(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderAdmin(w, r, ctrl, render, http.StatusOK, nil)
	}
}

func adminActionHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			badRequest(w, r, render, err.Error())
			return
		}

		l := currentLeague(r)
		userID := currentUser(r).ID

		var err error
		switch intent := r.PostForm.Get("intent"); intent {
		case "add-team":
			t := &model.Team{
				Name:         r.PostForm.Get("name"),
				Abbreviation: r.PostForm.Get("abbreviation"),
				Conference:   model.ParseConference(r.PostForm.Get("conference")),
			}
			err = ctrl.AddTeam(r.Context(), l.ID, userID, t)
		case "update-league":
			var update *model.LeagueUpdate
			update, err = parseLeagueUpdate(r)
			if err != nil {
				badRequest(w, r, render, err.Error())
				return
			}
			err = ctrl.UpdateLeague(r.Context(), l.ID, userID, update)
		default:
			badRequest(w, r, render, fmt.Sprintf("unknown admin action: %s", intent))
			return
		}

		if err != nil {
			if fields, ok := validationFields(err); ok {
				renderAdmin(w, r, ctrl, render, http.StatusBadRequest, map[string]any{"Errors": fields})
				return
			}
			renderError(w, r, render, err)
			return
		}

		http.Redirect(w, r, fmt.Sprintf("/leagues/%d/admin", l.ID), http.StatusSeeOther)
	}
}

// parseLeagueUpdate reads the admin form. Team fields are parallel lists
// indexed by the position of the teamId value.
func parseLeagueUpdate(r *http.Request) (*model.LeagueUpdate, error) {
	f := r.PostForm

	teamIDs, err := parseInt32s(f["teamId"])
	if err != nil {
		return nil, fmt.Errorf("invalid team id")
	}
	removed, err := parseInt32s(f["removeTeam"])
	if err != nil {
		return nil, fmt.Errorf("invalid team id")
	}

	update := &model.LeagueUpdate{
		Locked:         f.Get("isLocked") == "on",
		Archived:       f.Get("isArchived") == "on",
		Teams:          make([]model.TeamUpdate, 0, len(teamIDs)),
		RemovedTeamIDs: removed,
	}

	for i, id := range teamIDs {
		rank, err := formInt(valueAt(f["rank"], i))
		if err != nil {
			return nil, fmt.Errorf("invalid rank for team %d", id)
		}
		wins, err := formInt(valueAt(f["wins"], i))
		if err != nil {
			return nil, fmt.Errorf("invalid wins for team %d", id)
		}

		update.Teams = append(update.Teams, model.TeamUpdate{
			ID:           id,
			Name:         valueAt(f["teamName"], i),
			Abbreviation: valueAt(f["teamAbbreviation"], i),
			Rank:         rank,
			Wins:         wins,
			ImageURI:     strings.TrimSpace(valueAt(f["imageUri"], i)),
		})
	}

	return update, nil
}

func deleteLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := currentLeague(r)
		if err := ctrl.DeleteLeague(r.Context(), l.ID, currentUser(r).ID); err != nil {
			renderError(w, r, render, err)
			return
		}
		http.Redirect(w, r, "/leagues", http.StatusSeeOther)
	}
}
