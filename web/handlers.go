package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/agroth3/nfl-playoff-picks/controller"
	"github.com/agroth3/nfl-playoff-picks/db"
	"github.com/agroth3/nfl-playoff-picks/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type loggerCtxKey struct{}

func withLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), loggerCtxKey{}, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func loggerFrom(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// page builds the template data shared by every page.
func page(r *http.Request, title string, data map[string]any) map[string]any {
	if data == nil {
		data = make(map[string]any)
	}
	data["User"] = currentUser(r)
	data["Title"] = title
	return data
}

// renderError picks the error page for err. Anything unexpected is logged and
// shown as a generic failure.
func renderError(w http.ResponseWriter, r *http.Request, render *render.Render, err error) {
	var verr *controller.ValidationError
	switch {
	case errors.As(err, &verr):
		render.HTML(w, http.StatusBadRequest, "400", page(r, "Bad request", map[string]any{"Message": verr.Error()}))
	case errors.Is(err, db.ErrNotFound):
		render.HTML(w, http.StatusNotFound, "404", page(r, "Not found", nil))
	case errors.Is(err, controller.ErrLeagueLocked), errors.Is(err, controller.ErrNotLeagueAdmin):
		render.HTML(w, http.StatusForbidden, "403", page(r, "Forbidden", map[string]any{"Message": err.Error()}))
	case errors.Is(err, controller.ErrTooManyAttempts):
		render.HTML(w, http.StatusTooManyRequests, "429", page(r, "Slow down", nil))
	default:
		loggerFrom(r.Context()).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
		render.HTML(w, http.StatusInternalServerError, "500", page(r, "Error", nil))
	}
}

func badRequest(w http.ResponseWriter, r *http.Request, render *render.Render, msg string) {
	render.HTML(w, http.StatusBadRequest, "400", page(r, "Bad request", map[string]any{"Message": msg}))
}

func validationFields(err error) (map[string]string, bool) {
	var verr *controller.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields, true
	}
	return nil, false
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	if currentUser(r) == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/leagues", http.StatusSeeOther)
}

func notFoundHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.HTML(w, http.StatusNotFound, "404", page(r, "Not found", nil))
	}
}

func parseLeagueID(r *http.Request) (int32, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "leagueID"), 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}

// parseInt32s converts form values to ids, stopping at the first bad value.
func parseInt32s(vals []string) ([]int32, error) {
	ids := make([]int32, 0, len(vals))
	for _, v := range vals {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, int32(id))
	}
	return ids, nil
}

// formInt parses an optional integer form value, blank is 0.
func formInt(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func valueAt(vals []string, i int) string {
	if i < len(vals) {
		return vals[i]
	}
	return ""
}

// safeRedirect only allows local paths so the login form can't be used to
// send users to another site.
func safeRedirect(to string) string {
	if !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") || strings.HasPrefix(to, "/\\") {
		return "/leagues"
	}
	return to
}

// clientKey identifies the caller for rate limiting. RealIP has already
// replaced RemoteAddr when the app is behind a proxy.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type leagueCtxKey struct{}

// leagueCtx loads the league named in the url, checking the user is a member.
func leagueCtx(ctrl controller.C, render *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := parseLeagueID(r)
			if err != nil {
				badRequest(w, r, render, "invalid league id")
				return
			}

			l, err := ctrl.GetLeague(r.Context(), id, currentUser(r).ID)
			if err != nil {
				renderError(w, r, render, err)
				return
			}

			ctx := context.WithValue(r.Context(), leagueCtxKey{}, l)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func currentLeague(r *http.Request) *model.League {
	l, _ := r.Context().Value(leagueCtxKey{}).(*model.League)
	return l
}
