package web

import (
	"net/http"
	"time"

	"github.com/agroth3/nfl-playoff-picks/controller"
	"github.com/agroth3/nfl-playoff-picks/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

func getRouter(ctrl controller.C, render *render.Render, sessions *SessionManager, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Use(withLogger(logger))
	r.Use(loadUser(ctrl, sessions))

	r.NotFound(notFoundHandler(render))

	r.Get("/", rootHandler)

	r.Get("/signup", signupPage(render))
	r.Post("/signup", signupHandler(ctrl, render, sessions))
	r.Get("/login", loginPage(render))
	r.Post("/login", loginHandler(ctrl, render, sessions))
	r.Post("/logout", logoutHandler(sessions))

	r.Group(func(r chi.Router) {
		r.Use(requireUser)

		r.Get("/profile", profilePage(render))
		r.Post("/profile", updateProfileHandler(ctrl, render))

		r.Route("/leagues", func(r chi.Router) {
			r.Get("/", leaguesHandler(ctrl, render))
			r.Get("/new", newLeaguePage(render))
			r.Post("/new", createLeagueHandler(ctrl, render))
			// lid is the league's share hash, used to prefill the form from an invite link
			r.Get("/join", joinLeaguePage(render))
			r.Post("/join", joinLeagueHandler(ctrl, render))

			r.Route("/{leagueID:\\d+}", func(r chi.Router) {
				r.Use(leagueCtx(ctrl, render))

				r.Get("/", http.HandlerFunc(leagueRootHandler))
				r.Get("/details", leagueDetailsHandler(ctrl, render))
				r.Get("/entries", entriesPage(ctrl, render))
				r.Post("/entries", submitPicksHandler(ctrl, render))
				r.Get("/members", membersHandler(ctrl, render))
				r.Post("/members", removeMemberHandler(ctrl, render))
				r.Get("/admin", adminPage(ctrl, render))
				r.Post("/admin", adminActionHandler(ctrl, render))
				r.Post("/delete", deleteLeagueHandler(ctrl, render))
			})
		})
	})

	return r
}
