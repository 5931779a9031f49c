package web

import (
	"errors"
	"net/http"

	"github.com/agroth3/nfl-playoff-picks/controller"
	"github.com/unrolled/render"
)

func signupPage(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r) != nil {
			http.Redirect(w, r, "/leagues", http.StatusSeeOther)
			return
		}
		render.HTML(w, http.StatusOK, "signup", page(r, "Sign up", nil))
	}
}

func signupHandler(ctrl controller.C, render *render.Render, sessions *SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			badRequest(w, r, render, err.Error())
			return
		}

		firstName := r.PostForm.Get("firstName")
		lastName := r.PostForm.Get("lastName")
		email := r.PostForm.Get("email")

		u, err := ctrl.SignUp(r.Context(), firstName, lastName, email, r.PostForm.Get("password"))
		if err != nil {
			if fields, ok := validationFields(err); ok {
				data := map[string]any{
					"Errors":    fields,
					"FirstName": firstName,
					"LastName":  lastName,
					"Email":     email,
				}
				render.HTML(w, http.StatusBadRequest, "signup", page(r, "Sign up", data))
				return
			}
			renderError(w, r, render, err)
			return
		}

		if err := sessions.Start(w, u.ID); err != nil {
			renderError(w, r, render, err)
			return
		}
		http.Redirect(w, r, "/leagues", http.StatusSeeOther)
	}
}

func loginPage(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		redirectTo := safeRedirect(r.URL.Query().Get("redirectTo"))
		if currentUser(r) != nil {
			http.Redirect(w, r, redirectTo, http.StatusSeeOther)
			return
		}
		render.HTML(w, http.StatusOK, "login", page(r, "Log in", map[string]any{"RedirectTo": redirectTo}))
	}
}

func loginHandler(ctrl controller.C, render *render.Render, sessions *SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			badRequest(w, r, render, err.Error())
			return
		}

		email := r.PostForm.Get("email")
		redirectTo := safeRedirect(r.PostForm.Get("redirectTo"))

		u, err := ctrl.Login(r.Context(), email, r.PostForm.Get("password"))
		if err != nil {
			if errors.Is(err, controller.ErrInvalidCredentials) {
				data := map[string]any{
					"Errors":     map[string]string{"email": "Invalid email or password"},
					"Email":      email,
					"RedirectTo": redirectTo,
				}
				render.HTML(w, http.StatusBadRequest, "login", page(r, "Log in", data))
				return
			}
			renderError(w, r, render, err)
			return
		}

		if err := sessions.Start(w, u.ID); err != nil {
			renderError(w, r, render, err)
			return
		}
		http.Redirect(w, r, redirectTo, http.StatusSeeOther)
	}
}

func logoutHandler(sessions *SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions.End(w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func profilePage(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := currentUser(r)
		data := map[string]any{
			"FirstName": u.FirstName,
			"LastName":  u.LastName,
		}
		render.HTML(w, http.StatusOK, "profile", page(r, "Profile", data))
	}
}

func updateProfileHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			badRequest(w, r, render, err.Error())
			return
		}

		firstName := r.PostForm.Get("firstName")
		lastName := r.PostForm.Get("lastName")

		u, err := ctrl.UpdateProfile(r.Context(), currentUser(r).ID, firstName, lastName)
		if err != nil {
			if fields, ok := validationFields(err); ok {
				data := map[string]any{
					"Errors":    fields,
					"FirstName": firstName,
					"LastName":  lastName,
				}
				render.HTML(w, http.StatusBadRequest, "profile", page(r, "Profile", data))
				return
			}
			renderError(w, r, render, err)
			return
		}

		data := map[string]any{
			"FirstName": u.FirstName,
			"LastName":  u.LastName,
			"Saved":     true,
		}
		pd := page(r, "Profile", data)
		pd["User"] = u
		render.HTML(w, http.StatusOK, "profile", pd)
	}
}
