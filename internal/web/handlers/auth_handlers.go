package handlers

import (
	"errors"
	"net/http"

	"shopfront/internal/api"
	"shopfront/internal/session"
)

type loginPage struct {
	basePage
	FormUsername string
	FieldErrors  []FieldError
}

type registerPage struct {
	basePage
	Form        registerForm
	FieldErrors []FieldError
}

func LoginPageHandler(w http.ResponseWriter, r *http.Request) {
	render(w, "login.tmpl", loginPage{basePage: newBasePage(w, r)})
}

// LoginHandler forwards the credentials to the backend and starts a session
// on success. The console never sees or stores the password beyond this
// request.
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	form := loginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	page := loginPage{basePage: newBasePage(w, r), FormUsername: form.Username}
	if errs := describe(validate.Struct(form)); len(errs) > 0 {
		page.FieldErrors = errs
		w.WriteHeader(http.StatusBadRequest)
		render(w, "login.tmpl", page)
		return
	}

	result, err := apiClient.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			page.Error = "Incorrect username or password"
			w.WriteHeader(http.StatusUnauthorized)
		} else {
			page.Error = api.Detail(err)
			w.WriteHeader(http.StatusBadGateway)
		}
		render(w, "login.tmpl", page)
		return
	}

	sess := session.New(result.User, result.AccessToken, sessionTTL)
	if err := sessionStore.Create(r.Context(), sess); err != nil {
		logger.Error().Err(err).Msg("failed to persist session")
		page.Error = "Could not start a session, please try again"
		w.WriteHeader(http.StatusInternalServerError)
		render(w, "login.tmpl", page)
		return
	}

	setSessionCookie(w, sess)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func RegisterPageHandler(w http.ResponseWriter, r *http.Request) {
	render(w, "register.tmpl", registerPage{
		basePage: newBasePage(w, r),
		Form:     registerForm{Role: "customer"},
	})
}

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	form := registerForm{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Role:     r.PostFormValue("role"),
	}

	page := registerPage{basePage: newBasePage(w, r), Form: form}
	if errs := describe(validate.Struct(form)); len(errs) > 0 {
		page.FieldErrors = errs
		w.WriteHeader(http.StatusBadRequest)
		render(w, "register.tmpl", page)
		return
	}

	if _, err := apiClient.Register(r.Context(), api.RegisterRequest{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
		Role:     form.Role,
	}); err != nil {
		page.Error = api.Detail(err)
		w.WriteHeader(http.StatusBadRequest)
		render(w, "register.tmpl", page)
		return
	}

	setFlash(w, "Registration successful! Please login.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LogoutHandler clears the session and the cookie together; every gated
// view becomes inaccessible immediately after.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	endSession(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
