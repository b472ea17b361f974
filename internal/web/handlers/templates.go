package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"shopfront/internal/session"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}).ParseFS(templateFS, "templates/*.tmpl"))

func render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		logger.Error().Err(err).Str("template", name).Msg("failed to render template")
	}
}

// basePage carries what every view needs: the identity line, the nav gates
// and any queued flash message. Capability booleans are precomputed so the
// templates never inspect roles themselves.
type basePage struct {
	Username   string
	Role       string
	CanManage  bool
	CanReports bool
	CanHistory bool
	Flash      string
	Error      string
}

func newBasePage(w http.ResponseWriter, r *http.Request) basePage {
	page := basePage{Flash: takeFlash(w, r)}
	if sess, ok := SessionFromRequest(r); ok {
		page.Username = sess.User.Username
		page.Role = string(sess.User.Role)
		page.CanManage = sess.Can(session.CapManageProducts)
		page.CanReports = sess.Can(session.CapViewReports)
		page.CanHistory = sess.Can(session.CapViewHistory)
	}
	return page
}
