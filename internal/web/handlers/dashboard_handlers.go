package handlers

import (
	"net/http"

	"shopfront/internal/api"
	"shopfront/internal/catalog"
	"shopfront/internal/models"
	"shopfront/internal/session"
)

type dashboardPage struct {
	basePage
	Stats    models.Stats
	LowStock []models.Product
}

// DashboardHandler renders the landing view. Admin sessions get the
// backend-computed aggregate plus a low-stock preview; everyone else gets
// the full product list reduced locally, with the categories counter
// intentionally left unset.
func DashboardHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromRequest(r)
	client := backendFor(sess)
	page := dashboardPage{basePage: newBasePage(w, r)}

	if sess.Can(session.CapViewReports) {
		stats, err := client.Stats(r.Context())
		if redirectIfUnauthorized(w, r, err) {
			return
		}
		if err != nil {
			page.Error = api.Detail(err)
		} else {
			page.Stats = stats
		}

		if low, err := client.LowStock(r.Context()); err == nil {
			if len(low) > 5 {
				low = low[:5]
			}
			page.LowStock = low
		}
	} else {
		products, err := client.Products(r.Context(), api.ProductQuery{})
		if redirectIfUnauthorized(w, r, err) {
			return
		}
		if err != nil {
			page.Error = api.Detail(err)
		} else {
			page.Stats = catalog.Aggregate(products)
		}
	}

	render(w, "dashboard.tmpl", page)
}
