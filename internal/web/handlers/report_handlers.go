package handlers

import (
	"net/http"
	"strconv"

	"shopfront/internal/api"
	"shopfront/internal/models"
)

type reportsPage struct {
	basePage
	Stats         models.Stats
	CategoryStats []models.CategoryStats
	Activity      []models.HistoryEntry
	LowStock      []models.Product
	Days          int
}

// ReportsHandler renders the admin reports view from the four reports
// endpoints. A failing section degrades to an error banner instead of
// taking the page down.
func ReportsHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromRequest(r)
	client := backendFor(sess)

	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			days = v
		}
	}

	page := reportsPage{basePage: newBasePage(w, r), Days: days}

	stats, err := client.Stats(r.Context())
	if redirectIfUnauthorized(w, r, err) {
		return
	}
	if err != nil {
		page.Error = api.Detail(err)
		render(w, "reports.tmpl", page)
		return
	}
	page.Stats = stats

	if categoryStats, err := client.CategoryStats(r.Context()); err != nil {
		page.Error = api.Detail(err)
	} else {
		page.CategoryStats = categoryStats
	}
	if activity, err := client.RecentActivity(r.Context(), days); err != nil {
		page.Error = api.Detail(err)
	} else {
		page.Activity = activity
	}
	if lowStock, err := client.LowStock(r.Context()); err != nil {
		page.Error = api.Detail(err)
	} else {
		page.LowStock = lowStock
	}

	render(w, "reports.tmpl", page)
}
