package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"shopfront/internal/session"
	"shopfront/internal/web/handlers"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(handlers.RequestLogging)

	r.Get("/login", handlers.LoginPageHandler)
	r.With(handlers.LoginRateLimit).Post("/login", handlers.LoginHandler)
	r.Get("/register", handlers.RegisterPageHandler)
	r.With(handlers.LoginRateLimit).Post("/register", handlers.RegisterHandler)

	r.Group(func(r chi.Router) {
		r.Use(handlers.RequireSession)

		r.Get("/", handlers.DashboardHandler)
		r.Post("/logout", handlers.LogoutHandler)
		r.Get("/products", handlers.ProductsHandler)
		r.Get("/products/{id}", handlers.ProductDetailHandler)

		r.Group(func(r chi.Router) {
			r.Use(handlers.RequireCapability(session.CapManageProducts))
			r.Get("/products/new", handlers.NewProductHandler)
			r.Post("/products", handlers.CreateProductHandler)
			r.Get("/products/{id}/edit", handlers.EditProductHandler)
			r.Post("/products/{id}", handlers.UpdateProductHandler)
			r.Post("/products/{id}/delete", handlers.DeleteProductHandler)
		})

		r.With(handlers.RequireCapability(session.CapViewReports)).
			Get("/reports", handlers.ReportsHandler)
	})

	return r
}
