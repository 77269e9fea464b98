package wire

import (
	"carwash-marketplace/internal/adaptor"
	"carwash-marketplace/internal/data/entity"

	"github.com/go-chi/chi/v5"
)

func wireEmployee(r chi.Router, h *adaptor.EmployeeHandler, g guards) {
	r.Route("/employees", func(r chi.Router) {
		r.Post("/register", h.Apply)
		r.Post("/login", h.Login)

		// provider side of the hiring flow
		r.Group(func(r chi.Router) {
			r.Use(g.only(entity.RoleProvider)...)

			r.Get("/unverified", h.Applications)
			r.Post("/verify", h.Decide)
			r.Get("/provider-employees", h.ProviderEmployees)
		})

		r.Group(func(r chi.Router) {
			r.Use(g.only(entity.RoleEmployee)...)

			r.Get("/profile", h.Profile)
			r.Put("/profile", h.UpdateProfile)
		})
	})
}
