package wire

import (
	"carwash-marketplace/internal/adaptor"
	"carwash-marketplace/internal/data/entity"

	"github.com/go-chi/chi/v5"
)

func wireProvider(r chi.Router, h *adaptor.ProviderHandler, g guards) {
	r.Route("/providers", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/verifyemail", h.VerifyEmail)
		r.Post("/login", h.Login)
		r.Post("/check-email", h.CheckEmail)

		r.Group(func(r chi.Router) {
			r.Use(g.only(entity.RoleProvider)...)

			r.Get("/me", h.Me)
			r.Put("/update", h.Update)
			r.Get("/locations", h.Locations)
		})
	})
}
