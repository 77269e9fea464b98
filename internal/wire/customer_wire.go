package wire

import (
	"carwash-marketplace/internal/adaptor"
	"carwash-marketplace/internal/data/entity"

	"github.com/go-chi/chi/v5"
)

func wireCustomer(r chi.Router, h *adaptor.CustomerHandler, g guards) {
	r.Post("/register", h.Register)
	r.Post("/verify-email", h.VerifyEmail)
	r.Post("/create-user", h.CreateUser)
	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(g.only(entity.RoleCustomer)...)

		r.Get("/me", h.Me)
		r.Put("/update", h.Update)
	})
}
