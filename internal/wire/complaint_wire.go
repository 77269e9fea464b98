package wire

import (
	"carwash-marketplace/internal/adaptor"
	"carwash-marketplace/internal/data/entity"

	"github.com/go-chi/chi/v5"
)

func wireComplaint(r chi.Router, complaints *adaptor.ComplaintHandler, feedback *adaptor.FeedbackHandler, g guards) {
	r.Route("/complaints", func(r chi.Router) {
		r.With(g.only(entity.RoleCustomer)...).Post("/create", complaints.Create)

		r.Group(func(r chi.Router) {
			r.Use(g.only(entity.RoleProvider)...)

			r.Get("/provider", complaints.List)
			r.Put("/{id}/status", complaints.UpdateStatus)
		})
	})

	// public
	r.Get("/feedback", feedback.List)
	r.Post("/feedback", feedback.Create)
}
