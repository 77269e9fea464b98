package wire

import (
	"carwash-marketplace/internal/adaptor"
	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/internal/usecase"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, h *adaptor.BookingHandler, g guards) {
	r.Route("/bookings", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(g.only(entity.RoleCustomer)...)

			r.Post("/create", h.Create)
			r.Get("/accepted-bookings", h.List(usecase.ViewCustomerAccepted))
			r.Get("/rejected-bookings", h.List(usecase.ViewCustomerRejected))
			r.Get("/mine", h.List(usecase.ViewCustomerHistory))
		})

		r.Group(func(r chi.Router) {
			r.Use(g.only(entity.RoleProvider)...)

			r.Get("/booking-requests", h.List(usecase.ViewBookingRequests))
			r.Get("/pending-bookings", h.List(usecase.ViewPending))
			r.Get("/provider-accepted-bookings", h.List(usecase.ViewProviderAccepted))
			r.Post("/booking-status", h.SetStatus)
			r.Post("/assign-task", h.Assign)
		})

		r.Group(func(r chi.Router) {
			r.Use(g.only(entity.RoleEmployee)...)

			r.Post("/complete-task", h.Complete)
			r.Get("/employee-assigned-bookings", h.List(usecase.ViewEmployeeAssigned))
			r.Get("/employee-completed-tasks", h.List(usecase.ViewEmployeeCompleted))
		})

		r.Group(func(r chi.Router) {
			r.Use(g.only(entity.RoleCustomer, entity.RoleProvider, entity.RoleEmployee)...)

			r.Get("/notifications", h.Notifications)
			r.Post("/notifications/mark-read", h.MarkRead)
		})
	})
}
