package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRouter(h *Handler, mw *Middleware) http.Handler {
	router := chi.NewRouter()

	router.Use(mw.Log, mw.Recover, mw.Cors)

	router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Get("/health", h.Health)
			r.Get("/swagger/*", httpSwagger.WrapHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.Auth)

			r.Get("/invoices", h.ListInvoices)
			r.Get("/invoices/deleted", h.ListDeletedInvoices)
			r.Post("/invoices", h.CreateInvoice)
			r.Post("/invoices/import", h.ImportInvoices)
			r.Get("/invoices/{id}", h.GetInvoice)
			r.Put("/invoices/{id}", h.UpdateInvoice)
			r.Delete("/invoices/{id}", h.DeleteInvoice)
			r.Post("/invoices/{id}/restore", h.RestoreInvoice)
			r.Delete("/invoices/{id}/permanent", h.PermanentlyDeleteInvoice)
			r.Get("/invoices/{id}/pdf", h.InvoicePDF)

			r.Get("/clients", h.ListClients)
			r.Post("/clients", h.CreateClient)
			r.Post("/clients/import", h.ImportClients)
			r.Get("/clients/{id}", h.GetClient)
			r.Put("/clients/{id}", h.UpdateClient)
			r.Delete("/clients/{id}", h.DeleteClient)

			r.Get("/dashboard/kpi", h.KPI)
			r.Get("/dashboard/chart", h.Chart)

			r.Get("/ai/messages", h.Messages)
			r.Get("/ai/analytics", h.Analytics)
			r.Get("/ai/activity", h.SendingActivity)
			r.Post("/ai/send", h.SendReminders)
		})
	})

	return router
}
