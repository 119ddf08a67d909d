package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sentinelwatch/sentinel-backend/internal/admin"
	"github.com/sentinelwatch/sentinel-backend/internal/analysis"
	"github.com/sentinelwatch/sentinel-backend/internal/contact"
	handlers "github.com/sentinelwatch/sentinel-backend/internal/http"
)

type Router struct {
	AuthHandler     *handlers.AuthHandler
	AnalysisHandler *analysis.Handler
	ContactHandler  *contact.Handler
	AdminHandler    *admin.Handler
	AuthMW          fiber.Handler
	AdminMW         fiber.Handler
	AuthLimiter     fiber.Handler
	AnalyzeLimiter  fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	if r.AuthHandler != nil {
		app.Post("/api/register", r.AuthLimiter, r.AuthHandler.Register)
		app.Post("/api/login", r.AuthLimiter, r.AuthHandler.Login)
		app.Post("/api/logout", r.AuthMW, r.AuthHandler.Logout)
		app.Get("/api/user", r.AuthMW, r.AuthHandler.Me)
	}

	if r.AnalysisHandler != nil {
		// Auth runs first so the limiter can key by user id instead of IP.
		app.Post("/api/analyze", r.AuthMW, r.AnalyzeLimiter, r.AnalysisHandler.Analyze)
		app.Get("/api/analysis/history", r.AuthMW, r.AnalysisHandler.History)
		app.Get("/api/analysis/:id/export", r.AuthMW, r.AnalysisHandler.Export)
	}

	if r.ContactHandler != nil {
		app.Post("/api/contact", r.ContactHandler.Submit)
	}

	if r.AdminHandler != nil && r.AdminMW != nil {
		app.Get("/api/admin/contact-requests", r.AdminMW, r.AdminHandler.ListContactRequests)
		app.Patch("/api/admin/contact-requests/:id", r.AdminMW, r.AdminHandler.ResolveContactRequest)
		app.Get("/api/admin/stats", r.AdminMW, r.AdminHandler.Stats)
	}
}
