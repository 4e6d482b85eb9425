package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/spec-kit/complaint-service/internal/api/http/handlers"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/realtime"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Complaints     *handlers.ComplaintsHandler
	Assignments    *handlers.AssignmentsHandler
	Messages       *handlers.MessagesHandler
	Feedback       *handlers.FeedbackHandler
	AuthMiddleware *auth.AuthMiddleware
	Hub            *realtime.Hub
	Guards         config.GuardsConfig
}

// RegisterRoutes wires HTTP routes.
//
// Complaint updates and message creation default to unguarded; the guard
// flags opt them into token enforcement without code changes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/password/reset/request", cfg.Users.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Users.ConfirmPasswordReset)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/me", cfg.Users.Profile)
	users.Put("/me", cfg.Users.UpdateProfile)

	complaints := app.Group("/complaints")
	complaints.Post("/", cfg.AuthMiddleware.Handle, cfg.Complaints.CreateComplaint)
	complaints.Get("/", cfg.AuthMiddleware.Handle, cfg.Complaints.ListComplaints)
	complaints.Get("/:id", cfg.AuthMiddleware.Handle, cfg.Complaints.GetComplaint)
	complaints.Put("/:id", guarded(cfg.Guards.ComplaintUpdate, cfg.AuthMiddleware, cfg.Complaints.UpdateComplaint)...)
	complaints.Delete("/:id", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin), cfg.Complaints.DeleteComplaint)
	complaints.Get("/:id/messages", cfg.AuthMiddleware.Handle, cfg.Messages.ListMessages)
	complaints.Get("/:id/feedback", cfg.AuthMiddleware.Handle, cfg.Feedback.GetComplaintFeedback)

	assignments := app.Group("/assignments", cfg.AuthMiddleware.Handle)
	assignments.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Assignments.CreateAssignment)
	assignments.Get("/", auth.RequireRole(domain.RoleAgent, domain.RoleAdmin), cfg.Assignments.ListAssignments)

	agents := app.Group("/agents", cfg.AuthMiddleware.Handle)
	agents.Get("/:agentId/assignments", cfg.Assignments.ListAgentAssignments)
	agents.Get("/:agentId/feedback", cfg.Feedback.ListAgentFeedback)

	messages := app.Group("/messages")
	messages.Post("/", guarded(cfg.Guards.MessageCreate, cfg.AuthMiddleware, cfg.Messages.CreateMessage)...)
	messages.Post("/read", cfg.AuthMiddleware.Handle, cfg.Messages.MarkRead)
	messages.Get("/unread", cfg.AuthMiddleware.Handle, cfg.Messages.UnreadCounts)
	messages.Post("/attachments", cfg.AuthMiddleware.Handle, cfg.Messages.UploadAttachments)

	app.Post("/feedback", cfg.AuthMiddleware.Handle, cfg.Feedback.CreateFeedback)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(cfg.Hub.Handler()))
}

func guarded(enabled bool, middleware *auth.AuthMiddleware, handler fiber.Handler) []fiber.Handler {
	if enabled {
		return []fiber.Handler{middleware.Handle, handler}
	}
	return []fiber.Handler{handler}
}
