package handler

import (
	"medquiz/internal/middleware"
	"medquiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles everything mounted under /api.
type Handlers struct {
	Quiz    *QuizHandler
	Results *ResultsHandler
	Notes   *NotesHandler
	Tutor   *TutorHandler
	Health  *HealthHandler
}

// RegisterRoutes mounts the API on router. authService verifies bearer tokens
// for the routes that read the caller's identity.
func RegisterRoutes(router fiber.Router, h Handlers, authService service.AuthService) {
	vm := middleware.NewValidationMiddleware()

	router.Get("/health", h.Health.Health)

	quiz := router.Group("/quiz")
	quiz.Post("/generate", h.Quiz.GenerateQuiz)
	quiz.Post("/grade", middleware.OptionalAuth(authService), h.Quiz.GradeQuiz)
	quiz.Post("/results", middleware.OptionalAuth(authService), h.Results.SaveResult)
	quiz.Get("/results", middleware.Protected(authService), vm.ValidateHistoryQuery(), h.Results.ListResults)
	quiz.Get("/results/anonymous/:id", vm.ValidateResultID(), h.Results.GetAnonymousResult)

	router.Post("/notes/generate", h.Notes.GenerateNotes)
	router.Post("/tutor/ask", h.Tutor.Ask)
}
