package trivia

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Routes mounts the trivia endpoints on a chi router that answers unknown
// paths and methods with the uniform JSON error body.
func Routes(h *HTTPHandlers) chi.Router {
	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondNotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondMethodNotAllowed(w)
	})

	r.Get("/categories", h.ListCategories)
	r.Get("/categories/{id}/questions", h.ListQuestionsByCategory)

	r.Get("/questions", h.ListQuestions)
	r.Post("/questions", h.CreateOrSearchQuestions)
	r.Get("/questions/{id}", h.GetQuestion)
	r.Delete("/questions/{id}", h.DeleteQuestion)

	r.Post("/quizzes", h.PlayQuiz)
	return r
}
