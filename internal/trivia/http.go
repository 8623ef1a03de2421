package trivia

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandlers exposes the trivia REST endpoints.
type HTTPHandlers struct {
	svc *Service
}

func NewHTTPHandlers(svc *Service) *HTTPHandlers {
	return &HTTPHandlers{svc: svc}
}

type categoriesResponse struct {
	Success    bool       `json:"success"`
	Categories Categories `json:"categories"`
}

type questionListResponse struct {
	Success        bool       `json:"success"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
	Categories     Categories `json:"categories"`
}

type searchResponse struct {
	Success        bool       `json:"success"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
}

type categoryQuestionsResponse struct {
	Success         bool       `json:"success"`
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"total_questions"`
	CurrentCategory string     `json:"current_category"`
}

type questionResponse struct {
	Success  bool      `json:"success"`
	Question *Question `json:"question"`
}

type createResponse struct {
	Success    bool `json:"success"`
	QuestionID int  `json:"question_id"`
}

type deleteResponse struct {
	Success bool `json:"success"`
	Deleted int  `json:"deleted"`
}

// ListCategories handles GET /categories
func (h *HTTPHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.Categories(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, categoriesResponse{Success: true, Categories: cats})
}

// ListQuestions handles GET /questions?page=N
func (h *HTTPHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page := ParsePage(r.URL.Query().Get("page"))

	result, cats, err := h.svc.ListQuestions(r.Context(), page)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, questionListResponse{
		Success:        true,
		Questions:      result.Questions,
		TotalQuestions: result.Total,
		Categories:     cats,
	})
}

// GetQuestion handles GET /questions/{id}
func (h *HTTPHandlers) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}

	q, err := h.svc.GetQuestion(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, questionResponse{Success: true, Question: &q})
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}

	if err := h.svc.DeleteQuestion(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, deleteResponse{Success: true, Deleted: id})
}

// CreateOrSearchQuestions handles POST /questions. A non-empty searchTerm
// searches, anything else creates a question.
func (h *HTTPHandlers) CreateOrSearchQuestions(w http.ResponseWriter, r *http.Request) {
	req, err := decodeQuestionsRequest(r.Body)
	switch {
	case isMalformedJSON(err):
		httperrors.RespondBadRequest(w)
		return
	case err != nil:
		h.logger(r).Debug().Err(err).Msg("rejected question body")
		httperrors.RespondUnprocessable(w)
		return
	}

	if req.isSearch() {
		page := ParsePage(r.URL.Query().Get("page"))
		result, err := h.svc.SearchQuestions(r.Context(), *req.SearchTerm, page)
		if err != nil {
			h.respondServiceError(w, r, err)
			return
		}
		h.respondJSON(w, http.StatusOK, searchResponse{
			Success:        true,
			Questions:      result.Questions,
			TotalQuestions: result.Total,
		})
		return
	}

	q, err := h.svc.CreateQuestion(r.Context(), req.draft())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, createResponse{Success: true, QuestionID: q.ID})
}

// ListQuestionsByCategory handles GET /categories/{id}/questions
func (h *HTTPHandlers) ListQuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}
	page := ParsePage(r.URL.Query().Get("page"))

	result, category, err := h.svc.QuestionsByCategory(r.Context(), id, page)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, categoryQuestionsResponse{
		Success:         true,
		Questions:       result.Questions,
		TotalQuestions:  result.Total,
		CurrentCategory: category.Type,
	})
}

// PlayQuiz handles POST /quizzes
func (h *HTTPHandlers) PlayQuiz(w http.ResponseWriter, r *http.Request) {
	var body quizRequest
	if err := decodeBody(r.Body, &body); err != nil {
		httperrors.RespondBadRequest(w)
		return
	}
	req, err := body.toQuizRequest()
	if err != nil {
		h.logger(r).Debug().Err(err).Msg("rejected quiz request")
		httperrors.RespondBadRequest(w)
		return
	}

	q, found, err := h.svc.PlayQuiz(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	resp := questionResponse{Success: true}
	if found {
		resp.Question = &q
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

func statusFor(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindMalformed:
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

func (h *HTTPHandlers) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	kind := KindOf(err)
	event := h.logger(r).Info()
	if kind == KindUnprocessable {
		event = h.logger(r).Warn()
	}
	event.Err(err).Str("kind", kind.String()).Msg("request failed")
	httperrors.RespondError(w, statusFor(kind))
}

func (h *HTTPHandlers) logger(r *http.Request) *zerolog.Logger {
	l := logging.FromContext(r.Context()).With().Str("component", "trivia_http").Logger()
	return &l
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
