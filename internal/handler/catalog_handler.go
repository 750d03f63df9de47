package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"trivia-api/internal/auth"
	"trivia-api/internal/data"
	"trivia-api/internal/logger"
	"trivia-api/internal/middleware"
	"trivia-api/internal/service"

	"github.com/go-chi/chi/v5"
)

type categoriesResponse struct {
	Success    bool               `json:"success"`
	Categories service.Categories `json:"categories"`
}

type listQuestionsResponse struct {
	Success         bool               `json:"success"`
	Questions       []*data.Question   `json:"questions"`
	TotalQuestions  int                `json:"total_questions"`
	Categories      service.Categories `json:"categories"`
	CurrentCategory *string            `json:"current_category"`
}

type scopedQuestionsResponse struct {
	Success         bool             `json:"success"`
	Questions       []*data.Question `json:"questions"`
	TotalQuestions  int              `json:"total_questions"`
	CurrentCategory *string          `json:"current_category"`
}

// questionsRequest is the body of POST /questions: a search when searchTerm
// is present, otherwise a new question.
type questionsRequest struct {
	SearchTerm *string `json:"searchTerm"`
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Category   flexInt `json:"category"`
	Difficulty flexInt `json:"difficulty"`
}

// CatalogHandler holds the dependencies for the question and category handlers.
type CatalogHandler struct {
	catalog   service.CatalogServicer
	questions service.QuestionServicer
	authz     auth.Authorizer
	log       logger.Logger
}

// NewCatalogHandler creates a new CatalogHandler with the given dependencies.
func NewCatalogHandler(cs service.CatalogServicer, qs service.QuestionServicer, a auth.Authorizer, log logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:   cs,
		questions: qs,
		authz:     a,
		log:       log,
	}
}

// listCategories serves GET /categories.
func (h *CatalogHandler) listCategories(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		return appError(err, "Failed to list categories")
	}
	if err := middleware.WriteJSON(w, http.StatusOK, categoriesResponse{Success: true, Categories: categories}); err != nil {
		h.log.Error(err, "Failed to write categories response")
	}
	return nil
}

// listQuestions serves GET /questions?page=N.
func (h *CatalogHandler) listQuestions(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	page, err := h.catalog.ListQuestions(r.Context(), service.ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		return appError(err, "Failed to list questions")
	}
	resp := listQuestionsResponse{
		Success:        true,
		Questions:      page.Questions,
		TotalQuestions: page.TotalQuestions,
		Categories:     page.Categories,
	}
	if err := middleware.WriteJSON(w, http.StatusOK, resp); err != nil {
		h.log.Error(err, "Failed to write questions response")
	}
	return nil
}

// postQuestions serves POST /questions, which either searches or creates.
func (h *CatalogHandler) postQuestions(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req questionsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return appError(err, "Failed to decode questions request")
	}
	if req.SearchTerm != nil {
		return h.searchQuestions(w, r, *req.SearchTerm)
	}
	return h.createQuestion(w, r, req)
}

func (h *CatalogHandler) searchQuestions(w http.ResponseWriter, r *http.Request, term string) *middleware.AppError {
	page, err := h.catalog.SearchQuestions(r.Context(), term, service.ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		return appError(err, "Failed to search questions")
	}
	resp := scopedQuestionsResponse{
		Success:        true,
		Questions:      page.Questions,
		TotalQuestions: page.TotalQuestions,
	}
	if err := middleware.WriteJSON(w, http.StatusOK, resp); err != nil {
		h.log.Error(err, "Failed to write search response")
	}
	return nil
}

func (h *CatalogHandler) createQuestion(w http.ResponseWriter, r *http.Request, req questionsRequest) *middleware.AppError {
	if appErr := h.authorize(r, auth.ScopeCreateQuestions); appErr != nil {
		return appErr
	}

	q, err := h.questions.CreateQuestion(r.Context(), service.NewQuestion{
		Question:   req.Question,
		Answer:     req.Answer,
		CategoryID: req.Category.Value,
		Difficulty: int(req.Difficulty.Value),
	})
	if err != nil {
		return appError(err, "Failed to create question")
	}
	h.log.Info(fmt.Sprintf("Created question %d in category %d", q.ID, q.CategoryID))

	if err := middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true, "created": q.ID}); err != nil {
		h.log.Error(err, "Failed to write create response")
	}
	return nil
}

// deleteQuestion serves DELETE /questions/{questionID}.
func (h *CatalogHandler) deleteQuestion(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := strconv.ParseInt(chi.URLParam(r, "questionID"), 10, 64)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid question id", Code: http.StatusNotFound}
	}
	if err := h.questions.DeleteQuestion(r.Context(), id); err != nil {
		return appError(err, "Failed to delete question")
	}
	h.log.Info(fmt.Sprintf("Deleted question %d", id))

	if err := middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true, "deleted": id}); err != nil {
		h.log.Error(err, "Failed to write delete response")
	}
	return nil
}

// listCategoryQuestions serves GET /categories/{categoryID}/questions?page=N.
func (h *CatalogHandler) listCategoryQuestions(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	categoryID, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid category id", Code: http.StatusNotFound}
	}
	page, err := h.catalog.ListCategoryQuestions(r.Context(), categoryID, service.ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		return appError(err, "Failed to list category questions")
	}
	resp := scopedQuestionsResponse{
		Success:         true,
		Questions:       page.Questions,
		TotalQuestions:  page.TotalQuestions,
		CurrentCategory: page.CurrentCategory,
	}
	if err := middleware.WriteJSON(w, http.StatusOK, resp); err != nil {
		h.log.Error(err, "Failed to write category questions response")
	}
	return nil
}

// authorize evaluates a scope for handlers whose route also serves public requests.
func (h *CatalogHandler) authorize(r *http.Request, scope string) *middleware.AppError {
	decision, err := h.authz.Authorize(r, scope)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Authorization check failed", Code: http.StatusInternalServerError}
	}
	switch decision {
	case auth.Allowed:
		return nil
	case auth.Unauthenticated:
		return &middleware.AppError{Error: errors.New(decision.String()), Message: "Missing or invalid credentials", Code: http.StatusUnauthorized}
	default:
		return &middleware.AppError{Error: errors.New(decision.String()), Message: "Missing scope " + scope, Code: http.StatusForbidden}
	}
}
