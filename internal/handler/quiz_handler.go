package handler

import (
	"fmt"
	"net/http"
	"trivia-api/internal/data"
	"trivia-api/internal/logger"
	"trivia-api/internal/middleware"
	"trivia-api/internal/service"
)

// clickType is what the browser client sends as quiz_category.type for "All".
const clickType = "click"

type quizCategory struct {
	ID   flexInt `json:"id"`
	Type string  `json:"type"`
}

type quizRequest struct {
	PreviousQuestions []int64       `json:"previous_questions"`
	QuizCategory      *quizCategory `json:"quiz_category"`
}

// selector maps the wire category onto the service selector. Only a null or
// absent id, or type "click", selects all categories; {"id": 0} without that
// type is category 0, which usually holds no questions and so completes at once.
func (c quizCategory) selector() service.CategorySelector {
	if !c.ID.Set || c.Type == clickType {
		return service.AllCategories()
	}
	return service.ByCategory(c.ID.Value)
}

type quizResponse struct {
	Success  bool           `json:"success"`
	Question *data.Question `json:"question,omitempty"`
}

// QuizHandler serves the quiz stepping endpoint.
type QuizHandler struct {
	quiz service.QuizServicer
	log  logger.Logger
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(qs service.QuizServicer, log logger.Logger) *QuizHandler {
	return &QuizHandler{quiz: qs, log: log}
}

// nextQuestion serves POST /quizzes.
func (h *QuizHandler) nextQuestion(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req quizRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return appError(err, "Failed to decode quiz request")
	}
	if req.PreviousQuestions == nil || req.QuizCategory == nil {
		return appError(fmt.Errorf("%w: previous_questions and quiz_category are required", service.ErrBadRequest), "Incomplete quiz request")
	}

	q, err := h.quiz.NextQuestion(r.Context(), req.PreviousQuestions, req.QuizCategory.selector())
	if err != nil {
		return appError(err, "Failed to pick the next question")
	}
	if err := middleware.WriteJSON(w, http.StatusOK, quizResponse{Success: true, Question: q}); err != nil {
		h.log.Error(err, "Failed to write quiz response")
	}
	return nil
}
