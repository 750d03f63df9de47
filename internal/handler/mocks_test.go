//go:build unit

package handler

import (
	"context"
	"net/http"
	"trivia-api/internal/auth"
	"trivia-api/internal/config"
	"trivia-api/internal/data"
	"trivia-api/internal/logger"
	"trivia-api/internal/middleware"
	"trivia-api/internal/service"

	"github.com/go-chi/chi/v5"
)

type mockCatalogService struct {
	categories service.Categories
	page       *service.QuestionPage
	err        error

	lastPage       int
	lastTerm       string
	lastCategoryID int64
}

var _ service.CatalogServicer = (*mockCatalogService)(nil)

func (m *mockCatalogService) ListCategories(ctx context.Context) (service.Categories, error) {
	return m.categories, m.err
}

func (m *mockCatalogService) ListQuestions(ctx context.Context, page int) (*service.QuestionPage, error) {
	m.lastPage = page
	return m.page, m.err
}

func (m *mockCatalogService) SearchQuestions(ctx context.Context, term string, page int) (*service.QuestionPage, error) {
	m.lastTerm, m.lastPage = term, page
	return m.page, m.err
}

func (m *mockCatalogService) ListCategoryQuestions(ctx context.Context, categoryID int64, page int) (*service.QuestionPage, error) {
	m.lastCategoryID, m.lastPage = categoryID, page
	return m.page, m.err
}

type mockQuestionService struct {
	created   *service.NewQuestion
	deletedID int64
	err       error
}

var _ service.QuestionServicer = (*mockQuestionService)(nil)

func (m *mockQuestionService) CreateQuestion(ctx context.Context, nq service.NewQuestion) (*data.Question, error) {
	m.created = &nq
	if m.err != nil {
		return nil, m.err
	}
	return &data.Question{ID: 42, Question: nq.Question, Answer: nq.Answer, CategoryID: nq.CategoryID, Difficulty: nq.Difficulty}, nil
}

func (m *mockQuestionService) DeleteQuestion(ctx context.Context, id int64) error {
	m.deletedID = id
	return m.err
}

type mockQuizService struct {
	next     *data.Question
	err      error
	called   bool
	previous []int64
	selector service.CategorySelector
}

var _ service.QuizServicer = (*mockQuizService)(nil)

func (m *mockQuizService) NextQuestion(ctx context.Context, previous []int64, selector service.CategorySelector) (*data.Question, error) {
	m.called = true
	m.previous, m.selector = previous, selector
	return m.next, m.err
}

type stubAuthorizer struct {
	decision auth.Decision
	scopes   []string
}

func (s *stubAuthorizer) Authorize(r *http.Request, scope string) (auth.Decision, error) {
	s.scopes = append(s.scopes, scope)
	return s.decision, nil
}

type testDeps struct {
	catalog   *mockCatalogService
	questions *mockQuestionService
	quiz      *mockQuizService
	authz     *stubAuthorizer
}

func newTestRouter(d *testDeps) *chi.Mux {
	if d.catalog == nil {
		d.catalog = &mockCatalogService{}
	}
	if d.questions == nil {
		d.questions = &mockQuestionService{}
	}
	if d.quiz == nil {
		d.quiz = &mockQuizService{}
	}
	if d.authz == nil {
		d.authz = &stubAuthorizer{decision: auth.Allowed}
	}
	log := logger.Nop()
	return NewRouter(
		NewCatalogHandler(d.catalog, d.questions, d.authz, log),
		NewQuizHandler(d.quiz, log),
		middleware.RequireScope(d.authz, auth.ScopeDeleteQuestions, log),
		middleware.Error(log),
		config.CORSConfig{AllowedOrigins: []string{"*"}},
	)
}

func testCategories() service.Categories {
	return service.Categories{
		{ID: 1, Name: "Science"},
		{ID: 2, Name: "Art"},
		{ID: 3, Name: "Geography"},
	}
}
