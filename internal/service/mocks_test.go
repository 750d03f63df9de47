//go:build unit

package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"trivia-api/internal/cache"
	"trivia-api/internal/config"
	"trivia-api/internal/data"
)

// newTestCache creates a new in-memory cache for testing.
func newTestCache(t *testing.T) (*cache.Cache, func()) {
	t.Helper()
	c, err := cache.New(config.CacheConfig{FilePath: "file::memory:"})
	if err != nil {
		t.Fatalf("failed to create test cache: %v", err)
	}
	teardown := func() {
		c.Close()
	}
	return c, teardown
}

// mockQuestionRepository is an in-memory QuestionRepository. Questions are
// kept in id order, as the SQL store returns them.
type mockQuestionRepository struct {
	mu          sync.Mutex
	questions   []*data.Question
	errToReturn error
	calls       int
	nextID      int64
}

var _ QuestionRepository = (*mockQuestionRepository)(nil)

func (m *mockQuestionRepository) GetAllQuestions(ctx context.Context) ([]*data.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return append([]*data.Question{}, m.questions...), nil
}

func (m *mockQuestionRepository) SearchQuestions(ctx context.Context, term string) ([]*data.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	out := []*data.Question{}
	for _, q := range m.questions {
		if strings.Contains(strings.ToLower(q.Question), strings.ToLower(term)) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *mockQuestionRepository) GetQuestionsByCategoryID(ctx context.Context, categoryID int64) ([]*data.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	out := []*data.Question{}
	for _, q := range m.questions {
		if q.CategoryID == categoryID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *mockQuestionRepository) CountQuestions(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.errToReturn != nil {
		return 0, m.errToReturn
	}
	return len(m.questions), nil
}

func (m *mockQuestionRepository) GetQuestionByID(ctx context.Context, id int64) (*data.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	for _, q := range m.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, nil
}

func (m *mockQuestionRepository) CreateQuestion(ctx context.Context, q *data.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.errToReturn != nil {
		return m.errToReturn
	}
	m.nextID++
	q.ID = 1000 + m.nextID
	m.questions = append(m.questions, q)
	return nil
}

func (m *mockQuestionRepository) DeleteQuestion(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	for i, q := range m.questions {
		if q.ID == id {
			m.questions = append(m.questions[:i], m.questions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no question found to delete with id %d: %w", id, data.ErrRecordNotFound)
}

// mockCategoryRepository is a mock implementation of the CategoryRepository interface.
type mockCategoryRepository struct {
	categories    []*data.Category
	errToReturn   error
	getAllCalled  int
	getByIDCalled int
}

var _ CategoryRepository = (*mockCategoryRepository)(nil)

func (m *mockCategoryRepository) GetAll(ctx context.Context) ([]*data.Category, error) {
	m.getAllCalled++
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return append([]*data.Category{}, m.categories...), nil
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id int64) (*data.Category, error) {
	m.getByIDCalled++
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func defaultCategories() []*data.Category {
	return []*data.Category{
		{ID: 1, Name: "Science"},
		{ID: 2, Name: "Art"},
		{ID: 3, Name: "Geography"},
		{ID: 4, Name: "History"},
		{ID: 5, Name: "Entertainment"},
		{ID: 6, Name: "Sports"},
	}
}

// nineteenQuestions returns ids 1..19 spread over categories 1..5; question 7
// mentions "title" in two spellings of case.
func nineteenQuestions() []*data.Question {
	qs := make([]*data.Question, 0, 19)
	for i := int64(1); i <= 19; i++ {
		text := fmt.Sprintf("Question number %d?", i)
		switch i {
		case 7:
			text = "What is the TITLE of the 1990 fantasy film?"
		case 14:
			text = "Whose autobiography has the title 'I Know Why the Caged Bird Sings'?"
		}
		qs = append(qs, &data.Question{ID: i, Question: text, Answer: "answer", CategoryID: i%5 + 1, Difficulty: int(i%5) + 1})
	}
	return qs
}
