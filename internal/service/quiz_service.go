package service

import (
	"context"
	"fmt"
	"math/rand"
	"trivia-api/internal/data"
)

// maxRejections bounds the reject-and-redraw attempts before the picker
// switches to selecting directly among the unseen questions.
const maxRejections = 8

type selectorKind uint8

const (
	selectorUnset selectorKind = iota
	selectorAll
	selectorCategory
)

// CategorySelector chooses the quiz candidate pool: every question, or the
// questions of one category. The zero value selects nothing and is rejected.
type CategorySelector struct {
	kind       selectorKind
	categoryID int64
}

// AllCategories selects every question in the store.
func AllCategories() CategorySelector {
	return CategorySelector{kind: selectorAll}
}

// ByCategory selects the questions filed under categoryID.
func ByCategory(categoryID int64) CategorySelector {
	return CategorySelector{kind: selectorCategory, categoryID: categoryID}
}

// IsAll reports whether the selector covers every category.
func (c CategorySelector) IsAll() bool { return c.kind == selectorAll }

// CategoryID returns the selected category id and whether one is selected.
func (c CategorySelector) CategoryID() (int64, bool) {
	return c.categoryID, c.kind == selectorCategory
}

func (c CategorySelector) String() string {
	switch c.kind {
	case selectorAll:
		return "all"
	case selectorCategory:
		return fmt.Sprintf("category %d", c.categoryID)
	default:
		return "unset"
	}
}

// QuizServicer defines the quiz stepping operation.
type QuizServicer interface {
	NextQuestion(ctx context.Context, previous []int64, selector CategorySelector) (*data.Question, error)
}

// QuestionPool is the part of the question store the quiz reads.
type QuestionPool interface {
	GetAllQuestions(ctx context.Context) ([]*data.Question, error)
	GetQuestionsByCategoryID(ctx context.Context, categoryID int64) ([]*data.Question, error)
}

// QuizService hands out one unseen question per call. The session lives with
// the caller, which sends the ids already shown on every request.
type QuizService struct {
	pool QuestionPool
	// intn returns a uniform int in [0, n). It must be safe for concurrent use.
	intn func(n int) int
}

// NewQuizService creates a QuizService drawing from the process-wide random source.
func NewQuizService(pool QuestionPool) *QuizService {
	return &QuizService{pool: pool, intn: rand.Intn}
}

// NextQuestion returns a question from the selected pool whose id is not in
// previous. It returns nil, nil when the session is complete: the pool is
// empty or previous is at least as long as the pool. previous must be
// non-nil (it may be empty).
//
// The category itself is not validated; an unknown category is an empty pool.
func (s *QuizService) NextQuestion(ctx context.Context, previous []int64, selector CategorySelector) (*data.Question, error) {
	if previous == nil {
		return nil, fmt.Errorf("previous questions missing: %w", ErrBadRequest)
	}
	if selector.kind == selectorUnset {
		return nil, fmt.Errorf("quiz category missing: %w", ErrBadRequest)
	}

	pool, err := s.candidates(ctx, selector)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 || len(previous) >= len(pool) {
		return nil, nil
	}

	seen := make(map[int64]struct{}, len(previous))
	for _, id := range previous {
		seen[id] = struct{}{}
	}
	return s.pick(pool, seen), nil
}

func (s *QuizService) candidates(ctx context.Context, selector CategorySelector) ([]*data.Question, error) {
	if id, ok := selector.CategoryID(); ok {
		return s.pool.GetQuestionsByCategoryID(ctx, id)
	}
	return s.pool.GetAllQuestions(ctx)
}

// pick draws uniformly among the questions of pool not in seen, or returns
// nil when every question has been seen. While at least half of the pool is
// unseen it redraws from the whole pool a bounded number of times; otherwise,
// or once those attempts are spent, it takes the k-th unseen question.
func (s *QuizService) pick(pool []*data.Question, seen map[int64]struct{}) *data.Question {
	unseen := 0
	for _, q := range pool {
		if _, ok := seen[q.ID]; !ok {
			unseen++
		}
	}
	if unseen == 0 {
		return nil
	}

	if unseen*2 >= len(pool) {
		for i := 0; i < maxRejections; i++ {
			q := pool[s.intn(len(pool))]
			if _, ok := seen[q.ID]; !ok {
				return q
			}
		}
	}

	k := s.intn(unseen)
	for _, q := range pool {
		if _, ok := seen[q.ID]; ok {
			continue
		}
		if k == 0 {
			return q
		}
		k--
	}
	return nil
}
