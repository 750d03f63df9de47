package service

import (
	"context"
	"time"
	"trivia-api/internal/data"
)

// QuestionReader is the read side of the question store.
type QuestionReader interface {
	GetAllQuestions(ctx context.Context) ([]*data.Question, error)
	SearchQuestions(ctx context.Context, term string) ([]*data.Question, error)
	GetQuestionsByCategoryID(ctx context.Context, categoryID int64) ([]*data.Question, error)
	CountQuestions(ctx context.Context) (int, error)
	GetQuestionByID(ctx context.Context, id int64) (*data.Question, error)
}

// QuestionRepository defines the interface for database operations on questions.
type QuestionRepository interface {
	QuestionReader
	CreateQuestion(ctx context.Context, q *data.Question) error
	DeleteQuestion(ctx context.Context, id int64) error
}

// CategoryRepository defines the interface for database operations on categories.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]*data.Category, error)
	GetByID(ctx context.Context, id int64) (*data.Category, error)
}

// Cache is the key/value cache used for the category set.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
