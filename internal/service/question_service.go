package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"trivia-api/internal/data"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// NewQuestion is the payload for creating a question.
type NewQuestion struct {
	Question   string `validate:"required,max=1000"`
	Answer     string `validate:"required,max=1000"`
	CategoryID int64  `validate:"min=1"`
	Difficulty int    `validate:"min=1,max=5"`
}

// QuestionServicer defines the write operations on questions.
type QuestionServicer interface {
	CreateQuestion(ctx context.Context, nq NewQuestion) (*data.Question, error)
	DeleteQuestion(ctx context.Context, id int64) error
}

// QuestionService creates and deletes questions.
type QuestionService struct {
	questions  QuestionRepository
	categories CategoryRepository
	validate   *validator.Validate
	sanitizer  *bluemonday.Policy
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questions QuestionRepository, categories CategoryRepository) *QuestionService {
	return &QuestionService{
		questions:  questions,
		categories: categories,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		// Question text is plain text; strip every tag.
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// CreateQuestion validates and stores a new question. Invalid payloads, an
// unknown category and store failures are all ErrUnprocessable.
func (s *QuestionService) CreateQuestion(ctx context.Context, nq NewQuestion) (*data.Question, error) {
	nq.Question = s.plainText(nq.Question)
	nq.Answer = s.plainText(nq.Answer)

	if err := s.validate.StructCtx(ctx, nq); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnprocessable, describeValidation(err))
	}

	category, err := s.categories.GetByID(ctx, nq.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnprocessable, err)
	}
	if category == nil {
		return nil, fmt.Errorf("%w: category %d does not exist", ErrUnprocessable, nq.CategoryID)
	}

	q := &data.Question{
		Question:   nq.Question,
		Answer:     nq.Answer,
		CategoryID: nq.CategoryID,
		Difficulty: nq.Difficulty,
	}
	if err := s.questions.CreateQuestion(ctx, q); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnprocessable, err)
	}
	return q, nil
}

// DeleteQuestion removes a question. Deleting an unknown id is ErrUnprocessable.
func (s *QuestionService) DeleteQuestion(ctx context.Context, id int64) error {
	if err := s.questions.DeleteQuestion(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrUnprocessable, err)
	}
	return nil
}

// plainText strips markup and leaves the text unescaped for storage.
func (s *QuestionService) plainText(in string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(in)))
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed '%s'", fe.Field(), fe.Tag()))
	}
	return strings.Join(fields, ", ")
}
