package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
	"trivia-api/internal/data"
	"trivia-api/internal/logger"
)

const categoriesCacheKey = "categories:v1"

// Categories is the category set ordered by id. It marshals to a JSON object
// mapping each id to its name, keeping id order.
type Categories []*data.Category

// MarshalJSON implements json.Marshaler.
func (c Categories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.FormatInt(cat.ID, 10)))
		buf.WriteByte(':')
		name, err := json.Marshal(cat.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// QuestionPage is one window of a question listing.
type QuestionPage struct {
	Questions      []*data.Question
	TotalQuestions int
	// Categories is only populated by the unscoped listing.
	Categories Categories
	// CurrentCategory is the category name for category-scoped listings, nil otherwise.
	CurrentCategory *string
}

// CatalogServicer defines the read operations over the question bank.
type CatalogServicer interface {
	ListCategories(ctx context.Context) (Categories, error)
	ListQuestions(ctx context.Context, page int) (*QuestionPage, error)
	SearchQuestions(ctx context.Context, term string, page int) (*QuestionPage, error)
	ListCategoryQuestions(ctx context.Context, categoryID int64, page int) (*QuestionPage, error)
}

// CatalogService answers listing, search and category queries with a shared
// pagination contract. It holds no per-request state.
type CatalogService struct {
	questions  QuestionReader
	categories CategoryRepository
	cache      Cache
	cacheTTL   time.Duration
	log        logger.Logger
}

// NewCatalogService creates a new CatalogService. cache may be nil, in which
// case the category set is read from the store on every call.
func NewCatalogService(questions QuestionReader, categories CategoryRepository, cache Cache, cacheTTL time.Duration, log logger.Logger) *CatalogService {
	return &CatalogService{
		questions:  questions,
		categories: categories,
		cache:      cache,
		cacheTTL:   cacheTTL,
		log:        log,
	}
}

// ListCategories returns every category ordered by id, or ErrNotFound when
// the store holds none.
func (s *CatalogService) ListCategories(ctx context.Context) (Categories, error) {
	categories, err := s.allCategories(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("no categories: %w", ErrNotFound)
	}
	return categories, nil
}

// ListQuestions returns one page of all questions ordered by id together with
// the category set. An empty page is ErrNotFound.
func (s *CatalogService) ListQuestions(ctx context.Context, page int) (*QuestionPage, error) {
	all, err := s.questions.GetAllQuestions(ctx)
	if err != nil {
		return nil, err
	}
	window := paginate(all, page)
	if len(window) == 0 {
		return nil, fmt.Errorf("question page %d: %w", page, ErrNotFound)
	}

	total, err := s.questions.CountQuestions(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.allCategories(ctx)
	if err != nil {
		return nil, err
	}

	return &QuestionPage{
		Questions:      window,
		TotalQuestions: total,
		Categories:     categories,
	}, nil
}

// SearchQuestions returns one page of the questions whose text contains term,
// ignoring case. An empty page is a valid result.
func (s *CatalogService) SearchQuestions(ctx context.Context, term string, page int) (*QuestionPage, error) {
	matches, err := s.questions.SearchQuestions(ctx, term)
	if err != nil {
		return nil, err
	}
	total, err := s.questions.CountQuestions(ctx)
	if err != nil {
		return nil, err
	}
	return &QuestionPage{
		Questions:      paginate(matches, page),
		TotalQuestions: total,
	}, nil
}

// ListCategoryQuestions returns one page of the questions filed under a
// category. Both an unknown category and an empty page are ErrNotFound.
func (s *CatalogService) ListCategoryQuestions(ctx context.Context, categoryID int64, page int) (*QuestionPage, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("category %d: %w", categoryID, ErrNotFound)
	}

	questions, err := s.questions.GetQuestionsByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	window := paginate(questions, page)
	if len(window) == 0 {
		return nil, fmt.Errorf("category %d page %d: %w", categoryID, page, ErrNotFound)
	}

	total, err := s.questions.CountQuestions(ctx)
	if err != nil {
		return nil, err
	}

	name := category.Name
	return &QuestionPage{
		Questions:       window,
		TotalQuestions:  total,
		CurrentCategory: &name,
	}, nil
}

// allCategories reads the category set through the cache. Cache failures are
// logged and fall back to the store.
func (s *CatalogService) allCategories(ctx context.Context) (Categories, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, categoriesCacheKey)
		if err != nil {
			s.log.Error(err, "Failed to read categories from cache")
		} else if cached != nil {
			var categories []*data.Category
			if err := json.Unmarshal(cached, &categories); err == nil {
				return categories, nil
			}
			s.log.Warn("Discarding undecodable cached categories")
		}
	}

	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(categories) > 0 {
		if encoded, err := json.Marshal(categories); err == nil {
			if err := s.cache.Set(ctx, categoriesCacheKey, encoded, s.cacheTTL); err != nil {
				s.log.Error(err, "Failed to write categories to cache")
			}
		}
	}
	return categories, nil
}
