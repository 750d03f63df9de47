package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// ErrRecordNotFound is returned when a write targets a row that does not exist.
var ErrRecordNotFound = errors.New("record not found")

const questionColumns = `id, question, answer, category_id, difficulty`

// likeEscaper escapes LIKE wildcards with '!', which every supported
// dialect accepts as an ESCAPE character.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// SQLQuestionRepository is the sqlx-backed question store.
type SQLQuestionRepository struct {
	db *sqlx.DB
}

// NewSQLQuestionRepository creates a new SQLQuestionRepository.
func NewSQLQuestionRepository(db *sqlx.DB) *SQLQuestionRepository {
	return &SQLQuestionRepository{db: db}
}

// GetAllQuestions retrieves every question ordered by id.
func (r *SQLQuestionRepository) GetAllQuestions(ctx context.Context) ([]*Question, error) {
	questions := []*Question{}
	query := `SELECT ` + questionColumns + ` FROM questions ORDER BY id`
	if err := r.db.SelectContext(ctx, &questions, query); err != nil {
		return nil, fmt.Errorf("failed to get all questions: %w", err)
	}
	return questions, nil
}

// SearchQuestions retrieves the questions whose text contains term,
// ignoring case, ordered by id. Both sides are folded by the database's
// LOWER, so a term in the stored case always matches; SQLite folds ASCII only.
func (r *SQLQuestionRepository) SearchQuestions(ctx context.Context, term string) ([]*Question, error) {
	questions := []*Question{}
	pattern := "%" + likeEscaper.Replace(term) + "%"
	query := r.db.Rebind(`SELECT ` + questionColumns + ` FROM questions WHERE LOWER(question) LIKE LOWER(?) ESCAPE '!' ORDER BY id`)
	if err := r.db.SelectContext(ctx, &questions, query, pattern); err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}
	return questions, nil
}

// GetQuestionsByCategoryID retrieves the questions filed under a category, ordered by id.
func (r *SQLQuestionRepository) GetQuestionsByCategoryID(ctx context.Context, categoryID int64) ([]*Question, error) {
	questions := []*Question{}
	query := r.db.Rebind(`SELECT ` + questionColumns + ` FROM questions WHERE category_id = ? ORDER BY id`)
	if err := r.db.SelectContext(ctx, &questions, query, categoryID); err != nil {
		return nil, fmt.Errorf("failed to get questions by category id: %w", err)
	}
	return questions, nil
}

// CountQuestions returns the number of questions in the store.
func (r *SQLQuestionRepository) CountQuestions(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM questions`); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

// GetQuestionByID retrieves a single question. It returns nil, nil when the
// question does not exist.
func (r *SQLQuestionRepository) GetQuestionByID(ctx context.Context, id int64) (*Question, error) {
	var question Question
	query := r.db.Rebind(`SELECT ` + questionColumns + ` FROM questions WHERE id = ?`)
	if err := r.db.GetContext(ctx, &question, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found is not an error
		}
		return nil, fmt.Errorf("failed to get question by id: %w", err)
	}
	return &question, nil
}

// CreateQuestion inserts a new question and sets its ID.
// PostgreSQL has no LastInsertId, so the id is read back with RETURNING there.
func (r *SQLQuestionRepository) CreateQuestion(ctx context.Context, q *Question) error {
	query := `INSERT INTO questions (question, answer, category_id, difficulty) VALUES (?, ?, ?, ?)`
	args := []interface{}{q.Question, q.Answer, q.CategoryID, q.Difficulty}

	if r.db.DriverName() == "pgx" {
		row := r.db.QueryRowxContext(ctx, r.db.Rebind(query+` RETURNING id`), args...)
		if err := row.Scan(&q.ID); err != nil {
			return fmt.Errorf("failed to execute create question query: %w", err)
		}
		return nil
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("failed to execute create question query: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted question id: %w", err)
	}
	q.ID = id
	return nil
}

// DeleteQuestion removes a question by its ID.
func (r *SQLQuestionRepository) DeleteQuestion(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM questions WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no question found to delete with id %d: %w", id, ErrRecordNotFound)
	}
	return nil
}
