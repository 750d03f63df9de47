package data

// Question represents a single trivia question in the database.
type Question struct {
	ID         int64  `db:"id" json:"id"`
	Question   string `db:"question" json:"question"`
	Answer     string `db:"answer" json:"answer"`
	CategoryID int64  `db:"category_id" json:"category"`
	Difficulty int    `db:"difficulty" json:"difficulty"`
}

// Category represents a category questions are filed under.
type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
