package handler

import (
	"net/http"
	"trivia-api/internal/config"
	"trivia-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures a new chi router.
func NewRouter(
	catalogHandler *CatalogHandler,
	quizHandler *QuizHandler,
	requireDelete func(http.Handler) http.Handler,
	errorMiddleware func(middleware.AppHandler) http.Handler,
	corsCfg config.CORSConfig,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsCfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusMethodNotAllowed)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_ = middleware.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
	})

	r.Method(http.MethodGet, "/categories", errorMiddleware(catalogHandler.listCategories))
	r.Method(http.MethodGet, "/categories/{categoryID:[0-9]+}/questions", errorMiddleware(catalogHandler.listCategoryQuestions))

	r.Method(http.MethodGet, "/questions", errorMiddleware(catalogHandler.listQuestions))
	// Search is public; creation checks its scope inside the handler.
	r.Method(http.MethodPost, "/questions", errorMiddleware(catalogHandler.postQuestions))
	r.With(requireDelete).Method(http.MethodDelete, "/questions/{questionID:[0-9]+}", errorMiddleware(catalogHandler.deleteQuestion))

	r.Method(http.MethodPost, "/quizzes", errorMiddleware(quizHandler.nextQuestion))

	return r
}
