package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"interviewprep/internal/service"
	"interviewprep/internal/transport/rest/handler"
	"interviewprep/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	QuestionService *service.QuestionService
	AllowedOrigins  string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	questionHandler := handler.NewQuestionHandler(c.QuestionService)
	companyHandler := handler.NewCompanyHandler(c.QuestionService)

	// Request id first so every later layer can log it
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(corsMiddleware(c.AllowedOrigins))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Reference data
	v1.HandleFunc("/companies", companyHandler.ListCompanies).Methods("GET", "OPTIONS")
	v1.HandleFunc("/companies/trending", companyHandler.Trending).Methods("GET", "OPTIONS")
	v1.HandleFunc("/roles", companyHandler.ListRoles).Methods("GET", "OPTIONS")
	v1.HandleFunc("/tags", companyHandler.ListTags).Methods("GET", "OPTIONS")

	// Questions
	v1.HandleFunc("/questions/search", questionHandler.Search).Methods("POST", "OPTIONS")
	v1.HandleFunc("/questions/generate", questionHandler.Generate).Methods("POST", "OPTIONS")

	// Per-company
	v1.HandleFunc("/companies/{companyId}/questions", questionHandler.CompanyQuestions).Methods("GET", "OPTIONS")
	v1.HandleFunc("/companies/{companyId}/patterns", companyHandler.Patterns).Methods("GET", "OPTIONS")
	v1.HandleFunc("/companies/{companyId}/analysis", companyHandler.Analysis).Methods("GET", "OPTIONS")
	v1.HandleFunc("/companies/{companyId}/roles/{roleId}/question-set", companyHandler.RoleQuestionSet).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
