package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"interviewprep/internal/service"
)

const (
	defaultTrendingLimit = 10
	maxTrendingLimit     = 50
)

// CompanyHandler serves reference data and per-company analytics
type CompanyHandler struct {
	questionSvc *service.QuestionService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(questionSvc *service.QuestionService) *CompanyHandler {
	return &CompanyHandler{questionSvc: questionSvc}
}

// ListCompanies handles GET /v1/companies
func (h *CompanyHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"companies": h.questionSvc.Companies()})
}

// ListRoles handles GET /v1/roles
func (h *CompanyHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"roles": h.questionSvc.Roles()})
}

// ListTags handles GET /v1/tags
func (h *CompanyHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.questionSvc.Tags(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tags": tags})
}

// Trending handles GET /v1/companies/trending
func (h *CompanyHandler) Trending(w http.ResponseWriter, r *http.Request) {
	limit := defaultTrendingLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxTrendingLimit {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 50")
			return
		}
		limit = n
	}

	companies, err := h.questionSvc.TrendingCompanies(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"companies": companies})
}

// Patterns handles GET /v1/companies/{companyId}/patterns
func (h *CompanyHandler) Patterns(w http.ResponseWriter, r *http.Request) {
	companyID := mux.Vars(r)["companyId"]

	patterns, err := h.questionSvc.CompanyPatterns(r.Context(), companyID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"companyId": companyID,
		"patterns":  patterns,
	})
}

// RoleQuestionSet handles GET /v1/companies/{companyId}/roles/{roleId}/question-set
func (h *CompanyHandler) RoleQuestionSet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	set, err := h.questionSvc.GetRoleBasedQuestionSet(r.Context(), vars["companyId"], vars["roleId"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

// Analysis handles GET /v1/companies/{companyId}/analysis
func (h *CompanyHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	companyID := mux.Vars(r)["companyId"]

	analysis, err := h.questionSvc.AnalyzeCompanyPatterns(r.Context(), companyID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}
