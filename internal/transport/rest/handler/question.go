package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"interviewprep/internal/model"
	"interviewprep/internal/service"
)

// QuestionHandler handles question search and generation endpoints
type QuestionHandler struct {
	questionSvc *service.QuestionService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionSvc *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionSvc: questionSvc}
}

// Search handles POST /v1/questions/search
func (h *QuestionHandler) Search(w http.ResponseWriter, r *http.Request) {
	var filter model.QuestionFilter
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := filter.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.questionSvc.SearchQuestions(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CompanyQuestions handles GET /v1/companies/{companyId}/questions
func (h *QuestionHandler) CompanyQuestions(w http.ResponseWriter, r *http.Request) {
	companyID := mux.Vars(r)["companyId"]

	filter, err := filterFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := filter.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	questions, err := h.questionSvc.GetCompanyQuestions(r.Context(), companyID, filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"companyId":  companyID,
		"questions":  questions,
		"totalCount": len(questions),
	})
}

// Generate handles POST /v1/questions/generate
func (h *QuestionHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CompanyID == "" || req.RoleID == "" {
		writeError(w, http.StatusBadRequest, "companyId and roleId are required")
		return
	}

	result, err := h.questionSvc.GenerateQuestions(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// filterFromQuery reads list parameters given either as repeated keys or as
// comma-separated values.
func filterFromQuery(q url.Values) (*model.QuestionFilter, error) {
	f := &model.QuestionFilter{
		Roles:           listParam(q, "role"),
		Categories:      enumParam[model.Category](q, "category"),
		Difficulties:    enumParam[model.Difficulty](q, "difficulty"),
		Tags:            listParam(q, "tag"),
		InterviewRounds: enumParam[model.InterviewRound](q, "round"),
		QuestionTypes:   enumParam[model.QuestionType](q, "type"),
	}

	minTime, err := intParam(q, "minTime")
	if err != nil {
		return nil, err
	}
	maxTime, err := intParam(q, "maxTime")
	if err != nil {
		return nil, err
	}
	if minTime != nil || maxTime != nil {
		f.TimeLimit = &model.TimeRange{Min: minTime, Max: maxTime}
	}

	if v := q.Get("minFrequency"); v != "" {
		freq, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid minFrequency %q", v)
		}
		f.MinFrequency = &freq
	}
	if v := q.Get("verified"); v != "" {
		verified, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid verified %q", v)
		}
		f.VerifiedOnly = verified
	}
	return f, nil
}

func listParam(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func enumParam[T ~string](q url.Values, key string) []T {
	values := listParam(q, key)
	if len(values) == 0 {
		return nil
	}
	out := make([]T, len(values))
	for i, v := range values {
		out[i] = T(v)
	}
	return out
}

func intParam(q url.Values, key string) (*int, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", key, v)
	}
	return &n, nil
}
