package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	appanalysis "github.com/progcheck/progcheck/internal/application/analysis"
	domain "github.com/progcheck/progcheck/internal/domain/analysis"
	"github.com/progcheck/progcheck/internal/middleware"
)

type Router struct {
	svc *appanalysis.Service
}

func NewRouter(svc *appanalysis.Service) http.Handler {
	r := &Router{svc: svc}
	mux := chi.NewRouter()

	mux.Get("/health", middleware.LivenessHandler)
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Post("/analyze", r.wrap(r.handleAnalyze))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// wrap maps errors onto the response contract: validation failures are
// the caller's fault (400 with a bare error message), an unreadable
// model result is a 500 carrying a truncated excerpt, and everything
// else is a 500 with a generic message plus the caught error text.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": ve.Message})
			return
		}

		middleware.IncrementAnalysesFailed()

		var fe *domain.ResponseFormatError
		if errors.As(err, &fe) {
			writeJSON(w, http.StatusInternalServerError, errorBody{
				Status:  "error",
				Message: "analysis service returned an unreadable result",
				Detail:  fe.Excerpt(),
			})
			return
		}

		writeJSON(w, http.StatusInternalServerError, errorBody{
			Status:  "error",
			Message: "failed to process the analysis request",
			Detail:  err.Error(),
		})
	}
}

// POST /analyze
// Body: {"programMeta":{"title":"..."},"codeFiles":[{"fileName":"...","content":"..."}]}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	middleware.IncrementAnalyses()

	var body domain.AnalysisRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		// covers malformed JSON and a codeFiles that is not an array
		return &domain.ValidationError{Message: "request body must be a JSON object with a codeFiles array"}
	}

	analysis, err := r.svc.Analyze(req.Context(), body)
	if err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, struct {
		Status   string          `json:"status"`
		Analysis json.RawMessage `json:"analysis"`
	}{Status: "success", Analysis: analysis})
}

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}
