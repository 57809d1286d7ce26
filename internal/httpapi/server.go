package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"industrybrief/internal/industry"
	"industrybrief/internal/session"
)

const (
	CodeValidation  = "validation"
	CodeNotFound    = "not_found"
	CodeUnavailable = "unavailable"
	CodeInternal    = "internal"
)

type apiError struct {
	Code    string
	Message string
	Status  int
}

func (e *apiError) Error() string { return e.Code + ": " + e.Message }

// Validator is the pipeline entry point the shell calls for step one.
type Validator interface {
	Validate(ctx context.Context, industryQuery string) industry.ValidationResult
}

// Renderer exports a report as PDF. Optional; without one the render
// endpoint reports unavailable.
type Renderer interface {
	Render(ctx context.Context, industryQuery, report string) ([]byte, error)
}

type Server struct {
	validator Validator
	sessions  *session.Store
	renderer  Renderer
	tracer    trace.Tracer
}

func NewServer(v Validator, sessions *session.Store, renderer Renderer, tp trace.TracerProvider) http.Handler {
	if tp == nil {
		tp = noop.NewTracerProvider()
	}
	s := &Server{
		validator: v,
		sessions:  sessions,
		renderer:  renderer,
		tracer:    tp.Tracer("industrybrief/httpapi"),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/validate", s.handleValidate)
	mux.HandleFunc("/v1/report", s.handleReport)
	mux.HandleFunc("/v1/report/render", s.handleRenderReport)
	mux.HandleFunc("/v1/sessions/", s.handleGetSession)
	mux.HandleFunc("/v1/health", s.handleHealth)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeAPIError(w http.ResponseWriter, err error) {
	var ae *apiError
	if errors.As(err, &ae) {
		writeJSON(w, ae.Status, map[string]any{
			"ok":    false,
			"error": map[string]any{"code": ae.Code, "message": ae.Message},
		})
		return
	}
	writeJSON(w, 500, map[string]any{
		"ok":    false,
		"error": map[string]any{"code": CodeInternal, "message": err.Error()},
	})
}

func methodOnly(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	var req struct {
		Industry string `json:"industry"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, &apiError{Code: CodeValidation, Message: "invalid json: " + err.Error(), Status: 400})
		return
	}

	res := s.validator.Validate(r.Context(), req.Industry)
	sess, err := s.sessions.Create(req.Industry, res)
	if err != nil {
		log.Printf("httpapi: create session failed: %v", err)
		writeAPIError(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{
		"ok":         true,
		"session_id": sess.ID,
		"accepted":   res.Accepted,
		"reason":     res.Reason,
		"message":    res.Message,
		"links":      res.Links,
		"step":       sess.Step,
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	sess, err := s.loadReportableSession(w, r)
	if err != nil {
		return
	}

	_, span := s.tracer.Start(r.Context(), "industry.BuildReport")
	report := industry.BuildReport(sess.Industry, sess.Documents)
	span.End()

	if err := s.sessions.SaveReport(sess.ID, report); err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{
		"ok":         true,
		"session_id": sess.ID,
		"report":     report,
		"word_count": industry.WordCount(report),
	})
}

func (s *Server) handleRenderReport(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	if s.renderer == nil {
		writeAPIError(w, &apiError{Code: CodeUnavailable, Message: "report rendering not configured", Status: 503})
		return
	}
	sess, err := s.loadReportableSession(w, r)
	if err != nil {
		return
	}
	report := sess.Report
	if report == "" {
		report = industry.BuildReport(sess.Industry, sess.Documents)
		if err := s.sessions.SaveReport(sess.ID, report); err != nil {
			writeAPIError(w, err)
			return
		}
	}

	pdf, err := s.renderer.Render(r.Context(), sess.Industry, report)
	if err != nil {
		log.Printf("httpapi: render failed for session %s: %v", sess.ID, err)
		writeAPIError(w, &apiError{Code: CodeInternal, Message: "render failed", Status: 500})
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// loadReportableSession reads {"session_id"} from the body and returns the
// session when it holds an accepted validation. Writes the error response
// itself so handlers can just return.
func (s *Server) loadReportableSession(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	var req struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		e := &apiError{Code: CodeValidation, Message: "invalid json: " + err.Error(), Status: 400}
		writeAPIError(w, e)
		return nil, e
	}
	sess, err := s.sessions.Get(strings.TrimSpace(req.SessionID))
	if errors.Is(err, session.ErrNotFound) {
		e := &apiError{Code: CodeNotFound, Message: "session not found", Status: 404}
		writeAPIError(w, e)
		return nil, e
	}
	if err != nil {
		writeAPIError(w, err)
		return nil, err
	}
	if !sess.Accepted {
		e := &apiError{Code: CodeValidation, Message: "session has no accepted validation", Status: 409}
		writeAPIError(w, e)
		return nil, e
	}
	return sess, nil
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/v1/sessions/")
	id = strings.TrimSuffix(id, "/")
	if id == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	sess, err := s.sessions.Get(id)
	if errors.Is(err, session.ErrNotFound) {
		writeAPIError(w, &apiError{Code: CodeNotFound, Message: "session not found", Status: 404})
		return
	}
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, 200, sess)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
}
