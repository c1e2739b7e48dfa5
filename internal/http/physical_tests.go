package httpapi

import (
	"net/http"

	"fitcoach-backend-go/internal/models"
	"fitcoach-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

func (s *Server) CreateTest(w http.ResponseWriter, r *http.Request) {
	var req TestRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	test, err := s.Services.Tests.Create(r.Context(), CurrentIdentity(r), services.TestInput{
		AthleteID:  req.AthleteID,
		TestType:   req.TestType,
		TestName:   req.TestName,
		CustomName: req.CustomName,
		Value:      *req.Value,
		ValueLeft:  req.ValueLeft,
		ValueRight: req.ValueRight,
		Unit:       req.Unit,
		Date:       req.Date,
		Notes:      req.Notes,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, test)
}

func (s *Server) ListTests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tests, err := s.Services.Tests.List(r.Context(), CurrentIdentity(r), services.TestQuery{
		AthleteID: q.Get("athlete_id"),
		TestType:  q.Get("test_type"),
		TestName:  q.Get("test_name"),
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, emptyIfNil(tests))
}

func (s *Server) TestHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	history, err := s.Services.Tests.History(r.Context(), CurrentIdentity(r), q.Get("athlete_id"), q.Get("test_name"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, emptyIfNil(history))
}

func (s *Server) UpdateTest(w http.ResponseWriter, r *http.Request) {
	var patch models.TestPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	test, err := s.Services.Tests.Update(r.Context(), CurrentIdentity(r), chi.URLParam(r, "testId"), patch)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, test)
}

func (s *Server) DeleteTest(w http.ResponseWriter, r *http.Request) {
	if err := s.Services.Tests.Delete(r.Context(), CurrentIdentity(r), chi.URLParam(r, "testId")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Test deleted"})
}

func (s *Server) AnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.Services.Analytics.Summary(r.Context(), CurrentIdentity(r), r.URL.Query().Get("athlete_id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

func (s *Server) AnalyticsProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.Services.Analytics.Progress(r.Context(), CurrentIdentity(r), r.URL.Query().Get("athlete_id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if progress == nil {
		progress = map[string]services.TestProgress{}
	}
	WriteJSON(w, http.StatusOK, progress)
}
