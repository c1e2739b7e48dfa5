package httpapi

import (
	"fmt"
	"net/http"

	"fitcoach-backend-go/internal/csvimport"
	"fitcoach-backend-go/internal/models"
	"fitcoach-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

const maxCSVBytes = 2 << 20

type ImportResponse struct {
	Count    int              `json:"count"`
	Workouts []models.Workout `json:"workouts"`
}

func (s *Server) CreateWorkout(w http.ResponseWriter, r *http.Request) {
	var req WorkoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	workout, err := s.Services.Workouts.Create(r.Context(), CurrentIdentity(r), services.WorkoutInput{
		AthleteID: req.AthleteID,
		Date:      req.Date,
		Title:     req.Title,
		Exercises: req.Exercises,
		Notes:     req.Notes,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, workout)
}

func (s *Server) ListWorkouts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	workouts, err := s.Services.Workouts.List(r.Context(), CurrentIdentity(r), services.WorkoutQuery{
		AthleteID: q.Get("athlete_id"),
		Date:      q.Get("date"),
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, emptyIfNil(workouts))
}

func (s *Server) GetWorkout(w http.ResponseWriter, r *http.Request) {
	workout, err := s.Services.Workouts.Get(r.Context(), CurrentIdentity(r), chi.URLParam(r, "workoutId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, workout)
}

func (s *Server) UpdateWorkout(w http.ResponseWriter, r *http.Request) {
	var patch models.WorkoutPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	workout, err := s.Services.Workouts.Update(r.Context(), CurrentIdentity(r), chi.URLParam(r, "workoutId"), patch)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, workout)
}

func (s *Server) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	if err := s.Services.Workouts.Delete(r.Context(), CurrentIdentity(r), chi.URLParam(r, "workoutId")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Workout deleted"})
}

func (s *Server) ImportWorkouts(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCSVBytes)
	if err := r.ParseMultipartForm(maxCSVBytes); err != nil {
		badRequest(w, "A CSV file is required")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		badRequest(w, "A CSV file is required")
		return
	}
	defer file.Close()

	workouts, err := s.Services.Workouts.Import(r.Context(), CurrentIdentity(r), r.URL.Query().Get("athlete_id"), file)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, ImportResponse{Count: len(workouts), Workouts: emptyIfNil(workouts)})
}

// CSVTemplate is public so the frontend can link to it directly.
func (s *Server) CSVTemplate(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang != "es" {
		lang = "en"
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="workout_template_%s.csv"`, lang))
	if err := csvimport.WriteTemplate(w, lang); err != nil {
		s.Log.Sugar().Errorw("write csv template", "error", err)
	}
}
