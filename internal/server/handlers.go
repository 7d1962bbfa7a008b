package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/speakplan/internal/planner"
	"github.com/abhisek/speakplan/internal/practice"
	"github.com/abhisek/speakplan/internal/store"
)

const (
	maxBodyBytes         = 64 << 10
	defaultUpcomingLimit = 5
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"pools":       planner.TopicPools,
		"mockTopic":   planner.MockTopic,
		"reviewTopic": planner.ReviewTopic,
		"durations":   planner.DurationChoices,
		"weaknesses":  planner.WeaknessChoices,
		"targetBand": map[string]float64{
			"min":     planner.MinTargetBand,
			"max":     planner.MaxTargetBand,
			"default": planner.DefaultTargetBand,
		},
		"randomTalk": map[string]any{
			"topics":    practice.RandomTopics,
			"durations": practice.RandomTalkDurations,
		},
		"discussion": map[string]any{
			"topic":     practice.DiscussionTopic,
			"questions": practice.DiscussionQuestions,
		},
	})
}

// handleCreatePlan validates an Availability body and replaces the current
// plan with a freshly generated one. An optional ?seed= makes topic draws
// reproducible.
func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		status := http.StatusBadRequest
		if errors.As(err, new(*http.MaxBytesError)) {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	a, err := planner.DecodeAvailability(raw)
	if err != nil {
		var verr *planner.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":    "invalid availability",
				"problems": verr.Problems,
			})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	opts := []planner.Option{planner.WithMockCap(s.mockCap)}
	if v := r.URL.Query().Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid seed"})
			return
		}
		opts = append(opts, planner.WithSeed(seed))
	}

	plan := planner.Generate(a, s.now(), opts...)
	rec, err := s.plans.Save(r.Context(), a, plan)
	if err != nil {
		s.fail(w, err)
		return
	}

	s.log.Info("plan generated",
		"id", rec.ID,
		"days", len(a.Days),
		"sessions", len(plan.Sessions),
	)
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleCurrentPlan(w http.ResponseWriter, r *http.Request) {
	rec, err := s.plans.Current(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleResetPlan(w http.ResponseWriter, r *http.Request) {
	if err := s.plans.Reset(r.Context()); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWeeks(w http.ResponseWriter, r *http.Request) {
	rec, err := s.plans.Current(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec.Plan.Weeks())
}

func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	limit := defaultUpcomingLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > planner.HorizonDays+1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("limit must be between 1 and %d", planner.HorizonDays+1),
			})
			return
		}
		limit = n
	}

	rec, err := s.plans.Current(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec.Plan.Upcoming(s.now(), limit))
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	rec, err := s.plans.Current(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec.Plan.Progress())
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status planner.Status `json:"status"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.plans.UpdateStatus(r.Context(), id, body.Status); err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(body.Status)})
}

// fail maps domain errors to status codes. Anything unrecognized is logged
// and reported as a 500.
func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNoPlan), errors.Is(err, planner.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, planner.ErrInvalidStatus):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		s.log.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
