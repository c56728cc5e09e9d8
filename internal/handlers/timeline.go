package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/portfolio-backend/internal/models"
	"github.com/AnshRaj112/portfolio-backend/internal/services"
)

// TimelineResponse represents a single timeline event envelope.
type TimelineResponse struct {
	Success       bool             `json:"success"`
	Message       string           `json:"message,omitempty"`
	TimelineEvent *models.Timeline `json:"timelineEvent"`
}

// TimelinesResponse represents the list of timeline events.
type TimelinesResponse struct {
	Success        bool              `json:"success"`
	TimelineEvents []models.Timeline `json:"timelineEvents"`
}

// from and to are accepted flat or nested under "timeline".
func timelineInput(f fields) services.TimelineInput {
	return services.TimelineInput{
		Title:       f.get("title"),
		Description: f.get("description"),
		From:        f.get("from", "timeline.from"),
		To:          f.get("to", "timeline.to"),
	}
}

func (h *Handler) AddTimeline(w http.ResponseWriter, r *http.Request) {
	f, err := h.readFields(w, r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	t, err := h.svc.Timelines.Create(r.Context(), timelineInput(f))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TimelineResponse{Success: true, Message: "Timeline event added successfully", TimelineEvent: t})
}

func (h *Handler) GetAllTimelines(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.Timelines.List(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TimelinesResponse{Success: true, TimelineEvents: events})
}

func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Timelines.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TimelineResponse{Success: true, TimelineEvent: t})
}

func (h *Handler) UpdateTimeline(w http.ResponseWriter, r *http.Request) {
	f, err := h.readFields(w, r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	t, err := h.svc.Timelines.Update(r.Context(), chi.URLParam(r, "id"), timelineInput(f))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TimelineResponse{Success: true, Message: "Timeline event updated successfully", TimelineEvent: t})
}

func (h *Handler) DeleteTimeline(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Timelines.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		WriteError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Timeline deleted successfully")
}
