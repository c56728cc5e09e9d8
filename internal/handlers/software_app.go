package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/portfolio-backend/internal/models"
)

// SoftwareAppResponse represents a single software application envelope.
type SoftwareAppResponse struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message,omitempty"`
	SoftwareApp *models.SoftwareApp `json:"softwareApp"`
}

// SoftwareAppsResponse represents the list of software applications.
type SoftwareAppsResponse struct {
	Success      bool                 `json:"success"`
	SoftwareApps []models.SoftwareApp `json:"softwareApps"`
}

// AddSoftwareApp requires an svg icon file.
func (h *Handler) AddSoftwareApp(w http.ResponseWriter, r *http.Request) {
	f, err := h.readFields(w, r)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	icon, closeIcon, err := formFile(r, "svg")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	defer closeIcon()

	app, err := h.svc.SoftwareApps.Create(r.Context(), f.str("name"), icon)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SoftwareAppResponse{Success: true, Message: "Software application added successfully.", SoftwareApp: app})
}

func (h *Handler) GetAllSoftwareApps(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.SoftwareApps.List(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SoftwareAppsResponse{Success: true, SoftwareApps: apps})
}

func (h *Handler) GetSoftwareApp(w http.ResponseWriter, r *http.Request) {
	app, err := h.svc.SoftwareApps.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SoftwareAppResponse{Success: true, SoftwareApp: app})
}

func (h *Handler) UpdateSoftwareApp(w http.ResponseWriter, r *http.Request) {
	f, err := h.readFields(w, r)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	icon, closeIcon, err := formFile(r, "svg")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	defer closeIcon()

	app, err := h.svc.SoftwareApps.Update(r.Context(), chi.URLParam(r, "id"), f.get("name"), icon)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SoftwareAppResponse{Success: true, Message: "Software application updated successfully.", SoftwareApp: app})
}

func (h *Handler) DeleteSoftwareApp(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.SoftwareApps.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		WriteError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Software application deleted successfully.")
}
