package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/portfolio-backend/internal/models"
	"github.com/AnshRaj112/portfolio-backend/internal/services"
)

// SkillResponse represents a single skill envelope.
type SkillResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Skill   *models.Skill `json:"skill"`
}

// SkillsResponse represents the list of skills.
type SkillsResponse struct {
	Success bool           `json:"success"`
	Skills  []models.Skill `json:"skills"`
}

func skillInput(f fields) (services.SkillInput, error) {
	in := services.SkillInput{Title: f.get("title")}
	if v := f.get("proficiency"); v != nil {
		n, err := parseInt("Proficiency", *v)
		if err != nil {
			return in, err
		}
		in.Proficiency = &n
	}
	return in, nil
}

// AddSkill accepts an optional svg icon.
func (h *Handler) AddSkill(w http.ResponseWriter, r *http.Request) {
	f, err := h.readFields(w, r)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	in, err := skillInput(f)
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

	sk, err := h.svc.Skills.Create(r.Context(), in, icon)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, SkillResponse{Success: true, Message: "Skill added successfully", Skill: sk})
}

func (h *Handler) GetAllSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.svc.Skills.List(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SkillsResponse{Success: true, Skills: skills})
}

func (h *Handler) GetSkill(w http.ResponseWriter, r *http.Request) {
	sk, err := h.svc.Skills.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SkillResponse{Success: true, Skill: sk})
}

func (h *Handler) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	f, err := h.readFields(w, r)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	in, err := skillInput(f)
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

	sk, err := h.svc.Skills.Update(r.Context(), chi.URLParam(r, "id"), in, icon)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SkillResponse{Success: true, Message: "Skill updated successfully", Skill: sk})
}

func (h *Handler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Skills.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		WriteError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Skill deleted successfully")
}
