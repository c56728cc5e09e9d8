package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/portfolio-backend/internal/models"
	"github.com/AnshRaj112/portfolio-backend/internal/services"
)

// ProjectResponse represents a created or fetched project.
type ProjectResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Project *models.Project `json:"project"`
}

// UpdatedProjectResponse represents the project returned after an update.
type UpdatedProjectResponse struct {
	Success        bool            `json:"success"`
	Message        string          `json:"message"`
	UpdatedProject *models.Project `json:"updatedProject"`
}

// ProjectsResponse represents the list of projects.
type ProjectsResponse struct {
	Success  bool             `json:"success"`
	Projects []models.Project `json:"projects"`
}

func projectInput(f fields) (services.ProjectInput, error) {
	in := services.ProjectInput{
		Title:       f.get("title"),
		Description: f.get("description"),
		GitRepoURL:  f.get("gitRepoURL"),
		ProjectLink: f.get("projectLink"),
		Stack:       f.get("stack"),
	}
	if v := f.get("technologies"); v != nil {
		in.Technologies = splitList(*v)
	}
	if v := f.get("deployed"); v != nil {
		deployed, err := parseBool("Deployed", *v)
		if err != nil {
			return in, err
		}
		in.Deployed = &deployed
	}
	return in, nil
}

// AddProject handles multipart project creation with a projectBanner file.
func (h *Handler) AddProject(w http.ResponseWriter, r *http.Request) {
	f, err := h.readFields(w, r)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	in, err := projectInput(f)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	banner, closeBanner, err := formFile(r, "projectBanner")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	defer closeBanner()

	p, err := h.svc.Projects.Create(r.Context(), in, banner)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ProjectResponse{Success: true, Message: "Project added successfully", Project: p})
}

func (h *Handler) GetAllProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.Projects.List(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ProjectsResponse{Success: true, Projects: projects})
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ProjectResponse{Success: true, Project: p})
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	f, err := h.readFields(w, r)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	in, err := projectInput(f)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	banner, closeBanner, err := formFile(r, "projectBanner")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	defer closeBanner()

	p, err := h.svc.Projects.Update(r.Context(), chi.URLParam(r, "id"), in, banner)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, UpdatedProjectResponse{Success: true, Message: "Project updated successfully", UpdatedProject: p})
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Projects.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		WriteError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Project deleted successfully")
}
