package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/portfolio-backend/internal/logger"
	"github.com/AnshRaj112/portfolio-backend/internal/middleware"
	"github.com/AnshRaj112/portfolio-backend/internal/models"
	"github.com/AnshRaj112/portfolio-backend/internal/services"
)

// SessionResponse represents a freshly issued session with its owner.
type SessionResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

// UserResponse represents the owner profile.
type UserResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *models.User `json:"user"`
}

func profileFrom(f fields) services.Profile {
	return services.Profile{
		FullName:     f.str("fullName"),
		Email:        f.str("email"),
		PhoneNumber:  f.str("phoneNumber"),
		AboutMe:      f.str("aboutMe"),
		PortfolioURL: f.str("portfolioURL", "portFolioURL"),
		GithubURL:    f.str("githubURL"),
		TwitterURL:   f.str("twitterURL"),
		LinkedInURL:  f.str("linkedInURL"),
	}
}

func (h *Handler) startSession(w http.ResponseWriter, status int, msg string, sess *services.Session) {
	h.setSessionCookie(w, sess.Token)
	writeJSON(w, status, SessionResponse{
		Success: true,
		Message: msg,
		Token:   sess.Token,
		User:    sess.User,
	})
}

// Register handles POST /user/register (multipart with avatar and resume).
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	f, err := h.readFields(w, r)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	files, closeFiles, err := formFiles(r, "avatar", "resume")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	defer closeFiles()

	sess, err := h.svc.Auth.Register(r.Context(), services.RegisterInput{
		Profile:  profileFrom(f),
		Password: f.str("password"),
		Avatar:   files["avatar"],
		Resume:   files["resume"],
	})
	middleware.RecordAuthAttempt("register", err == nil)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	h.startSession(w, http.StatusCreated, "User registered successfully.", sess)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	f, err := h.readFields(w, r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	sess, err := h.svc.Auth.Login(r.Context(), f.str("email"), f.str("password"))
	middleware.RecordAuthAttempt("login", err == nil)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	h.startSession(w, http.StatusOK, "User logged in successfully.", sess)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	writeMessage(w, http.StatusOK, "User logged out successfully")
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, UserResponse{Success: true, User: u})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFromContext(r.Context())

	f, err := h.readFields(w, r)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	files, closeFiles, err := formFiles(r, "avatar", "resume")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	defer closeFiles()

	updated, err := h.svc.Auth.UpdateProfile(r.Context(), u, services.ProfileUpdate{
		Profile: profileFrom(f),
		Avatar:  files["avatar"],
		Resume:  files["resume"],
	})
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{Success: true, Message: "User profile updated successfully", User: updated})
}

func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFromContext(r.Context())

	f, err := h.readFields(w, r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	err = h.svc.Auth.UpdatePassword(r.Context(), u, services.PasswordChange{
		Current: f.str("currentPassword"),
		New:     f.str("newPassword"),
		Confirm: f.str("confirmNewPassword"),
	})
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Password updated successfully.")
}

// Portfolio serves the public owner profile.
func (h *Handler) Portfolio(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Auth.Portfolio(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{Success: true, User: u})
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	f, err := h.readFields(w, r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	u, err := h.svc.Auth.ForgotPassword(r.Context(), f.str("email"))
	middleware.RecordAuthAttempt("forgot_password", err == nil)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	logger.FromRequest(r).Info().Msg("password reset mail sent")
	writeMessage(w, http.StatusOK, fmt.Sprintf("Reset password email sent to email: %s successfully", u.Email))
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	f, err := h.readFields(w, r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	sess, err := h.svc.Auth.ResetPassword(r.Context(), chi.URLParam(r, "token"), f.str("password"), f.str("confirmPassword"))
	middleware.RecordAuthAttempt("reset_password", err == nil)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	h.startSession(w, http.StatusOK, "Password reset successfully.", sess)
}
