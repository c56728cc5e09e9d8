package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/portfolio-backend/internal/models"
	"github.com/AnshRaj112/portfolio-backend/internal/services"
)

// MessageResponse represents a single message envelope.
type MessageResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    *models.Message `json:"data,omitempty"`
}

// MessagesResponse represents the list of received messages.
type MessagesResponse struct {
	Success  bool             `json:"success"`
	Messages []models.Message `json:"messages"`
}

// SendMessage handles the public contact form.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	f, err := h.readFields(w, r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	msg, err := h.svc.Messages.Send(r.Context(), services.MessageInput{
		SenderName: f.str("senderName"),
		Subject:    f.str("subject"),
		Message:    f.str("message"),
	})
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "Message sent successfully", Data: msg})
}

func (h *Handler) GetAllMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.svc.Messages.List(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessagesResponse{Success: true, Messages: msgs})
}

func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := h.svc.Messages.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Success: true, Data: msg})
}

func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Messages.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		WriteError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Message deleted successfully")
}
