package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Opirel/finalProj-dnd-backend/internal/model/session"
	sessionService "github.com/Opirel/finalProj-dnd-backend/internal/service/session"
	"github.com/Opirel/finalProj-dnd-backend/internal/store"
	"github.com/Opirel/finalProj-dnd-backend/pkg/utils"
)

// Handler exposes the session CRUD surface over HTTP.
type Handler struct {
	svc *sessionService.Service
}

// New creates the session handler.
func New(svc *sessionService.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions", h.handleCreate)
	r.Get("/sessions", h.handleList)
	r.Get("/sessions/{sessionID}", h.handleGet)
	r.Put("/sessions/{sessionID}", h.handleUpdate)
	r.Delete("/sessions/{sessionID}", h.handleDelete)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload session.Session
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionID is required")
		return
	}
	if err := validateMessages(payload.Conversation); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.svc.Create(r.Context(), payload)
	if errors.Is(err, store.ErrSessionExists) {
		log.Printf("[session] attempt to create a session that already exists: %s", payload.SessionID)
		utils.RespondError(w, http.StatusBadRequest, "Session already exists")
		return
	}
	if err != nil {
		log.Printf("[session] failed to create session: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	utils.RespondJSON(w, http.StatusOK, created)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.svc.List(r.Context())
	if err != nil {
		log.Printf("[session] failed to list sessions: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to retrieve sessions")
		return
	}

	utils.RespondJSON(w, http.StatusOK, sessions)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	sess, err := h.svc.Get(r.Context(), sessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		utils.RespondError(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		log.Printf("[session] failed to get session %s: %v", sessionID, err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to retrieve session")
		return
	}

	utils.RespondJSON(w, http.StatusOK, sess)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload session.Session
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateMessages(payload.Conversation); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.svc.Update(r.Context(), sessionID, payload.Conversation)
	if errors.Is(err, store.ErrSessionNotFound) {
		utils.RespondError(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		log.Printf("[session] failed to update session %s: %v", sessionID, err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to update session")
		return
	}

	utils.RespondJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	err := h.svc.Delete(r.Context(), sessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		log.Printf("[session] attempt to delete a non-existent session: %s", sessionID)
		utils.RespondError(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		log.Printf("[session] failed to delete session %s: %v", sessionID, err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to delete session")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "session deleted successfully"})
}

func validateMessages(msgs []session.Message) error {
	for i, msg := range msgs {
		if !msg.Sender.Valid() {
			return fmt.Errorf("conversation[%d]: invalid sender %q", i, msg.Sender)
		}
	}
	return nil
}
