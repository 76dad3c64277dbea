package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/lehigh-university-libraries/clicklabel/internal/session"
)

type Handler struct {
	session *session.Session
	events  *Hub
	onClose func()

	publishMu sync.Mutex
}

// New wraps a started session. onClose, if set, runs after the operator
// closes the session from the interface.
func New(sess *session.Session, onClose func()) *Handler {
	return &Handler{
		session: sess,
		events:  NewHub(),
		onClose: onClose,
	}
}

// Shutdown disconnects live viewers. http.Server.Shutdown does not close
// hijacked websocket connections.
func (h *Handler) Shutdown() {
	h.events.Close()
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// writeSessionError maps session errors to status codes
func (h *Handler) writeSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrSessionClosed) {
		h.writeError(w, err.Error(), http.StatusConflict)
		return
	}
	h.writeError(w, err.Error(), http.StatusInternalServerError)
}
