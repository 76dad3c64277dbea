package handlers

import (
	"log/slog"
	"net/http"
)

func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.session.View())
}

// HandleAdvance flushes the current page to the result file and shows the
// next one
func (h *Handler) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Advance(); err != nil {
		h.writeSessionError(w, err)
		return
	}
	h.writeJSON(w, h.session.View())
	h.publish()
}

// HandleClose ends the session after saving the current page
func (h *Handler) HandleClose(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Close(); err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSON(w, map[string]any{
		"closed":  true,
		"message": "Session closed, labels saved",
		"summary": h.session.Summary(),
	})
	h.events.Broadcast(Event{Type: eventClosed})

	if h.onClose != nil {
		slog.Info("Session closed from interface")
		go h.onClose()
	}
}

func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.session.Summary())
}
