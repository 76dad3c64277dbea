package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lehigh-university-libraries/clicklabel/internal/session"
)

type clickRequest struct {
	Tile   int    `json:"tile"`
	Button string `json:"button"` // "primary" or "secondary"
}

// HandleClick applies a mouse button to one tile. Unknown buttons and tiles
// off the page are accepted and ignored.
func (h *Handler) HandleClick(w http.ResponseWriter, r *http.Request) {
	var request clickRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	tile, changed, err := h.session.ClickTile(session.ParseSignal(request.Button), request.Tile)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	response := map[string]any{
		"changed": changed,
	}
	if changed {
		response["tile"] = tile
	}

	h.writeJSON(w, response)
	if changed {
		h.publish()
	}
}
