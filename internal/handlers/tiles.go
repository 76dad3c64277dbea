package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// HandleTileImage serves the rendered PNG for one tile of the current page
func (h *Handler) HandleTileImage(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.writeError(w, "Invalid tile index", http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	ok, err := h.session.RenderTile(&buf, index)
	if !ok {
		h.writeError(w, "Tile not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.writeError(w, "Failed to render tile: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("Unable to write tile image", "err", err)
	}
}
