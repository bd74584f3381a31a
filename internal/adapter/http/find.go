package httpadapter

import (
	"encoding/json"
	"net/http"
)

// handleFind matches one ad-slot request against the creative index. The
// body is the raw request mapping; it is validated into a query before the
// index is consulted. Validation failures produce HTTP 422 with a message
// naming the offending field.
func (h *Handler) handleFind(w http.ResponseWriter, r *http.Request) {
	var input map[string]any
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	banners, err := h.selector.FindBanners(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"banners": banners})
}
