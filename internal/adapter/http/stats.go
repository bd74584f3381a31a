package httpadapter

import (
	"net/http"
	"time"

	"adselect/internal/core/domain"
	"adselect/internal/core/port"
)

// handleStatsOverview returns aggregated delivery outcomes over a period.
// It accepts optional `from`, `to` (RFC3339 timestamps) and `campaign_id`
// query parameters. Without a period it defaults to the last 24 hours.
// Invalid parameters result in HTTP 400.
func (h *Handler) handleStatsOverview(w http.ResponseWriter, r *http.Request) {
	var (
		q       = r.URL.Query()
		fromStr = q.Get("from")
		toStr   = q.Get("to")
		req     port.StatsReq
		err     error
	)

	if fromStr != "" {
		req.From, err = time.Parse(time.RFC3339, fromStr)
		if err != nil {
			http.Error(w, "invalid 'from' timestamp", http.StatusBadRequest)
			return
		}
	} else {
		req.From = time.Now().Add(-24 * time.Hour)
	}

	if toStr != "" {
		req.To, err = time.Parse(time.RFC3339, toStr)
		if err != nil {
			http.Error(w, "invalid 'to' timestamp", http.StatusBadRequest)
			return
		}
	} else {
		req.To = time.Now()
	}

	if cid := q.Get("campaign_id"); cid != "" {
		id, err := domain.NewId(cid)
		if err != nil {
			http.Error(w, "invalid campaign_id", http.StatusBadRequest)
			return
		}
		req.CampaignId = &id
	}

	stats, err := h.events.GetStats(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}
