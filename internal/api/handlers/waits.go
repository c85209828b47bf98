package handlers

import (
	"net/http"
	"strings"

	"park-itinerary-service/internal/api/dto"
	"park-itinerary-service/internal/domain"
	"park-itinerary-service/internal/services"
)

type WaitHandler struct {
	Waits *services.WaitEstimator
}

// Estimate reports the expected queue wait for one attraction at ?at=HH:MM.
func (h *WaitHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	officialID := strings.TrimSpace(r.PathValue("official_id"))
	if officialID == "" {
		writeError(w, r, http.StatusBadRequest, "official_id is required")
		return
	}

	at := strings.TrimSpace(r.URL.Query().Get("at"))
	minutes, ok := domain.ParseTimeToMinutes(at)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "at must be HH:MM")
		return
	}

	est := h.Waits.EstimateWait(officialID, minutes)
	res := dto.WaitResponse{
		OfficialID:  officialID,
		At:          domain.MinutesToTimeString(minutes),
		WaitMinutes: est.Minutes,
		Matched:     est.Matched,
	}
	if est.Matched {
		res.SampleTimestamp = est.Timestamp
	}

	writeJSON(w, r, http.StatusOK, res)
}
