package handlers

import (
	"net/http"

	"park-itinerary-service/internal/api/dto"
	"park-itinerary-service/internal/domain"
)

type AttractionHandler struct {
	Attractions []domain.Attraction
	VenueName   string
	Entrance    domain.Coordinates
}

// List returns the loaded attraction catalog.
func (h *AttractionHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := dto.ListAttractionsResponse{
		Venue: dto.VenueResponse{
			Name:     h.VenueName,
			Entrance: toCoordinate(h.Entrance),
		},
		Attractions: make([]dto.AttractionResponse, 0, len(h.Attractions)),
	}
	for _, a := range h.Attractions {
		item := dto.AttractionResponse{
			ID:              a.ID,
			OfficialID:      a.OfficialID,
			Name:            a.Name,
			AreaName:        a.AreaName,
			Entrance:        toCoordinate(a.Entrance),
			DurationMinutes: a.DurationMinutes,
		}
		if a.Exit != nil {
			exit := toCoordinate(*a.Exit)
			item.Exit = &exit
		}
		res.Attractions = append(res.Attractions, item)
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toCoordinate(c domain.Coordinates) dto.CoordinateResponse {
	return dto.CoordinateResponse{Lat: c.Lat, Lng: c.Lng}
}
