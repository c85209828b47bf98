package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"park-itinerary-service/internal/api/dto"
	"park-itinerary-service/internal/domain"
	"park-itinerary-service/internal/metrics"
	"park-itinerary-service/internal/platform/obs"
	"park-itinerary-service/internal/ports"
	"park-itinerary-service/internal/services"
)

// Returned for caller input the planner cannot use.
var errBadRequest = errors.New("bad request")

type PlanHandler struct {
	Planner *services.Planner
	Catalog domain.AttractionCatalog
	// Optional. Keys are prefixed with CatalogVersion.
	Cache          ports.PlanCache
	CacheTTL       time.Duration
	CatalogVersion string
}

// Plan orders and simulates one trip for the submitted selection.
// An overrun is reported with remediation options; overrun_choice applies
// one of them in the same call.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	normalizeRequest(&req)

	key := ""
	if h.Cache != nil {
		key = h.cacheKey(req)
		if body, ok := h.cached(r.Context(), key); ok {
			writeRawJSON(w, r, http.StatusOK, body)
			return
		}
	}

	res, err := h.plan(r.Context(), req)
	if err != nil {
		status, msg := planErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("plan trip failed: %v", err)
		}
		writeError(w, r, status, msg)
		return
	}

	body, err := json.Marshal(res)
	if err != nil {
		log.Printf("encode plan failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	body = append(body, '\n')

	if h.Cache != nil {
		if err := h.Cache.Put(r.Context(), key, body, h.CacheTTL); err != nil {
			log.Printf("plan cache put failed: key=%s err=%v", key, err)
		}
	}

	writeRawJSON(w, r, http.StatusOK, body)
}

func (h *PlanHandler) plan(ctx context.Context, req dto.PlanRequest) (_ *dto.PlanResponse, err error) {
	defer obs.Time(ctx, "plan.compute")(&err)

	svcReq, choice, err := h.toServiceRequest(req)
	if err != nil {
		return nil, err
	}

	trip, err := h.Planner.PlanTrip(svcReq)
	if err != nil {
		return nil, err
	}
	metrics.ObservePlan(string(trip.Mode), trip.Result.Exceeded, len(trip.Result.Items))

	res := &dto.PlanResponse{
		Mode: string(trip.Mode),
		Plan: toPlanResult(trip.Result),
	}
	for _, o := range trip.Options {
		res.Options = append(res.Options, string(o))
	}

	if !trip.Result.Exceeded {
		return res, nil
	}

	switch choice {
	case services.DropLowPriority:
		reduced, abandoned, err := h.Planner.Resolve(trip, choice)
		if err != nil {
			return nil, err
		}
		out := toPlanResult(reduced)
		res.Reduced = &out
		res.Abandoned = abandoned
	case services.CancelPlan:
		if _, _, err := h.Planner.Resolve(trip, choice); err != nil {
			return nil, err
		}
	}

	return res, nil
}

func (h *PlanHandler) toServiceRequest(req dto.PlanRequest) (services.PlanTripRequest, services.OverrunChoice, error) {
	var out services.PlanTripRequest

	mode := services.ModeDistance
	if req.Mode != "" {
		m, err := services.ParseOptimizationMode(req.Mode)
		if err != nil {
			return out, "", fmt.Errorf("%w: %v", errBadRequest, err)
		}
		mode = m
	}

	choice := services.KeepAsIs
	if req.OverrunChoice != "" {
		c, err := services.ParseOverrunChoice(req.OverrunChoice)
		if err != nil {
			return out, "", fmt.Errorf("%w: %v", errBadRequest, err)
		}
		choice = c
	}

	endMode := services.EndAtClose
	if services.EndMode(req.EndMode) == services.EndCustom {
		endMode = services.EndCustom
	}

	selection := make([]domain.SelectionEntry, 0, len(req.Selections))
	for _, s := range req.Selections {
		a, ok := h.Catalog[s.AttractionID]
		if !ok {
			return out, "", fmt.Errorf("%w: unknown attraction_id %d", errBadRequest, s.AttractionID)
		}

		priority := domain.PriorityMedium
		if s.Priority != "" {
			p, ok := domain.ParsePriority(s.Priority)
			if !ok {
				return out, "", fmt.Errorf("%w: unknown priority %q", errBadRequest, s.Priority)
			}
			priority = p
		}

		selection = append(selection, domain.SelectionEntry{
			Attraction: a,
			Priority:   priority,
			Order:      *s.Order,
		})
	}

	out = services.PlanTripRequest{
		Selection: selection,
		StartTime: req.StartTime,
		EndMode:   endMode,
		EndTime:   req.EndTime,
		Mode:      mode,
	}
	return out, choice, nil
}

// Trim and lower-case enum fields and fill missing orders by position,
// so equivalent requests share a cache key.
func normalizeRequest(req *dto.PlanRequest) {
	req.StartTime = strings.TrimSpace(req.StartTime)
	req.EndTime = strings.TrimSpace(req.EndTime)
	req.EndMode = strings.ToLower(strings.TrimSpace(req.EndMode))
	req.Mode = strings.ToLower(strings.TrimSpace(req.Mode))
	req.OverrunChoice = strings.ToLower(strings.TrimSpace(req.OverrunChoice))

	for i := range req.Selections {
		s := &req.Selections[i]
		s.Priority = strings.ToLower(strings.TrimSpace(s.Priority))
		if s.Order == nil {
			order := i + 1
			s.Order = &order
		}
	}
}

func (h *PlanHandler) cacheKey(req dto.PlanRequest) string {
	b, _ := json.Marshal(req)
	sum := sha256.Sum256(b)
	return h.CatalogVersion + ":" + hex.EncodeToString(sum[:])
}

func (h *PlanHandler) cached(ctx context.Context, key string) ([]byte, bool) {
	body, ok, err := h.Cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.PlanCache.WithLabelValues("error").Inc()
		log.Printf("plan cache get failed: key=%s err=%v", key, err)
		return nil, false
	case !ok:
		metrics.PlanCache.WithLabelValues("miss").Inc()
		return nil, false
	default:
		metrics.PlanCache.WithLabelValues("hit").Inc()
		return body, true
	}
}

func planErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, strings.TrimPrefix(err.Error(), errBadRequest.Error()+": ")
	case errors.Is(err, domain.ErrInsufficientSelection):
		return http.StatusBadRequest, "select at least 2 attractions"
	case errors.Is(err, domain.ErrInvalidTimeRange):
		return http.StatusBadRequest, "end_time must be after start_time"
	case errors.Is(err, domain.ErrDuplicateOrder):
		return http.StatusBadRequest, "order values must be unique"
	case errors.Is(err, domain.ErrPlanCancelled):
		return http.StatusConflict, "plan cancelled"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func toPlanResult(p domain.PlanResult) dto.PlanResultResponse {
	out := dto.PlanResultResponse{
		Items:               make([]dto.PlanItemResponse, 0, len(p.Items)),
		TotalDistanceMeters: p.TotalDistanceMeters,
		TotalMinutes:        p.TotalMinutes(),
		StartTime:           domain.MinutesToTimeString(p.StartMinutes),
		EndTime:             domain.MinutesToTimeString(p.EndMinutes),
		FinishTime:          domain.MinutesToTimeString(p.FinishMinutes),
		Exceeded:            p.Exceeded,
	}
	for _, it := range p.Items {
		out.Items = append(out.Items, dto.PlanItemResponse{
			Index:                 it.Index,
			Type:                  string(it.Type),
			AttractionID:          it.Attraction.ID,
			OfficialID:            it.Attraction.OfficialID,
			Name:                  it.Attraction.Name,
			AreaName:              it.Attraction.AreaName,
			Priority:              string(it.Priority),
			TravelMinutes:         it.TravelMinutes,
			SegmentDistanceMeters: it.SegmentDistanceMeters,
			ArrivalMinutes:        it.ArrivalMinutes,
			ArrivalTime:           domain.MinutesToTimeString(it.ArrivalMinutes),
			WaitingMinutes:        it.WaitingMinutes,
			DurationMinutes:       it.DurationMinutes,
			DepartureMinutes:      it.DepartureMinutes,
			DepartureTime:         domain.MinutesToTimeString(it.DepartureMinutes),
		})
	}
	return out
}
