package services

import (
	"errors"
	"fmt"
	"strings"

	"park-itinerary-service/internal/domain"
	"park-itinerary-service/internal/geo"
)

type EndMode string

const (
	EndAtClose EndMode = "close"
	EndCustom  EndMode = "custom"
)

// Caller decision when a plan runs past its deadline.
type OverrunChoice string

const (
	KeepAsIs        OverrunChoice = "keep"
	DropLowPriority OverrunChoice = "drop_low_priority"
	CancelPlan      OverrunChoice = "cancel"
)

func ParseOverrunChoice(s string) (OverrunChoice, error) {
	switch c := OverrunChoice(strings.ToLower(strings.TrimSpace(s))); c {
	case KeepAsIs, DropLowPriority, CancelPlan:
		return c, nil
	default:
		return "", fmt.Errorf("parse overrun choice: unknown choice %q", s)
	}
}

// Venue hours and travel assumptions used by the planner.
// All times are minutes since midnight.
type PlannerConfig struct {
	OpenMinutes         int
	CloseMinutes        int
	EarliestEndMinutes  int
	WalkingSpeed        float64
	FallbackWaitMinutes int
	DepartFromExit      bool
}

func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		OpenMinutes:         9 * 60,
		CloseMinutes:        21 * 60,
		EarliestEndMinutes:  10 * 60,
		WalkingSpeed:        geo.WalkingSpeedMetersPerMinute,
		FallbackWaitMinutes: 0,
	}
}

type PlanTripRequest struct {
	Selection []domain.SelectionEntry
	StartTime string
	EndMode   EndMode
	EndTime   string
	Mode      OptimizationMode
}

// Output of a planning call.
// Ordered is the strategy's ordering, kept so an overrun can be re-planned
// without re-running the strategy. Options is only set when Result.Exceeded.
type TripPlan struct {
	Mode    OptimizationMode
	Ordered []domain.SelectionEntry
	Result  domain.PlanResult
	Options []OverrunChoice
}

// Planner orchestrates strategy selection, simulation and overrun detection.
//
// Catalog data is injected at construction and never mutated, so a Planner
// is safe for concurrent use and every call is a pure function of its request.
type Planner struct {
	cfg   PlannerConfig
	model TravelModel
}

func NewPlanner(cfg PlannerConfig, waits domain.WaitingCatalog) *Planner {
	return &Planner{
		cfg: cfg,
		model: TravelModel{
			Waits:          NewWaitEstimator(waits, cfg.FallbackWaitMinutes),
			WalkingSpeed:   cfg.WalkingSpeed,
			DepartFromExit: cfg.DepartFromExit,
		},
	}
}

func (p *Planner) Config() PlannerConfig { return p.cfg }

func (p *Planner) Waits() *WaitEstimator { return p.model.Waits }

// Plan a trip for the selection.
//
// Only an undersized selection, duplicate order values and an empty custom
// time window fail the call. Malformed times are clamped to safe defaults,
// and running past the deadline is reported on the result rather than
// corrected.
func (p *Planner) PlanTrip(req PlanTripRequest) (*TripPlan, error) {
	if len(req.Selection) < 2 {
		return nil, fmt.Errorf("plan trip: %d selected: %w", len(req.Selection), domain.ErrInsufficientSelection)
	}

	if err := checkUniqueOrder(req.Selection); err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	start, end, err := p.ResolveWindow(req.StartTime, req.EndMode, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	mode := req.Mode
	if mode == "" {
		mode = ModeDistance
	}

	ordered, err := p.model.Order(mode, req.Selection, start)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	plan := &TripPlan{
		Mode:    mode,
		Ordered: ordered,
		Result:  p.simulate(ordered, start, end),
	}
	if plan.Result.Exceeded {
		plan.Options = []OverrunChoice{KeepAsIs, DropLowPriority, CancelPlan}
	}

	return plan, nil
}

// Resolve start and end minutes from user input.
// The start clamps into the opening hours (opening time if unparseable).
// A custom end clamps into [earliest end, close] and must fall after the start.
func (p *Planner) ResolveWindow(startText string, mode EndMode, endText string) (int, int, error) {
	s, ok := domain.ParseTimeToMinutes(startText)
	start := domain.ClampMinutes(s, ok, p.cfg.OpenMinutes, p.cfg.CloseMinutes)

	if mode != EndCustom {
		return start, p.cfg.CloseMinutes, nil
	}

	e, ok := domain.ParseTimeToMinutes(endText)
	end := domain.ClampMinutes(e, ok, p.cfg.EarliestEndMinutes, p.cfg.CloseMinutes)
	if end <= start {
		return 0, 0, fmt.Errorf(
			"resolve window: start=%s end=%s: %w",
			domain.MinutesToTimeString(start), domain.MinutesToTimeString(end), domain.ErrInvalidTimeRange,
		)
	}

	return start, end, nil
}

// Re-plan an overrun by dropping every low-priority stop from the existing
// ordering and re-simulating from the same start.
//
// The second return value is false when the drop was abandoned because fewer
// than 2 stops would remain; the original result is returned unchanged
// (still flagged as exceeded).
func (p *Planner) DropLowPriority(plan *TripPlan) (domain.PlanResult, bool) {
	kept := make([]domain.SelectionEntry, 0, len(plan.Ordered))
	for _, e := range plan.Ordered {
		if e.Priority != domain.PriorityLow {
			kept = append(kept, e)
		}
	}

	if len(kept) < 2 {
		return plan.Result, false
	}

	return p.simulate(kept, plan.Result.StartMinutes, plan.Result.EndMinutes), true
}

// Apply the caller's decision to a plan.
// Plans within their deadline are returned as-is whatever the choice.
// The boolean reports whether a requested drop was abandoned.
func (p *Planner) Resolve(plan *TripPlan, choice OverrunChoice) (domain.PlanResult, bool, error) {
	if plan == nil {
		return domain.PlanResult{}, false, errors.New("resolve plan: plan must be non-nil")
	}

	if !plan.Result.Exceeded {
		return plan.Result, false, nil
	}

	switch choice {
	case KeepAsIs, "":
		return plan.Result, false, nil
	case DropLowPriority:
		res, applied := p.DropLowPriority(plan)
		return res, !applied, nil
	case CancelPlan:
		return domain.PlanResult{}, false, fmt.Errorf("resolve plan: %w", domain.ErrPlanCancelled)
	default:
		return domain.PlanResult{}, false, fmt.Errorf("resolve plan: unknown choice %q", choice)
	}
}

func (p *Planner) simulate(ordered []domain.SelectionEntry, start, end int) domain.PlanResult {
	items, total := p.model.Simulate(ordered, start)

	finish := start
	if len(items) > 0 {
		finish = items[len(items)-1].DepartureMinutes
	}

	return domain.PlanResult{
		Items:               items,
		TotalDistanceMeters: total,
		StartMinutes:        start,
		EndMinutes:          end,
		FinishMinutes:       finish,
		Exceeded:            finish > end,
	}
}

func checkUniqueOrder(entries []domain.SelectionEntry) error {
	seen := make(map[int]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.Order]; ok {
			return fmt.Errorf("order=%d: %w", e.Order, domain.ErrDuplicateOrder)
		}
		seen[e.Order] = struct{}{}
	}
	return nil
}
