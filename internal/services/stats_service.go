package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"t20cli/internal/analytics"
	"t20cli/internal/config"
	"t20cli/internal/dataset"
	"t20cli/internal/filter"
)

// ViewKind names a grouped statistical view of the dashboard
type ViewKind string

const (
	ViewLineLength   ViewKind = "line-length"
	ViewBowler       ViewKind = "bowler"
	ViewBowlerType   ViewKind = "bowler-type"
	ViewShots        ViewKind = "shots"
	ViewBallType     ViewKind = "ball-type"
	ViewFeetMovement ViewKind = "feet-movement"
	ViewOvers        ViewKind = "overs"
	ViewBallInOver   ViewKind = "ball-in-over"
)

// groupedViewKeys maps each view to its grouping key and ordering
var groupedViewKeys = map[ViewKind]struct {
	key     analytics.KeyFunc
	numeric bool
}{
	ViewLineLength:   {key: analytics.KeyLineLength},
	ViewBowler:       {key: analytics.KeyBowler},
	ViewBowlerType:   {key: analytics.KeyBowlerType},
	ViewShots:        {key: analytics.KeyShotType},
	ViewBallType:     {key: analytics.KeyVariation},
	ViewFeetMovement: {key: analytics.KeyFeetMovement},
	ViewOvers:        {key: analytics.KeyOver, numeric: true},
	ViewBallInOver:   {key: analytics.KeyBallInOver, numeric: true},
}

// GroupRow pairs a group's summary with its effective metrics against
// the matching baseline group.
type GroupRow struct {
	analytics.BattingSummary
	Effective analytics.EffectiveMetrics `json:"effective"`
}

// SummaryView is the batter info box: overall stats plus effective
// metrics against the baseline population.
type SummaryView struct {
	Batter    string                     `json:"batter"`
	Hand      dataset.Hand               `json:"hand"`
	Summary   analytics.BattingSummary   `json:"summary"`
	Baseline  analytics.BattingSummary   `json:"baseline"`
	Effective analytics.EffectiveMetrics `json:"effective"`
}

// GroupedView is a per-group metric table for one view
type GroupedView struct {
	Batter string     `json:"batter"`
	View   ViewKind   `json:"view"`
	Groups []GroupRow `json:"groups"`
}

// ProgressionView is the rolling-window innings progression sequence
type ProgressionView struct {
	Batter string                       `json:"batter"`
	Window int                          `json:"window"`
	Points []analytics.ProgressionPoint `json:"points"`
}

// DismissalsView is the dismissal type × variation breakdown
type DismissalsView struct {
	Batter     string                         `json:"batter"`
	Dismissals []analytics.DismissalBreakdown `json:"dismissals"`
}

// WagonWheelView bundles the wagon wheels for a batter subset
type WagonWheelView struct {
	Batter string               `json:"batter"`
	Hand   dataset.Hand         `json:"hand"`
	Wheel  analytics.WagonWheel `json:"wheel"`
}

// StatsService computes the dashboard views. The loaded table is a
// read-only handle threaded through filter and analytics; every view
// is recomputed from it on each call.
type StatsService struct {
	config *config.Config
	store  *dataset.Store
	logger *slog.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(cfg *config.Config, store *dataset.Store, logger *slog.Logger) *StatsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsService{
		config: cfg,
		store:  store,
		logger: logger.With(slog.String("component", "stats_service")),
	}
}

// table returns the cached dataset table
func (s *StatsService) table(ctx context.Context) (*dataset.Table, error) {
	return s.store.Table(ctx, s.config.GetCSVPath())
}

// Batters lists the distinct batters in the dataset, sorted
func (s *StatsService) Batters(ctx context.Context) ([]string, error) {
	table, err := s.table(ctx)
	if err != nil {
		return nil, err
	}

	batters := table.Batters()
	sort.Strings(batters)
	return batters, nil
}

// Fixtures lists the distinct fixture IDs in the dataset
func (s *StatsService) Fixtures(ctx context.Context) ([]string, error) {
	table, err := s.table(ctx)
	if err != nil {
		return nil, err
	}
	return table.Fixtures(), nil
}

// Summary computes the batter info box for a selection
func (s *StatsService) Summary(ctx context.Context, sel filter.Selection) (*SummaryView, error) {
	table, rows, err := s.filtered(ctx, sel)
	if err != nil {
		return nil, err
	}

	baseline := analytics.Summarize(s.baselineRows(table, sel, rows))
	summary := analytics.Summarize(rows)

	return &SummaryView{
		Batter:    sel.Batter,
		Hand:      table.BatterHand(sel.Batter),
		Summary:   summary,
		Baseline:  baseline,
		Effective: analytics.Effective(summary, baseline),
	}, nil
}

// Grouped computes a per-group metric table with effective metrics
// per group against the same grouping of the baseline population.
func (s *StatsService) Grouped(ctx context.Context, sel filter.Selection, view ViewKind) (*GroupedView, error) {
	def, ok := groupedViewKeys[view]
	if !ok {
		return nil, fmt.Errorf("unknown view %q", view)
	}

	table, rows, err := s.filtered(ctx, sel)
	if err != nil {
		return nil, err
	}

	groups := analytics.GroupBy(rows, def.key)
	if def.numeric {
		analytics.SortByNumericGroup(groups)
	} else {
		analytics.SortByBalls(groups)
	}

	baselineGroups := analytics.GroupBy(s.baselineRows(table, sel, rows), def.key)
	baselineByKey := make(map[string]analytics.BattingSummary, len(baselineGroups))
	for _, g := range baselineGroups {
		baselineByKey[g.Group] = g
	}

	result := make([]GroupRow, 0, len(groups))
	for _, g := range groups {
		result = append(result, GroupRow{
			BattingSummary: g,
			Effective:      analytics.Effective(g, baselineByKey[g.Group]),
		})
	}

	return &GroupedView{Batter: sel.Batter, View: view, Groups: result}, nil
}

// Progression computes the rolling-window innings progression for a
// batter selection. Rows are ordered as the balls were faced.
func (s *StatsService) Progression(ctx context.Context, sel filter.Selection, window int) (*ProgressionView, error) {
	if window <= 0 || window > s.config.Analysis.MaxWindow {
		return nil, fmt.Errorf("%w: %d (allowed 1-%d)", ErrInvalidWindow, window, s.config.Analysis.MaxWindow)
	}

	_, rows, err := s.filtered(ctx, sel)
	if err != nil {
		return nil, err
	}

	ordered := make([]dataset.Delivery, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.FixtureID != b.FixtureID {
			return a.FixtureID < b.FixtureID
		}
		if a.Over != b.Over {
			return a.Over < b.Over
		}
		return a.Ball < b.Ball
	})

	return &ProgressionView{
		Batter: sel.Batter,
		Window: window,
		Points: analytics.Progression(ordered, window),
	}, nil
}

// Dismissals computes the dismissal breakdown for a selection
func (s *StatsService) Dismissals(ctx context.Context, sel filter.Selection) (*DismissalsView, error) {
	_, rows, err := s.filtered(ctx, sel)
	if err != nil {
		return nil, err
	}

	return &DismissalsView{
		Batter:     sel.Batter,
		Dismissals: analytics.Dismissals(rows),
	}, nil
}

// WagonWheel computes the wagon wheel views for a selection
func (s *StatsService) WagonWheel(ctx context.Context, sel filter.Selection) (*WagonWheelView, error) {
	table, rows, err := s.filtered(ctx, sel)
	if err != nil {
		return nil, err
	}

	hand := table.BatterHand(sel.Batter)

	return &WagonWheelView{
		Batter: sel.Batter,
		Hand:   hand,
		Wheel:  analytics.BuildWagonWheel(rows, hand.IsRight(), s.config.Analysis.MagnitudeCapMetre),
	}, nil
}

// filtered loads the table and applies the selection. A batter set on
// the selection but absent from the dataset is ErrBatterUnknown; a
// known batter whose filters leave no rows is ErrNoDeliveries.
func (s *StatsService) filtered(ctx context.Context, sel filter.Selection) (*dataset.Table, []dataset.Delivery, error) {
	table, err := s.table(ctx)
	if err != nil {
		return nil, nil, err
	}

	rows := filter.Apply(table.Deliveries, sel)
	if len(rows) == 0 {
		if sel.Batter != "" && !s.batterExists(table, sel.Batter) {
			return nil, nil, fmt.Errorf("%w: %s", ErrBatterUnknown, sel.Batter)
		}
		s.logger.InfoContext(ctx, "selection matched no deliveries",
			slog.String("batter", sel.Batter))
		return nil, nil, ErrNoDeliveries
	}

	return table, rows, nil
}

// baselineRows builds the comparison population for effective metrics.
// The batter predicate is always dropped; in match mode the population
// is further narrowed to the fixtures the batter's subset spans.
func (s *StatsService) baselineRows(table *dataset.Table, sel filter.Selection, batterRows []dataset.Delivery) []dataset.Delivery {
	population := filter.Apply(table.Deliveries, sel.WithoutBatter())

	if s.config.Analysis.Baseline == config.BaselineMatch && sel.Batter != "" {
		population = filter.InFixtures(population, filter.Fixtures(batterRows))
	}

	return population
}

// batterExists checks whether the batter appears anywhere in the table
func (s *StatsService) batterExists(table *dataset.Table, batter string) bool {
	for _, name := range table.Batters() {
		if name == batter {
			return true
		}
	}
	return false
}
