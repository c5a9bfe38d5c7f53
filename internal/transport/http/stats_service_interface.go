package http

import (
	"context"

	"t20cli/internal/filter"
	"t20cli/internal/services"
)

// StatsServiceInterface defines the stats operations the handlers need
type StatsServiceInterface interface {
	Batters(ctx context.Context) ([]string, error)
	Fixtures(ctx context.Context) ([]string, error)
	Summary(ctx context.Context, sel filter.Selection) (*services.SummaryView, error)
	Grouped(ctx context.Context, sel filter.Selection, view services.ViewKind) (*services.GroupedView, error)
	Progression(ctx context.Context, sel filter.Selection, window int) (*services.ProgressionView, error)
	Dismissals(ctx context.Context, sel filter.Selection) (*services.DismissalsView, error)
	WagonWheel(ctx context.Context, sel filter.Selection) (*services.WagonWheelView, error)
}
