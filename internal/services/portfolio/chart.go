package portfolio

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/sjcallan/paperdesk/internal/models"
)

// RenderAllocationChart renders a PNG donut of open position weights by
// market value (cost basis when no quote is cached).
func (s *Service) RenderAllocationChart(ctx context.Context, userID string) ([]byte, error) {
	marked, err := s.GetPositions(ctx, userID)
	if err != nil {
		return nil, err
	}

	var open []*models.Position
	for _, p := range marked {
		if p.Open() {
			open = append(open, p)
		}
	}
	if len(open) == 0 {
		return nil, fmt.Errorf("no open positions to chart")
	}

	values := make([]chart.Value, 0, len(open))
	for _, p := range open {
		weight := p.TotalCost
		if p.MarketValue != nil {
			weight = *p.MarketValue
		}
		if weight <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: p.Symbol,
			Value: weight,
		})
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no open positions to chart")
	}

	graph := chart.DonutChart{
		Title:  "Portfolio Allocation",
		Width:  600,
		Height: 600,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
