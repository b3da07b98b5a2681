// Package assistant answers dashboard chat messages with portfolio context.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sjcallan/paperdesk/internal/common"
	"github.com/sjcallan/paperdesk/internal/interfaces"
	"github.com/sjcallan/paperdesk/internal/models"
)

// Service implements AssistantService
type Service struct {
	portfolio interfaces.PortfolioService
	gemini    interfaces.GeminiClient
	logger    *common.Logger
}

// NewService creates a new assistant service. The gemini client may be nil,
// in which case replies fall back to keyword routing only.
func NewService(portfolio interfaces.PortfolioService, gemini interfaces.GeminiClient, logger *common.Logger) *Service {
	return &Service{
		portfolio: portfolio,
		gemini:    gemini,
		logger:    logger,
	}
}

// panelRoutes maps message keywords to the dashboard panel the UI should open.
var panelRoutes = []struct {
	keywords []string
	panel    string
}{
	{[]string{"position", "holding", "portfolio", "p&l", "pnl"}, "portfolio"},
	{[]string{"trade", "journal", "history", "bought", "sold"}, "journal"},
	{[]string{"alert", "notify", "trigger"}, "alerts"},
	{[]string{"quote", "price", "market", "ticker"}, "market"},
}

// Chat answers a single user message. Portfolio state is summarized into the
// prompt so the model can answer account questions without tool calls.
func (s *Service) Chat(ctx context.Context, userID string, req *models.ChatRequest) (*models.ChatReply, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}

	reply := &models.ChatReply{
		OpenPanel: routePanel(message),
		CreatedAt: time.Now().UTC(),
	}

	if s.gemini == nil {
		reply.Message = fallbackReply(reply.OpenPanel)
		return reply, nil
	}

	prompt, err := s.buildPrompt(ctx, userID, message)
	if err != nil {
		return nil, err
	}

	text, err := s.gemini.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Assistant generation failed, using fallback reply")
		reply.Message = fallbackReply(reply.OpenPanel)
		return reply, nil
	}

	reply.Message = strings.TrimSpace(text)
	return reply, nil
}

func (s *Service) buildPrompt(ctx context.Context, userID, message string) (string, error) {
	summary, err := s.portfolio.GetSummary(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load portfolio context: %w", err)
	}

	marked, err := s.portfolio.GetPositions(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load positions context: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("You are a paper-trading dashboard assistant. Answer briefly and factually.\n\n")
	sb.WriteString("Account state:\n")
	fmt.Fprintf(&sb, "- Total value: $%.2f\n", summary.TotalValue)
	fmt.Fprintf(&sb, "- Cash: $%.2f\n", summary.Cash)
	fmt.Fprintf(&sb, "- Realized P&L: $%.2f\n", summary.RealizedPnL)
	fmt.Fprintf(&sb, "- Unrealized P&L: $%.2f\n", summary.UnrealizedPnL)
	fmt.Fprintf(&sb, "- Open positions: %d\n", summary.PositionsCount)

	if len(marked) > 0 {
		sb.WriteString("\nPositions:\n")
		for _, p := range marked {
			if !p.Open() {
				continue
			}
			fmt.Fprintf(&sb, "- %s: %.0f @ $%.2f avg cost", p.Symbol, p.Quantity, p.AvgCost)
			if p.CurrentPrice != nil {
				fmt.Fprintf(&sb, ", now $%.2f", *p.CurrentPrice)
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\nUser message: ")
	sb.WriteString(message)
	return sb.String(), nil
}

// routePanel returns the dashboard panel a message most likely refers to.
func routePanel(message string) string {
	lower := strings.ToLower(message)
	for _, route := range panelRoutes {
		for _, kw := range route.keywords {
			if strings.Contains(lower, kw) {
				return route.panel
			}
		}
	}
	return ""
}

func fallbackReply(panel string) string {
	if panel != "" {
		return fmt.Sprintf("Opening the %s panel.", panel)
	}
	return "I can help with your portfolio, trade journal, alerts, and market quotes."
}

// Compile-time check
var _ interfaces.AssistantService = (*Service)(nil)
