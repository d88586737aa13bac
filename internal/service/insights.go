package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"optiwatt/internal/genai"
	"optiwatt/internal/logger"
	"optiwatt/internal/models"
)

// TextGenerator is the outbound generative text endpoint.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts genai.Options) (string, error)
}

// InsightGateway asks the text endpoint for energy-saving suggestions.
// Failures are logged and surface as an empty list.
type InsightGateway struct {
	gen TextGenerator
	log *logger.Logger
	now func() time.Time
}

func NewInsightGateway(gen TextGenerator, log *logger.Logger) *InsightGateway {
	if log == nil {
		log = logger.Nop()
	}
	return &InsightGateway{gen: gen, log: log, now: time.Now}
}

func formatKWh(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func insightPrompt(appliances []models.Appliance, currentUsage float64) string {
	lines := make([]string, 0, len(appliances))
	for _, a := range appliances {
		lines = append(lines, fmt.Sprintf("%s: %skWh/day, efficiency %s", a.Name, formatKWh(a.UsageKWh), a.Efficiency))
	}

	var b strings.Builder
	b.WriteString("Act as a professional Energy Efficiency Consultant for OptiWatt.\n")
	fmt.Fprintf(&b, "Current total system usage: %s kWh/day.\n", formatKWh(currentUsage))
	b.WriteString("Active System Blocks:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nProvide 3 concise, actionable, and creative energy-saving suggestions for these specific blocks.\n")
	b.WriteString("Focus on reducing bills and improving block efficiency.\n")
	b.WriteString("Format the response as a JSON array of objects with keys: title, description, impact (High, Medium, or Low), and category.\n")
	return b.String()
}

type rawSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Category    string `json:"category"`
}

// Insights never returns nil.
func (g *InsightGateway) Insights(ctx context.Context, appliances []models.Appliance, currentUsage float64) []models.Suggestion {
	text, err := g.gen.Generate(ctx, insightPrompt(appliances, currentUsage), genai.Options{ResponseMIMEType: genai.MIMEJSON})
	if err != nil {
		g.log.Errorw("insights_request_failed", "err", err)
		return []models.Suggestion{}
	}

	var raw []rawSuggestion
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &raw); err != nil {
		g.log.Errorw("insights_parse_failed", "err", err)
		return []models.Suggestion{}
	}

	return sanitizeSuggestions(raw, g.now())
}

// sanitizeSuggestions assigns ids and coerces impact/category into known values.
// Items without a title or description are dropped.
func sanitizeSuggestions(raw []rawSuggestion, now time.Time) []models.Suggestion {
	stamp := now.UnixMilli()
	out := make([]models.Suggestion, 0, len(raw))
	for i, r := range raw {
		title := strings.TrimSpace(r.Title)
		desc := strings.TrimSpace(r.Description)
		if title == "" || desc == "" {
			continue
		}
		out = append(out, models.Suggestion{
			ID:          fmt.Sprintf("ai-%d-%d", stamp, i),
			Title:       title,
			Description: desc,
			Impact:      matchOne(r.Impact, models.ImpactMedium, models.ImpactHigh, models.ImpactMedium, models.ImpactLow),
			Category: matchOne(r.Category, models.CategoryAppliance,
				models.CategoryHeating, models.CategoryLighting, models.CategoryAppliance, models.CategoryPeak),
		})
	}
	return out
}

func matchOne(v, fallback string, allowed ...string) string {
	v = strings.TrimSpace(v)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	return fallback
}

// stripCodeFence unwraps ```json ... ``` blocks some models emit despite the MIME hint.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

// SuggestionBoard holds the suggestions currently on display.
type SuggestionBoard struct {
	mu         sync.RWMutex
	items      []models.Suggestion
	gateway    *InsightGateway
	appliances *ApplianceRegistry
}

func NewSuggestionBoard(seed []models.Suggestion, gateway *InsightGateway, appliances *ApplianceRegistry) *SuggestionBoard {
	items := make([]models.Suggestion, len(seed))
	copy(items, seed)
	return &SuggestionBoard{items: items, gateway: gateway, appliances: appliances}
}

func (s *SuggestionBoard) List() []models.Suggestion {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Suggestion, len(s.items))
	copy(out, s.items)
	return out
}

// Refresh asks the gateway for new suggestions. A non-empty answer replaces
// the list wholesale; an empty one keeps what is there. The bool reports
// whether the list was replaced.
func (s *SuggestionBoard) Refresh(ctx context.Context) ([]models.Suggestion, bool) {
	fresh := s.gateway.Insights(ctx, s.appliances.List(), s.appliances.ActiveUsage())

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := len(fresh) > 0
	if replaced {
		s.items = fresh
	}
	out := make([]models.Suggestion, len(s.items))
	copy(out, s.items)
	return out, replaced
}
