package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"optiwatt/internal/genai"
	"optiwatt/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator records prompts and replays a canned answer.
type fakeGenerator struct {
	text string
	err  error

	prompts []string
	opts    []genai.Options
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, opts genai.Options) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	return f.text, f.err
}

func fixedNow() time.Time { return time.UnixMilli(1700000000000) }

func TestInsightPrompt(t *testing.T) {
	p := insightPrompt([]models.Appliance{
		{Name: "Takshila - 201", UsageKWh: 4.2, Efficiency: "A"},
		{Name: "Main Server Room", UsageKWh: 12.5, Efficiency: "A"},
	}, 26)

	assert.Contains(t, p, "Current total system usage: 26 kWh/day.")
	assert.Contains(t, p, "Takshila - 201: 4.2kWh/day, efficiency A\nMain Server Room: 12.5kWh/day, efficiency A")
	assert.Contains(t, p, "keys: title, description, impact (High, Medium, or Low), and category")
}

func TestInsightGateway_ParsesAndAssignsIDs(t *testing.T) {
	gen := &fakeGenerator{text: `[
		{"title":"Shift load","description":"Run chillers at night","impact":"High","category":"Peak"},
		{"title":"LEDs","description":"Swap bulbs","impact":"low","category":"lighting"}
	]`}
	g := NewInsightGateway(gen, nil)
	g.now = fixedNow

	got := g.Insights(context.Background(), twoAppliances, 1)

	require.Len(t, got, 2)
	assert.Equal(t, models.Suggestion{
		ID: "ai-1700000000000-0", Title: "Shift load", Description: "Run chillers at night",
		Impact: models.ImpactHigh, Category: models.CategoryPeak,
	}, got[0])
	assert.Equal(t, "ai-1700000000000-1", got[1].ID)
	assert.Equal(t, models.ImpactLow, got[1].Impact)
	assert.Equal(t, models.CategoryLighting, got[1].Category)

	require.Len(t, gen.opts, 1)
	assert.Equal(t, genai.MIMEJSON, gen.opts[0].ResponseMIMEType)
}

func TestInsightGateway_FailuresYieldEmpty(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{name: "transport error", gen: &fakeGenerator{err: errors.New("boom")}},
		{name: "empty body", gen: &fakeGenerator{err: genai.ErrEmptyResponse}},
		{name: "not json", gen: &fakeGenerator{text: "Here are some tips"}},
		{name: "json object", gen: &fakeGenerator{text: `{"title":"x"}`}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NewInsightGateway(tc.gen, nil).Insights(context.Background(), twoAppliances, 0)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestSanitizeSuggestions(t *testing.T) {
	got := sanitizeSuggestions([]rawSuggestion{
		{Title: "", Description: "no title"},
		{Title: "no description", Description: "  "},
		{Title: " Keep ", Description: " me ", Impact: "Extreme", Category: "Cooling"},
	}, fixedNow())

	require.Len(t, got, 1)
	assert.Equal(t, "Keep", got[0].Title)
	assert.Equal(t, "me", got[0].Description)
	assert.Equal(t, models.ImpactMedium, got[0].Impact)
	assert.Equal(t, models.CategoryAppliance, got[0].Category)
	assert.True(t, strings.HasSuffix(got[0].ID, "-2"))
}

func Test_stripCodeFence(t *testing.T) {
	cases := map[string]string{
		`[1]`:                     `[1]`,
		"```json\n[1]\n```":       `[1]`,
		"  ```\n[{\"a\":1}]```  ": `[{"a":1}]`,
	}
	for in, want := range cases {
		assert.Equal(t, want, stripCodeFence(in), "input %q", in)
	}
}

func TestSuggestionBoard_Refresh(t *testing.T) {
	seed := []models.Suggestion{{ID: "s1", Title: "Seed", Description: "d", Impact: "High", Category: "Appliance"}}
	reg := NewApplianceRegistry(twoAppliances)

	t.Run("replaces wholesale", func(t *testing.T) {
		gen := &fakeGenerator{text: `[{"title":"New","description":"tip","impact":"Low","category":"Heating"}]`}
		board := NewSuggestionBoard(seed, NewInsightGateway(gen, nil), reg)

		got, replaced := board.Refresh(context.Background())
		assert.True(t, replaced)
		require.Len(t, got, 1)
		assert.Equal(t, "New", got[0].Title)
		assert.Equal(t, got, board.List())

		require.Len(t, gen.prompts, 1)
		assert.Contains(t, gen.prompts[0], "Current total system usage: 1 kWh/day.", "only appliances that are on count")
	})

	t.Run("keeps previous on empty result", func(t *testing.T) {
		board := NewSuggestionBoard(seed, NewInsightGateway(&fakeGenerator{err: errors.New("offline")}, nil), reg)

		got, replaced := board.Refresh(context.Background())
		assert.False(t, replaced)
		assert.Equal(t, seed, got)
		assert.Equal(t, seed, board.List())
	})
}
