package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himynameismarvin/budget-bop/internal/model"
)

func TestNormalize_SeedMatch(t *testing.T) {
	engine := NewWithDefaults()

	result := engine.Normalize("STARBUCKS #2291")

	assert.Equal(t, "Starbucks", result.NormalizedName)
	assert.Equal(t, "seed-starbucks", result.RuleID)
	assert.GreaterOrEqual(t, result.Confidence, 0.85)
	assert.False(t, result.Fallback)
	// Seed rules always need review until the user has confirmed them.
	assert.True(t, result.NeedsReview)
}

func TestNormalize_RegexSeeds(t *testing.T) {
	engine := NewWithDefaults()

	tests := []struct {
		input string
		want  string
	}{
		{"AMAZON.COM*1A2B3C", "Amazon"},
		{"UBER TRIP HELP.UBER.COM", "Uber"},
		{"VENMO PAYMENT", "Venmo"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := engine.Normalize(tt.input)
			assert.Equal(t, tt.want, result.NormalizedName)
			assert.False(t, result.Fallback)
		})
	}
}

func TestNormalize_FallbackReturnsCleanedText(t *testing.T) {
	engine := NewWithDefaults()

	result := engine.Normalize("OBSCURE LOCAL SHOP #42")

	assert.Equal(t, "OBSCURE LOCAL SHOP", result.NormalizedName)
	assert.Empty(t, result.RuleID)
	assert.Equal(t, DefaultConfig().FallbackConfidence, result.Confidence)
	assert.True(t, result.Fallback)
	assert.True(t, result.NeedsReview)
}

func TestNormalize_DoesNotMutateRules(t *testing.T) {
	engine := NewWithDefaults()
	before := engine.Rules()

	engine.Normalize("STARBUCKS #2291")
	engine.Normalize("OBSCURE LOCAL SHOP #42")

	assert.Equal(t, before, engine.Rules())
}

func TestLearnFromCorrection_CreatesRuleAndConverges(t *testing.T) {
	engine := NewWithDefaults()

	first := engine.Normalize("SQ *COFFEE 123")
	assert.True(t, first.Fallback)

	rule := engine.LearnFromCorrection("SQ *COFFEE 123", "Luna Coffee")
	assert.Equal(t, "coffee", rule.Pattern)
	assert.Equal(t, "Luna Coffee", rule.NormalizedName)
	assert.True(t, rule.IsUserDefined)
	assert.Equal(t, DefaultConfig().LearnedConfidence, rule.Confidence)

	second := engine.Normalize("SQ *COFFEE 123")
	assert.Equal(t, "Luna Coffee", second.NormalizedName)
	assert.GreaterOrEqual(t, second.Confidence, 0.9)
	assert.False(t, second.NeedsReview)
}

func TestLearnFromCorrection_StrengthensExistingRule(t *testing.T) {
	engine := NewWithDefaults()

	created := engine.LearnFromCorrection("SQ *COFFEE 123", "Luna Coffee")
	strengthened := engine.LearnFromCorrection("SQ *COFFEE 456", "Luna Coffee")

	assert.Equal(t, created.ID, strengthened.ID)
	assert.Equal(t, DefaultConfig().LearnCap, strengthened.Confidence)
	assert.Equal(t, 2, strengthened.UseCount)

	// No second rule for the same vendor was created.
	count := 0
	for _, r := range engine.Rules() {
		if r.NormalizedName == "Luna Coffee" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestLearnFromCorrection_DifferentVendorGetsNewRule(t *testing.T) {
	engine := NewWithDefaults()

	first := engine.LearnFromCorrection("SQ *COFFEE 123", "Luna Coffee")
	second := engine.LearnFromCorrection("TST* TACO TRUCK", "Taco Truck")

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "taco", second.Pattern)
}

func TestNormalize_UserRuleOutranksSeedOnTie(t *testing.T) {
	rules := []model.NormalizationRule{
		{ID: "seed", Pattern: "luna", NormalizedName: "Seed Luna", Confidence: 0.9},
		{ID: "user", Pattern: "luna", NormalizedName: "User Luna", Confidence: 0.9, IsUserDefined: true},
	}
	engine := New(DefaultConfig(), rules)

	result := engine.Normalize("LUNA")

	assert.Equal(t, "user", result.RuleID)
	assert.Equal(t, "User Luna", result.NormalizedName)
}

func TestNormalize_HigherUseCountWinsAmongEquals(t *testing.T) {
	rules := []model.NormalizationRule{
		{ID: "fresh", Pattern: "luna", NormalizedName: "Fresh", Confidence: 0.9},
		{ID: "proven", Pattern: "luna", NormalizedName: "Proven", Confidence: 0.9, UseCount: 5},
	}
	engine := New(DefaultConfig(), rules)

	assert.Equal(t, "proven", engine.Normalize("LUNA").RuleID)
}

func TestNormalize_SuggestionsDedupedAndBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSuggestions = 2
	rules := []model.NormalizationRule{
		{ID: "a", Pattern: "luna", NormalizedName: "Luna A", Confidence: 0.95},
		{ID: "b", Pattern: "luna", NormalizedName: "Luna B", Confidence: 0.9},
		{ID: "b2", Pattern: "luna", NormalizedName: "Luna B", Confidence: 0.85},
		{ID: "c", Pattern: "luna", NormalizedName: "Luna C", Confidence: 0.8},
		{ID: "d", Pattern: "luna", NormalizedName: "Luna D", Confidence: 0.75},
	}
	engine := New(cfg, rules)

	result := engine.Normalize("LUNA")

	assert.Equal(t, "Luna A", result.NormalizedName)
	assert.Equal(t, []string{"Luna B", "Luna C"}, result.Suggestions)
}

func TestNormalize_WeakMatchesDiscarded(t *testing.T) {
	rules := []model.NormalizationRule{
		// Substring overlap is tiny, so the scaled score lands under MinScore.
		{ID: "weak", Pattern: "lu", NormalizedName: "Weak", Confidence: 0.9},
	}
	engine := New(DefaultConfig(), rules)

	result := engine.Normalize("LUNA COFFEE ROASTERS INC")
	assert.True(t, result.Fallback)
}

func TestSetRules_InvalidRegexNeverMatches(t *testing.T) {
	rules := []model.NormalizationRule{
		{ID: "bad", Pattern: "([", NormalizedName: "Broken", Confidence: 0.9, IsRegex: true},
	}
	engine := New(DefaultConfig(), rules)

	result := engine.Normalize("([")
	assert.True(t, result.Fallback)
}

func TestConfirm(t *testing.T) {
	engine := NewWithDefaults()

	engine.Confirm("seed-starbucks")
	engine.Confirm("seed-starbucks")

	for _, rule := range engine.Rules() {
		if rule.ID == "seed-starbucks" {
			assert.Equal(t, 2, rule.UseCount)
			return
		}
	}
	t.Fatal("seed-starbucks rule missing")
}

func TestRules_ReturnsCopy(t *testing.T) {
	engine := NewWithDefaults()

	exported := engine.Rules()
	require.NotEmpty(t, exported)
	exported[0].NormalizedName = "Tampered"

	assert.NotEqual(t, "Tampered", engine.Rules()[0].NormalizedName)
}
