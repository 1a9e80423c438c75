// Package normalizer maps noisy vendor text to a stable canonical name using
// a learnable rule engine with confidence scoring.
package normalizer

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/himynameismarvin/budget-bop/internal/match"
	"github.com/himynameismarvin/budget-bop/internal/model"
)

// Config holds the engine's tuning knobs. The defaults are empirical; they
// are exposed here rather than hard-coded so hosts can adjust them.
type Config struct {
	// MinScore discards rule candidates scoring at or below it.
	MinScore float64
	// ReviewThreshold flags results whose winning score falls below it.
	ReviewThreshold float64
	// SimilarityThreshold gates the word-level similarity fallback.
	SimilarityThreshold float64
	// WordMatchThreshold is the edit-distance similarity for close-enough words.
	WordMatchThreshold float64
	// FallbackConfidence is assigned when no rule survives scoring.
	FallbackConfidence float64
	// LearnedConfidence seeds rules created from user corrections.
	LearnedConfidence float64
	// LearnIncrement strengthens a confirmed rule per correction.
	LearnIncrement float64
	// LearnCap bounds learned confidence growth.
	LearnCap float64
	// MaxSuggestions bounds the alternative names returned alongside the winner.
	MaxSuggestions int
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		MinScore:            0.3,
		ReviewThreshold:     0.8,
		SimilarityThreshold: 0.7,
		WordMatchThreshold:  0.8,
		FallbackConfidence:  0.3,
		LearnedConfidence:   0.9,
		LearnIncrement:      0.1,
		LearnCap:            0.95,
		MaxSuggestions:      3,
	}
}

// Result is the outcome of normalizing one vendor string.
type Result struct {
	NormalizedName string   `json:"normalized_name"`
	RuleID         string   `json:"rule_id,omitempty"`
	Suggestions    []string `json:"suggestions,omitempty"`
	Confidence     float64  `json:"confidence"`
	NeedsReview    bool     `json:"needs_review"`
	Fallback       bool     `json:"fallback"`
}

// Engine scores normalization rules against cleaned vendor text. It holds
// rules in memory for the duration of a batch; persistence is the caller's
// concern via Rules/SetRules. The engine provides no locking: callers sharing
// one engine across concurrent batches must serialize mutations themselves.
type Engine struct {
	compiled map[string]*regexp.Regexp
	now      func() time.Time
	rules    []model.NormalizationRule
	cfg      Config
}

// New creates an engine over an explicit rule set.
func New(cfg Config, rules []model.NormalizationRule) *Engine {
	e := &Engine{
		cfg:      cfg,
		now:      time.Now,
		compiled: make(map[string]*regexp.Regexp),
	}
	e.SetRules(rules)
	return e
}

// NewWithDefaults creates an engine with the default config and seed rules.
func NewWithDefaults() *Engine {
	return New(DefaultConfig(), DefaultRules())
}

// Rules exports the current rule set for the persistence boundary.
func (e *Engine) Rules() []model.NormalizationRule {
	out := make([]model.NormalizationRule, len(e.rules))
	copy(out, e.rules)
	return out
}

// SetRules replaces the rule set, recompiling regex patterns. Invalid regex
// rules are kept but never match.
func (e *Engine) SetRules(rules []model.NormalizationRule) {
	e.rules = make([]model.NormalizationRule, len(rules))
	copy(e.rules, rules)
	e.compiled = make(map[string]*regexp.Regexp)
	for _, rule := range e.rules {
		if rule.IsRegex && rule.Pattern != "" {
			if re, err := regexp.Compile("(?i)" + rule.Pattern); err == nil {
				e.compiled[rule.ID] = re
			}
		}
	}
}

type candidate struct {
	rule  model.NormalizationRule
	score float64
}

// Normalize maps vendor text to a canonical name. When no rule survives
// scoring, the pre-cleaned text itself is returned at the fallback
// confidence: the engine never fabricates a vendor name. Normalize does not
// mutate rule state.
func (e *Engine) Normalize(text string) Result {
	cleaned := match.CleanVendorText(text)
	if cleaned == "" {
		cleaned = strings.TrimSpace(text)
	}

	candidates := e.score(cleaned)
	if len(candidates) == 0 {
		return Result{
			NormalizedName: cleaned,
			Confidence:     e.cfg.FallbackConfidence,
			NeedsReview:    true,
			Fallback:       true,
		}
	}

	winner := candidates[0]
	result := Result{
		NormalizedName: winner.rule.NormalizedName,
		RuleID:         winner.rule.ID,
		Confidence:     winner.score,
		NeedsReview:    winner.score < e.cfg.ReviewThreshold || !winner.rule.IsUserDefined,
	}

	seen := map[string]bool{winner.rule.NormalizedName: true}
	for _, c := range candidates[1:] {
		if len(result.Suggestions) >= e.cfg.MaxSuggestions {
			break
		}
		if seen[c.rule.NormalizedName] {
			continue
		}
		seen[c.rule.NormalizedName] = true
		result.Suggestions = append(result.Suggestions, c.rule.NormalizedName)
	}

	return result
}

// score evaluates every rule against the cleaned text and returns surviving
// candidates ranked best first.
func (e *Engine) score(cleaned string) []candidate {
	var candidates []candidate

	for _, rule := range e.rules {
		var score float64
		if rule.IsRegex {
			if re, ok := e.compiled[rule.ID]; ok && re.MatchString(cleaned) {
				score = rule.Confidence
			}
		} else {
			score = match.ScoreLiteral(rule.Pattern, cleaned, rule.Confidence,
				e.cfg.SimilarityThreshold, e.cfg.WordMatchThreshold)
		}
		if score > e.cfg.MinScore {
			candidates = append(candidates, candidate{rule: rule, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		// User-taught rules out-rank seeds of similar strength; proven rules
		// out-rank untested ones.
		if candidates[i].rule.IsUserDefined != candidates[j].rule.IsUserDefined {
			return candidates[i].rule.IsUserDefined
		}
		return candidates[i].rule.UseCount > candidates[j].rule.UseCount
	})

	return candidates
}

// LearnFromCorrection teaches the engine from a user's vendor correction.
// An existing user rule that already produces the corrected name and matches
// the original text is strengthened; otherwise a new literal rule is created,
// seeded from the first significant word of the cleaned original.
func (e *Engine) LearnFromCorrection(original, corrected string) model.NormalizationRule {
	corrected = strings.TrimSpace(corrected)
	cleaned := match.CleanVendorText(original)

	for i := range e.rules {
		rule := &e.rules[i]
		if !rule.IsUserDefined || !strings.EqualFold(rule.NormalizedName, corrected) {
			continue
		}
		if !e.ruleMatches(*rule, cleaned) {
			continue
		}
		rule.Confidence += e.cfg.LearnIncrement
		if rule.Confidence > e.cfg.LearnCap {
			rule.Confidence = e.cfg.LearnCap
		}
		rule.UseCount++
		rule.LastUsed = e.now()
		return *rule
	}

	rule := model.NormalizationRule{
		ID:             uuid.New().String(),
		Pattern:        match.FirstSignificantWord(original),
		NormalizedName: corrected,
		Confidence:     e.cfg.LearnedConfidence,
		IsUserDefined:  true,
		UseCount:       1,
		CreatedAt:      e.now(),
		LastUsed:       e.now(),
	}
	e.rules = append(e.rules, rule)
	return rule
}

// Confirm records that a rule's output was accepted unchanged, bumping its
// use count so proven rules win future tie-breaks.
func (e *Engine) Confirm(ruleID string) {
	for i := range e.rules {
		if e.rules[i].ID == ruleID {
			e.rules[i].UseCount++
			e.rules[i].LastUsed = e.now()
			return
		}
	}
}

func (e *Engine) ruleMatches(rule model.NormalizationRule, cleaned string) bool {
	if rule.IsRegex {
		re, ok := e.compiled[rule.ID]
		return ok && re.MatchString(cleaned)
	}
	return match.ScoreLiteral(rule.Pattern, cleaned, rule.Confidence,
		e.cfg.SimilarityThreshold, e.cfg.WordMatchThreshold) > 0
}
