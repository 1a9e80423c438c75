// Package categorizer suggests spending categories for transaction
// descriptions using a learnable pattern-matching engine with confidence
// scoring and negative feedback.
package categorizer

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/himynameismarvin/budget-bop/internal/match"
	"github.com/himynameismarvin/budget-bop/internal/model"
)

// Config holds the engine's tuning knobs. Defaults mirror the normalizer's
// empirical values plus the negative-feedback penalties.
type Config struct {
	MinScore            float64
	ReviewThreshold     float64
	SimilarityThreshold float64
	WordMatchThreshold  float64
	LearnedConfidence   float64
	LearnIncrement      float64
	LearnCap            float64
	// RejectPenaltyUser / RejectPenaltySeed reduce a rule's confidence when
	// its suggestion is explicitly rejected. Seed rules take a smaller hit
	// and keep a higher floor: they serve many users' differing vocabularies
	// and must not be driven to irrelevance by a single rejection.
	RejectPenaltyUser float64
	RejectPenaltySeed float64
	RejectFloorUser   float64
	RejectFloorSeed   float64
	MaxRankings       int
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		MinScore:            0.3,
		ReviewThreshold:     0.8,
		SimilarityThreshold: 0.7,
		WordMatchThreshold:  0.8,
		LearnedConfidence:   0.9,
		LearnIncrement:      0.1,
		LearnCap:            0.95,
		RejectPenaltyUser:   0.3,
		RejectPenaltySeed:   0.1,
		RejectFloorUser:     0.1,
		RejectFloorSeed:     0.3,
		MaxRankings:         3,
	}
}

// Result is the outcome of categorizing one description.
type Result struct {
	Category    string   `json:"category"`
	RuleID      string   `json:"rule_id,omitempty"`
	Rankings    []string `json:"rankings,omitempty"`
	Confidence  float64  `json:"confidence"`
	NeedsReview bool     `json:"needs_review"`
}

// Engine scores categorization rules against cleaned description text.
// Like the normalizer it holds rules in memory and provides no locking.
type Engine struct {
	compiled map[string][]*regexp.Regexp
	now      func() time.Time
	rules    []model.CategoryRule
	cfg      Config
}

// New creates an engine over an explicit rule set.
func New(cfg Config, rules []model.CategoryRule) *Engine {
	e := &Engine{
		cfg:      cfg,
		now:      time.Now,
		compiled: make(map[string][]*regexp.Regexp),
	}
	e.SetRules(rules)
	return e
}

// NewWithDefaults creates an engine with the default config and seed rules.
func NewWithDefaults() *Engine {
	return New(DefaultConfig(), DefaultRules())
}

// Rules exports the current rule set for the persistence boundary.
func (e *Engine) Rules() []model.CategoryRule {
	out := make([]model.CategoryRule, len(e.rules))
	copy(out, e.rules)
	return out
}

// SetRules replaces the rule set, recompiling regex patterns. Every pattern
// of a regex rule is compiled; invalid patterns are kept but never match.
func (e *Engine) SetRules(rules []model.CategoryRule) {
	e.rules = make([]model.CategoryRule, len(rules))
	copy(e.rules, rules)
	e.compiled = make(map[string][]*regexp.Regexp)
	for _, rule := range e.rules {
		if !rule.IsRegex {
			continue
		}
		for _, pattern := range rule.Patterns {
			if pattern == "" {
				continue
			}
			if re, err := regexp.Compile("(?i)" + pattern); err == nil {
				e.compiled[rule.ID] = append(e.compiled[rule.ID], re)
			}
		}
	}
}

type candidate struct {
	rule  model.CategoryRule
	score float64
}

// Categorize suggests a category for the description. When knownCategories is
// non-empty, candidate rules whose category is not in the set are filtered
// out before ranking: the engine never suggests a category the user has not
// defined, even when a seed rule would technically be correct. A nil result
// category means no rule survived.
func (e *Engine) Categorize(description string, knownCategories []string) Result {
	cleaned := match.CleanVendorText(description)
	if cleaned == "" {
		cleaned = strings.TrimSpace(description)
	}

	known := make(map[string]bool, len(knownCategories))
	for _, c := range knownCategories {
		known[strings.ToLower(c)] = true
	}

	var candidates []candidate
	for _, rule := range e.rules {
		if !rule.IsActive {
			continue
		}
		if len(known) > 0 && !known[strings.ToLower(rule.Category)] {
			continue
		}
		score := e.scoreRule(rule, cleaned)
		if score > e.cfg.MinScore {
			candidates = append(candidates, candidate{rule: rule, score: score})
		}
	}

	if len(candidates) == 0 {
		return Result{NeedsReview: true}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		// User-taught rules win outright over seeds, then score, then
		// proven use.
		if candidates[i].rule.IsUserDefined != candidates[j].rule.IsUserDefined {
			return candidates[i].rule.IsUserDefined
		}
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].rule.UseCount > candidates[j].rule.UseCount
	})

	winner := candidates[0]
	result := Result{
		Category:    winner.rule.Category,
		RuleID:      winner.rule.ID,
		Confidence:  winner.score,
		NeedsReview: winner.score < e.cfg.ReviewThreshold || !winner.rule.IsUserDefined,
	}

	seen := map[string]bool{winner.rule.Category: true}
	for _, c := range candidates[1:] {
		if len(result.Rankings) >= e.cfg.MaxRankings {
			break
		}
		if seen[c.rule.Category] {
			continue
		}
		seen[c.rule.Category] = true
		result.Rankings = append(result.Rankings, c.rule.Category)
	}

	return result
}

// scoreRule evaluates a rule's patterns against the cleaned text, taking the
// best pattern's score. A rule matches if any of its patterns match.
func (e *Engine) scoreRule(rule model.CategoryRule, cleaned string) float64 {
	if rule.IsRegex {
		for _, re := range e.compiled[rule.ID] {
			if re.MatchString(cleaned) {
				return rule.Confidence
			}
		}
		return 0
	}

	best := 0.0
	for _, pattern := range rule.Patterns {
		score := match.ScoreLiteral(pattern, cleaned, rule.Confidence,
			e.cfg.SimilarityThreshold, e.cfg.WordMatchThreshold)
		if score > best {
			best = score
		}
	}
	return best
}

// LearnFromCorrection teaches the engine that a description belongs to the
// given category. An existing matching user rule for that category is
// strengthened; otherwise a new literal rule is created from the first
// significant word of the cleaned description.
func (e *Engine) LearnFromCorrection(description, category string) model.CategoryRule {
	category = strings.TrimSpace(category)
	cleaned := match.CleanVendorText(description)

	for i := range e.rules {
		rule := &e.rules[i]
		if !rule.IsUserDefined || !strings.EqualFold(rule.Category, category) {
			continue
		}
		if e.scoreRule(*rule, cleaned) == 0 {
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

	word := match.FirstSignificantWord(description)
	rule := model.CategoryRule{
		ID:            uuid.New().String(),
		Name:          word + " (" + category + ")",
		Category:      category,
		Patterns:      []string{word},
		Confidence:    e.cfg.LearnedConfidence,
		IsActive:      true,
		IsUserDefined: true,
		UseCount:      1,
		LastUsed:      e.now(),
	}
	e.rules = append(e.rules, rule)
	return rule
}

// Reject records that a rule's suggestion was explicitly rejected in favor of
// another category, penalizing its confidence down to the appropriate floor.
func (e *Engine) Reject(ruleID string) {
	for i := range e.rules {
		rule := &e.rules[i]
		if rule.ID != ruleID {
			continue
		}
		penalty, floor := e.cfg.RejectPenaltySeed, e.cfg.RejectFloorSeed
		if rule.IsUserDefined {
			penalty, floor = e.cfg.RejectPenaltyUser, e.cfg.RejectFloorUser
		}
		rule.Confidence -= penalty
		if rule.Confidence < floor {
			rule.Confidence = floor
		}
		return
	}
}

// Confirm records that a rule's suggestion was accepted unchanged.
func (e *Engine) Confirm(ruleID string) {
	for i := range e.rules {
		if e.rules[i].ID == ruleID {
			e.rules[i].UseCount++
			e.rules[i].LastUsed = e.now()
			return
		}
	}
}
