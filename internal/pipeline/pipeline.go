// Package pipeline wires the parser, mapper, hasher, normalizer, categorizer
// and review aggregator into the end-to-end import flow. Processing is
// synchronous and single-threaded per batch: rows stay in source order from
// parse through hashing so duplicate flagging is deterministic.
package pipeline

import (
	"log/slog"

	"github.com/himynameismarvin/budget-bop/internal/categorizer"
	"github.com/himynameismarvin/budget-bop/internal/dedup"
	"github.com/himynameismarvin/budget-bop/internal/mapper"
	"github.com/himynameismarvin/budget-bop/internal/model"
	"github.com/himynameismarvin/budget-bop/internal/normalizer"
	"github.com/himynameismarvin/budget-bop/internal/parser"
	"github.com/himynameismarvin/budget-bop/internal/review"
)

// Options configures a single batch run.
type Options struct {
	// Mapping overrides the auto-suggested field mapping when non-nil.
	Mapping mapper.Mapping
	// KnownHashes holds fingerprints from prior imports; matches are flagged
	// as duplicates in addition to within-batch detection.
	KnownHashes map[string]bool
}

// Result is the reviewable output of one batch.
type Result struct {
	Mapping mapper.Mapping       `json:"mapping"`
	Records []model.ReviewRecord `json:"records"`
	Summary model.ReviewSummary  `json:"summary"`
}

// Pipeline owns the engines for the duration of a host session. It provides
// no locking; hosts sharing one pipeline across concurrent batches must
// serialize rule mutations.
type Pipeline struct {
	normalizer  *normalizer.Engine
	categorizer *categorizer.Engine
	aggregator  *review.Aggregator
}

// New creates a pipeline over explicit engines. knownCategories gates the
// categorizer's suggestions.
func New(norm *normalizer.Engine, cat *categorizer.Engine, knownCategories []string) *Pipeline {
	return &Pipeline{
		normalizer:  norm,
		categorizer: cat,
		aggregator:  review.New(norm, cat, knownCategories),
	}
}

// NewWithDefaults creates a pipeline with default configs and seed rules.
func NewWithDefaults(knownCategories []string) *Pipeline {
	return New(normalizer.NewWithDefaults(), categorizer.NewWithDefaults(), knownCategories)
}

// ProcessText runs raw clipboard or file text through the whole pipeline.
// Structural parse failures abort the batch; everything else degrades to
// per-row flags.
func (p *Pipeline) ProcessText(input string, opts Options) (*Result, error) {
	table, err := parser.Parse(input)
	if err != nil {
		return nil, err
	}
	return p.ProcessTable(table, opts)
}

// ProcessTable runs an already-parsed table through mapping, hashing and
// review. The mapping must cover the required fields; auto-suggestion is used
// when no override is given.
func (p *Pipeline) ProcessTable(table *parser.Table, opts Options) (*Result, error) {
	mapping := opts.Mapping
	if mapping == nil {
		mapping = mapper.Suggest(table.Headers)
	}
	if err := mapping.Validate(); err != nil {
		return nil, err
	}

	transactions := mapper.Transform(table, mapping)
	result := p.processTransactions(transactions, opts.KnownHashes)
	result.Mapping = mapping

	slog.Debug("processed batch",
		"rows", len(table.Rows),
		"transactions", result.Summary.Total,
		"ready", result.Summary.Ready,
		"flagged", result.Summary.Flagged)

	return result, nil
}

// ProcessTransactions runs pre-parsed transaction candidates (from an OFX
// adapter or an external AI-extraction step) through hashing and review.
func (p *Pipeline) ProcessTransactions(transactions []model.Transaction, opts Options) *Result {
	return p.processTransactions(transactions, opts.KnownHashes)
}

func (p *Pipeline) processTransactions(transactions []model.Transaction, knownHashes map[string]bool) *Result {
	transactions = dedup.HashBatch(transactions)
	if len(knownHashes) > 0 {
		transactions = dedup.FlagKnown(transactions, knownHashes)
	}

	records := p.aggregator.Review(transactions)
	return &Result{
		Records: records,
		Summary: review.Summarize(records),
	}
}

// Commit finalizes the zero-error subset and feeds corrections back into the
// learning engines. See review.Aggregator.Commit.
func (p *Pipeline) Commit(records []model.ReviewRecord) []model.Transaction {
	return p.aggregator.Commit(records)
}

// ExportRules snapshots both engines' rules for the persistence boundary.
func (p *Pipeline) ExportRules() model.RuleSet {
	return model.RuleSet{
		Normalization:  p.normalizer.Rules(),
		Categorization: p.categorizer.Rules(),
	}
}

// ImportRules replaces both engines' rules, e.g. from host storage.
// importing a previously exported set leaves behavior unchanged.
func (p *Pipeline) ImportRules(rules model.RuleSet) {
	p.normalizer.SetRules(rules.Normalization)
	p.categorizer.SetRules(rules.Categorization)
}

// Normalizer exposes the vendor engine for host-driven learning.
func (p *Pipeline) Normalizer() *normalizer.Engine { return p.normalizer }

// Categorizer exposes the category engine for host-driven learning.
func (p *Pipeline) Categorizer() *categorizer.Engine { return p.categorizer }
