// Package engine wires intake validation, evidence assignment, and
// classification into a single evaluator.
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inodb/vibe-acmg/internal/classify"
	"github.com/inodb/vibe-acmg/internal/evcache"
	"github.com/inodb/vibe-acmg/internal/evidence"
	"github.com/inodb/vibe-acmg/internal/resolve"
	"github.com/inodb/vibe-acmg/internal/variant"
)

// Inputs holds one variant's observations for evaluation. Population,
// Predictors, and Pedigree are each optional; a nil section simply
// contributes no evidence.
type Inputs struct {
	Variant    *variant.Variant
	Population *variant.PopulationObservation
	Predictors variant.PredictorObservation
	Pedigree   *variant.PedigreeObservation
}

// Evaluator runs the full classification pipeline.
type Evaluator struct {
	genes   resolve.GeneResolver
	clinvar resolve.ClinVarResolver
	rules   *evidence.Engine
	audit   *evcache.Store
	log     *zap.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Evaluator) { e.log = log }
}

// WithResolvers sets the external knowledge resolvers. Nil resolvers
// fall back to offline static lookups.
func WithResolvers(genes resolve.GeneResolver, clinvar resolve.ClinVarResolver) Option {
	return func(e *Evaluator) {
		if genes != nil {
			e.genes = genes
		}
		if clinvar != nil {
			e.clinvar = clinvar
		}
	}
}

// WithAuditStore appends every classification to the store's audit
// table.
func WithAuditStore(s *evcache.Store) Option {
	return func(e *Evaluator) { e.audit = s }
}

// WithRuleConfig replaces the evidence rule configuration.
func WithRuleConfig(cfg evidence.Config) Option {
	return func(e *Evaluator) {
		e.rules = evidence.NewEngine(cfg, e.log)
	}
}

// New creates an evaluator with offline resolvers and default rules.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		genes:   resolve.StaticGeneResolver{},
		clinvar: resolve.NoClinVar{},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rules == nil {
		e.rules = evidence.NewEngine(evidence.Config{}, e.log)
	}
	return e
}

// Evaluate validates the inputs, assigns evidence, and classifies the
// variant under the given guideline revision. Invalid observations are
// refused before any evidence is assigned.
func (e *Evaluator) Evaluate(ctx context.Context, in Inputs, g variant.Guideline) (*variant.ClassificationResult, error) {
	if in.Variant == nil {
		return nil, &variant.InvalidInputError{Field: "variant", Value: nil}
	}
	if g != variant.Guideline2015 && g != variant.Guideline2023 {
		return nil, &variant.InvalidInputError{Field: "guideline", Value: string(g)}
	}
	if in.Population != nil {
		if err := in.Population.Validate(); err != nil {
			return nil, err
		}
	}
	if in.Pedigree != nil {
		if err := in.Pedigree.Validate(); err != nil {
			return nil, err
		}
	}

	gene, err := e.genes.ResolveGene(ctx, in.Variant.Gene)
	if err != nil {
		return nil, fmt.Errorf("resolve gene %s: %w", in.Variant.Gene, err)
	}
	assertion, err := e.clinvar.ResolveVariant(ctx, in.Variant.ID(), in.Variant.HGVSp)
	if err != nil {
		// Prior assertions are corroborative. A lookup failure costs
		// one optional code, not the whole run.
		e.log.Warn("clinvar lookup failed",
			zap.String("variant", in.Variant.ID()),
			zap.Error(err))
		assertion = nil
	}

	collected, err := e.rules.Assign(ctx, evidence.Input{
		Variant:    in.Variant,
		Population: in.Population,
		Predictors: in.Predictors,
		Pedigree:   in.Pedigree,
		Gene:       gene,
		ClinVar:    assertion,
		Guideline:  g,
	})
	if err != nil {
		return nil, err
	}

	codes := collected.Set.Codes()
	label := classify.Classify(codes, g)
	res := &variant.ClassificationResult{
		RunID:         uuid.NewString(),
		Label:         label,
		Guideline:     g,
		Codes:         codes,
		Indeterminate: collected.Indeterminate,
	}
	e.log.Info("variant classified",
		zap.String("run_id", res.RunID),
		zap.String("variant", in.Variant.ID()),
		zap.String("label", string(label)),
		zap.Int("codes", len(codes)))

	if e.audit != nil {
		tags := make([]string, len(codes))
		for i, c := range codes {
			tags[i] = string(c.Tag)
		}
		if err := e.audit.AppendAudit(res.RunID, in.Variant.ID(), string(g), string(label), strings.Join(tags, ",")); err != nil {
			e.log.Warn("audit append failed", zap.Error(err))
		}
	}
	return res, nil
}
