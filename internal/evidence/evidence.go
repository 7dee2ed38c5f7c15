// Package evidence assigns ACMG/AMP evidence codes from validated
// variant observations. Each criterion is an independent rule that
// appends to a shared set; no rule reads or rewrites another rule's
// output.
package evidence

import (
	"context"

	"go.uber.org/zap"

	"github.com/inodb/vibe-acmg/internal/resolve"
	"github.com/inodb/vibe-acmg/internal/variant"
)

// Input bundles everything a rule may consult for one variant.
type Input struct {
	Variant    *variant.Variant
	Population *variant.PopulationObservation
	Predictors variant.PredictorObservation
	Pedigree   *variant.PedigreeObservation
	Gene       resolve.GeneInfo
	ClinVar    *resolve.ClinVarAssertion
	Guideline  variant.Guideline
}

// rule evaluates one criterion group and appends any codes it
// assigns. Rules record statistical indeterminacy via the collector
// rather than failing.
type rule interface {
	Name() string
	Apply(ctx context.Context, in Input, out *Collector) error
}

// Collector accumulates codes and audit notes during a run.
type Collector struct {
	Set           *variant.EvidenceSet
	Indeterminate []string
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{Set: variant.NewEvidenceSet()}
}

// Note records why a statistical procedure could not conclude.
func (c *Collector) Note(reason string) {
	c.Indeterminate = append(c.Indeterminate, reason)
}

// Config toggles individual rules. The zero value enables everything
// except reputable-source codes, which repeat other submitters'
// judgment rather than primary evidence.
type Config struct {
	DisabledRules       map[string]bool
	EnableReputableCode bool
}

// Engine runs the configured rules in a fixed order.
type Engine struct {
	rules []rule
	cfg   Config
	log   *zap.Logger
}

// NewEngine builds the standard rule pipeline.
func NewEngine(cfg Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	rules := []rule{
		&frequencyRule{},
		&consequenceRule{},
		&caseControlRule{},
		&clinvarRule{reputable: cfg.EnableReputableCode},
		&computationalRule{},
		&functionalRule{},
		&familyRule{},
		&phenotypeRule{},
		&compoundHetRule{},
	}
	return &Engine{rules: rules, cfg: cfg, log: log}
}

// Assign runs every enabled rule and returns the accumulated evidence.
func (e *Engine) Assign(ctx context.Context, in Input) (*Collector, error) {
	out := NewCollector()
	for _, r := range e.rules {
		if e.cfg.DisabledRules[r.Name()] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.Apply(ctx, in, out); err != nil {
			return nil, err
		}
		e.log.Debug("rule applied",
			zap.String("rule", r.Name()),
			zap.Int("codes", out.Set.Len()))
	}
	return out, nil
}
