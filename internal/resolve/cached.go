package resolve

import (
	"context"

	"github.com/inodb/vibe-acmg/internal/evcache"
)

// CachedGeneResolver memoizes gene lookups through the validated
// cache so repeated runs do not refetch dosage records.
type CachedGeneResolver struct {
	Inner GeneResolver
	Cache *evcache.Cache
	// Version stamps cache keys so a source update invalidates
	// previously stored records.
	Version string
}

func (r *CachedGeneResolver) ResolveGene(ctx context.Context, symbol string) (GeneInfo, error) {
	key := evcache.Key{
		Category:  evcache.CategoryPopulation,
		Source:    "gene_dosage",
		VariantID: symbol,
		Version:   r.Version,
	}
	var info GeneInfo
	err := r.Cache.GetOrFill(key, &info, func() (any, error) {
		return r.Inner.ResolveGene(ctx, symbol)
	})
	return info, err
}

// CachedClinVarResolver memoizes variant assertion lookups. A
// not-found answer is cached too, as an absent assertion.
type CachedClinVarResolver struct {
	Inner   ClinVarResolver
	Cache   *evcache.Cache
	Version string
}

type cachedAssertion struct {
	Found     bool
	Assertion ClinVarAssertion
}

func (r *CachedClinVarResolver) ResolveVariant(ctx context.Context, variantID, hgvsp string) (*ClinVarAssertion, error) {
	key := evcache.Key{
		Category:  evcache.CategoryPredictor,
		Source:    "clinvar",
		VariantID: variantID,
		Version:   r.Version,
	}
	var cached cachedAssertion
	err := r.Cache.GetOrFill(key, &cached, func() (any, error) {
		a, err := r.Inner.ResolveVariant(ctx, variantID, hgvsp)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return cachedAssertion{}, nil
		}
		return cachedAssertion{Found: true, Assertion: *a}, nil
	})
	if err != nil {
		return nil, err
	}
	if !cached.Found {
		return nil, nil
	}
	a := cached.Assertion
	return &a, nil
}
