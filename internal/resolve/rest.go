package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
)

// RESTResolver resolves gene dosage scores and variant assertions from
// HTTP knowledge-base endpoints, retrying transient failures with
// exponential backoff.
type RESTResolver struct {
	baseURL    string
	httpClient *http.Client
	fallback   StaticGeneResolver
}

// NewRESTResolver creates a resolver against the given base URL.
func NewRESTResolver(baseURL string) *RESTResolver {
	return &RESTResolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// getJSON fetches a URL and decodes its JSON body into out, retrying
// on network errors and 5xx responses.
func (r *RESTResolver) getJSON(ctx context.Context, u string, out any) error {
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := r.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return backoff.Permanent(errNotFound)
		}
		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body)))
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4), ctx)
	return backoff.Retry(op, policy)
}

var errNotFound = fmt.Errorf("not found")

// ResolveGene fetches the ClinGen dosage record for a gene symbol. A
// missing record falls back to the static constraint lists.
func (r *RESTResolver) ResolveGene(ctx context.Context, symbol string) (GeneInfo, error) {
	var record struct {
		Symbol     string `json:"gene_symbol"`
		HaploScore int    `json:"haploinsufficiency_score"`
	}
	u := fmt.Sprintf("%s/dosage/gene/%s", r.baseURL, url.PathEscape(symbol))
	if err := r.getJSON(ctx, u, &record); err != nil {
		if err == errNotFound {
			return r.fallback.ResolveGene(ctx, symbol)
		}
		return GeneInfo{}, fmt.Errorf("resolve gene %s: %w", symbol, err)
	}
	return GeneInfo{
		Symbol:                  symbol,
		HaploinsufficiencyScore: record.HaploScore,
		LOFIntolerant:           lofIntolerantGenes[symbol],
		LOFTolerant:             lofTolerantGenes[symbol],
	}, nil
}

// ResolveVariant fetches prior assertions for a variant. A missing
// record is not an error; it returns nil.
func (r *RESTResolver) ResolveVariant(ctx context.Context, variantID, hgvsp string) (*ClinVarAssertion, error) {
	var record struct {
		Classification string `json:"classification"`
		ReviewStars    int    `json:"review_stars"`
		SameAAChange   bool   `json:"same_amino_acid_change"`
	}
	u := fmt.Sprintf("%s/clinvar/variant/%s?hgvsp=%s",
		r.baseURL, url.PathEscape(variantID), url.QueryEscape(hgvsp))
	if err := r.getJSON(ctx, u, &record); err != nil {
		if err == errNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve variant %s: %w", variantID, err)
	}
	return &ClinVarAssertion{
		Classification:      strings.ToLower(record.Classification),
		ReviewStars:         record.ReviewStars,
		SameAminoAcidChange: record.SameAAChange,
	}, nil
}
