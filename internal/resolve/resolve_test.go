package resolve

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-acmg/internal/evcache"
)

func TestStaticGeneResolver(t *testing.T) {
	r := StaticGeneResolver{}

	brca1, err := r.ResolveGene(context.Background(), "BRCA1")
	require.NoError(t, err)
	assert.True(t, brca1.LOFIntolerant)
	assert.Equal(t, DosageUnknown, brca1.HaploinsufficiencyScore)

	ttn, err := r.ResolveGene(context.Background(), "TTN")
	require.NoError(t, err)
	assert.True(t, ttn.LOFTolerant)

	novel, err := r.ResolveGene(context.Background(), "NOVEL1")
	require.NoError(t, err)
	assert.False(t, novel.LOFIntolerant)
	assert.False(t, novel.LOFTolerant)
}

func TestRESTResolverGene(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/dosage/gene/BRCA1":
			fmt.Fprint(w, `{"gene_symbol":"BRCA1","haploinsufficiency_score":3}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	r := NewRESTResolver(srv.URL)

	info, err := r.ResolveGene(context.Background(), "BRCA1")
	require.NoError(t, err)
	assert.Equal(t, DosageSufficient, info.HaploinsufficiencyScore)
	assert.True(t, info.LOFIntolerant)

	// A gene without a dosage record falls back to the static lists.
	info, err = r.ResolveGene(context.Background(), "TTN")
	require.NoError(t, err)
	assert.Equal(t, DosageUnknown, info.HaploinsufficiencyScore)
	assert.True(t, info.LOFTolerant)
}

func TestRESTResolverRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "try later", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"gene_symbol":"BRCA1","haploinsufficiency_score":2}`)
	}))
	defer srv.Close()

	r := NewRESTResolver(srv.URL)
	info, err := r.ResolveGene(context.Background(), "BRCA1")
	require.NoError(t, err)
	assert.Equal(t, DosageEmerging, info.HaploinsufficiencyScore)
	assert.Equal(t, 3, attempts)
}

func TestRESTResolverVariant(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/clinvar/variant/GRCh38:17-100-A-T" {
			fmt.Fprint(w, `{"classification":"Pathogenic","review_stars":3,"same_amino_acid_change":true}`)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	r := NewRESTResolver(srv.URL)

	a, err := r.ResolveVariant(context.Background(), "GRCh38:17-100-A-T", "p.Gln34Ter")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "pathogenic", a.Classification)
	assert.True(t, a.Reputable())
	assert.True(t, a.SameAminoAcidChange)

	// Not found means no assertion, not an error.
	a, err = r.ResolveVariant(context.Background(), "GRCh38:17-200-G-C", "")
	require.NoError(t, err)
	assert.Nil(t, a)
}

func TestCachedGeneResolver(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"gene_symbol":"BRCA1","haploinsufficiency_score":3}`)
	}))
	defer srv.Close()

	cached := &CachedGeneResolver{
		Inner:   NewRESTResolver(srv.URL),
		Cache:   evcache.New(),
		Version: "1",
	}

	for range 3 {
		info, err := cached.ResolveGene(context.Background(), "BRCA1")
		require.NoError(t, err)
		assert.Equal(t, DosageSufficient, info.HaploinsufficiencyScore)
	}
	assert.Equal(t, 1, calls)
}

func TestCachedClinVarResolverCachesNotFound(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.NotFound(w, r)
	}))
	defer srv.Close()

	cached := &CachedClinVarResolver{
		Inner:   NewRESTResolver(srv.URL),
		Cache:   evcache.New(),
		Version: "1",
	}

	for range 3 {
		a, err := cached.ResolveVariant(context.Background(), "GRCh38:17-100-A-T", "")
		require.NoError(t, err)
		assert.Nil(t, a)
	}
	assert.Equal(t, 1, calls)
}
