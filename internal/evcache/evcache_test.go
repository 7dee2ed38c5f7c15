package evcache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scoreRecord struct {
	Score float64 `json:"score"`
}

func predictorKey(id string) Key {
	return Key{Category: CategoryPredictor, Source: "revel", VariantID: id, Version: "4.0"}
}

func TestSetGetRoundTrip(t *testing.T) {
	c := New()
	k := predictorKey("GRCh38:17-43094464-G-A")

	require.NoError(t, c.Set(k, scoreRecord{Score: 0.93}, true))

	var got scoreRecord
	require.True(t, c.Get(k, &got))
	assert.Equal(t, 0.93, got.Score)
}

func TestUnvalidatedSetIsNoOp(t *testing.T) {
	c := New()
	k := predictorKey("variant-1")

	require.NoError(t, c.Set(k, scoreRecord{Score: 0.5}, false))

	var got scoreRecord
	assert.False(t, c.Get(k, &got))
	assert.Equal(t, 0, c.Len())
}

func TestExpiryByCategory(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	c := NewWithClock(clock)

	pred := predictorKey("variant-1")
	pop := Key{Category: CategoryPopulation, Source: "gnomad", VariantID: "variant-1", Version: "v4"}
	require.NoError(t, c.Set(pred, scoreRecord{Score: 0.9}, true))
	require.NoError(t, c.Set(pop, scoreRecord{Score: 0.001}, true))

	// Eight days in: predictor entries expire, population entries hold.
	now = now.Add(8 * 24 * time.Hour)
	var got scoreRecord
	assert.False(t, c.Get(pred, &got))
	assert.True(t, c.Get(pop, &got))

	// An expired read purges the entry.
	assert.Equal(t, 1, c.Len())

	// A month in, the population entry goes too.
	now = now.Add(25 * 24 * time.Hour)
	assert.False(t, c.Get(pop, &got))
	assert.Equal(t, 0, c.Len())
}

func TestCorruptedEntryMissesAndPurges(t *testing.T) {
	c := New()
	k := predictorKey("variant-1")
	require.NoError(t, c.Set(k, scoreRecord{Score: 0.9}, true))

	// Flip a byte behind the hash's back.
	c.mu.Lock()
	e := c.entries[k.String()]
	e.payload = append([]byte(nil), e.payload...)
	e.payload[0] ^= 0xff
	c.entries[k.String()] = e
	c.mu.Unlock()

	var got scoreRecord
	assert.False(t, c.Get(k, &got))
	assert.Equal(t, 0, c.Len())
}

func TestUndecodableEntryMisses(t *testing.T) {
	c := New()
	k := predictorKey("variant-1")
	require.NoError(t, c.Set(k, scoreRecord{Score: 0.9}, true))

	// Valid payload, wrong target shape.
	var wrong []string
	assert.False(t, c.Get(k, &wrong))
	assert.Equal(t, 0, c.Len())
}

func TestGetOrFill(t *testing.T) {
	c := New()
	k := predictorKey("variant-1")

	calls := 0
	fill := func() (any, error) {
		calls++
		return scoreRecord{Score: 0.7}, nil
	}

	var got scoreRecord
	require.NoError(t, c.GetOrFill(k, &got, fill))
	assert.Equal(t, 0.7, got.Score)
	require.NoError(t, c.GetOrFill(k, &got, fill))
	assert.Equal(t, 1, calls)
}

func TestGetOrFillError(t *testing.T) {
	c := New()
	k := predictorKey("variant-1")

	wantErr := errors.New("upstream unavailable")
	var got scoreRecord
	err := c.GetOrFill(k, &got, func() (any, error) { return nil, wantErr })
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 0, c.Len())
}

func TestKeyString(t *testing.T) {
	k := predictorKey("GRCh38:17-100-A-T")
	assert.Equal(t, "predictor:revel:GRCh38:17-100-A-T:4.0", k.String())
	assert.Equal(t, 7*24*time.Hour, k.TTL())
}
