package options

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/domain/models"
)

func leg(strike float64, oi int) models.OptionLeg {
	return models.OptionLeg{
		Strike:            strike,
		OpenInterest:      oi,
		ImpliedVolatility: 0.3,
		Expiration:        "2026-10-01",
	}
}

func TestNormalizeFirstExpiration(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	raw := &models.RawChain{
		Quote:           models.RawQuote{Symbol: "AAPL", RegularMarketPrice: 151.2},
		ExpirationDates: []string{"2026-10-01", "2026-11-01"},
		Options: []models.RawExpiryGroup{
			{ExpirationDate: "2026-11-01", Calls: []models.OptionLeg{leg(160, 7)}},
			{ExpirationDate: "2026-10-01", Calls: []models.OptionLeg{leg(150, 40)}, Puts: []models.OptionLeg{leg(145, 90)}},
		},
	}

	chain, ok := Normalize(raw, now)
	require.True(t, ok)
	assert.Equal(t, "AAPL", chain.Symbol)
	assert.Equal(t, 151.2, chain.SpotPrice)
	assert.Equal(t, now, chain.LastUpdated)
	assert.True(t, chain.IsRealData)
	assert.False(t, chain.IsMockData)

	// Contracts come from the group matching the first expiration date,
	// not from the first group in the payload.
	require.Len(t, chain.Calls, 1)
	assert.Equal(t, 150.0, chain.Calls[0].Strike)
	require.Len(t, chain.Puts, 1)
	assert.Equal(t, 145.0, chain.Puts[0].Strike)

	require.Len(t, chain.Patterns, 2)
	assert.Equal(t, models.PatternPut, chain.Patterns[0].Kind)
	assert.Equal(t, 90, chain.Patterns[0].OpenInterest)
}

func TestNormalizeNotNormalizable(t *testing.T) {
	now := time.Now()

	t.Run("nil chain", func(t *testing.T) {
		_, ok := Normalize(nil, now)
		assert.False(t, ok)
	})

	t.Run("no expirations", func(t *testing.T) {
		_, ok := Normalize(&models.RawChain{}, now)
		assert.False(t, ok)
	})

	t.Run("no group for first expiration", func(t *testing.T) {
		raw := &models.RawChain{
			ExpirationDates: []string{"2026-10-01"},
			Options: []models.RawExpiryGroup{
				{ExpirationDate: "2026-11-01", Calls: []models.OptionLeg{leg(150, 1)}},
			},
		}
		_, ok := Normalize(raw, now)
		assert.False(t, ok)
	})
}

func TestNormalizeSortsLegsByStrike(t *testing.T) {
	raw := &models.RawChain{
		ExpirationDates: []string{"2026-10-01"},
		Options: []models.RawExpiryGroup{{
			ExpirationDate: "2026-10-01",
			Calls:          []models.OptionLeg{leg(160, 1), leg(140, 2), leg(150, 3)},
			Puts:           []models.OptionLeg{leg(155, 1), leg(145, 2)},
		}},
	}

	chain, ok := Normalize(raw, time.Now())
	require.True(t, ok)
	assert.Equal(t, []float64{140, 150, 160}, []float64{chain.Calls[0].Strike, chain.Calls[1].Strike, chain.Calls[2].Strike})
	assert.Equal(t, []float64{145, 155}, []float64{chain.Puts[0].Strike, chain.Puts[1].Strike})
}

func TestRankPatternsOrderAndStability(t *testing.T) {
	calls := []models.OptionLeg{leg(100, 50), leg(105, 200), leg(110, 200), leg(115, 10)}
	puts := []models.OptionLeg{leg(95, 5)}

	patterns := RankPatterns(calls, puts)
	require.Len(t, patterns, 5)

	gotOI := make([]int, len(patterns))
	for i, p := range patterns {
		gotOI[i] = p.OpenInterest
	}
	assert.Equal(t, []int{200, 200, 50, 10, 5}, gotOI)

	// Equal open interest preserves input order.
	assert.Equal(t, 105.0, patterns[0].Strike)
	assert.Equal(t, 110.0, patterns[1].Strike)
	assert.Equal(t, models.PatternPut, patterns[4].Kind)
}

func TestRankPatternsTiedCallsBeforePuts(t *testing.T) {
	calls := []models.OptionLeg{leg(100, 33)}
	puts := []models.OptionLeg{leg(100, 33)}

	patterns := RankPatterns(calls, puts)
	require.Len(t, patterns, 2)
	assert.Equal(t, models.PatternCall, patterns[0].Kind)
	assert.Equal(t, models.PatternPut, patterns[1].Kind)
}

func TestRankPatternsTruncates(t *testing.T) {
	calls := make([]models.OptionLeg, 0, 80)
	puts := make([]models.OptionLeg, 0, 80)
	for i := 0; i < 80; i++ {
		calls = append(calls, leg(float64(100+i), i))
		puts = append(puts, leg(float64(100+i), i))
	}

	patterns := RankPatterns(calls, puts)
	assert.Len(t, patterns, 100)
	assert.Equal(t, 79, patterns[0].OpenInterest)
}

func TestRankPatternsEmpty(t *testing.T) {
	patterns := RankPatterns(nil, nil)
	assert.NotNil(t, patterns)
	assert.Empty(t, patterns)
}
