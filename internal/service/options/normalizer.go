package options

import (
	"sort"
	"time"

	"MarketPulse/internal/domain/models"
)

// maxPatterns caps the ranked pattern list served to clients.
const maxPatterns = 100

// Normalize projects a raw provider chain into the display-ready OptionChain.
// Only the first expiration's contracts are surfaced. The second return value
// is false when the payload carries no usable expiration group; callers fall
// back to synthesis in that case.
func Normalize(raw *models.RawChain, now time.Time) (*models.OptionChain, bool) {
	if raw == nil || len(raw.ExpirationDates) == 0 {
		return nil, false
	}

	first := raw.ExpirationDates[0]
	group := findGroup(raw.Options, first)
	if group == nil {
		return nil, false
	}

	chain := &models.OptionChain{
		Symbol:          raw.Quote.Symbol,
		SpotPrice:       raw.Quote.RegularMarketPrice,
		ExpirationDates: raw.ExpirationDates,
		Calls:           sortByStrike(group.Calls),
		Puts:            sortByStrike(group.Puts),
		LastUpdated:     now,
		IsRealData:      true,
	}
	chain.Patterns = RankPatterns(chain.Calls, chain.Puts)
	return chain, true
}

// RankPatterns builds the pattern list from call and put legs, ordered by
// open interest descending. The sort is stable: legs with equal open interest
// keep their input order, calls ahead of puts. At most maxPatterns entries
// are returned.
func RankPatterns(calls, puts []models.OptionLeg) []models.Pattern {
	patterns := make([]models.Pattern, 0, len(calls)+len(puts))
	for _, leg := range calls {
		patterns = append(patterns, toPattern(leg, models.PatternCall))
	}
	for _, leg := range puts {
		patterns = append(patterns, toPattern(leg, models.PatternPut))
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].OpenInterest > patterns[j].OpenInterest
	})

	if len(patterns) > maxPatterns {
		patterns = patterns[:maxPatterns]
	}
	return patterns
}

func sortByStrike(legs []models.OptionLeg) []models.OptionLeg {
	out := make([]models.OptionLeg, len(legs))
	copy(out, legs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Strike < out[j].Strike
	})
	return out
}

func findGroup(groups []models.RawExpiryGroup, expiration string) *models.RawExpiryGroup {
	for i := range groups {
		if groups[i].ExpirationDate == expiration {
			return &groups[i]
		}
	}
	return nil
}

func toPattern(leg models.OptionLeg, kind models.PatternKind) models.Pattern {
	return models.Pattern{
		Strike:            leg.Strike,
		Kind:              kind,
		OpenInterest:      leg.OpenInterest,
		ImpliedVolatility: leg.ImpliedVolatility,
		Expiration:        leg.Expiration,
	}
}
