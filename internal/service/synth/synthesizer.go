package synth

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/service/options"
	"MarketPulse/pkg/util"
)

const (
	strikeCount  = 21
	strikeOffset = 50.0
	strikeStep   = 5.0
	bidAskSpread = 0.50
	ivFloor      = 0.20
	ivSpan       = 0.30
)

// basePrices anchors synthetic chains for well-known tickers; anything else
// gets defaultBase.
var basePrices = map[string]float64{
	"AAPL": 150,
	"MSFT": 300,
	"TSLA": 700,
}

const defaultBase = 100.0

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithRand sets the random source. Handy for deterministic tests.
func WithRand(r *rand.Rand) Option {
	return func(s *Synthesizer) {
		s.rng = r
	}
}

// WithClock sets the time source.
func WithClock(clock func() time.Time) Option {
	return func(s *Synthesizer) {
		s.now = clock
	}
}

// Synthesizer builds plausible option chains when upstream data is
// unavailable. Output is always labeled as mock data.
type Synthesizer struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// New creates a Synthesizer seeded from the wall clock unless overridden.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate builds a synthetic option chain for a symbol. Strikes cover
// base-50 to base+50 in steps of 5, with two expirations at 30 and 60 days
// out. Asks always sit a fixed spread above bids.
func (s *Synthesizer) Generate(symbol string) *models.OptionChain {
	s.mu.Lock()
	defer s.mu.Unlock()

	base, ok := basePrices[symbol]
	if !ok {
		base = defaultBase
	}

	now := s.now()
	expirations := []string{util.DaysFrom(now, 30), util.DaysFrom(now, 60)}

	calls := make([]models.OptionLeg, 0, strikeCount)
	puts := make([]models.OptionLeg, 0, strikeCount)
	for i := 0; i < strikeCount; i++ {
		strike := base - strikeOffset + float64(i)*strikeStep
		calls = append(calls, s.leg(strike, expirations[0]))
		puts = append(puts, s.leg(strike, expirations[0]))
	}

	chain := &models.OptionChain{
		Symbol:          symbol,
		SpotPrice:       base,
		ExpirationDates: expirations,
		Calls:           calls,
		Puts:            puts,
		LastUpdated:     now,
		IsMockData:      true,
	}
	chain.Patterns = options.RankPatterns(calls, puts)
	return chain
}

func (s *Synthesizer) leg(strike float64, expiration string) models.OptionLeg {
	last := round2(s.rng.Float64() * 10)
	bid := round2(s.rng.Float64() * 8)
	return models.OptionLeg{
		Strike:            strike,
		LastPrice:         last,
		Bid:               bid,
		Ask:               round2(bid + bidAskSpread),
		Volume:            s.rng.Intn(1000),
		OpenInterest:      s.rng.Intn(1000),
		ImpliedVolatility: ivFloor + s.rng.Float64()*ivSpan,
		Expiration:        expiration,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
