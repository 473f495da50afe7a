package sources

import (
	"context"
	"math/rand"
	"time"

	"FarmPulse/internal/catalog"
	"FarmPulse/internal/domain/models"
	applogger "FarmPulse/pkg/logger"
)

// MACO simulates the Ministry of Agriculture market information bulletins:
// regional market prices with seasonal adjustment.
type MACO struct {
	cat *catalog.Catalog
	log *applogger.Logger
	rng *rand.Rand
	now func() time.Time
}

var macoRegions = []string{"Copperbelt", "Southern", "Eastern"}

var macoCommodities = []string{"Maize", "Beans", "Groundnuts", "Rice", "Tomatoes", "Soybeans"}

// Regional price-level adjustments from ministry bulletins. The Copperbelt
// trades above the baseline, the western provinces below it.
var macoRegionFactors = map[string]float64{
	"Copperbelt": 1.02,
	"Southern":   0.98,
	"Eastern":    1.00,
	"Central":    0.97,
	"Northern":   0.96,
	"Western":    0.92,
}

func NewMACO(cat *catalog.Catalog, log *applogger.Logger) *MACO {
	return &MACO{
		cat: cat,
		log: log,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

func (m *MACO) Name() string { return "MACO" }

// Fetch reports prices for the first two markets of each covered region.
func (m *MACO) Fetch(ctx context.Context) []models.PriceObservation {
	if ctx.Err() != nil {
		return nil
	}

	now := m.now()

	var out []models.PriceObservation
	for _, region := range macoRegions {
		factor := macoRegionFactors[region]
		if factor == 0 {
			factor = 1.0
		}

		markets := m.cat.MarketsByRegion(region)
		if len(markets) > 2 {
			markets = markets[:2]
		}

		for _, mk := range markets {
			for _, commodity := range macoCommodities {
				profile := m.cat.CommodityProfile(commodity)
				seasonal := m.cat.SeasonalFactor(commodity, now.Month())
				price := profile.TypicalPrice * factor * seasonal * jitter(m.rng, 0.03)

				o := observation(m.cat, mk.Name, commodity, "MACO", region, price)
				o.RecordedAt = now
				o.Volume = floatPtr(float64(1000 + m.rng.Intn(4001)))
				out = append(out, o)
			}
		}
	}

	m.log.Debug("maco fetch complete", applogger.Int("records", len(out)))
	return out
}
