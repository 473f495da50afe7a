package sources

import (
	"context"
	"math/rand"
	"time"

	"FarmPulse/internal/catalog"
	"FarmPulse/internal/domain/models"
	applogger "FarmPulse/pkg/logger"
)

// IAPRI simulates the Indaba Agricultural Policy Research Institute market
// research series: cash crops priced at the farm-gate, wholesale and retail
// levels of the value chain.
type IAPRI struct {
	cat *catalog.Catalog
	log *applogger.Logger
	rng *rand.Rand
	now func() time.Time
}

var iapriCommodities = []string{"Maize", "Soybeans", "Groundnuts", "Sunflower", "Cotton"}

type priceTier struct {
	name       string
	multiplier float64
}

// Farmers receive less than the wholesale baseline, consumers pay more.
var iapriTiers = []priceTier{
	{"Farm Gate", 0.85},
	{"Wholesale", 1.00},
	{"Retail", 1.25},
}

func NewIAPRI(cat *catalog.Catalog, log *applogger.Logger) *IAPRI {
	return &IAPRI{
		cat: cat,
		log: log,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

func (i *IAPRI) Name() string { return "IAPRI" }

// Fetch reports one price per commodity per value-chain tier.
func (i *IAPRI) Fetch(ctx context.Context) []models.PriceObservation {
	if ctx.Err() != nil {
		return nil
	}

	now := i.now()

	var out []models.PriceObservation
	for _, commodity := range iapriCommodities {
		profile := i.cat.CommodityProfile(commodity)
		for _, tier := range iapriTiers {
			price := profile.TypicalPrice * tier.multiplier * jitter(i.rng, 0.02)

			o := observation(i.cat, "IAPRI "+tier.name, commodity, "IAPRI", "", price)
			o.RecordedAt = now
			o.Volume = floatPtr(float64(2000 + i.rng.Intn(8001)))
			out = append(out, o)
		}
	}

	i.log.Debug("iapri fetch complete", applogger.Int("records", len(out)))
	return out
}
