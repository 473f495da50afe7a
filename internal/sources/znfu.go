package sources

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"FarmPulse/internal/catalog"
	"FarmPulse/internal/domain/models"
	applogger "FarmPulse/pkg/logger"
)

// ZNFU simulates the Zambia National Farmers Union market bulletin: the three
// largest Lusaka markets, staple commodities, volumes and quality grades.
type ZNFU struct {
	cat *catalog.Catalog
	log *applogger.Logger
	rng *rand.Rand
	now func() time.Time
}

var znfuCommodities = []string{"Maize", "Tomatoes", "Beans", "Rice", "Groundnuts", "Soybeans"}

// Daily trade volumes in kg, by commodity.
var znfuVolumes = map[string][2]int{
	"Maize":      {5000, 20000},
	"Tomatoes":   {2000, 8000},
	"Beans":      {1000, 5000},
	"Rice":       {3000, 10000},
	"Groundnuts": {2000, 7000},
	"Soybeans":   {2000, 6000},
}

func NewZNFU(cat *catalog.Catalog, log *applogger.Logger) *ZNFU {
	return &ZNFU{
		cat: cat,
		log: log,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

func (z *ZNFU) Name() string { return "ZNFU" }

// Fetch reports prices for the first three Lusaka markets. Prices drift with
// the day of month so repeated daily runs produce a realistic series.
func (z *ZNFU) Fetch(ctx context.Context) []models.PriceObservation {
	if ctx.Err() != nil {
		return nil
	}

	now := z.now()
	markets := z.cat.MarketsByRegion("Lusaka")
	if len(markets) > 3 {
		markets = markets[:3]
	}

	// -8% to +8% across the month, deterministic per calendar day.
	dailyDrift := 1 + float64(now.Day()%21-10)*0.008

	var out []models.PriceObservation
	for _, m := range markets {
		marketFactor := 1.0
		if strings.Contains(m.Name, "Central") {
			marketFactor = 1.05
		} else if strings.Contains(m.Name, "Soweto") {
			marketFactor = 0.95
		}

		for _, commodity := range znfuCommodities {
			profile := z.cat.CommodityProfile(commodity)
			seasonal := z.cat.SeasonalFactor(commodity, now.Month())
			price := profile.TypicalPrice * marketFactor * seasonal * dailyDrift

			o := observation(z.cat, m.Name, commodity, "ZNFU", "Lusaka", price)
			o.RecordedAt = now
			o.Quality = qualityGrade(z.rng)
			if vr, ok := znfuVolumes[commodity]; ok {
				o.Volume = floatPtr(float64(vr[0] + z.rng.Intn(vr[1]-vr[0]+1)))
			}
			out = append(out, o)
		}
	}

	z.log.Debug("znfu fetch complete", applogger.Int("records", len(out)))
	return out
}
