package sources

import (
	"context"
	"time"

	"FarmPulse/internal/catalog"
	"FarmPulse/internal/domain/models"
	applogger "FarmPulse/pkg/logger"
)

// CSO simulates the Central Statistical Office provincial price averages.
// The office publishes monthly figures, so records are pinned to the first
// of the current month and carry no trade volume.
type CSO struct {
	cat *catalog.Catalog
	log *applogger.Logger
	now func() time.Time
}

var csoProvinces = []string{"Lusaka", "Copperbelt", "Southern", "Eastern", "Central"}

var csoCommodities = []string{"Maize", "Rice", "Beans", "Groundnuts"}

func NewCSO(cat *catalog.Catalog, log *applogger.Logger) *CSO {
	return &CSO{cat: cat, log: log, now: time.Now}
}

func (c *CSO) Name() string { return "CSO" }

// Fetch reports one provincial average per commodity per province.
func (c *CSO) Fetch(ctx context.Context) []models.PriceObservation {
	if ctx.Err() != nil {
		return nil
	}

	now := c.now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var out []models.PriceObservation
	for _, province := range csoProvinces {
		factor := c.cat.MarketFactor(province)
		for _, commodity := range csoCommodities {
			profile := c.cat.CommodityProfile(commodity)
			price := profile.TypicalPrice * factor

			o := observation(c.cat, province+" Province Average", commodity, "CSO", province, price)
			o.RecordedAt = firstOfMonth
			out = append(out, o)
		}
	}

	c.log.Debug("cso fetch complete", applogger.Int("records", len(out)))
	return out
}
