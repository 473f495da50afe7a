package sources

import (
	"context"
	"time"

	"FarmPulse/internal/catalog"
	"FarmPulse/internal/domain/models"
	"FarmPulse/internal/service/zamace"
	applogger "FarmPulse/pkg/logger"
)

// QuoteFeed is the exchange transport behind the ZAMACE adapter.
type QuoteFeed interface {
	Quotes(ctx context.Context) ([]zamace.Quote, error)
}

// ZAMACE adapts the Zambian Agricultural Commodity Exchange quote feed into
// price observations. Exchange quotes arrive as bounded bursts; the market
// attribution is the exchange floor itself.
type ZAMACE struct {
	cat  *catalog.Catalog
	feed QuoteFeed
	log  *applogger.Logger
	now  func() time.Time
}

func NewZAMACE(cat *catalog.Catalog, feed QuoteFeed, log *applogger.Logger) *ZAMACE {
	return &ZAMACE{cat: cat, feed: feed, log: log, now: time.Now}
}

func (z *ZAMACE) Name() string { return "ZAMACE" }

// Fetch drains one quote burst. Feed failures are logged and reported as an
// empty result so a dead exchange link never fails the whole collection run.
func (z *ZAMACE) Fetch(ctx context.Context) []models.PriceObservation {
	quotes, err := z.feed.Quotes(ctx)
	if err != nil {
		z.log.Warn("zamace feed unavailable", applogger.Error(err))
		return nil
	}

	out := make([]models.PriceObservation, 0, len(quotes))
	for _, q := range quotes {
		if q.Commodity == "" || q.Price <= 0 {
			continue
		}

		recordedAt := z.now()
		if q.Timestamp > 0 {
			recordedAt = time.UnixMilli(q.Timestamp)
		}

		o := observation(z.cat, "ZAMACE Exchange", q.Commodity, "ZAMACE", "Lusaka", q.Price)
		o.RecordedAt = recordedAt
		if q.Volume > 0 {
			o.Volume = floatPtr(q.Volume)
		}
		out = append(out, o)
	}

	z.log.Debug("zamace fetch complete", applogger.Int("records", len(out)))
	return out
}
