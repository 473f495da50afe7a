package catalog

import "time"

// MarketEntry is one physical market with its region and coordinates.
type MarketEntry struct {
	Region     string
	Name       string
	Lat        float64
	Lon        float64
	MarketDays []time.Weekday
}

// CommodityProfile drives synthetic pricing and forecast heuristics for one
// commodity. Prices are ZMW; Volatility is a fraction in (0,1).
type CommodityProfile struct {
	Name         string
	MinPrice     float64
	MaxPrice     float64
	TypicalPrice float64
	Unit         string
	Volatility   float64
	ModelHint    string // "ensemble" or "linear"
}

// Catalog is immutable reference data: regions, markets, commodity profiles,
// seasonal calendars and market factors. Load it once at startup and inject
// it; lookups on missing keys return neutral defaults rather than failing.
type Catalog struct {
	regions     []string
	markets     map[string][]MarketEntry // by region
	byMarket    map[string]MarketEntry
	commodities map[string]CommodityProfile
	seasonal    map[string][12]float64 // per-commodity monthly factors
	factors     map[string]float64     // market/region price-level factors
}

// New builds the catalog from the built-in Zambian reference data.
func New() *Catalog {
	c := &Catalog{
		markets:     make(map[string][]MarketEntry),
		byMarket:    make(map[string]MarketEntry),
		commodities: make(map[string]CommodityProfile),
		seasonal:    make(map[string][12]float64),
		factors:     make(map[string]float64),
	}
	for _, r := range zambianRegions {
		c.regions = append(c.regions, r.name)
		for _, m := range r.markets {
			e := MarketEntry{Region: r.name, Name: m.name, Lat: m.lat, Lon: m.lon, MarketDays: r.marketDays}
			c.markets[r.name] = append(c.markets[r.name], e)
			c.byMarket[m.name] = e
		}
	}
	for _, p := range commodityProfiles {
		c.commodities[p.Name] = p
	}
	for name, months := range seasonalFactors {
		c.seasonal[name] = months
	}
	for name, f := range marketFactors {
		c.factors[name] = f
	}
	return c
}

// Regions lists the known region names.
func (c *Catalog) Regions() []string {
	out := make([]string, len(c.regions))
	copy(out, c.regions)
	return out
}

// MarketsByRegion returns the markets of a region, or nil when unknown.
func (c *Catalog) MarketsByRegion(region string) []MarketEntry {
	src := c.markets[region]
	out := make([]MarketEntry, len(src))
	copy(out, src)
	return out
}

// Market looks up a single market entry by name.
func (c *Catalog) Market(name string) (MarketEntry, bool) {
	e, ok := c.byMarket[name]
	return e, ok
}

// Commodities lists all profiled commodity names.
func (c *Catalog) Commodities() []string {
	out := make([]string, 0, len(c.commodities))
	for name := range c.commodities {
		out = append(out, name)
	}
	return out
}

// CommodityProfile returns the profile for a commodity. Unknown commodities
// get the generic fallback profile so callers can proceed.
func (c *Catalog) CommodityProfile(name string) CommodityProfile {
	if p, ok := c.commodities[name]; ok {
		return p
	}
	return CommodityProfile{
		Name:         name,
		MinPrice:     50,
		MaxPrice:     200,
		TypicalPrice: 100.00,
		Unit:         "ZMW/kg",
		Volatility:   0.10,
		ModelHint:    "ensemble",
	}
}

// SeasonalFactor returns the calendar-month price multiplier for a commodity,
// 1.0 when no seasonal table exists.
func (c *Catalog) SeasonalFactor(commodity string, month time.Month) float64 {
	months, ok := c.seasonal[commodity]
	if !ok {
		return 1.0
	}
	return months[int(month)-1]
}

// MarketFactor returns the price-level multiplier for a market or region
// name, 1.0 when unknown. Full market names match on their leading token so
// "Lusaka Central Market" resolves through "Lusaka".
func (c *Catalog) MarketFactor(market string) float64 {
	if f, ok := c.factors[market]; ok {
		return f
	}
	for prefix, f := range c.factors {
		if len(market) > len(prefix) && market[:len(prefix)] == prefix {
			return f
		}
	}
	return 1.0
}

// IsMarketDay reports whether the region holds a market on the given weekday.
func (c *Catalog) IsMarketDay(region string, day time.Weekday) bool {
	entries := c.markets[region]
	if len(entries) == 0 {
		return false
	}
	for _, d := range entries[0].MarketDays {
		if d == day {
			return true
		}
	}
	return false
}
