package catalog

import (
	"testing"
	"time"
)

func TestRegions(t *testing.T) {
	c := New()
	regions := c.Regions()
	if len(regions) != 9 {
		t.Fatalf("expected 9 regions, got %d", len(regions))
	}
	if regions[0] != "Lusaka" {
		t.Fatalf("expected Lusaka first, got %s", regions[0])
	}
}

func TestMarketsByRegion(t *testing.T) {
	c := New()
	markets := c.MarketsByRegion("Lusaka")
	if len(markets) != 6 {
		t.Fatalf("expected 6 Lusaka markets, got %d", len(markets))
	}
	for _, m := range markets {
		if m.Region != "Lusaka" {
			t.Fatalf("market %s carries region %s", m.Name, m.Region)
		}
		if m.Lat == 0 || m.Lon == 0 {
			t.Fatalf("market %s is missing coordinates", m.Name)
		}
	}
	if got := c.MarketsByRegion("Katanga"); len(got) != 0 {
		t.Fatalf("unknown region should yield no markets, got %d", len(got))
	}
}

func TestMarketLookup(t *testing.T) {
	c := New()
	e, ok := c.Market("Soweto Market")
	if !ok {
		t.Fatal("Soweto Market should exist")
	}
	if e.Region != "Lusaka" {
		t.Fatalf("expected Lusaka, got %s", e.Region)
	}
	if _, ok := c.Market("Nonexistent Market"); ok {
		t.Fatal("lookup of unknown market should fail")
	}
}

func TestCommodityProfile(t *testing.T) {
	c := New()
	p := c.CommodityProfile("Maize")
	if p.TypicalPrice != 120.50 {
		t.Fatalf("Maize typical price = %v", p.TypicalPrice)
	}
	if p.Unit != "ZMW/50kg bag" {
		t.Fatalf("Maize unit = %s", p.Unit)
	}
}

func TestCommodityProfileFallback(t *testing.T) {
	c := New()
	p := c.CommodityProfile("Quinoa")
	if p.Name != "Quinoa" {
		t.Fatalf("fallback should keep the requested name, got %s", p.Name)
	}
	if p.TypicalPrice != 100.00 || p.ModelHint != "ensemble" {
		t.Fatalf("unexpected fallback profile: %+v", p)
	}
}

func TestSeasonalFactor(t *testing.T) {
	c := New()
	if f := c.SeasonalFactor("Maize", time.June); f != 0.88 {
		t.Fatalf("Maize June factor = %v", f)
	}
	if f := c.SeasonalFactor("Maize", time.December); f != 1.10 {
		t.Fatalf("Maize December factor = %v", f)
	}
	if f := c.SeasonalFactor("Salt (kg)", time.June); f != 1.0 {
		t.Fatalf("commodity without a table should be neutral, got %v", f)
	}
}

func TestMarketFactor(t *testing.T) {
	c := New()
	cases := []struct {
		market string
		want   float64
	}{
		{"Lusaka", 1.05},
		{"Lusaka Central Market", 1.05},
		{"Ndola Main Market", 1.03},
		{"Western", 0.93},
		{"Chirundu Border Market", 1.0},
	}
	for _, tc := range cases {
		if got := c.MarketFactor(tc.market); got != tc.want {
			t.Errorf("MarketFactor(%q) = %v, want %v", tc.market, got, tc.want)
		}
	}
}

func TestIsMarketDay(t *testing.T) {
	c := New()
	if !c.IsMarketDay("Lusaka", time.Saturday) {
		t.Fatal("Lusaka trades on Saturdays")
	}
	if c.IsMarketDay("Lusaka", time.Sunday) {
		t.Fatal("Lusaka does not trade on Sundays")
	}
	if !c.IsMarketDay("Copperbelt", time.Tuesday) {
		t.Fatal("Copperbelt trades on Tuesdays")
	}
	if c.IsMarketDay("Katanga", time.Monday) {
		t.Fatal("unknown region has no market days")
	}
}
