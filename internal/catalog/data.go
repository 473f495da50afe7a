package catalog

import "time"

// Zambian agricultural reference data, 2024 figures. Markets carry GPS
// coordinates; market days are per region.

type marketData struct {
	name string
	lat  float64
	lon  float64
}

type regionData struct {
	name       string
	markets    []marketData
	marketDays []time.Weekday
}

var mwf = []time.Weekday{time.Monday, time.Wednesday, time.Friday}
var tts = []time.Weekday{time.Tuesday, time.Thursday, time.Saturday}
var mwfs = []time.Weekday{time.Monday, time.Wednesday, time.Friday, time.Saturday}

var zambianRegions = []regionData{
	{
		name: "Lusaka",
		markets: []marketData{
			{"Lusaka Central Market", -15.4167, 28.2833},
			{"City Market", -15.4194, 28.2875},
			{"Soweto Market", -15.4211, 28.2908},
			{"Chilenje Market", -15.4350, 28.3011},
			{"Matero Market", -15.4286, 28.2750},
			{"Kamwala Market", -15.4161, 28.2917},
		},
		marketDays: mwfs,
	},
	{
		name: "Copperbelt",
		markets: []marketData{
			{"Ndola Main Market", -12.9683, 28.6336},
			{"Kitwe Main Market", -12.8136, 28.2139},
			{"Chingola Market", -12.5283, 27.8558},
			{"Mufulira Market", -12.5511, 28.2406},
			{"Luanshya Market", -13.1367, 28.3961},
			{"Kalulushi Market", -12.8417, 28.0944},
		},
		marketDays: tts,
	},
	{
		name: "Southern",
		markets: []marketData{
			{"Livingstone Main Market", -17.8519, 25.8569},
			{"Choma Market", -16.8086, 27.0750},
			{"Mazabuka Market", -15.8567, 27.7486},
			{"Monze Market", -16.2819, 27.4833},
			{"Kalomo Market", -17.0333, 26.4833},
			{"Gwembe Market", -16.5000, 27.6167},
		},
		marketDays: mwf,
	},
	{
		name: "Central",
		markets: []marketData{
			{"Kabwe Main Market", -14.4464, 28.4464},
			{"Kapiri Mposhi Market", -13.9714, 28.6694},
			{"Mkushi Market", -13.6200, 29.3944},
			{"Serenje Market", -13.2325, 30.2358},
			{"Mumbwa Market", -14.9786, 27.0619},
		},
		marketDays: tts,
	},
	{
		name: "Eastern",
		markets: []marketData{
			{"Chipata Main Market", -13.6453, 32.6464},
			{"Petauke Market", -14.2436, 31.3203},
			{"Katete Market", -14.0600, 31.2200},
			{"Lundazi Market", -12.2928, 33.1811},
			{"Mambwe Market", -13.2250, 31.9333},
		},
		marketDays: mwf,
	},
	{
		name: "Northern",
		markets: []marketData{
			{"Kasama Main Market", -10.2128, 31.1811},
			{"Mbala Market", -8.8403, 31.3658},
			{"Mpika Market", -11.8342, 31.4528},
			{"Mporokoso Market", -9.3728, 30.1250},
			{"Luwingu Market", -10.2622, 29.9272},
		},
		marketDays: tts,
	},
	{
		name: "Luapula",
		markets: []marketData{
			{"Mansa Main Market", -11.1997, 28.8944},
			{"Samfya Market", -11.3528, 29.5522},
			{"Kawambwa Market", -9.7917, 29.0792},
			{"Nchelenge Market", -9.3456, 28.7342},
			{"Mwense Market", -10.3844, 28.6972},
		},
		marketDays: mwf,
	},
	{
		name: "North-Western",
		markets: []marketData{
			{"Solwezi Main Market", -12.1833, 26.4000},
			{"Mwinilunga Market", -11.7458, 24.4306},
			{"Zambezi Market", -13.5431, 23.1047},
			{"Kabompo Market", -13.5928, 24.2000},
			{"Manyinga Market", -12.8500, 25.8500},
		},
		marketDays: tts,
	},
	{
		name: "Western",
		markets: []marketData{
			{"Mongu Main Market", -15.2483, 23.1275},
			{"Senanga Market", -16.1167, 23.2667},
			{"Kalabo Market", -15.0000, 22.6667},
			{"Sesheke Market", -17.4750, 24.2967},
			{"Shangombo Market", -16.2667, 23.0000},
		},
		marketDays: mwf,
	},
}

var commodityProfiles = []CommodityProfile{
	// Staples and cash crops
	{"Maize", 80, 160, 120.50, "ZMW/50kg bag", 0.08, "ensemble"},
	{"Maize Meal", 100, 180, 140.75, "ZMW/25kg", 0.06, "ensemble"},
	{"Rice", 150, 250, 200.00, "ZMW/kg", 0.05, "ensemble"},
	{"Wheat", 120, 200, 160.25, "ZMW/kg", 0.07, "ensemble"},
	{"Beans", 70, 140, 105.00, "ZMW/kg", 0.10, "linear"},
	{"Groundnuts", 140, 240, 190.00, "ZMW/kg", 0.12, "ensemble"},
	{"Soybeans", 120, 200, 160.00, "ZMW/kg", 0.09, "ensemble"},
	{"Sunflower", 100, 180, 140.00, "ZMW/kg", 0.15, "ensemble"},
	{"Cotton", 80, 150, 115.00, "ZMW/kg", 0.12, "ensemble"},

	// Vegetables
	{"Tomatoes", 40, 120, 80.00, "ZMW/kg", 0.25, "ensemble"},
	{"Onions", 60, 150, 105.00, "ZMW/kg", 0.18, "ensemble"},
	{"Cabbage", 30, 80, 55.00, "ZMW/head", 0.20, "ensemble"},
	{"Rape", 20, 60, 40.00, "ZMW/bunch", 0.22, "ensemble"},
	{"Potatoes", 60, 130, 95.00, "ZMW/kg", 0.12, "ensemble"},
	{"Sweet Potatoes", 50, 100, 75.00, "ZMW/kg", 0.15, "ensemble"},

	// Livestock and products
	{"Beef", 250, 450, 350.00, "ZMW/kg", 0.08, "ensemble"},
	{"Pork", 200, 400, 300.00, "ZMW/kg", 0.10, "ensemble"},
	{"Chicken", 180, 350, 265.00, "ZMW/kg", 0.12, "ensemble"},
	{"Fish", 150, 300, 225.00, "ZMW/kg", 0.15, "ensemble"},
	{"Eggs (tray)", 100, 180, 140.00, "ZMW/tray", 0.10, "ensemble"},
	{"Milk (litre)", 20, 40, 30.00, "ZMW/litre", 0.05, "ensemble"},

	// Processed goods
	{"Sugar (kg)", 15, 35, 25.00, "ZMW/kg", 0.03, "ensemble"},
	{"Cooking Oil (litre)", 30, 60, 45.00, "ZMW/litre", 0.04, "ensemble"},
	{"Salt (kg)", 8, 20, 14.00, "ZMW/kg", 0.02, "ensemble"},
}

// Monthly price multipliers, January through December. Maize bottoms out in
// the June/July marketing season and peaks late in the lean season; tomatoes
// peak in the rains.
var seasonalFactors = map[string][12]float64{
	"Maize":    {1.05, 1.08, 1.10, 0.95, 0.90, 0.88, 0.90, 0.95, 1.00, 1.05, 1.08, 1.10},
	"Tomatoes": {1.15, 1.10, 1.05, 0.95, 0.90, 0.85, 0.80, 0.85, 0.90, 1.00, 1.10, 1.20},
	"Beans":    {1.00, 1.02, 1.05, 0.98, 0.95, 0.93, 0.95, 1.00, 1.05, 1.08, 1.10, 1.05},
	"Potatoes": {1.10, 1.05, 1.00, 0.95, 0.90, 0.88, 0.90, 0.95, 1.00, 1.05, 1.08, 1.10},
}

// Price-level multipliers by market or region name. Lookups fall back to the
// leading token of a full market name, then to 1.0.
var marketFactors = map[string]float64{
	"Lusaka":        1.05,
	"Kabwe":         1.02,
	"Ndola":         1.03,
	"Livingstone":   1.00,
	"Copperbelt":    1.03,
	"Southern":      1.00,
	"Eastern":       0.98,
	"Central":       0.96,
	"Northern":      0.97,
	"Luapula":       0.95,
	"North-Western": 0.94,
	"Western":       0.93,
}
