package models

// Requests for the price HTTP endpoints. Defined in domain for consistency and reuse.

type HistoryRequest struct {
	Commodity string `query:"commodity" json:"commodity" validate:"required"`
	Market    string `query:"market" json:"market"`
	Limit     int    `query:"limit" json:"limit" default:"90" validate:"gte=1,lte=1000"`
	SinceDays int    `query:"since_days" json:"since_days" default:"0" validate:"gte=0,lte=3650"`
}

type ForecastRequest struct {
	Commodity string `query:"commodity" json:"commodity" validate:"required"`
	Market    string `query:"market" json:"market" default:"Lusaka"`
	Days      int    `query:"days" json:"days" default:"7" validate:"gte=1,lte=30"`
}

type RecommendRequest struct {
	Commodity string `query:"commodity" json:"commodity" validate:"required"`
	Market    string `query:"market" json:"market" default:"Lusaka"`
}

type MarketsRequest struct {
	Region string `query:"region" json:"region" validate:"required"`
}

type RunsRequest struct {
	Limit int `query:"limit" json:"limit" default:"20" validate:"gte=1,lte=500"`
}

type RunJobRequest struct {
	Name string `query:"name" json:"name" validate:"required"`
}
